// Package logging provides the structured logging abstraction used by the
// extractor. Diagnostics never go to stdout: stdout is reserved for the
// serialized records.
package logging

import (
	"os"
	"sync"
)

// Logger defines structured logging with fields and error context.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)

	// WithError returns a child logger carrying err.
	WithError(err error) Logger

	// WithField returns a child logger carrying a single field.
	WithField(key string, value interface{}) Logger

	// WithFields returns a child logger carrying all fields.
	WithFields(fields ...Field) Logger
}

// Field is a key-value pair attached to a log entry.
type Field struct {
	Key   string
	Value interface{}
}

var (
	defaultLogger Logger
	defaultOnce   sync.Once
)

// GetLogger returns the process-wide fallback logger (info level, text, stderr).
// Components prefer an injected Logger; this exists for constructors called with nil.
func GetLogger() Logger {
	defaultOnce.Do(func() {
		defaultLogger = NewLogrusAdapterWithOutput("info", "text", os.Stderr)
	})
	return defaultLogger
}
