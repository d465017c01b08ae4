package parser

import (
	"fmt"

	"fjacquet/paystub-csv/internal/logging"
	"fjacquet/paystub-csv/internal/parsererror"
)

// BaseParser provides the logger handling shared by parser implementations.
// Parsers embed it:
//
//	type MyParser struct {
//		parser.BaseParser
//		// parser-specific fields
//	}
type BaseParser struct {
	name   string
	logger logging.Logger
}

// NewBaseParser creates a BaseParser. A nil logger selects the default logger.
func NewBaseParser(name string, logger logging.Logger) BaseParser {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return BaseParser{
		name:   name,
		logger: logger.WithField(logging.FieldParser, name),
	}
}

// GetLogger returns the current logger.
func (b *BaseParser) GetLogger() logging.Logger {
	return b.logger
}

// Name returns the parser name.
func (b *BaseParser) Name() string {
	return b.name
}

// Guard runs fn and converts a panic into a ParseError for field/value.
func (b *BaseParser) Guard(field, value string, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &parsererror.ParseError{
				Parser: b.name,
				Field:  field,
				Value:  value,
				Err:    fmt.Errorf("panic: %v", r),
			}
		}
	}()
	return fn()
}
