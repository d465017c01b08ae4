// Package parsererror defines the typed errors shared by the extractor packages.
package parsererror

import (
	"errors"
	"fmt"
)

// ErrNoRecords reports that a batch produced zero records.
var ErrNoRecords = errors.New("no records extracted")

// ParseError represents an error during parsing
type ParseError struct {
	Parser string
	Field  string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: failed to parse %s='%s': %v",
		e.Parser, e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ValidationError represents a validation failure
type ValidationError struct {
	FilePath string
	Reason   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %s: %s", e.FilePath, e.Reason)
}

// InvalidFormatError represents an input that is not a readable PDF.
type InvalidFormatError struct {
	FilePath             string
	ExpectedFormat       string
	ActualContentSnippet string
	Msg                  string
	Err                  error
}

func (e *InvalidFormatError) Error() string {
	msg := fmt.Sprintf("invalid format in file '%s': %s. Expected: %s",
		e.FilePath, e.Msg, e.ExpectedFormat)
	if e.ActualContentSnippet != "" {
		msg += fmt.Sprintf(". Content snippet: '%s'", e.ActualContentSnippet)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *InvalidFormatError) Unwrap() error {
	return e.Err
}

// DataExtractionError represents a document from which no usable text could be
// extracted, even though the file itself opened.
type DataExtractionError struct {
	FilePath       string
	FieldName      string
	RawDataSnippet string
	Reason         string
	Msg            string
}

func (e *DataExtractionError) Error() string {
	if e.RawDataSnippet != "" {
		return fmt.Sprintf("data extraction failed in file '%s' for field '%s': %s. Reason: %s. Raw data snippet: '%s'",
			e.FilePath, e.FieldName, e.Msg, e.Reason, e.RawDataSnippet)
	}
	return fmt.Sprintf("data extraction failed in file '%s' for field '%s': %s. Reason: %s",
		e.FilePath, e.FieldName, e.Msg, e.Reason)
}

// YTDRegressionError describes a year-to-date value that dropped below the
// previous record's value by more than the tolerance. It is a diagnostic:
// the validator reports it but keeps the value.
type YTDRegressionError struct {
	Field      string
	SourceFile string
	Previous   string
	Current    string
}

func (e *YTDRegressionError) Error() string {
	return fmt.Sprintf("YTD value decreased for %s in %s: %s -> %s",
		e.Field, e.SourceFile, e.Previous, e.Current)
}
