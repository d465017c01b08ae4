// Package parser defines the interfaces shared by paystub parsing components
// and the BaseParser they embed.
package parser

import (
	"fjacquet/paystub-csv/internal/models"
)

// TextProvider yields the line-delimited text of a document.
type TextProvider interface {
	ExtractText(path string) (string, error)
}

// SectionParser extracts one section's fields from a document's full text.
// Parse must not modify shared state; all per-document state lives in the call.
type SectionParser interface {
	Name() string
	Parse(text string) map[string]string
}

// RecordParser turns a single document into a Record.
type RecordParser interface {
	ParseFile(path string) (models.Record, error)
}
