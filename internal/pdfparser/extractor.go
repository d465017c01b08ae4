package pdfparser

import (
	"fmt"
	"path/filepath"
	"strings"
)

// PDFExtractor yields the text of every page of a PDF, one entry per page in
// reading order. A page without text is returned as "". Lines within a page
// are separated by "\n" and visually separated glyph runs by at least one space.
type PDFExtractor interface {
	ExtractPages(pdfPath string) ([]string, error)
}

// JoinPages concatenates page texts, appending "\n" after every non-empty page.
func JoinPages(pages []string) string {
	var sb strings.Builder
	for _, p := range pages {
		if p == "" {
			continue
		}
		sb.WriteString(p)
		sb.WriteString("\n")
	}
	return sb.String()
}

// MockPDFExtractor implements PDFExtractor for testing purposes. Pages are
// looked up by the base name of the requested path, then fall back to MockPages.
type MockPDFExtractor struct {
	MockPages []string
	MockErr   error
	Files     map[string][]string
	Errors    map[string]error
	Panics    map[string]string

	Calls []string
}

// NewMockPDFExtractor creates a MockPDFExtractor returning text as a single page.
func NewMockPDFExtractor(text string, err error) *MockPDFExtractor {
	return &MockPDFExtractor{MockPages: []string{text}, MockErr: err}
}

// ExtractPages returns the configured pages or error for pdfPath.
func (e *MockPDFExtractor) ExtractPages(pdfPath string) ([]string, error) {
	e.Calls = append(e.Calls, pdfPath)
	name := filepath.Base(pdfPath)
	if msg, ok := e.Panics[name]; ok {
		panic(msg)
	}
	if err, ok := e.Errors[name]; ok {
		return nil, err
	}
	if pages, ok := e.Files[name]; ok {
		return pages, nil
	}
	if e.MockErr != nil {
		return nil, e.MockErr
	}
	if e.MockPages == nil {
		return nil, fmt.Errorf("no mock pages for %s", name)
	}
	return e.MockPages, nil
}
