// Package pdfparser turns paystub PDFs into line-oriented text. It offers a
// pure Go backend built on ledongthuc/pdf, a pdftotext backend, and a pdfcpu
// structural validator.
package pdfparser

import (
	"fmt"
	"strings"

	"fjacquet/paystub-csv/internal/parsererror"

	"github.com/ledongthuc/pdf"
)

// NativeExtractor extracts page text with github.com/ledongthuc/pdf.
type NativeExtractor struct{}

// NewNativeExtractor creates a NativeExtractor.
func NewNativeExtractor() *NativeExtractor {
	return &NativeExtractor{}
}

// ExtractPages reads every page row by row; each row becomes one line.
// Panics raised by the PDF library are returned as a ParseError.
func (e *NativeExtractor) ExtractPages(pdfPath string) (pages []string, err error) {
	defer func() {
		if r := recover(); r != nil {
			pages = nil
			err = &parsererror.ParseError{
				Parser: "native",
				Field:  "document",
				Value:  pdfPath,
				Err:    fmt.Errorf("panic while reading PDF: %v", r),
			}
		}
	}()

	f, reader, err := pdf.Open(pdfPath) // #nosec G304 -- CLI tool requires user-provided file paths
	if err != nil {
		return nil, &parsererror.InvalidFormatError{
			FilePath:       pdfPath,
			ExpectedFormat: "PDF",
			Msg:            "could not open PDF",
			Err:            err,
		}
	}
	defer func() {
		_ = f.Close()
	}()

	numPages := reader.NumPage()
	pages = make([]string, 0, numPages)
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			return nil, fmt.Errorf("error reading page %d of %s: %w", i, pdfPath, err)
		}
		pages = append(pages, renderRows(rows))
	}
	return pages, nil
}

// renderRows prints rows top to bottom, one line per row.
func renderRows(rows pdf.Rows) string {
	sortRows(rows)
	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		line := strings.TrimRight(joinRuns(row.Content), " ")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
