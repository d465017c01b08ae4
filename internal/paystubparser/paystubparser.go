// Package paystubparser recovers typed paystub fields from the text of a
// payroll statement: pay-period headers, earnings, deductions, taxable wages
// and other benefits, assembled into one record per document.
package paystubparser

import (
	"path/filepath"
	"strings"

	"fjacquet/paystub-csv/internal/logging"
	"fjacquet/paystub-csv/internal/models"
	"fjacquet/paystub-csv/internal/parser"
	"fjacquet/paystub-csv/internal/parsererror"
	"fjacquet/paystub-csv/internal/textutils"
)

// Adapter assembles records from documents. It implements parser.RecordParser.
type Adapter struct {
	parser.BaseParser
	provider parser.TextProvider
	sections []parser.SectionParser
}

// NewAdapter creates an Adapter reading documents through provider and
// parsing them with layout's catalogs.
func NewAdapter(logger logging.Logger, provider parser.TextProvider, layout models.Layout) *Adapter {
	return &Adapter{
		BaseParser: parser.NewBaseParser("paystub", logger),
		provider:   provider,
		sections:   Sections(layout),
	}
}

// Sections returns the section parsers in merge order.
func Sections(layout models.Layout) []parser.SectionParser {
	return []parser.SectionParser{
		HeaderParser{},
		EarningsParser{},
		NewDeductionsParser(layout),
		TaxableWagesProbe{},
		NewBenefitsParser(layout),
	}
}

// ParseFile extracts the text of path and parses it. Provider failures, empty
// text and parser panics are returned as errors; the caller skips the document.
func (a *Adapter) ParseFile(path string) (models.Record, error) {
	if a.provider == nil {
		return nil, &parsererror.ValidationError{FilePath: path, Reason: "no text provider configured"}
	}

	text, err := a.provider.ExtractText(path)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, &parsererror.DataExtractionError{
			FilePath:       path,
			FieldName:      "text",
			RawDataSnippet: textutils.Snippet(text, 40),
			Msg:            "no text extracted",
			Reason:         "document is empty or image-only",
		}
	}

	var record models.Record
	err = a.Guard("document", path, func() error {
		record = a.ParseText(filepath.Base(path), text)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

// ParseText runs every section parser over text and merges their fields
// into a record tagged with sourceFile.
func (a *Adapter) ParseText(sourceFile, text string) models.Record {
	record := models.NewRecord(sourceFile)
	for _, section := range a.sections {
		fields := section.Parse(text)
		a.GetLogger().Debug("Parsed section",
			logging.Field{Key: logging.FieldFile, Value: sourceFile},
			logging.Field{Key: logging.FieldSection, Value: section.Name()},
			logging.Field{Key: logging.FieldCount, Value: len(fields)})
		record.Merge(fields)
	}
	return record
}
