// Package batch drives extraction over a file or directory of paystubs:
// enumeration, per-document failure isolation, ordering and YTD validation.
package batch

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"fjacquet/paystub-csv/internal/dateutils"
	"fjacquet/paystub-csv/internal/fileutils"
	"fjacquet/paystub-csv/internal/logging"
	"fjacquet/paystub-csv/internal/models"
	"fjacquet/paystub-csv/internal/parser"
	"fjacquet/paystub-csv/internal/parsererror"
	"fjacquet/paystub-csv/internal/validation"
)

// DateRange represents a date range with start and end dates
type DateRange struct {
	Start time.Time
	End   time.Time
}

// String returns the date range in the format "YYYY-MM-DD_YYYY-MM-DD"
func (dr DateRange) String() string {
	if dr.Start.IsZero() || dr.End.IsZero() {
		return ""
	}
	return fmt.Sprintf("%s_%s", dateutils.ToISODate(dr.Start), dateutils.ToISODate(dr.End))
}

// Extend widens the range to include t.
func (dr DateRange) Extend(t time.Time) DateRange {
	if dr.Start.IsZero() || t.Before(dr.Start) {
		dr.Start = t
	}
	if dr.End.IsZero() || t.After(dr.End) {
		dr.End = t
	}
	return dr
}

// SkippedFile is a document that contributed no record.
type SkippedFile struct {
	Path   string
	Reason string
	Err    error
}

// Result is the outcome of one batch run.
type Result struct {
	Records     []models.Record
	Skipped     []SkippedFile
	Regressions []parsererror.YTDRegressionError
}

// PayDateRange returns the span of parseable pay dates in the batch.
func (r Result) PayDateRange() DateRange {
	var dr DateRange
	for _, rec := range r.Records {
		if d, err := dateutils.ParseDate(rec.PayDate()); err == nil {
			dr = dr.Extend(d)
		}
	}
	return dr
}

// Options tune a Processor.
type Options struct {
	// SortByPayDate reorders records by pay date before YTD validation.
	SortByPayDate bool
}

// Processor runs the pipeline over a batch of documents.
type Processor struct {
	parser    parser.RecordParser
	validator *validation.YTDValidator
	logger    logging.Logger
	opts      Options
}

// NewProcessor creates a Processor.
func NewProcessor(recordParser parser.RecordParser, validator *validation.YTDValidator, logger logging.Logger, opts Options) *Processor {
	if logger == nil {
		logger = logging.GetLogger()
	}
	if validator == nil {
		validator = validation.NewYTDValidator(validation.DefaultYTDTolerance, logger)
	}
	return &Processor{
		parser:    recordParser,
		validator: validator,
		logger:    logger,
		opts:      opts,
	}
}

// ListInputs resolves inputPath to the documents to process: the file
// itself, or the *.pdf files directly inside the directory in name order.
func ListInputs(inputPath string) ([]string, error) {
	if err := validation.IsValidPath(inputPath); err != nil {
		return nil, &parsererror.ValidationError{FilePath: inputPath, Reason: err.Error()}
	}
	if fileutils.DirectoryExists(inputPath) {
		return fileutils.ListFilesWithExtension(inputPath, ".pdf")
	}
	if !validation.IsPDFFile(inputPath) {
		return nil, &parsererror.ValidationError{FilePath: inputPath, Reason: "not a PDF file"}
	}
	return []string{inputPath}, nil
}

// Process extracts every document under inputPath. Documents that fail are
// logged and listed in Result.Skipped; the others are unaffected. Input path
// problems are logged and yield an empty result. ctx is checked between
// documents.
func (p *Processor) Process(ctx context.Context, inputPath string) (Result, error) {
	var result Result

	files, err := ListInputs(inputPath)
	if err != nil {
		p.logger.WithError(err).Error("Cannot read input",
			logging.Field{Key: logging.FieldInputPath, Value: inputPath})
		return result, nil
	}
	if len(files) == 0 {
		p.logger.Warn("No PDF files found",
			logging.Field{Key: logging.FieldInputPath, Value: inputPath})
	}

	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return result, fmt.Errorf("batch interrupted: %w", err)
		}
		record, err := p.parser.ParseFile(file)
		if err != nil {
			p.logger.WithError(err).Warn("Skipping document",
				logging.Field{Key: logging.FieldFile, Value: file})
			result.Skipped = append(result.Skipped, SkippedFile{Path: file, Reason: err.Error(), Err: err})
			continue
		}
		p.logger.Info("Extracted paystub",
			logging.Field{Key: logging.FieldFile, Value: filepath.Base(file)},
			logging.Field{Key: logging.FieldCount, Value: len(record)})
		result.Records = append(result.Records, record)
	}

	if p.opts.SortByPayDate {
		SortByPayDate(result.Records)
	}
	result.Regressions = p.validator.Validate(result.Records)
	return result, nil
}

// SortByPayDate stably orders records by parsed pay date. Records whose pay
// date is missing or unparseable keep their relative order after the others.
func SortByPayDate(records []models.Record) {
	type keyed struct {
		date time.Time
		ok   bool
	}
	keys := make(map[string]keyed, len(records))
	key := func(r models.Record) keyed {
		raw := r.PayDate()
		if k, ok := keys[raw]; ok {
			return k
		}
		d, err := dateutils.ParseDate(raw)
		k := keyed{date: d, ok: err == nil}
		keys[raw] = k
		return k
	}
	sort.SliceStable(records, func(i, j int) bool {
		a, b := key(records[i]), key(records[j])
		if a.ok != b.ok {
			return a.ok
		}
		return a.ok && a.date.Before(b.date)
	})
}
