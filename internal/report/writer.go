// Package report serializes paystub records: a JSON array, a transposed CSV
// table, the same table as an XLSX sheet, or a long "tidy" CSV.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"

	"fjacquet/paystub-csv/internal/amount"
	"fjacquet/paystub-csv/internal/fileutils"
	"fjacquet/paystub-csv/internal/logging"
	"fjacquet/paystub-csv/internal/models"
	"fjacquet/paystub-csv/internal/validation"

	"github.com/gocarina/gocsv"
	"github.com/xuri/excelize/v2"
)

// SheetName is the worksheet written by the xlsx format.
const SheetName = "Paystubs"

const labelColumnWidth = 40

// TidyRow is one (record, field) pair of the tidy format.
type TidyRow struct {
	SourceFile string `csv:"source_file"`
	PayDate    string `csv:"pay_date"`
	Field      string `csv:"field"`
	Value      string `csv:"value"`
}

// Writer serializes batches of records.
type Writer struct {
	logger     logging.Logger
	delimiter  rune
	fieldOrder []string
}

// NewWriter creates a Writer. A zero delimiter means ','; a nil fieldOrder
// uses the built-in layout's priority list.
func NewWriter(logger logging.Logger, delimiter rune, fieldOrder []string) *Writer {
	if logger == nil {
		logger = logging.GetLogger()
	}
	if delimiter == 0 {
		delimiter = ','
	}
	if fieldOrder == nil {
		fieldOrder = models.DefaultLayout().FieldOrder
	}
	return &Writer{
		logger:     logger,
		delimiter:  delimiter,
		fieldOrder: fieldOrder,
	}
}

// Write serializes records to out in format.
func (w *Writer) Write(out io.Writer, format string, records []models.Record) error {
	if err := validation.IsValidOutputFormat(format); err != nil {
		return err
	}

	var err error
	switch format {
	case validation.FormatJSON:
		err = w.writeJSON(out, records)
	case validation.FormatCSV:
		err = w.writeTransposed(out, records)
	case validation.FormatXLSX:
		err = w.writeXLSX(out, records)
	case validation.FormatTidy:
		err = w.writeTidy(out, records)
	}
	if err != nil {
		w.logger.WithError(err).Error("Failed to write output",
			logging.Field{Key: logging.FieldFormat, Value: format})
		return err
	}
	w.logger.Debug("Wrote output",
		logging.Field{Key: logging.FieldFormat, Value: format},
		logging.Field{Key: logging.FieldCount, Value: len(records)})
	return nil
}

// WriteFile serializes records into the file at path, creating parent
// directories as needed.
func (w *Writer) WriteFile(path, format string, records []models.Record) error {
	file, err := fileutils.CreateFile(path)
	if err != nil {
		return fmt.Errorf("error creating output file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			w.logger.WithError(err).Warn("Failed to close file",
				logging.Field{Key: logging.FieldOutputFile, Value: path})
		}
	}()

	if err := w.Write(file, format, records); err != nil {
		return err
	}
	w.logger.Info("Data written",
		logging.Field{Key: logging.FieldOutputFile, Value: path},
		logging.Field{Key: logging.FieldCount, Value: len(records)})
	return nil
}

func (w *Writer) writeJSON(out io.Writer, records []models.Record) error {
	if records == nil {
		records = []models.Record{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON output: %w", err)
	}
	data = append(data, '\n')
	if _, err := out.Write(data); err != nil {
		return fmt.Errorf("failed to write JSON output: %w", err)
	}
	return nil
}

// Table returns the transposed table: a Pay Date row, then one row per field
// in ColumnOrder, one column per record. Missing values are empty.
func (w *Writer) Table(records []models.Record) [][]string {
	fields := ColumnOrder(records, w.fieldOrder)
	rows := make([][]string, 0, len(fields)+1)

	header := make([]string, 0, len(records)+1)
	header = append(header, models.FieldPayDate)
	for _, r := range records {
		header = append(header, r.PayDate())
	}
	rows = append(rows, header)

	for _, field := range fields {
		row := make([]string, 0, len(records)+1)
		row = append(row, field)
		for _, r := range records {
			row = append(row, r[field])
		}
		rows = append(rows, row)
	}
	return rows
}

func (w *Writer) writeTransposed(out io.Writer, records []models.Record) error {
	csvWriter := csv.NewWriter(out)
	csvWriter.Comma = w.delimiter
	if err := csvWriter.WriteAll(w.Table(records)); err != nil {
		return fmt.Errorf("error writing CSV data: %w", err)
	}
	return nil
}

func (w *Writer) writeXLSX(out io.Writer, records []models.Record) error {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			w.logger.WithError(err).Warn("Failed to close workbook")
		}
	}()

	// single-sheet workbook
	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return fmt.Errorf("xlsx sheet: %w", err)
	}

	for r, row := range w.Table(records) {
		for c, value := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return fmt.Errorf("xlsx cell: %w", err)
			}
			if err := f.SetCellValue(SheetName, cell, cellValue(c, value)); err != nil {
				return fmt.Errorf("xlsx cell %s: %w", cell, err)
			}
		}
	}
	if err := f.SetColWidth(SheetName, "A", "A", labelColumnWidth); err != nil {
		return fmt.Errorf("xlsx column width: %w", err)
	}

	if err := f.Write(out); err != nil {
		return fmt.Errorf("xlsx write: %w", err)
	}
	return nil
}

// cellValue stores canonical amounts as numbers; labels, dates and empty
// cells stay text.
func cellValue(col int, value string) interface{} {
	if col == 0 || !amount.IsCanonical(value) {
		return value
	}
	d, err := amount.Parse(value)
	if err != nil {
		return value
	}
	return d.InexactFloat64()
}

// TidyRows flattens records into one row per field, Source File excluded,
// with Pay Date first and the other fields in ColumnOrder.
func (w *Writer) TidyRows(records []models.Record) []TidyRow {
	fields := append([]string{models.FieldPayDate}, ColumnOrder(records, w.fieldOrder)...)
	rows := make([]TidyRow, 0)
	for _, r := range records {
		for _, field := range fields {
			value, ok := r[field]
			if !ok {
				continue
			}
			rows = append(rows, TidyRow{
				SourceFile: r.SourceFile(),
				PayDate:    r.PayDate(),
				Field:      field,
				Value:      value,
			})
		}
	}
	return rows
}

func (w *Writer) writeTidy(out io.Writer, records []models.Record) error {
	csvWriter := csv.NewWriter(out)
	csvWriter.Comma = w.delimiter
	rows := w.TidyRows(records)
	if err := gocsv.MarshalCSV(&rows, gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
		return fmt.Errorf("error writing CSV data: %w", err)
	}
	csvWriter.Flush()
	return csvWriter.Error()
}
