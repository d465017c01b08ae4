package validation

import (
	"sort"
	"strings"

	"fjacquet/paystub-csv/internal/amount"
	"fjacquet/paystub-csv/internal/logging"
	"fjacquet/paystub-csv/internal/models"
	"fjacquet/paystub-csv/internal/parsererror"

	"github.com/shopspring/decimal"
)

// DefaultYTDTolerance is the decrease tolerated before a regression is reported.
var DefaultYTDTolerance = decimal.RequireFromString("0.01")

// YTDValidator checks that year-to-date columns never decrease across a
// batch and forward-fills absent ones.
type YTDValidator struct {
	tolerance decimal.Decimal
	logger    logging.Logger
}

// NewYTDValidator creates a validator. A negative tolerance is treated as zero.
func NewYTDValidator(tolerance decimal.Decimal, logger logging.Logger) *YTDValidator {
	if logger == nil {
		logger = logging.GetLogger()
	}
	if tolerance.IsNegative() {
		tolerance = decimal.Zero
	}
	return &YTDValidator{tolerance: tolerance, logger: logger}
}

// Validate walks records in the given order, field by field. A present value
// lower than the last one by more than the tolerance is reported and kept.
// An absent or blank value is filled with the last value. Values that do not
// parse are left alone and do not change the last value. Running Validate
// again on its output changes nothing.
func (v *YTDValidator) Validate(records []models.Record) []parsererror.YTDRegressionError {
	var regressions []parsererror.YTDRegressionError
	for _, field := range ytdFields(records) {
		var last *decimal.Decimal
		for _, record := range records {
			raw := record[field]
			if strings.TrimSpace(raw) == "" {
				if last != nil {
					record[field] = amount.Format(*last)
				}
				continue
			}

			current, err := amount.Parse(raw)
			if err != nil {
				v.logger.Debug("Ignoring unparseable YTD value",
					logging.Field{Key: logging.FieldFile, Value: record.SourceFile()},
					logging.Field{Key: logging.FieldField, Value: field},
					logging.Field{Key: logging.FieldCurrent, Value: raw})
				continue
			}

			if last != nil && amount.Decreased(*last, current, v.tolerance) {
				regression := parsererror.YTDRegressionError{
					Field:      field,
					SourceFile: record.SourceFile(),
					Previous:   amount.Format(*last),
					Current:    amount.Format(current),
				}
				regressions = append(regressions, regression)
				v.logger.Warn(regression.Error(),
					logging.Field{Key: logging.FieldFile, Value: regression.SourceFile},
					logging.Field{Key: logging.FieldField, Value: field},
					logging.Field{Key: logging.FieldPrevious, Value: regression.Previous},
					logging.Field{Key: logging.FieldCurrent, Value: regression.Current})
			}
			last = &current
		}
	}
	return regressions
}

// ytdFields returns the YTD field names present in any record, sorted.
func ytdFields(records []models.Record) []string {
	var fields []string
	for field := range models.FieldSet(records) {
		if models.IsYTD(field) {
			fields = append(fields, field)
		}
	}
	sort.Strings(fields)
	return fields
}
