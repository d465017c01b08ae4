package validation_test

import (
	"crypto/rand"
	"fmt"
	"maps"
	"math/big"
	"testing"

	"fjacquet/paystub-csv/internal/logging"
	"fjacquet/paystub-csv/internal/models"
	"fjacquet/paystub-csv/internal/validation"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newValidator() (*validation.YTDValidator, *logging.MockLogger) {
	logger := logging.NewMockLogger()
	return validation.NewYTDValidator(validation.DefaultYTDTolerance, logger), logger
}

func TestYTDValidator_ForwardFill(t *testing.T) {
	records := []models.Record{
		{"Source File": "a.pdf", "Deductions Medicare Tax YTD": "100.00"},
		{"Source File": "b.pdf"},
	}
	v, _ := newValidator()

	regressions := v.Validate(records)
	assert.Empty(t, regressions)
	assert.Equal(t, "100.00", records[1]["Deductions Medicare Tax YTD"])
}

func TestYTDValidator_ForwardFillBlankAndCanonical(t *testing.T) {
	records := []models.Record{
		{"Earnings Regular YTD": "5000"},
		{"Earnings Regular YTD": "  "},
		{},
	}
	v, _ := newValidator()
	v.Validate(records)

	assert.Equal(t, "5000", records[0]["Earnings Regular YTD"])
	assert.Equal(t, "5000.00", records[1]["Earnings Regular YTD"])
	assert.Equal(t, "5000.00", records[2]["Earnings Regular YTD"])
}

func TestYTDValidator_LeadingAbsenceIsNotFilled(t *testing.T) {
	records := []models.Record{
		{"Source File": "a.pdf"},
		{"Source File": "b.pdf", "Earnings Rsu YTD": "10.00"},
	}
	v, _ := newValidator()
	v.Validate(records)
	assert.NotContains(t, records[0], "Earnings Rsu YTD")
}

func TestYTDValidator_RegressionIsReportedAndKept(t *testing.T) {
	records := []models.Record{
		{"Source File": "a.pdf", "Earnings Regular YTD": "200.00"},
		{"Source File": "b.pdf", "Earnings Regular YTD": "150.00"},
		{"Source File": "c.pdf"},
	}
	v, logger := newValidator()

	regressions := v.Validate(records)
	require.Len(t, regressions, 1)
	assert.Equal(t, "Earnings Regular YTD", regressions[0].Field)
	assert.Equal(t, "b.pdf", regressions[0].SourceFile)
	assert.Equal(t, "200.00", regressions[0].Previous)
	assert.Equal(t, "150.00", regressions[0].Current)

	assert.Equal(t, "150.00", records[1]["Earnings Regular YTD"])
	assert.Equal(t, "150.00", records[2]["Earnings Regular YTD"])

	warnings := logger.GetEntriesByLevel("WARN")
	require.Len(t, warnings, 1)
	prev, ok := warnings[0].FieldValue(logging.FieldPrevious)
	require.True(t, ok)
	assert.Equal(t, "200.00", prev)
}

func TestYTDValidator_WithinTolerance(t *testing.T) {
	records := []models.Record{
		{"Deductions Hsa YTD": "100.00"},
		{"Deductions Hsa YTD": "99.99"},
	}
	v, _ := newValidator()
	assert.Empty(t, v.Validate(records))
}

func TestYTDValidator_UnparseableValueIsSkipped(t *testing.T) {
	records := []models.Record{
		{"Deductions Hsa YTD": "100.00"},
		{"Deductions Hsa YTD": "n/a"},
		{},
	}
	v, _ := newValidator()
	v.Validate(records)
	assert.Equal(t, "n/a", records[1]["Deductions Hsa YTD"])
	assert.Equal(t, "100.00", records[2]["Deductions Hsa YTD"])
}

func TestYTDValidator_IgnoresCurrentPeriodFields(t *testing.T) {
	records := []models.Record{
		{"Earnings Regular": "5000.00"},
		{},
	}
	v, _ := newValidator()
	v.Validate(records)
	assert.NotContains(t, records[1], "Earnings Regular")
}

func TestYTDValidator_NegativeToleranceClamped(t *testing.T) {
	v := validation.NewYTDValidator(decimal.NewFromInt(-5), nil)
	records := []models.Record{{"X YTD": "1.00"}, {"X YTD": "0.99"}}
	assert.Len(t, v.Validate(records), 1)
}

func cryptoRandIntn(n int) int {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		panic(err)
	}
	return int(v.Int64())
}

func TestYTDValidator_IdempotenceProperty(t *testing.T) {
	fields := []string{"Earnings Regular YTD", "Deductions Hsa YTD", "Other Benefits Current Match"}
	for i := 0; i < 100; i++ {
		t.Run(fmt.Sprintf("iteration_%d", i), func(t *testing.T) {
			n := cryptoRandIntn(8) + 1
			records := make([]models.Record, n)
			for r := range records {
				records[r] = models.NewRecord(fmt.Sprintf("%02d.pdf", r))
				for _, f := range fields {
					if cryptoRandIntn(3) == 0 {
						continue
					}
					records[r][f] = decimal.New(int64(cryptoRandIntn(1_000_000)), -2).StringFixed(2)
				}
			}

			v, _ := newValidator()
			v.Validate(records)
			snapshot := make([]models.Record, n)
			for r := range records {
				snapshot[r] = maps.Clone(records[r])
			}

			v.Validate(records)
			assert.Equal(t, snapshot, records)
		})
	}
}
