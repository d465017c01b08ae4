package batch

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"os"
	"path/filepath"
	"testing"
	"time"

	"fjacquet/paystub-csv/internal/logging"
	"fjacquet/paystub-csv/internal/models"
	"fjacquet/paystub-csv/internal/parsererror"
	"fjacquet/paystub-csv/internal/paystubparser"
	"fjacquet/paystub-csv/internal/pdfparser"
	"fjacquet/paystub-csv/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// cryptoRandIntn returns a random int in [0, n) using crypto/rand
func cryptoRandIntn(n int) int {
	if n <= 0 {
		return 0
	}
	result, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0
	}
	return int(result.Int64())
}

func touch(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, n := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, n), []byte("%PDF-1.4"), 0600))
	}
}

func stub(payDate, medicareYTD string) []string {
	text := "Pay Date: " + payDate + "\n"
	if medicareYTD != "" {
		text += "Medicare Tax -10 00 " + medicareYTD + "\n"
	}
	return []string{text}
}

func newProcessor(extractor pdfparser.PDFExtractor, opts Options) (*Processor, *logging.MockLogger) {
	logger := logging.NewMockLogger()
	provider := pdfparser.NewAdapter(logger, extractor, nil)
	recordParser := paystubparser.NewAdapter(logger, provider, models.DefaultLayout())
	validator := validation.NewYTDValidator(validation.DefaultYTDTolerance, logger)
	return NewProcessor(recordParser, validator, logger, opts), logger
}

func TestProcess_DirectoryInNameOrderWithForwardFill(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "02.pdf", "01.pdf", "notes.txt")

	extractor := &pdfparser.MockPDFExtractor{Files: map[string][]string{
		"01.pdf": stub("01/05/2024", "100 00"),
		"02.pdf": stub("01/19/2024", ""),
	}}
	p, _ := newProcessor(extractor, Options{})

	result, err := p.Process(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, result.Records, 2)
	assert.Equal(t, "01.pdf", result.Records[0].SourceFile())
	assert.Equal(t, "02.pdf", result.Records[1].SourceFile())
	assert.Equal(t, "100.00", result.Records[1]["Deductions Medicare Tax YTD"])
	assert.Empty(t, result.Skipped)
	assert.Equal(t, "2024-01-05_2024-01-19", result.PayDateRange().String())
}

func TestProcess_FailuresAreIsolated(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "a.pdf", "b.pdf", "c.pdf", "d.pdf")

	extractor := &pdfparser.MockPDFExtractor{
		Files: map[string][]string{
			"a.pdf": stub("01/05/2024", "100 00"),
			"c.pdf": {""},
			"d.pdf": stub("02/02/2024", "200 00"),
		},
		Panics: map[string]string{"b.pdf": "corrupt xref"},
	}
	p, logger := newProcessor(extractor, Options{})

	result, err := p.Process(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, result.Records, 2)
	assert.Equal(t, "a.pdf", result.Records[0].SourceFile())
	assert.Equal(t, "d.pdf", result.Records[1].SourceFile())

	require.Len(t, result.Skipped, 2)
	var parseErr *parsererror.ParseError
	assert.ErrorAs(t, result.Skipped[0].Err, &parseErr)
	var dataErr *parsererror.DataExtractionError
	assert.ErrorAs(t, result.Skipped[1].Err, &dataErr)
	assert.Len(t, logger.GetEntriesByLevel("WARN"), 2)
}

func TestProcess_InputErrorsYieldNoRecords(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "notes.txt")
	p, logger := newProcessor(pdfparser.NewMockPDFExtractor("Pay Date: 01/05/2024", nil), Options{})

	result, err := p.Process(context.Background(), filepath.Join(dir, "missing"))
	require.NoError(t, err)
	assert.Empty(t, result.Records)

	result, err = p.Process(context.Background(), filepath.Join(dir, "notes.txt"))
	require.NoError(t, err)
	assert.Empty(t, result.Records)
	assert.Len(t, logger.GetEntriesByLevel("ERROR"), 2)

	empty := t.TempDir()
	result, err = p.Process(context.Background(), empty)
	require.NoError(t, err)
	assert.Empty(t, result.Records)
	assert.True(t, logger.HasEntry("WARN", "No PDF files found"))
}

func TestProcess_SingleFile(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "Stub.PDF")
	p, _ := newProcessor(pdfparser.NewMockPDFExtractor("Pay Date: 01/05/2024", nil), Options{})

	result, err := p.Process(context.Background(), filepath.Join(dir, "Stub.PDF"))
	require.NoError(t, err)
	require.Len(t, result.Records, 1)
	assert.Equal(t, "Stub.PDF", result.Records[0].SourceFile())
}

func TestProcess_RegressionsReported(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "01.pdf", "02.pdf")
	extractor := &pdfparser.MockPDFExtractor{Files: map[string][]string{
		"01.pdf": stub("01/05/2024", "200 00"),
		"02.pdf": stub("01/19/2024", "100 00"),
	}}
	p, _ := newProcessor(extractor, Options{})

	result, err := p.Process(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, result.Regressions, 1)
	assert.Equal(t, "02.pdf", result.Regressions[0].SourceFile)
	assert.Equal(t, "100.00", result.Records[1]["Deductions Medicare Tax YTD"])
}

func TestProcess_SortByPayDate(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "a.pdf", "b.pdf", "c.pdf")
	extractor := &pdfparser.MockPDFExtractor{Files: map[string][]string{
		"a.pdf": stub("02/02/2024", ""),
		"b.pdf": stub("01/05/2024", "100 00"),
		"c.pdf": {"Medicare Tax -10 00 300 00"},
	}}
	p, _ := newProcessor(extractor, Options{SortByPayDate: true})

	result, err := p.Process(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, result.Records, 3)
	assert.Equal(t, "b.pdf", result.Records[0].SourceFile())
	assert.Equal(t, "a.pdf", result.Records[1].SourceFile())
	assert.Equal(t, "c.pdf", result.Records[2].SourceFile())
	assert.Equal(t, "100.00", result.Records[1]["Deductions Medicare Tax YTD"])
}

func TestProcess_ContextCancelled(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "a.pdf")
	p, _ := newProcessor(pdfparser.NewMockPDFExtractor("Pay Date: 01/05/2024", nil), Options{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := p.Process(ctx, dir)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSortByPayDate_Property(t *testing.T) {
	for i := 0; i < 100; i++ {
		t.Run(fmt.Sprintf("iteration_%d", i), func(t *testing.T) {
			n := cryptoRandIntn(10) + 1
			records := make([]models.Record, n)
			for r := range records {
				records[r] = models.NewRecord(fmt.Sprintf("%02d.pdf", r))
				if cryptoRandIntn(4) == 0 {
					continue
				}
				d := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, cryptoRandIntn(365))
				records[r][models.FieldPayDate] = d.Format("1/2/2006")
			}

			SortByPayDate(records)

			seenUndated := false
			var last time.Time
			lastUndated := ""
			for _, rec := range records {
				raw := rec.PayDate()
				if raw == "" {
					seenUndated = true
					assert.Greater(t, rec.SourceFile(), lastUndated, "undated records keep their order")
					lastUndated = rec.SourceFile()
					continue
				}
				assert.False(t, seenUndated, "dated record after undated one")
				d, err := time.Parse("1/2/2006", raw)
				require.NoError(t, err)
				assert.False(t, d.Before(last))
				last = d
			}
		})
	}
}

func TestDateRange(t *testing.T) {
	var dr DateRange
	assert.Equal(t, "", dr.String())
	d1 := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	dr = dr.Extend(d1).Extend(d2)
	assert.Equal(t, "2024-01-01_2024-03-01", dr.String())
}
