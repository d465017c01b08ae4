package integration

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"math/big"
	"os"
	"path/filepath"
	"testing"

	"fjacquet/paystub-csv/internal/archive"
	"fjacquet/paystub-csv/internal/config"
	"fjacquet/paystub-csv/internal/container"
	"fjacquet/paystub-csv/internal/logging"
	"fjacquet/paystub-csv/internal/models"
	"fjacquet/paystub-csv/internal/pdfparser"

	"github.com/gocarina/gocsv"
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

const januaryStub = `Pay Date: 01/05/2024
Period Beginning: 12/18/2023
Period Ending: 12/31/2023
Earnings rate hours this period year to date
Regular 50 00 80 00 4 000 00 4 000 00
Gross Pay 4 000 00 4 000 00
Federal Income Tax -500 00 500 00
Medicare Tax -58 00 58 00
Dental Pretax -12 00 12 00
Current Match 160 00
`

const februaryStub = `Pay Date: 02/02/2024
Earnings rate hours this period year to date
Regular 50 00 80 00 4 000 00 8 000 00
Gross Pay 4 000 00 8 000 00
Federal Income Tax -500 00 1 000 00
Current Match 160 00
`

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Log.Level = "info"
	cfg.Log.Format = "text"
	cfg.CSV.Delimiter = ","
	cfg.Output.Format = "json"
	cfg.PDF.Extractor = "native"
	cfg.YTD.Tolerance = 0.01
	return cfg
}

func writeInputs(t *testing.T, names ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, n := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, n), []byte("%PDF-1.4"), 0600))
	}
	return dir
}

// TestPipeline_FormatsAgree runs one batch through every output format and
// checks that each reports the same values.
func TestPipeline_FormatsAgree(t *testing.T) {
	dir := writeInputs(t, "2024-01.pdf", "2024-02.pdf")
	extractor := &pdfparser.MockPDFExtractor{Files: map[string][]string{
		"2024-01.pdf": {januaryStub},
		"2024-02.pdf": {februaryStub},
	}}
	c, err := container.NewContainerWith(testConfig(), logging.NewMockLogger(), extractor)
	require.NoError(t, err)

	result, err := c.GetProcessor().Process(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, result.Records, 2)

	feb := result.Records[1]
	assert.Equal(t, "8000.00", feb["Earnings Regular YTD"])
	assert.Equal(t, "58.00", feb["Deductions Medicare Tax YTD"], "forward-filled")
	assert.Equal(t, "12.00", feb["Deductions Dental Pretax YTD"], "forward-filled")
	assert.Empty(t, result.Regressions)

	// JSON
	var jsonOut bytes.Buffer
	require.NoError(t, c.GetWriter().Write(&jsonOut, "json", result.Records))
	var decoded []models.Record
	require.NoError(t, json.Unmarshal(jsonOut.Bytes(), &decoded))
	assert.Equal(t, result.Records, decoded)

	// transposed CSV
	var csvOut bytes.Buffer
	require.NoError(t, c.GetWriter().Write(&csvOut, "csv", result.Records))
	rows, err := csv.NewReader(&csvOut).ReadAll()
	require.NoError(t, err)
	table := make(map[string][]string, len(rows))
	for _, row := range rows {
		table[row[0]] = row[1:]
	}
	for i, rec := range result.Records {
		for field, value := range rec {
			if field == models.FieldSourceFile {
				continue
			}
			assert.Equal(t, value, table[field][i], "%s of record %d", field, i)
		}
	}

	// tidy CSV
	var tidyOut bytes.Buffer
	require.NoError(t, c.GetWriter().Write(&tidyOut, "tidy", result.Records))
	var tidy []struct {
		SourceFile string `csv:"source_file"`
		Field      string `csv:"field"`
		Value      string `csv:"value"`
	}
	require.NoError(t, gocsv.UnmarshalBytes(tidyOut.Bytes(), &tidy))
	for _, row := range tidy {
		for _, rec := range result.Records {
			if rec.SourceFile() == row.SourceFile {
				assert.Equal(t, rec[row.Field], row.Value)
			}
		}
	}

	// archive holds exactly the tidy rows
	store, err := archive.Open(context.Background(), filepath.Join(t.TempDir(), "paystubs.db"), logging.NewMockLogger())
	require.NoError(t, err)
	defer func() { _ = store.Close() }()
	written, err := store.Save(context.Background(), result.Records)
	require.NoError(t, err)
	assert.Equal(t, len(tidy), written)
}

// TestPipeline_FailureIsolationProperty randomly breaks documents of a batch
// and checks the others still produce records.
func TestPipeline_FailureIsolationProperty(t *testing.T) {
	for i := 0; i < 100; i++ {
		t.Run(fmt.Sprintf("iteration_%d", i), func(t *testing.T) {
			n := cryptoRandIntn(6) + 1
			names := make([]string, n)
			extractor := &pdfparser.MockPDFExtractor{
				Files:  map[string][]string{},
				Errors: map[string]error{},
				Panics: map[string]string{},
			}
			healthy := 0
			for j := range names {
				names[j] = fmt.Sprintf("%02d.pdf", j)
				switch cryptoRandIntn(4) {
				case 0:
					extractor.Panics[names[j]] = "corrupt stream"
				case 1:
					extractor.Errors[names[j]] = fmt.Errorf("unreadable")
				case 2:
					extractor.Files[names[j]] = []string{"   "}
				default:
					extractor.Files[names[j]] = []string{januaryStub}
					healthy++
				}
			}
			dir := writeInputs(t, names...)

			c, err := container.NewContainerWith(testConfig(), logging.NewMockLogger(), extractor)
			require.NoError(t, err)
			result, err := c.GetProcessor().Process(context.Background(), dir)
			require.NoError(t, err)

			assert.Len(t, result.Records, healthy)
			assert.Len(t, result.Skipped, n-healthy)
			for _, rec := range result.Records {
				assert.Equal(t, "01/05/2024", rec.PayDate())
			}
		})
	}
}
