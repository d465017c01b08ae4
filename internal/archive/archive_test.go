package archive

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"fjacquet/paystub-csv/internal/logging"
	"fjacquet/paystub-csv/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTemp(t *testing.T) *Store {
	s, _ := openTempWithLogger(t)
	return s
}

func openTempWithLogger(t *testing.T) (*Store, *logging.MockLogger) {
	t.Helper()
	logger := logging.NewMockLogger()
	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "paystubs.db"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s, logger
}

func records() []models.Record {
	return []models.Record{
		{"Source File": "01.pdf", "Pay Date": "01/05/2024", "Earnings Regular": "4000.00"},
		{"Source File": "02.pdf", "Earnings Regular": "4000.00", "Earnings Regular YTD": "8000.00"},
	}
}

func TestSave_IsIdempotent(t *testing.T) {
	ctx := context.Background()
	s := openTemp(t)

	written, err := s.Save(ctx, records())
	require.NoError(t, err)
	assert.Equal(t, 4, written)

	_, err = s.Save(ctx, records())
	require.NoError(t, err)
	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
}

func TestSave_LogsArchiveTotal(t *testing.T) {
	ctx := context.Background()
	s, logger := openTempWithLogger(t)

	_, err := s.Save(ctx, records()[:1])
	require.NoError(t, err)
	_, err = s.Save(ctx, records())
	require.NoError(t, err)

	infos := logger.GetEntriesByLevel("INFO")
	require.NotEmpty(t, infos)
	last := infos[len(infos)-1]
	count, ok := last.FieldValue(logging.FieldCount)
	require.True(t, ok)
	assert.Equal(t, 4, count)
	total, ok := last.FieldValue(logging.FieldTotal)
	require.True(t, ok)
	assert.Equal(t, 4, total)
}

func TestSave_ReplacesValues(t *testing.T) {
	ctx := context.Background()
	s := openTemp(t)
	_, err := s.Save(ctx, records())
	require.NoError(t, err)

	updated := records()[:1]
	updated[0]["Earnings Regular"] = "4100.00"
	_, err = s.Save(ctx, updated)
	require.NoError(t, err)

	got, err := s.Load(ctx, "01.pdf")
	require.NoError(t, err)
	assert.Equal(t, models.Record{
		"Source File":      "01.pdf",
		"Pay Date":         "01/05/2024",
		"Earnings Regular": "4100.00",
	}, got)
}

func TestLoad_Missing(t *testing.T) {
	s := openTemp(t)
	_, err := s.Load(context.Background(), "nope.pdf")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestSave_CancelledContext(t *testing.T) {
	s := openTemp(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := s.Save(ctx, records())
	assert.Error(t, err)
}
