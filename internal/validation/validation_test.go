package validation_test

import (
	"os"
	"path/filepath"
	"testing"

	"fjacquet/paystub-csv/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValidPath(t *testing.T) {
	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "stub.pdf")
	require.NoError(t, os.WriteFile(testFile, []byte("%PDF-1.4"), 0600))

	tests := []struct {
		name        string
		path        string
		expectError bool
		errContains string
	}{
		{name: "file", path: testFile},
		{name: "directory", path: tmpDir},
		{name: "non-existent path", path: filepath.Join(tmpDir, "missing.pdf"), expectError: true, errContains: "path does not exist"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validation.IsValidPath(tt.path)
			if tt.expectError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestIsPDFFile(t *testing.T) {
	assert.True(t, validation.IsPDFFile("a.pdf"))
	assert.True(t, validation.IsPDFFile("/x/B.PDF"))
	assert.False(t, validation.IsPDFFile("notes.txt"))
	assert.False(t, validation.IsPDFFile("pdf"))
}

func TestIsValidOutputFormat(t *testing.T) {
	for _, f := range []string{"json", "csv", "xlsx", "tidy"} {
		assert.NoError(t, validation.IsValidOutputFormat(f), f)
	}
	err := validation.IsValidOutputFormat("xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported output format: xml")
}
