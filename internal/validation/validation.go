// Package validation checks user inputs and enforces year-to-date
// consistency across a batch of paystub records.
package validation

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Supported output formats.
const (
	FormatJSON = "json"
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
	FormatTidy = "tidy"
)

// OutputFormats lists the supported output formats.
var OutputFormats = []string{FormatJSON, FormatCSV, FormatXLSX, FormatTidy}

// IsValidPath checks that path exists and is a regular file or a directory.
func IsValidPath(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return fmt.Errorf("path does not exist: %s", path)
	}
	if err != nil {
		return fmt.Errorf("error checking path %s: %w", path, err)
	}
	if !info.IsDir() && !info.Mode().IsRegular() {
		return fmt.Errorf("path %s is neither a file nor a directory", path)
	}
	return nil
}

// IsPDFFile reports whether path has a .pdf extension, in any case.
func IsPDFFile(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".pdf")
}

// IsValidOutputFormat checks if the given format is supported.
func IsValidOutputFormat(format string) error {
	for _, f := range OutputFormats {
		if format == f {
			return nil
		}
	}
	return fmt.Errorf("unsupported output format: %s. Supported formats are %s",
		format, strings.Join(OutputFormats, ", "))
}
