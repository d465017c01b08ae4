// Package store loads and writes the YAML layout file that overrides the
// built-in paystub label catalogs.
package store

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"fjacquet/paystub-csv/internal/logging"
	"fjacquet/paystub-csv/internal/models"

	"gopkg.in/yaml.v3"
)

// LayoutStore reads a layout override from a YAML file.
type LayoutStore struct {
	LayoutFile string
	logger     logging.Logger
}

// NewLayoutStore creates a store for layoutFile. An empty name means the
// built-in layout is used unchanged.
func NewLayoutStore(layoutFile string, logger logging.Logger) *LayoutStore {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &LayoutStore{LayoutFile: layoutFile, logger: logger}
}

// FindConfigFile looks for filename as given, under ./config, and under
// $HOME/.paystub-csv.
func (s *LayoutStore) FindConfigFile(filename string) (string, error) {
	if filepath.IsAbs(filename) {
		if _, err := os.Stat(filename); err == nil {
			return filename, nil
		}
		return "", os.ErrNotExist
	}

	locations := []string{
		filename,
		filepath.Join("config", filename),
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		locations = append(locations, filepath.Join(homeDir, ".paystub-csv", filename))
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location, nil
		}
	}
	return "", os.ErrNotExist
}

// LoadLayout returns the built-in layout with the file's non-empty lists applied.
// A configured file that cannot be found is an error.
func (s *LayoutStore) LoadLayout() (models.Layout, error) {
	layout := models.DefaultLayout()
	if s.LayoutFile == "" {
		return layout, nil
	}

	path, err := s.FindConfigFile(s.LayoutFile)
	if err != nil {
		return layout, fmt.Errorf("layout file not found: %s: %w", s.LayoutFile, err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return layout, fmt.Errorf("error reading layout file: %w", err)
	}

	var override models.Layout
	if err := yaml.Unmarshal(data, &override); err != nil {
		return layout, fmt.Errorf("error parsing layout file %s: %w", path, err)
	}

	s.logger.Debug("Loaded layout override",
		logging.Field{Key: logging.FieldFile, Value: path},
		logging.Field{Key: logging.FieldCount, Value: len(override.DeductionLabels)})
	return layout.WithOverrides(override), nil
}

// WriteLayout encodes layout as YAML to w.
func WriteLayout(w io.Writer, layout models.Layout) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(layout); err != nil {
		return fmt.Errorf("error encoding layout: %w", err)
	}
	return enc.Close()
}
