package pdfparser

import (
	"bytes"
	"fmt"
	"os/exec"
	"strings"
)

// pdftotextCommand is the external binary used by PdftotextExtractor.
var pdftotextCommand = "pdftotext"

// PdftotextExtractor extracts text with the poppler pdftotext tool in layout mode.
type PdftotextExtractor struct{}

// NewPdftotextExtractor creates a PdftotextExtractor.
func NewPdftotextExtractor() *PdftotextExtractor {
	return &PdftotextExtractor{}
}

// ExtractPages runs pdftotext and splits its output on form feeds.
func (e *PdftotextExtractor) ExtractPages(pdfPath string) ([]string, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.Command(pdftotextCommand, "-layout", pdfPath, "-") // #nosec G204 -- fixed binary, path argument only
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("error running pdftotext: %w: %s", err, strings.TrimSpace(stderr.String()))
	}
	return splitPages(stdout.String()), nil
}

// splitPages splits pdftotext output into pages. The trailing form feed
// after the last page does not produce an extra page.
func splitPages(out string) []string {
	out = strings.TrimSuffix(out, "\f")
	if out == "" {
		return nil
	}
	raw := strings.Split(out, "\f")
	pages := make([]string, len(raw))
	for i, p := range raw {
		pages[i] = strings.TrimRight(p, "\n")
	}
	return pages
}
