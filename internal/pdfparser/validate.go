package pdfparser

import (
	"fmt"
	"os"

	"fjacquet/paystub-csv/internal/parsererror"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// StructureInfo summarizes a structurally valid PDF.
type StructureInfo struct {
	PageCount int
}

// StructureValidator checks PDF structure before text extraction.
type StructureValidator interface {
	Validate(pdfPath string) (StructureInfo, error)
}

// PdfcpuValidator validates PDFs with pdfcpu in relaxed mode.
type PdfcpuValidator struct {
	conf *model.Configuration
}

// NewPdfcpuValidator creates a relaxed-mode validator.
func NewPdfcpuValidator() *PdfcpuValidator {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return &PdfcpuValidator{conf: conf}
}

// Validate reads and validates pdfPath. Failures are InvalidFormatErrors.
func (v *PdfcpuValidator) Validate(pdfPath string) (StructureInfo, error) {
	f, err := os.Open(pdfPath) // #nosec G304 -- CLI tool requires user-provided file paths
	if err != nil {
		return StructureInfo{}, fmt.Errorf("error opening %s: %w", pdfPath, err)
	}
	defer func() {
		_ = f.Close()
	}()

	ctx, err := api.ReadValidateAndOptimize(f, v.conf)
	if err != nil {
		return StructureInfo{}, &parsererror.InvalidFormatError{
			FilePath:       pdfPath,
			ExpectedFormat: "PDF",
			Msg:            "structural validation failed",
			Err:            err,
		}
	}
	return StructureInfo{PageCount: ctx.PageCount}, nil
}
