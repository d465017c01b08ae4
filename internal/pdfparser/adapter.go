package pdfparser

import (
	"fmt"
	"strings"

	"fjacquet/paystub-csv/internal/logging"
	"fjacquet/paystub-csv/internal/parsererror"
)

// Extractor backend names.
const (
	ExtractorNative    = "native"
	ExtractorPdftotext = "pdftotext"
)

// NewExtractor returns the backend registered under name.
func NewExtractor(name string) (PDFExtractor, error) {
	switch strings.ToLower(name) {
	case "", ExtractorNative:
		return NewNativeExtractor(), nil
	case ExtractorPdftotext:
		return NewPdftotextExtractor(), nil
	default:
		return nil, fmt.Errorf("unknown PDF extractor %q (expected %s or %s)", name, ExtractorNative, ExtractorPdftotext)
	}
}

// Adapter is the text provider used by the paystub parser: optional
// structural validation, page extraction and page joining.
type Adapter struct {
	extractor PDFExtractor
	validator StructureValidator
	logger    logging.Logger
}

// NewAdapter creates an Adapter. A nil extractor selects the native backend;
// a nil validator disables structural validation.
func NewAdapter(logger logging.Logger, extractor PDFExtractor, validator StructureValidator) *Adapter {
	if logger == nil {
		logger = logging.GetLogger()
	}
	if extractor == nil {
		extractor = NewNativeExtractor()
	}
	return &Adapter{
		extractor: extractor,
		validator: validator,
		logger:    logger,
	}
}

// ExtractText returns the document text, pages joined by JoinPages. A panic
// in the backend is reported as a ParseError.
func (a *Adapter) ExtractText(pdfPath string) (text string, err error) {
	if a.validator != nil {
		if _, err := a.validator.Validate(pdfPath); err != nil {
			return "", err
		}
	}

	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = &parsererror.ParseError{
				Parser: "pdf",
				Field:  "document",
				Value:  pdfPath,
				Err:    fmt.Errorf("panic in text provider: %v", r),
			}
		}
	}()

	pages, err := a.extractor.ExtractPages(pdfPath)
	if err != nil {
		return "", err
	}
	a.logger.Debug("Extracted PDF text",
		logging.Field{Key: logging.FieldFile, Value: pdfPath},
		logging.Field{Key: logging.FieldCount, Value: len(pages)})
	return JoinPages(pages), nil
}

// ValidateFormat checks that pdfPath is structurally valid (when a validator
// is configured) and yields non-empty text.
func (a *Adapter) ValidateFormat(pdfPath string) (StructureInfo, error) {
	info := StructureInfo{}
	if a.validator != nil {
		var err error
		if info, err = a.validator.Validate(pdfPath); err != nil {
			return info, err
		}
	}

	plain := &Adapter{extractor: a.extractor, logger: a.logger}
	text, err := plain.ExtractText(pdfPath)
	if err != nil {
		return info, err
	}
	if strings.TrimSpace(text) == "" {
		return info, &parsererror.DataExtractionError{
			FilePath:  pdfPath,
			FieldName: "text",
			Msg:       "no text extracted",
			Reason:    "document is empty or image-only",
		}
	}
	return info, nil
}
