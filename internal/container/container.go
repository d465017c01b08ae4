// Package container provides dependency injection for the paystub-csv application.
// It centralizes the creation and wiring of all application dependencies,
// making them explicit and testable.
package container

import (
	"context"
	"fmt"

	"fjacquet/paystub-csv/internal/archive"
	"fjacquet/paystub-csv/internal/batch"
	"fjacquet/paystub-csv/internal/config"
	"fjacquet/paystub-csv/internal/logging"
	"fjacquet/paystub-csv/internal/models"
	"fjacquet/paystub-csv/internal/paystubparser"
	"fjacquet/paystub-csv/internal/pdfparser"
	"fjacquet/paystub-csv/internal/report"
	"fjacquet/paystub-csv/internal/store"
	"fjacquet/paystub-csv/internal/validation"

	"github.com/shopspring/decimal"
)

// Container holds all application dependencies and provides methods to access them.
//
// Container is immutable after creation - all fields are private and can only
// be accessed through getter methods.
type Container struct {
	logger      logging.Logger
	config      *config.Config
	layoutStore *store.LayoutStore
	layout      models.Layout

	extractor    pdfparser.PDFExtractor
	textProvider *pdfparser.Adapter
	parser       *paystubparser.Adapter
	ytdValidator *validation.YTDValidator
	processor    *batch.Processor
	writer       *report.Writer
}

// NewContainer creates and wires all application dependencies, using the
// PDF extractor named by the configuration.
func NewContainer(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	return NewContainerWith(cfg, config.ConfigureLoggingFromConfig(cfg), nil)
}

// NewContainerWith wires the application around an explicit logger and PDF
// extractor. A nil extractor selects the one named by the configuration.
func NewContainerWith(cfg *config.Config, logger logging.Logger, extractor pdfparser.PDFExtractor) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	if logger == nil {
		logger = logging.GetLogger()
	}

	if extractor == nil {
		var err error
		if extractor, err = pdfparser.NewExtractor(cfg.PDF.Extractor); err != nil {
			return nil, err
		}
	}

	layoutStore := store.NewLayoutStore(cfg.Layout.File, logger)
	layout, err := layoutStore.LoadLayout()
	if err != nil {
		return nil, fmt.Errorf("failed to load layout: %w", err)
	}

	var structure pdfparser.StructureValidator
	if cfg.PDF.Validate {
		structure = pdfparser.NewPdfcpuValidator()
	}
	textProvider := pdfparser.NewAdapter(logger, extractor, structure)
	recordParser := paystubparser.NewAdapter(logger, textProvider, layout)

	ytdValidator := validation.NewYTDValidator(decimal.NewFromFloat(cfg.YTD.Tolerance), logger)
	processor := batch.NewProcessor(recordParser, ytdValidator, logger, batch.Options{
		SortByPayDate: cfg.Batch.SortByPayDate,
	})
	writer := report.NewWriter(logger, cfg.Delimiter(), layout.FieldOrder)

	logger.Debug("Container initialized successfully",
		logging.Field{Key: logging.FieldExtractor, Value: cfg.PDF.Extractor},
		logging.Field{Key: "layout_file", Value: cfg.Layout.File},
		logging.Field{Key: "deduction_labels", Value: len(layout.DeductionLabels)})

	return &Container{
		logger:       logger,
		config:       cfg,
		layoutStore:  layoutStore,
		layout:       layout,
		extractor:    extractor,
		textProvider: textProvider,
		parser:       recordParser,
		ytdValidator: ytdValidator,
		processor:    processor,
		writer:       writer,
	}, nil
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetLayout returns the effective layout.
func (c *Container) GetLayout() models.Layout {
	return c.layout
}

// GetLayoutStore returns the layout store.
func (c *Container) GetLayoutStore() *store.LayoutStore {
	return c.layoutStore
}

// GetExtractor returns the PDF page extractor.
func (c *Container) GetExtractor() pdfparser.PDFExtractor {
	return c.extractor
}

// GetTextProvider returns the PDF text provider.
func (c *Container) GetTextProvider() *pdfparser.Adapter {
	return c.textProvider
}

// GetParser returns the paystub record parser.
func (c *Container) GetParser() *paystubparser.Adapter {
	return c.parser
}

// GetYTDValidator returns the YTD validator.
func (c *Container) GetYTDValidator() *validation.YTDValidator {
	return c.ytdValidator
}

// GetProcessor returns the batch processor.
func (c *Container) GetProcessor() *batch.Processor {
	return c.processor
}

// GetWriter returns the output writer.
func (c *Container) GetWriter() *report.Writer {
	return c.writer
}

// OpenArchive opens the configured archive database. It returns nil when no
// database is configured.
func (c *Container) OpenArchive(ctx context.Context) (*archive.Store, error) {
	if c.config.Archive.Database == "" {
		return nil, nil
	}
	return archive.Open(ctx, c.config.Archive.Database, c.logger)
}

// Close performs cleanup of container resources.
func (c *Container) Close() error {
	c.logger.Debug("Container closed")
	return nil
}
