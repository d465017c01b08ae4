// Package common contains shared functionality for command handlers
package common

import (
	"context"
	"fmt"
	"io"

	"fjacquet/paystub-csv/internal/batch"
	"fjacquet/paystub-csv/internal/container"
	"fjacquet/paystub-csv/internal/logging"
	"fjacquet/paystub-csv/internal/models"
	"fjacquet/paystub-csv/internal/parsererror"
	"fjacquet/paystub-csv/internal/validation"

	"github.com/spf13/cobra"
)

// CommandContext returns the command's context, or a background context when
// the command runs outside Execute.
func CommandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// RecordArchive stores a batch of records.
type RecordArchive interface {
	Save(ctx context.Context, records []models.Record) (int, error)
}

// RecordWriter serializes a batch of records.
type RecordWriter interface {
	Write(out io.Writer, format string, records []models.Record) error
	WriteFile(path, format string, records []models.Record) error
}

// Output describes where and how records are written.
type Output struct {
	Format string
	File   string
	Stdout io.Writer
}

// Check rejects output settings that cannot be honored.
func (o Output) Check() error {
	if err := validation.IsValidOutputFormat(o.Format); err != nil {
		return err
	}
	if o.Format == validation.FormatXLSX && o.File == "" {
		return fmt.Errorf("the xlsx format requires --output-file")
	}
	return nil
}

// Emit archives records (when archive is non-nil) and writes them.
func Emit(ctx context.Context, records []models.Record, archive RecordArchive, writer RecordWriter, out Output) error {
	if len(records) == 0 {
		return parsererror.ErrNoRecords
	}
	if archive != nil {
		if _, err := archive.Save(ctx, records); err != nil {
			return fmt.Errorf("error archiving records: %w", err)
		}
	}
	if out.File != "" {
		return writer.WriteFile(out.File, out.Format, records)
	}
	return writer.Write(out.Stdout, out.Format, records)
}

// LogSummary reports the outcome of a batch run.
func LogSummary(logger logging.Logger, result batch.Result) {
	logger.Info("Batch complete",
		logging.Field{Key: "processed", Value: len(result.Records)},
		logging.Field{Key: logging.FieldSkipped, Value: len(result.Skipped)},
		logging.Field{Key: "regressions", Value: len(result.Regressions)},
		logging.Field{Key: "pay_dates", Value: result.PayDateRange().String()})
	for _, s := range result.Skipped {
		logger.Warn("Skipped document",
			logging.Field{Key: logging.FieldFile, Value: s.Path},
			logging.Field{Key: logging.FieldReason, Value: s.Reason})
	}
}

// ProcessBatch extracts every document under inputPath with the container's
// processor, then archives and writes the records.
func ProcessBatch(ctx context.Context, c *container.Container, inputPath string, out Output) (batch.Result, error) {
	if err := out.Check(); err != nil {
		return batch.Result{}, err
	}

	result, err := c.GetProcessor().Process(ctx, inputPath)
	if err != nil {
		return result, err
	}
	LogSummary(c.GetLogger(), result)
	if len(result.Records) == 0 {
		return result, parsererror.ErrNoRecords
	}

	var archive RecordArchive
	store, err := c.OpenArchive(ctx)
	if err != nil {
		return result, fmt.Errorf("error opening archive: %w", err)
	}
	if store != nil {
		defer func() {
			if err := store.Close(); err != nil {
				c.GetLogger().WithError(err).Warn("Failed to close archive")
			}
		}()
		archive = store
	}

	return result, Emit(ctx, result.Records, archive, c.GetWriter(), out)
}
