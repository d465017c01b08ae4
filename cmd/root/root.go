// Package root contains the root command for the application
package root

import (
	"fmt"

	"fjacquet/paystub-csv/internal/config"
	"fjacquet/paystub-csv/internal/container"
	"fjacquet/paystub-csv/internal/logging"
	"fjacquet/paystub-csv/internal/pdfparser"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Flag names shared between the root command and its subcommands.
const (
	FlagConfig        = "config"
	FlagLayout        = "layout"
	FlagLogLevel      = "log-level"
	FlagLogFormat     = "log-format"
	FlagCSVDelimiter  = "csv-delimiter"
	FlagOutputFormat  = "output-format"
	FlagOutputFile    = "output-file"
	FlagArchiveDB     = "archive-db"
	FlagSortByPayDate = "sort-by-pay-date"
	FlagExtractor     = "extractor"
	FlagValidatePDF   = "validate-pdf"
)

var (
	// Log is the shared logger instance for commands
	Log logging.Logger = logging.GetLogger()

	// AppContainer holds the wired dependencies once PersistentPreRunE has run.
	AppContainer *container.Container

	// Extractor, when set, replaces the configured PDF extractor.
	Extractor pdfparser.PDFExtractor

	// ConfigFile is the explicit configuration file, if any.
	ConfigFile string

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "paystub-csv",
		Short: "A CLI tool to extract ADP paystub PDFs to JSON or CSV.",
		Long: `paystub-csv extracts pay-period dates, earnings, deductions and other
benefits from ADP paystub PDFs, checks year-to-date columns across the batch
and writes the records as JSON, a transposed CSV table, an XLSX sheet or a
tidy CSV.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: initialize,
	}

	initialized bool
)

// Init initializes the root command and all flags
func Init() {
	if initialized {
		return
	}
	initialized = true

	Cmd.PersistentFlags().StringVar(&ConfigFile, FlagConfig, "", "Configuration file (default: config.yaml in $HOME/.paystub-csv, .paystub-csv or .)")
	Cmd.PersistentFlags().String(FlagLayout, "", "Layout YAML file overriding the built-in label catalogs")
	Cmd.PersistentFlags().String(FlagLogLevel, "", "Log level (trace, debug, info, warn, error)")
	Cmd.PersistentFlags().String(FlagLogFormat, "", "Log format (text or json)")
	Cmd.PersistentFlags().String(FlagCSVDelimiter, "", "CSV delimiter character")
}

// GetContainer returns the application container, or nil before initialization.
func GetContainer() *container.Container {
	return AppContainer
}

// initialize loads .env and configuration, applies command-line overrides and
// wires the container.
func initialize(cmd *cobra.Command, args []string) error {
	config.LoadEnv(Log)

	cfg, err := config.InitializeConfig(ConfigFile)
	if err != nil {
		return err
	}
	ApplyFlags(cmd.Flags(), cfg)
	if err := config.ValidateConfig(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	Log = config.ConfigureLoggingFromConfig(cfg)
	c, err := container.NewContainerWith(cfg, Log, Extractor)
	if err != nil {
		return err
	}
	AppContainer = c
	return nil
}

// ApplyFlags copies every explicitly set flag of flags onto cfg. Flags that
// the running command does not define are ignored.
func ApplyFlags(flags *pflag.FlagSet, cfg *config.Config) {
	stringFlags := map[string]*string{
		FlagLayout:       &cfg.Layout.File,
		FlagLogLevel:     &cfg.Log.Level,
		FlagLogFormat:    &cfg.Log.Format,
		FlagCSVDelimiter: &cfg.CSV.Delimiter,
		FlagOutputFormat: &cfg.Output.Format,
		FlagOutputFile:   &cfg.Output.File,
		FlagArchiveDB:    &cfg.Archive.Database,
		FlagExtractor:    &cfg.PDF.Extractor,
	}
	for name, target := range stringFlags {
		if f := flags.Lookup(name); f != nil && f.Changed {
			*target = f.Value.String()
		}
	}

	boolFlags := map[string]*bool{
		FlagSortByPayDate: &cfg.Batch.SortByPayDate,
		FlagValidatePDF:   &cfg.PDF.Validate,
	}
	for name, target := range boolFlags {
		if f := flags.Lookup(name); f != nil && f.Changed {
			*target = f.Value.String() == "true"
		}
	}
}
