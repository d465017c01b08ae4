// Package extract handles the paystub extraction command
package extract

import (
	"fmt"

	"fjacquet/paystub-csv/cmd/common"
	"fjacquet/paystub-csv/cmd/root"
	"fjacquet/paystub-csv/internal/logging"
	"fjacquet/paystub-csv/internal/validation"

	"github.com/spf13/cobra"
)

// Cmd represents the extract command
var Cmd = &cobra.Command{
	Use:   "extract PATH",
	Short: "Extract paystub PDFs to JSON or CSV",
	Long: `Extract every ADP paystub PDF in PATH (a single .pdf file or a directory
of them) into one record per document. Year-to-date columns are checked
across the batch and absent ones are forward-filled before the records are
written as JSON, a transposed CSV table, an XLSX sheet or a tidy CSV.`,
	Args: cobra.ExactArgs(1),
	RunE: extractFunc,
}

func init() {
	Cmd.Flags().String(root.FlagOutputFormat, validation.FormatJSON, "Output format (json, csv, xlsx, tidy)")
	Cmd.Flags().String(root.FlagOutputFile, "", "Output file (default: stdout)")
	Cmd.Flags().String(root.FlagArchiveDB, "", "SQLite database to archive the records in")
	Cmd.Flags().Bool(root.FlagSortByPayDate, false, "Order records by pay date instead of file name")
	Cmd.Flags().String(root.FlagExtractor, "native", "PDF text extractor (native, pdftotext)")
	Cmd.Flags().Bool(root.FlagValidatePDF, false, "Validate PDF structure before extraction")
}

func extractFunc(cmd *cobra.Command, args []string) error {
	appContainer := root.GetContainer()
	if appContainer == nil {
		return fmt.Errorf("container not initialized")
	}
	cfg := appContainer.GetConfig()

	root.Log.Info("Extract command called",
		logging.Field{Key: logging.FieldInputPath, Value: args[0]},
		logging.Field{Key: logging.FieldFormat, Value: cfg.Output.Format})

	_, err := common.ProcessBatch(common.CommandContext(cmd), appContainer, args[0], common.Output{
		Format: cfg.Output.Format,
		File:   cfg.Output.File,
		Stdout: cmd.OutOrStdout(),
	})
	return err
}
