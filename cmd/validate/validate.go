// Package validate handles the PDF validation command
package validate

import (
	"fmt"

	"fjacquet/paystub-csv/cmd/root"
	"fjacquet/paystub-csv/internal/batch"
	"fjacquet/paystub-csv/internal/logging"
	"fjacquet/paystub-csv/internal/pdfparser"

	"github.com/spf13/cobra"
)

// Cmd represents the validate command
var Cmd = &cobra.Command{
	Use:   "validate PATH",
	Short: "Validate paystub PDFs",
	Long: `Validate the structure of every PDF in PATH and check that text can be
extracted from it. One status line is printed per file; the command fails if
any file does not validate.`,
	Args: cobra.ExactArgs(1),
	RunE: validateFunc,
}

func validateFunc(cmd *cobra.Command, args []string) error {
	appContainer := root.GetContainer()
	if appContainer == nil {
		return fmt.Errorf("container not initialized")
	}

	files, err := batch.ListInputs(args[0])
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no PDF files found in %s", args[0])
	}

	checker := pdfparser.NewAdapter(root.Log, appContainer.GetExtractor(), pdfparser.NewPdfcpuValidator())
	out := cmd.OutOrStdout()
	failed := 0
	for _, file := range files {
		info, err := checker.ValidateFormat(file)
		if err != nil {
			failed++
			root.Log.WithError(err).Warn("Validation failed",
				logging.Field{Key: logging.FieldFile, Value: file})
			_, _ = fmt.Fprintf(out, "FAIL %s: %v\n", file, err)
			continue
		}
		_, _ = fmt.Fprintf(out, "OK   %s (%d pages)\n", file, info.PageCount)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files failed validation", failed, len(files))
	}
	return nil
}
