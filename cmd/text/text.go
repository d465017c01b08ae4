// Package text prints the text extracted from a paystub PDF
package text

import (
	"fmt"

	"fjacquet/paystub-csv/cmd/root"
	"fjacquet/paystub-csv/internal/parsererror"
	"fjacquet/paystub-csv/internal/validation"

	"github.com/spf13/cobra"
)

// Cmd represents the text command
var Cmd = &cobra.Command{
	Use:   "text FILE",
	Short: "Print the text extracted from a PDF",
	Long: `Print the line-delimited text the section parsers see for a single PDF.
Useful when a label is not picked up.`,
	Args: cobra.ExactArgs(1),
	RunE: textFunc,
}

func textFunc(cmd *cobra.Command, args []string) error {
	appContainer := root.GetContainer()
	if appContainer == nil {
		return fmt.Errorf("container not initialized")
	}

	path := args[0]
	if err := validation.IsValidPath(path); err != nil {
		return err
	}
	if !validation.IsPDFFile(path) {
		return &parsererror.ValidationError{FilePath: path, Reason: "not a PDF file"}
	}

	content, err := appContainer.GetTextProvider().ExtractText(path)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), content)
	return err
}
