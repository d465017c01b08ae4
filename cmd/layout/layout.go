// Package layout prints the effective paystub layout
package layout

import (
	"fmt"

	"fjacquet/paystub-csv/cmd/root"
	"fjacquet/paystub-csv/internal/store"

	"github.com/spf13/cobra"
)

// Cmd represents the layout command
var Cmd = &cobra.Command{
	Use:   "layout",
	Short: "Print the effective layout as YAML",
	Long: `Print the label catalogs and CSV field order in effect, built-in defaults
merged with the --layout file. The output is itself a valid layout file.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		appContainer := root.GetContainer()
		if appContainer == nil {
			return fmt.Errorf("container not initialized")
		}
		return store.WriteLayout(cmd.OutOrStdout(), appContainer.GetLayout())
	},
}
