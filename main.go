package main

import (
	"fmt"
	"os"

	"fjacquet/paystub-csv/cmd/extract"
	"fjacquet/paystub-csv/cmd/layout"
	"fjacquet/paystub-csv/cmd/root"
	"fjacquet/paystub-csv/cmd/text"
	"fjacquet/paystub-csv/cmd/validate"
)

func init() {
	root.Init()

	root.Cmd.AddCommand(extract.Cmd)
	root.Cmd.AddCommand(validate.Cmd)
	root.Cmd.AddCommand(text.Cmd)
	root.Cmd.AddCommand(layout.Cmd)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
