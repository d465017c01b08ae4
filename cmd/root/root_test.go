package root_test

import (
	"testing"

	"fjacquet/paystub-csv/cmd/root"
	"fjacquet/paystub-csv/internal/config"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_Metadata(t *testing.T) {
	assert.Equal(t, "paystub-csv", root.Cmd.Use)
	assert.Contains(t, root.Cmd.Short, "ADP paystub PDFs")
	assert.Contains(t, root.Cmd.Long, "year-to-date")
	assert.True(t, root.Cmd.SilenceUsage)
	assert.NotNil(t, root.Cmd.PersistentPreRunE)
}

func TestRootCommand_Flags(t *testing.T) {
	root.Init()
	root.Init()

	for _, name := range []string{
		root.FlagConfig,
		root.FlagLayout,
		root.FlagLogLevel,
		root.FlagLogFormat,
		root.FlagCSVDelimiter,
	} {
		assert.NotNil(t, root.Cmd.PersistentFlags().Lookup(name), name)
	}
}

func TestApplyFlags(t *testing.T) {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String(root.FlagLogLevel, "", "")
	flags.String(root.FlagCSVDelimiter, "", "")
	flags.String(root.FlagOutputFormat, "json", "")
	flags.Bool(root.FlagSortByPayDate, false, "")
	flags.Bool(root.FlagValidatePDF, false, "")
	require.NoError(t, flags.Parse([]string{
		"--log-level", "debug",
		"--csv-delimiter", ";",
		"--sort-by-pay-date",
	}))

	cfg := &config.Config{}
	cfg.Log.Level = "info"
	cfg.Output.Format = "csv"
	cfg.CSV.Delimiter = ","

	root.ApplyFlags(flags, cfg)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, ";", cfg.CSV.Delimiter)
	assert.Equal(t, "csv", cfg.Output.Format, "unset flag keeps configured value")
	assert.True(t, cfg.Batch.SortByPayDate)
	assert.False(t, cfg.PDF.Validate)
}

func TestGetContainer_BeforeInit(t *testing.T) {
	original := root.AppContainer
	defer func() { root.AppContainer = original }()

	root.AppContainer = nil
	assert.Nil(t, root.GetContainer())
}
