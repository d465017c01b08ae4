// Package config provides Viper-based hierarchical configuration management
package config

import (
	"errors"
	"fmt"
	"strings"

	"fjacquet/paystub-csv/internal/pdfparser"
	"fjacquet/paystub-csv/internal/validation"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable read by the configuration.
const EnvPrefix = "PAYSTUB"

// Config represents the complete application configuration
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	CSV struct {
		Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
	} `mapstructure:"csv" yaml:"csv"`

	Output struct {
		Format string `mapstructure:"format" yaml:"format"`
		File   string `mapstructure:"file" yaml:"file"`
	} `mapstructure:"output" yaml:"output"`

	PDF struct {
		Extractor string `mapstructure:"extractor" yaml:"extractor"`
		Validate  bool   `mapstructure:"validate" yaml:"validate"`
	} `mapstructure:"pdf" yaml:"pdf"`

	Layout struct {
		File string `mapstructure:"file" yaml:"file"`
	} `mapstructure:"layout" yaml:"layout"`

	YTD struct {
		Tolerance float64 `mapstructure:"tolerance" yaml:"tolerance"`
	} `mapstructure:"ytd" yaml:"ytd"`

	Batch struct {
		SortByPayDate bool `mapstructure:"sort_by_pay_date" yaml:"sort_by_pay_date"`
	} `mapstructure:"batch" yaml:"batch"`

	Archive struct {
		Database string `mapstructure:"database" yaml:"database"`
	} `mapstructure:"archive" yaml:"archive"`
}

// Delimiter returns the CSV delimiter as a rune.
func (c *Config) Delimiter() rune {
	r := []rune(c.CSV.Delimiter)
	if len(r) == 0 {
		return ','
	}
	return r[0]
}

// InitializeConfig loads defaults, then configFile (or config.yaml from the
// standard locations when configFile is empty), then PAYSTUB_* environment
// variables.
func InitializeConfig(configFile string) (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Config file locations
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.paystub-csv")
		v.AddConfigPath(".paystub-csv")
		v.AddConfigPath(".")
	}

	// 3. Environment variables
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// 4. Read config file (optional unless given explicitly)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file %s: %w", v.ConfigFileUsed(), err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 5. Validate configuration
	if err := ValidateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("csv.delimiter", ",")

	v.SetDefault("output.format", validation.FormatJSON)
	v.SetDefault("output.file", "")

	v.SetDefault("pdf.extractor", pdfparser.ExtractorNative)
	v.SetDefault("pdf.validate", false)

	v.SetDefault("layout.file", "")

	v.SetDefault("ytd.tolerance", validation.DefaultYTDTolerance.InexactFloat64())

	v.SetDefault("batch.sort_by_pay_date", false)

	v.SetDefault("archive.database", "")
}

// ValidateConfig validates the configuration values. It is also run after
// command-line flags have been applied.
func ValidateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if len([]rune(config.CSV.Delimiter)) != 1 {
		return fmt.Errorf("CSV delimiter must be a single character, got: %s", config.CSV.Delimiter)
	}

	if err := validation.IsValidOutputFormat(config.Output.Format); err != nil {
		return err
	}

	if _, err := pdfparser.NewExtractor(config.PDF.Extractor); err != nil {
		return err
	}

	if config.YTD.Tolerance < 0 {
		return fmt.Errorf("ytd.tolerance must not be negative, got: %f", config.YTD.Tolerance)
	}

	return nil
}
