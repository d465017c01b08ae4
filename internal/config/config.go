// Package config loads the .env file and the application configuration, and
// builds the logger the configuration asks for.
package config

import (
	"os"
	"path/filepath"

	"fjacquet/paystub-csv/internal/logging"

	"github.com/joho/godotenv"
)

// LoadEnv loads environment variables from a .env file in the current or
// parent directory, if one exists. It returns the file loaded, or "".
func LoadEnv(logger logging.Logger) string {
	if logger == nil {
		logger = logging.GetLogger()
	}

	envFile := ".env"
	if _, err := os.Stat(envFile); os.IsNotExist(err) {
		envFile = filepath.Join("..", ".env")
		if _, err := os.Stat(envFile); os.IsNotExist(err) {
			logger.Debug("No .env file found, using environment variables")
			return ""
		}
	}

	// existing variables win over the file
	if err := godotenv.Load(envFile); err != nil {
		logger.WithError(err).Warn("Error loading .env file")
		return ""
	}
	logger.Debug("Loaded environment variables",
		logging.Field{Key: logging.FieldFile, Value: envFile})
	return envFile
}

// ConfigureLoggingFromConfig builds the logger described by config.
func ConfigureLoggingFromConfig(config *Config) logging.Logger {
	return logging.NewLogrusAdapterWithOutput(config.Log.Level, config.Log.Format, os.Stderr)
}
