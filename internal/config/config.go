package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Output formats for the scan and report commands.
const (
	FormatText = "text"
	FormatJSON = "json"
)

type Config struct {
	// Ledger sources
	CSVPath      string
	SQLiteDBPath string

	// Logging
	LogLevel string

	// Detection
	OutputFormat      string
	MaxBatchSize      int
	ParallelDetectors bool
}

func Load() *Config {
	return &Config{
		CSVPath:      getEnv("LEDGER_CSV_PATH", "transactions.csv"),
		SQLiteDBPath: getEnv("LEDGER_DB_PATH", "./data/ledger.db"),

		LogLevel: getEnv("LOG_LEVEL", "info"),

		OutputFormat:      getEnv("OUTPUT_FORMAT", FormatText),
		MaxBatchSize:      getEnvInt("MAX_BATCH_SIZE", 0),
		ParallelDetectors: getEnvBool("PARALLEL_DETECTORS", false),
	}
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	if c.CSVPath == "" && c.SQLiteDBPath == "" {
		errors = append(errors, "either LEDGER_CSV_PATH or LEDGER_DB_PATH must be set")
	}

	if c.OutputFormat != FormatText && c.OutputFormat != FormatJSON {
		errors = append(errors, fmt.Sprintf("invalid output format '%s': must be one of [%s %s]", c.OutputFormat, FormatText, FormatJSON))
	}

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		errors = append(errors, fmt.Sprintf("invalid log level '%s': must be debug, info, warn or error", c.LogLevel))
	}

	if c.MaxBatchSize < 0 {
		errors = append(errors, fmt.Sprintf("invalid max batch size %d: must be 0 (unlimited) or positive", c.MaxBatchSize))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
