package config

import (
	"math"
	"os"
	"strconv"
	"strings"

	"diabex/domain/dataset"
	"diabex/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server  ServerConfig
	Data    DataConfig
	Logging LoggingConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// DataConfig holds dataset loading and cleaning settings
type DataConfig struct {
	File          string
	ImputeColumns []string
	Sentinel      float64
	SampleRows    int
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level string
}

// DefaultDataFile is where the dataset is read from when DATA_FILE is unset
const DefaultDataFile = "data/diabetes.csv"

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server:  *loadServerConfig(),
		Logging: LoggingConfig{Level: getEnvOrDefault("LOG_LEVEL", "INFO")},
	}

	dataConfig, err := loadDataConfig()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load data configuration")
	}
	config.Data = *dataConfig

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func loadServerConfig() *ServerConfig {
	return &ServerConfig{
		Port:    getEnvOrDefault("PORT", "8080"),
		GinMode: getEnvOrDefault("GIN_MODE", "release"),
	}
}

func loadDataConfig() (*DataConfig, error) {
	sentinel, err := getEnvFloatOrDefault("IMPUTE_SENTINEL", 0)
	if err != nil {
		return nil, err
	}
	// NaN never compares equal to a cell, so a NaN sentinel would replace nothing
	if math.IsNaN(sentinel) || math.IsInf(sentinel, 0) {
		return nil, errors.ConfigInvalid("IMPUTE_SENTINEL must be a finite number")
	}

	sampleRows, err := getEnvIntOrDefault("SAMPLE_ROWS", 5)
	if err != nil {
		return nil, err
	}

	return &DataConfig{
		File:          getEnvOrDefault("DATA_FILE", DefaultDataFile),
		ImputeColumns: getEnvListOrDefault("IMPUTE_COLUMNS", dataset.ZeroSentinelColumns),
		Sentinel:      sentinel,
		SampleRows:    sampleRows,
	}, nil
}

func validateConfig(config *Config) error {
	if strings.TrimSpace(config.Data.File) == "" {
		return errors.ConfigInvalid("data file is required")
	}
	if config.Data.SampleRows < 1 {
		return errors.ConfigInvalid("SAMPLE_ROWS must be positive")
	}
	for _, name := range config.Data.ImputeColumns {
		if _, ok := dataset.LookupColumnSpec(name); !ok {
			return errors.ConfigInvalid("IMPUTE_COLUMNS names unknown column " + name +
				" (known: " + strings.Join(dataset.SchemaColumnNames(), ", ") + ")")
		}
	}
	switch config.Server.GinMode {
	case "debug", "release", "test":
	default:
		return errors.ConfigInvalid("GIN_MODE must be debug, release or test")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue, nil
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		return 0, errors.ConfigInvalid(key + " must be an integer, got " + strconv.Quote(value))
	}
	return intValue, nil
}

func getEnvFloatOrDefault(key string, defaultValue float64) (float64, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue, nil
	}
	floatValue, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, errors.ConfigInvalid(key + " must be a number, got " + strconv.Quote(value))
	}
	return floatValue, nil
}

// getEnvListOrDefault reads a column list from key, see ParseColumnList
func getEnvListOrDefault(key string, defaultValue []string) []string {
	return ParseColumnList(os.Getenv(key), defaultValue)
}

// ParseColumnList splits a comma-separated column list, dropping blanks.
// An empty value yields defaultValue and "none" yields an empty list.
func ParseColumnList(value string, defaultValue []string) []string {
	value = strings.TrimSpace(value)
	if value == "" {
		return append([]string(nil), defaultValue...)
	}
	if strings.EqualFold(value, "none") {
		return []string{}
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
