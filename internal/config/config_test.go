package config

import (
	"strings"
	"testing"

	"diabex/domain/dataset"
	"diabex/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"PORT", "GIN_MODE", "LOG_LEVEL", "DATA_FILE", "IMPUTE_COLUMNS", "IMPUTE_SENTINEL", "SAMPLE_ROWS"} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "release", cfg.Server.GinMode)
	assert.Equal(t, DefaultDataFile, cfg.Data.File)
	assert.Equal(t, dataset.ZeroSentinelColumns, cfg.Data.ImputeColumns)
	assert.Equal(t, 0.0, cfg.Data.Sentinel)
	assert.Equal(t, 5, cfg.Data.SampleRows)
	assert.Equal(t, "INFO", cfg.Logging.Level)
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("DATA_FILE", "/tmp/pima.xlsx")
	t.Setenv("IMPUTE_COLUMNS", " Glucose, BMI ,")
	t.Setenv("SAMPLE_ROWS", "10")
	t.Setenv("GIN_MODE", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "/tmp/pima.xlsx", cfg.Data.File)
	assert.Equal(t, []string{"Glucose", "BMI"}, cfg.Data.ImputeColumns)
	assert.Equal(t, 10, cfg.Data.SampleRows)
}

func TestLoad_NoImputation(t *testing.T) {
	clearEnv(t)
	t.Setenv("IMPUTE_COLUMNS", "none")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Empty(t, cfg.Data.ImputeColumns)
}

func TestLoad_Invalid(t *testing.T) {
	tests := map[string]map[string]string{
		"unknown impute column": {"IMPUTE_COLUMNS": "Cholesterol"},
		"bad sentinel":          {"IMPUTE_SENTINEL": "zero"},
		"bad gin mode":          {"GIN_MODE": "loud"},
		"non-positive sample":   {"SAMPLE_ROWS": "0"},
		"non-integer sample":    {"SAMPLE_ROWS": "abc"},
		"fractional sample":     {"SAMPLE_ROWS": "2.5"},
		"NaN sentinel":          {"IMPUTE_SENTINEL": "NaN"},
		"infinite sentinel":     {"IMPUTE_SENTINEL": "-Inf"},
	}

	for name, env := range tests {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range env {
				t.Setenv(k, v)
			}
			_, err := Load()
			require.Error(t, err)
			assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))
		})
	}
}

func TestLoad_InvalidMessages(t *testing.T) {
	clearEnv(t)
	t.Setenv("SAMPLE_ROWS", "abc")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `SAMPLE_ROWS must be an integer, got "abc"`)

	clearEnv(t)
	t.Setenv("IMPUTE_COLUMNS", "Cholesterol")
	_, err = Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), strings.Join(dataset.SchemaColumnNames(), ", "))
}

func TestLoad_NegativeSentinel(t *testing.T) {
	clearEnv(t)
	t.Setenv("IMPUTE_SENTINEL", " -1 ")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, -1.0, cfg.Data.Sentinel)
}

func TestParseColumnList(t *testing.T) {
	defaults := []string{"Glucose"}

	assert.Equal(t, defaults, ParseColumnList("  ", defaults))
	assert.Empty(t, ParseColumnList("NONE", defaults))
	assert.Equal(t, []string{"BMI", "Insulin"}, ParseColumnList(" BMI, ,Insulin ", defaults))
}
