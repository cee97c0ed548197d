package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"diabex/domain/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixture = "../../internal/dataset/testdata/diabetes_head.csv"

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	for _, key := range []string{"DATA_FILE", "IMPUTE_COLUMNS", "IMPUTE_SENTINEL", "SAMPLE_ROWS", "GIN_MODE", "LOG_LEVEL", "PORT"} {
		t.Setenv(key, "")
	}
	t.Setenv("LOG_LEVEL", "ERROR")

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(append(args, "--file", fixture))
	err := cmd.Execute()
	return out.String(), err
}

func TestSummaryJSON(t *testing.T) {
	out, err := run(t, "summary", "--json")
	require.NoError(t, err)

	var summary []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &summary))
	require.Len(t, summary, 9)
	assert.Equal(t, "Pregnancies", summary[0]["column"])
	assert.Equal(t, float64(20), summary[0]["count"])
}

func TestZeros_RawAndImputeFlag(t *testing.T) {
	out, err := run(t, "zeros", "--json", "--raw")
	require.NoError(t, err)
	var raw map[string]int
	require.NoError(t, json.Unmarshal([]byte(out), &raw))
	assert.Equal(t, 11, raw["Insulin"])

	out, err = run(t, "zeros", "--json")
	require.NoError(t, err)
	var clean map[string]int
	require.NoError(t, json.Unmarshal([]byte(out), &clean))
	assert.Equal(t, 0, clean["Insulin"])

	out, err = run(t, "zeros", "--json", "--impute", "none")
	require.NoError(t, err)
	var untouched map[string]int
	require.NoError(t, json.Unmarshal([]byte(out), &untouched))
	assert.Equal(t, 11, untouched["Insulin"])
}

func TestOutcomeTable(t *testing.T) {
	out, err := run(t, "outcome")
	require.NoError(t, err)
	assert.Contains(t, out, "13")
	assert.Contains(t, out, "65.0%")
}

func TestCorrSelection(t *testing.T) {
	out, err := run(t, "corr", "Glucose", "Outcome", "--json")
	require.NoError(t, err)

	var matrix struct {
		Columns []string    `json:"columns"`
		Values  [][]float64 `json:"values"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &matrix))
	assert.Equal(t, []string{"Glucose", "Outcome"}, matrix.Columns)
	assert.Equal(t, 1.0, matrix.Values[0][0])

	_, err = run(t, "corr", "Glucose")
	assert.True(t, core.IsInvalidSelectionError(err))
}

func TestBoxplotUnknownColumn(t *testing.T) {
	_, err := run(t, "boxplot", "Cholesterol")
	assert.True(t, core.IsMissingColumnError(err))
}

func TestSampleTable(t *testing.T) {
	out, err := run(t, "sample", "--rows", "2", "--raw")
	require.NoError(t, err)
	assert.Contains(t, out, "2 rows")
	assert.Contains(t, out, "148")
	assert.NotContains(t, out, "183")
}

func TestReportToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.html")
	_, err := run(t, "report", "--html", "-o", path)
	require.NoError(t, err)

	body, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(body), "<html")
	assert.Contains(t, string(body), "Correlation Matrix")
}

func TestMissingFile(t *testing.T) {
	for _, key := range []string{"DATA_FILE", "IMPUTE_COLUMNS", "IMPUTE_SENTINEL", "SAMPLE_ROWS", "GIN_MODE", "LOG_LEVEL", "PORT"} {
		t.Setenv(key, "")
	}
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"summary", "--file", filepath.Join(t.TempDir(), "absent.csv")})
	err := cmd.Execute()
	assert.True(t, core.IsNotFoundError(err))
}

func TestLoadDotEnv(t *testing.T) {
	t.Run("missing file is silent", func(t *testing.T) {
		var w bytes.Buffer
		loadDotEnv(&w, filepath.Join(t.TempDir(), ".env"))
		assert.Empty(t, w.String())
	})

	t.Run("unreadable file warns", func(t *testing.T) {
		var w bytes.Buffer
		loadDotEnv(&w, t.TempDir())
		assert.Contains(t, w.String(), "warning: failed to load .env")
	})

	t.Run("values are loaded", func(t *testing.T) {
		t.Setenv("SAMPLE_ROWS", "")
		require.NoError(t, os.Unsetenv("SAMPLE_ROWS"))
		path := filepath.Join(t.TempDir(), ".env")
		require.NoError(t, os.WriteFile(path, []byte("SAMPLE_ROWS=7\n"), 0o644))

		var w bytes.Buffer
		loadDotEnv(&w, path)
		assert.Empty(t, w.String())
		assert.Equal(t, "7", os.Getenv("SAMPLE_ROWS"))
	})
}
