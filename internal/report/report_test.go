package report

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"diabex/domain/dataset"
	"diabex/internal"
	"diabex/internal/cleaning"
	loader "diabex/internal/dataset"
	"diabex/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixtureSession(t *testing.T) *session.Session {
	t.Helper()
	s, err := session.New(context.Background(), loader.NewLoader(internal.Discard),
		cleaning.DefaultPolicy(), "../dataset/testdata/diabetes_head.csv", internal.Discard)
	require.NoError(t, err)
	return s
}

func TestMarkdown_AllSections(t *testing.T) {
	md := Markdown(fixtureSession(t), DefaultOptions())

	for _, heading := range []string{
		"## Dataset Sample",
		"## Cleaning",
		"## Summary Statistics",
		"## Missing Values",
		"## Zero Value Counts",
		"## Outcome Distribution",
		"## Correlation Matrix",
	} {
		assert.Contains(t, md, heading)
	}
	assert.Contains(t, md, "| 0 | 7 |")
	assert.Contains(t, md, "| 1 | 13 |")
	assert.NotContains(t, md, "Unavailable")
}

func TestMarkdown_RawViewSkipsCleaning(t *testing.T) {
	opts := DefaultOptions()
	opts.View = session.ViewRaw

	md := Markdown(fixtureSession(t), opts)
	assert.NotContains(t, md, "## Cleaning")
	assert.Contains(t, md, "raw data")
}

func TestMarkdown_FailedViewDoesNotHideOthers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.csv")
	require.NoError(t, os.WriteFile(path, []byte("Glucose,BMI\n0,30\n120,25\n80,0\n"), 0o644))

	s, err := session.New(context.Background(), loader.NewLoader(internal.Discard),
		cleaning.NewPolicy(0, dataset.ColGlucose, dataset.ColBMI), path, internal.Discard)
	require.NoError(t, err)

	md := Markdown(s, DefaultOptions())
	outcome := md[strings.Index(md, "## Outcome Distribution"):]
	assert.Contains(t, outcome, "Unavailable")
	assert.Contains(t, outcome, "Outcome")
	assert.Contains(t, md, "## Correlation Matrix\n\n| ")
}

func TestHTML_RendersTables(t *testing.T) {
	page := string(HTML(fixtureSession(t), DefaultOptions()))

	assert.Contains(t, page, "<html")
	assert.Contains(t, page, "<title>Diabetes Dataset Explorer</title>")
	assert.Contains(t, page, "<table>")
	assert.Contains(t, page, "Summary Statistics")
}

func TestFormatFloat(t *testing.T) {
	assert.Equal(t, "148", formatFloat(148))
	assert.Equal(t, "33.600", formatFloat(33.6))
	assert.Equal(t, "NaN", formatFloat(math.NaN()))
}
