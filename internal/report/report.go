// Package report renders every exploration view of a session as one document.
//
// Each section is computed independently. A view that fails shows its error
// and the remaining sections still render.
package report

import (
	"fmt"
	"math"
	"strings"

	"diabex/domain/dataset"
	"diabex/internal/analysis"
	"diabex/internal/profiling"
	"diabex/internal/session"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// Options controls what the report includes
type Options struct {
	View       session.View
	SampleRows int
}

// DefaultOptions reports on the cleaned table with a five-row sample
func DefaultOptions() Options {
	return Options{View: session.ViewClean, SampleRows: 5}
}

// Markdown builds the report as GitHub-flavoured Markdown
func Markdown(s *session.Session, opts Options) string {
	table := s.Table(opts.View)
	engine := profiling.NewStatsEngine()

	var b strings.Builder
	fmt.Fprintf(&b, "# Diabetes Dataset Explorer\n\n")
	fmt.Fprintf(&b, "Source `%s`, %d rows, %d columns, %s data.\n\n", s.Source, table.RowCount(), table.ColumnCount(), opts.View)

	writeSample(&b, table, opts.SampleRows)
	if opts.View == session.ViewClean {
		writeImputations(&b, s)
	}
	writeSummary(&b, engine, table)
	writeCounts(&b, "Missing Values", table, engine.MissingData(table))
	writeCounts(&b, "Zero Value Counts", table, engine.NumberOfZeros(table))
	writeOutcome(&b, table)
	writeCorrelation(&b, table)

	return b.String()
}

// HTML renders the Markdown report as a complete HTML page
func HTML(s *session.Session, opts Options) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	renderer := html.NewRenderer(html.RendererOptions{
		Title: "Diabetes Dataset Explorer",
		Flags: html.CommonFlags | html.CompletePage,
	})
	return markdown.ToHTML([]byte(Markdown(s, opts)), p, renderer)
}

func writeSample(b *strings.Builder, table *dataset.Table, n int) {
	b.WriteString("## Dataset Sample\n\n")
	head := table.Head(n)
	if head.RowCount() == 0 {
		b.WriteString("_No rows._\n\n")
		return
	}

	names := head.ColumnNames()
	writeHeader(b, names...)
	for i := 0; i < head.RowCount(); i++ {
		cells := make([]string, len(names))
		for j, name := range names {
			col, _ := head.Column(name)
			v, _ := col.Value(i)
			cells[j] = formatFloat(v)
		}
		writeRow(b, cells...)
	}
	b.WriteString("\n")
}

func writeImputations(b *strings.Builder, s *session.Session) {
	b.WriteString("## Cleaning\n\n")
	if len(s.Imputations) == 0 {
		b.WriteString("_No columns imputed._\n\n")
		return
	}
	writeHeader(b, "Column", "Sentinel", "Median", "Replaced")
	for _, imp := range s.Imputations {
		median := math.NaN()
		if imp.Median != nil {
			median = *imp.Median
		}
		writeRow(b, imp.Column, formatFloat(imp.Sentinel), formatFloat(median), fmt.Sprint(imp.Replaced))
	}
	b.WriteString("\n")
}

func writeSummary(b *strings.Builder, engine *profiling.StatsEngine, table *dataset.Table) {
	b.WriteString("## Summary Statistics\n\n")
	summary, err := engine.Summary(table)
	if err != nil {
		writeError(b, err)
		return
	}
	writeHeader(b, "Column", "count", "mean", "std", "min", "25%", "50%", "75%", "max")
	for _, s := range summary {
		writeRow(b, s.Column, fmt.Sprint(s.Count),
			formatFloat(s.Mean), formatFloat(s.Std), formatFloat(s.Min),
			formatFloat(s.Q25), formatFloat(s.Median), formatFloat(s.Q75), formatFloat(s.Max))
	}
	b.WriteString("\n")
}

func writeCounts(b *strings.Builder, title string, table *dataset.Table, counts map[string]int) {
	fmt.Fprintf(b, "## %s\n\n", title)
	writeHeader(b, "Column", "Count")
	for _, name := range table.ColumnNames() {
		writeRow(b, name, fmt.Sprint(counts[name]))
	}
	b.WriteString("\n")
}

func writeOutcome(b *strings.Builder, table *dataset.Table) {
	b.WriteString("## Outcome Distribution\n\n")
	counts, err := analysis.OutcomeDistribution(table)
	if err != nil {
		writeError(b, err)
		return
	}
	writeHeader(b, "Outcome", "Count")
	for _, c := range analysis.SortedOutcomeCounts(counts) {
		writeRow(b, fmt.Sprint(c.Outcome), fmt.Sprint(c.Count))
	}
	b.WriteString("\n")
}

func writeCorrelation(b *strings.Builder, table *dataset.Table) {
	b.WriteString("## Correlation Matrix\n\n")
	m, err := analysis.FullCorrelationMatrix(table)
	if err != nil {
		writeError(b, err)
		return
	}
	writeHeader(b, append([]string{""}, m.Columns...)...)
	for i, name := range m.Columns {
		cells := []string{name}
		for j := range m.Columns {
			cells = append(cells, formatFloat(m.At(i, j)))
		}
		writeRow(b, cells...)
	}
	b.WriteString("\n")
}

func writeHeader(b *strings.Builder, cells ...string) {
	writeRow(b, cells...)
	seps := make([]string, len(cells))
	for i := range seps {
		seps[i] = "---"
	}
	writeRow(b, seps...)
}

func writeRow(b *strings.Builder, cells ...string) {
	b.WriteString("| ")
	b.WriteString(strings.Join(cells, " | "))
	b.WriteString(" |\n")
}

func writeError(b *strings.Builder, err error) {
	fmt.Fprintf(b, "> **Unavailable:** %s\n\n", err)
}

func formatFloat(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.3f", v)
}
