package main

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"diabex/domain/dataset"
	"diabex/internal/analysis"
	"diabex/internal/profiling"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#C89A3A")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	nameStyle   = cellStyle.Foreground(lipgloss.Color("#F0F0F0"))
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#4A4A4A"))
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#C89A3A"))
)

// newTable builds a bordered table whose first column holds row labels
func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 0:
				return nameStyle
			default:
				return cellStyle
			}
		}).
		Headers(headers...)
}

func printTable(w io.Writer, t *table.Table) error {
	_, err := fmt.Fprintln(w, t.Render())
	return err
}

// formatValue prints whole numbers without decimals and everything else to three places
func formatValue(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case v == math.Trunc(v) && math.Abs(v) < 1e15:
		return strconv.FormatFloat(v, 'f', 0, 64)
	default:
		return strconv.FormatFloat(v, 'f', 3, 64)
	}
}

func renderSummary(w io.Writer, summary []profiling.SummaryStatistics) error {
	t := newTable("column", "count", "mean", "std", "min", "25%", "50%", "75%", "max")
	for _, s := range summary {
		t.Row(s.Column, strconv.Itoa(s.Count),
			formatValue(s.Mean), formatValue(s.Std), formatValue(s.Min),
			formatValue(s.Q25), formatValue(s.Median), formatValue(s.Q75), formatValue(s.Max))
	}
	return printTable(w, t)
}

// renderCounts prints per-column counts in table column order
func renderCounts(w io.Writer, label string, columns []string, counts map[string]int) error {
	t := newTable("column", label)
	for _, name := range columns {
		t.Row(name, strconv.Itoa(counts[name]))
	}
	return printTable(w, t)
}

func renderOutcome(w io.Writer, counts []analysis.OutcomeCount) error {
	total := 0
	for _, c := range counts {
		total += c.Count
	}

	t := newTable("outcome", "count", "share")
	for _, c := range counts {
		share := 0.0
		if total > 0 {
			share = float64(c.Count) / float64(total) * 100
		}
		t.Row(strconv.Itoa(c.Outcome), strconv.Itoa(c.Count), fmt.Sprintf("%.1f%%", share))
	}
	return printTable(w, t)
}

func renderCorrelation(w io.Writer, m *analysis.CorrelationMatrix) error {
	t := newTable(append([]string{""}, m.Columns...)...)
	for i, values := range m.Rows() {
		row := []string{m.Columns[i]}
		for _, v := range values {
			row = append(row, strconv.FormatFloat(v, 'f', 2, 64))
		}
		t.Row(row...)
	}
	return printTable(w, t)
}

func renderBoxplots(w io.Writer, boxes []analysis.BoxplotStats) error {
	t := newTable("column", "count", "lower", "Q1", "median", "Q3", "upper", "IQR", "outliers")
	for _, b := range boxes {
		t.Row(b.Column, strconv.Itoa(b.Count),
			formatValue(b.LowerWhisker), formatValue(b.Q1), formatValue(b.Median),
			formatValue(b.Q3), formatValue(b.UpperWhisker), formatValue(b.IQR),
			strconv.Itoa(len(b.Outliers)))
	}
	return printTable(w, t)
}

func renderSample(w io.Writer, head *dataset.Table) error {
	names := head.ColumnNames()
	t := newTable(append([]string{"#"}, names...)...)
	for i := 0; i < head.RowCount(); i++ {
		row := []string{strconv.Itoa(i)}
		for _, name := range names {
			col, _ := head.Column(name)
			if v, ok := col.Value(i); ok {
				row = append(row, formatValue(v))
			} else {
				row = append(row, "")
			}
		}
		t.Row(row...)
	}
	if _, err := fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("%d rows", head.RowCount()))); err != nil {
		return err
	}
	return printTable(w, t)
}
