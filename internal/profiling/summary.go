package profiling

import (
	"encoding/json"
	"math"

	"diabex/domain/core"
	"diabex/domain/dataset"

	"github.com/montanaflynn/stats"
)

// SummaryStatistics is the descriptive summary of one column's non-null values.
// Std is the sample standard deviation (n-1 denominator) and is NaN for fewer
// than two values; every statistic is NaN when Count is 0.
type SummaryStatistics struct {
	Column string
	Count  int
	Mean   float64
	Std    float64
	Min    float64
	Q25    float64
	Median float64
	Q75    float64
	Max    float64
}

// MarshalJSON encodes undefined statistics as null
func (s SummaryStatistics) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Column string   `json:"column"`
		Count  int      `json:"count"`
		Mean   *float64 `json:"mean"`
		Std    *float64 `json:"std"`
		Min    *float64 `json:"min"`
		Q25    *float64 `json:"25%"`
		Median *float64 `json:"50%"`
		Q75    *float64 `json:"75%"`
		Max    *float64 `json:"max"`
	}{
		Column: s.Column,
		Count:  s.Count,
		Mean:   dataset.JSONFloat(s.Mean),
		Std:    dataset.JSONFloat(s.Std),
		Min:    dataset.JSONFloat(s.Min),
		Q25:    dataset.JSONFloat(s.Q25),
		Median: dataset.JSONFloat(s.Median),
		Q75:    dataset.JSONFloat(s.Q75),
		Max:    dataset.JSONFloat(s.Max),
	})
}

// StatsEngine computes read-only descriptive views over a table
type StatsEngine struct{}

// NewStatsEngine creates a new stats engine
func NewStatsEngine() *StatsEngine {
	return &StatsEngine{}
}

// Summary describes every column in table order.
func (e *StatsEngine) Summary(table *dataset.Table) ([]SummaryStatistics, error) {
	if table.RowCount() == 0 {
		return nil, core.ErrEmptyTable
	}

	out := make([]SummaryStatistics, 0, table.ColumnCount())
	for _, col := range table.Columns() {
		summary, err := describe(col.Name(), col.Present())
		if err != nil {
			return nil, err
		}
		out = append(out, summary)
	}
	return out, nil
}

// MissingData counts null entries per column. A table read from a file with no
// empty cells yields 0 for every column.
func (e *StatsEngine) MissingData(table *dataset.Table) map[string]int {
	out := make(map[string]int, table.ColumnCount())
	for _, col := range table.Columns() {
		out[col.Name()] = col.NullCount()
	}
	return out
}

// NumberOfZeros counts entries exactly equal to 0 per column.
func (e *StatsEngine) NumberOfZeros(table *dataset.Table) map[string]int {
	out := make(map[string]int, table.ColumnCount())
	for _, col := range table.Columns() {
		out[col.Name()] = col.CountEqual(0)
	}
	return out
}

func describe(name string, data []float64) (SummaryStatistics, error) {
	nan := math.NaN()
	summary := SummaryStatistics{
		Column: name,
		Count:  len(data),
		Mean:   nan,
		Std:    nan,
		Min:    nan,
		Q25:    nan,
		Median: nan,
		Q75:    nan,
		Max:    nan,
	}
	if len(data) == 0 {
		return summary, nil
	}

	var err error
	if summary.Mean, err = stats.Mean(data); err != nil {
		return summary, err
	}
	if summary.Min, err = stats.Min(data); err != nil {
		return summary, err
	}
	if summary.Max, err = stats.Max(data); err != nil {
		return summary, err
	}
	if len(data) > 1 {
		if summary.Std, err = stats.StandardDeviationSample(data); err != nil {
			return summary, err
		}
	}

	sorted := Sorted(data)
	summary.Q25 = Quantile(sorted, 0.25)
	summary.Median = Quantile(sorted, 0.50)
	summary.Q75 = Quantile(sorted, 0.75)
	return summary, nil
}
