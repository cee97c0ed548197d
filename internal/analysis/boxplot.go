package analysis

import (
	"encoding/json"
	"math"

	"diabex/domain/core"
	"diabex/domain/dataset"
	"diabex/internal/profiling"

	"gonum.org/v1/gonum/floats"
)

// whiskerRange is the Tukey fence multiplier applied to the IQR
const whiskerRange = 1.5

// BoxplotStats is the five-number summary behind one feature boxplot.
// LowerWhisker and UpperWhisker are the most extreme values inside the fences.
type BoxplotStats struct {
	Column       string
	Count        int
	Q1           float64
	Median       float64
	Q3           float64
	IQR          float64
	LowerWhisker float64
	UpperWhisker float64
	Outliers     []float64
}

// MarshalJSON encodes undefined statistics as null
func (b BoxplotStats) MarshalJSON() ([]byte, error) {
	outliers := b.Outliers
	if outliers == nil {
		outliers = []float64{}
	}
	return json.Marshal(struct {
		Column       string    `json:"column"`
		Count        int       `json:"count"`
		Q1           *float64  `json:"q1"`
		Median       *float64  `json:"median"`
		Q3           *float64  `json:"q3"`
		IQR          *float64  `json:"iqr"`
		LowerWhisker *float64  `json:"lower_whisker"`
		UpperWhisker *float64  `json:"upper_whisker"`
		Outliers     []float64 `json:"outliers"`
	}{
		Column:       b.Column,
		Count:        b.Count,
		Q1:           dataset.JSONFloat(b.Q1),
		Median:       dataset.JSONFloat(b.Median),
		Q3:           dataset.JSONFloat(b.Q3),
		IQR:          dataset.JSONFloat(b.IQR),
		LowerWhisker: dataset.JSONFloat(b.LowerWhisker),
		UpperWhisker: dataset.JSONFloat(b.UpperWhisker),
		Outliers:     outliers,
	})
}

// Boxplots computes boxplot statistics for each selected column, in selection order.
func Boxplots(table *dataset.Table, columnNames []string) ([]BoxplotStats, error) {
	if len(columnNames) == 0 {
		return nil, core.NewInvalidSelectionError("select at least one feature")
	}
	if table.RowCount() == 0 {
		return nil, core.ErrEmptyTable
	}

	out := make([]BoxplotStats, 0, len(columnNames))
	for _, name := range columnNames {
		col, ok := table.Column(name)
		if !ok {
			return nil, core.NewMissingColumnError(name)
		}
		out = append(out, boxplot(name, col.Present()))
	}
	return out, nil
}

func boxplot(name string, data []float64) BoxplotStats {
	nan := math.NaN()
	box := BoxplotStats{
		Column:       name,
		Count:        len(data),
		Q1:           nan,
		Median:       nan,
		Q3:           nan,
		IQR:          nan,
		LowerWhisker: nan,
		UpperWhisker: nan,
	}
	if len(data) == 0 {
		return box
	}

	sorted := profiling.Sorted(data)
	box.Q1 = profiling.Quantile(sorted, 0.25)
	box.Median = profiling.Quantile(sorted, 0.5)
	box.Q3 = profiling.Quantile(sorted, 0.75)
	box.IQR = box.Q3 - box.Q1

	lowerFence := box.Q1 - whiskerRange*box.IQR
	upperFence := box.Q3 + whiskerRange*box.IQR

	inside := make([]float64, 0, len(sorted))
	for _, v := range sorted {
		if v < lowerFence || v > upperFence {
			box.Outliers = append(box.Outliers, v)
			continue
		}
		inside = append(inside, v)
	}
	if len(inside) > 0 {
		box.LowerWhisker = floats.Min(inside)
		box.UpperWhisker = floats.Max(inside)
	}
	return box
}
