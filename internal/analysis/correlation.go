package analysis

import (
	"encoding/json"
	"fmt"
	"math"

	"diabex/domain/core"
	"diabex/domain/dataset"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// CorrelationMatrix holds pairwise Pearson coefficients indexed by column name.
// The diagonal is always 1. Pairs involving a constant column are NaN.
type CorrelationMatrix struct {
	Columns []string
	values  *mat.SymDense
}

// At returns the coefficient between the i-th and j-th columns
func (m *CorrelationMatrix) At(i, j int) float64 {
	return m.values.At(i, j)
}

// Size returns the number of columns on each side
func (m *CorrelationMatrix) Size() int {
	return len(m.Columns)
}

// Rows returns the matrix as a dense row-major copy
func (m *CorrelationMatrix) Rows() [][]float64 {
	n := m.Size()
	rows := make([][]float64, n)
	for i := range rows {
		rows[i] = make([]float64, n)
		for j := range rows[i] {
			rows[i][j] = m.values.At(i, j)
		}
	}
	return rows
}

// MarshalJSON encodes undefined coefficients as null
func (m *CorrelationMatrix) MarshalJSON() ([]byte, error) {
	rows := m.Rows()
	values := make([][]*float64, len(rows))
	for i, row := range rows {
		values[i] = make([]*float64, len(row))
		for j, v := range row {
			values[i][j] = dataset.JSONFloat(v)
		}
	}
	return json.Marshal(struct {
		Columns []string     `json:"columns"`
		Values  [][]*float64 `json:"values"`
	}{Columns: m.Columns, Values: values})
}

// CorrelationMatrixFor computes pairwise Pearson correlation between the selected
// columns. It needs at least two distinct column names that exist in table.
func CorrelationMatrixFor(table *dataset.Table, columnNames []string) (*CorrelationMatrix, error) {
	if len(columnNames) < 2 {
		return nil, core.NewInvalidSelectionError(fmt.Sprintf("correlation needs at least 2 columns, got %d", len(columnNames)))
	}

	seen := make(map[string]bool, len(columnNames))
	columns := make([]dataset.Column, len(columnNames))
	for i, name := range columnNames {
		if seen[name] {
			return nil, core.NewInvalidSelectionError("duplicate column " + name)
		}
		col, ok := table.Column(name)
		if !ok {
			return nil, core.NewInvalidSelectionError("unknown column " + name)
		}
		seen[name] = true
		columns[i] = col
	}

	n := len(columns)
	values := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		values.SetSym(i, i, 1)
		for j := i + 1; j < n; j++ {
			values.SetSym(i, j, pearson(columns[i], columns[j]))
		}
	}

	return &CorrelationMatrix{
		Columns: append([]string(nil), columnNames...),
		values:  values,
	}, nil
}

// FullCorrelationMatrix correlates every column of the table with every other.
func FullCorrelationMatrix(table *dataset.Table) (*CorrelationMatrix, error) {
	return CorrelationMatrixFor(table, table.ColumnNames())
}

// pearson correlates the rows where both columns have a value.
func pearson(a, b dataset.Column) float64 {
	x := make([]float64, 0, a.Len())
	y := make([]float64, 0, a.Len())
	for i := 0; i < a.Len(); i++ {
		va, okA := a.Value(i)
		vb, okB := b.Value(i)
		if okA && okB {
			x = append(x, va)
			y = append(y, vb)
		}
	}
	if len(x) < 2 || isConstant(x) || isConstant(y) {
		return math.NaN()
	}

	r := stat.Correlation(x, y, nil)
	return math.Max(-1, math.Min(1, r))
}

func isConstant(values []float64) bool {
	for _, v := range values[1:] {
		if v != values[0] {
			return false
		}
	}
	return true
}
