package dataset

import (
	"fmt"
	"math"
)

// Kind is the declared value type of a column.
type Kind string

const (
	KindInteger Kind = "integer"
	KindFloat   Kind = "float"
)

// Column is a named, read-only sequence of numeric values with an optional null mask.
// All values are stored as float64; integer columns only ever hold whole numbers.
type Column struct {
	name   string
	kind   Kind
	values []float64
	nulls  []bool // nil when the column has no nulls
}

// NewColumn creates a column without nulls. The values slice is copied.
func NewColumn(name string, kind Kind, values []float64) Column {
	return Column{
		name:   name,
		kind:   kind,
		values: append([]float64(nil), values...),
	}
}

// NewColumnWithNulls creates a column where nulls[i] marks row i as absent.
func NewColumnWithNulls(name string, kind Kind, values []float64, nulls []bool) (Column, error) {
	if len(nulls) != len(values) {
		return Column{}, fmt.Errorf("column %s: %d values but %d null flags", name, len(values), len(nulls))
	}
	col := NewColumn(name, kind, values)
	for _, isNull := range nulls {
		if isNull {
			col.nulls = append([]bool(nil), nulls...)
			break
		}
	}
	return col, nil
}

func (c Column) Name() string { return c.name }
func (c Column) Kind() Kind   { return c.kind }
func (c Column) Len() int     { return len(c.values) }

// IsNull reports whether row i has no value.
func (c Column) IsNull(i int) bool {
	return c.nulls != nil && c.nulls[i]
}

// Value returns the value at row i and false when it is null.
func (c Column) Value(i int) (float64, bool) {
	if c.IsNull(i) {
		return math.NaN(), false
	}
	return c.values[i], true
}

// Values returns a copy of all values with nulls as NaN.
func (c Column) Values() []float64 {
	out := make([]float64, len(c.values))
	for i := range c.values {
		out[i], _ = c.Value(i)
	}
	return out
}

// Present returns a copy of the non-null values in row order.
func (c Column) Present() []float64 {
	out := make([]float64, 0, len(c.values))
	for i, v := range c.values {
		if !c.IsNull(i) {
			out = append(out, v)
		}
	}
	return out
}

// NullCount returns the number of absent entries.
func (c Column) NullCount() int {
	n := 0
	for i := range c.values {
		if c.IsNull(i) {
			n++
		}
	}
	return n
}

// CountEqual returns the number of non-null entries exactly equal to v.
func (c Column) CountEqual(v float64) int {
	n := 0
	for i, x := range c.values {
		if !c.IsNull(i) && x == v {
			n++
		}
	}
	return n
}

// Map returns a new column with fn applied to every non-null value.
// Nulls stay null. The receiver is not modified.
func (c Column) Map(fn func(float64) float64) Column {
	out := Column{
		name:   c.name,
		kind:   c.kind,
		values: make([]float64, len(c.values)),
	}
	if c.nulls != nil {
		out.nulls = append([]bool(nil), c.nulls...)
	}
	for i, v := range c.values {
		if c.IsNull(i) {
			out.values[i] = v
			continue
		}
		out.values[i] = fn(v)
	}
	return out
}

func (c Column) slice(n int) Column {
	out := Column{name: c.name, kind: c.kind, values: append([]float64(nil), c.values[:n]...)}
	if c.nulls != nil {
		out.nulls = append([]bool(nil), c.nulls[:n]...)
	}
	return out
}

// Table is an ordered collection of equally long columns. Rows are aligned by
// position across columns. A Table is never modified after construction;
// transformations return a new Table.
type Table struct {
	columns []Column
	index   map[string]int
	rows    int
}

// NewTable builds a table from columns in the given order.
func NewTable(columns ...Column) (*Table, error) {
	t := &Table{
		columns: make([]Column, 0, len(columns)),
		index:   make(map[string]int, len(columns)),
	}
	for i, col := range columns {
		if col.name == "" {
			return nil, fmt.Errorf("column %d has no name", i)
		}
		if _, dup := t.index[col.name]; dup {
			return nil, fmt.Errorf("duplicate column %s", col.name)
		}
		if i == 0 {
			t.rows = col.Len()
		} else if col.Len() != t.rows {
			return nil, fmt.Errorf("column %s has %d rows, expected %d", col.name, col.Len(), t.rows)
		}
		t.index[col.name] = i
		t.columns = append(t.columns, col)
	}
	return t, nil
}

// RowCount returns the number of rows
func (t *Table) RowCount() int { return t.rows }

// ColumnCount returns the number of columns
func (t *Table) ColumnCount() int { return len(t.columns) }

// ColumnNames returns the column names in table order
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.columns))
	for i, col := range t.columns {
		names[i] = col.name
	}
	return names
}

// HasColumn reports whether the table has a column with the given name
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Column looks a column up by name
func (t *Table) Column(name string) (Column, bool) {
	i, ok := t.index[name]
	if !ok {
		return Column{}, false
	}
	return t.columns[i], true
}

// Columns returns the columns in table order
func (t *Table) Columns() []Column {
	return append([]Column(nil), t.columns...)
}

// WithColumn returns a new table where the column of the same name is replaced
// by col, keeping its position.
func (t *Table) WithColumn(col Column) (*Table, error) {
	i, ok := t.index[col.name]
	if !ok {
		return nil, fmt.Errorf("cannot replace unknown column %s", col.name)
	}
	if col.Len() != t.rows {
		return nil, fmt.Errorf("column %s has %d rows, expected %d", col.name, col.Len(), t.rows)
	}
	columns := t.Columns()
	columns[i] = col
	return NewTable(columns...)
}

// Head returns a new table holding the first n rows.
func (t *Table) Head(n int) *Table {
	if n < 0 {
		n = 0
	}
	if n > t.rows {
		n = t.rows
	}
	columns := make([]Column, len(t.columns))
	for i, col := range t.columns {
		columns[i] = col.slice(n)
	}
	head, _ := NewTable(columns...)
	return head
}

// Row returns row i as a map of column name to value; nulls map to nil.
func (t *Table) Row(i int) map[string]*float64 {
	row := make(map[string]*float64, len(t.columns))
	for _, col := range t.columns {
		if v, ok := col.Value(i); ok {
			row[col.name] = &v
		} else {
			row[col.name] = nil
		}
	}
	return row
}
