// Package dataset loads the diabetes risk indicator file into a typed Table.
//
// The loader accepts the fixed header set only. Columns may appear in any
// order and may be absent; views that need a specific column report its
// absence themselves.
package dataset

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"diabex/adapters/excel"
	"diabex/domain/core"
	"diabex/domain/dataset"
	"diabex/internal"
	"diabex/ports"
)

// nullTokens are cell values read as "no value", matching the common CSV conventions.
var nullTokens = map[string]bool{
	"":     true,
	"NA":   true,
	"N/A":  true,
	"NaN":  true,
	"nan":  true,
	"null": true,
	"NULL": true,
	"None": true,
}

// Loader reads a data file from disk into a dataset.Table
type Loader struct {
	config excel.ReaderConfig
	logger *internal.Logger
}

// NewLoader creates a loader with the default reader settings
func NewLoader(logger *internal.Logger) *Loader {
	return NewLoaderWithConfig(excel.DefaultReaderConfig(), logger)
}

// NewLoaderWithConfig creates a loader with custom reader settings
func NewLoaderWithConfig(config excel.ReaderConfig, logger *internal.Logger) *Loader {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &Loader{config: config, logger: logger}
}

// Load reads source and parses every column by its declared schema type.
func (l *Loader) Load(ctx context.Context, source string) (*dataset.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := time.Now()

	raw, err := excel.NewDataReader(source, l.config, l.logger).ReadData()
	if err != nil {
		return nil, err
	}

	specs, err := resolveHeaders(raw.Headers)
	if err != nil {
		return nil, err
	}

	columns := make([]dataset.Column, len(specs))
	for j, spec := range specs {
		values := make([]float64, len(raw.Rows))
		nulls := make([]bool, len(raw.Rows))
		for i, row := range raw.Rows {
			v, ok, err := parseCell(row[j], spec)
			if err != nil {
				return nil, core.NewParseError(raw.Lines[i], spec.Name, err.Error())
			}
			values[i] = v
			nulls[i] = !ok
		}
		col, err := dataset.NewColumnWithNulls(spec.Name, spec.Kind, values, nulls)
		if err != nil {
			return nil, err
		}
		columns[j] = col
	}

	table, err := dataset.NewTable(columns...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrParse, err)
	}

	l.logger.With("Loader").Info("Loaded %s: %d rows, %d columns in %s",
		source, table.RowCount(), table.ColumnCount(), time.Since(start).Round(time.Microsecond))
	return table, nil
}

func resolveHeaders(headers []string) ([]dataset.ColumnSpec, error) {
	specs := make([]dataset.ColumnSpec, len(headers))
	seen := make(map[string]bool, len(headers))
	for i, name := range headers {
		spec, ok := dataset.LookupColumnSpec(name)
		if !ok {
			return nil, core.NewParseError(1, name, "unknown column, expected one of "+strings.Join(dataset.SchemaColumnNames(), ", "))
		}
		if seen[name] {
			return nil, core.NewParseError(1, name, "duplicate column")
		}
		seen[name] = true
		specs[i] = spec
	}
	return specs, nil
}

// parseCell returns the numeric value of cell and false when the cell is null.
func parseCell(cell string, spec dataset.ColumnSpec) (float64, bool, error) {
	if nullTokens[cell] {
		return 0, false, nil
	}

	var v float64
	switch spec.Kind {
	case dataset.KindInteger:
		n, err := strconv.ParseInt(cell, 10, 64)
		if err == nil {
			v = float64(n)
			break
		}
		// spreadsheets export whole numbers as "148.0"
		f, ferr := strconv.ParseFloat(cell, 64)
		if ferr != nil || f != math.Trunc(f) || math.IsInf(f, 0) {
			return 0, false, fmt.Errorf("%q is not an integer", cell)
		}
		v = f
	default:
		f, err := strconv.ParseFloat(cell, 64)
		if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
			return 0, false, fmt.Errorf("%q is not a number", cell)
		}
		v = f
	}

	if spec.Binary && v != 0 && v != 1 {
		return 0, false, fmt.Errorf("%s must be 0 or 1, got %s", spec.Name, strings.TrimSpace(cell))
	}
	return v, true, nil
}

var _ ports.DatasetLoader = (*Loader)(nil)
