// Package cleaning replaces sentinel "missing" readings with a column median.
package cleaning

import (
	"math"

	"diabex/domain/core"
	"diabex/domain/dataset"

	"github.com/montanaflynn/stats"
)

// Rule marks Sentinel as the "no reading" value of Column.
type Rule struct {
	Column   string  `json:"column"`
	Sentinel float64 `json:"sentinel"`
}

// Policy is the ordered set of columns to impute and their sentinel values.
type Policy struct {
	Rules []Rule `json:"rules"`
}

// Imputation records what one rule changed. Median is nil when the rule had
// nothing to replace and no valid value to take a median of.
type Imputation struct {
	Column   string   `json:"column"`
	Sentinel float64  `json:"sentinel"`
	Median   *float64 `json:"median,omitempty"`
	Replaced int      `json:"replaced"`
}

// NewPolicy builds a policy that treats sentinel as missing in every column.
func NewPolicy(sentinel float64, columns ...string) Policy {
	rules := make([]Rule, len(columns))
	for i, name := range columns {
		rules[i] = Rule{Column: name, Sentinel: sentinel}
	}
	return Policy{Rules: rules}
}

// DefaultPolicy treats 0 as missing in the physiological measurements that cannot be 0.
func DefaultPolicy() Policy {
	return NewPolicy(0, dataset.ZeroSentinelColumns...)
}

// Columns returns the column names the policy touches, in order.
func (p Policy) Columns() []string {
	names := make([]string, len(p.Rules))
	for i, r := range p.Rules {
		names[i] = r.Column
	}
	return names
}

// ReplaceZerosWithMedian replaces every 0 in the named columns with the median
// of that column's non-zero values. The input table is left untouched.
func ReplaceZerosWithMedian(table *dataset.Table, columnNames []string) (*dataset.Table, error) {
	out, _, err := NewPolicy(0, columnNames...).Apply(table)
	return out, err
}

// Apply runs every rule in order and returns the cleaned table plus a record
// per rule. A column whose values are all sentinel (or null) fails with
// core.ErrInsufficientData; nulls are neither replaced nor counted.
func (p Policy) Apply(table *dataset.Table) (*dataset.Table, []Imputation, error) {
	for _, rule := range p.Rules {
		if !table.HasColumn(rule.Column) {
			return nil, nil, core.NewMissingColumnError(rule.Column)
		}
	}

	records := make([]Imputation, 0, len(p.Rules))
	out := table

	for _, rule := range p.Rules {
		col, _ := out.Column(rule.Column)

		record := Imputation{Column: rule.Column, Sentinel: rule.Sentinel}
		median := nonSentinelMedian(col, rule.Sentinel)
		if !math.IsNaN(median) {
			record.Median = &median
		}

		replaced := col.CountEqual(rule.Sentinel)
		if replaced == 0 {
			records = append(records, record)
			continue
		}
		if record.Median == nil {
			return nil, nil, core.NewInsufficientDataError(rule.Column, rule.Sentinel)
		}

		cleaned := col.Map(func(v float64) float64 {
			if v == rule.Sentinel {
				return median
			}
			return v
		})

		next, err := out.WithColumn(cleaned)
		if err != nil {
			return nil, nil, err
		}
		out = next
		record.Replaced = replaced
		records = append(records, record)
	}

	return out, records, nil
}

// nonSentinelMedian returns NaN when no value other than the sentinel exists.
func nonSentinelMedian(col dataset.Column, sentinel float64) float64 {
	present := col.Present()
	valid := make([]float64, 0, len(present))
	for _, v := range present {
		if v != sentinel {
			valid = append(valid, v)
		}
	}
	median, err := stats.Median(valid)
	if err != nil {
		return math.NaN()
	}
	return median
}
