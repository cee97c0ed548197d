package analysis

import (
	"sort"

	"diabex/domain/core"
	"diabex/domain/dataset"
)

// OutcomeCount is one bar of the class distribution chart
type OutcomeCount struct {
	Outcome int `json:"outcome"`
	Count   int `json:"count"`
}

// OutcomeDistribution counts each distinct non-null value of the Outcome column.
// Counts are raw, not proportions.
func OutcomeDistribution(table *dataset.Table) (map[int]int, error) {
	col, ok := table.Column(dataset.ColOutcome)
	if !ok {
		return nil, core.NewMissingColumnError(dataset.ColOutcome)
	}

	counts := make(map[int]int, 2)
	for _, v := range col.Present() {
		counts[int(v)]++
	}
	return counts, nil
}

// SortedOutcomeCounts orders a distribution by outcome value for display.
func SortedOutcomeCounts(counts map[int]int) []OutcomeCount {
	out := make([]OutcomeCount, 0, len(counts))
	for outcome, count := range counts {
		out = append(out, OutcomeCount{Outcome: outcome, Count: count})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Outcome < out[j].Outcome })
	return out
}
