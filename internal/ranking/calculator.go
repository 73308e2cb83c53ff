package ranking

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"import-scenario-analyzer/internal/model"
)

// ComputeRanking sums each scenario's cost column over all dataset rows and
// returns the scenarios ordered ascending by total. The sort is stable, so
// equal totals keep the scenario declaration order. The dataset is not
// mutated.
//
// Empty or absent cells count as 0; a non-empty cell that cannot be parsed
// as a number aborts with *TypeConversionError. A dataset missing any
// scenario column aborts with *MissingColumnError.
func ComputeRanking(dataset *model.CostDataset, scenarios []model.Scenario) (model.RankingResult, error) {
	for _, sc := range scenarios {
		if !dataset.HasColumn(sc.Column) {
			return model.RankingResult{}, &MissingColumnError{Column: sc.Column}
		}
	}

	entries := make([]model.ScenarioTotal, 0, len(scenarios))
	for _, sc := range scenarios {
		total, err := ColumnSum(dataset, sc.Column)
		if err != nil {
			return model.RankingResult{}, err
		}
		entries = append(entries, model.ScenarioTotal{
			ScenarioID: sc.ID,
			Column:     sc.Column,
			Total:      total,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Total < entries[j].Total
	})

	return model.RankingResult{
		Entries:    entries,
		RowCount:   dataset.RowCount(),
		ComputedAt: time.Now().UTC().Format(time.RFC3339),
	}, nil
}

// ColumnSum adds up one column across all rows.
func ColumnSum(dataset *model.CostDataset, column string) (float64, error) {
	var sum float64
	for i, row := range dataset.Rows {
		val, ok := row[column]
		if !ok || val == nil {
			continue // absent cell sums as zero
		}
		num, convertible := toFloat(val)
		if !convertible {
			return 0, &TypeConversionError{Column: column, Row: i, Value: val}
		}
		sum += num
	}
	return sum, nil
}

// toFloat converts supported cell types to float64. Blank strings count as
// an empty cell and convert to 0.
func toFloat(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case string:
		if strings.TrimSpace(v) == "" {
			return 0, true
		}
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			return f, true
		}
		return 0, false
	default:
		return 0, false
	}
}

// RankTotals stable-sorts precomputed scenario totals ascending. The
// simulator reuses this so simulated and dataset rankings order the same way.
func RankTotals(entries []model.ScenarioTotal) []model.ScenarioTotal {
	ranked := make([]model.ScenarioTotal, len(entries))
	copy(ranked, entries)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Total < ranked[j].Total
	})
	return ranked
}
