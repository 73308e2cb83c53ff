package ranking

import (
	"errors"
	"reflect"
	"testing"

	"import-scenario-analyzer/internal/model"
)

func datasetFor(t *testing.T, rows []model.GenericRecord) *model.CostDataset {
	t.Helper()
	columns := make([]string, 0, 8)
	for _, sc := range model.DefaultScenarios() {
		columns = append(columns, sc.Column)
	}
	return model.NewCostDataset(columns, rows)
}

func zeroRow() model.GenericRecord {
	row := model.GenericRecord{}
	for _, sc := range model.DefaultScenarios() {
		row[sc.Column] = 0.0
	}
	return row
}

func TestComputeRanking_EightEntriesNoDuplicates(t *testing.T) {
	ds := datasetFor(t, []model.GenericRecord{zeroRow(), zeroRow()})

	result, err := ComputeRanking(ds, model.DefaultScenarios())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.Entries) != 8 {
		t.Fatalf("expected 8 entries, got %d", len(result.Entries))
	}

	seen := map[string]bool{}
	for _, e := range result.Entries {
		if seen[e.ScenarioID] {
			t.Errorf("duplicate scenario in result: %s", e.ScenarioID)
		}
		seen[e.ScenarioID] = true
	}
	for _, sc := range model.DefaultScenarios() {
		if !seen[sc.ID] {
			t.Errorf("scenario %s missing from result", sc.ID)
		}
	}
}

func TestComputeRanking_AscendingWithMinimumFirst(t *testing.T) {
	row1 := zeroRow()
	row2 := zeroRow()
	row1["Santos_DTA_Conteiner"] = 10.0
	row2["Santos_DTA_Conteiner"] = 20.0
	row1["Paranagua_DDC"] = 5.0
	row2["Paranagua_DDC"] = 5.0
	ds := datasetFor(t, []model.GenericRecord{row1, row2})

	result, err := ComputeRanking(ds, model.DefaultScenarios())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := 1; i < len(result.Entries); i++ {
		if result.Entries[i-1].Total > result.Entries[i].Total {
			t.Fatalf("entries not ascending at %d: %v > %v", i, result.Entries[i-1].Total, result.Entries[i].Total)
		}
	}

	// The six zero scenarios come first, Paranagua_DDC (10) next,
	// Santos_DTA_Conteiner (30) last.
	last := result.Entries[len(result.Entries)-1]
	if last.ScenarioID != "Santos_DTA_Conteiner" || last.Total != 30 {
		t.Errorf("expected Santos_DTA_Conteiner=30 last, got %s=%v", last.ScenarioID, last.Total)
	}
	seventh := result.Entries[6]
	if seventh.ScenarioID != "Paranagua_DDC" || seventh.Total != 10 {
		t.Errorf("expected Paranagua_DDC=10 in position 7, got %s=%v", seventh.ScenarioID, seventh.Total)
	}
}

func TestComputeRanking_TiesKeepDeclarationOrder(t *testing.T) {
	ds := datasetFor(t, []model.GenericRecord{zeroRow()})

	result, err := ComputeRanking(ds, model.DefaultScenarios())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i, sc := range model.DefaultScenarios() {
		if result.Entries[i].ScenarioID != sc.ID {
			t.Fatalf("tie order broken at %d: expected %s, got %s", i, sc.ID, result.Entries[i].ScenarioID)
		}
	}
}

func TestComputeRanking_Idempotent(t *testing.T) {
	row := zeroRow()
	row["Santos_DDC"] = 7.5
	row["Paranagua_DI_Conteiner"] = 3.25
	ds := datasetFor(t, []model.GenericRecord{row, zeroRow()})

	first, err := ComputeRanking(ds, model.DefaultScenarios())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := ComputeRanking(ds, model.DefaultScenarios())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reflect.DeepEqual(first.Entries, second.Entries) {
		t.Errorf("two runs on the same dataset differ:\n%v\n%v", first.Entries, second.Entries)
	}
}

func TestComputeRanking_MissingColumn(t *testing.T) {
	columns := []string{}
	for _, sc := range model.DefaultScenarios() {
		if sc.Column == "Santos_DDC" {
			continue
		}
		columns = append(columns, sc.Column)
	}
	ds := model.NewCostDataset(columns, []model.GenericRecord{zeroRow()})

	_, err := ComputeRanking(ds, model.DefaultScenarios())
	if err == nil {
		t.Fatal("expected MissingColumnError, got nil")
	}

	var missing *MissingColumnError
	if !errors.As(err, &missing) {
		t.Fatalf("expected *MissingColumnError, got %T: %v", err, err)
	}
	if missing.Column != "Santos_DDC" {
		t.Errorf("expected missing column Santos_DDC, got %s", missing.Column)
	}
}

func TestComputeRanking_NonNumericCell(t *testing.T) {
	row := zeroRow()
	row["Santos_DI_Conteiner"] = "not-a-number"
	ds := datasetFor(t, []model.GenericRecord{row})

	_, err := ComputeRanking(ds, model.DefaultScenarios())
	if err == nil {
		t.Fatal("expected TypeConversionError, got nil")
	}

	var conv *TypeConversionError
	if !errors.As(err, &conv) {
		t.Fatalf("expected *TypeConversionError, got %T: %v", err, err)
	}
	if conv.Column != "Santos_DI_Conteiner" {
		t.Errorf("expected column Santos_DI_Conteiner, got %s", conv.Column)
	}
}

func TestColumnSum_EmptyAndAbsentCellsAreZero(t *testing.T) {
	ds := datasetFor(t, []model.GenericRecord{
		{"Santos_DDC": 12.5},
		{"Santos_DDC": ""},
		{}, // cell absent entirely
		{"Santos_DDC": nil},
		{"Santos_DDC": "7.5"},
	})

	sum, err := ColumnSum(ds, "Santos_DDC")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sum != 20 {
		t.Errorf("expected 20, got %v", sum)
	}
}

func TestRankTotals_StableAndNonDestructive(t *testing.T) {
	entries := []model.ScenarioTotal{
		{ScenarioID: "a", Total: 3},
		{ScenarioID: "b", Total: 1},
		{ScenarioID: "c", Total: 1},
	}

	ranked := RankTotals(entries)

	if ranked[0].ScenarioID != "b" || ranked[1].ScenarioID != "c" || ranked[2].ScenarioID != "a" {
		t.Errorf("unexpected order: %v", ranked)
	}
	if entries[0].ScenarioID != "a" {
		t.Errorf("input slice was mutated: %v", entries)
	}
}
