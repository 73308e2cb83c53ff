package store

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"import-scenario-analyzer/internal/model"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "analyzer-store-test")
	if err != nil {
		panic(err)
	}
	if err := InitDB(filepath.Join(dir, "test.db")); err != nil {
		panic(err)
	}
	code := m.Run()
	os.RemoveAll(dir)
	os.Exit(code)
}

func TestAnalysisLifecycle(t *testing.T) {
	spec := model.AnalysisSpec{
		Source:          model.Source{Type: "csv", URL: "uploads/abc/custos.csv"},
		Transformations: []string{"trimStrings"},
		OriginalName:    "custos.csv",
	}
	if err := SaveAnalysis("abc", spec); err != nil {
		t.Fatalf("SaveAnalysis: %v", err)
	}

	analysis, err := GetAnalysis("abc")
	if err != nil {
		t.Fatalf("GetAnalysis: %v", err)
	}
	if analysis["status"] != model.StatusPending {
		t.Errorf("expected pending, got %v", analysis["status"])
	}

	if err := UpdateAnalysisStatus("abc", model.StatusCompleted); err != nil {
		t.Fatalf("UpdateAnalysisStatus: %v", err)
	}
	analysis, _ = GetAnalysis("abc")
	if analysis["status"] != model.StatusCompleted {
		t.Errorf("expected completed, got %v", analysis["status"])
	}

	got, err := GetAnalysisSpec("abc")
	if err != nil {
		t.Fatalf("GetAnalysisSpec: %v", err)
	}
	if got.Source.URL != spec.Source.URL || got.OriginalName != spec.OriginalName {
		t.Errorf("spec round trip mismatch: %+v", got)
	}

	list, err := ListAnalyses()
	if err != nil || len(list) == 0 {
		t.Fatalf("ListAnalyses: %v, %d rows", err, len(list))
	}

	if err := DeleteAnalysis("abc"); err != nil {
		t.Fatalf("DeleteAnalysis: %v", err)
	}
	if _, err := GetAnalysis("abc"); err == nil {
		t.Error("expected error after delete")
	}
}

func TestRankingRoundTrip(t *testing.T) {
	spec := model.AnalysisSpec{Source: model.Source{Type: "csv", URL: "x.csv"}}
	if err := SaveAnalysis("rank-test", spec); err != nil {
		t.Fatalf("SaveAnalysis: %v", err)
	}

	result := model.RankingResult{
		Entries: []model.ScenarioTotal{
			{ScenarioID: "Paranagua_DDC", Column: "Paranagua_DDC", Total: 10},
			{ScenarioID: "Santos_DTA_Conteiner", Column: "Santos_DTA_Conteiner", Total: 30},
		},
		RowCount: 2,
	}
	if err := SaveRanking("rank-test", result); err != nil {
		t.Fatalf("SaveRanking: %v", err)
	}

	got, err := GetRanking("rank-test")
	if err != nil {
		t.Fatalf("GetRanking: %v", err)
	}
	if len(got.Entries) != 2 || got.Entries[0].ScenarioID != "Paranagua_DDC" {
		t.Errorf("positions not preserved: %+v", got.Entries)
	}
	if got.RowCount != 2 {
		t.Errorf("expected row count 2, got %d", got.RowCount)
	}

	// Re-saving replaces instead of appending
	if err := SaveRanking("rank-test", result); err != nil {
		t.Fatalf("SaveRanking again: %v", err)
	}
	got, _ = GetRanking("rank-test")
	if len(got.Entries) != 2 {
		t.Errorf("expected 2 entries after re-save, got %d", len(got.Entries))
	}

	if _, err := GetRanking("missing"); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("expected ErrNoRows, got %v", err)
	}
}

func TestBranchConfigUpsert(t *testing.T) {
	cfg := model.BranchConfig{
		Branch: "Campinas",
		Scenarios: map[string]model.ScenarioConfig{
			"Santos_DDC": {"Armazenagem": {Type: model.CostFieldFixed, Value: 500}},
		},
	}
	if err := SaveBranchConfig(cfg); err != nil {
		t.Fatalf("SaveBranchConfig: %v", err)
	}

	cfg.Scenarios["Santos_DDC"]["Armazenagem"] = model.CostField{Type: model.CostFieldFixed, Value: 750}
	if err := SaveBranchConfig(cfg); err != nil {
		t.Fatalf("SaveBranchConfig upsert: %v", err)
	}

	got, err := GetBranchConfig("Campinas")
	if err != nil {
		t.Fatalf("GetBranchConfig: %v", err)
	}
	if got.Scenarios["Santos_DDC"]["Armazenagem"].Value != 750 {
		t.Errorf("upsert did not replace config: %+v", got.Scenarios)
	}

	branches, err := ListBranches()
	if err != nil {
		t.Fatalf("ListBranches: %v", err)
	}
	found := false
	for _, b := range branches {
		if b == "Campinas" {
			found = true
		}
	}
	if !found {
		t.Errorf("Campinas missing from %v", branches)
	}

	if err := DeleteBranchConfig("Campinas"); err != nil {
		t.Fatalf("DeleteBranchConfig: %v", err)
	}
	if _, err := GetBranchConfig("Campinas"); err == nil {
		t.Error("expected error after delete")
	}
}

func TestMemoryCache(t *testing.T) {
	c := NewMemoryCache()

	if _, ok := c.Get("k"); ok {
		t.Error("expected miss on empty cache")
	}
	if err := c.Set("k", "v"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if v, ok := c.Get("k"); !ok || v != "v" {
		t.Errorf("expected hit with v, got %q %v", v, ok)
	}
	if err := c.Delete("k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok := c.Get("k"); ok {
		t.Error("expected miss after delete")
	}
}
