package scenario

import (
	"math"
	"testing"

	"import-scenario-analyzer/internal/model"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestComputeCIF(t *testing.T) {
	cif, err := ComputeCIF(model.CIFQuote{
		FOBUSD:         1000,
		IntlFreightUSD: 200,
		FreightFeesBRL: 150,
		ExchangeRate:   5,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !almostEqual(cif, 6150) {
		t.Errorf("expected CIF 6150, got %v", cif)
	}
}

func TestComputeCIF_InvalidExchangeRate(t *testing.T) {
	_, err := ComputeCIF(model.CIFQuote{FOBUSD: 1000, ExchangeRate: 0})
	if err == nil {
		t.Error("expected error for zero exchange rate with USD amounts")
	}

	// Pure BRL quote needs no exchange rate
	cif, err := ComputeCIF(model.CIFQuote{FreightFeesBRL: 300})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cif != 300 {
		t.Errorf("expected 300, got %v", cif)
	}
}

func TestICMSFor(t *testing.T) {
	cases := []struct {
		scenario string
		want     float64
	}{
		{"Santos_DI_Conteiner", 180},
		{"Santos_DDC", 180},
		{"Paranagua_DDC", 180},
		{"Santos_DTA_Conteiner", 0},
		{"Paranagua_DTA_CrossDocking", 0},
	}

	for _, c := range cases {
		if got := ICMSFor(c.scenario, 1000); !almostEqual(got, c.want) {
			t.Errorf("ICMSFor(%s, 1000) = %v, want %v", c.scenario, got, c.want)
		}
	}
}

func TestProductTaxes_Cascade(t *testing.T) {
	taxes := ProductTaxes(model.ProductTaxRates{II: 10, IPI: 15, PIS: 2.1, COFINS: 9.65}, 1000)

	if !almostEqual(taxes.II, 100) {
		t.Errorf("II = %v, want 100", taxes.II)
	}
	// IPI on CIF+II = 1100
	if !almostEqual(taxes.IPI, 165) {
		t.Errorf("IPI = %v, want 165", taxes.IPI)
	}
	// PIS/COFINS on CIF+II+IPI = 1265
	if !almostEqual(taxes.PIS, 26.565) {
		t.Errorf("PIS = %v, want 26.565", taxes.PIS)
	}
	if !almostEqual(taxes.COFINS, 122.0725) {
		t.Errorf("COFINS = %v, want 122.0725", taxes.COFINS)
	}
	if !almostEqual(taxes.Total, 100+165+26.565+122.0725) {
		t.Errorf("Total = %v", taxes.Total)
	}
}

func TestFieldCost(t *testing.T) {
	quote := model.CIFQuote{FOBUSD: 1000, IntlFreightUSD: 100, ExchangeRate: 5}
	cif := 5600.0

	fixed := model.CostField{Type: model.CostFieldFixed, Value: 250}
	if got, err := FieldCost(fixed, quote, cif, 1); err != nil || !almostEqual(got, 250) {
		t.Errorf("fixed field = %v, %v", got, err)
	}

	pctCIF := model.CostField{Type: model.CostFieldPercentage, Rate: 0.02, Base: model.BaseCIF}
	if got, err := FieldCost(pctCIF, quote, cif, 1); err != nil || !almostEqual(got, 112) {
		t.Errorf("percentage of CIF = %v, %v", got, err)
	}

	// USD base converted at the exchange rate: 1000*5*0.01 = 50
	pctFOB := model.CostField{Type: model.CostFieldPercentage, Rate: 0.01, Base: model.BaseFOB}
	if got, err := FieldCost(pctFOB, quote, cif, 1); err != nil || !almostEqual(got, 50) {
		t.Errorf("percentage of FOB = %v, %v", got, err)
	}

	// Occupancy prorates the cost
	prorated := model.CostField{Type: model.CostFieldFixed, Value: 400, RateByOccupancy: true}
	if got, err := FieldCost(prorated, quote, cif, 0.5); err != nil || !almostEqual(got, 200) {
		t.Errorf("prorated field = %v, %v", got, err)
	}

	if _, err := FieldCost(model.CostField{Type: "weird"}, quote, cif, 1); err == nil {
		t.Error("expected error for unknown field type")
	}
}

func TestSimulate_RanksAscending(t *testing.T) {
	cfg := model.BranchConfig{
		Branch: "Cuiaba",
		Scenarios: map[string]model.ScenarioConfig{
			"Santos_DTA_Conteiner": {
				"Frete rodoviario": {Type: model.CostFieldFixed, Value: 900},
			},
			"Santos_DI_Conteiner": {
				"Frete rodoviario": {Type: model.CostFieldFixed, Value: 100},
			},
			"Paranagua_DTA_Conteiner": {
				"Frete rodoviario": {Type: model.CostFieldFixed, Value: 100},
			},
		},
	}
	req := model.SimulationRequest{
		Branch: "Cuiaba",
		Quote:  model.CIFQuote{FOBUSD: 200, ExchangeRate: 5},
	}

	result, err := Simulate(cfg, req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.CIF != 1000 {
		t.Fatalf("expected CIF 1000, got %v", result.CIF)
	}
	if len(result.Scenarios) != 3 {
		t.Fatalf("expected 3 scenarios, got %d", len(result.Scenarios))
	}

	// Paranagua_DTA: 1000+100 = 1100 (no ICMS)
	// Santos_DI:     1000+100+180 = 1280 (ICMS 18% of CIF)
	// Santos_DTA:    1000+900 = 1900
	if result.Best != "Paranagua_DTA_Conteiner" {
		t.Errorf("expected Paranagua_DTA_Conteiner best, got %s", result.Best)
	}
	for i := 1; i < len(result.Scenarios); i++ {
		if result.Scenarios[i-1].Total > result.Scenarios[i].Total {
			t.Errorf("scenarios not ascending at %d", i)
		}
	}
	if !almostEqual(result.Scenarios[1].Total, 1280) {
		t.Errorf("expected Santos_DI total 1280, got %v", result.Scenarios[1].Total)
	}
	if !almostEqual(result.Scenarios[1].ICMS, 180) {
		t.Errorf("expected ICMS 180, got %v", result.Scenarios[1].ICMS)
	}
}

func TestSimulate_TiesKeepDeclarationOrder(t *testing.T) {
	cfg := model.BranchConfig{
		Branch: "Ribeirao Preto",
		Scenarios: map[string]model.ScenarioConfig{
			"Paranagua_DTA_Conteiner": {},
			"Santos_DTA_Conteiner":    {},
		},
	}
	req := model.SimulationRequest{Quote: model.CIFQuote{FreightFeesBRL: 500}}

	result, err := Simulate(cfg, req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Both total 500; Santos declares before Paranagua.
	if result.Scenarios[0].ScenarioID != "Santos_DTA_Conteiner" {
		t.Errorf("tie order broken: %v", result.Scenarios)
	}
}

func TestSimulate_NoScenarios(t *testing.T) {
	_, err := Simulate(model.BranchConfig{Branch: "empty"}, model.SimulationRequest{})
	if err == nil {
		t.Error("expected error for empty branch config")
	}
}

func TestSimulate_ProductTaxesIncluded(t *testing.T) {
	cfg := model.BranchConfig{
		Branch: "Minas Gerais",
		Scenarios: map[string]model.ScenarioConfig{
			"Santos_DTA_Conteiner": {},
		},
	}
	req := model.SimulationRequest{
		Quote:   model.CIFQuote{FreightFeesBRL: 1000},
		Product: &model.ProductTaxRates{II: 10},
	}

	result, err := Simulate(cfg, req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sc := result.Scenarios[0]
	if sc.Taxes == nil || !almostEqual(sc.Taxes.II, 100) {
		t.Fatalf("expected II=100, got %+v", sc.Taxes)
	}
	if !almostEqual(sc.Total, 1100) {
		t.Errorf("expected total 1100, got %v", sc.Total)
	}
}
