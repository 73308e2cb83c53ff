package model

import "time"

// CIFQuote is the input of the CIF calculation: FOB and international
// freight in USD, local freight fees already in BRL.
type CIFQuote struct {
	FOBUSD         float64 `json:"fobUSD"`
	IntlFreightUSD float64 `json:"intlFreightUSD"`
	FreightFeesBRL float64 `json:"freightFeesBRL"`
	ExchangeRate   float64 `json:"exchangeRate"` // USD -> BRL
}

// ProductTaxRates are the product tax percentages applied on top of CIF.
type ProductTaxRates struct {
	Description string  `json:"description,omitempty"`
	II          float64 `json:"ii"`     // % on CIF
	IPI         float64 `json:"ipi"`    // % on CIF+II
	PIS         float64 `json:"pis"`    // % on CIF+II+IPI
	COFINS      float64 `json:"cofins"` // % on CIF+II+IPI
}

// TaxBreakdown is the computed product tax amounts in BRL.
type TaxBreakdown struct {
	II     float64 `json:"ii"`
	IPI    float64 `json:"ipi"`
	PIS    float64 `json:"pis"`
	COFINS float64 `json:"cofins"`
	Total  float64 `json:"total"`
}

// SimulationRequest runs the per-branch scenario comparison.
type SimulationRequest struct {
	Branch    string           `json:"branch"`
	Quote     CIFQuote         `json:"quote"`
	Occupancy float64          `json:"occupancy"` // container occupancy fraction, 0 means full
	Product   *ProductTaxRates `json:"product,omitempty"`
}

// ScenarioCost is one scenario's simulated cost with its components.
type ScenarioCost struct {
	ScenarioID string             `json:"scenario_id"`
	Total      float64            `json:"total"`
	ICMS       float64            `json:"icms"`
	Fields     map[string]float64 `json:"fields"`
	Taxes      *TaxBreakdown      `json:"taxes,omitempty"`
}

// SimulationResult is the ranked outcome of one simulation run.
type SimulationResult struct {
	ID        string         `json:"id"`
	Branch    string         `json:"branch"`
	CIF       float64        `json:"cif"`
	Scenarios []ScenarioCost `json:"scenarios"` // ascending by total
	Best      string         `json:"best"`
	CreatedAt time.Time      `json:"createdAt"`
}
