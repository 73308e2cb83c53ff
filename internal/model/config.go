package model

// Cost field types for branch configuration.
const (
	CostFieldFixed      = "fixed"
	CostFieldPercentage = "percentage"
)

// Bases a percentage cost field can be charged on. FOB and international
// freight are USD amounts and get converted at the simulation exchange rate.
const (
	BaseCIF         = "Valor CIF"
	BaseFOB         = "Valor FOB"
	BaseIntlFreight = "Frete Internacional"
)

// CostField is one configurable cost line of a scenario: either a fixed BRL
// value or a percentage of a base amount, optionally prorated by container
// occupancy.
type CostField struct {
	Type            string  `json:"type"` // fixed or percentage
	Value           float64 `json:"value,omitempty"`
	Rate            float64 `json:"rate,omitempty"` // fraction, e.g. 0.015
	Base            string  `json:"base,omitempty"`
	RateByOccupancy bool    `json:"rateByOccupancy,omitempty"`
}

// ScenarioConfig maps cost field names (Frete rodoviário, Armazenagem,
// Taxa MAPA, ...) to their configuration for one scenario.
type ScenarioConfig map[string]CostField

// BranchConfig holds the cost base of one branch (filial): a ScenarioConfig
// per scenario ID.
type BranchConfig struct {
	Branch    string                    `json:"branch"`
	Scenarios map[string]ScenarioConfig `json:"scenarios"`
}
