package model

// Scenario is a named import-cost pathway: port × customs regime × handling.
// Column is the dataset column holding that scenario's cost figures.
type Scenario struct {
	ID       string `json:"id"`
	Column   string `json:"column"`
	Port     string `json:"port"`
	Regime   string `json:"regime"` // DTA, DI, DDC
	Handling string `json:"handling"`
}

// DefaultScenarios returns the eight fixed scenarios in declaration order.
// Both ranking iteration and column lookup derive from this single slice.
func DefaultScenarios() []Scenario {
	return []Scenario{
		{ID: "Santos_DTA_Conteiner", Column: "Santos_DTA_Conteiner", Port: "Santos", Regime: "DTA", Handling: "Conteiner"},
		{ID: "Santos_DTA_CrossDocking", Column: "Santos_DTA_CrossDocking", Port: "Santos", Regime: "DTA", Handling: "CrossDocking"},
		{ID: "Santos_DI_Conteiner", Column: "Santos_DI_Conteiner", Port: "Santos", Regime: "DI", Handling: "Conteiner"},
		{ID: "Santos_DDC", Column: "Santos_DDC", Port: "Santos", Regime: "DDC", Handling: "Direto"},
		{ID: "Paranagua_DTA_Conteiner", Column: "Paranagua_DTA_Conteiner", Port: "Paranagua", Regime: "DTA", Handling: "Conteiner"},
		{ID: "Paranagua_DTA_CrossDocking", Column: "Paranagua_DTA_CrossDocking", Port: "Paranagua", Regime: "DTA", Handling: "CrossDocking"},
		{ID: "Paranagua_DI_Conteiner", Column: "Paranagua_DI_Conteiner", Port: "Paranagua", Regime: "DI", Handling: "Conteiner"},
		{ID: "Paranagua_DDC", Column: "Paranagua_DDC", Port: "Paranagua", Regime: "DDC", Handling: "Direto"},
	}
}

// ScenarioTotal pairs a scenario with the summed cost of its column.
type ScenarioTotal struct {
	ScenarioID string  `json:"scenario_id"`
	Column     string  `json:"column"`
	Total      float64 `json:"total"`
}

// RankingResult is the scenarios ordered ascending by total cost.
// Equal totals keep the scenario declaration order.
type RankingResult struct {
	Entries     []ScenarioTotal `json:"entries"`
	RowCount    int             `json:"row_count"`
	ComputedAt  string          `json:"computed_at,omitempty"`
	SourceLabel string          `json:"source_label,omitempty"`
}

// Best returns the cheapest scenario, the first entry of the ranking.
func (r RankingResult) Best() (ScenarioTotal, bool) {
	if len(r.Entries) == 0 {
		return ScenarioTotal{}, false
	}
	return r.Entries[0], true
}
