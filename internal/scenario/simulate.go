package scenario

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"import-scenario-analyzer/internal/model"
	"import-scenario-analyzer/internal/ranking"
)

// Simulate computes every configured scenario's total landed cost for one
// branch and returns them ranked ascending. Known scenarios keep the fixed
// declaration order on ties; extra configured scenarios follow alphabetically.
func Simulate(cfg model.BranchConfig, req model.SimulationRequest) (model.SimulationResult, error) {
	if len(cfg.Scenarios) == 0 {
		return model.SimulationResult{}, fmt.Errorf("branch %s has no configured scenarios", cfg.Branch)
	}

	occupancy := req.Occupancy
	if occupancy <= 0 || occupancy > 1 {
		occupancy = 1
	}

	cif, err := ComputeCIF(req.Quote)
	if err != nil {
		return model.SimulationResult{}, err
	}

	costs := make(map[string]model.ScenarioCost, len(cfg.Scenarios))
	totals := make([]model.ScenarioTotal, 0, len(cfg.Scenarios))

	for _, id := range scenarioOrder(cfg) {
		fields := cfg.Scenarios[id]
		cost := model.ScenarioCost{
			ScenarioID: id,
			Fields:     make(map[string]float64, len(fields)),
		}

		total := cif
		for name, field := range fields {
			amount, err := FieldCost(field, req.Quote, cif, occupancy)
			if err != nil {
				return model.SimulationResult{}, fmt.Errorf("scenario %s, field %s: %w", id, name, err)
			}
			cost.Fields[name] = amount
			total += amount
		}

		cost.ICMS = ICMSFor(id, cif)
		total += cost.ICMS

		if req.Product != nil {
			taxes := ProductTaxes(*req.Product, cif)
			cost.Taxes = &taxes
			total += taxes.Total
		}

		cost.Total = total
		costs[id] = cost
		totals = append(totals, model.ScenarioTotal{ScenarioID: id, Total: total})
	}

	ranked := ranking.RankTotals(totals)
	ordered := make([]model.ScenarioCost, 0, len(ranked))
	for _, entry := range ranked {
		ordered = append(ordered, costs[entry.ScenarioID])
	}

	return model.SimulationResult{
		ID:        uuid.New().String(),
		Branch:    cfg.Branch,
		CIF:       cif,
		Scenarios: ordered,
		Best:      ordered[0].ScenarioID,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// scenarioOrder fixes the pre-sort iteration order: the default scenario
// declaration order first, then any extra configured scenarios by name.
func scenarioOrder(cfg model.BranchConfig) []string {
	order := make([]string, 0, len(cfg.Scenarios))
	known := map[string]bool{}

	for _, sc := range model.DefaultScenarios() {
		if _, ok := cfg.Scenarios[sc.ID]; ok {
			order = append(order, sc.ID)
			known[sc.ID] = true
		}
	}

	var extra []string
	for id := range cfg.Scenarios {
		if !known[id] {
			extra = append(extra, id)
		}
	}
	sort.Strings(extra)

	return append(order, extra...)
}
