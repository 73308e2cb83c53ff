package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"import-scenario-analyzer/internal/model"
	"import-scenario-analyzer/internal/scenario"
	"import-scenario-analyzer/internal/store"
)

// CreateSimulation runs a cost simulation against a branch configuration
// @Summary Run simulation
// @Description Compute the landed cost of every configured scenario for a branch and rank them from cheapest to most expensive
// @Tags simulations
// @Accept json
// @Produce json
// @Param request body model.SimulationRequest true "Simulation parameters"
// @Success 200 {object} model.SimulationResult "Ranked simulation result"
// @Failure 400 {object} map[string]interface{} "Invalid request"
// @Failure 404 {object} map[string]interface{} "Branch not found"
// @Router /simulations [post]
func CreateSimulation(w http.ResponseWriter, r *http.Request) {
	var req model.SimulationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}
	if req.Branch == "" {
		http.Error(w, "Branch is required", http.StatusBadRequest)
		return
	}

	cfg, err := store.GetBranchConfig(req.Branch)
	if err != nil {
		http.Error(w, "Branch not found", http.StatusNotFound)
		return
	}

	result, err := scenario.Simulate(cfg, req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := store.SaveSimulation(req, result); err != nil {
		store.SaveAnalysisLog(result.ID, "simulation", "warning", "Failed to persist simulation", map[string]interface{}{
			"error": err.Error(),
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// ListSimulations retrieves past simulation runs
// @Summary List simulations
// @Description Get the most recent simulation runs, newest first
// @Tags simulations
// @Produce json
// @Param limit query int false "Max rows (default 50)"
// @Success 200 {object} map[string]interface{} "Simulation history"
// @Router /simulations [get]
func ListSimulations(w http.ResponseWriter, r *http.Request) {
	limit := 50 // default
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	simulations, err := store.ListSimulations(limit)
	if err != nil {
		http.Error(w, "Failed to fetch simulations", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"simulations": simulations,
		"count":       len(simulations),
		"limit":       limit,
	})
}
