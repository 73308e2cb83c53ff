package handler

import (
	"encoding/json"
	"net/http"

	"import-scenario-analyzer/internal/model"
	"import-scenario-analyzer/internal/store"
)

// ListBranches retrieves the branches with a cost configuration
// @Summary List branches
// @Description Get the names of all branches with a stored cost configuration
// @Tags config
// @Produce json
// @Success 200 {object} map[string]interface{} "Branch names"
// @Router /config/branches [get]
func ListBranches(w http.ResponseWriter, r *http.Request) {
	branches, err := store.ListBranches()
	if err != nil {
		http.Error(w, "Failed to fetch branches", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"branches": branches,
		"count":    len(branches),
	})
}

// GetBranchConfig retrieves one branch's cost configuration
// @Summary Get branch config
// @Description Retrieve the per-scenario cost field configuration of a branch
// @Tags config
// @Produce json
// @Param branch path string true "Branch name"
// @Success 200 {object} model.BranchConfig "Branch configuration"
// @Failure 404 {object} map[string]interface{} "Branch not found"
// @Router /config/branches/{branch} [get]
func GetBranchConfig(w http.ResponseWriter, r *http.Request) {
	branch := extractID(r.URL.Path, "/api/v1/config/branches/", "")
	if branch == "" {
		http.Error(w, "Branch name is required", http.StatusBadRequest)
		return
	}

	cfg, err := store.GetBranchConfig(branch)
	if err != nil {
		http.Error(w, "Branch not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(cfg)
}

// PutBranchConfig creates or replaces a branch cost configuration
// @Summary Save branch config
// @Description Create or replace the per-scenario cost field configuration of a branch
// @Tags config
// @Accept json
// @Produce json
// @Param branch path string true "Branch name"
// @Param config body model.BranchConfig true "Branch configuration"
// @Success 200 {object} map[string]interface{} "Configuration saved"
// @Failure 400 {object} map[string]interface{} "Invalid configuration"
// @Router /config/branches/{branch} [put]
func PutBranchConfig(w http.ResponseWriter, r *http.Request) {
	branch := extractID(r.URL.Path, "/api/v1/config/branches/", "")
	if branch == "" {
		http.Error(w, "Branch name is required", http.StatusBadRequest)
		return
	}

	var cfg model.BranchConfig
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}
	// Path wins over body
	cfg.Branch = branch

	if len(cfg.Scenarios) == 0 {
		http.Error(w, "At least one scenario configuration is required", http.StatusBadRequest)
		return
	}
	for scenarioID, fields := range cfg.Scenarios {
		for name, field := range fields {
			if field.Type != "" && field.Type != model.CostFieldFixed && field.Type != model.CostFieldPercentage {
				http.Error(w, "Unknown cost field type in "+scenarioID+"/"+name, http.StatusBadRequest)
				return
			}
		}
	}

	if err := store.SaveBranchConfig(cfg); err != nil {
		http.Error(w, "Failed to save configuration", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message":   "Branch configuration saved",
		"branch":    branch,
		"scenarios": len(cfg.Scenarios),
	})
}

// DeleteBranchConfig deletes a branch cost configuration
// @Summary Delete branch config
// @Description Delete the cost configuration of a branch
// @Tags config
// @Produce json
// @Param branch path string true "Branch name"
// @Success 200 {object} map[string]interface{} "Configuration deleted"
// @Failure 404 {object} map[string]interface{} "Branch not found"
// @Router /config/branches/{branch} [delete]
func DeleteBranchConfig(w http.ResponseWriter, r *http.Request) {
	branch := extractID(r.URL.Path, "/api/v1/config/branches/", "")
	if branch == "" {
		http.Error(w, "Branch name is required", http.StatusBadRequest)
		return
	}

	if _, err := store.GetBranchConfig(branch); err != nil {
		http.Error(w, "Branch not found", http.StatusNotFound)
		return
	}

	if err := store.DeleteBranchConfig(branch); err != nil {
		http.Error(w, "Failed to delete configuration", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Branch configuration deleted",
		"branch":  branch,
	})
}

// ListScenarios retrieves the fixed scenario catalog
// @Summary List scenarios
// @Description Get the eight import scenarios in declaration order
// @Tags config
// @Produce json
// @Success 200 {object} map[string]interface{} "Scenario catalog"
// @Router /scenarios [get]
func ListScenarios(w http.ResponseWriter, r *http.Request) {
	scenarios := model.DefaultScenarios()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"scenarios": scenarios,
		"count":     len(scenarios),
	})
}
