package api

import (
	"encoding/json"
	"net/http"
	"time"

	httpSwagger "github.com/swaggo/http-swagger"

	"import-scenario-analyzer/internal/api/handler"
	"import-scenario-analyzer/pkg/router"
)

// RegisterRoutes wires every endpoint. Routes are matched in registration
// order, so the suffixed analysis routes come before the bare /analyses/*
// catch-all.
func RegisterRoutes(r *router.Router) {
	r.GET("/health", healthCheck)

	// Analyses
	r.POST("/api/v1/analyses", handler.CreateAnalysis)
	r.GET("/api/v1/analyses", handler.ListAnalyses)
	r.GET("/api/v1/analyses/*/ranking", handler.GetAnalysisRanking)
	r.GET("/api/v1/analyses/*/errors", handler.GetAnalysisErrors)
	r.GET("/api/v1/analyses/*/logs", handler.GetAnalysisLogs)
	r.GET("/api/v1/analyses/*/progress", handler.GetAnalysisProgress)
	r.GET("/api/v1/analyses/*/files", handler.GetAnalysisFiles)
	r.POST("/api/v1/analyses/*/retry", handler.RetryAnalysis)
	r.GET("/api/v1/analyses/*", handler.GetAnalysis)
	r.DELETE("/api/v1/analyses/*", handler.DeleteAnalysis)

	// Exported files
	r.GET("/api/v1/download/*", handler.DownloadFile)

	// Scenario catalog and branch cost configuration
	r.GET("/api/v1/scenarios", handler.ListScenarios)
	r.GET("/api/v1/config/branches", handler.ListBranches)
	r.GET("/api/v1/config/branches/*", handler.GetBranchConfig)
	r.PUT("/api/v1/config/branches/*", handler.PutBranchConfig)
	r.DELETE("/api/v1/config/branches/*", handler.DeleteBranchConfig)

	// Simulations
	r.POST("/api/v1/simulations", handler.CreateSimulation)
	r.GET("/api/v1/simulations", handler.ListSimulations)

	// Swagger UI
	r.GET("/swagger/*", httpSwagger.WrapHandler.ServeHTTP)
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status": "ok",
		"time":   time.Now().UTC(),
	})
}
