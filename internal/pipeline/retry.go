package pipeline

import (
	"context"
	"fmt"
	"time"

	"import-scenario-analyzer/internal/model"
	"import-scenario-analyzer/internal/store"
)

// RetryAnalysis re-runs an analysis from its stored spec. The uploaded file
// is kept on disk, so a failed or completed analysis can always be replayed.
func RetryAnalysis(analysisID string) error {
	spec, err := store.GetAnalysisSpec(analysisID)
	if err != nil {
		return fmt.Errorf("cannot load spec for analysis %s: %w", analysisID, err)
	}

	store.SaveAnalysisLog(analysisID, "pipeline", "info", "Re-running analysis", map[string]interface{}{
		"retried_at": time.Now().UTC(),
	})
	store.UpdateAnalysisStatus(analysisID, model.StatusPending)

	return Run(context.Background(), analysisID, spec)
}
