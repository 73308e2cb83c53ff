package pipeline

import (
	"context"
	"fmt"
	"io"
	"log"
	"sync"
	"time"

	"import-scenario-analyzer/internal/model"
	"import-scenario-analyzer/internal/ranking"
	"import-scenario-analyzer/internal/store"
	"import-scenario-analyzer/pkg/utils"
)

const channelBufferSize = 100

// ------------------- Pipeline Runner -------------------

// Run executes one analysis end to end: ingest the source, apply transforms,
// collect the dataset, compute the ranking, persist and export it. Status,
// per-stage progress and structured logs go through the store.
func Run(ctx context.Context, analysisID string, spec model.AnalysisSpec) (err error) {
	start := time.Now()
	fmt.Printf("🚀 Starting analysis: %s\n", analysisID)

	store.UpdateAnalysisStatus(analysisID, model.StatusIngesting)

	defer func() {
		if err != nil {
			store.UpdateAnalysisStatus(analysisID, model.StatusFailed)
			store.SaveAnalysisError(analysisID, err)
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, utils.ParseDuration(spec.JobTimeout))
	defer cancel()

	dataset, err := BuildDataset(ctx, analysisID, spec)
	if err != nil {
		return err
	}

	// --- RANKING STAGE ---
	rankStart := time.Now()
	store.UpdateAnalysisStatus(analysisID, model.StatusRanking)
	store.SaveStageProgress(analysisID, "ranking", "started", &rankStart, nil, dataset.RowCount(), 0)

	result, err := ranking.ComputeRanking(dataset, model.DefaultScenarios())
	if err != nil {
		rankEnd := time.Now()
		store.SaveStageProgress(analysisID, "ranking", "failed", &rankStart, &rankEnd, dataset.RowCount(), 1)
		store.SaveAnalysisLog(analysisID, "ranking", "error", "Ranking failed", map[string]interface{}{
			"error": err.Error(),
		})
		return err
	}
	result.SourceLabel = spec.OriginalName

	if err := store.SaveRanking(analysisID, result); err != nil {
		return fmt.Errorf("failed to persist ranking: %w", err)
	}

	rankEnd := time.Now()
	store.SaveStageProgress(analysisID, "ranking", "completed", &rankStart, &rankEnd, dataset.RowCount(), 0)
	best, _ := result.Best()
	store.SaveAnalysisLog(analysisID, "ranking", "info", "Ranking computed", map[string]interface{}{
		"rows":        dataset.RowCount(),
		"best":        best.ScenarioID,
		"best_total":  best.Total,
		"duration_ms": rankEnd.Sub(rankStart).Milliseconds(),
	})

	// --- EXPORT STAGE ---
	store.UpdateAnalysisStatus(analysisID, model.StatusExporting)
	if err := ExportRanking(analysisID, result); err != nil {
		return err
	}

	store.UpdateAnalysisStatus(analysisID, model.StatusCompleted)
	fmt.Printf("🏁 Analysis %s completed in %v: best scenario %s (R$ %s)\n",
		analysisID, time.Since(start), best.ScenarioID, utils.FormatBRL(best.Total))
	return nil
}

// BuildDataset runs the concurrent ingest/transform/collect stages and
// returns the assembled dataset.
func BuildDataset(ctx context.Context, analysisID string, spec model.AnalysisSpec) (*model.CostDataset, error) {
	headersCh := make(chan []string, 1)
	recordsCh := make(chan GenericRecord, channelBufferSize)
	transformedCh := make(chan GenericRecord, channelBufferSize)
	errorCh := make(chan error, channelBufferSize)

	// --- ERROR LOGGER ---
	var firstErr error
	var errMu sync.Mutex
	var errWg sync.WaitGroup
	errWg.Add(1)
	go func() {
		defer errWg.Done()
		for err := range errorCh {
			log.Printf("❌ Error in analysis %s: %v\n", analysisID, err)
			store.SaveAnalysisError(analysisID, err)
			errMu.Lock()
			if firstErr == nil {
				firstErr = err
			}
			errMu.Unlock()
		}
	}()

	// --- INGESTION STAGE ---
	var stagesWg sync.WaitGroup
	stagesWg.Add(1)
	go func() {
		defer stagesWg.Done()
		startTime := time.Now()
		store.SaveStageProgress(analysisID, "ingestion", "started", &startTime, nil, 0, 0)

		IngestSource(ctx, spec.Source, headersCh, recordsCh, errorCh)
		close(headersCh)
		close(recordsCh) // safe: only this goroutine closes recordsCh

		endTime := time.Now()
		store.SaveStageProgress(analysisID, "ingestion", "completed", &startTime, &endTime, 0, 0)
	}()

	// --- TRANSFORMATION STAGE ---
	store.UpdateAnalysisStatus(analysisID, model.StatusTransforming)
	numWorkers := spec.Workers.Transform
	if numWorkers == 0 {
		numWorkers = 2 // default
	}
	TransformRecords(ctx, spec.Transformations, recordsCh, transformedCh, errorCh, numWorkers)

	// --- COLLECTION ---
	dataset, err := CollectDataset(ctx, headersCh, transformedCh)

	// transformedCh is closed, so every stage has stopped sending errors
	stagesWg.Wait()
	close(errorCh)
	errWg.Wait()

	if err != nil {
		return nil, err
	}
	errMu.Lock()
	defer errMu.Unlock()
	if firstErr != nil {
		return nil, firstErr
	}
	return dataset, nil
}

// BuildDatasetFromReader ingests an already-open CSV stream synchronously.
// Used by the CLI and by handler tests.
func BuildDatasetFromReader(ctx context.Context, label string, reader io.Reader, transformations []string) (*model.CostDataset, error) {
	headersCh := make(chan []string, 1)
	recordsCh := make(chan GenericRecord, channelBufferSize)
	transformedCh := make(chan GenericRecord, channelBufferSize)
	errorCh := make(chan error, channelBufferSize)

	var firstErr error
	var errMu sync.Mutex
	var errWg sync.WaitGroup
	errWg.Add(1)
	go func() {
		defer errWg.Done()
		for err := range errorCh {
			errMu.Lock()
			if firstErr == nil {
				firstErr = err
			}
			errMu.Unlock()
		}
	}()

	go func() {
		IngestCSV(ctx, label, reader, headersCh, recordsCh, errorCh)
		close(headersCh)
		close(recordsCh)
	}()

	go TransformRecords(ctx, transformations, recordsCh, transformedCh, errorCh, 2)

	dataset, err := CollectDataset(ctx, headersCh, transformedCh)

	close(errorCh)
	errWg.Wait()

	if err != nil {
		return nil, err
	}
	errMu.Lock()
	defer errMu.Unlock()
	if firstErr != nil {
		return nil, firstErr
	}
	return dataset, nil
}
