package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"import-scenario-analyzer/internal/model"
	"import-scenario-analyzer/internal/pipeline"
	"import-scenario-analyzer/internal/store"
	"import-scenario-analyzer/pkg/utils"
)

const uploadDir = "uploads"

// maxUploadBytes caps spreadsheet uploads at 16 MiB
const maxUploadBytes = 16 << 20

// rankingCache holds serialized rankings keyed by analysis ID
var rankingCache store.CacheRepository = store.NewMemoryCache()

// SetRankingCache swaps the ranking cache implementation (redis in prod,
// memory in tests).
func SetRankingCache(c store.CacheRepository) {
	rankingCache = c
}

// extractID pulls the analysis ID out of /api/v1/analyses/{id}<suffix>
// style paths. Returns "" when the path doesn't match.
func extractID(path, prefix, suffix string) string {
	if !strings.HasPrefix(path, prefix) || !strings.HasSuffix(path, suffix) {
		return ""
	}
	id := path[len(prefix) : len(path)-len(suffix)]
	if strings.Contains(id, "/") {
		return ""
	}
	return id
}

// CreateAnalysis uploads a cost spreadsheet and starts the ranking analysis
// @Summary Upload spreadsheet and rank scenarios
// @Description Upload a cost spreadsheet (CSV or JSON, first sheet only) and start a ranking analysis over the eight import scenarios
// @Tags analyses
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Cost spreadsheet"
// @Param transformations formData string false "Comma-separated transforms: trimStrings,parseBRLNumbers,dropEmptyRows"
// @Success 200 {object} map[string]interface{} "Analysis created"
// @Failure 400 {object} map[string]interface{} "Invalid upload"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /analyses [post]
func CreateAnalysis(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		http.Error(w, "Invalid multipart payload", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "A spreadsheet file is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	sourceType := ""
	switch strings.ToLower(filepath.Ext(header.Filename)) {
	case ".csv":
		sourceType = "csv"
	case ".json":
		sourceType = "json"
	default:
		http.Error(w, "Unsupported file type, expected .csv or .json", http.StatusBadRequest)
		return
	}

	analysisID := uuid.New().String()

	// Persist the upload so the analysis can be retried later
	dir := filepath.Join(uploadDir, analysisID)
	if err := os.MkdirAll(dir, 0755); err != nil {
		http.Error(w, "Failed to store upload", http.StatusInternalServerError)
		return
	}
	savedPath := filepath.Join(dir, filepath.Base(header.Filename))
	dst, err := os.Create(savedPath)
	if err != nil {
		http.Error(w, "Failed to store upload", http.StatusInternalServerError)
		return
	}
	if _, err := io.Copy(dst, file); err != nil {
		dst.Close()
		http.Error(w, "Failed to store upload", http.StatusInternalServerError)
		return
	}
	dst.Close()

	var transformations []string
	if raw := strings.TrimSpace(r.FormValue("transformations")); raw != "" {
		for _, t := range strings.Split(raw, ",") {
			transformations = append(transformations, strings.TrimSpace(t))
		}
	}

	spec := model.AnalysisSpec{
		Source:          model.Source{Type: sourceType, URL: savedPath},
		Transformations: transformations,
		JobTimeout:      r.FormValue("jobTimeout"),
		OriginalName:    header.Filename,
	}

	if err := store.SaveAnalysis(analysisID, spec); err != nil {
		http.Error(w, "Failed to save analysis", http.StatusInternalServerError)
		return
	}

	// Run the pipeline asynchronously
	ctx, cancel := context.WithTimeout(context.Background(), utils.ParseDuration(spec.JobTimeout))
	go func() {
		defer cancel()
		if err := pipeline.Run(ctx, analysisID, spec); err != nil {
			store.SaveAnalysisError(analysisID, err)
		}
	}()

	resp := map[string]interface{}{
		"message":    "Analysis created successfully!",
		"analysisID": analysisID,
		"status":     model.StatusPending,
		"fileName":   header.Filename,
		"createdAt":  time.Now().UTC(),
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// ListAnalyses retrieves all analyses
// @Summary List analyses
// @Description Get all ranking analyses with their current status
// @Tags analyses
// @Produce json
// @Success 200 {array} map[string]interface{} "List of analyses"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /analyses [get]
func ListAnalyses(w http.ResponseWriter, r *http.Request) {
	analyses, err := store.ListAnalyses()
	if err != nil {
		http.Error(w, "Failed to fetch analyses", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(analyses)
}

// GetAnalysis retrieves one analysis
// @Summary Get analysis
// @Description Retrieve the spec and status of one analysis
// @Tags analyses
// @Produce json
// @Param id path string true "Analysis ID"
// @Success 200 {object} map[string]interface{} "Analysis details"
// @Failure 404 {object} map[string]interface{} "Analysis not found"
// @Router /analyses/{id} [get]
func GetAnalysis(w http.ResponseWriter, r *http.Request) {
	analysisID := extractID(r.URL.Path, "/api/v1/analyses/", "")
	if analysisID == "" {
		http.Error(w, "Analysis ID is required", http.StatusBadRequest)
		return
	}

	analysis, err := store.GetAnalysis(analysisID)
	if err != nil {
		http.Error(w, "Analysis not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(analysis)
}

// GetAnalysisRanking retrieves the ranked scenario totals
// @Summary Get ranking
// @Description Retrieve the scenarios of an analysis ordered from cheapest to most expensive
// @Tags analyses
// @Produce json
// @Param id path string true "Analysis ID"
// @Success 200 {object} map[string]interface{} "Ranking"
// @Failure 404 {object} map[string]interface{} "Ranking not available"
// @Router /analyses/{id}/ranking [get]
func GetAnalysisRanking(w http.ResponseWriter, r *http.Request) {
	analysisID := extractID(r.URL.Path, "/api/v1/analyses/", "/ranking")
	if analysisID == "" {
		http.Error(w, "Analysis ID is required", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if cached, ok := rankingCache.Get(analysisID); ok {
		w.Write([]byte(cached))
		return
	}

	result, err := store.GetRanking(analysisID)
	if err != nil {
		http.Error(w, "Ranking not available", http.StatusNotFound)
		return
	}

	best, _ := result.Best()
	payload := map[string]interface{}{
		"analysis_id": analysisID,
		"ranking":     result,
		"best":        best.ScenarioID,
		"count":       len(result.Entries),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, "Failed to encode ranking", http.StatusInternalServerError)
		return
	}
	rankingCache.Set(analysisID, string(body))
	w.Write(body)
}

// GetAnalysisErrors retrieves errors recorded for an analysis
// @Summary Get analysis errors
// @Description Retrieve all errors recorded during an analysis run
// @Tags analyses
// @Produce json
// @Param id path string true "Analysis ID"
// @Success 200 {object} map[string]interface{} "Analysis errors"
// @Router /analyses/{id}/errors [get]
func GetAnalysisErrors(w http.ResponseWriter, r *http.Request) {
	analysisID := extractID(r.URL.Path, "/api/v1/analyses/", "/errors")
	if analysisID == "" {
		http.Error(w, "Analysis ID is required", http.StatusBadRequest)
		return
	}

	errors, err := store.GetAnalysisErrors(analysisID)
	if err != nil {
		http.Error(w, "Failed to retrieve errors", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"analysis_id": analysisID,
		"errors":      errors,
		"count":       len(errors),
	})
}

// GetAnalysisLogs retrieves structured stage logs
// @Summary Get analysis logs
// @Description Retrieve structured per-stage log rows of an analysis
// @Tags analyses
// @Produce json
// @Param id path string true "Analysis ID"
// @Param limit query int false "Max rows (default 100)"
// @Success 200 {object} map[string]interface{} "Analysis logs"
// @Router /analyses/{id}/logs [get]
func GetAnalysisLogs(w http.ResponseWriter, r *http.Request) {
	analysisID := extractID(r.URL.Path, "/api/v1/analyses/", "/logs")
	if analysisID == "" {
		http.Error(w, "Analysis ID is required", http.StatusBadRequest)
		return
	}

	limit := 100 // default
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	logs, err := store.GetAnalysisLogs(analysisID, limit)
	if err != nil {
		http.Error(w, "Failed to retrieve logs", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"analysis_id": analysisID,
		"logs":        logs,
		"count":       len(logs),
		"limit":       limit,
	})
}

// GetAnalysisProgress retrieves per-stage progress
// @Summary Get analysis progress
// @Description Retrieve per-stage progress rows of an analysis
// @Tags analyses
// @Produce json
// @Param id path string true "Analysis ID"
// @Success 200 {object} map[string]interface{} "Stage progress"
// @Router /analyses/{id}/progress [get]
func GetAnalysisProgress(w http.ResponseWriter, r *http.Request) {
	analysisID := extractID(r.URL.Path, "/api/v1/analyses/", "/progress")
	if analysisID == "" {
		http.Error(w, "Analysis ID is required", http.StatusBadRequest)
		return
	}

	progress, err := store.GetStageProgress(analysisID)
	if err != nil {
		http.Error(w, "Failed to retrieve progress", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"analysis_id": analysisID,
		"progress":    progress,
		"count":       len(progress),
	})
}

// GetAnalysisFiles retrieves the exported files of an analysis
// @Summary Get analysis files
// @Description Retrieve the exported ranking files of an analysis
// @Tags files
// @Produce json
// @Param id path string true "Analysis ID"
// @Success 200 {object} map[string]interface{} "Output files"
// @Router /analyses/{id}/files [get]
func GetAnalysisFiles(w http.ResponseWriter, r *http.Request) {
	analysisID := extractID(r.URL.Path, "/api/v1/analyses/", "/files")
	if analysisID == "" {
		http.Error(w, "Analysis ID is required", http.StatusBadRequest)
		return
	}

	files, err := store.GetOutputFiles(analysisID)
	if err != nil {
		http.Error(w, "Failed to retrieve files", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"analysis_id": analysisID,
		"files":       files,
		"count":       len(files),
	})
}

// RetryAnalysis re-runs an analysis from its stored spec
// @Summary Retry analysis
// @Description Re-run an analysis over its stored upload
// @Tags analyses
// @Produce json
// @Param id path string true "Analysis ID"
// @Success 200 {object} map[string]interface{} "Retry initiated"
// @Failure 404 {object} map[string]interface{} "Analysis not found"
// @Router /analyses/{id}/retry [post]
func RetryAnalysis(w http.ResponseWriter, r *http.Request) {
	analysisID := extractID(r.URL.Path, "/api/v1/analyses/", "/retry")
	if analysisID == "" {
		http.Error(w, "Analysis ID is required", http.StatusBadRequest)
		return
	}

	if _, err := store.GetAnalysis(analysisID); err != nil {
		http.Error(w, "Analysis not found", http.StatusNotFound)
		return
	}

	// The cached ranking is stale once a re-run starts
	rankingCache.Delete(analysisID)

	go func() {
		if err := pipeline.RetryAnalysis(analysisID); err != nil {
			fmt.Printf("❌ Retry failed for analysis %s: %v\n", analysisID, err)
		} else {
			fmt.Printf("✅ Retry successful for analysis %s\n", analysisID)
		}
	}()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message":     "Retry initiated",
		"analysis_id": analysisID,
		"status":      model.StatusPending,
	})
}

// DeleteAnalysis deletes an analysis and its artifacts
// @Summary Delete analysis
// @Description Delete an analysis, its upload and all exported files
// @Tags analyses
// @Produce json
// @Param id path string true "Analysis ID"
// @Success 200 {object} map[string]interface{} "Analysis deleted"
// @Failure 404 {object} map[string]interface{} "Analysis not found"
// @Router /analyses/{id} [delete]
func DeleteAnalysis(w http.ResponseWriter, r *http.Request) {
	analysisID := extractID(r.URL.Path, "/api/v1/analyses/", "")
	if analysisID == "" {
		http.Error(w, "Analysis ID is required", http.StatusBadRequest)
		return
	}

	if _, err := store.GetAnalysis(analysisID); err != nil {
		http.Error(w, "Analysis not found", http.StatusNotFound)
		return
	}

	files, err := store.GetOutputFiles(analysisID)
	if err != nil {
		store.SaveAnalysisLog(analysisID, "pipeline", "warning", "Failed to list files for deletion", map[string]interface{}{
			"error": err.Error(),
		})
	}

	for _, dir := range []string{filepath.Join("outputs", analysisID), filepath.Join(uploadDir, analysisID)} {
		if err := os.RemoveAll(dir); err != nil {
			store.SaveAnalysisLog(analysisID, "pipeline", "warning", "Failed to delete directory", map[string]interface{}{
				"directory": dir,
				"error":     err.Error(),
			})
		}
	}

	rankingCache.Delete(analysisID)

	if err := store.DeleteAnalysis(analysisID); err != nil {
		http.Error(w, "Failed to delete analysis", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message":       "Analysis and all artifacts deleted successfully",
		"analysis_id":   analysisID,
		"files_deleted": len(files),
	})
}

// DownloadFile serves an exported file for download
// @Summary Download file
// @Description Download an exported ranking file
// @Tags files
// @Produce application/octet-stream
// @Param id path string true "Analysis ID"
// @Param filename path string true "File name"
// @Success 200 {file} file "File download"
// @Failure 404 {object} map[string]interface{} "File not found"
// @Router /download/{id}/{filename} [get]
func DownloadFile(w http.ResponseWriter, r *http.Request) {
	// URL format: /api/v1/download/{analysisID}/{filename}
	pathParts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if len(pathParts) != 5 {
		http.Error(w, "Invalid URL format", http.StatusBadRequest)
		return
	}
	analysisID := pathParts[3]
	fileName := filepath.Base(pathParts[4])

	filePath := filepath.Join("outputs", analysisID, fileName)
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		http.Error(w, "File not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	w.Header().Set("Content-Type", "application/octet-stream")
	http.ServeFile(w, r, filePath)
}
