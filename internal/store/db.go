package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"import-scenario-analyzer/internal/model"

	_ "github.com/mattn/go-sqlite3"
)

var db *sql.DB

// InitDB opens the sqlite database and creates the schema
func InitDB(dbPath string) error {
	var err error
	db, err = sql.Open("sqlite3", dbPath)
	if err != nil {
		return err
	}

	schema := []string{
		`CREATE TABLE IF NOT EXISTS analyses (
			id TEXT PRIMARY KEY,
			spec TEXT,
			status TEXT,
			created_at DATETIME,
			updated_at DATETIME
		);`,
		`CREATE TABLE IF NOT EXISTS analysis_errors (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			analysis_id TEXT,
			error_message TEXT,
			created_at DATETIME
		);`,
		`CREATE TABLE IF NOT EXISTS analysis_logs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			analysis_id TEXT,
			stage TEXT,
			level TEXT,
			message TEXT,
			details TEXT,
			created_at DATETIME
		);`,
		`CREATE TABLE IF NOT EXISTS stage_progress (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			analysis_id TEXT,
			stage TEXT,
			status TEXT,
			started_at DATETIME,
			ended_at DATETIME,
			record_count INTEGER,
			error_count INTEGER
		);`,
		`CREATE TABLE IF NOT EXISTS rankings (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			analysis_id TEXT,
			position INTEGER,
			scenario_id TEXT,
			column_name TEXT,
			total REAL,
			row_count INTEGER,
			created_at DATETIME
		);`,
		`CREATE TABLE IF NOT EXISTS output_files (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			analysis_id TEXT,
			file_name TEXT,
			file_path TEXT,
			file_type TEXT,
			file_size INTEGER,
			created_at DATETIME
		);`,
		`CREATE TABLE IF NOT EXISTS branch_configs (
			branch TEXT PRIMARY KEY,
			config TEXT,
			updated_at DATETIME
		);`,
		`CREATE TABLE IF NOT EXISTS simulations (
			id TEXT PRIMARY KEY,
			branch TEXT,
			request TEXT,
			result TEXT,
			created_at DATETIME
		);`,
	}

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// ------------------- Analyses -------------------

// SaveAnalysis stores a new analysis job
func SaveAnalysis(analysisID string, spec model.AnalysisSpec) error {
	specJSON, err := json.Marshal(spec)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	_, err = db.Exec(`INSERT INTO analyses (id, spec, status, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		analysisID, specJSON, model.StatusPending, now, now)
	return err
}

// UpdateAnalysisStatus updates an analysis status
func UpdateAnalysisStatus(analysisID string, status string) error {
	now := time.Now().UTC()
	_, err := db.Exec(`UPDATE analyses SET status = ?, updated_at = ? WHERE id = ?`, status, now, analysisID)
	return err
}

// GetAnalysis fetches the full analysis spec and status
func GetAnalysis(analysisID string) (map[string]interface{}, error) {
	var specJSON, status string
	var createdAt, updatedAt time.Time

	err := db.QueryRow(`SELECT spec, status, created_at, updated_at FROM analyses WHERE id = ?`, analysisID).
		Scan(&specJSON, &status, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	var spec model.AnalysisSpec
	if err := json.Unmarshal([]byte(specJSON), &spec); err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"id":        analysisID,
		"spec":      spec,
		"status":    status,
		"createdAt": createdAt,
		"updatedAt": updatedAt,
	}, nil
}

// GetAnalysisSpec returns only the stored spec, for re-runs
func GetAnalysisSpec(analysisID string) (model.AnalysisSpec, error) {
	var specJSON string
	var spec model.AnalysisSpec

	err := db.QueryRow(`SELECT spec FROM analyses WHERE id = ?`, analysisID).Scan(&specJSON)
	if err != nil {
		return spec, err
	}
	if err := json.Unmarshal([]byte(specJSON), &spec); err != nil {
		return spec, err
	}
	return spec, nil
}

// ListAnalyses returns all analyses with basic info
func ListAnalyses() ([]map[string]interface{}, error) {
	rows, err := db.Query(`SELECT id, status, created_at, updated_at FROM analyses ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var analyses []map[string]interface{}
	for rows.Next() {
		var id, status string
		var createdAt, updatedAt time.Time
		if err := rows.Scan(&id, &status, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		analyses = append(analyses, map[string]interface{}{
			"id":        id,
			"status":    status,
			"createdAt": createdAt,
			"updatedAt": updatedAt,
		})
	}
	return analyses, rows.Err()
}

// DeleteAnalysis removes an analysis and all dependent rows
func DeleteAnalysis(analysisID string) error {
	tables := []string{"analysis_errors", "analysis_logs", "stage_progress", "rankings", "output_files"}
	for _, table := range tables {
		if _, err := db.Exec(fmt.Sprintf(`DELETE FROM %s WHERE analysis_id = ?`, table), analysisID); err != nil {
			return err
		}
	}
	_, err := db.Exec(`DELETE FROM analyses WHERE id = ?`, analysisID)
	return err
}

// ------------------- Errors, logs, progress -------------------

// SaveAnalysisError records an error for an analysis
func SaveAnalysisError(analysisID string, err error) error {
	if err == nil {
		return nil
	}
	now := time.Now().UTC()
	_, e := db.Exec(`INSERT INTO analysis_errors (analysis_id, error_message, created_at) VALUES (?, ?, ?)`,
		analysisID, err.Error(), now)
	return e
}

// GetAnalysisErrors returns all errors recorded for an analysis
func GetAnalysisErrors(analysisID string) ([]map[string]interface{}, error) {
	rows, err := db.Query(`SELECT error_message, created_at FROM analysis_errors WHERE analysis_id = ? ORDER BY created_at`, analysisID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []map[string]interface{}
	for rows.Next() {
		var msg string
		var createdAt time.Time
		if err := rows.Scan(&msg, &createdAt); err != nil {
			return nil, err
		}
		out = append(out, map[string]interface{}{
			"message":   msg,
			"createdAt": createdAt,
		})
	}
	return out, rows.Err()
}

// SaveAnalysisLog stores a structured log row for an analysis stage
func SaveAnalysisLog(analysisID, stage, level, message string, details map[string]interface{}) error {
	detailsJSON, err := json.Marshal(details)
	if err != nil {
		detailsJSON = []byte("{}")
	}
	now := time.Now().UTC()
	_, err = db.Exec(`INSERT INTO analysis_logs (analysis_id, stage, level, message, details, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		analysisID, stage, level, message, string(detailsJSON), now)
	return err
}

// GetAnalysisLogs returns log rows for an analysis, newest last
func GetAnalysisLogs(analysisID string, limit int) ([]map[string]interface{}, error) {
	rows, err := db.Query(`SELECT stage, level, message, details, created_at FROM analysis_logs WHERE analysis_id = ? ORDER BY created_at LIMIT ?`,
		analysisID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []map[string]interface{}
	for rows.Next() {
		var stage, level, message, detailsJSON string
		var createdAt time.Time
		if err := rows.Scan(&stage, &level, &message, &detailsJSON, &createdAt); err != nil {
			return nil, err
		}
		var details map[string]interface{}
		json.Unmarshal([]byte(detailsJSON), &details)
		out = append(out, map[string]interface{}{
			"stage":     stage,
			"level":     level,
			"message":   message,
			"details":   details,
			"createdAt": createdAt,
		})
	}
	return out, rows.Err()
}

// SaveStageProgress records start/end of a pipeline stage
func SaveStageProgress(analysisID, stage, status string, startedAt, endedAt *time.Time, recordCount, errorCount int) error {
	_, err := db.Exec(`INSERT INTO stage_progress (analysis_id, stage, status, started_at, ended_at, record_count, error_count) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		analysisID, stage, status, startedAt, endedAt, recordCount, errorCount)
	return err
}

// GetStageProgress returns stage progress rows for an analysis
func GetStageProgress(analysisID string) ([]map[string]interface{}, error) {
	rows, err := db.Query(`SELECT stage, status, started_at, ended_at, record_count, error_count FROM stage_progress WHERE analysis_id = ? ORDER BY id`, analysisID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []map[string]interface{}
	for rows.Next() {
		var stage, status string
		var startedAt, endedAt sql.NullTime
		var recordCount, errorCount int
		if err := rows.Scan(&stage, &status, &startedAt, &endedAt, &recordCount, &errorCount); err != nil {
			return nil, err
		}
		entry := map[string]interface{}{
			"stage":       stage,
			"status":      status,
			"recordCount": recordCount,
			"errorCount":  errorCount,
		}
		if startedAt.Valid {
			entry["startedAt"] = startedAt.Time
		}
		if endedAt.Valid {
			entry["endedAt"] = endedAt.Time
		}
		out = append(out, entry)
	}
	return out, rows.Err()
}

// ------------------- Rankings -------------------

// SaveRanking persists the ranked scenario totals of an analysis
func SaveRanking(analysisID string, result model.RankingResult) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}

	if _, err := tx.Exec(`DELETE FROM rankings WHERE analysis_id = ?`, analysisID); err != nil {
		tx.Rollback()
		return err
	}

	now := time.Now().UTC()
	for i, entry := range result.Entries {
		_, err := tx.Exec(`INSERT INTO rankings (analysis_id, position, scenario_id, column_name, total, row_count, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			analysisID, i+1, entry.ScenarioID, entry.Column, entry.Total, result.RowCount, now)
		if err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

// GetRanking loads the ranked scenario totals of an analysis
func GetRanking(analysisID string) (model.RankingResult, error) {
	rows, err := db.Query(`SELECT scenario_id, column_name, total, row_count, created_at FROM rankings WHERE analysis_id = ? ORDER BY position`, analysisID)
	if err != nil {
		return model.RankingResult{}, err
	}
	defer rows.Close()

	var result model.RankingResult
	for rows.Next() {
		var entry model.ScenarioTotal
		var createdAt time.Time
		if err := rows.Scan(&entry.ScenarioID, &entry.Column, &entry.Total, &result.RowCount, &createdAt); err != nil {
			return model.RankingResult{}, err
		}
		result.ComputedAt = createdAt.Format(time.RFC3339)
		result.Entries = append(result.Entries, entry)
	}
	if err := rows.Err(); err != nil {
		return model.RankingResult{}, err
	}
	if len(result.Entries) == 0 {
		return model.RankingResult{}, sql.ErrNoRows
	}
	return result, nil
}

// ------------------- Output files -------------------

// SaveOutputFile registers an exported file for download
func SaveOutputFile(analysisID, fileName, filePath, fileType string, fileSize int64) error {
	now := time.Now().UTC()
	_, err := db.Exec(`INSERT INTO output_files (analysis_id, file_name, file_path, file_type, file_size, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		analysisID, fileName, filePath, fileType, fileSize, now)
	return err
}

// GetOutputFiles returns the registered files of an analysis
func GetOutputFiles(analysisID string) ([]map[string]interface{}, error) {
	rows, err := db.Query(`SELECT file_name, file_path, file_type, file_size, created_at FROM output_files WHERE analysis_id = ? ORDER BY id`, analysisID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []map[string]interface{}
	for rows.Next() {
		var name, path, fileType string
		var size int64
		var createdAt time.Time
		if err := rows.Scan(&name, &path, &fileType, &size, &createdAt); err != nil {
			return nil, err
		}
		out = append(out, map[string]interface{}{
			"file_name": name,
			"file_path": path,
			"file_type": fileType,
			"file_size": size,
			"createdAt": createdAt,
		})
	}
	return out, rows.Err()
}

// ------------------- Branch configs -------------------

// SaveBranchConfig upserts the cost configuration of a branch
func SaveBranchConfig(cfg model.BranchConfig) error {
	configJSON, err := json.Marshal(cfg.Scenarios)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	_, err = db.Exec(`INSERT INTO branch_configs (branch, config, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(branch) DO UPDATE SET config = excluded.config, updated_at = excluded.updated_at`,
		cfg.Branch, string(configJSON), now)
	return err
}

// GetBranchConfig loads one branch's cost configuration
func GetBranchConfig(branch string) (model.BranchConfig, error) {
	var configJSON string
	cfg := model.BranchConfig{Branch: branch}

	err := db.QueryRow(`SELECT config FROM branch_configs WHERE branch = ?`, branch).Scan(&configJSON)
	if err != nil {
		return cfg, err
	}
	if err := json.Unmarshal([]byte(configJSON), &cfg.Scenarios); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// ListBranches returns the configured branch names
func ListBranches() ([]string, error) {
	rows, err := db.Query(`SELECT branch FROM branch_configs ORDER BY branch`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var branches []string
	for rows.Next() {
		var b string
		if err := rows.Scan(&b); err != nil {
			return nil, err
		}
		branches = append(branches, b)
	}
	return branches, rows.Err()
}

// DeleteBranchConfig removes a branch configuration
func DeleteBranchConfig(branch string) error {
	_, err := db.Exec(`DELETE FROM branch_configs WHERE branch = ?`, branch)
	return err
}

// ------------------- Simulations -------------------

// SaveSimulation appends a simulation run to the history
func SaveSimulation(req model.SimulationRequest, result model.SimulationResult) error {
	reqJSON, err := json.Marshal(req)
	if err != nil {
		return err
	}
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return err
	}
	_, err = db.Exec(`INSERT INTO simulations (id, branch, request, result, created_at) VALUES (?, ?, ?, ?, ?)`,
		result.ID, result.Branch, string(reqJSON), string(resultJSON), result.CreatedAt)
	return err
}

// ListSimulations returns the most recent simulation runs
func ListSimulations(limit int) ([]model.SimulationResult, error) {
	rows, err := db.Query(`SELECT result FROM simulations ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.SimulationResult
	for rows.Next() {
		var resultJSON string
		if err := rows.Scan(&resultJSON); err != nil {
			return nil, err
		}
		var result model.SimulationResult
		if err := json.Unmarshal([]byte(resultJSON), &result); err != nil {
			return nil, err
		}
		out = append(out, result)
	}
	return out, rows.Err()
}
