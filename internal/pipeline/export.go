package pipeline

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"import-scenario-analyzer/internal/model"
	"import-scenario-analyzer/internal/store"
	"import-scenario-analyzer/pkg/utils"
)

// outputManager writes per-analysis artifacts under outputs/<analysisID>/
var outputManager = utils.NewOutputManager("outputs")

// ExportRanking writes ranking.csv and ranking.json for an analysis and
// registers both as downloadable output files.
func ExportRanking(analysisID string, result model.RankingResult) error {
	csvPath, count, err := exportRankingCSV(analysisID, result)
	if err != nil {
		return fmt.Errorf("CSV export failed: %w", err)
	}
	fmt.Printf("💾 Export: %d ranking rows written to %s\n", count, csvPath)

	jsonPath, err := exportRankingJSON(analysisID, result)
	if err != nil {
		return fmt.Errorf("JSON export failed: %w", err)
	}
	fmt.Printf("💾 Export: ranking written to %s\n", jsonPath)

	for _, path := range []string{csvPath, jsonPath} {
		size, err := outputManager.GetFileSize(path)
		if err != nil {
			return err
		}
		fileName := filepath.Base(path)
		if err := store.SaveOutputFile(analysisID, fileName, path, outputManager.GetFileType(path), size); err != nil {
			return err
		}
		fmt.Printf("🔗 Download: %s\n", outputManager.GetDownloadURL(analysisID, fileName))
	}
	return nil
}

// exportRankingCSV writes the ranking as a ";"-separated file with totals in
// both raw and pt-BR formatted form, the shape the original cost sheets use.
func exportRankingCSV(analysisID string, result model.RankingResult) (string, int, error) {
	path, err := outputManager.GetOutputFilePath(analysisID, "ranking.csv")
	if err != nil {
		return "", 0, err
	}

	file, err := os.Create(path)
	if err != nil {
		return "", 0, err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	writer.Comma = ';'
	defer writer.Flush()

	if err := writer.Write([]string{"Posicao", "Cenario", "Coluna", "Custo_Total", "Custo_Total_BRL"}); err != nil {
		return "", 0, err
	}

	for i, entry := range result.Entries {
		row := []string{
			strconv.Itoa(i + 1),
			entry.ScenarioID,
			entry.Column,
			strconv.FormatFloat(entry.Total, 'f', 2, 64),
			utils.FormatBRL(entry.Total),
		}
		if err := writer.Write(row); err != nil {
			return "", 0, err
		}
	}

	writer.Flush()
	return path, len(result.Entries), writer.Error()
}

// exportRankingJSON writes the full ranking result as JSON
func exportRankingJSON(analysisID string, result model.RankingResult) (string, error) {
	path, err := outputManager.GetOutputFilePath(analysisID, "ranking.json")
	if err != nil {
		return "", err
	}

	file, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	return path, encoder.Encode(result)
}
