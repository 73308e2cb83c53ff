package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"import-scenario-analyzer/internal/model"
	"import-scenario-analyzer/internal/pipeline"
	"import-scenario-analyzer/internal/ranking"
	"import-scenario-analyzer/pkg/utils"
)

func main() {
	var (
		filePath   = flag.String("file", "", "Path to the cost spreadsheet (CSV)")
		transforms = flag.String("transforms", "trimStrings,parseBRLNumbers", "Comma-separated transforms to apply")
	)
	flag.Parse()

	if *filePath == "" {
		fmt.Println("Usage: analyzer -file <costs.csv> [-transforms trimStrings,parseBRLNumbers,dropEmptyRows]")
		os.Exit(1)
	}

	f, err := os.Open(*filePath)
	if err != nil {
		fmt.Printf("❌ Failed to open file: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	var transformations []string
	for _, t := range strings.Split(*transforms, ",") {
		if t = strings.TrimSpace(t); t != "" {
			transformations = append(transformations, t)
		}
	}

	label := filepath.Base(*filePath)
	dataset, err := pipeline.BuildDatasetFromReader(context.Background(), label, f, transformations)
	if err != nil {
		fmt.Printf("❌ Failed to read dataset: %v\n", err)
		os.Exit(1)
	}

	result, err := ranking.ComputeRanking(dataset, model.DefaultScenarios())
	if err != nil {
		fmt.Printf("❌ Ranking failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("\n📊 Scenario ranking for %s (%d rows)\n\n", label, result.RowCount)
	fmt.Printf("%-4s %-30s %18s\n", "#", "Cenario", "Custo Total (R$)")
	for i, entry := range result.Entries {
		fmt.Printf("%-4d %-30s %18s\n", i+1, entry.ScenarioID, utils.FormatBRL(entry.Total))
	}

	if best, ok := result.Best(); ok {
		fmt.Printf("\n✅ Cheapest scenario: %s (R$ %s)\n", best.ScenarioID, utils.FormatBRL(best.Total))
	}
}
