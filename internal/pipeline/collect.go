package pipeline

import (
	"context"
	"fmt"

	"import-scenario-analyzer/internal/model"
)

// CollectDataset drains the record channel into a CostDataset. The header
// slice arrives once on the headers channel; records keep streaming until
// the input closes.
func CollectDataset(ctx context.Context, headers <-chan []string, in <-chan GenericRecord) (*model.CostDataset, error) {
	var columns []string

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case cols, ok := <-headers:
		if !ok {
			return nil, fmt.Errorf("ingestion produced no header row")
		}
		columns = cols
	}

	var rows []model.GenericRecord
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case rec, ok := <-in:
			if !ok {
				fmt.Printf("🧮 Collected dataset: %d columns, %d rows\n", len(columns), len(rows))
				return model.NewCostDataset(columns, rows), nil
			}
			rows = append(rows, rec)
		}
	}
}
