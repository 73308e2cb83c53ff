package pipeline

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"import-scenario-analyzer/pkg/utils"
)

// TransformRecords applies the named transformations to ingested records
// before they are collected into the dataset.
func TransformRecords(
	ctx context.Context,
	transformations []string,
	in <-chan GenericRecord,
	out chan<- GenericRecord,
	errs chan<- error,
	workerCount int,
) {
	var wg sync.WaitGroup
	wg.Add(workerCount)

	var transformedCount, droppedCount int64
	var mu sync.Mutex

	for i := 0; i < workerCount; i++ {
		go func(workerID int) {
			defer wg.Done()
			workerTransformed := 0
			workerDropped := 0

			for rec := range in {
				select {
				case <-ctx.Done():
					return
				default:
					transformed, keep, err := applyTransformations(rec, transformations)
					if err != nil {
						errs <- fmt.Errorf("transformation failed: %w", err)
						continue
					}
					if !keep {
						workerDropped++
						continue
					}

					select {
					case <-ctx.Done():
						return
					case out <- transformed:
						workerTransformed++
						if workerTransformed%100 == 0 || workerTransformed <= 10 {
							fmt.Printf("🔄 Transform Worker %d: %d records transformed\n", workerID, workerTransformed)
						}
					}
				}
			}

			mu.Lock()
			transformedCount += int64(workerTransformed)
			droppedCount += int64(workerDropped)
			mu.Unlock()
		}(i)
	}

	// Close the output channel only AFTER all workers finish
	go func() {
		wg.Wait()
		mu.Lock()
		fmt.Printf("🔄 Transformation Summary: %d records transformed, %d dropped\n", transformedCount, droppedCount)
		mu.Unlock()
		close(out)
	}()
}

// applyTransformations runs each named transform in order. keep=false drops
// the record.
func applyTransformations(rec GenericRecord, transformations []string) (GenericRecord, bool, error) {
	result := make(GenericRecord, len(rec))
	for k, v := range rec {
		result[k] = v
	}

	for _, transform := range transformations {
		switch transform {
		case "trimStrings":
			result = trimStrings(result)
		case "parseBRLNumbers":
			var err error
			result, err = parseBRLNumbers(result)
			if err != nil {
				return nil, false, err
			}
		case "dropEmptyRows":
			if isEmptyRow(result) {
				return nil, false, nil
			}
		default:
			return nil, false, fmt.Errorf("unknown transformation: %s", transform)
		}
	}

	return result, true, nil
}

// trimStrings trims whitespace from all string cells
func trimStrings(rec GenericRecord) GenericRecord {
	for key, val := range rec {
		if str, ok := val.(string); ok {
			rec[key] = strings.TrimSpace(str)
		}
	}
	return rec
}

// parseBRLNumbers converts pt-BR formatted cells like "1.234,56" into
// float64 so cost sheets exported from Brazilian tooling sum correctly.
func parseBRLNumbers(rec GenericRecord) (GenericRecord, error) {
	for key, val := range rec {
		str, ok := val.(string)
		if !ok || !strings.Contains(str, ",") {
			continue
		}
		f, err := utils.ParseBRL(str)
		if err != nil {
			// Not a number at all, leave the cell for the calculator to flag
			continue
		}
		rec[key] = f
	}
	return rec, nil
}

// isEmptyRow reports whether every cell is nil or blank
func isEmptyRow(rec GenericRecord) bool {
	for _, val := range rec {
		switch v := val.(type) {
		case nil:
			continue
		case string:
			if strings.TrimSpace(v) != "" {
				return false
			}
		default:
			return false
		}
	}
	return true
}
