package pipeline

import (
	"bufio"
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"import-scenario-analyzer/internal/model"
	"import-scenario-analyzer/pkg/utils"
)

// GenericRecord is a schema-agnostic map for any data source
type GenericRecord = model.GenericRecord

// ------------------- Ingestion -------------------

// IngestSource reads a single source (CSV or JSON, from disk or HTTP) into
// the record channel. Column order of the first CSV header row is sent on
// the headers channel before any record.
func IngestSource(ctx context.Context, source model.Source, headers chan<- []string, out chan<- GenericRecord, errors chan<- error) {
	fmt.Printf("➡️ Starting ingestion for source: %s (%s)\n", source.URL, source.Type)
	defer fmt.Printf("✅ Finished ingestion for source: %s (%s)\n", source.URL, source.Type)

	switch strings.ToLower(source.Type) {
	case "csv":
		reader, closer, err := openSource(source.URL)
		if err != nil {
			errors <- err
			return
		}
		defer closer()
		IngestCSV(ctx, source.URL, reader, headers, out, errors)
	case "json":
		ingestJSON(ctx, source.URL, headers, out, errors)
	default:
		errors <- fmt.Errorf("unknown source type: %s", source.Type)
	}
}

// openSource opens a file path or http(s) URL for reading
func openSource(pathOrURL string) (io.Reader, func() error, error) {
	if strings.HasPrefix(pathOrURL, "http") {
		resp, err := http.Get(pathOrURL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to GET source: %w", err)
		}
		return resp.Body, resp.Body.Close, nil
	}

	file, err := os.Open(pathOrURL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open source file: %w", err)
	}
	return file, file.Close, nil
}

// ------------------- CSV Ingestion -------------------

// IngestCSV streams CSV rows from reader into the record channel. Exposed
// separately so uploaded files can be ingested without touching disk twice.
func IngestCSV(ctx context.Context, label string, reader io.Reader, headers chan<- []string, out chan<- GenericRecord, errors chan<- error) {
	buffered := bufio.NewReader(reader)
	csvReader := csv.NewReader(buffered)
	csvReader.Comma = detectDelimiter(buffered)
	csvReader.LazyQuotes = true

	headerRow, err := csvReader.Read()
	if err != nil {
		errors <- fmt.Errorf("failed to read CSV header: %w", err)
		return
	}

	cleanHeaders := make([]string, len(headerRow))
	for i, h := range headerRow {
		// Trim whitespace and strip quotes and a possible BOM
		clean := strings.TrimSpace(h)
		clean = strings.ReplaceAll(clean, `"`, "")
		clean = strings.TrimPrefix(clean, "\uFEFF")
		cleanHeaders[i] = clean
	}

	select {
	case <-ctx.Done():
		return
	case headers <- cleanHeaders:
	}

	recordCount := 0
	for {
		select {
		case <-ctx.Done():
			return
		default:
			record, err := csvReader.Read()
			if err == io.EOF {
				fmt.Printf("📄 CSV ingestion done: %d records read from %s\n", recordCount, label)
				return
			} else if err != nil {
				errors <- fmt.Errorf("CSV read error: %w", err)
				continue
			}

			recMap := make(GenericRecord)
			for i, h := range cleanHeaders {
				if i < len(record) {
					recMap[h] = utils.ParseValue(record[i])
				}
			}

			select {
			case <-ctx.Done():
				return
			case out <- recMap:
				recordCount++
				if recordCount%50 == 0 || recordCount <= 10 {
					fmt.Printf("📄 CSV: Processed %d records from %s\n", recordCount, label)
				}
			}
		}
	}
}

// detectDelimiter peeks at the header line and picks semicolon when it
// appears there. Cost spreadsheets are usually semicolon separated because
// the values themselves carry decimal commas.
func detectDelimiter(buffered *bufio.Reader) rune {
	peeked, _ := buffered.Peek(4096)
	if idx := bytes.IndexByte(peeked, '\n'); idx >= 0 {
		peeked = peeked[:idx]
	}
	if bytes.ContainsRune(peeked, ';') {
		return ';'
	}
	return ','
}

// ------------------- JSON Ingestion -------------------

// ingestJSON reads a JSON array of objects; headers are derived from the
// first object since JSON carries no column order of its own.
func ingestJSON(ctx context.Context, pathOrURL string, headers chan<- []string, out chan<- GenericRecord, errors chan<- error) {
	reader, closer, err := openSource(pathOrURL)
	if err != nil {
		errors <- err
		return
	}
	defer closer()

	bodyBytes, err := io.ReadAll(reader)
	if err != nil {
		errors <- fmt.Errorf("failed to read JSON body: %w", err)
		return
	}

	var records []map[string]interface{}
	if err := json.Unmarshal(bodyBytes, &records); err != nil {
		errors <- fmt.Errorf("failed to decode JSON: %w", err)
		return
	}

	if len(records) == 0 {
		errors <- fmt.Errorf("JSON source %s has no records", pathOrURL)
		return
	}

	headerRow := make([]string, 0, len(records[0]))
	for k := range records[0] {
		headerRow = append(headerRow, k)
	}

	select {
	case <-ctx.Done():
		return
	case headers <- headerRow:
	}

	recordCount := 0
	for _, rec := range records {
		select {
		case <-ctx.Done():
			return
		case out <- GenericRecord(rec):
			recordCount++
			if recordCount%50 == 0 || recordCount <= 10 {
				fmt.Printf("🌐 JSON: Processed %d records from %s\n", recordCount, pathOrURL)
			}
		}
	}

	fmt.Printf("🌐 JSON ingestion done: %d records read from %s\n", recordCount, pathOrURL)
}
