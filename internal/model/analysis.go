package model

// Source points at the spreadsheet to analyze. Uploaded files are saved to
// disk first, so the pipeline always reads from a path or URL.
type Source struct {
	Type string `json:"type"` // csv, json
	URL  string `json:"url"`  // file path or http(s) URL
}

// Workers defines worker counts for the concurrent stages
type Workers struct {
	Transform int `json:"transform"`
}

// AnalysisSpec is the full configuration of one ranking analysis.
type AnalysisSpec struct {
	Source          Source   `json:"source"`
	Transformations []string `json:"transformations"` // trimStrings, parseBRLNumbers, dropEmptyRows
	Workers         Workers  `json:"workers"`
	JobTimeout      string   `json:"jobTimeout"` // e.g. "2m"
	OriginalName    string   `json:"originalName,omitempty"`
}

// Analysis job statuses as stored in the analyses table.
const (
	StatusPending      = "pending"
	StatusIngesting    = "ingesting"
	StatusTransforming = "transforming"
	StatusRanking      = "ranking"
	StatusExporting    = "exporting"
	StatusCompleted    = "completed"
	StatusFailed       = "failed"
)
