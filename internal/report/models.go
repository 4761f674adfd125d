package report

import "time"

// Record is a stored analysis result.
type Record struct {
	ID           string    `json:"id"`
	Filename     string    `json:"filename"`
	MediaType    string    `json:"media_type"`
	SizeBytes    int64     `json:"size_bytes"`
	SHA256       string    `json:"sha256"`
	Verdict      string    `json:"verdict"`
	Confidence   float64   `json:"confidence"`
	ProcessingMs int64     `json:"processing_ms"`
	ResponseJSON string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// VerdictStats is a count of stored records grouped by verdict.
type VerdictStats struct {
	Total    int            `json:"total"`
	Verdicts map[string]int `json:"verdicts"`
}
