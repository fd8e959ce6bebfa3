package model

import "time"

// RunStatus tracks a classification run through its lifecycle.
type RunStatus string

const (
	RunStatusQueued   RunStatus = "queued"
	RunStatusRunning  RunStatus = "running"
	RunStatusComplete RunStatus = "complete"
	RunStatusFailed   RunStatus = "failed"
)

// RunSummary is the aggregate outcome of a completed run, persisted as JSON
// alongside the run record.
type RunSummary struct {
	Wells      int              `json:"wells"`
	Samples    int              `json:"samples"`
	Categories map[Category]int `json:"categories"`
}

// Run is one classification of an input dataset. Source records the file
// path or URL the samples came from.
type Run struct {
	ID        string      `json:"id"`
	Source    string      `json:"source"`
	Status    RunStatus   `json:"status"`
	Summary   *RunSummary `json:"summary,omitempty"`
	Error     string      `json:"error,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// SummarizeResults builds a RunSummary from classified results.
func SummarizeResults(results []Result) *RunSummary {
	s := &RunSummary{Categories: make(map[Category]int)}
	wells := make(map[string]struct{})
	for _, r := range results {
		wells[r.WellID] = struct{}{}
		s.Categories[r.FinalCategory]++
	}
	s.Wells = len(wells)
	s.Samples = len(results)
	return s
}
