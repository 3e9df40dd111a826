package model

import "time"

// Report is the result of one analysis pass over one raw-text snapshot.
// The JSON form is the canonical export format; Markdown rendering is a
// host-side projection of the same data.
type Report struct {
	DocumentID   int64       `json:"document_id,omitempty"`
	Title        string      `json:"title,omitempty"`
	Clauses      []Clause    `json:"clauses"`
	Findings     FindingList `json:"findings"`
	DupThreshold float64     `json:"dup_threshold"`
	GeneratedAt  time.Time   `json:"generated_at"`
}

// CountBySeverity tallies findings for summary output.
func (r *Report) CountBySeverity() map[Severity]int {
	counts := make(map[Severity]int)
	for _, f := range r.Findings {
		counts[f.Base().Severity]++
	}
	return counts
}
