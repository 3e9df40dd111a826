package model

// Clause is one reviewable unit of contract text.
//
// Indexes are 1-based, contiguous, and match slice position at creation time.
// Clauses are created in bulk by the segmenter from one raw-text snapshot and
// never mutated; re-segmentation replaces the whole list, which invalidates
// any findings produced against the old one.
type Clause struct {
	ID     string `json:"id"`
	Index  int    `json:"index"`
	Text   string `json:"text"`
	Header string `json:"header,omitempty"`
}
