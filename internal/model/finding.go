package model

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"
)

// Severity of a finding, totally ordered high > medium > low.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Rank maps a severity onto the total order used for sorting.
func (s Severity) Rank() int {
	switch s {
	case SeverityHigh:
		return 3
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 1
	default:
		return 0
	}
}

// ConflictSignal classifies which heuristic produced a conflict finding.
type ConflictSignal string

const (
	SignalNegation ConflictSignal = "negation"
	SignalNumbers  ConflictSignal = "numbers"
	SignalModal    ConflictSignal = "modal"
	SignalPolicy   ConflictSignal = "policy"
	SignalOther    ConflictSignal = "other"
)

// FindingKind discriminates the two finding variants in JSON.
type FindingKind string

const (
	KindDuplicate FindingKind = "duplicate"
	KindConflict  FindingKind = "conflict"
)

// Finding is the sum of the two issue variants a pairwise pass can emit.
// Findings reference clauses by index only; they are valid solely against the
// clause list that produced them. The only mutable field is Resolved.
type Finding interface {
	Kind() FindingKind
	Base() *FindingBase
	// DedupeKey is the structural identity used by post-processing: variant
	// plus the unordered set of involved clause indexes, plus the signal for
	// conflicts.
	DedupeKey() string
}

// FindingBase carries the fields shared by both variants.
type FindingBase struct {
	ID        string    `json:"id"`
	Severity  Severity  `json:"severity"`
	Reason    string    `json:"reason"`
	Resolved  bool      `json:"resolved"`
	CreatedAt time.Time `json:"created_at"`
}

// Duplicate reports two or more clauses whose token sets overlap above the
// caller's threshold.
type Duplicate struct {
	FindingBase
	Items      []int   `json:"items"`
	Similarity float64 `json:"similarity"`
}

func (d *Duplicate) Kind() FindingKind  { return KindDuplicate }
func (d *Duplicate) Base() *FindingBase { return &d.FindingBase }

func (d *Duplicate) DedupeKey() string {
	items := make([]int, len(d.Items))
	copy(items, d.Items)
	sort.Ints(items)
	return fmt.Sprintf("%s:%v", KindDuplicate, items)
}

func (d *Duplicate) MarshalJSON() ([]byte, error) {
	type alias Duplicate
	return json.Marshal(struct {
		Type FindingKind `json:"type"`
		*alias
	}{KindDuplicate, (*alias)(d)})
}

// Conflict reports a pair of clauses that contradict each other. Meta holds
// the diagnostic data the matching rule recorded (which marker matched which
// side, candidate number pairs, and so on).
type Conflict struct {
	FindingBase
	A      int                    `json:"a"`
	B      int                    `json:"b"`
	Signal ConflictSignal         `json:"signal"`
	Meta   map[string]interface{} `json:"meta,omitempty"`
}

func (c *Conflict) Kind() FindingKind  { return KindConflict }
func (c *Conflict) Base() *FindingBase { return &c.FindingBase }

func (c *Conflict) DedupeKey() string {
	a, b := c.A, c.B
	if b < a {
		a, b = b, a
	}
	return fmt.Sprintf("%s:%d:%d:%s", KindConflict, a, b, c.Signal)
}

func (c *Conflict) MarshalJSON() ([]byte, error) {
	type alias Conflict
	return json.Marshal(struct {
		Type FindingKind `json:"type"`
		*alias
	}{KindConflict, (*alias)(c)})
}

// FindingList decodes the tagged union form produced by MarshalJSON.
type FindingList []Finding

func (l *FindingList) UnmarshalJSON(data []byte) error {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return err
	}

	out := make(FindingList, 0, len(raws))
	for _, raw := range raws {
		var probe struct {
			Type FindingKind `json:"type"`
		}
		if err := json.Unmarshal(raw, &probe); err != nil {
			return err
		}

		switch probe.Type {
		case KindDuplicate:
			var d Duplicate
			if err := json.Unmarshal(raw, &d); err != nil {
				return err
			}
			out = append(out, &d)
		case KindConflict:
			var c Conflict
			if err := json.Unmarshal(raw, &c); err != nil {
				return err
			}
			out = append(out, &c)
		default:
			return fmt.Errorf("unknown finding type %q", probe.Type)
		}
	}

	*l = out
	return nil
}
