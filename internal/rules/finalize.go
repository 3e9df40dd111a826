package rules

import (
	"sort"

	"github.com/avoronov/clauselint/internal/model"
)

// Finalize deduplicates structurally-equal findings (same variant, same
// unordered clause indexes, same signal for conflicts), keeping the first
// occurrence, then sorts by severity descending with creation order preserved
// inside each severity. Deterministic and idempotent:
// Finalize(Finalize(f)) == Finalize(f).
func Finalize(findings []model.Finding) []model.Finding {
	seen := make(map[string]struct{}, len(findings))
	out := make([]model.Finding, 0, len(findings))
	for _, f := range findings {
		key := f.DedupeKey()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, f)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Base().Severity.Rank() > out[j].Base().Severity.Rank()
	})
	return out
}
