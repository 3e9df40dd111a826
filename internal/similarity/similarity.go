// Package similarity implements the set-overlap score used for duplicate
// detection and the cheaper keyword-overlap gate used to decide whether a
// clause pair is worth running the conflict rules on.
package similarity

import (
	"sort"

	"github.com/avoronov/clauselint/internal/text"
)

// DefaultKeywordCount is the k used by the topic gate.
const DefaultKeywordCount = 8

// minSharedKeywords is how many keywords two clauses must share to count as
// being about the same topic.
const minSharedKeywords = 2

// Jaccard computes |A ∩ B| / |A ∪ B| over the token sets. Defined as 0 when
// both sets are empty.
func Jaccard(a, b []string) float64 {
	setA := toSet(a)
	setB := toSet(b)

	if len(setA) == 0 && len(setB) == 0 {
		return 0
	}

	inter := 0
	for tok := range setA {
		if _, ok := setB[tok]; ok {
			inter++
		}
	}

	union := len(setA) + len(setB) - inter
	return float64(inter) / float64(union)
}

// Keywords returns the k most frequent tokens of the text. Ties keep
// first-encountered order (the sort is stable over encounter order).
func Keywords(s string, k int) []string {
	tokens := text.Tokenize(s)

	counts := make(map[string]int, len(tokens))
	var order []string
	for _, tok := range tokens {
		if counts[tok] == 0 {
			order = append(order, tok)
		}
		counts[tok]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	if len(order) > k {
		order = order[:k]
	}
	return order
}

// SameTopic reports whether two texts share enough top keywords to plausibly
// concern the same subject. High recall by design: it only gates which pairs
// reach the conflict rules, it is not a finding.
func SameTopic(a, b string) bool {
	return SharedKeywords(Keywords(a, DefaultKeywordCount), Keywords(b, DefaultKeywordCount)) >= minSharedKeywords
}

// SharedKeywords counts common tokens between two keyword lists.
func SharedKeywords(a, b []string) int {
	set := toSet(a)
	shared := 0
	for _, tok := range b {
		if _, ok := set[tok]; ok {
			shared++
		}
	}
	return shared
}

func toSet(tokens []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tokens))
	for _, tok := range tokens {
		set[tok] = struct{}{}
	}
	return set
}
