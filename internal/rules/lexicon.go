package rules

import (
	"regexp"
	"strings"
)

// The marker tables are data, not control flow: every entry is matched by
// plain substring containment against the normalized clause text, so rules
// can be extended without touching the pairwise loop.

// positiveMarkers signal permission or obligation.
var positiveMarkers = []string{
	"может", "могут", "вправе", "имеет право", "имеют право",
	"разрешается", "разрешено", "допускается",
	"должен", "должна", "должно", "должны",
	"обязан", "обязана", "обязано", "обязаны",
}

// negativeMarkers signal prohibition or negated obligation. Each negated form
// textually contains its positive counterpart («не может» contains «может»),
// so classification gives negative markers precedence.
var negativeMarkers = []string{
	"не может", "не могут", "не вправе", "не имеет права", "не имеют права",
	"запрещается", "запрещено", "воспрещается", "не допускается",
	"не должен", "не должна", "не должно", "не должны",
	"не обязан", "не обязана", "не обязано", "не обязаны",
}

// modalRe matches one modal verb, optionally preceded by an explicit negation.
// RE2 word boundaries are ASCII-only, so boundaries are expressed through the
// single spaces guaranteed by normalization.
var modalRe = regexp.MustCompile(`(?:^| )(не )?(должен|должна|должно|должны|обязан|обязана|обязано|обязаны|может|могут|вправе)(?: |$)`)

type polarity int

const (
	polarityNone polarity = iota
	polarityPositive
	polarityNegative
)

// classifyPolarity tests normalized clause text against the marker tables and
// returns the matched marker. Negative markers win over positive ones.
func classifyPolarity(norm string) (polarity, string) {
	if marker, ok := containsAny(norm, negativeMarkers); ok {
		return polarityNegative, marker
	}
	if marker, ok := containsAny(norm, positiveMarkers); ok {
		return polarityPositive, marker
	}
	return polarityNone, ""
}

// classifyModality tests normalized clause text against the modal pattern.
// A clause with any negated modal is modal-negative even if it also contains
// a plain one.
func classifyModality(norm string) (polarity, string) {
	matches := modalRe.FindAllStringSubmatch(norm, -1)
	if len(matches) == 0 {
		return polarityNone, ""
	}

	result, marker := polarityNone, ""
	for _, m := range matches {
		if m[1] != "" {
			return polarityNegative, m[1] + m[2]
		}
		if result == polarityNone {
			result, marker = polarityPositive, m[2]
		}
	}
	return result, marker
}

func containsAny(s string, markers []string) (string, bool) {
	for _, marker := range markers {
		if contains(s, marker) {
			return marker, true
		}
	}
	return "", false
}

// contains does padded substring containment so that a marker only matches on
// word boundaries of the space-normalized text.
func contains(norm, marker string) bool {
	return strings.Contains(" "+norm+" ", " "+marker+" ")
}
