package text

import "strings"

// punctReplacer maps the fixed punctuation set to single spaces. The set is
// deliberately closed: anything outside it passes through untouched.
var punctReplacer = strings.NewReplacer(
	".", " ", ",", " ", ";", " ", ":", " ", "!", " ", "?", " ",
	"(", " ", ")", " ", "[", " ", "]", " ", "{", " ", "}", " ",
	"\"", " ", "'", " ", "«", " ", "»", " ", "„", " ", "“", " ", "”", " ",
	"—", " ", "–", " ", "-", " ", "/", " ", "\\", " ",
	"№", " ", "§", " ", "*", " ", "%", " ", "+", " ",
)

// Normalize lower-cases the input, replaces the fixed punctuation set with
// spaces, collapses whitespace runs and trims. Idempotent:
// Normalize(Normalize(s)) == Normalize(s).
func Normalize(s string) string {
	s = strings.ToLower(s)
	s = punctReplacer.Replace(s)
	return strings.Join(strings.Fields(s), " ")
}
