package text

import "strings"

// minTokenLen is measured in bytes. Cyrillic letters take two bytes in UTF-8,
// so the two-letter negation particle «не» survives the filter while stray
// Latin single letters and one- or two-digit numbers do not.
const minTokenLen = 3

// Tokenize normalizes the input, splits it on spaces and drops stop words and
// too-short tokens. Order is preserved; callers needing set semantics convert
// explicitly. Total: empty input yields an empty slice.
func Tokenize(s string) []string {
	var out []string
	for _, tok := range strings.Fields(Normalize(s)) {
		if len(tok) < minTokenLen {
			continue
		}
		if _, skip := stopwords[tok]; skip {
			continue
		}
		out = append(out, tok)
	}
	return out
}
