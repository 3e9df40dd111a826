// Package segment splits raw contract text into an ordered clause list.
//
// Legal text is usually numbered, but free-form paste must still degrade into
// reviewable units instead of one giant clause, so splitting is a three-tier
// cascade: heading lines, then blank-line separators, then sentences. The
// first tier that yields more than one piece wins.
package segment

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/google/uuid"

	"github.com/avoronov/clauselint/internal/model"
)

// headingRe matches the line prefixes that usually open a numbered clause in
// Russian contracts: «Статья 5», «Раздел 2», «Пункт 3.1», or a bare "N." /
// "N)" marker at line start.
var headingRe = regexp.MustCompile(`(?i)^\s*(?:(?:статья|раздел|пункт|глава)\s+\d+(?:\.\d+)*|\d+(?:\.\d+)*\s*[.)])(?:\s|$)`)

type piece struct {
	header string
	text   string
}

// Split segments raw text into clauses. Empty or whitespace-only input yields
// an empty slice; any other input yields at least one clause. Clause indexes
// are assigned as 1-based order of emission, never parsed from heading text.
func Split(raw string) []model.Clause {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}

	if pieces := splitByHeadings(raw); len(pieces) > 1 {
		return build(pieces)
	}
	if pieces := splitByBlankLines(raw); len(pieces) > 1 {
		return build(pieces)
	}
	if pieces := splitBySentences(raw); len(pieces) > 1 {
		return build(pieces)
	}

	return build([]piece{{text: trimmed}})
}

func build(pieces []piece) []model.Clause {
	clauses := make([]model.Clause, 0, len(pieces))
	for i, p := range pieces {
		clauses = append(clauses, model.Clause{
			ID:     uuid.NewString(),
			Index:  i + 1,
			Text:   strings.TrimSpace(p.text),
			Header: p.header,
		})
	}
	return clauses
}

// splitByHeadings walks the lines, starting a new clause at every heading
// line. The heading is attached as the clause header and kept as the first
// line of its body; lines before the first heading form a headerless clause.
// Pieces with no non-whitespace text are dropped, not emitted.
func splitByHeadings(raw string) []piece {
	var pieces []piece
	var current piece
	var body strings.Builder

	flush := func() {
		current.text = body.String()
		if strings.TrimSpace(current.text) != "" {
			pieces = append(pieces, current)
		}
		current = piece{}
		body.Reset()
	}

	for _, line := range strings.Split(raw, "\n") {
		if headingRe.MatchString(line) {
			flush()
			current.header = strings.TrimSpace(line)
		}
		if body.Len() > 0 {
			body.WriteByte('\n')
		}
		body.WriteString(line)
	}
	flush()

	return pieces
}

var blankLineRe = regexp.MustCompile(`\n\s*\n`)

// splitByBlankLines splits on runs of one or more blank lines.
func splitByBlankLines(raw string) []piece {
	var pieces []piece
	for _, part := range blankLineRe.Split(raw, -1) {
		if part = strings.TrimSpace(part); part != "" {
			pieces = append(pieces, piece{text: part})
		}
	}
	return pieces
}

// splitBySentences splits on sentence-terminal punctuation followed by
// whitespace and an uppercase starting character.
func splitBySentences(raw string) []piece {
	runes := []rune(strings.Join(strings.Fields(raw), " "))

	var pieces []piece
	emit := func(from, to int) {
		if part := strings.TrimSpace(string(runes[from:to])); part != "" {
			pieces = append(pieces, piece{text: part})
		}
	}

	start := 0
	for i := 0; i < len(runes); i++ {
		if runes[i] != '.' && runes[i] != '!' && runes[i] != '?' {
			continue
		}

		// Absorb the whole terminator run, then require whitespace and an
		// uppercase continuation before cutting.
		end := i + 1
		for end < len(runes) && (runes[end] == '.' || runes[end] == '!' || runes[end] == '?') {
			end++
		}
		next := end
		for next < len(runes) && unicode.IsSpace(runes[next]) {
			next++
		}
		if next > end && next < len(runes) && unicode.IsUpper(runes[next]) {
			emit(start, end)
			start = next
		}
		i = end - 1
	}
	emit(start, len(runes))

	return pieces
}
