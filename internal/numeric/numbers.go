// Package numeric extracts quantity/unit mentions from clause text for the
// numeric-divergence rule.
package numeric

import (
	"regexp"
	"strconv"
	"strings"
)

// Canonical units. The recognized surface forms are a small closed set of
// Russian duration words plus the percent sign; everything else is treated as
// unit-less.
const (
	UnitDay     = "day"
	UnitHour    = "hour"
	UnitMinute  = "minute"
	UnitPercent = "percent"
)

// Quantity is one numeric mention. Unit is empty when no unit word followed
// the number.
type Quantity struct {
	Value float64 `json:"value"`
	Unit  string  `json:"unit,omitempty"`
}

var unitForms = map[string]string{
	"день": UnitDay, "дня": UnitDay, "дней": UnitDay,
	"час": UnitHour, "часа": UnitHour, "часов": UnitHour,
	"минута": UnitMinute, "минуты": UnitMinute, "минут": UnitMinute,
	"процент": UnitPercent, "процента": UnitPercent, "процентов": UnitPercent,
	"%": UnitPercent,
}

// Longer unit forms come first so the alternation cannot stop at a prefix.
var numberRe = regexp.MustCompile(`(\d+(?:[.,]\d+)?)(?:\s*(дней|дня|день|часов|часа|час|минуты|минута|минут|процентов|процента|процент|%))?`)

// Extract scans the text for quantity mentions. Decimal commas are normalized
// to decimal points before parsing. Malformed numeric text is skipped, never
// reported as an error; a clause with no numbers yields an empty slice.
func Extract(s string) []Quantity {
	var out []Quantity
	for _, m := range numberRe.FindAllStringSubmatch(strings.ToLower(s), -1) {
		value, err := strconv.ParseFloat(strings.Replace(m[1], ",", ".", 1), 64)
		if err != nil {
			continue
		}
		out = append(out, Quantity{Value: value, Unit: unitForms[m[2]]})
	}
	return out
}

// CompatibleUnits reports whether two quantities may be compared: units match,
// or either side has no unit.
func CompatibleUnits(a, b Quantity) bool {
	return a.Unit == "" || b.Unit == "" || a.Unit == b.Unit
}

// RelDiff is the relative difference |a-b| / max(1, min(a,b)) used by the
// divergence rule.
func RelDiff(a, b float64) float64 {
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	min := a
	if b < a {
		min = b
	}
	if min < 1 {
		min = 1
	}
	return diff / min
}
