package numeric

import (
	"reflect"
	"testing"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Quantity
	}{
		{"no numbers", "оплата производится ежемесячно", nil},
		{"empty", "", nil},
		{
			"integer with unit",
			"в течение 30 дней",
			[]Quantity{{Value: 30, Unit: UnitDay}},
		},
		{
			"decimal comma",
			"неустойка 0,1 процента",
			[]Quantity{{Value: 0.1, Unit: UnitPercent}},
		},
		{
			"decimal point",
			"не более 2.5 часа",
			[]Quantity{{Value: 2.5, Unit: UnitHour}},
		},
		{
			"percent sign",
			"штраф 10% от суммы",
			[]Quantity{{Value: 10, Unit: UnitPercent}},
		},
		{
			"unitless",
			"пункт 42 договора",
			[]Quantity{{Value: 42}},
		},
		{
			"multiple mentions",
			"10 дней на приёмку и 45 минут на осмотр",
			[]Quantity{{Value: 10, Unit: UnitDay}, {Value: 45, Unit: UnitMinute}},
		},
		{
			"case insensitive unit",
			"Срок 5 ДНЕЙ",
			[]Quantity{{Value: 5, Unit: UnitDay}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Extract(tt.input); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Extract(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestCompatibleUnits(t *testing.T) {
	tests := []struct {
		name string
		a, b Quantity
		want bool
	}{
		{"same unit", Quantity{Unit: UnitDay}, Quantity{Unit: UnitDay}, true},
		{"different units", Quantity{Unit: UnitDay}, Quantity{Unit: UnitHour}, false},
		{"left unitless", Quantity{}, Quantity{Unit: UnitPercent}, true},
		{"right unitless", Quantity{Unit: UnitMinute}, Quantity{}, true},
		{"both unitless", Quantity{}, Quantity{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CompatibleUnits(tt.a, tt.b); got != tt.want {
				t.Errorf("CompatibleUnits(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestRelDiff(t *testing.T) {
	tests := []struct {
		name string
		a, b float64
		want float64
	}{
		{"equal", 10, 10, 0},
		{"ten vs thirty", 10, 30, 2},
		{"order independent", 30, 10, 2},
		{"small values clamp denominator", 0.1, 0.6, 0.5},
		{"zero against zero", 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RelDiff(tt.a, tt.b); got != tt.want {
				t.Errorf("RelDiff(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}
