package rules

import (
	"testing"

	"github.com/avoronov/clauselint/internal/text"
)

func TestClassifyPolarity(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		want       polarity
		wantMarker string
	}{
		{"no markers", "оплата производится ежемесячно", polarityNone, ""},
		{"permission", "арендатор может сдавать помещение", polarityPositive, "может"},
		{"phrase marker", "арендатор имеет право на вычет", polarityPositive, "имеет право"},
		{"prohibition", "арендатор не может сдавать помещение", polarityNegative, "не может"},
		{"standalone prohibition", "запрещается курение в здании", polarityNegative, "запрещается"},
		{"negative wins over contained positive", "подрядчик не вправе требовать аванс", polarityNegative, "не вправе"},
		{"marker needs word boundary", "неможется", polarityNone, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, marker := classifyPolarity(text.Normalize(tt.input))
			if got != tt.want || marker != tt.wantMarker {
				t.Errorf("classifyPolarity(%q) = (%v, %q), want (%v, %q)",
					tt.input, got, marker, tt.want, tt.wantMarker)
			}
		})
	}
}

func TestClassifyModality(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		want       polarity
		wantMarker string
	}{
		{"no modal", "оплата производится ежемесячно", polarityNone, ""},
		{"obligation", "поставщик должен поставить товар", polarityPositive, "должен"},
		{"negated obligation", "поставщик не должен поставлять товар", polarityNegative, "не должен"},
		{"modal at clause start", "должны соблюдаться сроки", polarityPositive, "должны"},
		{"modal at clause end", "стороны сделать это могут", polarityPositive, "могут"},
		{"negated wins over plain", "исполнитель может отказаться но не должен платить", polarityNegative, "не должен"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, marker := classifyModality(text.Normalize(tt.input))
			if got != tt.want || marker != tt.wantMarker {
				t.Errorf("classifyModality(%q) = (%v, %q), want (%v, %q)",
					tt.input, got, marker, tt.want, tt.wantMarker)
			}
		})
	}
}
