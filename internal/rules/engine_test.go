package rules

import (
	"testing"

	"github.com/avoronov/clauselint/internal/model"
	"github.com/avoronov/clauselint/internal/segment"
)

func clauseList(texts ...string) []model.Clause {
	clauses := make([]model.Clause, len(texts))
	for i, text := range texts {
		clauses[i] = model.Clause{Index: i + 1, Text: text}
	}
	return clauses
}

func TestNegationConflict(t *testing.T) {
	raw := "1. A может делать X.\n2. A не может делать X."

	clauses := segment.Split(raw)
	if len(clauses) != 2 {
		t.Fatalf("segmentation yielded %d clauses, want 2", len(clauses))
	}

	findings := Analyze(clauses, DefaultDupThreshold)
	if len(findings) != 1 {
		t.Fatalf("got %d findings, want 1: %+v", len(findings), findings)
	}

	conflict, ok := findings[0].(*model.Conflict)
	if !ok {
		t.Fatalf("finding is %T, want *model.Conflict", findings[0])
	}
	if conflict.Signal != model.SignalNegation {
		t.Errorf("signal = %s, want %s", conflict.Signal, model.SignalNegation)
	}
	if conflict.Base().Severity != model.SeverityHigh {
		t.Errorf("severity = %s, want high", conflict.Base().Severity)
	}
	if conflict.Meta["negative_clause"] != 2 {
		t.Errorf("negative_clause = %v, want 2", conflict.Meta["negative_clause"])
	}
}

func TestVerbatimDuplicate(t *testing.T) {
	clauses := clauseList(
		"Оплата производится в течение 30 дней.",
		"Оплата производится в течение 30 дней.",
	)

	findings := Analyze(clauses, DefaultDupThreshold)
	if len(findings) != 1 {
		t.Fatalf("got %d findings, want 1", len(findings))
	}

	dup, ok := findings[0].(*model.Duplicate)
	if !ok {
		t.Fatalf("finding is %T, want *model.Duplicate", findings[0])
	}
	if dup.Similarity < DefaultDupThreshold {
		t.Errorf("similarity = %v, want >= %v", dup.Similarity, DefaultDupThreshold)
	}
	if dup.Base().Severity != model.SeverityHigh {
		t.Errorf("verbatim repeat severity = %s, want high", dup.Base().Severity)
	}
	if len(dup.Items) != 2 || dup.Items[0] != 1 || dup.Items[1] != 2 {
		t.Errorf("items = %v, want [1 2]", dup.Items)
	}
}

func TestNumericDivergenceConflict(t *testing.T) {
	clauses := clauseList(
		"Покупатель оплачивает товар в течение 10 дней.",
		"Покупатель оплачивает товар в течение 30 дней после приёмки.",
	)

	findings := Analyze(clauses, DefaultDupThreshold)
	if len(findings) != 1 {
		t.Fatalf("got %d findings, want 1: %+v", len(findings), findings)
	}

	conflict, ok := findings[0].(*model.Conflict)
	if !ok {
		t.Fatalf("finding is %T, want *model.Conflict", findings[0])
	}
	if conflict.Signal != model.SignalNumbers {
		t.Errorf("signal = %s, want %s", conflict.Signal, model.SignalNumbers)
	}
	if conflict.Base().Severity != model.SeverityMedium {
		t.Errorf("severity = %s, want medium", conflict.Base().Severity)
	}
	if diff := conflict.Meta["max_rel_diff"].(float64); diff != 2 {
		t.Errorf("max_rel_diff = %v, want 2", diff)
	}
}

func TestModalConflict(t *testing.T) {
	clauses := clauseList(
		"Подрядчик должен предоставить отчёт о выполнении работ.",
		"Подрядчик не должен предоставить отчёт о выполнении работ заказчику ранее приёмки результата.",
	)

	findings := Analyze(clauses, DefaultDupThreshold)
	if len(findings) != 1 {
		t.Fatalf("got %d findings, want 1: %+v", len(findings), findings)
	}

	conflict, ok := findings[0].(*model.Conflict)
	if !ok {
		t.Fatalf("finding is %T, want *model.Conflict", findings[0])
	}
	if conflict.Signal != model.SignalNegation {
		// "не должен" is in the polarity tables too, and negation runs first.
		t.Errorf("signal = %s, want %s", conflict.Signal, model.SignalNegation)
	}
	if conflict.Base().Severity != model.SeverityHigh {
		t.Errorf("severity = %s, want high", conflict.Base().Severity)
	}
}

func TestTopicGateBlocksUnrelatedClauses(t *testing.T) {
	clauses := clauseList(
		"Арендатор может пользоваться парковкой.",
		"Запрещается курение внутри здания.",
	)

	if findings := Analyze(clauses, DefaultDupThreshold); len(findings) != 0 {
		t.Errorf("got %d findings across unrelated topics, want 0", len(findings))
	}
}

func TestEmptyInput(t *testing.T) {
	if findings := Analyze(nil, DefaultDupThreshold); len(findings) != 0 {
		t.Errorf("Analyze(nil) = %d findings, want 0", len(findings))
	}
	if findings := Analyze([]model.Clause{}, DefaultDupThreshold); len(findings) != 0 {
		t.Errorf("Analyze(empty) = %d findings, want 0", len(findings))
	}
}

func TestSingleClauseNoFindings(t *testing.T) {
	clauses := clauseList("Единственный пункт договора не с чем сравнивать.")
	if findings := Analyze(clauses, DefaultDupThreshold); len(findings) != 0 {
		t.Errorf("got %d findings for one clause, want 0", len(findings))
	}
}

func TestThresholdControlsDuplicates(t *testing.T) {
	// Jaccard for this pair is 6/8, below the default threshold but above the
	// minimum allowed one.
	clauses := clauseList(
		"Покупатель оплачивает товар в течение десяти дней.",
		"Покупатель оплачивает товар в течение десяти дней после приёмки.",
	)

	strict := Analyze(clauses, DefaultDupThreshold)
	for _, f := range strict {
		if f.Kind() == model.KindDuplicate {
			t.Fatalf("pair flagged as duplicate at threshold %v", DefaultDupThreshold)
		}
	}

	loose := Analyze(clauses, MinDupThreshold)
	if len(loose) != 1 || loose[0].Kind() != model.KindDuplicate {
		t.Fatalf("lowered threshold should flag the pair as duplicate, got %+v", loose)
	}
}

func TestPairYieldsAtMostOneFinding(t *testing.T) {
	// The pair matches both the negation rule and the numeric rule; only the
	// first rule in the cascade may fire.
	clauses := clauseList(
		"Исполнитель может задержать отгрузку товара на 10 дней.",
		"Исполнитель не может задержать отгрузку товара более чем на 30 дней по условиям договора.",
	)

	findings := Analyze(clauses, DefaultDupThreshold)
	if len(findings) != 1 {
		t.Fatalf("got %d findings for one pair, want 1", len(findings))
	}
	if findings[0].(*model.Conflict).Signal != model.SignalNegation {
		t.Errorf("signal = %s, want negation to win the cascade", findings[0].(*model.Conflict).Signal)
	}
}

func TestClampThreshold(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0.85, 0.85},
		{0.5, MinDupThreshold},
		{0.99, MaxDupThreshold},
		{MinDupThreshold, MinDupThreshold},
		{MaxDupThreshold, MaxDupThreshold},
	}
	for _, tt := range tests {
		if got := ClampThreshold(tt.in); got != tt.want {
			t.Errorf("ClampThreshold(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestAnalyzeIsDeterministic(t *testing.T) {
	clauses := clauseList(
		"1. A может делать X.",
		"2. A не может делать X.",
		"Оплата производится в течение 30 дней.",
		"Оплата производится в течение 30 дней.",
	)

	first := Analyze(clauses, DefaultDupThreshold)
	second := Analyze(clauses, DefaultDupThreshold)
	if len(first) != len(second) {
		t.Fatalf("runs disagree: %d vs %d findings", len(first), len(second))
	}
	for i := range first {
		if first[i].DedupeKey() != second[i].DedupeKey() {
			t.Errorf("finding %d differs between runs: %s vs %s", i, first[i].DedupeKey(), second[i].DedupeKey())
		}
		if first[i].Base().Severity != second[i].Base().Severity {
			t.Errorf("finding %d severity differs between runs", i)
		}
	}
}
