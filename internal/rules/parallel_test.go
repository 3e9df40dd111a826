package rules

import (
	"context"
	"fmt"
	"testing"

	"github.com/avoronov/clauselint/internal/model"
)

func TestEvaluateParallelMatchesSequential(t *testing.T) {
	var clauses []model.Clause
	for i := 0; i < 10; i++ {
		clauses = append(clauses, model.Clause{
			Index: len(clauses) + 1,
			Text:  fmt.Sprintf("Поставщик может отгружать партию номер %d в течение 10 дней.", i),
		})
		clauses = append(clauses, model.Clause{
			Index: len(clauses) + 1,
			Text:  fmt.Sprintf("Поставщик не может отгружать партию номер %d в течение 30 дней.", i),
		})
	}

	engine := NewEngine(DefaultDupThreshold)
	sequential := engine.Evaluate(clauses)
	parallel := engine.EvaluateParallel(context.Background(), clauses, 4)

	if len(sequential) != len(parallel) {
		t.Fatalf("length mismatch: sequential %d, parallel %d", len(sequential), len(parallel))
	}
	for i := range sequential {
		if sequential[i].DedupeKey() != parallel[i].DedupeKey() {
			t.Errorf("position %d: sequential %s, parallel %s",
				i, sequential[i].DedupeKey(), parallel[i].DedupeKey())
		}
		if sequential[i].Base().Severity != parallel[i].Base().Severity {
			t.Errorf("position %d: severity mismatch", i)
		}
	}
}

func TestEvaluateParallelEmpty(t *testing.T) {
	engine := NewEngine(DefaultDupThreshold)
	if out := engine.EvaluateParallel(context.Background(), nil, 4); len(out) != 0 {
		t.Errorf("got %d findings for empty input, want 0", len(out))
	}
}

func TestEvaluateParallelSingleWorker(t *testing.T) {
	clauses := clauseList(
		"Оплата производится в течение 30 дней.",
		"Оплата производится в течение 30 дней.",
	)

	engine := NewEngine(DefaultDupThreshold)
	out := engine.EvaluateParallel(context.Background(), clauses, 1)
	if len(out) != 1 || out[0].Kind() != model.KindDuplicate {
		t.Fatalf("got %+v, want one duplicate", out)
	}
}
