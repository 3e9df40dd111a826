// Package rules implements the pairwise finding cascade: duplicate detection,
// the same-topic gate, and the three conflict heuristics (negation, modal,
// numeric divergence), plus post-processing of the resulting findings.
package rules

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/avoronov/clauselint/internal/model"
	"github.com/avoronov/clauselint/internal/numeric"
	"github.com/avoronov/clauselint/internal/similarity"
	"github.com/avoronov/clauselint/internal/text"
)

const (
	// DefaultDupThreshold is the Jaccard score at which a pair counts as a
	// duplicate. Callers may tune it within [MinDupThreshold, MaxDupThreshold].
	DefaultDupThreshold = 0.85
	MinDupThreshold     = 0.6
	MaxDupThreshold     = 0.98

	// highDupThreshold upgrades a duplicate to high severity.
	highDupThreshold = 0.92

	// divergenceMin is the relative difference at which two quantities for the
	// same topic count as contradictory.
	divergenceMin = 0.5
)

// ClampThreshold forces a caller-supplied threshold into the supported domain.
// This belongs to the host boundary; the engine itself uses the value as-is.
func ClampThreshold(t float64) float64 {
	if t < MinDupThreshold {
		return MinDupThreshold
	}
	if t > MaxDupThreshold {
		return MaxDupThreshold
	}
	return t
}

// Engine applies the ordered heuristics to every unordered clause pair. An
// Engine holds no state across Evaluate calls; tokenization and extraction
// results are memoized per call only, which is safe because clause lists are
// immutable for the duration of a pass.
type Engine struct {
	dupThreshold float64
}

// NewEngine creates an engine with the given duplicate threshold.
func NewEngine(dupThreshold float64) *Engine {
	return &Engine{dupThreshold: dupThreshold}
}

// Analyze is the plain entry point: one sequential pairwise pass followed by
// post-processing. Re-running over identical input and threshold is
// idempotent apart from finding IDs and timestamps.
func Analyze(clauses []model.Clause, dupThreshold float64) []model.Finding {
	return Finalize(NewEngine(dupThreshold).Evaluate(clauses))
}

// clauseView is the per-call memo of everything the rules need per clause.
type clauseView struct {
	clause   model.Clause
	norm     string
	tokens   []string
	keywords []string
	numbers  []numeric.Quantity
}

func buildViews(clauses []model.Clause) []clauseView {
	views := make([]clauseView, len(clauses))
	for i, c := range clauses {
		views[i] = clauseView{
			clause:   c,
			norm:     text.Normalize(c.Text),
			tokens:   text.Tokenize(c.Text),
			keywords: similarity.Keywords(c.Text, similarity.DefaultKeywordCount),
			numbers:  numeric.Extract(c.Text),
		}
	}
	return views
}

// Evaluate runs the cascade over every pair (i, j), i < j, in order. Each pair
// yields at most one finding; the first rule that fires wins.
func (e *Engine) Evaluate(clauses []model.Clause) []model.Finding {
	views := buildViews(clauses)

	var findings []model.Finding
	for i := 0; i < len(views); i++ {
		for j := i + 1; j < len(views); j++ {
			if f := e.evaluatePair(&views[i], &views[j]); f != nil {
				findings = append(findings, f)
			}
		}
	}
	return findings
}

// evaluatePair applies the rules in strict order: duplicate, topic gate,
// negation, modal, numeric divergence.
func (e *Engine) evaluatePair(a, b *clauseView) model.Finding {
	if score := similarity.Jaccard(a.tokens, b.tokens); score >= e.dupThreshold {
		return e.newDuplicate(a, b, score)
	}

	// Conflicts are only meaningful between clauses about the same subject.
	if similarity.SharedKeywords(a.keywords, b.keywords) < 2 {
		return nil
	}

	if f := e.checkNegation(a, b); f != nil {
		return f
	}
	if f := e.checkModal(a, b); f != nil {
		return f
	}
	return e.checkNumbers(a, b)
}

func (e *Engine) newDuplicate(a, b *clauseView, score float64) model.Finding {
	severity := model.SeverityMedium
	if score > highDupThreshold {
		severity = model.SeverityHigh
	}
	return &model.Duplicate{
		FindingBase: newBase(severity, fmt.Sprintf(
			"Пункты %d и %d практически дублируют друг друга (сходство %.2f).",
			a.clause.Index, b.clause.Index, score)),
		Items:      []int{a.clause.Index, b.clause.Index},
		Similarity: score,
	}
}

func (e *Engine) checkNegation(a, b *clauseView) model.Finding {
	polA, markerA := classifyPolarity(a.norm)
	polB, markerB := classifyPolarity(b.norm)

	pos, neg := a, b
	posMarker, negMarker := markerA, markerB
	switch {
	case polA == polarityPositive && polB == polarityNegative:
		// already oriented
	case polA == polarityNegative && polB == polarityPositive:
		pos, neg = b, a
		posMarker, negMarker = markerB, markerA
	default:
		return nil
	}

	return &model.Conflict{
		FindingBase: newBase(model.SeverityHigh, fmt.Sprintf(
			"Пункт %d разрешает или предписывает действие, а пункт %d содержит прямой запрет.",
			pos.clause.Index, neg.clause.Index)),
		A:      a.clause.Index,
		B:      b.clause.Index,
		Signal: model.SignalNegation,
		Meta: map[string]interface{}{
			"positive_clause": pos.clause.Index,
			"positive_marker": posMarker,
			"negative_clause": neg.clause.Index,
			"negative_marker": negMarker,
		},
	}
}

func (e *Engine) checkModal(a, b *clauseView) model.Finding {
	modA, markerA := classifyModality(a.norm)
	modB, markerB := classifyModality(b.norm)

	pos, neg := a, b
	posMarker, negMarker := markerA, markerB
	switch {
	case modA == polarityPositive && modB == polarityNegative:
		// already oriented
	case modA == polarityNegative && modB == polarityPositive:
		pos, neg = b, a
		posMarker, negMarker = markerB, markerA
	default:
		return nil
	}

	return &model.Conflict{
		FindingBase: newBase(model.SeverityHigh, fmt.Sprintf(
			"Пункт %d устанавливает обязанность или право («%s»), а пункт %d отрицает её («%s»).",
			pos.clause.Index, posMarker, neg.clause.Index, negMarker)),
		A:      a.clause.Index,
		B:      b.clause.Index,
		Signal: model.SignalModal,
		Meta: map[string]interface{}{
			"positive_clause": pos.clause.Index,
			"positive_modal":  posMarker,
			"negative_clause": neg.clause.Index,
			"negative_modal":  negMarker,
		},
	}
}

// checkNumbers forms the cross-product of number pairs whose units are
// compatible and takes the maximum relative difference over all of them. With
// many numbers per clause this can be dominated by a semantically unrelated
// pair; that imprecision is inherited behavior, kept deliberately.
func (e *Engine) checkNumbers(a, b *clauseView) model.Finding {
	if len(a.numbers) == 0 || len(b.numbers) == 0 {
		return nil
	}

	var (
		maxDiff    float64
		worstA     numeric.Quantity
		worstB     numeric.Quantity
		candidates []map[string]interface{}
	)
	for _, qa := range a.numbers {
		for _, qb := range b.numbers {
			if !numeric.CompatibleUnits(qa, qb) {
				continue
			}
			diff := numeric.RelDiff(qa.Value, qb.Value)
			candidates = append(candidates, map[string]interface{}{
				"a":        qa,
				"b":        qb,
				"rel_diff": diff,
			})
			if diff >= maxDiff {
				maxDiff, worstA, worstB = diff, qa, qb
			}
		}
	}

	if len(candidates) == 0 || maxDiff < divergenceMin {
		return nil
	}

	return &model.Conflict{
		FindingBase: newBase(model.SeverityMedium, fmt.Sprintf(
			"Пункты %d и %d указывают существенно различающиеся величины для одного условия (%s против %s).",
			a.clause.Index, b.clause.Index, formatQuantity(worstA), formatQuantity(worstB))),
		A:      a.clause.Index,
		B:      b.clause.Index,
		Signal: model.SignalNumbers,
		Meta: map[string]interface{}{
			"pairs":        candidates,
			"max_rel_diff": maxDiff,
		},
	}
}

func formatQuantity(q numeric.Quantity) string {
	value := fmt.Sprintf("%g", q.Value)
	if q.Unit == "" {
		return value
	}
	return value + " " + q.Unit
}

func newBase(severity model.Severity, reason string) model.FindingBase {
	return model.FindingBase{
		ID:        uuid.NewString(),
		Severity:  severity,
		Reason:    reason,
		CreatedAt: time.Now().UTC(),
	}
}
