package rules

import (
	"context"
	"sort"

	"github.com/avoronov/clauselint/internal/model"
	"github.com/avoronov/clauselint/internal/worker"
)

// pairJob evaluates one clause pair against the shared, read-only views.
type pairJob struct {
	seq    int
	engine *Engine
	a, b   *clauseView
}

type pairResult struct {
	seq     int
	finding model.Finding
}

func (r *pairResult) GetError() error { return nil }

func (j *pairJob) Execute(ctx context.Context) worker.Result {
	return &pairResult{seq: j.seq, finding: j.engine.evaluatePair(j.a, j.b)}
}

// EvaluateParallel fans the n*(n-1)/2 pair evaluations out over a worker
// pool. Each pair is independent and side-effect-free, so no ordering is
// guaranteed between pairs; results are re-ordered by pair sequence before
// returning, which makes the output identical to Evaluate.
func (e *Engine) EvaluateParallel(ctx context.Context, clauses []model.Clause, workers int) []model.Finding {
	views := buildViews(clauses)

	var jobs []worker.Job
	seq := 0
	for i := 0; i < len(views); i++ {
		for j := i + 1; j < len(views); j++ {
			jobs = append(jobs, &pairJob{seq: seq, engine: e, a: &views[i], b: &views[j]})
			seq++
		}
	}

	pool := worker.NewPool(workers)
	results := pool.Run(ctx, jobs)

	ordered := make([]*pairResult, 0, len(results))
	for _, r := range results {
		ordered = append(ordered, r.(*pairResult))
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].seq < ordered[j].seq })

	var findings []model.Finding
	for _, r := range ordered {
		if r.finding != nil {
			findings = append(findings, r.finding)
		}
	}
	return findings
}
