// Package worker provides the fan-out/fan-in pool used for batch file
// analysis and for parallelizing the pairwise rule loop, plus the per-client
// rate limiter used by the HTTP API.
package worker

import (
	"context"
	"sync"
)

// Job is one independent, side-effect-free unit of work.
type Job interface {
	Execute(ctx context.Context) Result
}

// Result is what a job produces.
type Result interface {
	GetError() error
}

// Pool fans a job list out over a fixed number of goroutines. Result order is
// not guaranteed; callers needing a canonical order must restore it
// themselves.
type Pool struct {
	workers int
}

// NewPool creates a pool with the given worker count (minimum 1).
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = 1
	}
	return &Pool{workers: workers}
}

// Run executes all jobs and returns the collected results. Cancelling the
// context stops feeding new jobs; jobs already running finish and their
// results are included.
func (p *Pool) Run(ctx context.Context, jobs []Job) []Result {
	jobCh := make(chan Job)
	resCh := make(chan Result, len(jobs))

	var wg sync.WaitGroup
	for i := 0; i < p.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobCh {
				if ctx.Err() != nil {
					return
				}
				resCh <- job.Execute(ctx)
			}
		}()
	}

	go func() {
		defer close(jobCh)
		for _, job := range jobs {
			select {
			case jobCh <- job:
			case <-ctx.Done():
				return
			}
		}
	}()

	wg.Wait()
	close(resCh)

	results := make([]Result, 0, len(jobs))
	for r := range resCh {
		results = append(results, r)
	}
	return results
}
