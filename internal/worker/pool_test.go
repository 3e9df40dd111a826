package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

type countJob struct {
	counter *int64
	fail    bool
}

type countResult struct {
	err error
}

func (r *countResult) GetError() error { return r.err }

func (j *countJob) Execute(ctx context.Context) Result {
	atomic.AddInt64(j.counter, 1)
	if j.fail {
		return &countResult{err: errors.New("job failed")}
	}
	return &countResult{}
}

func TestPoolRunsAllJobs(t *testing.T) {
	var counter int64
	jobs := make([]Job, 20)
	for i := range jobs {
		jobs[i] = &countJob{counter: &counter}
	}

	pool := NewPool(4)
	results := pool.Run(context.Background(), jobs)

	if got := atomic.LoadInt64(&counter); got != 20 {
		t.Errorf("executed %d jobs, want 20", got)
	}
	if len(results) != 20 {
		t.Errorf("collected %d results, want 20", len(results))
	}
}

func TestPoolCollectsErrors(t *testing.T) {
	var counter int64
	jobs := []Job{
		&countJob{counter: &counter},
		&countJob{counter: &counter, fail: true},
		&countJob{counter: &counter},
	}

	pool := NewPool(2)
	results := pool.Run(context.Background(), jobs)

	failed := 0
	for _, r := range results {
		if r.GetError() != nil {
			failed++
		}
	}
	if failed != 1 {
		t.Errorf("got %d failed results, want 1", failed)
	}
}

func TestPoolClampsWorkerCount(t *testing.T) {
	var counter int64
	pool := NewPool(0)
	results := pool.Run(context.Background(), []Job{&countJob{counter: &counter}})
	if len(results) != 1 {
		t.Errorf("got %d results, want 1", len(results))
	}
}

func TestPoolNoJobs(t *testing.T) {
	pool := NewPool(3)
	if results := pool.Run(context.Background(), nil); len(results) != 0 {
		t.Errorf("got %d results for no jobs, want 0", len(results))
	}
}

func TestPoolCancelledContextStopsFeeding(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var counter int64
	jobs := make([]Job, 100)
	for i := range jobs {
		jobs[i] = &countJob{counter: &counter}
	}

	pool := NewPool(2)
	results := pool.Run(ctx, jobs)
	if got := atomic.LoadInt64(&counter); got == 100 {
		t.Error("cancelled run should not execute the full job list")
	}
	if len(results) > 100 {
		t.Errorf("collected %d results", len(results))
	}
}

func TestLimiterAllowsBurstThenBlocks(t *testing.T) {
	limiter := NewLimiter(1, 2)

	if !limiter.Allow("10.0.0.1") || !limiter.Allow("10.0.0.1") {
		t.Fatal("burst requests should be allowed")
	}
	if limiter.Allow("10.0.0.1") {
		t.Error("request over burst should be denied")
	}
	// Other clients have their own bucket.
	if !limiter.Allow("10.0.0.2") {
		t.Error("separate client should have a fresh budget")
	}
}

func TestLimiterRefills(t *testing.T) {
	limiter := NewLimiter(100, 1)
	if !limiter.Allow("c") {
		t.Fatal("first request should pass")
	}
	if limiter.Allow("c") {
		t.Fatal("second immediate request should be denied")
	}
	time.Sleep(25 * time.Millisecond)
	if !limiter.Allow("c") {
		t.Error("request after refill window should pass")
	}
}
