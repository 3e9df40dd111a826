// Package pipeline orchestrates the full analysis pass over one document:
// ingestion, segmentation, pairwise rules, post-processing, caching and
// rendering.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/avoronov/clauselint/internal/cache"
	"github.com/avoronov/clauselint/internal/ingest"
	"github.com/avoronov/clauselint/internal/model"
	"github.com/avoronov/clauselint/internal/rules"
	"github.com/avoronov/clauselint/internal/segment"
)

// Pipeline ties the pure core stages together. It holds configuration and an
// optional report cache, never analysis state: every AnalyzeText call is an
// independent pass.
type Pipeline struct {
	engine   *rules.Engine
	cache    cache.Cache
	renderer *Renderer
	cfg      *model.Config
}

// New creates a pipeline from the given configuration.
func New(cfg *model.Config) *Pipeline {
	var c cache.Cache
	if cfg.Cache.Enabled {
		c = cache.NewLayeredCache(cfg.Cache.MemoryTTL, cfg.Cache.Dir, cfg.Cache.DiskTTL)
	}

	return &Pipeline{
		engine:   rules.NewEngine(cfg.Analysis.DupThreshold),
		cache:    c,
		renderer: NewRenderer(cfg.Output.IncludeFooter, cfg.Output.ShowResolved),
		cfg:      cfg,
	}
}

// Renderer exposes the configured report renderer.
func (p *Pipeline) Renderer() *Renderer { return p.renderer }

// AnalyzeText segments the raw text and runs the pairwise pass over the
// resulting clauses. Identical text and threshold hit the cache.
func (p *Pipeline) AnalyzeText(ctx context.Context, raw string) (*model.Report, error) {
	key := cache.Key(raw, p.cfg.Analysis.DupThreshold)
	if p.cache != nil {
		if data, found := p.cache.Get(key); found {
			var report model.Report
			if err := json.Unmarshal(data, &report); err == nil {
				return &report, nil
			}
			// A stale or corrupt entry is not an error, just a miss.
			_ = p.cache.Delete(key)
		}
	}

	clauses := segment.Split(raw)

	var findings []model.Finding
	if p.cfg.Concurrency.Workers > 1 && len(clauses) >= p.cfg.Concurrency.ParallelMinClauses {
		findings = rules.Finalize(p.engine.EvaluateParallel(ctx, clauses, p.cfg.Concurrency.Workers))
	} else {
		findings = rules.Analyze(clauses, p.cfg.Analysis.DupThreshold)
	}

	report := &model.Report{
		Clauses:      clauses,
		Findings:     findings,
		DupThreshold: p.cfg.Analysis.DupThreshold,
		GeneratedAt:  time.Now().UTC(),
	}

	if p.cache != nil {
		if data, err := json.Marshal(report); err == nil {
			_ = p.cache.Set(key, data, 0)
		}
	}
	return report, nil
}

// AnalyzeFile ingests a document from disk and analyzes it.
func (p *Pipeline) AnalyzeFile(ctx context.Context, path string) (*model.Report, error) {
	raw, err := ingest.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("ingest: %w", err)
	}

	report, err := p.AnalyzeText(ctx, raw)
	if err != nil {
		return nil, err
	}
	report.Title = filepath.Base(path)
	return report, nil
}

// AnalyzeDocument analyzes a stored document and stamps the report with its
// identity.
func (p *Pipeline) AnalyzeDocument(ctx context.Context, doc *model.Document) (*model.Report, error) {
	report, err := p.AnalyzeText(ctx, doc.Text)
	if err != nil {
		return nil, err
	}
	report.DocumentID = doc.ID
	report.Title = doc.Title
	return report, nil
}
