package worker

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/avoronov/clauselint/internal/model"
)

// Analyzer produces a report for one document file.
type Analyzer interface {
	AnalyzeFile(ctx context.Context, path string) (*model.Report, error)
}

// FileJob analyzes one input file.
type FileJob struct {
	Path     string
	Analyzer Analyzer
}

// Execute runs the analysis for the job's file.
func (j *FileJob) Execute(ctx context.Context) Result {
	report, err := j.Analyzer.AnalyzeFile(ctx, j.Path)
	return &FileResult{Path: j.Path, Report: report, Err: err}
}

// FileResult is the outcome of one file job.
type FileResult struct {
	Path   string
	Report *model.Report
	Err    error
}

// GetError returns the job error, if any.
func (r *FileResult) GetError() error { return r.Err }

// BatchProcessor analyzes many document files concurrently.
type BatchProcessor struct {
	analyzer    Analyzer
	concurrency int
}

// NewBatchProcessor creates a batch processor with the given concurrency.
func NewBatchProcessor(analyzer Analyzer, concurrency int) *BatchProcessor {
	return &BatchProcessor{analyzer: analyzer, concurrency: concurrency}
}

// ProcessFiles analyzes the given files in parallel.
func (b *BatchProcessor) ProcessFiles(ctx context.Context, paths []string) []*FileResult {
	if len(paths) == 0 {
		return nil
	}

	jobs := make([]Job, len(paths))
	for i, path := range paths {
		jobs[i] = &FileJob{Path: path, Analyzer: b.analyzer}
	}

	pool := NewPool(b.concurrency)
	results := pool.Run(ctx, jobs)

	fileResults := make([]*FileResult, len(results))
	for i, r := range results {
		fileResults[i] = r.(*FileResult)
	}
	return fileResults
}

// documentExts lists the file extensions batch mode picks up.
var documentExts = map[string]bool{
	".txt":  true,
	".md":   true,
	".htm":  true,
	".html": true,
}

// ListInputFiles walks a directory and returns supported document files.
func ListInputFiles(dir string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if documentExts[strings.ToLower(filepath.Ext(path))] {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", dir, err)
	}
	return paths, nil
}
