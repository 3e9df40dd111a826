package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/avoronov/clauselint/internal/pipeline"
	"github.com/avoronov/clauselint/internal/worker"
)

var (
	batchConcurrency int
	batchOutputDir   string
	batchTimeout     time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <dir>",
	Short: "Analyze every document in a directory",
	Long: `Batch walks a directory, picks up supported documents (.txt, .md, .html)
and analyzes them concurrently, writing one JSON report per input file.

Example:
  clauselint batch ./contracts
  clauselint batch ./contracts --concurrency 8 --output-dir ./reports`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&batchConcurrency, "concurrency", runtime.NumCPU(), "number of files analyzed in parallel")
	batchCmd.Flags().StringVar(&batchOutputDir, "output-dir", "reports", "directory for generated reports")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "overall batch timeout")
}

func runBatch(cmd *cobra.Command, args []string) error {
	dir := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	paths, err := worker.ListInputFiles(dir)
	if err != nil {
		return fmt.Errorf("list input files: %w", err)
	}
	if len(paths) == 0 {
		fmt.Fprintf(os.Stderr, "No documents found in %s\n", dir)
		return nil
	}

	if err := os.MkdirAll(batchOutputDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	cfg := loadConfig()
	p := pipeline.New(cfg)

	if verbose {
		fmt.Fprintf(os.Stderr, "Analyzing %d documents with concurrency %d\n\n", len(paths), batchConcurrency)
	}

	processor := worker.NewBatchProcessor(p, batchConcurrency)
	results := processor.ProcessFiles(ctx, paths)

	failed := 0
	for _, res := range results {
		if res.Err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", res.Path, res.Err)
			continue
		}

		out := filepath.Join(batchOutputDir, reportName(res.Path))
		if err := p.Renderer().WriteJSON(res.Report, out); err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", res.Path, err)
			continue
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ %s -> %s (%d findings)\n", res.Path, out, len(res.Report.Findings))
		}
	}

	fmt.Printf("Processed %d documents, %d failed, reports in %s\n", len(results), failed, batchOutputDir)
	if failed > 0 {
		return fmt.Errorf("%d of %d documents failed", failed, len(results))
	}
	return nil
}

func reportName(inputPath string) string {
	base := filepath.Base(inputPath)
	return strings.TrimSuffix(base, filepath.Ext(base)) + ".report.json"
}
