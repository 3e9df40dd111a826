package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/avoronov/clauselint/internal/pipeline"
	"github.com/avoronov/clauselint/internal/rules"
)

var (
	outJSON      string
	outMD        string
	dupThreshold float64
	workers      int
	checkTimeout time.Duration
	noCache      bool
	noFooter     bool
	showResolved bool
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check <file>",
	Short: "Analyze a contract document and report duplicates and conflicts",
	Long: `Check segments a document into clauses and runs the pairwise analysis:
- Duplicate detection via token-set similarity
- Conflict detection via negation, modal and numeric-divergence rules
- Findings deduplicated and ranked by severity

Example:
  clauselint check contract.txt
  clauselint check contract.txt --json report.json --md report.md
  clauselint check contract.html --threshold 0.9`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVar(&outJSON, "json", "report.json", "output JSON path")
	checkCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")
	checkCmd.Flags().Float64Var(&dupThreshold, "threshold", rules.DefaultDupThreshold, "duplicate similarity threshold [0.6, 0.98]")
	checkCmd.Flags().IntVar(&workers, "workers", 1, "worker count for the pairwise loop (large documents)")
	checkCmd.Flags().DurationVar(&checkTimeout, "timeout", 2*time.Minute, "overall analysis timeout")
	checkCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the report cache")
	checkCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")
	checkCmd.Flags().BoolVar(&showResolved, "show-resolved", false, "include resolved findings in Markdown output")
}

func runCheck(cmd *cobra.Command, args []string) error {
	path := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), checkTimeout)
	defer cancel()

	clamped := rules.ClampThreshold(dupThreshold)
	if clamped != dupThreshold {
		fmt.Fprintf(os.Stderr, "Warning: threshold %.2f outside [%.2f, %.2f], using %.2f\n",
			dupThreshold, rules.MinDupThreshold, rules.MaxDupThreshold, clamped)
	}

	cfg := loadConfig()
	cfg.Analysis.DupThreshold = clamped
	cfg.Concurrency.Workers = workers
	cfg.Cache.Enabled = cfg.Cache.Enabled && !noCache
	cfg.Output.IncludeFooter = !noFooter
	cfg.Output.ShowResolved = showResolved

	if verbose {
		fmt.Fprintf(os.Stderr, "Checking: %s\n", path)
		fmt.Fprintf(os.Stderr, "Threshold: %.2f\n", clamped)
		fmt.Fprintf(os.Stderr, "Cache: %v\n\n", cfg.Cache.Enabled)
	}

	p := pipeline.New(cfg)
	report, err := p.AnalyzeFile(ctx, path)
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Segmented %d clauses\n", len(report.Clauses))
		fmt.Fprintf(os.Stderr, "✓ Found %d findings\n\n", len(report.Findings))
	}

	if outJSON != "" {
		if err := p.Renderer().WriteJSON(report, outJSON); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote JSON: %s\n", outJSON)
		}
	}
	if outMD != "" {
		if err := p.Renderer().WriteMarkdown(report, outMD); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote Markdown: %s\n", outMD)
		}
	}

	p.Renderer().Summary(report, os.Stdout)
	return nil
}
