// ABOUTME: CLI command that summarizes the recent work orders of one asset
// ABOUTME: Runs the full pipeline, or prints the prompt with --dry-run
package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/harper/wosum/internal/core"
	"github.com/harper/wosum/internal/embedding"
	"github.com/harper/wosum/internal/index"
	"github.com/harper/wosum/internal/llm"
	"github.com/harper/wosum/internal/logging"
)

var (
	summarizeAsset  string
	summarizeWindow int
	summarizeCSV    string
	summarizeDryRun bool
)

// NewSummarizeCmd creates the summarize command
func NewSummarizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summarize",
		Short: "Summarize the most recent work orders of an asset",
		Long: `Summarize the most recent work orders of an asset.

Loads the CSV, indexes every work order, keeps the last --window work
orders of --asset ordered by work order number, computes failure counts
and average labor hours, and sends a grounded prompt to the configured
summary service.

Examples:
  wosum summarize
  wosum summarize --asset PUMP-7 --window 5
  wosum summarize --dry-run
  wosum summarize --format json`,
		Args: cobra.NoArgs,
		RunE: runSummarize,
	}

	cmd.Flags().StringVarP(&summarizeAsset, "asset", "a", "", "Asset to summarize (default TARGET_ASSET)")
	cmd.Flags().IntVarP(&summarizeWindow, "window", "w", 0, "Number of recent work orders (default WINDOW_SIZE)")
	cmd.Flags().StringVar(&summarizeCSV, "csv", "", "Work order CSV file (default CSV_PATH)")
	cmd.Flags().BoolVar(&summarizeDryRun, "dry-run", false, "Print the prompt instead of calling the summary service")

	return cmd
}

func runSummarize(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := applyInputFlags(cmd, cfg, summarizeCSV, summarizeAsset, summarizeWindow); err != nil {
		return err
	}

	orders, err := loadOrders(cfg.CSVPath)
	if err != nil {
		return err
	}

	embedder, err := embedding.NewFromConfig(cfg)
	if err != nil {
		return fmt.Errorf("initializing embedder: %w", err)
	}

	var summarizer llm.SummaryService
	if !summarizeDryRun {
		summarizer, err = llm.NewFromConfig(cfg)
		if err != nil {
			return fmt.Errorf("initializing summary service: %w", err)
		}
	}

	pipeline := core.NewPipeline(embedder, index.NewFlatL2(), summarizer)

	if summarizeDryRun {
		res, err := pipeline.Prepare(cmd.Context(), orders, cfg.TargetAsset, cfg.WindowSize)
		if err != nil {
			return err
		}
		return writeOutput(cmd.OutOrStdout(), res, func(w io.Writer) error {
			_, err := fmt.Fprint(w, res.Prompt)
			return err
		})
	}

	res, err := pipeline.Run(cmd.Context(), orders, cfg.TargetAsset, cfg.WindowSize)
	if err != nil {
		return err
	}
	logging.L().Infow("summary complete", "run_id", res.RunID, "asset", res.Asset, "records", len(res.Window))

	return writeOutput(cmd.OutOrStdout(), res, func(w io.Writer) error {
		_, err := fmt.Fprintf(w, "Summary for %s:\n%s\n", res.Asset, res.Summary)
		return err
	})
}
