// ABOUTME: CLI command to find similar work orders across all assets
// ABOUTME: Queries the in-memory vector index by free text or by work order number
package commands

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/harper/wosum/internal/core"
	"github.com/harper/wosum/internal/embedding"
	"github.com/harper/wosum/internal/index"
	"github.com/harper/wosum/internal/models"
)

var (
	similarWONum string
	similarLimit int
	similarCSV   string
)

// NewSimilarCmd creates the similar command
func NewSimilarCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "similar [description]",
		Short: "Find work orders similar to a description or work order",
		Long: `Find work orders similar to a free-text failure description, or to
an existing work order given with --wonum, across all assets.

Examples:
  wosum similar "compressor tripped on high pressure"
  wosum similar --wonum 1042 --limit 10
  wosum similar --format json "seal leak"`,
		Args: cobra.ArbitraryArgs,
		RunE: runSimilar,
	}

	cmd.Flags().StringVar(&similarWONum, "wonum", "", "Use an existing work order as the query")
	cmd.Flags().IntVarP(&similarLimit, "limit", "k", 5, "Maximum number of results")
	cmd.Flags().StringVar(&similarCSV, "csv", "", "Work order CSV file (default CSV_PATH)")

	return cmd
}

func runSimilar(cmd *cobra.Command, args []string) error {
	query := strings.TrimSpace(strings.Join(args, " "))
	if (query == "") == (similarWONum == "") {
		return fmt.Errorf("provide either a description or --wonum")
	}
	if err := validatePositiveInt(similarLimit, "--limit"); err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("csv") {
		cfg.CSVPath = similarCSV
	}

	orders, err := loadOrders(cfg.CSVPath)
	if err != nil {
		return err
	}

	embedder, err := embedding.NewFromConfig(cfg)
	if err != nil {
		return fmt.Errorf("initializing embedder: %w", err)
	}
	pipeline := core.NewPipeline(embedder, index.NewFlatL2(), nil)

	var results []models.SimilarWorkOrder
	if similarWONum != "" {
		results, err = pipeline.SimilarTo(cmd.Context(), orders, similarWONum, similarLimit)
	} else {
		results, err = pipeline.Similar(cmd.Context(), orders, query, similarLimit)
	}
	if err != nil {
		return err
	}

	return writeOutput(cmd.OutOrStdout(), results, func(w io.Writer) error {
		if len(results) == 0 {
			if !quiet {
				fmt.Fprintf(w, "No similar work orders found\n")
			}
			return nil
		}

		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintf(tw, "WO NUMBER\tASSET\tFAILURE\tHOURS\tDISTANCE\tDESCRIPTION\n")
		fmt.Fprintf(tw, "---------\t-----\t-------\t-----\t--------\t-----------\n")
		for _, r := range results {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%.2f\t%.4f\t%s\n",
				r.WorkOrder.WONum,
				r.WorkOrder.AssetNum,
				r.WorkOrder.FailureCategory(),
				r.WorkOrder.LaborHrs,
				r.Distance,
				truncate(r.WorkOrder.Description, 40))
		}
		if err := tw.Flush(); err != nil {
			return err
		}

		if !quiet {
			fmt.Fprintf(w, "\nTotal: %d result(s)\n", len(results))
		}
		return nil
	})
}
