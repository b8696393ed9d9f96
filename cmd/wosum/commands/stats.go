// ABOUTME: CLI command showing the window and statistics of one asset
// ABOUTME: Makes no remote calls, useful to inspect what a summary would be based on
package commands

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/harper/wosum/internal/core"
	"github.com/harper/wosum/internal/models"
)

var (
	statsAsset  string
	statsWindow int
	statsCSV    string
)

type statsOutput struct {
	Asset        string                `json:"asset" yaml:"asset"`
	WindowSize   int                   `json:"window_size" yaml:"window_size"`
	WorkOrders   []models.WorkOrder    `json:"work_orders" yaml:"work_orders"`
	Failures     []models.FailureCount `json:"failures" yaml:"failures"`
	AverageHours []models.AverageHours `json:"average_hours" yaml:"average_hours"`
}

// NewStatsCmd creates the stats command
func NewStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show failure counts and average hours for an asset",
		Long: `Show the recent work-order window of an asset with failure counts
and average labor hours per failure code. Nothing is sent to the
summary service.

Examples:
  wosum stats
  wosum stats --asset PUMP-7 --window 20
  wosum stats --format yaml`,
		Args: cobra.NoArgs,
		RunE: runStats,
	}

	cmd.Flags().StringVarP(&statsAsset, "asset", "a", "", "Asset to inspect (default TARGET_ASSET)")
	cmd.Flags().IntVarP(&statsWindow, "window", "w", 0, "Number of recent work orders (default WINDOW_SIZE)")
	cmd.Flags().StringVar(&statsCSV, "csv", "", "Work order CSV file (default CSV_PATH)")

	return cmd
}

func runStats(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := applyInputFlags(cmd, cfg, statsCSV, statsAsset, statsWindow); err != nil {
		return err
	}

	orders, err := loadOrders(cfg.CSVPath)
	if err != nil {
		return err
	}

	res, err := core.Analyze(orders, cfg.TargetAsset, cfg.WindowSize)
	if err != nil {
		return err
	}

	out := statsOutput{
		Asset:        res.Asset,
		WindowSize:   res.WindowSize,
		WorkOrders:   res.Window,
		Failures:     res.Stats.Failures.Entries(),
		AverageHours: res.Stats.AverageHours.EntriesIn(res.Stats.Failures.Codes()),
	}

	return writeOutput(cmd.OutOrStdout(), out, func(w io.Writer) error {
		fmt.Fprintf(w, "Asset %s: %d work order(s), window size %d\n\n", out.Asset, len(out.WorkOrders), out.WindowSize)
		fmt.Fprint(w, core.RenderTable(out.WorkOrders))
		fmt.Fprintln(w)

		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintf(tw, "FAILURE CODE\tCOUNT\tAVG HOURS\n")
		fmt.Fprintf(tw, "------------\t-----\t---------\n")
		for i, f := range out.Failures {
			fmt.Fprintf(tw, "%s\t%d\t%.2f\n", f.Code, f.Count, out.AverageHours[i].Hours)
		}
		return tw.Flush()
	})
}
