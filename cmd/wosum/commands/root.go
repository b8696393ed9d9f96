// ABOUTME: Root command and global flags for the wosum CLI
// ABOUTME: Wires every subcommand and checks the shared output flags
package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Global flags shared by all subcommands
var (
	verbose      bool
	quiet        bool
	outputFormat string
)

// NewRootCmd creates the root command with all subcommands attached
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wosum",
		Short: "Summarize recent maintenance work orders per asset",
		Long: `wosum - work order summaries

Loads a work-order CSV export, embeds every record into an in-memory
vector index, selects the most recent work orders of one asset and asks
a generative-language service for a grounded summary of failure codes,
repeated issues and labor hours.

Configuration comes from the environment (or a .env file):
  GEMINI_API_KEY, GEMINI_API_URL, SUMMARY_PROVIDER, EMBEDDING_PROVIDER,
  CSV_PATH, TARGET_ASSET, WINDOW_SIZE, LOG_LEVEL, LOG_FORMAT`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if verbose && quiet {
				return fmt.Errorf("--verbose and --quiet are mutually exclusive")
			}
			switch outputFormat {
			case "auto", "text", "json", "yaml":
			default:
				return fmt.Errorf("--format must be one of auto, text, json, yaml, got %q", outputFormat)
			}
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Only log errors")
	cmd.PersistentFlags().StringVar(&outputFormat, "format", "auto", "Output format: auto, text, json, yaml")

	cmd.AddCommand(
		NewSummarizeCmd(),
		NewStatsCmd(),
		NewSimilarCmd(),
		NewMCPCmd(),
		NewVersionCmd(),
	)

	return cmd
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}
