// ABOUTME: Shared utility functions for CLI commands
// ABOUTME: Config and dataset loading, output format selection, string helpers
package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/harper/wosum/internal/config"
	"github.com/harper/wosum/internal/ingest"
	"github.com/harper/wosum/internal/logging"
	"github.com/harper/wosum/internal/models"
)

// loadConfig reads .env and the environment, then initializes logging
func loadConfig() (*config.Config, error) {
	// .env is optional
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	level := cfg.LogLevel
	switch {
	case verbose:
		level = "debug"
	case quiet:
		level = "error"
	}
	if err := logging.Init(level, cfg.LogFormat); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadOrders reads the CSV at path and logs the row count
func loadOrders(path string) ([]models.WorkOrder, error) {
	orders, err := ingest.LoadCSV(path)
	if err != nil {
		return nil, err
	}
	logging.L().Debugw("loaded work orders", "path", path, "rows", len(orders))
	return orders, nil
}

// applyInputFlags overrides config values with flags the user set explicitly
func applyInputFlags(cmd *cobra.Command, cfg *config.Config, csvPath, asset string, window int) error {
	if cmd.Flags().Changed("csv") {
		cfg.CSVPath = csvPath
	}
	if cmd.Flags().Changed("asset") {
		cfg.TargetAsset = asset
	}
	if cmd.Flags().Changed("window") {
		if window < 0 {
			return fmt.Errorf("--window must be >= 0, got %d", window)
		}
		cfg.WindowSize = window
	}
	return nil
}

// resolveFormat maps "auto" onto text output
func resolveFormat() string {
	if outputFormat == "" || outputFormat == "auto" {
		return "text"
	}
	return outputFormat
}

// writeOutput renders v as JSON or YAML, or calls text for human output
func writeOutput(w io.Writer, v any, text func(io.Writer) error) error {
	switch resolveFormat() {
	case "json":
		jsonData, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		_, err = fmt.Fprintf(w, "%s\n", jsonData)
		return err
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("marshaling YAML: %w", err)
		}
		return enc.Close()
	default:
		return text(w)
	}
}

// truncate shortens a string to maxLen runes, adding "..." if truncated
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

// validatePositiveInt returns error if n is not positive
func validatePositiveInt(n int, name string) error {
	if n <= 0 {
		return fmt.Errorf("%s must be positive, got %d", name, n)
	}
	return nil
}
