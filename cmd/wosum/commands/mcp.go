// ABOUTME: MCP command starts a Model Context Protocol server
// ABOUTME: Lets LLM agents request asset summaries and statistics via stdio
package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/harper/wosum/internal/core"
	"github.com/harper/wosum/internal/embedding"
	"github.com/harper/wosum/internal/index"
	"github.com/harper/wosum/internal/llm"
	"github.com/harper/wosum/internal/logging"
	"github.com/harper/wosum/internal/mcp"
)

var mcpCSV string

// NewMCPCmd creates the MCP command
func NewMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server for LLM agents",
		Long: `Start MCP server for LLM agents

Runs wosum as an MCP (Model Context Protocol) server over stdio. The
work-order CSV is loaded once at startup; LLM agents can then ask for
asset summaries, window statistics and similar work orders.`,
		Args: cobra.NoArgs,
		RunE: runMCP,
		Example: `  # Start MCP server (typically called by an MCP client)
  wosum mcp --csv data/workorders.csv

  # Configure in an MCP client config file:
  # {
  #   "mcpServers": {
  #     "wosum": {
  #       "command": "wosum",
  #       "args": ["mcp"]
  #     }
  #   }
  # }`,
	}

	cmd.Flags().StringVar(&mcpCSV, "csv", "", "Work order CSV file (default CSV_PATH)")

	return cmd
}

// runMCP starts the MCP server
func runMCP(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("csv") {
		cfg.CSVPath = mcpCSV
	}
	log := logging.L()

	orders, err := loadOrders(cfg.CSVPath)
	if err != nil {
		return err
	}

	embedder, err := embedding.NewFromConfig(cfg)
	if err != nil {
		return fmt.Errorf("initializing embedder: %w", err)
	}

	// Statistics and similarity still work without summary credentials
	summarizer, err := llm.NewFromConfig(cfg)
	if err != nil {
		log.Warnw("summary service unavailable, summarize_asset will fail", "error", err)
	}

	pipeline := core.NewPipeline(embedder, index.NewFlatL2(), summarizer)
	indexed, err := pipeline.Preload(cmd.Context(), orders)
	if err != nil {
		return fmt.Errorf("indexing work orders: %w", err)
	}

	server := mcpserver.NewMCPServer("wosum", versionInfo.Version)
	mcp.RegisterTools(server, pipeline, orders, cfg.WindowSize)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Infow("MCP server starting on stdio", "work_orders", len(orders), "indexed", indexed, "csv", cfg.CSVPath)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- mcpserver.ServeStdio(server)
	}()

	select {
	case <-ctx.Done():
		log.Infow("shutdown signal received")
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	}

	return nil
}
