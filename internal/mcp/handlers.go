// ABOUTME: MCP tool handler implementations for the work-order server
// ABOUTME: Tool failures are returned as error results, never as protocol errors
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/harper/wosum/internal/core"
	"github.com/harper/wosum/internal/logging"
	"github.com/harper/wosum/internal/models"
)

// Handlers contains the handler functions for all MCP tools
type Handlers struct {
	pipeline      *core.Pipeline
	orders        []models.WorkOrder
	defaultWindow int
	mu            sync.Mutex // guards the shared pipeline index
}

// NewHandlers creates handlers over a dataset loaded once at server start.
// The pipeline index is expected to be preloaded with orders.
func NewHandlers(pipeline *core.Pipeline, orders []models.WorkOrder, defaultWindow int) *Handlers {
	return &Handlers{
		pipeline:      pipeline,
		orders:        orders,
		defaultWindow: defaultWindow,
	}
}

type summaryResponse struct {
	RunID      string `json:"run_id"`
	Asset      string `json:"asset"`
	WindowSize int    `json:"window_size"`
	Records    int    `json:"records"`
	Summary    string `json:"summary"`
}

type statsResponse struct {
	Asset        string                `json:"asset"`
	WindowSize   int                   `json:"window_size"`
	WorkOrders   []string              `json:"work_orders"`
	Failures     []models.FailureCount `json:"failures"`
	AverageHours []models.AverageHours `json:"average_hours"`
	Table        string                `json:"table"`
}

type similarResponse struct {
	Query   string                    `json:"query"`
	Results []models.SimilarWorkOrder `json:"results"`
	Count   int                       `json:"count"`
}

// SummarizeAsset handles the summarize_asset tool
func (h *Handlers) SummarizeAsset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	asset, err := request.RequireString("asset")
	if err != nil {
		return mcp.NewToolResultError("asset argument is required and must be a string"), nil
	}
	window := request.GetInt("window", h.defaultWindow)
	if window < 0 {
		return mcp.NewToolResultError(fmt.Sprintf("window must be >= 0, got %d", window)), nil
	}

	h.mu.Lock()
	res, err := h.pipeline.Run(ctx, h.orders, asset, window)
	h.mu.Unlock()
	if err != nil {
		return toolError(err), nil
	}

	return jsonResult(summaryResponse{
		RunID:      res.RunID,
		Asset:      res.Asset,
		WindowSize: res.WindowSize,
		Records:    len(res.Window),
		Summary:    res.Summary,
	})
}

// AssetStats handles the asset_stats tool
func (h *Handlers) AssetStats(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	asset, err := request.RequireString("asset")
	if err != nil {
		return mcp.NewToolResultError("asset argument is required and must be a string"), nil
	}
	window := request.GetInt("window", h.defaultWindow)
	if window < 0 {
		return mcp.NewToolResultError(fmt.Sprintf("window must be >= 0, got %d", window)), nil
	}

	res, err := core.Analyze(h.orders, asset, window)
	if err != nil {
		return toolError(err), nil
	}

	wonums := make([]string, len(res.Window))
	for i, wo := range res.Window {
		wonums[i] = wo.WONum
	}
	return jsonResult(statsResponse{
		Asset:        res.Asset,
		WindowSize:   res.WindowSize,
		WorkOrders:   wonums,
		Failures:     res.Stats.Failures.Entries(),
		AverageHours: res.Stats.AverageHours.EntriesIn(res.Stats.Failures.Codes()),
		Table:        core.RenderTable(res.Window),
	})
}

// SimilarWorkOrders handles the similar_work_orders tool
func (h *Handlers) SimilarWorkOrders(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query := request.GetString("query", "")
	wonum := request.GetString("wonum", "")
	k := request.GetInt("k", 5)

	if (query == "") == (wonum == "") {
		return mcp.NewToolResultError("exactly one of query or wonum is required"), nil
	}
	if k <= 0 {
		return mcp.NewToolResultError(fmt.Sprintf("k must be positive, got %d", k)), nil
	}

	h.mu.Lock()
	var (
		results []models.SimilarWorkOrder
		err     error
	)
	if wonum != "" {
		results, err = h.pipeline.SimilarTo(ctx, h.orders, wonum, k)
		query = "wonum:" + wonum
	} else {
		results, err = h.pipeline.Similar(ctx, h.orders, query, k)
	}
	h.mu.Unlock()
	if err != nil {
		return toolError(err), nil
	}

	return jsonResult(similarResponse{Query: query, Results: results, Count: len(results)})
}

func toolError(err error) *mcp.CallToolResult {
	var noRecords *core.NoRecordsError
	if errors.As(err, &noRecords) {
		logging.L().Debugw("asset has no work orders", "asset", noRecords.Asset)
	} else {
		logging.L().Warnw("tool call failed", "error", err)
	}
	return mcp.NewToolResultError(err.Error())
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	responseJSON, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(responseJSON)), nil
}
