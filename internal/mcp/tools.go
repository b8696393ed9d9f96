// ABOUTME: MCP tool definitions and registration for the work-order server
// ABOUTME: Exposes asset summaries, window statistics and similarity search
package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/harper/wosum/internal/core"
	"github.com/harper/wosum/internal/models"
)

// RegisterTools registers all MCP tools with the server
func RegisterTools(server *mcpserver.MCPServer, pipeline *core.Pipeline, orders []models.WorkOrder, defaultWindow int) *Handlers {
	handlers := NewHandlers(pipeline, orders, defaultWindow)

	// 1. summarize_asset - Generate a summary of recent work orders for one asset
	server.AddTool(mcp.Tool{
		Name:        "summarize_asset",
		Description: "Summarize the most recent work orders of an asset: common failure codes, repeated issues and time taken.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"asset": map[string]interface{}{
					"type":        "string",
					"description": "Asset identifier, matched exactly (e.g. HVAC-321)",
				},
				"window": map[string]interface{}{
					"type":        "number",
					"description": "Number of most recent work orders to include",
					"default":     defaultWindow,
				},
			},
			Required: []string{"asset"},
		},
	}, handlers.SummarizeAsset)

	// 2. asset_stats - Window statistics without calling the generator
	server.AddTool(mcp.Tool{
		Name:        "asset_stats",
		Description: "Return the recent work-order window of an asset with failure counts and average labor hours per failure code.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"asset": map[string]interface{}{
					"type":        "string",
					"description": "Asset identifier, matched exactly",
				},
				"window": map[string]interface{}{
					"type":        "number",
					"description": "Number of most recent work orders to include",
					"default":     defaultWindow,
				},
			},
			Required: []string{"asset"},
		},
	}, handlers.AssetStats)

	// 3. similar_work_orders - Nearest neighbors across all assets
	server.AddTool(mcp.Tool{
		Name:        "similar_work_orders",
		Description: "Find work orders similar to a free-text description or to an existing work order, across all assets.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "Free-text failure description to search for",
				},
				"wonum": map[string]interface{}{
					"type":        "string",
					"description": "Existing work order number to use as the query (excluded from results)",
				},
				"k": map[string]interface{}{
					"type":        "number",
					"description": "Maximum number of results to return (default: 5)",
					"default":     5,
				},
			},
		},
	}, handlers.SimilarWorkOrders)

	return handlers
}
