package main

import (
	"context"
	"fmt"
	"strings"

	"iex-insight/src/interfaces"
	"iex-insight/src/logger"
	"iex-insight/src/models"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// -----------------------------------------------------------------------------

// handleQueryMarketData implements the query_market_data tool
func handleQueryMarketData(answerer interfaces.IAnswerer, log *logger.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		// Parse query parameter (required)
		query, err := request.RequireString("query")
		if err != nil || query == "" {
			return textResult("Error: query parameter is required"), nil
		}

		req := models.MQueryRequest{
			SessionID: request.GetString("session_id", ""),
			Text:      query,
			Limit:     request.GetInt("limit", 0),
		}

		return runQuery(ctx, answerer, log, req)
	}
}

// -----------------------------------------------------------------------------

// handleGetMarketInsights implements the get_market_insights tool
func handleGetMarketInsights(answerer interfaces.IAnswerer, log *logger.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		req := models.MQueryRequest{
			Text:   "insight summary",
			Filter: filterArgs(request),
		}
		return runQuery(ctx, answerer, log, req)
	}
}

// -----------------------------------------------------------------------------

// handleForecastPrices implements the forecast_prices tool
func handleForecastPrices(answerer interfaces.IAnswerer, log *logger.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		req := models.MQueryRequest{
			Text:        "forecast",
			Filter:      filterArgs(request),
			HorizonDays: request.GetInt("days", 0),
		}
		return runQuery(ctx, answerer, log, req)
	}
}

// -----------------------------------------------------------------------------

// handleCompareMarkets implements the compare_markets tool
func handleCompareMarkets(answerer interfaces.IAnswerer, log *logger.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		req := models.MQueryRequest{
			Text:   "compare all markets",
			Filter: filterArgs(request),
		}
		return runQuery(ctx, answerer, log, req)
	}
}

// -----------------------------------------------------------------------------

// handleDetectAnomalies implements the detect_anomalies tool
func handleDetectAnomalies(answerer interfaces.IAnswerer, log *logger.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		req := models.MQueryRequest{
			Text:   "detect anomalies",
			Filter: filterArgs(request),
		}
		return runQuery(ctx, answerer, log, req)
	}
}

// -----------------------------------------------------------------------------
// Shared plumbing
// -----------------------------------------------------------------------------

func runQuery(ctx context.Context, answerer interfaces.IAnswerer, log *logger.Logger, req models.MQueryRequest) (*mcp.CallToolResult, error) {
	result, err := answerer.Answer(ctx, req)
	if err != nil {
		log.Warning("Query failed: %v", err)
		return textResult(fmt.Sprintf("Query error: %v", err)), nil
	}

	return textResult(formatResult(result)), nil
}

// -----------------------------------------------------------------------------

// filterArgs builds a structured filter from the common market/year arguments.
func filterArgs(request mcp.CallToolRequest) *models.MFilterSpec {
	f := &models.MFilterSpec{
		Year: request.GetInt("year", 0),
	}

	if m := strings.ToUpper(strings.TrimSpace(request.GetString("market", ""))); m != "" {
		market := models.Market(m)
		if market.IsValid() {
			f.Market = market
		}
	}

	if f.IsEmpty() {
		return nil
	}
	return f
}

// -----------------------------------------------------------------------------

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(text),
		},
	}
}
