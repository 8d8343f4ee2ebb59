package main

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// createQueryMarketDataTool returns the query_market_data tool definition
func createQueryMarketDataTool() mcp.Tool {
	return mcp.NewTool("query_market_data",
		mcp.WithDescription("Answer a free-text question about IEX electricity market data (DAM, GDAM, RTM): filters, aggregates, trends, charts"),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Natural-language question, e.g. 'average MCP for DAM in March 2024'"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum raw rows to return (default from config, capped)"),
		),
		mcp.WithString("session_id",
			mcp.Description("Session identifier to correlate follow-up questions"),
		),
	)
}

// createGetMarketInsightsTool returns the get_market_insights tool definition
func createGetMarketInsightsTool() mcp.Tool {
	return mcp.NewTool("get_market_insights",
		mcp.WithDescription("Summarize price/volume statistics, trend and peak hours for one market"),
		mcp.WithString("market",
			mcp.Description("Market segment: DAM, GDAM or RTM (default: all)"),
		),
		mcp.WithNumber("year",
			mcp.Description("Restrict to one year, e.g. 2024"),
		),
	)
}

// createForecastPricesTool returns the forecast_prices tool definition
func createForecastPricesTool() mcp.Tool {
	return mcp.NewTool("forecast_prices",
		mcp.WithDescription("Project daily average MCP forward with confidence bounds"),
		mcp.WithString("market",
			mcp.Description("Market segment: DAM, GDAM or RTM (default: all)"),
		),
		mcp.WithNumber("days",
			mcp.Description("Horizon in days (default from config)"),
		),
	)
}

// createCompareMarketsTool returns the compare_markets tool definition
func createCompareMarketsTool() mcp.Tool {
	return mcp.NewTool("compare_markets",
		mcp.WithDescription("Compare DAM, GDAM and RTM side by side: averages, extremes, volatility"),
		mcp.WithNumber("year",
			mcp.Description("Restrict to one year, e.g. 2024"),
		),
	)
}

// createDetectAnomaliesTool returns the detect_anomalies tool definition
func createDetectAnomaliesTool() mcp.Tool {
	return mcp.NewTool("detect_anomalies",
		mcp.WithDescription("Flag unusual price observations (z-score above 3) in the filtered data"),
		mcp.WithString("market",
			mcp.Description("Market segment: DAM, GDAM or RTM (default: all)"),
		),
		mcp.WithNumber("year",
			mcp.Description("Restrict to one year, e.g. 2024"),
		),
	)
}
