package main

import (
	"flag"
	"fmt"
	"os"

	"iex-insight/src/analysis"
	"iex-insight/src/config"
	"iex-insight/src/data_source/csvfile"
	"iex-insight/src/forecast"
	"iex-insight/src/logger"
	"iex-insight/src/session"
	"iex-insight/src/store"

	"github.com/mark3labs/mcp-go/server"
)

const version = "1.0.0"

// -----------------------------------------------------------------------------

func main() {

	// Parse command line flags
	configPath := flag.String("config", "../../config/default.yaml", "path to config file")
	flag.Parse()

	// Load config from YAML file
	config, err := config.NewConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	// Minimal logging to avoid cluttering MCP stdio
	appLogger := logger.NewLogger("WARNING", config.Name+"-mcp")

	// Load Dataset
	source := csvfile.NewCSVSource(config.MConfig, appLogger)
	records, err := source.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load dataset: %v\n", err)
		os.Exit(1)
	}
	recordStore := store.NewRecordStore(records)

	// Setup pipeline. The stdio adapter keeps no audit database, so the
	// history store is nil and writes are skipped.
	sessions := session.NewSessionStore(config.MConfig, appLogger)
	defer sessions.Stop()

	forecaster := forecast.NewAdapter(forecast.NewMovingWindowForecaster(), config.MConfig, appLogger)
	analyzer := analysis.NewAnalysisFacade(config.MConfig, appLogger, recordStore, forecaster, sessions, nil)

	// Create MCP server
	mcpServer := server.NewMCPServer(
		config.Name,
		version,
		server.WithToolCapabilities(true),
	)

	// Register query tools
	mcpServer.AddTool(createQueryMarketDataTool(), handleQueryMarketData(analyzer, appLogger))
	mcpServer.AddTool(createGetMarketInsightsTool(), handleGetMarketInsights(analyzer, appLogger))
	mcpServer.AddTool(createForecastPricesTool(), handleForecastPrices(analyzer, appLogger))
	mcpServer.AddTool(createCompareMarketsTool(), handleCompareMarkets(analyzer, appLogger))
	mcpServer.AddTool(createDetectAnomaliesTool(), handleDetectAnomalies(analyzer, appLogger))

	// Start server (blocks on stdio)
	if err := server.ServeStdio(mcpServer); err != nil {
		fmt.Fprintf(os.Stderr, "MCP server failed: %v\n", err)
		os.Exit(1)
	}
}
