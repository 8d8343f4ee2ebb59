package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"iex-insight/src/analysis"
	"iex-insight/src/config"
	"iex-insight/src/data_source/csvfile"
	"iex-insight/src/forecast"
	"iex-insight/src/interfaces"
	"iex-insight/src/logger"
	"iex-insight/src/server"
	"iex-insight/src/session"
	"iex-insight/src/storage"
	"iex-insight/src/store"
)

// -----------------------------------------------------------------------------

func main() {

	// Parse command line flags
	configPath := flag.String("config", "../../config/default.yaml", "path to config file")
	flag.Parse()

	// Load config from YAML file
	config, err := config.NewConfig(*configPath)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	// Setup logger
	appLogger := logger.NewLogger(config.LogLevel, config.Name)

	// 1. Setup History Store
	var db interfaces.IHistoryStore

	switch config.Storage.DBType {
	case "postgres":
		db, err = storage.NewPostgresHistoryDB(config.MConfig, appLogger)
	default:
		// Default to SQLite
		db, err = storage.NewSQLiteHistoryDB(config.MConfig, appLogger)
	}

	if err != nil {
		appLogger.Critical("Failed to init db: %v", err)
	}
	if err := db.Initialize(); err != nil {
		appLogger.Critical("Failed to migrate db: %v", err)
	}
	defer db.Close()

	// 2. Load Dataset
	appLogger.Info("Loading dataset from %s...", config.Dataset.CSVPath)

	var source interfaces.IRecordSource = csvfile.NewCSVSource(config.MConfig, appLogger)
	records, err := source.Load()
	if err != nil {
		appLogger.Critical("Failed to load dataset: %v", err)
	}

	recordStore := store.NewRecordStore(records)
	appLogger.Info("Dataset ready: %d records, years %v", recordStore.Len(), recordStore.Years())

	// 3. Setup Components
	sessions := session.NewSessionStore(config.MConfig, appLogger)
	defer sessions.Stop()

	forecaster := forecast.NewAdapter(forecast.NewMovingWindowForecaster(), config.MConfig, appLogger)

	analyzer := analysis.NewAnalysisFacade(config.MConfig, appLogger, recordStore, forecaster, sessions, db)

	var srv interfaces.IDataExchanger = server.NewAPIServer(config.MConfig, appLogger, analyzer, recordStore, db)

	// 4. History Retention
	retention := time.Duration(config.Storage.RetentionDays) * 24 * time.Hour
	if err := db.CleanupOldData(retention); err != nil {
		appLogger.Warning("History cleanup failed: %v", err)
	}

	// 5. Start Server
	go func() {
		if err := srv.Start(); err != nil {
			appLogger.Error("Server failed: %v", err)
		}
	}()

	// 6. Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down...")
	if err := srv.Stop(); err != nil {
		appLogger.Error("Server shutdown error: %v", err)
	}
}
