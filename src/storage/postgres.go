package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"iex-insight/src/helpers"
	"iex-insight/src/logger"
	"iex-insight/src/models"

	_ "github.com/lib/pq"
)

// -----------------------------------------------------------------------------

type PostgresHistoryDB struct {
	Config *models.MConfig
	DB     *sql.DB
	Schema string
	Logger *logger.Logger
}

// -----------------------------------------------------------------------------

func NewPostgresHistoryDB(cfg *models.MConfig, log *logger.Logger) (*PostgresHistoryDB, error) {
	// Use the executable name as schema so each binary keeps its own history
	exe, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("failed to get executable name: %w", err)
	}
	name := filepath.Base(exe)
	name = strings.TrimSuffix(name, filepath.Ext(name))

	return &PostgresHistoryDB{
		Config: cfg,
		Schema: name,
		Logger: log,
	}, nil
}

// -----------------------------------------------------------------------------

func (d *PostgresHistoryDB) Initialize() error {
	dsn := d.Config.Storage.DBConnectionString
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return helpers.NewStorageError("failed to open postgres database", err)
	}

	if err := db.Ping(); err != nil {
		return helpers.NewStorageError("failed to ping postgres database", err)
	}

	d.DB = db

	// Create Schema
	if _, err := d.DB.Exec(fmt.Sprintf(`CREATE SCHEMA IF NOT EXISTS "%s"`, d.Schema)); err != nil {
		return fmt.Errorf("failed to create schema %s: %w", d.Schema, err)
	}

	if err := d.createTables(); err != nil {
		return err
	}

	d.Logger.Info("PostgresHistoryDB initialized successfully (Schema: %s)", d.Schema)
	return nil
}

// -----------------------------------------------------------------------------

func (d *PostgresHistoryDB) createTables() error {
	// query_logs is an audit trail and survives restarts
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS "%s"."query_logs" (
			session_id TEXT,
			text TEXT,
			intent TEXT,
			result_type TEXT,
			match_count INTEGER,
			elapsed_ms BIGINT,
			created_at TIMESTAMP
		);
	`, d.Schema)
	if _, err := d.DB.Exec(query); err != nil {
		return fmt.Errorf("failed to create query_logs: %w", err)
	}

	query = fmt.Sprintf(`CREATE INDEX IF NOT EXISTS idx_query_logs_created_at ON "%s"."query_logs" (created_at)`, d.Schema)
	if _, err := d.DB.Exec(query); err != nil {
		return fmt.Errorf("failed to index query_logs: %w", err)
	}

	return nil
}

// -----------------------------------------------------------------------------

func (d *PostgresHistoryDB) SaveQueryLogs(entries []models.MQueryLog) error {
	if len(entries) == 0 {
		return nil
	}

	tx, err := d.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := fmt.Sprintf(`
		INSERT INTO "%s"."query_logs" (session_id, text, intent, result_type, match_count, elapsed_ms, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, d.Schema)
	stmt, err := tx.Prepare(query)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, e := range entries {
		_, err := stmt.Exec(e.SessionID, e.Text, string(e.Intent), string(e.ResultType), e.MatchCount, e.ElapsedMs, e.CreatedAt.UTC())
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// -----------------------------------------------------------------------------

func (d *PostgresHistoryDB) RecentQueries(n int) ([]models.MQueryLog, error) {
	if n <= 0 {
		return nil, nil
	}

	query := fmt.Sprintf(`
		SELECT session_id, text, intent, result_type, match_count, elapsed_ms, created_at
		FROM "%s"."query_logs"
		ORDER BY created_at DESC
		LIMIT $1
	`, d.Schema)
	rows, err := d.DB.Query(query, n)
	if err != nil {
		return nil, helpers.NewStorageError("failed to read query_logs", err)
	}
	defer rows.Close()

	return scanQueryLogs(rows)
}

// -----------------------------------------------------------------------------

func (d *PostgresHistoryDB) CleanupOldData(olderThan time.Duration) error {
	cutoff := time.Now().UTC().Add(-olderThan)

	d.Logger.Info("Cleaning up query logs older than %s...", olderThan)

	query := fmt.Sprintf(`DELETE FROM "%s"."query_logs" WHERE created_at < $1`, d.Schema)
	if _, err := d.DB.Exec(query, cutoff); err != nil {
		d.Logger.Error("Cleanup query_logs error: %v", err)
		return err
	}

	return nil
}

// -----------------------------------------------------------------------------

func (d *PostgresHistoryDB) Close() error {
	if d.DB != nil {
		return d.DB.Close()
	}
	return nil
}
