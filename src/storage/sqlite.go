package storage

import (
	"database/sql"
	"fmt"
	"time"

	"iex-insight/src/helpers"
	"iex-insight/src/logger"
	"iex-insight/src/models"

	_ "modernc.org/sqlite"
)

// SQLite batch constants
const (
	sqliteMaxVars   = 32000
	paramsPerRow    = 7
	sqliteBatchSize = sqliteMaxVars / paramsPerRow // ~4571 rows
)

// -----------------------------------------------------------------------------

type SQLiteHistoryDB struct {
	Config *models.MConfig
	DB     *sql.DB
	Logger *logger.Logger
}

// -----------------------------------------------------------------------------

func NewSQLiteHistoryDB(cfg *models.MConfig, log *logger.Logger) (*SQLiteHistoryDB, error) {
	return &SQLiteHistoryDB{
		Config: cfg,
		Logger: log,
	}, nil
}

// -----------------------------------------------------------------------------

func (d *SQLiteHistoryDB) Initialize() error {
	dsn := d.Config.Storage.DBPath

	// Open DB
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return helpers.NewStorageError("failed to open sqlite database", err)
	}

	if err := db.Ping(); err != nil {
		return helpers.NewStorageError("failed to ping sqlite database", err)
	}

	d.DB = db

	// PRAGMA optimizations
	if _, err := db.Exec("PRAGMA journal_mode = WAL;"); err != nil {
		d.Logger.Warning("Failed to set WAL mode: %v", err)
	}
	if _, err := db.Exec("PRAGMA synchronous = NORMAL;"); err != nil {
		d.Logger.Warning("Failed to set synchronous mode: %v", err)
	}

	return d.createTables()
}

// -----------------------------------------------------------------------------

func (d *SQLiteHistoryDB) createTables() error {
	// query_logs is an audit trail and survives restarts, so create rather
	// than recreate.
	// SQLite types: INTEGER for int64, REAL for float64, TEXT for string
	query := `
		CREATE TABLE IF NOT EXISTS query_logs (
			session_id TEXT,
			text TEXT,
			intent TEXT,
			result_type TEXT,
			match_count INTEGER,
			elapsed_ms INTEGER,
			created_at TIMESTAMP
		);
	`
	if _, err := d.DB.Exec(query); err != nil {
		return helpers.NewStorageError("failed to create query_logs", err)
	}

	if _, err := d.DB.Exec("CREATE INDEX IF NOT EXISTS idx_query_logs_created_at ON query_logs (created_at)"); err != nil {
		return helpers.NewStorageError("failed to index query_logs", err)
	}

	return nil
}

// -----------------------------------------------------------------------------

func (d *SQLiteHistoryDB) SaveQueryLogs(entries []models.MQueryLog) error {
	if len(entries) == 0 {
		return nil
	}

	for start := 0; start < len(entries); start += sqliteBatchSize {
		end := start + sqliteBatchSize
		if end > len(entries) {
			end = len(entries)
		}
		if err := d.saveBatch(entries[start:end]); err != nil {
			return err
		}
	}

	return nil
}

// -----------------------------------------------------------------------------

func (d *SQLiteHistoryDB) saveBatch(entries []models.MQueryLog) error {
	tx, err := d.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO query_logs (session_id, text, intent, result_type, match_count, elapsed_ms, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
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

func (d *SQLiteHistoryDB) RecentQueries(n int) ([]models.MQueryLog, error) {
	if n <= 0 {
		return nil, nil
	}

	rows, err := d.DB.Query(`
		SELECT session_id, text, intent, result_type, match_count, elapsed_ms, created_at
		FROM query_logs
		ORDER BY created_at DESC
		LIMIT ?
	`, n)
	if err != nil {
		return nil, helpers.NewStorageError("failed to read query_logs", err)
	}
	defer rows.Close()

	return scanQueryLogs(rows)
}

// -----------------------------------------------------------------------------

func (d *SQLiteHistoryDB) CleanupOldData(olderThan time.Duration) error {
	cutoff := time.Now().UTC().Add(-olderThan)

	d.Logger.Info("Cleaning up query logs older than %s...", olderThan)

	res, err := d.DB.Exec("DELETE FROM query_logs WHERE created_at < ?", cutoff)
	if err != nil {
		d.Logger.Error("Cleanup query_logs error: %v", err)
		return err
	}

	if removed, err := res.RowsAffected(); err == nil {
		d.Logger.Info("Cleanup completed, %d entries removed", removed)
	}
	return nil
}

// -----------------------------------------------------------------------------

func (d *SQLiteHistoryDB) Close() error {
	if d.DB != nil {
		return d.DB.Close()
	}
	return nil
}

// -----------------------------------------------------------------------------

func scanQueryLogs(rows *sql.Rows) ([]models.MQueryLog, error) {
	var out []models.MQueryLog
	for rows.Next() {
		var e models.MQueryLog
		var intent, resultType string
		if err := rows.Scan(&e.SessionID, &e.Text, &intent, &resultType, &e.MatchCount, &e.ElapsedMs, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan query_logs row: %w", err)
		}
		e.Intent = models.QueryIntent(intent)
		e.ResultType = models.ResultType(resultType)
		out = append(out, e)
	}
	return out, rows.Err()
}
