package interfaces

import (
	"time"

	"iex-insight/src/models"
)

// -----------------------------------------------------------------------------
// IHistoryStore defines the contract for query-history persistence.
// Writes are best effort: a failed save is logged by the caller and never
// turned into a request failure.
// -----------------------------------------------------------------------------

type IHistoryStore interface {

	// -----------------------------------------------------------------------------

	// Initialize sets up the database schema and tables.
	Initialize() error

	// -----------------------------------------------------------------------------

	// SaveQueryLogs inserts a batch of audit entries.
	SaveQueryLogs(entries []models.MQueryLog) error

	// -----------------------------------------------------------------------------

	// RecentQueries returns the newest n audit entries, newest first.
	RecentQueries(n int) ([]models.MQueryLog, error)

	// -----------------------------------------------------------------------------

	// CleanupOldData removes entries older than the retention window.
	CleanupOldData(olderThan time.Duration) error

	// -----------------------------------------------------------------------------

	// Close the database connection
	Close() error
}
