package interfaces

import "iex-insight/src/models"

// -----------------------------------------------------------------------------
// IRecordStore is the only query primitive the engine needs. The store is
// loaded once before serving and is then safe for unsynchronized concurrent
// reads; no component mutates a record.
// -----------------------------------------------------------------------------

type IRecordStore interface {

	// GetAll returns every record in insertion order. The returned slice is
	// shared and must be treated as read-only.
	GetAll() []models.MMarketRecord

	// -----------------------------------------------------------------------------

	// Len returns the number of loaded records.
	Len() int
}

// -----------------------------------------------------------------------------
// IRecordSource loads the dataset that seeds the record store.
// -----------------------------------------------------------------------------

type IRecordSource interface {

	// Name returns the unique identifier of the source
	Name() string

	// -----------------------------------------------------------------------------

	// Load reads and validates the full dataset. Called exactly once,
	// synchronously, before serving begins.
	Load() ([]models.MMarketRecord, error)
}
