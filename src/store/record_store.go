package store

import (
	"iex-insight/src/models"
)

// -----------------------------------------------------------------------------
// RecordStore is the immutable in-memory dataset. It is populated exactly
// once at startup and never written again, so reads need no synchronization.
// -----------------------------------------------------------------------------

type RecordStore struct {
	records []models.MMarketRecord
}

// -----------------------------------------------------------------------------

// NewRecordStore builds a store over a loaded dataset. The store takes
// ownership of the slice; the caller must not modify it afterwards.
func NewRecordStore(records []models.MMarketRecord) *RecordStore {
	return &RecordStore{records: records}
}

// -----------------------------------------------------------------------------

// GetAll returns every record in insertion order. Shared slice, read-only.
func (s *RecordStore) GetAll() []models.MMarketRecord {
	return s.records
}

// -----------------------------------------------------------------------------

// Len returns the number of loaded records.
func (s *RecordStore) Len() int {
	return len(s.records)
}

// -----------------------------------------------------------------------------

// Years returns the distinct years present, ascending.
func (s *RecordStore) Years() []int {
	seen := make(map[int]bool)
	var years []int
	for i := range s.records {
		y := s.records[i].Year
		if !seen[y] {
			seen[y] = true
			years = append(years, y)
		}
	}
	for i := 1; i < len(years); i++ {
		for j := i; j > 0 && years[j] < years[j-1]; j-- {
			years[j], years[j-1] = years[j-1], years[j]
		}
	}
	return years
}

// -----------------------------------------------------------------------------

// Markets returns the distinct markets present, in canonical order.
func (s *RecordStore) Markets() []models.Market {
	seen := make(map[models.Market]bool)
	for i := range s.records {
		seen[s.records[i].Market] = true
	}
	var out []models.Market
	for _, m := range models.AllMarkets {
		if seen[m] {
			out = append(out, m)
		}
	}
	return out
}
