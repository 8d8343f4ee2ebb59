package utils

// -----------------------------------------------------------------------------

// Dataset bounds and extraction defaults.
//
// The shipped IEX dataset starts in January 2023; years through 2039 are
// accepted so the extractor keeps working as the dataset grows.
const (
	MinDatasetYear = 2023
	MaxDatasetYear = 2039

	// DefaultYear is the fallback used when a query names a month, day or
	// quarter without a year. Fixed to the latest year present in the
	// shipped dataset; never guessed per field.
	DefaultYear = 2025
)

// -----------------------------------------------------------------------------

// Forecasting bounds.
const (
	// MinForecastPoints is the smallest daily series the forecaster accepts.
	// Below this the adapter returns a zero-confidence empty forecast.
	MinForecastPoints = 30
)
