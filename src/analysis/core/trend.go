package core

import "math"

// -----------------------------------------------------------------------------

// Trend direction thresholds. Fixed constants by contract, not relative to
// the data scale: a slope within ±0.01 is sideways.
const (
	TrendUpThreshold   = 0.01
	TrendDownThreshold = -0.01
)

// TrendDirection names for result payloads.
const (
	TrendUpward   = "upward"
	TrendDownward = "downward"
	TrendSideways = "sideways"
)

// -----------------------------------------------------------------------------

// DescribeTrend classifies a chronologically sorted series: OLS slope,
// direction against the fixed thresholds, and strength capped at 100.
func DescribeTrend(values []float64) (slope float64, direction string, strength float64) {
	slope = CalculateSlope(values)

	switch {
	case slope > TrendUpThreshold:
		direction = TrendUpward
	case slope < TrendDownThreshold:
		direction = TrendDownward
	default:
		direction = TrendSideways
	}

	strength = math.Min(math.Abs(slope)*100, 100)
	return slope, direction, strength
}

// -----------------------------------------------------------------------------

// CalculateChangePercent calculates percentage change.
func CalculateChangePercent(current, previous float64) float64 {
	if previous == 0 {
		return 0.0
	}
	return (current - previous) / previous * 100
}
