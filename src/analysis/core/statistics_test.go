package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateMeanStd(t *testing.T) {
	mean, std := CalculateMeanStd(nil)
	assert.Zero(t, mean)
	assert.Zero(t, std)

	mean, std = CalculateMeanStd([]float64{5})
	assert.Equal(t, 5.0, mean)
	assert.Zero(t, std)

	// Population form: variance of {2,4,4,4,5,5,7,9} is exactly 4.
	mean, std = CalculateMeanStd([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	assert.Equal(t, 5.0, mean)
	assert.Equal(t, 2.0, std)

	// Constant series has zero spread.
	_, std = CalculateMeanStd([]float64{3, 3, 3})
	assert.Zero(t, std)
}

func TestCalculateCorrelation(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5}
	assert.InDelta(t, 1.0, CalculateCorrelation(x, x), 1e-9)

	inv := []float64{5, 4, 3, 2, 1}
	assert.InDelta(t, -1.0, CalculateCorrelation(x, inv), 1e-9)

	// Mismatched lengths and constant inputs report no correlation.
	assert.Zero(t, CalculateCorrelation(x, []float64{1, 2}))
	assert.Zero(t, CalculateCorrelation(x, []float64{2, 2, 2, 2, 2}))
}

func TestCalculateZScore(t *testing.T) {
	assert.Equal(t, 2.0, CalculateZScore(9, 5, 2))
	assert.Zero(t, CalculateZScore(9, 5, 0))
}

func TestCalculateSlope(t *testing.T) {
	assert.Zero(t, CalculateSlope(nil))
	assert.Zero(t, CalculateSlope([]float64{1}))
	assert.InDelta(t, 2.0, CalculateSlope([]float64{1, 3, 5, 7}), 1e-9)
	assert.InDelta(t, 0.0, CalculateSlope([]float64{4, 4, 4, 4}), 1e-9)
}

func TestCalculateVolatility(t *testing.T) {
	// std 2 over mean 5 -> 40%.
	assert.InDelta(t, 40.0, CalculateVolatility([]float64{2, 4, 4, 4, 5, 5, 7, 9}), 1e-9)
	// Non-positive mean reports zero.
	assert.Zero(t, CalculateVolatility([]float64{-1, 1}))
}

func TestDescribeTrend(t *testing.T) {
	slope, direction, strength := DescribeTrend([]float64{1, 2, 3, 4})
	assert.InDelta(t, 1.0, slope, 1e-9)
	assert.Equal(t, TrendUpward, direction)
	assert.InDelta(t, 100.0, strength, 1e-9)

	_, direction, _ = DescribeTrend([]float64{4, 3, 2, 1})
	assert.Equal(t, TrendDownward, direction)

	// Slopes within the +-0.01 band are sideways.
	slope, direction, strength = DescribeTrend([]float64{5, 5, 5, 5})
	assert.Zero(t, slope)
	assert.Equal(t, TrendSideways, direction)
	assert.Zero(t, strength)
}

func TestCalculateChangePercent(t *testing.T) {
	assert.Equal(t, 50.0, CalculateChangePercent(15, 10))
	assert.Equal(t, -25.0, CalculateChangePercent(7.5, 10))
	assert.Zero(t, CalculateChangePercent(5, 0))
}
