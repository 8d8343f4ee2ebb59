package forecast

import (
	"context"

	"iex-insight/src/analysis/core"
	"iex-insight/src/helpers"
)

// -----------------------------------------------------------------------------
// MovingWindowForecaster is the default forecasting collaborator: a moving-
// window mean with a least-squares drift term and stddev-scaled bounds.
// It satisfies interfaces.IForecaster; deployments with a heavier model swap
// the implementation behind that interface.
// -----------------------------------------------------------------------------

type MovingWindowForecaster struct{}

// -----------------------------------------------------------------------------

func NewMovingWindowForecaster() *MovingWindowForecaster {
	return &MovingWindowForecaster{}
}

// -----------------------------------------------------------------------------

func (f *MovingWindowForecaster) ModelLabel() string {
	return "ma-drift"
}

// -----------------------------------------------------------------------------

// Fit predicts horizon values from the trailing windowSize observations.
func (f *MovingWindowForecaster) Fit(ctx context.Context, series []float64, windowSize, horizon int, confidenceLevel float64) ([]float64, []float64, []float64, error) {
	if len(series) == 0 || horizon <= 0 {
		return nil, nil, nil, helpers.NewForecastError("empty series or non-positive horizon", nil)
	}
	if windowSize <= 0 || windowSize > len(series) {
		windowSize = len(series)
	}

	window := series[len(series)-windowSize:]
	mean, std := core.CalculateMeanStd(window)
	drift := core.CalculateSlope(window)
	z := zForConfidence(confidenceLevel)

	forecastVals := make([]float64, horizon)
	lower := make([]float64, horizon)
	upper := make([]float64, horizon)

	for i := 0; i < horizon; i++ {
		if err := ctx.Err(); err != nil {
			return nil, nil, nil, err
		}

		// The window's own midpoint sits at (windowSize-1)/2, so the first
		// horizon step is already (windowSize+1)/2 drift steps ahead.
		steps := float64(windowSize-1)/2 + float64(i+1)
		point := mean + drift*steps
		if point < 0 {
			point = 0
		}

		margin := z * std
		forecastVals[i] = point
		lower[i] = maxFloat(point-margin, 0)
		upper[i] = point + margin
	}

	return forecastVals, lower, upper, nil
}

// -----------------------------------------------------------------------------

// zForConfidence maps the common confidence levels onto normal quantiles.
func zForConfidence(level float64) float64 {
	switch {
	case level >= 0.99:
		return 2.576
	case level >= 0.95:
		return 1.960
	case level >= 0.90:
		return 1.645
	default:
		return 1.282
	}
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
