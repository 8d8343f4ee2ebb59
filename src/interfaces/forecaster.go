package interfaces

import "context"

// -----------------------------------------------------------------------------
// IForecaster is the external statistical-forecasting collaborator, treated
// as a black box: given a chronologically ordered daily series and a horizon,
// it returns point predictions with lower/upper bounds.
// -----------------------------------------------------------------------------

type IForecaster interface {

	// Fit trains on series and predicts horizon future values. The three
	// returned slices have exactly horizon elements each. The call must
	// honor ctx cancellation; the adapter wraps it in a timeout and
	// degrades to "forecast unavailable" on error.
	Fit(ctx context.Context, series []float64, windowSize, horizon int, confidenceLevel float64) (forecast, lower, upper []float64, err error)

	// -----------------------------------------------------------------------------

	// ModelLabel identifies the model for result payloads.
	ModelLabel() string
}
