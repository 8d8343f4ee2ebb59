package forecast

import (
	"context"
	"time"

	"iex-insight/src/interfaces"
	"iex-insight/src/logger"
	"iex-insight/src/models"
	"iex-insight/src/utils"
)

// -----------------------------------------------------------------------------
// Adapter reshapes a daily aggregate series for the forecasting collaborator
// and reshapes its output back into domain terms. The collaborator call is
// the only suspend point in the pipeline: it runs under a timeout and any
// failure degrades to "forecast unavailable" (confidence 0), never to a
// request failure.
// -----------------------------------------------------------------------------

type Adapter struct {
	Forecaster interfaces.IForecaster
	Config     *models.MConfig
	Logger     *logger.Logger
}

// -----------------------------------------------------------------------------

func NewAdapter(forecaster interfaces.IForecaster, cfg *models.MConfig, log *logger.Logger) *Adapter {
	return &Adapter{Forecaster: forecaster, Config: cfg, Logger: log}
}

// -----------------------------------------------------------------------------

// ForecastDaily predicts horizon days beyond the series' last date.
// dates and values must be parallel, chronologically ordered, with dates in
// "YYYY-MM-DD" form. Callers must treat confidence == 0 as unavailable.
func (a *Adapter) ForecastDaily(ctx context.Context, dates []string, values []float64, horizon int) *models.MForecastResult {
	unavailable := &models.MForecastResult{
		Points:     []models.MForecastPoint{},
		Confidence: 0,
		ModelLabel: a.Forecaster.ModelLabel(),
	}

	if horizon <= 0 {
		horizon = a.Config.Forecast.DefaultHorizon
	}
	if len(values) < utils.MinForecastPoints || len(dates) != len(values) {
		return unavailable
	}

	lastDate, err := time.Parse("2006-01-02", dates[len(dates)-1])
	if err != nil {
		a.Logger.Warning("Forecast input has malformed last date %q", dates[len(dates)-1])
		return unavailable
	}

	timeout := time.Duration(a.Config.Forecast.TimeoutSeconds) * time.Second
	fitCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	points, lower, upper, err := a.Forecaster.Fit(
		fitCtx, values, a.Config.Forecast.WindowSize, horizon, a.Config.Forecast.ConfidenceLevel)
	if err != nil {
		a.Logger.Warning("Forecast collaborator failed: %v", err)
		return unavailable
	}
	if len(points) != horizon || len(lower) != horizon || len(upper) != horizon {
		a.Logger.Warning("Forecast collaborator returned %d/%d/%d values for horizon %d",
			len(points), len(lower), len(upper), horizon)
		return unavailable
	}

	res := &models.MForecastResult{
		Points:     make([]models.MForecastPoint, horizon),
		Confidence: a.Config.Forecast.ConfidenceLevel,
		ModelLabel: a.Forecaster.ModelLabel(),
	}
	for i := 0; i < horizon; i++ {
		res.Points[i] = models.MForecastPoint{
			Date:       lastDate.AddDate(0, 0, i+1).Format("2006-01-02"),
			Predicted:  points[i],
			LowerBound: lower[i],
			UpperBound: upper[i],
		}
	}
	return res
}
