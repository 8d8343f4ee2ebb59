package analysis

import (
	"context"
	"testing"

	"iex-insight/src/forecast"
	"iex-insight/src/helpers"
	"iex-insight/src/logger"
	"iex-insight/src/models"
	"iex-insight/src/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFacade(records []models.MMarketRecord) *AnalysisFacade {
	cfg := &models.MConfig{
		Query: models.MQueryConfig{DefaultLimit: 3, MaxLimit: 5},
		Forecast: models.MForecastConfig{
			WindowSize:      7,
			DefaultHorizon:  7,
			ConfidenceLevel: 0.95,
			TimeoutSeconds:  10,
		},
	}
	log := logger.NewLogger("ERROR", "facade-test")
	fc := forecast.NewAdapter(forecast.NewMovingWindowForecaster(), cfg, log)
	return NewAnalysisFacade(cfg, log, store.NewRecordStore(records), fc, nil, nil)
}

func testRecords() []models.MMarketRecord {
	return []models.MMarketRecord{
		rec(models.MarketDAM, "2024-03-01", "10:00-10:15", 4, 100),
		rec(models.MarketDAM, "2024-03-01", "10:15-10:30", 6, 110),
		rec(models.MarketDAM, "2024-03-02", "10:00-10:15", 5, 120),
		rec(models.MarketRTM, "2024-03-01", "10:00-10:15", 8, 50),
		rec(models.MarketRTM, "2024-03-02", "10:00-10:15", 9, 60),
		rec(models.MarketGDAM, "2023-07-01", "18:00-18:15", 7, 30),
	}
}

// -----------------------------------------------------------------------------

func TestAnswerRejectsEmptyRequest(t *testing.T) {
	f := newTestFacade(testRecords())

	_, err := f.Answer(context.Background(), models.MQueryRequest{})
	require.Error(t, err)
	assert.True(t, helpers.IsValidationError(err))

	_, err = f.Answer(context.Background(), models.MQueryRequest{Filter: &models.MFilterSpec{}})
	assert.True(t, helpers.IsValidationError(err))
}

func TestAnswerStructuredFilterOnly(t *testing.T) {
	f := newTestFacade(testRecords())

	res, err := f.Answer(context.Background(), models.MQueryRequest{
		Filter: &models.MFilterSpec{Market: models.MarketRTM},
	})
	require.NoError(t, err)
	assert.Equal(t, models.ResultRows, res.Type)
	assert.Equal(t, 2, res.Rows.FilteredCount)
}

func TestAnswerRawDataRespectsLimit(t *testing.T) {
	f := newTestFacade(testRecords())

	res, err := f.Answer(context.Background(), models.MQueryRequest{
		Text:  "show dam prices",
		Limit: 2,
	})
	require.NoError(t, err)
	require.Equal(t, models.ResultRows, res.Type)
	assert.Equal(t, 3, res.Rows.FilteredCount)
	assert.Equal(t, 2, res.Rows.DisplayedCount)
	assert.True(t, res.Rows.HasMore)
}

func TestAnswerLimitDefaultsAndClamps(t *testing.T) {
	f := newTestFacade(testRecords())

	// Zero limit falls back to the configured default of 3.
	res, err := f.Answer(context.Background(), models.MQueryRequest{Text: "show records"})
	require.NoError(t, err)
	assert.Equal(t, 3, res.Rows.DisplayedCount)
	assert.True(t, res.Rows.HasMore)

	// Requests above the ceiling are clamped to MaxLimit.
	res, err = f.Answer(context.Background(), models.MQueryRequest{Text: "show records", Limit: 10000})
	require.NoError(t, err)
	assert.Equal(t, 5, res.Rows.DisplayedCount)
	assert.Equal(t, 6, res.Rows.FilteredCount)
}

func TestAnswerNoDataIsSuccess(t *testing.T) {
	f := newTestFacade(testRecords())

	res, err := f.Answer(context.Background(), models.MQueryRequest{
		Text: "show dam prices in 2030",
	})
	require.NoError(t, err)
	assert.Equal(t, "No data found for the selected filters.", res.Message)
	assert.Zero(t, res.Rows.FilteredCount)

	// A structured filter outside the dataset's coverage behaves the same.
	res, err = f.Answer(context.Background(), models.MQueryRequest{
		Filter: &models.MFilterSpec{Market: models.MarketRTM, Year: 1999},
	})
	require.NoError(t, err)
	assert.Equal(t, "No data found for the selected filters.", res.Message)
	assert.Zero(t, res.Rows.FilteredCount)
}

// -----------------------------------------------------------------------------

func TestAnswerStructuredOverridesWinOverText(t *testing.T) {
	f := newTestFacade(testRecords())

	res, err := f.Answer(context.Background(), models.MQueryRequest{
		Text:   "show rtm prices in 2024",
		Filter: &models.MFilterSpec{Market: models.MarketGDAM, Year: 2023},
	})
	require.NoError(t, err)
	assert.Equal(t, models.MarketGDAM, res.Filter.Market)
	assert.Equal(t, 2023, res.Filter.Year)
	require.Equal(t, 1, res.Rows.FilteredCount)
	assert.Equal(t, models.MarketGDAM, res.Rows.Records[0].Market)
}

func TestAnswerComparisonIgnoresTextMarket(t *testing.T) {
	f := newTestFacade(testRecords())

	res, err := f.Answer(context.Background(), models.MQueryRequest{
		Text: "when is dam price higher than rtm in 2024",
	})
	require.NoError(t, err)
	require.Equal(t, models.ResultCrossMarket, res.Type)
	// The market tokens select the comparison pair, not a filter.
	assert.Empty(t, res.Filter.Market)
	assert.Equal(t, models.MarketDAM, res.CrossMarket.MarketA)
	assert.Equal(t, models.MarketRTM, res.CrossMarket.MarketB)
	assert.Equal(t, 2, res.CrossMarket.PairedSlots)
}

func TestAnswerComparisonKeepsStructuredMarket(t *testing.T) {
	f := newTestFacade(testRecords())

	res, err := f.Answer(context.Background(), models.MQueryRequest{
		Text:   "compare markets",
		Filter: &models.MFilterSpec{Market: models.MarketDAM},
	})
	require.NoError(t, err)
	require.Equal(t, models.ResultComparison, res.Type)
	assert.Equal(t, models.MarketDAM, res.Filter.Market)
	require.Len(t, res.Comparison.Stats, 1)
	assert.Equal(t, models.MarketDAM, res.Comparison.Stats[0].Market)
}

// -----------------------------------------------------------------------------

func TestAnswerStructuredAggregationPrecedence(t *testing.T) {
	f := newTestFacade(testRecords())

	// The text classifies as insight_summary; the structured aggregation
	// still decides the result shape.
	res, err := f.Answer(context.Background(), models.MQueryRequest{
		Text:        "insight summary for dam",
		Aggregation: &models.MAggregationSpec{Function: models.AggAverage},
	})
	require.NoError(t, err)
	require.Equal(t, models.ResultAggregate, res.Type)
	assert.Equal(t, models.IntentInsightSummary, res.Intent)
	assert.InDelta(t, 5.0, res.Aggregate.Price.Average, 1e-9)
}

func TestAnswerGroupedAggregation(t *testing.T) {
	f := newTestFacade(testRecords())

	res, err := f.Answer(context.Background(), models.MQueryRequest{
		Text: "show all records",
		Aggregation: &models.MAggregationSpec{
			Function: models.AggAverage,
			GroupBy:  models.GroupByMarket,
		},
	})
	require.NoError(t, err)
	require.Equal(t, models.ResultGrouped, res.Type)
	keys := make([]string, len(res.Grouped.Groups))
	for i, g := range res.Grouped.Groups {
		keys[i] = g.Key
	}
	assert.Equal(t, []string{"DAM", "GDAM", "RTM"}, keys)
}

// -----------------------------------------------------------------------------

func TestAnswerIntentDispatch(t *testing.T) {
	f := newTestFacade(testRecords())

	tests := []struct {
		text string
		want models.ResultType
	}{
		{"insight summary for dam", models.ResultInsight},
		{"compare all markets", models.ResultComparison},
		{"forecast dam prices", models.ResultForecast},
		{"best time to buy electricity", models.ResultRecommendation},
		{"detect anomalies in rtm", models.ResultAnomalies},
		{"price distribution by tariff range", models.ResultTariff},
		{"peak hours in dam", models.ResultTimeSlot},
		{"bar chart of dam prices", models.ResultCustomChart},
		{"year wise average price", models.ResultGrouped},
	}
	for _, tc := range tests {
		res, err := f.Answer(context.Background(), models.MQueryRequest{Text: tc.text})
		require.NoError(t, err, tc.text)
		assert.Equal(t, tc.want, res.Type, tc.text)
	}
}

func TestAnswerForecastTooFewPoints(t *testing.T) {
	f := newTestFacade(testRecords())

	res, err := f.Answer(context.Background(), models.MQueryRequest{
		Text: "forecast dam prices",
	})
	require.NoError(t, err)
	require.Equal(t, models.ResultForecast, res.Type)
	// Two distinct DAM dates are far below the minimum history.
	assert.Zero(t, res.Forecast.Confidence)
	assert.Empty(t, res.Forecast.Points)
}

func TestAnswerCrossMarketNeedsTwoMentions(t *testing.T) {
	f := newTestFacade(testRecords())

	res, err := f.Answer(context.Background(), models.MQueryRequest{
		Text: "when is the price higher than average across all markets",
	})
	require.NoError(t, err)
	assert.Equal(t, models.ResultComparison, res.Type)
	assert.Contains(t, res.Message, "two markets are needed")
}

func TestAnswerEchoesMergedFilter(t *testing.T) {
	f := newTestFacade(testRecords())

	res, err := f.Answer(context.Background(), models.MQueryRequest{
		Text:   "show dam prices between 5 and 7",
		Filter: &models.MFilterSpec{Year: 2024},
	})
	require.NoError(t, err)
	assert.Equal(t, models.MarketDAM, res.Filter.Market)
	assert.Equal(t, 2024, res.Filter.Year)
	require.NotNil(t, res.Filter.PriceMin)
	assert.Equal(t, 5.0, *res.Filter.PriceMin)
	assert.Equal(t, 7.0, *res.Filter.PriceMax)
	assert.Equal(t, 2, res.Rows.FilteredCount)
}
