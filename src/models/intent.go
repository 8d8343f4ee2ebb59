package models

// -----------------------------------------------------------------------------
// QueryIntent: classified purpose of a query
// -----------------------------------------------------------------------------

// QueryIntent is the closed set of query purposes. Exactly one is assigned
// per request by the classifier; it decides which result shape is produced.
type QueryIntent string

const (
	IntentInsightSummary        QueryIntent = "insight_summary"
	IntentMarketComparison      QueryIntent = "market_comparison"
	IntentForecast              QueryIntent = "forecast"
	IntentBuySellRecommendation QueryIntent = "buy_sell_recommendation"
	IntentPatternAnomaly        QueryIntent = "pattern_anomaly"
	IntentCrossMarket           QueryIntent = "cross_market_comparison"
	IntentTariffRange           QueryIntent = "tariff_range_analysis"
	IntentTimeSlot              QueryIntent = "time_slot_analysis"
	IntentCustomChart           QueryIntent = "custom_chart"
	IntentMultiYear             QueryIntent = "multi_year_performance"
	IntentStdDevComparison      QueryIntent = "stddev_comparison"
	IntentYearWiseComparison    QueryIntent = "year_wise_comparison"
	IntentRawData               QueryIntent = "raw_data_query"
)
