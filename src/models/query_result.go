package models

// -----------------------------------------------------------------------------
// MQueryRequest: transport-agnostic query input
// -----------------------------------------------------------------------------

// MQueryRequest carries the raw question plus optional structured fields.
// Structured fields always override text-derived values for the same field.
type MQueryRequest struct {
	SessionID   string            `json:"session_id,omitempty"`
	Text        string            `json:"text"`
	Filter      *MFilterSpec      `json:"filter,omitempty"`
	Aggregation *MAggregationSpec `json:"aggregation,omitempty"`
	Limit       int               `json:"limit,omitempty"`
	HorizonDays int               `json:"horizon_days,omitempty"`
}

// -----------------------------------------------------------------------------
// Result union
// -----------------------------------------------------------------------------

// ResultType tags which payload of MQueryResult is populated.
type ResultType string

const (
	ResultRows           ResultType = "rows"
	ResultAggregate      ResultType = "aggregate"
	ResultGrouped        ResultType = "grouped"
	ResultAnomalies      ResultType = "anomalies"
	ResultForecast       ResultType = "forecast"
	ResultInsight        ResultType = "insight"
	ResultComparison     ResultType = "comparison"
	ResultCrossMarket    ResultType = "cross_market"
	ResultRecommendation ResultType = "recommendation"
	ResultTariff         ResultType = "tariff"
	ResultTimeSlot       ResultType = "time_slot"
	ResultCustomChart    ResultType = "custom_chart"
)

// MQueryResult is the tagged result handed to presentation layers. Exactly
// one payload pointer matching Type is non-nil. An empty filtered set is a
// success: Type stays meaningful, the payload is empty and Message explains.
type MQueryResult struct {
	Type    ResultType  `json:"type"`
	Intent  QueryIntent `json:"intent"`
	Message string      `json:"message,omitempty"`
	Filter  MFilterSpec `json:"filter"`

	Rows           *MRowsResult           `json:"rows,omitempty"`
	Aggregate      *MAggregateResult      `json:"aggregate,omitempty"`
	Grouped        *MGroupedResult        `json:"grouped,omitempty"`
	Anomalies      *MAnomalyResult        `json:"anomalies,omitempty"`
	Forecast       *MForecastResult       `json:"forecast,omitempty"`
	Insight        *MInsightResult        `json:"insight,omitempty"`
	Comparison     *MComparisonResult     `json:"comparison,omitempty"`
	CrossMarket    *MCrossMarketResult    `json:"cross_market,omitempty"`
	Recommendation *MRecommendationResult `json:"recommendation,omitempty"`
	Tariff         *MTariffResult         `json:"tariff,omitempty"`
	TimeSlot       *MTimeSlotResult       `json:"time_slot,omitempty"`
	CustomChart    *MCustomChartResult    `json:"custom_chart,omitempty"`
}

// -----------------------------------------------------------------------------
// Raw rows
// -----------------------------------------------------------------------------

// MRowsResult returns filtered records. FilteredCount is the true match count
// before any limit; DisplayedCount is len(Rows).
type MRowsResult struct {
	Records        []MMarketRecord `json:"records"`
	FilteredCount  int             `json:"filtered_count"`
	DisplayedCount int             `json:"displayed_count"`
	HasMore        bool            `json:"has_more"`
}

// -----------------------------------------------------------------------------
// Simple aggregation
// -----------------------------------------------------------------------------

// MMetricSummary summarizes one metric (price or volume) over a filtered set.
// Min/Max location fields identify the first extremal record.
type MMetricSummary struct {
	Sum     float64 `json:"sum"`
	Average float64 `json:"average"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	StdDev  float64 `json:"stddev"`

	MinDate  string `json:"min_date,omitempty"`
	MinBlock string `json:"min_block,omitempty"`
	MaxDate  string `json:"max_date,omitempty"`
	MaxBlock string `json:"max_block,omitempty"`
}

// MAggregateResult is one aggregate record over the whole filtered set.
type MAggregateResult struct {
	Function AggFunc        `json:"function"`
	Count    int            `json:"count"`
	Price    MMetricSummary `json:"price"`
	Volume   MMetricSummary `json:"volume"`
}

// -----------------------------------------------------------------------------
// Grouped aggregation and chart shaping
// -----------------------------------------------------------------------------

// MGroupStat is one partition of a grouped aggregation.
type MGroupStat struct {
	Key    string  `json:"key"`
	Count  int     `json:"count"`
	Price  float64 `json:"price"`
	Volume float64 `json:"volume"`
}

// MChartShape is the render-ready label/series pairing for chart outputs.
// For heat-map shaping Matrix holds a 4x24 minute-slot-by-hour grid and
// RowLabels names the four minute slots.
type MChartShape struct {
	Labels    []string             `json:"labels"`
	Series    map[string][]float64 `json:"series"`
	Matrix    [][]float64          `json:"matrix,omitempty"`
	RowLabels []string             `json:"row_labels,omitempty"`
}

// MGroupedResult carries sorted per-partition aggregates plus chart shaping.
type MGroupedResult struct {
	GroupBy  GroupDim     `json:"group_by"`
	Function AggFunc      `json:"function"`
	Groups   []MGroupStat `json:"groups"`
	Chart    *MChartShape `json:"chart,omitempty"`
}

// -----------------------------------------------------------------------------
// Anomalies
// -----------------------------------------------------------------------------

// MAnomaly is one flagged price observation.
type MAnomaly struct {
	Market       Market  `json:"market"`
	Date         string  `json:"date"`
	TimeBlock    string  `json:"time_block"`
	Price        float64 `json:"price"`
	ZScore       float64 `json:"z_score"`
	DeviationPct float64 `json:"deviation_pct"`
	Severity     string  `json:"severity"` // "High", "Medium", "Low"
}

// MAnomalyResult lists flagged records (top 10 by absolute deviation).
type MAnomalyResult struct {
	Anomalies []MAnomaly `json:"anomalies"`
	Mean      float64    `json:"mean"`
	StdDev    float64    `json:"stddev"`
	Examined  int        `json:"examined"`
}

// -----------------------------------------------------------------------------
// Forecast
// -----------------------------------------------------------------------------

// MForecastPoint is one predicted horizon day.
type MForecastPoint struct {
	Date       string  `json:"date"`
	Predicted  float64 `json:"predicted"`
	LowerBound float64 `json:"lower_bound"`
	UpperBound float64 `json:"upper_bound"`
}

// MForecastResult carries the horizon predictions. Confidence == 0 means
// "forecast unavailable" and Points is empty.
type MForecastResult struct {
	Points     []MForecastPoint `json:"points"`
	Confidence float64          `json:"confidence"`
	ModelLabel string           `json:"model_label"`
}

// -----------------------------------------------------------------------------
// Insights, comparisons, recommendations
// -----------------------------------------------------------------------------

// MTrend is the least-squares trend of a chronological series.
type MTrend struct {
	Slope     float64 `json:"slope"`
	Direction string  `json:"direction"` // "upward", "downward", "sideways"
	Strength  float64 `json:"strength"`  // 0..100
}

// MInsightResult is the single-market insight summary.
type MInsightResult struct {
	Market       Market         `json:"market,omitempty"`
	Count        int            `json:"count"`
	Price        MMetricSummary `json:"price"`
	Volume       MMetricSummary `json:"volume"`
	Trend        MTrend         `json:"trend"`
	Volatility   float64        `json:"volatility"`
	PeakHours    []int          `json:"peak_hours"`
	OffPeakHours []int          `json:"off_peak_hours"`
}

// MMarketStat is one market's summary inside a comparison.
type MMarketStat struct {
	Market     Market         `json:"market"`
	Count      int            `json:"count"`
	Price      MMetricSummary `json:"price"`
	Volume     MMetricSummary `json:"volume"`
	Volatility float64        `json:"volatility"`
}

// MComparisonResult compares markets (or years, keyed by Label) side by side.
type MComparisonResult struct {
	Dimension string        `json:"dimension"` // "market" or "year"
	Stats     []MMarketStat `json:"stats,omitempty"`
	Groups    []MGroupStat  `json:"groups,omitempty"`
	Cheapest  string        `json:"cheapest,omitempty"`
	Costliest string        `json:"costliest,omitempty"`
}

// MPairedSlot is one (date, block) pair where both markets traded.
type MPairedSlot struct {
	Date      string  `json:"date"`
	TimeBlock string  `json:"time_block"`
	PriceA    float64 `json:"price_a"`
	PriceB    float64 `json:"price_b"`
	Diff      float64 `json:"diff"`
}

// MCrossMarketResult answers "when is A greater than B" style queries.
type MCrossMarketResult struct {
	MarketA      Market        `json:"market_a"`
	MarketB      Market        `json:"market_b"`
	PairedSlots  int           `json:"paired_slots"`
	SlotsAbove   int           `json:"slots_above"`
	PercentAbove float64       `json:"percent_above"`
	Samples      []MPairedSlot `json:"samples,omitempty"`
}

// MHourWindow is one hour-of-day with its average price.
type MHourWindow struct {
	Hour     int     `json:"hour"`
	AvgPrice float64 `json:"avg_price"`
}

// MRecommendationResult is the buy/sell guidance payload.
type MRecommendationResult struct {
	BuyWindows  []MHourWindow `json:"buy_windows"`
	SellWindows []MHourWindow `json:"sell_windows"`
	Confidence  float64       `json:"confidence"`
	Rationale   string        `json:"rationale"`
}

// MTariffBucket is one price band with its occupancy.
type MTariffBucket struct {
	Label   string  `json:"label"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

// MTariffResult buckets the filtered set by price band.
type MTariffResult struct {
	Buckets []MTariffBucket `json:"buckets"`
	Total   int             `json:"total"`
}

// MTimeSlotResult ranks hours of day by average price.
type MTimeSlotResult struct {
	Hours        []MHourWindow `json:"hours"`
	PeakHours    []int         `json:"peak_hours"`
	OffPeakHours []int         `json:"off_peak_hours"`
}

// MCustomChartResult carries a per-metric chart-type map plus shaped series.
type MCustomChartResult struct {
	ChartTypes map[string]string `json:"chart_types"` // metric -> "bar", "line", ...
	Chart      MChartShape       `json:"chart"`
}
