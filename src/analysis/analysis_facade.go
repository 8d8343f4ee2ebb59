package analysis

import (
	"context"
	"fmt"
	"time"

	"iex-insight/src/forecast"
	"iex-insight/src/helpers"
	"iex-insight/src/interfaces"
	"iex-insight/src/logger"
	"iex-insight/src/models"
	"iex-insight/src/query"
)

// -----------------------------------------------------------------------------
// AnalysisFacade runs the whole pipeline for one request: classify the
// intent, extract filters from the text, merge structured overrides, filter
// the record store, and dispatch to the aggregation/insight/forecast path
// the intent selects. Stateless and safe for concurrent use; the session and
// history stores are optional, best-effort collaborators.
// -----------------------------------------------------------------------------

type AnalysisFacade struct {
	Config   *models.MConfig
	Logger   *logger.Logger
	Store    interfaces.IRecordStore
	Forecast *forecast.Adapter
	Sessions interfaces.ISessionStore
	History  interfaces.IHistoryStore
}

// -----------------------------------------------------------------------------

func NewAnalysisFacade(
	cfg *models.MConfig,
	log *logger.Logger,
	store interfaces.IRecordStore,
	fc *forecast.Adapter,
	sessions interfaces.ISessionStore,
	history interfaces.IHistoryStore,
) *AnalysisFacade {
	return &AnalysisFacade{
		Config:   cfg,
		Logger:   log,
		Store:    store,
		Forecast: fc,
		Sessions: sessions,
		History:  history,
	}
}

// -----------------------------------------------------------------------------

const noDataMessage = "No data found for the selected filters."

// Answer processes one query end to end. The only error returned is a
// caller contract violation; data absence always produces a success result
// with an explanatory message.
func (a *AnalysisFacade) Answer(ctx context.Context, req models.MQueryRequest) (*models.MQueryResult, error) {
	started := time.Now()

	if req.Text == "" && (req.Filter == nil || req.Filter.IsEmpty()) {
		return nil, helpers.NewValidationError("query text or a structured filter is required")
	}

	intent, rule := query.ClassifyRule(req.Text)
	if req.Text == "" {
		intent, rule = models.IntentRawData, "structured_only"
	}

	filter := query.ExtractFilters(req.Text)
	mergeOverrides(&filter, req.Filter)

	// Comparison-shaped intents span markets; a market token extracted from
	// the text must not narrow them. An explicit structured market still wins.
	switch intent {
	case models.IntentMarketComparison, models.IntentCrossMarket, models.IntentStdDevComparison:
		if req.Filter == nil || req.Filter.Market == "" {
			filter.Market = ""
		}
	}

	filtered := Apply(a.Store.GetAll(), &filter)
	a.Logger.Debug("Rule %q -> intent %s, %d records matched", rule, intent, len(filtered))

	var res *models.MQueryResult
	if req.Aggregation != nil && (req.Aggregation.Function != "" || req.Aggregation.GroupBy != "") {
		// Structured aggregation always takes precedence over the
		// text-derived intent for the result shape.
		res = a.answerAggregation(filtered, *req.Aggregation, intent)
	} else {
		res = a.dispatch(ctx, req, intent, filtered)
	}
	res.Filter = filter
	if len(filtered) == 0 && res.Message == "" {
		res.Message = noDataMessage
	}

	a.record(req, res, len(filtered), time.Since(started))
	return res, nil
}

// -----------------------------------------------------------------------------

func (a *AnalysisFacade) dispatch(ctx context.Context, req models.MQueryRequest, intent models.QueryIntent, filtered []models.MMarketRecord) *models.MQueryResult {
	switch intent {

	case models.IntentInsightSummary:
		return &models.MQueryResult{
			Type:    models.ResultInsight,
			Intent:  intent,
			Insight: BuildInsight(filtered, marketOf(filtered)),
		}

	case models.IntentMarketComparison:
		return &models.MQueryResult{
			Type:       models.ResultComparison,
			Intent:     intent,
			Comparison: CompareMarkets(filtered),
		}

	case models.IntentForecast:
		daily := DailySeries(filtered)
		return &models.MQueryResult{
			Type:     models.ResultForecast,
			Intent:   intent,
			Forecast: a.Forecast.ForecastDaily(ctx, daily.Dates, daily.Values, req.HorizonDays),
		}

	case models.IntentBuySellRecommendation:
		return &models.MQueryResult{
			Type:           models.ResultRecommendation,
			Intent:         intent,
			Recommendation: BuildRecommendation(filtered),
		}

	case models.IntentPatternAnomaly:
		return &models.MQueryResult{
			Type:      models.ResultAnomalies,
			Intent:    intent,
			Anomalies: DetectAnomalies(filtered),
		}

	case models.IntentCrossMarket:
		mentions := query.MarketMentions(req.Text)
		if len(mentions) < 2 {
			return &models.MQueryResult{
				Type:       models.ResultComparison,
				Intent:     intent,
				Comparison: CompareMarkets(filtered),
				Message:    "two markets are needed for a cross-market comparison; showing all markets instead",
			}
		}
		return &models.MQueryResult{
			Type:        models.ResultCrossMarket,
			Intent:      intent,
			CrossMarket: CrossMarketPairs(filtered, mentions[0], mentions[1], 10),
		}

	case models.IntentTariffRange:
		return &models.MQueryResult{
			Type:   models.ResultTariff,
			Intent: intent,
			Tariff: TariffBuckets(filtered),
		}

	case models.IntentTimeSlot:
		hours := HourlyAverages(filtered)
		peak, offPeak := PeakOffPeakHours(filtered)
		return &models.MQueryResult{
			Type:   models.ResultTimeSlot,
			Intent: intent,
			TimeSlot: &models.MTimeSlotResult{
				Hours:        hours,
				PeakHours:    peak,
				OffPeakHours: offPeak,
			},
		}

	case models.IntentCustomChart:
		bindings := query.ParseChartBindings(req.Text)
		chart, granularity := BucketForChart(filtered)
		if granularity == BucketByBlock && wantsHeatMap(bindings) {
			chart = HeatMatrix(filtered)
		}
		return &models.MQueryResult{
			Type:    models.ResultCustomChart,
			Intent:  intent,
			Message: fmt.Sprintf("bucketed by %s", granularity),
			CustomChart: &models.MCustomChartResult{
				ChartTypes: bindings,
				Chart:      *chart,
			},
		}

	case models.IntentMultiYear, models.IntentYearWiseComparison:
		grouped := GroupAggregate(filtered, models.MAggregationSpec{
			Function: models.AggAverage,
			GroupBy:  models.GroupByYear,
		})
		return &models.MQueryResult{
			Type:    models.ResultGrouped,
			Intent:  intent,
			Grouped: grouped,
		}

	case models.IntentStdDevComparison:
		grouped := GroupAggregate(filtered, models.MAggregationSpec{
			Function: models.AggStdDev,
			GroupBy:  models.GroupByMarket,
		})
		return &models.MQueryResult{
			Type:    models.ResultGrouped,
			Intent:  intent,
			Grouped: grouped,
		}

	default: // raw data
		return a.answerRows(filtered, req.Limit, intent)
	}
}

// -----------------------------------------------------------------------------

// answerRows returns filtered records truncated by the result limit. The
// limit is applied strictly after counting.
func (a *AnalysisFacade) answerRows(filtered []models.MMarketRecord, limit int, intent models.QueryIntent) *models.MQueryResult {
	if limit <= 0 {
		limit = a.Config.Query.DefaultLimit
	}
	if limit > a.Config.Query.MaxLimit {
		limit = a.Config.Query.MaxLimit
	}

	total := len(filtered)
	display := filtered
	if total > limit {
		display = filtered[:limit]
	}

	return &models.MQueryResult{
		Type:   models.ResultRows,
		Intent: intent,
		Rows: &models.MRowsResult{
			Records:        display,
			FilteredCount:  total,
			DisplayedCount: len(display),
			HasMore:        total > len(display),
		},
	}
}

// -----------------------------------------------------------------------------

func (a *AnalysisFacade) answerAggregation(filtered []models.MMarketRecord, spec models.MAggregationSpec, intent models.QueryIntent) *models.MQueryResult {
	if spec.GroupBy != "" {
		return &models.MQueryResult{
			Type:    models.ResultGrouped,
			Intent:  intent,
			Grouped: GroupAggregate(filtered, spec),
		}
	}
	return &models.MQueryResult{
		Type:      models.ResultAggregate,
		Intent:    intent,
		Aggregate: Aggregate(filtered, spec.Function),
	}
}

// -----------------------------------------------------------------------------

// mergeOverrides applies structured filter fields over text-derived ones;
// a populated structured field always wins.
func mergeOverrides(dst *models.MFilterSpec, override *models.MFilterSpec) {
	if override == nil {
		return
	}
	// A structured calendar field supersedes any date range synthesized from
	// the text's calendar tokens; keeping both would apply two conflicting
	// period constraints.
	if (override.Year != 0 || override.Month != 0 || override.Day != 0) &&
		override.StartDate.IsZero() && override.EndDate.IsZero() {
		dst.StartDate, dst.EndDate = time.Time{}, time.Time{}
	}
	if override.Market != "" {
		dst.Market = override.Market
	}
	if override.Year != 0 {
		dst.Year = override.Year
	}
	if override.Month != 0 {
		dst.Month = override.Month
	}
	if override.Day != 0 {
		dst.Day = override.Day
	}
	if !override.StartDate.IsZero() {
		dst.StartDate = override.StartDate
	}
	if !override.EndDate.IsZero() {
		dst.EndDate = override.EndDate
	}
	if override.PriceMin != nil {
		dst.PriceMin = override.PriceMin
	}
	if override.PriceMax != nil {
		dst.PriceMax = override.PriceMax
	}
	if override.VolumeMin != nil {
		dst.VolumeMin = override.VolumeMin
	}
	if override.VolumeMax != nil {
		dst.VolumeMax = override.VolumeMax
	}
	if len(override.TimeBlocks) > 0 {
		dst.TimeBlocks = override.TimeBlocks
	}
	if override.StartTime != "" {
		dst.StartTime = override.StartTime
	}
	if override.EndTime != "" {
		dst.EndTime = override.EndTime
	}
}

// -----------------------------------------------------------------------------

// marketOf returns the single market of a homogeneous set, "" otherwise.
func marketOf(records []models.MMarketRecord) models.Market {
	if len(records) == 0 {
		return ""
	}
	m := records[0].Market
	for i := 1; i < len(records); i++ {
		if records[i].Market != m {
			return ""
		}
	}
	return m
}

func wantsHeatMap(bindings map[string]string) bool {
	for _, chart := range bindings {
		if chart == "heatmap" {
			return true
		}
	}
	return false
}

// -----------------------------------------------------------------------------

// record persists the exchange as a session hint and an audit entry.
// Both writes are best effort; failures never reach the caller.
func (a *AnalysisFacade) record(req models.MQueryRequest, res *models.MQueryResult, matched int, elapsed time.Duration) {
	sessionID := req.SessionID
	if a.Sessions != nil {
		sessionID = a.Sessions.Append(req.SessionID, models.MSessionMessage{
			Text:      req.Text,
			Intent:    res.Intent,
			Filter:    res.Filter,
			AskedAt:   time.Now(),
			Answered:  true,
			ResultTag: res.Type,
		})
	}

	if a.History != nil {
		entry := models.MQueryLog{
			SessionID:  sessionID,
			Text:       req.Text,
			Intent:     res.Intent,
			ResultType: res.Type,
			MatchCount: matched,
			ElapsedMs:  elapsed.Milliseconds(),
			CreatedAt:  time.Now(),
		}
		if err := a.History.SaveQueryLogs([]models.MQueryLog{entry}); err != nil {
			a.Logger.Warning("Failed to save query log: %v", err)
		}
	}
}
