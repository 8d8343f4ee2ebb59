package query

import (
	"regexp"
	"strings"

	"iex-insight/src/models"
)

// -----------------------------------------------------------------------------
// Intent Classifier
// -----------------------------------------------------------------------------
// An ordered rule list evaluated top to bottom; the first rule whose
// predicate matches wins. The order IS the contract: more specific rules
// (explicit chart-type phrasing, cross-market relational cues) sit above
// more general ones (bare "trend", superlatives), and reordering silently
// changes behavior. RuleOrder() exposes the sequence so tests can pin it.
// -----------------------------------------------------------------------------

type intentRule struct {
	Name   string
	Match  func(string) bool
	Intent models.QueryIntent
}

var (
	reChartBinding = regexp.MustCompile(`(?i)\b(bar|line|pie|area|scatter|heat\s?map)\s*(?:chart|graph|plot)?\s*(?:for|of)?\s*(mcp|mcv|price|prices|volume|volumes)\b`)
	reBindingRev   = regexp.MustCompile(`(?i)\b(mcp|mcv|price|prices|volume|volumes)\s*(?:as|in)?\s*(?:a\s+)?(bar|line|pie|area|scatter|heat\s?map)\s*(?:chart|graph|plot)\b`)
	reChartWord    = regexp.MustCompile(`(?i)\b(bar|line|pie|area|scatter|heat\s?map)\s*(chart|graph|plot)\b|\b(chart|graph|plot|visuali[sz]e)\b`)

	reRelational  = regexp.MustCompile(`(?i)\b(greater|higher|above|exceed\w*|more expensive|costlier)\b.*\bthan\b|\bwhen is\b.*\b(greater|higher|above)\b`)
	reForecast    = regexp.MustCompile(`(?i)\b(forecast|predict\w*|projection|project\w*|outlook|next\s+(week|month|\d+\s+days))\b`)
	reStdDev      = regexp.MustCompile(`(?i)\b(std\s?dev|stddev|standard\s+deviation|deviation)\b`)
	reYearWise    = regexp.MustCompile(`(?i)\byear[\s-]?wise\b|\b(by|each|every|per)\s+year\b`)
	reMultiYear   = regexp.MustCompile(`(?i)\bmulti[\s-]?year\b|\b(across|over)\s+(the\s+)?years\b|\byearly\s+performance\b`)
	reBuySell     = regexp.MustCompile(`(?i)\b(buy|sell|purchase|procure\w*)\b|\brecommend\w*\b|\bwhen\s+should\b|\b(cheapest|best)\s+time\b`)
	reAnomaly     = regexp.MustCompile(`(?i)\b(anomal\w+|unusual|outlier\w*|spike\w*|abnormal|irregular)\b|\bpattern\w*\b`)
	reTariff      = regexp.MustCompile(`(?i)\btariff\b|\bprice\s+(range|band|bucket|bracket)s?\b|\bdistribution\b`)
	reTimeSlot    = regexp.MustCompile(`(?i)\b(peak|off[\s-]?peak)\b|\btime\s+slots?\b|\bwhich\s+(hours?|blocks?)\b|\bhour(ly|s)?\s+(price|analysis|profile)\b`)
	reCompareCue  = regexp.MustCompile(`(?i)\b(compare|comparison|versus|vs\.?)\b|\ball\s+(three\s+)?markets\b|\b(across|between)\s+markets\b`)
	reSuperlative = regexp.MustCompile(`(?i)\b(highest|lowest|cheapest|costliest|dearest|maximum|minimum|best|worst)\b`)
	reInsight     = regexp.MustCompile(`(?i)\b(insight\w*|trend\w*|summar\w+|overview|analy[sz]e|analysis|statistics|stats|average|mean|volatil\w+)\b`)

	reAllMarkets = regexp.MustCompile(`(?i)\ball\s+(three\s+)?markets\b`)
)

// -----------------------------------------------------------------------------

// rules is the versioned classification order. Append-only edits preferred;
// any reorder must update the order test in lockstep.
var rules = []intentRule{
	{"custom_chart_multi", matchCustomChartMulti, models.IntentCustomChart},
	{"cross_market_relational", matchCrossMarket, models.IntentCrossMarket},
	{"stddev_comparison", matchStdDev, models.IntentStdDevComparison},
	{"year_wise_comparison", reYearWise.MatchString, models.IntentYearWiseComparison},
	{"multi_year_performance", reMultiYear.MatchString, models.IntentMultiYear},
	{"forecast", reForecast.MatchString, models.IntentForecast},
	{"buy_sell_recommendation", reBuySell.MatchString, models.IntentBuySellRecommendation},
	{"pattern_anomaly", reAnomaly.MatchString, models.IntentPatternAnomaly},
	{"tariff_range", reTariff.MatchString, models.IntentTariffRange},
	{"time_slot_peak", reTimeSlot.MatchString, models.IntentTimeSlot},
	{"market_comparison", matchMarketComparison, models.IntentMarketComparison},
	{"custom_chart_single", matchCustomChartSingle, models.IntentCustomChart},
	{"insight_summary", matchInsight, models.IntentInsightSummary},
}

// -----------------------------------------------------------------------------

// Classify maps free text to exactly one intent. Unmatched text is a raw
// data query.
func Classify(text string) models.QueryIntent {
	lower := strings.ToLower(text)
	for _, r := range rules {
		if r.Match(lower) {
			return r.Intent
		}
	}
	return models.IntentRawData
}

// -----------------------------------------------------------------------------

// ClassifyRule returns the intent plus the name of the winning rule
// ("fallback_raw_data" when nothing matched).
func ClassifyRule(text string) (models.QueryIntent, string) {
	lower := strings.ToLower(text)
	for _, r := range rules {
		if r.Match(lower) {
			return r.Intent, r.Name
		}
	}
	return models.IntentRawData, "fallback_raw_data"
}

// -----------------------------------------------------------------------------

// RuleOrder returns the rule names in evaluation order for order-contract tests.
func RuleOrder() []string {
	names := make([]string, len(rules))
	for i, r := range rules {
		names[i] = r.Name
	}
	return names
}

// -----------------------------------------------------------------------------
// Predicates
// -----------------------------------------------------------------------------

// ParseChartBindings extracts per-metric chart types, e.g.
// "bar chart for MCV and line graph for MCP" -> {"volume": "bar", "price": "line"}.
func ParseChartBindings(text string) map[string]string {
	lower := strings.ToLower(text)
	bindings := make(map[string]string)

	for _, m := range reChartBinding.FindAllStringSubmatch(lower, -1) {
		bindings[canonMetric(m[2])] = canonChart(m[1])
	}
	for _, m := range reBindingRev.FindAllStringSubmatch(lower, -1) {
		bindings[canonMetric(m[1])] = canonChart(m[2])
	}
	return bindings
}

func canonMetric(s string) string {
	switch strings.TrimSpace(s) {
	case "mcv", "volume", "volumes":
		return "volume"
	default:
		return "price"
	}
}

func canonChart(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), " ", "")
}

// Two or more per-metric chart bindings make a custom chart request.
func matchCustomChartMulti(lower string) bool {
	return len(ParseChartBindings(lower)) >= 2
}

// A single explicit chart phrase still outranks the generic insight rules.
func matchCustomChartSingle(lower string) bool {
	return reChartWord.MatchString(lower)
}

// Relational phrasing plus at least two market names.
func matchCrossMarket(lower string) bool {
	if !reRelational.MatchString(lower) {
		return false
	}
	return countMarkets(lower) >= 2
}

func matchStdDev(lower string) bool {
	return reStdDev.MatchString(lower)
}

// Superlative + comparison cue resolves to market comparison, never to
// single-market insight; a bare comparison cue also lands here.
func matchMarketComparison(lower string) bool {
	if reCompareCue.MatchString(lower) {
		return true
	}
	return reSuperlative.MatchString(lower) && countMarkets(lower) >= 2
}

func matchInsight(lower string) bool {
	return reInsight.MatchString(lower) || reSuperlative.MatchString(lower)
}

// countMarkets counts distinct market tokens, with the GDAM/DAM word-boundary
// guard (the "dam" inside "gdam" is not a DAM mention).
func countMarkets(lower string) int {
	n := 0
	if reGDAM.MatchString(lower) {
		n++
	}
	if damWithoutGuard(lower) {
		n++
	}
	if reRTM.MatchString(lower) {
		n++
	}
	if n == 0 && reAllMarkets.MatchString(lower) {
		n = len(models.AllMarkets)
	}
	return n
}
