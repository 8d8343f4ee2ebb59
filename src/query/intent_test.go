package query

import (
	"testing"

	"iex-insight/src/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The evaluation order is a versioned contract: reordering silently changes
// which intent wins on overlapping phrasings.
func TestRuleOrderContract(t *testing.T) {
	assert.Equal(t, []string{
		"custom_chart_multi",
		"cross_market_relational",
		"stddev_comparison",
		"year_wise_comparison",
		"multi_year_performance",
		"forecast",
		"buy_sell_recommendation",
		"pattern_anomaly",
		"tariff_range",
		"time_slot_peak",
		"market_comparison",
		"custom_chart_single",
		"insight_summary",
	}, RuleOrder())
}

func TestClassify(t *testing.T) {
	tests := []struct {
		text string
		want models.QueryIntent
	}{
		{"bar chart for mcv and line graph for mcp", models.IntentCustomChart},
		{"when is gdam price greater than dam", models.IntentCrossMarket},
		{"standard deviation of prices across markets", models.IntentStdDevComparison},
		{"year-wise comparison of dam prices", models.IntentYearWiseComparison},
		{"dam performance across the years", models.IntentMultiYear},
		{"forecast dam prices for next week", models.IntentForecast},
		{"when should I buy power", models.IntentBuySellRecommendation},
		{"any unusual spikes in rtm prices", models.IntentPatternAnomaly},
		{"tariff distribution for 2024", models.IntentTariffRange},
		{"which hours are peak in dam", models.IntentTimeSlot},
		{"compare dam and rtm prices", models.IntentMarketComparison},
		{"line chart of dam prices", models.IntentCustomChart},
		{"summary of dam statistics", models.IntentInsightSummary},
		{"dam data for march 2024", models.IntentRawData},
		{"", models.IntentRawData},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, Classify(tc.text), tc.text)
	}
}

// Overlapping phrasings must resolve to the earlier rule.
func TestClassifyTieBreaks(t *testing.T) {
	// relational + two markets outranks the generic compare cue
	intent, rule := ClassifyRule("compare when gdam is higher than dam")
	assert.Equal(t, models.IntentCrossMarket, intent)
	assert.Equal(t, "cross_market_relational", rule)

	// stddev outranks year-wise even when both cues appear
	intent, rule = ClassifyRule("stddev by year for dam")
	assert.Equal(t, models.IntentStdDevComparison, intent)
	assert.Equal(t, "stddev_comparison", rule)

	// superlative with two markets is a comparison, not an insight
	intent, rule = ClassifyRule("which is cheapest, dam or rtm")
	assert.Equal(t, models.IntentMarketComparison, intent)
	assert.Equal(t, "market_comparison", rule)

	// superlative with a single market falls through to insight
	intent, rule = ClassifyRule("highest dam price")
	assert.Equal(t, models.IntentInsightSummary, intent)
	assert.Equal(t, "insight_summary", rule)

	// two chart bindings outrank everything
	intent, rule = ClassifyRule("forecast as a line chart for mcp and bar chart for mcv")
	assert.Equal(t, models.IntentCustomChart, intent)
	assert.Equal(t, "custom_chart_multi", rule)
}

func TestClassifyRelationalNeedsTwoMarkets(t *testing.T) {
	// relational phrasing with one market is not cross-market
	intent := Classify("when is dam price higher than 10")
	assert.NotEqual(t, models.IntentCrossMarket, intent)
}

func TestParseChartBindings(t *testing.T) {
	b := ParseChartBindings("bar chart for MCV and line graph for MCP")
	require.Len(t, b, 2)
	assert.Equal(t, "bar", b["volume"])
	assert.Equal(t, "line", b["price"])

	b = ParseChartBindings("show mcp as a heat map chart")
	require.Len(t, b, 1)
	assert.Equal(t, "heatmap", b["price"])

	assert.Empty(t, ParseChartBindings("no charts here"))
}

func TestCountMarketsAllMarketsPhrase(t *testing.T) {
	intent := Classify("compare all three markets")
	assert.Equal(t, models.IntentMarketComparison, intent)
}
