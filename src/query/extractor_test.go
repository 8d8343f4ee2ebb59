package query

import (
	"testing"
	"time"

	"iex-insight/src/models"
	"iex-insight/src/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractFiltersMarketTokens(t *testing.T) {
	tests := []struct {
		text string
		want models.Market
	}{
		{"average price in dam", models.MarketDAM},
		{"average price in DAM", models.MarketDAM},
		{"gdam volumes last year", models.MarketGDAM},
		{"g-dam volumes", models.MarketGDAM},
		{"rtm prices today", models.MarketRTM},
		// "dam" inside "gdam" must never select DAM
		{"show gdam data", models.MarketGDAM},
		// no market token at all
		{"average price in 2024", ""},
		// "Rotterdam" must not match the dam token
		{"prices in rotterdam", ""},
	}
	for _, tc := range tests {
		f := ExtractFilters(tc.text)
		assert.Equal(t, tc.want, f.Market, tc.text)
	}
}

func TestExtractFiltersGDAMWinsOverDAM(t *testing.T) {
	f := ExtractFilters("compare gdam and dam prices")
	assert.Equal(t, models.MarketGDAM, f.Market)
}

func TestMarketMentionsOrder(t *testing.T) {
	assert.Equal(t,
		[]models.Market{models.MarketGDAM, models.MarketDAM},
		MarketMentions("when is gdam greater than dam"))
	assert.Equal(t,
		[]models.Market{models.MarketDAM, models.MarketRTM},
		MarketMentions("dam versus rtm"))
	assert.Empty(t, MarketMentions("no markets here"))
}

func TestExtractFiltersYearSynthesis(t *testing.T) {
	f := ExtractFilters("dam prices in 2024")
	assert.Equal(t, 2024, f.Year)
	assert.Equal(t, utils.Date(2024, time.January, 1), f.StartDate)
	assert.Equal(t, utils.Date(2025, time.January, 1), f.EndDate)
}

func TestExtractFiltersYearOutOfRangeIgnored(t *testing.T) {
	f := ExtractFilters("prices in 2019")
	assert.Zero(t, f.Year)
	assert.True(t, f.StartDate.IsZero())
}

func TestExtractFiltersMonthSynthesis(t *testing.T) {
	f := ExtractFilters("mcp for march 2024")
	assert.Equal(t, 2024, f.Year)
	assert.Equal(t, 3, f.Month)
	assert.Equal(t, utils.Date(2024, time.March, 1), f.StartDate)
	assert.Equal(t, utils.Date(2024, time.April, 1), f.EndDate)
}

func TestExtractFiltersMonthYearPairWinsOverBareMonth(t *testing.T) {
	// Two month tokens: the one paired with a year must win.
	f := ExtractFilters("compare may with march 2024")
	assert.Equal(t, 3, f.Month)
	assert.Equal(t, 2024, f.Year)
	assert.Equal(t, utils.Date(2024, time.March, 1), f.StartDate)
	assert.Equal(t, utils.Date(2024, time.April, 1), f.EndDate)

	// The modal verb "may" must not shadow the dated month.
	f = ExtractFilters("prices may vary in march 2024")
	assert.Equal(t, 3, f.Month)
	assert.Equal(t, 2024, f.Year)
}

func TestExtractFiltersMonthWithoutYearFallsBack(t *testing.T) {
	f := ExtractFilters("prices in march")
	assert.Equal(t, 3, f.Month)
	assert.Equal(t, utils.Date(utils.DefaultYear, time.March, 1), f.StartDate)
	assert.Equal(t, utils.Date(utils.DefaultYear, time.April, 1), f.EndDate)
}

func TestExtractFiltersDaySynthesis(t *testing.T) {
	for _, text := range []string{
		"prices on 15th march 2024",
		"prices on march 15 2024",
		"prices on 2024-03-15",
		"prices on 15-03-2024",
	} {
		f := ExtractFilters(text)
		require.Equal(t, 2024, f.Year, text)
		require.Equal(t, 3, f.Month, text)
		require.Equal(t, 15, f.Day, text)
		assert.Equal(t, utils.Date(2024, time.March, 15), f.StartDate, text)
		assert.Equal(t, utils.Date(2024, time.March, 16), f.EndDate, text)
	}
}

func TestExtractFiltersQuarterSynthesis(t *testing.T) {
	f := ExtractFilters("q2 2024 dam summary")
	assert.Equal(t, utils.Date(2024, time.April, 1), f.StartDate)
	assert.Equal(t, utils.Date(2024, time.July, 1), f.EndDate)
}

func TestExtractFiltersInvalidDateIgnored(t *testing.T) {
	f := ExtractFilters("prices on 2024-02-30")
	assert.Zero(t, f.Day)
}

func TestExtractFiltersLastNDays(t *testing.T) {
	f := ExtractFilters("dam prices for the last 30 days")
	require.False(t, f.StartDate.IsZero())
	require.False(t, f.EndDate.IsZero())
	assert.Equal(t, 30, utils.DaysBetween(f.StartDate, f.EndDate))
}

func TestExtractFiltersClockRange(t *testing.T) {
	tests := []struct {
		text       string
		start, end string
	}{
		{"prices from 9am to 5pm", "09:00", "17:00"},
		{"prices from 9:30 to 17:45", "09:30", "17:45"},
		{"prices from 12am to 12pm", "00:00", "12:00"},
		{"night window 9pm to 6am", "21:00", "06:00"},
	}
	for _, tc := range tests {
		f := ExtractFilters(tc.text)
		assert.Equal(t, tc.start, f.StartTime, tc.text)
		assert.Equal(t, tc.end, f.EndTime, tc.text)
	}
}

func TestExtractFiltersBareRangeIsNumericNotClock(t *testing.T) {
	f := ExtractFilters("dam prices between 9 and 10")
	assert.Empty(t, f.StartTime)
	assert.Empty(t, f.EndTime)
	require.NotNil(t, f.PriceMin)
	require.NotNil(t, f.PriceMax)
	assert.Equal(t, 9.0, *f.PriceMin)
	assert.Equal(t, 10.0, *f.PriceMax)
}

func TestExtractFiltersVolumeRange(t *testing.T) {
	f := ExtractFilters("mcv between 5 and 12")
	require.NotNil(t, f.VolumeMin)
	require.NotNil(t, f.VolumeMax)
	assert.Equal(t, 5.0, *f.VolumeMin)
	assert.Equal(t, 12.0, *f.VolumeMax)
	assert.Nil(t, f.PriceMin)
}

func TestExtractFiltersPriceHintBeatsVolumeHint(t *testing.T) {
	f := ExtractFilters("mcp and mcv where price is 4 to 6")
	require.NotNil(t, f.PriceMin)
	assert.Nil(t, f.VolumeMin)
}

func TestExtractFiltersRangeSkipsYears(t *testing.T) {
	// "2023 to 2024" is a date fragment, not a price band.
	f := ExtractFilters("dam prices 2023 to 2024")
	assert.Nil(t, f.PriceMin)
	assert.Equal(t, 2023, f.Year)
}

func TestExtractFiltersDateRangeNotPriceBand(t *testing.T) {
	// Tails of numeric dates ("03-31") must never become price bounds.
	f := ExtractFilters("dam from 2023-01-01 to 2023-03-31")
	assert.Nil(t, f.PriceMin)
	assert.Nil(t, f.PriceMax)
	assert.Equal(t, models.MarketDAM, f.Market)
	assert.Equal(t, 2023, f.Year)

	f = ExtractFilters("rtm on 15-03-2024 vs 16-03-2024")
	assert.Nil(t, f.PriceMin)
	assert.Nil(t, f.PriceMax)
}

func TestExtractFiltersBetweenYearsNotPriceBand(t *testing.T) {
	f := ExtractFilters("dam prices between 2023 and 2024")
	assert.Nil(t, f.PriceMin)
	assert.Nil(t, f.PriceMax)
	assert.Equal(t, 2023, f.Year)
}

func TestExtractFiltersInvertedRangeIgnored(t *testing.T) {
	f := ExtractFilters("prices between 10 and 4")
	assert.Nil(t, f.PriceMin)
	assert.Nil(t, f.PriceMax)
}
