package analysis

import (
	"testing"

	"iex-insight/src/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The 60/181 tier boundaries are a hard contract.
func TestChooseGranularity(t *testing.T) {
	tests := []struct {
		days int
		want BucketGranularity
	}{
		{0, BucketByBlock},
		{1, BucketByDay},
		{60, BucketByDay},
		{61, BucketByWeek},
		{181, BucketByWeek},
		{182, BucketByMonth},
		{730, BucketByMonth},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, ChooseGranularity(tc.days), "days=%d", tc.days)
	}
}

func TestDateSpan(t *testing.T) {
	records := []models.MMarketRecord{
		rec(models.MarketDAM, "2024-03-10", "10:00-10:15", 5, 1),
		rec(models.MarketDAM, "2024-03-01", "10:00-10:15", 5, 1),
		rec(models.MarketDAM, "2024-03-31", "10:00-10:15", 5, 1),
	}

	minDate, maxDate, span := DateSpan(records)
	assert.Equal(t, "2024-03-01", minDate.Format("2006-01-02"))
	assert.Equal(t, "2024-03-31", maxDate.Format("2006-01-02"))
	assert.Equal(t, 30, span)

	_, _, span = DateSpan(nil)
	assert.Zero(t, span)
}

func TestBucketForChartSingleDayUsesBlocks(t *testing.T) {
	records := []models.MMarketRecord{
		rec(models.MarketDAM, "2024-03-01", "10:00-10:15", 4, 1),
		rec(models.MarketDAM, "2024-03-01", "10:15-10:30", 6, 2),
	}

	chart, granularity := BucketForChart(records)
	assert.Equal(t, BucketByBlock, granularity)
	assert.Equal(t, []string{"10:00:00-10:15:00", "10:15:00-10:30:00"}, chart.Labels)
	assert.Equal(t, []float64{4, 6}, chart.Series["price"])
	assert.Equal(t, []float64{1, 2}, chart.Series["volume"])
}

func TestBucketForChartShortSpanUsesDays(t *testing.T) {
	records := []models.MMarketRecord{
		rec(models.MarketDAM, "2024-03-01", "10:00-10:15", 4, 1),
		rec(models.MarketDAM, "2024-03-01", "10:15-10:30", 6, 1),
		rec(models.MarketDAM, "2024-03-02", "10:00-10:15", 8, 1),
	}

	chart, granularity := BucketForChart(records)
	assert.Equal(t, BucketByDay, granularity)
	assert.Equal(t, []string{"2024-03-01", "2024-03-02"}, chart.Labels)
	assert.Equal(t, []float64{5, 8}, chart.Series["price"])
}

func TestBucketForChartLongSpanUsesMonths(t *testing.T) {
	records := []models.MMarketRecord{
		rec(models.MarketDAM, "2024-01-01", "10:00-10:15", 4, 1),
		rec(models.MarketDAM, "2024-12-31", "10:00-10:15", 8, 1),
	}

	chart, granularity := BucketForChart(records)
	assert.Equal(t, BucketByMonth, granularity)
	assert.Equal(t, []string{"2024-01", "2024-12"}, chart.Labels)
}

func TestBucketForChartEmpty(t *testing.T) {
	chart, granularity := BucketForChart(nil)
	assert.Equal(t, BucketByDay, granularity)
	assert.Empty(t, chart.Labels)
}

func TestHeatMatrix(t *testing.T) {
	records := []models.MMarketRecord{
		rec(models.MarketDAM, "2024-03-01", "06:15-06:30", 4, 1),
		rec(models.MarketDAM, "2024-03-01", "06:15-06:30", 6, 1),
		rec(models.MarketDAM, "2024-03-01", "23:45-00:00", 9, 1),
	}

	chart := HeatMatrix(records)
	require.Len(t, chart.Matrix, 4)
	require.Len(t, chart.Matrix[0], 24)
	assert.Equal(t, []string{":00", ":15", ":30", ":45"}, chart.RowLabels)

	// 06:15 block sits in minute slot 1, hour 6; two records average to 5.
	assert.InDelta(t, 5.0, chart.Matrix[1][6], 1e-9)
	// 23:45 block sits in minute slot 3, hour 23.
	assert.InDelta(t, 9.0, chart.Matrix[3][23], 1e-9)
	// Untraded cells stay zero.
	assert.Zero(t, chart.Matrix[0][0])
}
