package analysis

import (
	"sort"
	"time"

	"iex-insight/src/models"
	"iex-insight/src/utils"
)

// -----------------------------------------------------------------------------
// Date-span-adaptive bucketing
// -----------------------------------------------------------------------------
// Chart-shaped outputs stay readable (<= ~180 points) regardless of the
// queried span. The tier boundaries 60 and 181 are a hard contract:
//
//	daysSpan == 0        -> 15-minute time block
//	0 < daysSpan <= 60   -> calendar day
//	60 < daysSpan <= 181 -> ISO week (Monday start)
//	daysSpan > 181       -> calendar month
// -----------------------------------------------------------------------------

// BucketGranularity names the chosen tier.
type BucketGranularity string

const (
	BucketByBlock BucketGranularity = "timeblock"
	BucketByDay   BucketGranularity = "day"
	BucketByWeek  BucketGranularity = "week"
	BucketByMonth BucketGranularity = "month"
)

// -----------------------------------------------------------------------------

// ChooseGranularity applies the four-tier policy to a day span.
func ChooseGranularity(daysSpan int) BucketGranularity {
	switch {
	case daysSpan <= 0:
		return BucketByBlock
	case daysSpan <= 60:
		return BucketByDay
	case daysSpan <= 181:
		return BucketByWeek
	default:
		return BucketByMonth
	}
}

// -----------------------------------------------------------------------------

// DateSpan returns (minDate, maxDate, daysSpan) over a filtered set.
func DateSpan(records []models.MMarketRecord) (time.Time, time.Time, int) {
	if len(records) == 0 {
		return time.Time{}, time.Time{}, 0
	}
	minDate, maxDate := records[0].Date, records[0].Date
	for i := range records {
		d := records[i].Date
		if d.Before(minDate) {
			minDate = d
		}
		if d.After(maxDate) {
			maxDate = d
		}
	}
	return minDate, maxDate, utils.DaysBetween(minDate, maxDate)
}

// -----------------------------------------------------------------------------

// BucketForChart shapes the filtered set into average-price/volume series
// under the span-adaptive granularity. Labels are sorted chronologically
// (their zero-padded formats make lexicographic order chronological).
func BucketForChart(records []models.MMarketRecord) (*models.MChartShape, BucketGranularity) {
	if len(records) == 0 {
		return &models.MChartShape{Labels: []string{}, Series: map[string][]float64{}}, BucketByDay
	}

	_, _, span := DateSpan(records)
	granularity := ChooseGranularity(span)

	type bucket struct {
		priceSum, volumeSum float64
		count               int
	}
	buckets := make(map[string]*bucket)

	for i := range records {
		key := bucketKey(&records[i], granularity)
		b, ok := buckets[key]
		if !ok {
			b = &bucket{}
			buckets[key] = b
		}
		b.priceSum += records[i].Price
		b.volumeSum += records[i].Volume
		b.count++
	}

	labels := make([]string, 0, len(buckets))
	for k := range buckets {
		labels = append(labels, k)
	}
	sort.Strings(labels)

	prices := make([]float64, len(labels))
	volumes := make([]float64, len(labels))
	for i, k := range labels {
		b := buckets[k]
		prices[i] = b.priceSum / float64(b.count)
		volumes[i] = b.volumeSum / float64(b.count)
	}

	return &models.MChartShape{
		Labels: labels,
		Series: map[string][]float64{
			"price":  prices,
			"volume": volumes,
		},
	}, granularity
}

func bucketKey(r *models.MMarketRecord, g BucketGranularity) string {
	switch g {
	case BucketByBlock:
		return r.TimeBlock
	case BucketByDay:
		return r.DateKey()
	case BucketByWeek:
		return utils.ISOWeekKey(r.Date)
	default:
		return utils.MonthKey(r.Date)
	}
}

// -----------------------------------------------------------------------------

// HeatMatrix shapes a single-day filtered set into a 4x24 minute-slot-by-hour
// grid of average prices. Cells with no record stay 0.
func HeatMatrix(records []models.MMarketRecord) *models.MChartShape {
	sums := make([][]float64, 4)
	counts := make([][]int, 4)
	for i := range sums {
		sums[i] = make([]float64, 24)
		counts[i] = make([]int, 24)
	}

	for i := range records {
		idx := utils.BlockIndex(records[i].TimeBlock)
		if idx < 0 {
			continue
		}
		hour, slot := idx/4, idx%4
		sums[slot][hour] += records[i].Price
		counts[slot][hour]++
	}

	matrix := make([][]float64, 4)
	for s := 0; s < 4; s++ {
		matrix[s] = make([]float64, 24)
		for h := 0; h < 24; h++ {
			if counts[s][h] > 0 {
				matrix[s][h] = sums[s][h] / float64(counts[s][h])
			}
		}
	}

	hours := make([]string, 24)
	for h := range hours {
		hours[h] = utils.BlockStartHour(utils.AllTimeBlocks()[h*4])
	}

	return &models.MChartShape{
		Labels:    hours,
		Matrix:    matrix,
		RowLabels: []string{":00", ":15", ":30", ":45"},
	}
}
