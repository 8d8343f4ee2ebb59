package analysis

import (
	"sort"
	"strconv"

	"iex-insight/src/analysis/core"
	"iex-insight/src/models"
	"iex-insight/src/utils"
)

// -----------------------------------------------------------------------------
// Filter & Aggregation Engine
// -----------------------------------------------------------------------------
// Pure functions over the immutable record slice. Filtering is a conjunction
// of every populated FilterSpec field; aggregation and grouping never mutate
// records. All numeric semantics are deterministic and test-covered.
// -----------------------------------------------------------------------------

// Matches reports whether a record satisfies every populated constraint.
func Matches(r *models.MMarketRecord, f *models.MFilterSpec) bool {
	if f.Market != "" && r.Market != f.Market {
		return false
	}
	if f.Year != 0 && r.Year != f.Year {
		return false
	}
	if f.Month != 0 && int(r.Date.Month()) != f.Month {
		return false
	}
	if f.Day != 0 && r.Date.Day() != f.Day {
		return false
	}
	if !f.StartDate.IsZero() && r.Date.Before(f.StartDate) {
		return false
	}
	if !f.EndDate.IsZero() && !r.Date.Before(f.EndDate) {
		return false
	}
	if f.PriceMin != nil && r.Price < *f.PriceMin {
		return false
	}
	if f.PriceMax != nil && r.Price > *f.PriceMax {
		return false
	}
	if f.VolumeMin != nil && r.Volume < *f.VolumeMin {
		return false
	}
	if f.VolumeMax != nil && r.Volume > *f.VolumeMax {
		return false
	}
	if len(f.TimeBlocks) > 0 && !containsBlock(f.TimeBlocks, r.TimeBlock) {
		return false
	}
	if f.HasTimeWindow() && !inTimeWindow(r.BlockStart(), f.StartTime, f.EndTime) {
		return false
	}
	return true
}

// -----------------------------------------------------------------------------

// Apply returns the records matching the filter, in store order.
func Apply(records []models.MMarketRecord, f *models.MFilterSpec) []models.MMarketRecord {
	if f == nil || f.IsEmpty() {
		return records
	}
	var out []models.MMarketRecord
	for i := range records {
		if Matches(&records[i], f) {
			out = append(out, records[i])
		}
	}
	return out
}

// -----------------------------------------------------------------------------

func containsBlock(blocks []string, block string) bool {
	for _, b := range blocks {
		if b == block {
			return true
		}
	}
	return false
}

// -----------------------------------------------------------------------------

// inTimeWindow compares only the block's start time. Zero-padded "HH:MM"
// strings make lexicographic and chronological order coincide within a day,
// so plain string comparison is correct. start > end means the window
// crosses midnight and matches time >= start OR time <= end.
func inTimeWindow(blockStart, start, end string) bool {
	if blockStart == "" {
		return false
	}
	if start > end {
		return blockStart >= start || blockStart <= end
	}
	return blockStart >= start && blockStart <= end
}

// -----------------------------------------------------------------------------
// Simple aggregation
// -----------------------------------------------------------------------------

// Aggregate computes one aggregate record over the whole filtered set.
// Max/min locations point at the first extremal record; ties are not
// otherwise broken. StdDev is the population form (divide by N).
func Aggregate(filtered []models.MMarketRecord, fn models.AggFunc) *models.MAggregateResult {
	res := &models.MAggregateResult{Function: fn, Count: len(filtered)}
	if len(filtered) == 0 {
		return res
	}

	prices := make([]float64, len(filtered))
	volumes := make([]float64, len(filtered))
	for i := range filtered {
		prices[i] = filtered[i].Price
		volumes[i] = filtered[i].Volume
	}

	res.Price = summarizeMetric(filtered, prices)
	res.Volume = summarizeMetric(filtered, volumes)
	return res
}

// summarizeMetric fills one metric's summary, including the date/time-block
// of the first minimal and maximal record.
func summarizeMetric(records []models.MMarketRecord, values []float64) models.MMetricSummary {
	mean, std := core.CalculateMeanStd(values)

	minIdx, maxIdx := 0, 0
	sum := 0.0
	for i, v := range values {
		sum += v
		if v < values[minIdx] {
			minIdx = i
		}
		if v > values[maxIdx] {
			maxIdx = i
		}
	}

	return models.MMetricSummary{
		Sum:      sum,
		Average:  mean,
		Min:      values[minIdx],
		Max:      values[maxIdx],
		StdDev:   std,
		MinDate:  records[minIdx].DateKey(),
		MinBlock: records[minIdx].TimeBlock,
		MaxDate:  records[maxIdx].DateKey(),
		MaxBlock: records[maxIdx].TimeBlock,
	}
}

// -----------------------------------------------------------------------------
// Grouped aggregation
// -----------------------------------------------------------------------------

// GroupAggregate partitions the filtered set by the group-by dimension and
// applies the aggregation function per partition. Group keys are returned in
// deterministic order: numeric for year, lexicographic otherwise (the
// zero-padded key formats make lexicographic order chronological).
func GroupAggregate(filtered []models.MMarketRecord, spec models.MAggregationSpec) *models.MGroupedResult {
	fn := spec.Function
	if fn == "" {
		fn = models.AggAverage
	}

	res := &models.MGroupedResult{GroupBy: spec.GroupBy, Function: fn}
	if len(filtered) == 0 {
		return res
	}

	partitions := make(map[string][]int)
	for i := range filtered {
		key := GroupKey(&filtered[i], spec.GroupBy)
		partitions[key] = append(partitions[key], i)
	}

	keys := make([]string, 0, len(partitions))
	for k := range partitions {
		keys = append(keys, k)
	}
	sortGroupKeys(keys, spec.GroupBy)

	labels := make([]string, 0, len(keys))
	priceSeries := make([]float64, 0, len(keys))
	volumeSeries := make([]float64, 0, len(keys))

	for _, key := range keys {
		idx := partitions[key]
		prices := make([]float64, len(idx))
		volumes := make([]float64, len(idx))
		for j, i := range idx {
			prices[j] = filtered[i].Price
			volumes[j] = filtered[i].Volume
		}

		stat := models.MGroupStat{
			Key:    key,
			Count:  len(idx),
			Price:  aggregateValues(prices, fn),
			Volume: aggregateValues(volumes, fn),
		}
		res.Groups = append(res.Groups, stat)

		labels = append(labels, key)
		priceSeries = append(priceSeries, stat.Price)
		volumeSeries = append(volumeSeries, stat.Volume)
	}

	res.Chart = &models.MChartShape{
		Labels: labels,
		Series: map[string][]float64{
			"price":  priceSeries,
			"volume": volumeSeries,
		},
	}
	return res
}

// -----------------------------------------------------------------------------

// GroupKey derives the partition key for a record under a dimension.
func GroupKey(r *models.MMarketRecord, dim models.GroupDim) string {
	switch dim {
	case models.GroupByMarket:
		return string(r.Market)
	case models.GroupByYear:
		return strconv.Itoa(r.Year)
	case models.GroupByMonth:
		return utils.MonthKey(r.Date)
	case models.GroupByDate:
		return r.DateKey()
	case models.GroupByTimeBlock:
		return r.TimeBlock
	case models.GroupByHour:
		return utils.BlockStartHour(r.TimeBlock)
	}
	return string(r.Market)
}

// sortGroupKeys orders keys numerically for year, lexicographically otherwise.
func sortGroupKeys(keys []string, dim models.GroupDim) {
	if dim == models.GroupByYear {
		sort.Slice(keys, func(i, j int) bool {
			a, _ := strconv.Atoi(keys[i])
			b, _ := strconv.Atoi(keys[j])
			return a < b
		})
		return
	}
	sort.Strings(keys)
}

// -----------------------------------------------------------------------------

// aggregateValues applies one aggregation function to a value slice.
func aggregateValues(values []float64, fn models.AggFunc) float64 {
	if len(values) == 0 {
		return 0
	}
	switch fn {
	case models.AggCount:
		return float64(len(values))
	case models.AggSum:
		return sum(values)
	case models.AggMax:
		m := values[0]
		for _, v := range values[1:] {
			if v > m {
				m = v
			}
		}
		return m
	case models.AggMin:
		m := values[0]
		for _, v := range values[1:] {
			if v < m {
				m = v
			}
		}
		return m
	case models.AggStdDev:
		_, std := core.CalculateMeanStd(values)
		return std
	default: // average
		return sum(values) / float64(len(values))
	}
}

func sum(values []float64) float64 {
	total := 0.0
	for _, v := range values {
		total += v
	}
	return total
}
