package analysis

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	"iex-insight/src/analysis/core"
	"iex-insight/src/models"
	"iex-insight/src/utils"
)

// -----------------------------------------------------------------------------
// Insight primitives built on the engine's outputs.
// -----------------------------------------------------------------------------

// Anomaly thresholds on the price z-score.
const (
	anomalyZThreshold = 3.0
	anomalyZMedium    = 3.5
	anomalyZHigh      = 4.0
	anomalyMaxResults = 10
)

// -----------------------------------------------------------------------------

// DetectAnomalies flags records whose price z-score exceeds 3, capped to the
// top 10 by absolute percentage deviation from the mean. A zero standard
// deviation (constant series) reports no anomalies.
func DetectAnomalies(records []models.MMarketRecord) *models.MAnomalyResult {
	res := &models.MAnomalyResult{Examined: len(records)}
	if len(records) == 0 {
		return res
	}

	prices := make([]float64, len(records))
	for i := range records {
		prices[i] = records[i].Price
	}

	mean, std := core.CalculateMeanStd(prices)
	res.Mean = mean
	res.StdDev = std
	if std == 0 {
		return res
	}

	var flagged []models.MAnomaly
	for i := range records {
		z := math.Abs(records[i].Price-mean) / std
		if z <= anomalyZThreshold {
			continue
		}

		severity := "Low"
		if z > anomalyZHigh {
			severity = "High"
		} else if z > anomalyZMedium {
			severity = "Medium"
		}

		deviationPct := 0.0
		if mean != 0 {
			deviationPct = (records[i].Price - mean) / mean * 100
		}

		flagged = append(flagged, models.MAnomaly{
			Market:       records[i].Market,
			Date:         records[i].DateKey(),
			TimeBlock:    records[i].TimeBlock,
			Price:        records[i].Price,
			ZScore:       z,
			DeviationPct: deviationPct,
			Severity:     severity,
		})
	}

	sort.SliceStable(flagged, func(i, j int) bool {
		return math.Abs(flagged[i].DeviationPct) > math.Abs(flagged[j].DeviationPct)
	})
	if len(flagged) > anomalyMaxResults {
		flagged = flagged[:anomalyMaxResults]
	}
	res.Anomalies = flagged
	return res
}

// -----------------------------------------------------------------------------

// HourlyAverages groups records by hour of day and returns (hour, avg price)
// sorted by average price descending.
func HourlyAverages(records []models.MMarketRecord) []models.MHourWindow {
	sums := make(map[int]float64)
	counts := make(map[int]int)
	for i := range records {
		h, err := strconv.Atoi(utils.BlockStartHour(records[i].TimeBlock))
		if err != nil {
			continue
		}
		sums[h] += records[i].Price
		counts[h]++
	}

	hours := make([]models.MHourWindow, 0, len(sums))
	for h, s := range sums {
		hours = append(hours, models.MHourWindow{Hour: h, AvgPrice: s / float64(counts[h])})
	}
	sort.Slice(hours, func(i, j int) bool {
		if hours[i].AvgPrice != hours[j].AvgPrice {
			return hours[i].AvgPrice > hours[j].AvgPrice
		}
		return hours[i].Hour < hours[j].Hour
	})
	return hours
}

// -----------------------------------------------------------------------------

// PeakOffPeakHours splits the price-ranked distinct hours into top and
// bottom quartiles. Quartile size uses integer division of the hour count
// by 4 with a minimum of 1, unlike strict N/4 which would return empty
// sets below 4 distinct hours; when the count is not a multiple of 4 the
// sets under-count the remainder. Kept as-is pending product clarification.
func PeakOffPeakHours(records []models.MMarketRecord) (peak, offPeak []int) {
	hours := HourlyAverages(records)
	if len(hours) == 0 {
		return nil, nil
	}

	quartile := len(hours) / 4
	if quartile == 0 {
		quartile = 1
	}

	for i := 0; i < quartile && i < len(hours); i++ {
		peak = append(peak, hours[i].Hour)
	}
	for i := len(hours) - quartile; i < len(hours); i++ {
		offPeak = append(offPeak, hours[i].Hour)
	}
	sort.Ints(peak)
	sort.Ints(offPeak)
	return peak, offPeak
}

// -----------------------------------------------------------------------------

// BuildInsight assembles the single-market insight summary: full metric
// summaries, daily trend, volatility, and peak/off-peak hours.
func BuildInsight(records []models.MMarketRecord, market models.Market) *models.MInsightResult {
	res := &models.MInsightResult{Market: market, Count: len(records)}
	if len(records) == 0 {
		return res
	}

	agg := Aggregate(records, models.AggAverage)
	res.Price = agg.Price
	res.Volume = agg.Volume

	daily := DailySeries(records)
	slope, direction, strength := core.DescribeTrend(daily.Values)
	res.Trend = models.MTrend{Slope: slope, Direction: direction, Strength: strength}

	prices := make([]float64, len(records))
	for i := range records {
		prices[i] = records[i].Price
	}
	res.Volatility = core.CalculateVolatility(prices)

	res.PeakHours, res.OffPeakHours = PeakOffPeakHours(records)
	return res
}

// -----------------------------------------------------------------------------

// CompareMarkets builds a side-by-side market comparison over the filtered
// set, ranked cheapest to costliest by average price.
func CompareMarkets(records []models.MMarketRecord) *models.MComparisonResult {
	res := &models.MComparisonResult{Dimension: "market"}

	byMarket := make(map[models.Market][]models.MMarketRecord)
	for i := range records {
		byMarket[records[i].Market] = append(byMarket[records[i].Market], records[i])
	}

	for _, m := range models.AllMarkets {
		subset, ok := byMarket[m]
		if !ok {
			continue
		}
		agg := Aggregate(subset, models.AggAverage)

		prices := make([]float64, len(subset))
		for i := range subset {
			prices[i] = subset[i].Price
		}

		res.Stats = append(res.Stats, models.MMarketStat{
			Market:     m,
			Count:      len(subset),
			Price:      agg.Price,
			Volume:     agg.Volume,
			Volatility: core.CalculateVolatility(prices),
		})
	}

	if len(res.Stats) > 0 {
		cheapest, costliest := res.Stats[0], res.Stats[0]
		for _, s := range res.Stats[1:] {
			if s.Price.Average < cheapest.Price.Average {
				cheapest = s
			}
			if s.Price.Average > costliest.Price.Average {
				costliest = s
			}
		}
		res.Cheapest = string(cheapest.Market)
		res.Costliest = string(costliest.Market)
	}
	return res
}

// -----------------------------------------------------------------------------

// CrossMarketPairs answers "when is A greater than B": records of both
// markets are paired on (date, time block) and the share of slots where A's
// price exceeds B's is reported, with the largest-gap slots as samples.
func CrossMarketPairs(records []models.MMarketRecord, a, b models.Market, sampleLimit int) *models.MCrossMarketResult {
	res := &models.MCrossMarketResult{MarketA: a, MarketB: b}

	type slotKey struct {
		date, block string
	}
	pricesA := make(map[slotKey]float64)
	pricesB := make(map[slotKey]float64)

	for i := range records {
		key := slotKey{records[i].DateKey(), records[i].TimeBlock}
		switch records[i].Market {
		case a:
			if _, seen := pricesA[key]; !seen {
				pricesA[key] = records[i].Price
			}
		case b:
			if _, seen := pricesB[key]; !seen {
				pricesB[key] = records[i].Price
			}
		}
	}

	var pairs []models.MPairedSlot
	for key, pa := range pricesA {
		pb, ok := pricesB[key]
		if !ok {
			continue
		}
		pairs = append(pairs, models.MPairedSlot{
			Date:      key.date,
			TimeBlock: key.block,
			PriceA:    pa,
			PriceB:    pb,
			Diff:      pa - pb,
		})
	}

	res.PairedSlots = len(pairs)
	for _, p := range pairs {
		if p.Diff > 0 {
			res.SlotsAbove++
		}
	}
	if res.PairedSlots > 0 {
		res.PercentAbove = float64(res.SlotsAbove) / float64(res.PairedSlots) * 100
	}

	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].Diff != pairs[j].Diff {
			return pairs[i].Diff > pairs[j].Diff
		}
		if pairs[i].Date != pairs[j].Date {
			return pairs[i].Date < pairs[j].Date
		}
		return pairs[i].TimeBlock < pairs[j].TimeBlock
	})
	if sampleLimit > 0 && len(pairs) > sampleLimit {
		pairs = pairs[:sampleLimit]
	}
	res.Samples = pairs
	return res
}

// -----------------------------------------------------------------------------

// TariffBuckets partitions the filtered set into fixed price bands
// (Rs./kWh) and reports occupancy per band.
func TariffBuckets(records []models.MMarketRecord) *models.MTariffResult {
	bounds := []struct {
		label    string
		min, max float64
	}{
		{"0-2 Rs", 0, 2},
		{"2-4 Rs", 2, 4},
		{"4-6 Rs", 4, 6},
		{"6-8 Rs", 6, 8},
		{"8-10 Rs", 8, 10},
		{"10+ Rs", 10, math.Inf(1)},
	}

	res := &models.MTariffResult{Total: len(records)}
	counts := make([]int, len(bounds))
	for i := range records {
		p := records[i].Price
		for bi, b := range bounds {
			if p >= b.min && p < b.max {
				counts[bi]++
				break
			}
		}
	}

	for bi, b := range bounds {
		pct := 0.0
		if res.Total > 0 {
			pct = float64(counts[bi]) / float64(res.Total) * 100
		}
		res.Buckets = append(res.Buckets, models.MTariffBucket{
			Label:   b.label,
			Min:     b.min,
			Max:     b.max,
			Count:   counts[bi],
			Percent: pct,
		})
	}
	return res
}

// -----------------------------------------------------------------------------

// BuildRecommendation derives buy/sell guidance from hourly price averages:
// the cheapest quartile hours are buy windows, the dearest are sell windows.
// Confidence shrinks as volatility grows.
func BuildRecommendation(records []models.MMarketRecord) *models.MRecommendationResult {
	res := &models.MRecommendationResult{}
	hours := HourlyAverages(records)
	if len(hours) == 0 {
		res.Rationale = "no data in the selected range"
		return res
	}

	quartile := len(hours) / 4
	if quartile == 0 {
		quartile = 1
	}

	res.SellWindows = append(res.SellWindows, hours[:quartile]...)
	res.BuyWindows = append(res.BuyWindows, hours[len(hours)-quartile:]...)

	sort.Slice(res.BuyWindows, func(i, j int) bool { return res.BuyWindows[i].Hour < res.BuyWindows[j].Hour })
	sort.Slice(res.SellWindows, func(i, j int) bool { return res.SellWindows[i].Hour < res.SellWindows[j].Hour })

	prices := make([]float64, len(records))
	for i := range records {
		prices[i] = records[i].Price
	}
	volatility := core.CalculateVolatility(prices)

	// Confidence degrades linearly with volatility; fully volatile (>=100%)
	// means no confidence in the hourly pattern.
	res.Confidence = math.Max(0, 1-volatility/100)
	res.Rationale = fmt.Sprintf(
		"cheapest hours average %.2f Rs/kWh against %.2f in the dearest window (volatility %.1f%%)",
		avgWindowPrice(res.BuyWindows), avgWindowPrice(res.SellWindows), volatility)
	return res
}

func avgWindowPrice(windows []models.MHourWindow) float64 {
	if len(windows) == 0 {
		return 0
	}
	total := 0.0
	for _, w := range windows {
		total += w.AvgPrice
	}
	return total / float64(len(windows))
}

// -----------------------------------------------------------------------------

// Series is a chronological (date, value) sequence.
type Series struct {
	Dates  []string
	Values []float64
}

// DailySeries aggregates records into a chronological (date, avg price)
// series, the input shape for trends and forecasting.
func DailySeries(records []models.MMarketRecord) Series {
	sums := make(map[string]float64)
	counts := make(map[string]int)
	for i := range records {
		k := records[i].DateKey()
		sums[k] += records[i].Price
		counts[k]++
	}

	dates := make([]string, 0, len(sums))
	for k := range sums {
		dates = append(dates, k)
	}
	sort.Strings(dates)

	values := make([]float64, len(dates))
	for i, d := range dates {
		values[i] = sums[d] / float64(counts[d])
	}
	return Series{Dates: dates, Values: values}
}
