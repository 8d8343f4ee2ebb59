package main

import (
	"fmt"
	"sort"
	"strings"

	"iex-insight/src/models"
)

// -----------------------------------------------------------------------------

// formatResult renders the tagged result as markdown for the MCP client.
func formatResult(res *models.MQueryResult) string {
	var sb strings.Builder

	if res.Message != "" {
		sb.WriteString(res.Message)
		sb.WriteString("\n\n")
	}

	switch res.Type {
	case models.ResultRows:
		formatRows(&sb, res.Rows)
	case models.ResultAggregate:
		formatAggregate(&sb, res.Aggregate)
	case models.ResultGrouped:
		formatGrouped(&sb, res.Grouped)
	case models.ResultAnomalies:
		formatAnomalies(&sb, res.Anomalies)
	case models.ResultForecast:
		formatForecast(&sb, res.Forecast)
	case models.ResultInsight:
		formatInsight(&sb, res.Insight)
	case models.ResultComparison:
		formatComparison(&sb, res.Comparison)
	case models.ResultCrossMarket:
		formatCrossMarket(&sb, res.CrossMarket)
	case models.ResultRecommendation:
		formatRecommendation(&sb, res.Recommendation)
	case models.ResultTariff:
		formatTariff(&sb, res.Tariff)
	case models.ResultTimeSlot:
		formatTimeSlot(&sb, res.TimeSlot)
	case models.ResultCustomChart:
		formatCustomChart(&sb, res.CustomChart)
	default:
		sb.WriteString(fmt.Sprintf("Unsupported result type: %s\n", res.Type))
	}

	return sb.String()
}

// -----------------------------------------------------------------------------

func formatRows(sb *strings.Builder, rows *models.MRowsResult) {
	if rows == nil || len(rows.Records) == 0 {
		sb.WriteString("No records.\n")
		return
	}

	sb.WriteString(fmt.Sprintf("## Records (%d of %d)\n\n", rows.DisplayedCount, rows.FilteredCount))
	sb.WriteString("| Market | Date | Block | MCP (Rs/kWh) | MCV (GW) |\n")
	sb.WriteString("|---|---|---|---|---|\n")
	for _, r := range rows.Records {
		sb.WriteString(fmt.Sprintf("| %s | %s | %s | %.2f | %.2f |\n",
			r.Market, r.DateKey(), r.TimeBlock, r.Price, r.Volume))
	}
	if rows.HasMore {
		sb.WriteString("\n_More records available; raise the limit to see them._\n")
	}
}

// -----------------------------------------------------------------------------

func formatMetric(sb *strings.Builder, name string, m models.MMetricSummary) {
	sb.WriteString(fmt.Sprintf("**%s:** avg %.2f, min %.2f, max %.2f, stddev %.2f\n",
		name, m.Average, m.Min, m.Max, m.StdDev))
	if m.MaxDate != "" {
		sb.WriteString(fmt.Sprintf("  - max at %s %s, min at %s %s\n",
			m.MaxDate, m.MaxBlock, m.MinDate, m.MinBlock))
	}
}

// -----------------------------------------------------------------------------

func formatAggregate(sb *strings.Builder, agg *models.MAggregateResult) {
	if agg == nil || agg.Count == 0 {
		sb.WriteString("No data to aggregate.\n")
		return
	}

	sb.WriteString(fmt.Sprintf("## Aggregate over %d records\n\n", agg.Count))
	formatMetric(sb, "Price", agg.Price)
	formatMetric(sb, "Volume", agg.Volume)
}

// -----------------------------------------------------------------------------

func formatGrouped(sb *strings.Builder, grouped *models.MGroupedResult) {
	if grouped == nil || len(grouped.Groups) == 0 {
		sb.WriteString("No groups.\n")
		return
	}

	sb.WriteString(fmt.Sprintf("## %s by %s\n\n", grouped.Function, grouped.GroupBy))
	sb.WriteString("| Group | Count | Price | Volume |\n")
	sb.WriteString("|---|---|---|---|\n")
	for _, g := range grouped.Groups {
		sb.WriteString(fmt.Sprintf("| %s | %d | %.2f | %.2f |\n", g.Key, g.Count, g.Price, g.Volume))
	}
}

// -----------------------------------------------------------------------------

func formatAnomalies(sb *strings.Builder, anomalies *models.MAnomalyResult) {
	if anomalies == nil {
		sb.WriteString("No data examined.\n")
		return
	}

	sb.WriteString(fmt.Sprintf("## Anomalies (%d found in %d records, mean %.2f, stddev %.2f)\n\n",
		len(anomalies.Anomalies), anomalies.Examined, anomalies.Mean, anomalies.StdDev))
	if len(anomalies.Anomalies) == 0 {
		sb.WriteString("Nothing unusual in the selected data.\n")
		return
	}

	sb.WriteString("| Market | Date | Block | Price | Z-Score | Deviation | Severity |\n")
	sb.WriteString("|---|---|---|---|---|---|---|\n")
	for _, a := range anomalies.Anomalies {
		sb.WriteString(fmt.Sprintf("| %s | %s | %s | %.2f | %.2f | %+.1f%% | %s |\n",
			a.Market, a.Date, a.TimeBlock, a.Price, a.ZScore, a.DeviationPct, a.Severity))
	}
}

// -----------------------------------------------------------------------------

func formatForecast(sb *strings.Builder, forecast *models.MForecastResult) {
	if forecast == nil || forecast.Confidence == 0 {
		sb.WriteString("Forecast unavailable: not enough daily history for a reliable projection.\n")
		return
	}

	sb.WriteString(fmt.Sprintf("## Price Forecast (%s, confidence %.0f%%)\n\n",
		forecast.ModelLabel, forecast.Confidence*100))
	sb.WriteString("| Date | Predicted | Lower | Upper |\n")
	sb.WriteString("|---|---|---|---|\n")
	for _, p := range forecast.Points {
		sb.WriteString(fmt.Sprintf("| %s | %.2f | %.2f | %.2f |\n",
			p.Date, p.Predicted, p.LowerBound, p.UpperBound))
	}
}

// -----------------------------------------------------------------------------

func formatInsight(sb *strings.Builder, insight *models.MInsightResult) {
	if insight == nil || insight.Count == 0 {
		sb.WriteString("No data for an insight summary.\n")
		return
	}

	title := "All Markets"
	if insight.Market != "" {
		title = string(insight.Market)
	}
	sb.WriteString(fmt.Sprintf("## Insight Summary: %s (%d records)\n\n", title, insight.Count))
	formatMetric(sb, "Price", insight.Price)
	formatMetric(sb, "Volume", insight.Volume)
	sb.WriteString(fmt.Sprintf("**Trend:** %s (slope %.4f, strength %.0f)\n",
		insight.Trend.Direction, insight.Trend.Slope, insight.Trend.Strength))
	sb.WriteString(fmt.Sprintf("**Volatility:** %.1f%%\n", insight.Volatility))
	sb.WriteString(fmt.Sprintf("**Peak hours:** %v\n", insight.PeakHours))
	sb.WriteString(fmt.Sprintf("**Off-peak hours:** %v\n", insight.OffPeakHours))
}

// -----------------------------------------------------------------------------

func formatComparison(sb *strings.Builder, cmp *models.MComparisonResult) {
	if cmp == nil || len(cmp.Stats) == 0 {
		sb.WriteString("No markets to compare.\n")
		return
	}

	sb.WriteString("## Market Comparison\n\n")
	sb.WriteString("| Market | Count | Avg Price | Min | Max | Volatility |\n")
	sb.WriteString("|---|---|---|---|---|---|\n")
	for _, s := range cmp.Stats {
		sb.WriteString(fmt.Sprintf("| %s | %d | %.2f | %.2f | %.2f | %.1f%% |\n",
			s.Market, s.Count, s.Price.Average, s.Price.Min, s.Price.Max, s.Volatility))
	}
	if cmp.Cheapest != "" {
		sb.WriteString(fmt.Sprintf("\nCheapest: **%s**, costliest: **%s**\n", cmp.Cheapest, cmp.Costliest))
	}
}

// -----------------------------------------------------------------------------

func formatCrossMarket(sb *strings.Builder, cross *models.MCrossMarketResult) {
	if cross == nil || cross.PairedSlots == 0 {
		sb.WriteString("No overlapping slots between the two markets.\n")
		return
	}

	sb.WriteString(fmt.Sprintf("## %s vs %s\n\n", cross.MarketA, cross.MarketB))
	sb.WriteString(fmt.Sprintf("%s was above %s in %d of %d shared slots (%.1f%%).\n\n",
		cross.MarketA, cross.MarketB, cross.SlotsAbove, cross.PairedSlots, cross.PercentAbove))

	if len(cross.Samples) > 0 {
		sb.WriteString("Largest gaps:\n\n")
		sb.WriteString("| Date | Block | " + string(cross.MarketA) + " | " + string(cross.MarketB) + " | Diff |\n")
		sb.WriteString("|---|---|---|---|---|\n")
		for _, s := range cross.Samples {
			sb.WriteString(fmt.Sprintf("| %s | %s | %.2f | %.2f | %+.2f |\n",
				s.Date, s.TimeBlock, s.PriceA, s.PriceB, s.Diff))
		}
	}
}

// -----------------------------------------------------------------------------

func formatRecommendation(sb *strings.Builder, rec *models.MRecommendationResult) {
	if rec == nil {
		sb.WriteString("No recommendation available.\n")
		return
	}

	sb.WriteString("## Buy/Sell Recommendation\n\n")
	sb.WriteString("**Buy (cheapest hours):**\n")
	for _, w := range rec.BuyWindows {
		sb.WriteString(fmt.Sprintf("- %02d:00 at avg %.2f Rs/kWh\n", w.Hour, w.AvgPrice))
	}
	sb.WriteString("\n**Sell (dearest hours):**\n")
	for _, w := range rec.SellWindows {
		sb.WriteString(fmt.Sprintf("- %02d:00 at avg %.2f Rs/kWh\n", w.Hour, w.AvgPrice))
	}
	sb.WriteString(fmt.Sprintf("\nConfidence: %.0f%%. %s\n", rec.Confidence*100, rec.Rationale))
}

// -----------------------------------------------------------------------------

func formatTariff(sb *strings.Builder, tariff *models.MTariffResult) {
	if tariff == nil || tariff.Total == 0 {
		sb.WriteString("No data for tariff banding.\n")
		return
	}

	sb.WriteString(fmt.Sprintf("## Tariff Distribution (%d records)\n\n", tariff.Total))
	sb.WriteString("| Band | Count | Share |\n")
	sb.WriteString("|---|---|---|\n")
	for _, b := range tariff.Buckets {
		sb.WriteString(fmt.Sprintf("| %s | %d | %.1f%% |\n", b.Label, b.Count, b.Percent))
	}
}

// -----------------------------------------------------------------------------

func formatTimeSlot(sb *strings.Builder, slots *models.MTimeSlotResult) {
	if slots == nil || len(slots.Hours) == 0 {
		sb.WriteString("No data for time-slot analysis.\n")
		return
	}

	sb.WriteString("## Hourly Price Profile\n\n")
	sb.WriteString("| Hour | Avg Price |\n")
	sb.WriteString("|---|---|\n")
	for _, h := range slots.Hours {
		sb.WriteString(fmt.Sprintf("| %02d:00 | %.2f |\n", h.Hour, h.AvgPrice))
	}
	sb.WriteString(fmt.Sprintf("\nPeak hours: %v, off-peak hours: %v\n", slots.PeakHours, slots.OffPeakHours))
}

// -----------------------------------------------------------------------------

func formatCustomChart(sb *strings.Builder, chart *models.MCustomChartResult) {
	if chart == nil || len(chart.Chart.Labels) == 0 {
		sb.WriteString("No data to chart.\n")
		return
	}

	sb.WriteString("## Chart Data\n\n")
	var bound []string
	for metric := range chart.ChartTypes {
		bound = append(bound, metric)
	}
	sort.Strings(bound)
	for _, metric := range bound {
		sb.WriteString(fmt.Sprintf("- %s as %s chart\n", metric, chart.ChartTypes[metric]))
	}
	sb.WriteString("\n| Label |")
	var metrics []string
	for m := range chart.Chart.Series {
		metrics = append(metrics, m)
	}
	sort.Strings(metrics)
	for _, m := range metrics {
		sb.WriteString(" " + m + " |")
	}
	sb.WriteString("\n|---|")
	for range metrics {
		sb.WriteString("---|")
	}
	sb.WriteString("\n")
	for i, label := range chart.Chart.Labels {
		sb.WriteString("| " + label + " |")
		for _, m := range metrics {
			series := chart.Chart.Series[m]
			if i < len(series) {
				sb.WriteString(fmt.Sprintf(" %.2f |", series[i]))
			} else {
				sb.WriteString(" - |")
			}
		}
		sb.WriteString("\n")
	}
}
