package insights

import "fmt"

// Section summaries are pure template selections over numeric bands. The
// text is advisory only and never consumed by downstream logic.

func overviewSummary(o Overview) string {
	if o.StoreCount == 0 {
		return "No store data available for the selected period."
	}
	switch {
	case o.WeightedMargin >= 25:
		return fmt.Sprintf("Fleet of %d stores is healthy: %.1f%% weighted profit margin on %.0f revenue.",
			o.StoreCount, o.WeightedMargin, o.TotalRevenue)
	case o.WeightedMargin >= 15:
		return fmt.Sprintf("Fleet of %d stores is average: %.1f%% weighted profit margin on %.0f revenue.",
			o.StoreCount, o.WeightedMargin, o.TotalRevenue)
	default:
		return fmt.Sprintf("Fleet of %d stores needs attention: weighted profit margin is only %.1f%%.",
			o.StoreCount, o.WeightedMargin)
	}
}

func clusterSummary(c Clusters) string {
	total := c.High.Count + c.Medium.Count + c.Low.Count
	if total == 0 {
		return "No stores to cluster."
	}
	return fmt.Sprintf("%d high, %d medium and %d low performance stores; the low tier averages a %.1f%% margin.",
		c.High.Count, c.Medium.Count, c.Low.Count, c.Low.AvgMetrics.ProfitMargin)
}

func anomalySummary(a AnomalyReport) string {
	if a.TotalAnomalyStores == 0 {
		return "No anomalous stores detected."
	}
	return fmt.Sprintf("%d store(s) flagged across %d margin, %d volume, %d marketing and %d delivery anomalies.",
		a.TotalAnomalyStores, len(a.ProfitMargin), len(a.OrderCount), len(a.HighMarketing), len(a.HighDelivery))
}

func headTailSummary(h HeadTailReport) string {
	if len(h.BottomStores) == 0 {
		return "Too few stores for a head/tail comparison."
	}
	return fmt.Sprintf("Top stores out-earn the tail by %.1f margin points and %.1f in average order value.",
		h.Gaps.ProfitMargin, h.Gaps.AOV)
}

func attributionSummary(a AttributionReport) string {
	for _, f := range a.Factors {
		if f.Factor != a.PrimaryFactor {
			continue
		}
		if f.LowConfidence {
			return "No reliable profitability driver found (flat metric distributions)."
		}
		return fmt.Sprintf("Profit margin correlates most with %s (r=%.2f).", f.Factor, f.Correlation)
	}
	return "No profitability drivers evaluated."
}

func trendSummary(t *TrendReport) string {
	total := t.GrowingCount + t.DecliningCount
	if total == 0 {
		return "No comparison data for the previous period."
	}
	switch {
	case t.DecliningCount == 0:
		return fmt.Sprintf("All %d stores grew versus the previous period.", total)
	case t.GrowingCount == 0:
		return fmt.Sprintf("All %d stores declined versus the previous period.", total)
	default:
		return fmt.Sprintf("%d stores growing, %d declining versus the previous period.",
			t.GrowingCount, t.DecliningCount)
	}
}

func healthSummary(h HealthReport) string {
	if len(h.Scores) == 0 {
		return "No stores to score."
	}
	switch {
	case h.AverageScore >= 70:
		return fmt.Sprintf("Average health score %.1f: the fleet is in good shape (%d excellent, %d poor).",
			h.AverageScore, h.Distribution.Excellent, h.Distribution.Poor)
	case h.AverageScore >= 50:
		return fmt.Sprintf("Average health score %.1f: mixed fleet health (%d excellent, %d poor).",
			h.AverageScore, h.Distribution.Excellent, h.Distribution.Poor)
	default:
		return fmt.Sprintf("Average health score %.1f: fleet health is weak (%d poor stores).",
			h.AverageScore, h.Distribution.Poor)
	}
}

func costSummary(c CostReport) string {
	combined := c.MarketingRatio + c.DeliveryRatio
	switch {
	case combined == 0:
		return "No cost data for the selected period."
	case combined > 30:
		return fmt.Sprintf("Combined cost load is heavy: marketing %.1f%% plus delivery %.1f%% of revenue.",
			c.MarketingRatio, c.DeliveryRatio)
	default:
		return fmt.Sprintf("Marketing consumes %.1f%% and delivery %.1f%% of fleet revenue.",
			c.MarketingRatio, c.DeliveryRatio)
	}
}
