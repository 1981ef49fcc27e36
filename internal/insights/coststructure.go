package insights

import (
	"github.com/storepulse/storepulse/internal/domain"
)

// analyzeCostStructure aggregates the fleet's cost composition. Absolute
// costs are derived from each store's rate against its own revenue; ratios
// are weighted over total revenue. Anomaly store lists and cluster averages
// are reused from the other analyzers rather than recomputed.
func analyzeCostStructure(stores []domain.StoreMetrics, anomalies AnomalyReport, clusters Clusters) CostReport {
	var totalRevenue, marketingCost, deliveryCost float64
	marketingRates := make([]float64, len(stores))
	deliveryRates := make([]float64, len(stores))
	for i, s := range stores {
		totalRevenue += s.TotalRevenue
		marketingCost += s.MarketingCostRate * s.TotalRevenue / 100
		deliveryCost += s.DeliveryCostRate * s.TotalRevenue / 100
		marketingRates[i] = s.MarketingCostRate
		deliveryRates[i] = s.DeliveryCostRate
	}

	report := CostReport{
		TotalMarketingCost: marketingCost,
		TotalDeliveryCost:  deliveryCost,
		MarketingRatio:     WeightedRatio(marketingCost, totalRevenue),
		DeliveryRatio:      WeightedRatio(deliveryCost, totalRevenue),
		MarketingRateStats: Describe(marketingRates),
		DeliveryRateStats:  Describe(deliveryRates),
		HighMarketing:      recordNames(anomalies.HighMarketing),
		HighDelivery:       recordNames(anomalies.HighDelivery),
		Comparison: TierRateComparison{
			HighMarketingRate: clusters.High.AvgMetrics.MarketingCostRate,
			HighDeliveryRate:  clusters.High.AvgMetrics.DeliveryCostRate,
			LowMarketingRate:  clusters.Low.AvgMetrics.MarketingCostRate,
			LowDeliveryRate:   clusters.Low.AvgMetrics.DeliveryCostRate,
		},
	}
	report.Summary = costSummary(report)
	return report
}

func recordNames(records []AnomalyRecord) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.StoreName
	}
	return out
}
