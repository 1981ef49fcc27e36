package insights

import (
	"sort"

	"github.com/storepulse/storepulse/internal/domain"
)

// clusterStores partitions stores into performance tiers by the p25/p75
// boundaries of profit margin. Boundary ties favor the higher tier, so a
// single store (p25 == p75 == its margin) lands in the high tier. Empty
// input yields three empty groups.
func clusterStores(stores []domain.StoreMetrics) Clusters {
	margins := make([]float64, len(stores))
	for i, s := range stores {
		margins[i] = s.ProfitMargin
	}
	stats := Describe(margins)

	var high, medium, low []domain.StoreMetrics
	for _, s := range stores {
		switch {
		case s.ProfitMargin >= stats.P75:
			high = append(high, s)
		case s.ProfitMargin >= stats.P25:
			medium = append(medium, s)
		default:
			low = append(low, s)
		}
	}

	total := len(stores)
	clusters := Clusters{
		High:   buildGroup(high, total, "high margins with strong unit economics"),
		Medium: buildGroup(medium, total, "mid-pack margins, room to optimize"),
		Low:    buildGroup(low, total, "weak margins, likely cost or pricing issues"),
	}
	clusters.Summary = clusterSummary(clusters)
	return clusters
}

// buildGroup aggregates one tier. Top stores are the three largest by
// revenue, name ascending on ties for determinism.
func buildGroup(members []domain.StoreMetrics, total int, characteristics string) ClusterGroup {
	group := ClusterGroup{
		Count:           len(members),
		TopStores:       []string{},
		Members:         make([]string, 0, len(members)),
		Characteristics: characteristics,
	}
	if total > 0 {
		group.Percentage = float64(len(members)) / float64(total) * 100
	}
	if len(members) == 0 {
		return group
	}

	var orders, revenue, profit, aov, marketing, delivery float64
	for _, m := range members {
		orders += float64(m.OrderCount)
		revenue += m.TotalRevenue
		profit += m.TotalProfit
		aov += m.AOV
		marketing += m.MarketingCostRate
		delivery += m.DeliveryCostRate
	}
	n := float64(len(members))
	group.AvgMetrics = TierAverages{
		OrderCount:        orders / n,
		TotalRevenue:      revenue / n,
		ProfitMargin:      WeightedRatio(profit, revenue),
		AOV:               aov / n,
		MarketingCostRate: marketing / n,
		DeliveryCostRate:  delivery / n,
	}

	byRevenue := make([]domain.StoreMetrics, len(members))
	copy(byRevenue, members)
	sort.Slice(byRevenue, func(i, j int) bool {
		if byRevenue[i].TotalRevenue != byRevenue[j].TotalRevenue {
			return byRevenue[i].TotalRevenue > byRevenue[j].TotalRevenue
		}
		return byRevenue[i].StoreName < byRevenue[j].StoreName
	})
	for i := 0; i < len(byRevenue) && i < 3; i++ {
		group.TopStores = append(group.TopStores, byRevenue[i].StoreName)
	}
	for _, m := range members {
		group.Members = append(group.Members, m.StoreName)
	}
	sort.Strings(group.Members)
	return group
}
