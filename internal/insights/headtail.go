package insights

import (
	"sort"

	"github.com/storepulse/storepulse/internal/domain"
)

// compareHeadTail contrasts the top and bottom performers by profit margin.
// Sort key: margin desc, revenue desc, name asc. The bottom block starts
// strictly after the top block so the sets never overlap; with three stores
// or fewer the bottom is empty and all gaps are 0.
func compareHeadTail(stores []domain.StoreMetrics) HeadTailReport {
	ranked := make([]domain.StoreMetrics, len(stores))
	copy(ranked, stores)
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].ProfitMargin != ranked[j].ProfitMargin {
			return ranked[i].ProfitMargin > ranked[j].ProfitMargin
		}
		if ranked[i].TotalRevenue != ranked[j].TotalRevenue {
			return ranked[i].TotalRevenue > ranked[j].TotalRevenue
		}
		return ranked[i].StoreName < ranked[j].StoreName
	})

	n := len(ranked)
	topEnd := n
	if topEnd > 3 {
		topEnd = 3
	}
	bottomStart := n - 3
	if bottomStart < topEnd {
		bottomStart = topEnd
	}

	top := ranked[:topEnd]
	bottom := ranked[bottomStart:]

	report := HeadTailReport{
		TopStores:    names(top),
		BottomStores: names(bottom),
	}
	if len(bottom) > 0 {
		report.Gaps = FieldGaps{
			ProfitMargin:      avgField(top, marginOf) - avgField(bottom, marginOf),
			AOV:               avgField(top, aovOf) - avgField(bottom, aovOf),
			MarketingCostRate: avgField(top, marketingOf) - avgField(bottom, marketingOf),
			DeliveryCostRate:  avgField(top, deliveryOf) - avgField(bottom, deliveryOf),
		}
	}
	report.Summary = headTailSummary(report)
	return report
}

func names(stores []domain.StoreMetrics) []string {
	out := make([]string, len(stores))
	for i, s := range stores {
		out[i] = s.StoreName
	}
	return out
}

func avgField(stores []domain.StoreMetrics, field func(domain.StoreMetrics) float64) float64 {
	values := make([]float64, len(stores))
	for i, s := range stores {
		values[i] = field(s)
	}
	return mean(values)
}

func marginOf(s domain.StoreMetrics) float64    { return s.ProfitMargin }
func aovOf(s domain.StoreMetrics) float64       { return s.AOV }
func marketingOf(s domain.StoreMetrics) float64 { return s.MarketingCostRate }
func deliveryOf(s domain.StoreMetrics) float64  { return s.DeliveryCostRate }
