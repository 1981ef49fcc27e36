package insights

import (
	"math"
	"sort"

	"github.com/storepulse/storepulse/internal/domain"
)

// analyzeTrend buckets each store into exactly one of growing or declining.
// The revenue change sign decides; a zero revenue change falls back to the
// profit change sign, and a store flat on both counts as growing (it is not
// declining). Top-3 per bucket ranks by |revenue change|, name ascending on
// ties.
func analyzeTrend(deltas []domain.StoreMetricsDelta) *TrendReport {
	var growing, declining []StoreTrend
	for _, d := range deltas {
		t := StoreTrend{
			StoreName:     d.StoreName,
			RevenueChange: d.Change.TotalRevenue,
			ProfitChange:  d.Change.TotalProfit,
		}
		decisive := t.RevenueChange
		if decisive == 0 {
			decisive = t.ProfitChange
		}
		if decisive < 0 {
			declining = append(declining, t)
		} else {
			growing = append(growing, t)
		}
	}

	report := &TrendReport{
		GrowingCount:    len(growing),
		DecliningCount:  len(declining),
		TopGrowing:      topByChange(growing),
		TopDeclining:    topByChange(declining),
		DecliningStores: make([]string, 0, len(declining)),
	}
	for _, t := range declining {
		report.DecliningStores = append(report.DecliningStores, t.StoreName)
	}
	sort.Strings(report.DecliningStores)
	report.Summary = trendSummary(report)
	return report
}

func topByChange(trends []StoreTrend) []StoreTrend {
	ranked := make([]StoreTrend, len(trends))
	copy(ranked, trends)
	sort.Slice(ranked, func(i, j int) bool {
		ai := math.Abs(ranked[i].RevenueChange)
		aj := math.Abs(ranked[j].RevenueChange)
		if ai != aj {
			return ai > aj
		}
		return ranked[i].StoreName < ranked[j].StoreName
	})
	if len(ranked) > 3 {
		ranked = ranked[:3]
	}
	if ranked == nil {
		ranked = []StoreTrend{}
	}
	return ranked
}
