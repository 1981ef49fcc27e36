package insights

import (
	"fmt"
	"math"
	"sort"
)

// generateRecommendations synthesizes prioritized actions from the section
// results. Rules are deterministic; within each priority bucket the
// ordering is affected-store count descending, category name ascending.
func generateRecommendations(cfg *Config, anomalies AnomalyReport, clusters Clusters, attribution AttributionReport, trend *TrendReport) []Recommendation {
	var urgent, important, general []Recommendation

	urgent = append(urgent, anomalyRecommendations(anomalies)...)

	if clusters.Low.Count > 0 {
		important = append(important, Recommendation{
			Priority: PriorityImportant,
			Category: "cluster-strategy",
			Title:    "Lift the low-performance tier",
			Description: fmt.Sprintf("%d store(s) sit in the low-performance tier with a weighted margin of %.1f%%.",
				clusters.Low.Count, clusters.Low.AvgMetrics.ProfitMargin),
			ActionItems: []string{
				"Review pricing and product mix against the high-performance tier",
				"Audit cost rates for the listed stores",
				"Set a margin recovery target for the next period",
			},
			AffectedStores: clusters.Low.Members,
		})
	}

	if trend != nil && trend.DecliningCount > 0 {
		total := trend.GrowingCount + trend.DecliningCount
		if total > 0 && float64(trend.DecliningCount)/float64(total) >= cfg.DecliningShare {
			important = append(important, Recommendation{
				Priority: PriorityImportant,
				Category: "declining-trend",
				Title:    "Reverse the declining revenue trend",
				Description: fmt.Sprintf("%d of %d store(s) declined versus the previous period.",
					trend.DecliningCount, total),
				ActionItems: []string{
					"Compare channel mix between periods for the declining stores",
					"Check for local competition or delivery coverage changes",
				},
				AffectedStores: trend.DecliningStores,
			})
		}
	}

	for _, f := range attribution.Factors {
		if f.Factor != attribution.PrimaryFactor {
			continue
		}
		if math.Abs(f.Correlation) >= cfg.StrongCorrelation && !f.LowConfidence {
			direction := "positively"
			if f.Correlation < 0 {
				direction = "negatively"
			}
			general = append(general, Recommendation{
				Priority: PriorityGeneral,
				Category: "profitability-driver",
				Title:    fmt.Sprintf("Focus on %s", f.Factor),
				Description: fmt.Sprintf("%s correlates %s with profit margin (r=%.2f); it is the strongest candidate driver.",
					f.Factor, direction, f.Correlation),
				ActionItems: []string{
					fmt.Sprintf("Run a controlled adjustment of %s in a small store group", f.Factor),
					"Re-measure the correlation after one full period",
				},
				AffectedStores: []string{},
			})
		}
	}

	sortBucket(urgent)
	sortBucket(important)
	sortBucket(general)

	out := make([]Recommendation, 0, len(urgent)+len(important)+len(general))
	out = append(out, urgent...)
	out = append(out, important...)
	out = append(out, general...)
	return out
}

// anomalyRecommendations emits one urgent recommendation per anomaly
// category that contains a high-severity record, grouped rather than
// per-store. Affected stores list high-severity members first, then by
// name.
func anomalyRecommendations(anomalies AnomalyReport) []Recommendation {
	categories := []struct {
		name    string
		title   string
		records []AnomalyRecord
		actions []string
	}{
		{
			name:    "margin-outlier",
			title:   "Investigate extreme profit margins",
			records: anomalies.ProfitMargin,
			actions: []string{
				"Verify order and cost data quality for the flagged stores",
				"Review pricing changes made during the period",
			},
		},
		{
			name:    "order-volume",
			title:   "Investigate abnormal order volumes",
			records: anomalies.OrderCount,
			actions: []string{
				"Check for tracking gaps or duplicated order feeds",
				"Compare against the previous period's volume",
			},
		},
		{
			name:    "high-marketing-cost",
			title:   "Rein in marketing spend",
			records: anomalies.HighMarketing,
			actions: []string{
				"Pause the worst performing campaigns for the flagged stores",
				"Rebalance budget toward channels with proven return",
			},
		},
		{
			name:    "high-delivery-cost",
			title:   "Reduce delivery cost rate",
			records: anomalies.HighDelivery,
			actions: []string{
				"Renegotiate courier contracts for the flagged stores",
				"Review delivery radius and minimum order thresholds",
			},
		},
	}

	recs := []Recommendation{}
	for _, cat := range categories {
		highCount := 0
		for _, r := range cat.records {
			if r.Severity == SeverityHigh {
				highCount++
			}
		}
		if highCount == 0 {
			continue
		}
		recs = append(recs, Recommendation{
			Priority: PriorityUrgent,
			Category: cat.name,
			Title:    cat.title,
			Description: fmt.Sprintf("%d store(s) flagged, %d at high severity.",
				len(cat.records), highCount),
			ActionItems:    cat.actions,
			AffectedStores: affectedBySeverity(cat.records),
		})
	}
	return recs
}

var severityRank = map[Severity]int{SeverityHigh: 0, SeverityMedium: 1, SeverityLow: 2}

func affectedBySeverity(records []AnomalyRecord) []string {
	ranked := make([]AnomalyRecord, len(records))
	copy(ranked, records)
	sort.Slice(ranked, func(i, j int) bool {
		if severityRank[ranked[i].Severity] != severityRank[ranked[j].Severity] {
			return severityRank[ranked[i].Severity] < severityRank[ranked[j].Severity]
		}
		return ranked[i].StoreName < ranked[j].StoreName
	})
	out := make([]string, len(ranked))
	for i, r := range ranked {
		out[i] = r.StoreName
	}
	return out
}

func sortBucket(recs []Recommendation) {
	sort.Slice(recs, func(i, j int) bool {
		if len(recs[i].AffectedStores) != len(recs[j].AffectedStores) {
			return len(recs[i].AffectedStores) > len(recs[j].AffectedStores)
		}
		return recs[i].Category < recs[j].Category
	})
}
