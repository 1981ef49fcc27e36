package insights

import (
	"math"
	"sort"

	"github.com/storepulse/storepulse/internal/domain"
)

// scoreHealth computes a composite 0-100 health score per store. Each raw
// metric is normalized linearly over the fleet's [p5, p95] band (clamped at
// the ends); cost rates score inversely since lower is better. With fewer
// than two stores, or a degenerate band, normalization falls back to a
// constant mid-score of 50.
func scoreHealth(cfg *Config, stores []domain.StoreMetrics) HealthReport {
	report := HealthReport{Scores: make([]HealthScore, 0, len(stores))}
	if len(stores) == 0 {
		report.Summary = healthSummary(report)
		return report
	}

	marginBand := band(stores, marginOf)
	orderBand := band(stores, func(s domain.StoreMetrics) float64 { return float64(s.OrderCount) })
	marketingBand := band(stores, marketingOf)
	deliveryBand := band(stores, deliveryOf)

	degenerate := len(stores) < 2

	scoreSum := 0.0
	for _, s := range stores {
		hs := HealthScore{StoreName: s.StoreName}
		if degenerate {
			hs.PMScore, hs.OCScore, hs.MCScore, hs.DCScore = 50, 50, 50, 50
		} else {
			hs.PMScore = marginBand.normalize(s.ProfitMargin)
			hs.OCScore = orderBand.normalize(float64(s.OrderCount))
			hs.MCScore = 100 - marketingBand.normalize(s.MarketingCostRate)
			hs.DCScore = 100 - deliveryBand.normalize(s.DeliveryCostRate)
		}
		composite := cfg.MarginWeight*hs.PMScore +
			cfg.OrderWeight*hs.OCScore +
			cfg.MarketingWeight*hs.MCScore +
			cfg.DeliveryWeight*hs.DCScore
		hs.HealthScore = math.Round(composite*10) / 10

		switch {
		case hs.HealthScore >= 80:
			report.Distribution.Excellent++
		case hs.HealthScore >= 60:
			report.Distribution.Good++
		case hs.HealthScore >= 40:
			report.Distribution.Average++
		default:
			report.Distribution.Poor++
		}
		scoreSum += hs.HealthScore
		report.Scores = append(report.Scores, hs)
	}

	sort.Slice(report.Scores, func(i, j int) bool {
		if report.Scores[i].HealthScore != report.Scores[j].HealthScore {
			return report.Scores[i].HealthScore > report.Scores[j].HealthScore
		}
		return report.Scores[i].StoreName < report.Scores[j].StoreName
	})
	report.AverageScore = scoreSum / float64(len(stores))
	report.Summary = healthSummary(report)
	return report
}

// scoreBand is the [p5, p95] normalization range for one metric.
type scoreBand struct {
	lo, hi float64
}

func band(stores []domain.StoreMetrics, field func(domain.StoreMetrics) float64) scoreBand {
	values := make([]float64, len(stores))
	for i, s := range stores {
		values[i] = field(s)
	}
	sort.Float64s(values)
	return scoreBand{
		lo: percentile(values, 0.05),
		hi: percentile(values, 0.95),
	}
}

// normalize maps v onto [0, 100] over the band, clamping outside it. A
// collapsed band (all values identical) yields the mid-score.
func (b scoreBand) normalize(v float64) float64 {
	if b.hi == b.lo {
		return 50
	}
	switch {
	case v <= b.lo:
		return 0
	case v >= b.hi:
		return 100
	default:
		return (v - b.lo) / (b.hi - b.lo) * 100
	}
}
