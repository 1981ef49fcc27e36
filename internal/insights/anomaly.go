package insights

import (
	"fmt"
	"math"

	"github.com/storepulse/storepulse/internal/domain"
)

// detectAnomalies runs the three sub-detectors and unions their results by
// category. A store may appear in more than one category; it counts once
// toward TotalAnomalyStores.
func detectAnomalies(cfg *Config, stores []domain.StoreMetrics) AnomalyReport {
	report := AnomalyReport{
		ProfitMargin:  detectMarginOutliers(cfg, stores),
		OrderCount:    detectOrderOutliers(cfg, stores),
		HighMarketing: detectRateBreaches(stores, "marketing cost rate", cfg.MarketingRateWarn, cfg.MarketingRateHigh, func(s domain.StoreMetrics) float64 { return s.MarketingCostRate }),
		HighDelivery:  detectRateBreaches(stores, "delivery cost rate", cfg.DeliveryRateWarn, cfg.DeliveryRateHigh, func(s domain.StoreMetrics) float64 { return s.DeliveryCostRate }),
	}

	distinct := map[string]struct{}{}
	for _, recs := range [][]AnomalyRecord{report.ProfitMargin, report.OrderCount, report.HighMarketing, report.HighDelivery} {
		for _, r := range recs {
			distinct[r.StoreName] = struct{}{}
		}
	}
	report.TotalAnomalyStores = len(distinct)
	report.Summary = anomalySummary(report)
	return report
}

// detectMarginOutliers flags stores whose profit margin sits more than
// ZScoreFlag standard deviations from the mean. When the margin spread has
// zero std every z is 0 and nothing is flagged.
func detectMarginOutliers(cfg *Config, stores []domain.StoreMetrics) []AnomalyRecord {
	margins := make([]float64, len(stores))
	for i, s := range stores {
		margins[i] = s.ProfitMargin
	}
	stats := Describe(margins)

	records := []AnomalyRecord{}
	for _, s := range stores {
		z := 0.0
		if stats.Std > 0 {
			z = (s.ProfitMargin - stats.Mean) / stats.Std
		}
		if math.Abs(z) <= cfg.ZScoreFlag {
			continue
		}
		severity := SeverityMedium
		if math.Abs(z) > cfg.ZScoreHigh {
			severity = SeverityHigh
		}
		records = append(records, AnomalyRecord{
			StoreName: s.StoreName,
			Value:     s.ProfitMargin,
			Threshold: cfg.ZScoreFlag,
			Severity:  severity,
			Message: fmt.Sprintf("%s: profit margin %.1f%% is %.1f standard deviations from the fleet mean %.1f%%",
				s.StoreName, s.ProfitMargin, z, stats.Mean),
		})
	}
	return records
}

// detectOrderOutliers flags order counts outside the Tukey fences
// [Q1 - k*IQR, Q3 + k*IQR].
func detectOrderOutliers(cfg *Config, stores []domain.StoreMetrics) []AnomalyRecord {
	counts := make([]float64, len(stores))
	for i, s := range stores {
		counts[i] = float64(s.OrderCount)
	}
	stats := Describe(counts)

	iqr := stats.P75 - stats.P25
	lower := stats.P25 - cfg.IQRMultiplier*iqr
	upper := stats.P75 + cfg.IQRMultiplier*iqr

	records := []AnomalyRecord{}
	for _, s := range stores {
		v := float64(s.OrderCount)
		if v >= lower && v <= upper {
			continue
		}
		threshold := upper
		direction := "above"
		if v < lower {
			threshold = lower
			direction = "below"
		}
		records = append(records, AnomalyRecord{
			StoreName: s.StoreName,
			Value:     v,
			Threshold: threshold,
			Severity:  SeverityMedium,
			Message: fmt.Sprintf("%s: order count %d is %s the IQR fence %.1f",
				s.StoreName, s.OrderCount, direction, threshold),
		})
	}
	return records
}

// detectRateBreaches flags stores whose cost rate exceeds a fixed warn
// threshold, escalating to high severity past the high threshold.
func detectRateBreaches(stores []domain.StoreMetrics, label string, warn, high float64, rate func(domain.StoreMetrics) float64) []AnomalyRecord {
	records := []AnomalyRecord{}
	for _, s := range stores {
		v := rate(s)
		if v <= warn {
			continue
		}
		severity := SeverityMedium
		if v > high {
			severity = SeverityHigh
		}
		records = append(records, AnomalyRecord{
			StoreName: s.StoreName,
			Value:     v,
			Threshold: warn,
			Severity:  severity,
			Message: fmt.Sprintf("%s: %s %.1f%% exceeds the %.1f%% threshold",
				s.StoreName, label, v, warn),
		})
	}
	return records
}
