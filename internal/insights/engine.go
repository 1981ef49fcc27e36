// Package insights implements the store insights analysis engine: a
// stateless rule-based pipeline turning per-store business metrics into a
// structured diagnostic report. The engine performs no I/O and owns no
// shared mutable state, so concurrent calls need no locking.
package insights

import (
	"fmt"
	"time"

	"github.com/storepulse/storepulse/internal/domain"
)

// Engine is the top-level entry point composing all analyzers into one
// report. The zero-cost construction makes it safe to share across
// requests.
type Engine struct {
	cfg *Config
}

// NewEngine builds an engine with the given thresholds, defaulting when
// cfg is nil.
func NewEngine(cfg *Config) *Engine {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Engine{cfg: cfg}
}

// GenerateInsights runs the full pipeline over an immutable snapshot of
// store metrics. deltas is optional; when nil the trend section and its
// recommendations are skipped. Empty input is a valid state: every section
// returns its documented zero output. Invalid records fail the whole call
// with an error wrapping domain.ErrInvalidMetrics.
func (e *Engine) GenerateInsights(stores []domain.StoreMetrics, deltas []domain.StoreMetricsDelta) (*Report, error) {
	for _, s := range stores {
		if err := s.Validate(); err != nil {
			return nil, fmt.Errorf("rejecting dataset: %w", err)
		}
	}

	overview := buildOverview(stores)
	clusters := clusterStores(stores)
	anomalies := detectAnomalies(e.cfg, stores)
	headTail := compareHeadTail(stores)
	attribution := attributeProfitability(stores)
	health := scoreHealth(e.cfg, stores)
	costs := analyzeCostStructure(stores, anomalies, clusters)

	var trend *TrendReport
	if deltas != nil {
		trend = analyzeTrend(deltas)
	}

	return &Report{
		Overview:        overview,
		Clusters:        clusters,
		Anomalies:       anomalies,
		HeadTail:        headTail,
		Attribution:     attribution,
		Trend:           trend,
		Health:          health,
		CostStructure:   costs,
		Recommendations: generateRecommendations(e.cfg, anomalies, clusters, attribution, trend),
		GeneratedAt:     time.Now().UTC(),
	}, nil
}

// buildOverview computes fleet totals. The weighted margin comes from
// summed profit over summed revenue, never from averaging per-store
// margins.
func buildOverview(stores []domain.StoreMetrics) Overview {
	o := Overview{StoreCount: len(stores)}
	margins := make([]float64, len(stores))
	for i, s := range stores {
		o.TotalOrders += s.OrderCount
		o.TotalRevenue += s.TotalRevenue
		o.TotalProfit += s.TotalProfit
		margins[i] = s.ProfitMargin
	}
	o.WeightedMargin = WeightedRatio(o.TotalProfit, o.TotalRevenue)
	o.MarginStats = Describe(margins)
	o.Summary = overviewSummary(o)
	return o
}
