package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidMetrics marks a data-quality failure in an input record. The
// whole analysis call fails rather than producing a misleading ratio.
var ErrInvalidMetrics = errors.New("invalid store metrics")

// StoreMetrics holds one store's aggregated business metrics for a fixed
// date range and channel filter. Records are immutable once constructed and
// owned by a single analysis call.
type StoreMetrics struct {
	StoreName         string  `json:"store_name"`
	OrderCount        int     `json:"order_count"`
	TotalRevenue      float64 `json:"total_revenue"`
	TotalProfit       float64 `json:"total_profit"`
	ProfitMargin      float64 `json:"profit_margin"`       // percent, recomputed from totals
	AOV               float64 `json:"aov"`                 // average order value
	MarketingCostRate float64 `json:"marketing_cost_rate"` // percent of revenue
	DeliveryCostRate  float64 `json:"delivery_cost_rate"`  // percent of revenue
}

// NewStoreMetrics builds a validated record. ProfitMargin and AOV are always
// recomputed from the totals, never trusted from the source row.
func NewStoreMetrics(name string, orderCount int, revenue, profit, marketingRate, deliveryRate float64) (StoreMetrics, error) {
	m := StoreMetrics{
		StoreName:         name,
		OrderCount:        orderCount,
		TotalRevenue:      revenue,
		TotalProfit:       profit,
		MarketingCostRate: marketingRate,
		DeliveryCostRate:  deliveryRate,
	}
	if err := m.Validate(); err != nil {
		return StoreMetrics{}, err
	}
	if revenue > 0 {
		m.ProfitMargin = profit / revenue * 100
	}
	if orderCount > 0 {
		m.AOV = revenue / float64(orderCount)
	}
	return m, nil
}

// Validate rejects records that would make downstream ratios meaningless:
// a negative order count, or a zero-revenue store reporting profit (its
// margin is undefined, not zero).
func (m StoreMetrics) Validate() error {
	if m.StoreName == "" {
		return fmt.Errorf("%w: empty store name", ErrInvalidMetrics)
	}
	if m.OrderCount < 0 {
		return fmt.Errorf("%w: store %q has negative order count %d", ErrInvalidMetrics, m.StoreName, m.OrderCount)
	}
	if m.TotalRevenue == 0 && m.TotalProfit != 0 {
		return fmt.Errorf("%w: store %q has zero revenue but profit %.2f", ErrInvalidMetrics, m.StoreName, m.TotalProfit)
	}
	return nil
}

// ChangeRates holds period-over-period changes. Sum and count fields carry
// percentage change; fields that are already percentages (margin, cost
// rates) carry percentage-point change.
type ChangeRates struct {
	OrderCount        float64 `json:"order_count"`
	TotalRevenue      float64 `json:"total_revenue"`
	TotalProfit       float64 `json:"total_profit"`
	ProfitMargin      float64 `json:"profit_margin"`
	AOV               float64 `json:"aov"`
	MarketingCostRate float64 `json:"marketing_cost_rate"`
	DeliveryCostRate  float64 `json:"delivery_cost_rate"`
}

// StoreMetricsDelta pairs a store's current and previous period metrics.
type StoreMetricsDelta struct {
	StoreName string       `json:"store_name"`
	Current   StoreMetrics `json:"current"`
	Previous  StoreMetrics `json:"previous"`
	Change    ChangeRates  `json:"change"`
}

// NewStoreMetricsDelta derives the change rates from a current/previous
// pair. Both records must already be valid.
func NewStoreMetricsDelta(current, previous StoreMetrics) (StoreMetricsDelta, error) {
	if err := current.Validate(); err != nil {
		return StoreMetricsDelta{}, err
	}
	if err := previous.Validate(); err != nil {
		return StoreMetricsDelta{}, err
	}
	return StoreMetricsDelta{
		StoreName: current.StoreName,
		Current:   current,
		Previous:  previous,
		Change: ChangeRates{
			OrderCount:        pctChange(float64(current.OrderCount), float64(previous.OrderCount)),
			TotalRevenue:      pctChange(current.TotalRevenue, previous.TotalRevenue),
			TotalProfit:       pctChange(current.TotalProfit, previous.TotalProfit),
			ProfitMargin:      current.ProfitMargin - previous.ProfitMargin,
			AOV:               pctChange(current.AOV, previous.AOV),
			MarketingCostRate: current.MarketingCostRate - previous.MarketingCostRate,
			DeliveryCostRate:  current.DeliveryCostRate - previous.DeliveryCostRate,
		},
	}, nil
}

// pctChange returns the percentage change from prev to cur, 0 when there is
// no previous baseline.
func pctChange(cur, prev float64) float64 {
	if prev == 0 {
		return 0
	}
	return (cur - prev) / prev * 100
}
