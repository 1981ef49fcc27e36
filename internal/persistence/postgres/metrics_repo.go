package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/storepulse/storepulse/internal/domain"
	"github.com/storepulse/storepulse/internal/persistence"
)

// metricsRow is the raw aggregate produced by the orders rollup query.
type metricsRow struct {
	StoreName     string  `db:"store_name"`
	OrderCount    int     `db:"order_count"`
	TotalRevenue  float64 `db:"total_revenue"`
	TotalProfit   float64 `db:"total_profit"`
	MarketingCost float64 `db:"marketing_cost"`
	DeliveryCost  float64 `db:"delivery_cost"`
}

// metricsRepo implements StoreMetricsRepo against an orders table.
type metricsRepo struct {
	db      *sqlx.DB
	timeout time.Duration
}

// NewStoreMetricsRepo creates a PostgreSQL-backed metrics repository.
func NewStoreMetricsRepo(db *sqlx.DB, timeout time.Duration) persistence.StoreMetricsRepo {
	return &metricsRepo{db: db, timeout: timeout}
}

const metricsQuery = `
	SELECT store_name,
	       COUNT(*)            AS order_count,
	       SUM(revenue)        AS total_revenue,
	       SUM(profit)         AS total_profit,
	       SUM(marketing_cost) AS marketing_cost,
	       SUM(delivery_cost)  AS delivery_cost
	FROM orders
	WHERE ordered_at >= $1 AND ordered_at < $2
	  AND ($3 = '' OR channel = $3)
	GROUP BY store_name
	ORDER BY store_name`

// CurrentPeriod aggregates the window into one validated StoreMetrics per
// store. Cost rates are derived from summed costs over summed revenue, so
// they are weighted, not averaged per order.
func (r *metricsRepo) CurrentPeriod(ctx context.Context, window persistence.Window) ([]domain.StoreMetrics, error) {
	if err := window.Validate(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var rows []metricsRow
	if err := r.db.SelectContext(ctx, &rows, metricsQuery, window.Start, window.End, window.Channel); err != nil {
		return nil, fmt.Errorf("failed to aggregate store metrics: %w", err)
	}

	stores := make([]domain.StoreMetrics, 0, len(rows))
	for _, row := range rows {
		m, err := row.toMetrics()
		if err != nil {
			return nil, err
		}
		stores = append(stores, m)
	}
	return stores, nil
}

// ComparedPeriods aggregates the window and the equal-length window before
// it, emitting a delta for every store present in both periods.
func (r *metricsRepo) ComparedPeriods(ctx context.Context, window persistence.Window) ([]domain.StoreMetricsDelta, error) {
	current, err := r.CurrentPeriod(ctx, window)
	if err != nil {
		return nil, err
	}
	previous, err := r.CurrentPeriod(ctx, window.Previous())
	if err != nil {
		return nil, err
	}

	prevByName := make(map[string]domain.StoreMetrics, len(previous))
	for _, p := range previous {
		prevByName[p.StoreName] = p
	}

	deltas := make([]domain.StoreMetricsDelta, 0, len(current))
	for _, c := range current {
		p, ok := prevByName[c.StoreName]
		if !ok {
			continue // new store, nothing to compare against
		}
		d, err := domain.NewStoreMetricsDelta(c, p)
		if err != nil {
			return nil, err
		}
		deltas = append(deltas, d)
	}
	return deltas, nil
}

func (row metricsRow) toMetrics() (domain.StoreMetrics, error) {
	marketingRate := 0.0
	deliveryRate := 0.0
	if row.TotalRevenue > 0 {
		marketingRate = row.MarketingCost / row.TotalRevenue * 100
		deliveryRate = row.DeliveryCost / row.TotalRevenue * 100
	}
	m, err := domain.NewStoreMetrics(row.StoreName, row.OrderCount, row.TotalRevenue, row.TotalProfit, marketingRate, deliveryRate)
	if err != nil {
		return domain.StoreMetrics{}, fmt.Errorf("store %q failed validation: %w", row.StoreName, err)
	}
	return m, nil
}
