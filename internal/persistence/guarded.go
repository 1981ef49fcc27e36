package persistence

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker"

	"github.com/storepulse/storepulse/internal/domain"
)

// GuardedRepo wraps a StoreMetricsRepo with a circuit breaker so a
// struggling database fails fast instead of stacking up slow requests
// behind the response budget.
type GuardedRepo struct {
	inner   StoreMetricsRepo
	breaker *gobreaker.CircuitBreaker
}

// NewGuardedRepo wraps inner with a breaker that opens after five
// consecutive failures and probes again after 30 seconds.
func NewGuardedRepo(inner StoreMetricsRepo) *GuardedRepo {
	settings := gobreaker.Settings{
		Name:        "store-metrics-db",
		MaxRequests: 1,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("circuit breaker state change")
		},
	}
	return &GuardedRepo{
		inner:   inner,
		breaker: gobreaker.NewCircuitBreaker(settings),
	}
}

func (g *GuardedRepo) CurrentPeriod(ctx context.Context, window Window) ([]domain.StoreMetrics, error) {
	result, err := g.breaker.Execute(func() (interface{}, error) {
		return g.inner.CurrentPeriod(ctx, window)
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.StoreMetrics), nil
}

func (g *GuardedRepo) ComparedPeriods(ctx context.Context, window Window) ([]domain.StoreMetricsDelta, error) {
	result, err := g.breaker.Execute(func() (interface{}, error) {
		return g.inner.ComparedPeriods(ctx, window)
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.StoreMetricsDelta), nil
}
