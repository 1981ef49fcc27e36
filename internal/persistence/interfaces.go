// Package persistence defines the query collaborators that supply the
// analysis engine with its datasets. The engine itself never touches a
// database; these interfaces sit at its boundary.
package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/storepulse/storepulse/internal/domain"
)

// Window scopes a query to a date range and optional sales channel.
type Window struct {
	Start   time.Time
	End     time.Time
	Channel string // empty means all channels
}

// Validate rejects inverted or zero ranges before they reach SQL.
func (w Window) Validate() error {
	if w.Start.IsZero() || w.End.IsZero() {
		return fmt.Errorf("window requires both start and end")
	}
	if !w.End.After(w.Start) {
		return fmt.Errorf("window end %s is not after start %s", w.End.Format(time.RFC3339), w.Start.Format(time.RFC3339))
	}
	return nil
}

// Previous returns the window of equal length immediately before this one,
// used for period-over-period comparison.
func (w Window) Previous() Window {
	span := w.End.Sub(w.Start)
	return Window{
		Start:   w.Start.Add(-span),
		End:     w.Start,
		Channel: w.Channel,
	}
}

// Key is a stable cache key for the window, safe for redis.
func (w Window) Key() string {
	channel := w.Channel
	if channel == "" {
		channel = "all"
	}
	return fmt.Sprintf("insights:%s:%s:%s", w.Start.UTC().Format("20060102T150405"), w.End.UTC().Format("20060102T150405"), channel)
}

// StoreMetricsRepo supplies per-store aggregates for the engine.
type StoreMetricsRepo interface {
	// CurrentPeriod aggregates orders into one StoreMetrics per store.
	CurrentPeriod(ctx context.Context, window Window) ([]domain.StoreMetrics, error)

	// ComparedPeriods aggregates the window and the equal-length window
	// before it, pairing stores present in both periods.
	ComparedPeriods(ctx context.Context, window Window) ([]domain.StoreMetricsDelta, error)
}
