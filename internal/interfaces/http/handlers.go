package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/storepulse/storepulse/internal/domain"
	"github.com/storepulse/storepulse/internal/insights"
	"github.com/storepulse/storepulse/internal/persistence"
)

// ReportCache is the optional response cache in front of the engine.
type ReportCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
}

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handlers serves the insights API. cache and db may be nil; the service
// degrades to uncached operation and a reduced health report.
type Handlers struct {
	engine  *insights.Engine
	repo    persistence.StoreMetricsRepo
	cache   ReportCache
	db      Pinger
	metrics *Metrics
}

// NewHandlers wires the handler dependencies.
func NewHandlers(engine *insights.Engine, repo persistence.StoreMetricsRepo, cache ReportCache, db Pinger, metrics *Metrics) *Handlers {
	return &Handlers{
		engine:  engine,
		repo:    repo,
		cache:   cache,
		db:      db,
		metrics: metrics,
	}
}

// Health handles GET /health.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	checks := map[string]string{}
	status := "ok"

	if h.db != nil {
		if err := h.db.Ping(r.Context()); err != nil {
			checks["database"] = err.Error()
			status = "degraded"
		} else {
			checks["database"] = "ok"
		}
	}

	code := http.StatusOK
	if status != "ok" {
		code = http.StatusServiceUnavailable
	}
	h.writeJSON(w, code, HealthResponse{
		Status:    status,
		Checks:    checks,
		Timestamp: time.Now().UTC(),
	})
}

// Insights handles GET /insights?start=&end=&channel=&compare=.
func (h *Handlers) Insights(w http.ResponseWriter, r *http.Request) {
	window, err := parseWindow(r)
	if err != nil {
		h.writeError(w, r, http.StatusBadRequest, "invalid_window", err.Error())
		return
	}
	compare := r.URL.Query().Get("compare") != "false"

	ctx := r.Context()
	cacheKey := window.Key()
	if !compare {
		cacheKey += ":nocompare"
	}

	if h.cache != nil {
		if cached, found, err := h.cache.Get(ctx, cacheKey); err != nil {
			log.Warn().Err(err).Msg("report cache read failed")
		} else if found {
			h.metrics.CacheHits.Inc()
			w.WriteHeader(http.StatusOK)
			w.Write(cached)
			return
		} else {
			h.metrics.CacheMisses.Inc()
		}
	}

	stores, err := h.repo.CurrentPeriod(ctx, window)
	if err != nil {
		h.writeRepoError(w, r, err)
		return
	}

	var deltas []domain.StoreMetricsDelta
	if compare {
		deltas, err = h.repo.ComparedPeriods(ctx, window)
		if err != nil {
			// The comparison dataset is optional; the report degrades
			// to no trend section.
			log.Warn().Err(err).Msg("comparison query failed, skipping trend analysis")
			deltas = nil
		}
	}

	start := time.Now()
	report, err := h.engine.GenerateInsights(stores, deltas)
	if err != nil {
		h.writeRepoError(w, r, err)
		return
	}
	h.metrics.EngineDuration.Observe(time.Since(start).Seconds())
	h.metrics.StoresAnalyzed.Set(float64(len(stores)))

	body, err := json.Marshal(report)
	if err != nil {
		h.writeError(w, r, http.StatusInternalServerError, "encoding_failed", "failed to serialize report")
		return
	}

	if h.cache != nil {
		if err := h.cache.Set(ctx, cacheKey, body); err != nil {
			log.Warn().Err(err).Msg("report cache write failed")
		}
	}

	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

// NotFound handles unmatched routes.
func (h *Handlers) NotFound(w http.ResponseWriter, r *http.Request) {
	h.writeError(w, r, http.StatusNotFound, "endpoint_not_found", "The requested endpoint does not exist")
}

// parseWindow reads start/end (RFC3339 or YYYY-MM-DD) and channel.
func parseWindow(r *http.Request) (persistence.Window, error) {
	q := r.URL.Query()

	start, err := parseTime(q.Get("start"))
	if err != nil {
		return persistence.Window{}, err
	}
	end, err := parseTime(q.Get("end"))
	if err != nil {
		return persistence.Window{}, err
	}

	window := persistence.Window{
		Start:   start,
		End:     end,
		Channel: q.Get("channel"),
	}
	if err := window.Validate(); err != nil {
		return persistence.Window{}, err
	}
	return window, nil
}

func parseTime(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, errors.New("start and end query parameters are required")
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, errors.New("timestamps must be RFC3339 or YYYY-MM-DD")
	}
	return t, nil
}

// writeRepoError maps data-quality failures to 422 and everything else to
// 502: the engine itself never fails transiently.
func (h *Handlers) writeRepoError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, domain.ErrInvalidMetrics) {
		h.writeError(w, r, http.StatusUnprocessableEntity, "invalid_dataset", err.Error())
		return
	}
	h.writeError(w, r, http.StatusBadGateway, "query_failed", err.Error())
}

func (h *Handlers) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, `{"error":"json_encoding_failed"}`, http.StatusInternalServerError)
	}
}

func (h *Handlers) writeError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	requestID, _ := r.Context().Value(requestIDKey).(string)
	if requestID == "" {
		requestID = "unknown"
	}
	h.writeJSON(w, status, ErrorResponse{
		Error:     http.StatusText(status),
		Message:   message,
		Code:      code,
		RequestID: requestID,
		Timestamp: time.Now().UTC(),
	})
}
