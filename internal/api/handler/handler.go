// Package handler provides HTTP handlers for all API endpoints.
// Handlers read the poller's current snapshot and never trigger fetches
// themselves, except through the refresh endpoint which only signals the
// poller. Rendered responses are cached per snapshot.
package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/albapepper/elecciones-aragon/internal/api/respond"
	"github.com/albapepper/elecciones-aragon/internal/cache"
	"github.com/albapepper/elecciones-aragon/internal/config"
	"github.com/albapepper/elecciones-aragon/internal/poller"
	"github.com/albapepper/elecciones-aragon/internal/results"
)

// SnapshotSource is the part of the poller the handlers use.
type SnapshotSource interface {
	Current() *results.Snapshot
	Status() poller.Status
	Notify(trigger poller.Trigger) bool
}

// Handler holds shared dependencies for all endpoint handlers.
type Handler struct {
	source SnapshotSource
	cache  *cache.Cache
	cfg    *config.Config
	logger *slog.Logger
	now    func() time.Time
}

// New creates a Handler with shared dependencies.
func New(source SnapshotSource, c *cache.Cache, cfg *config.Config, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		source: source,
		cache:  c,
		cfg:    cfg,
		logger: logger,
		now:    time.Now,
	}
}

func (h *Handler) timestamp() string {
	return h.now().UTC().Format(time.RFC3339)
}

// Root serves API info at /.
// @Summary API root info
// @Description Returns API name, version, status and the chamber being tracked.
// @Tags meta
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	respond.WriteStatus(w, http.StatusOK, map[string]interface{}{
		"name":        "Elecciones Aragón API",
		"version":     "1.0.0",
		"status":      "running",
		"docs":        h.cfg.BasePath + "/docs",
		"total_seats": h.cfg.TotalSeats,
		"majority":    h.cfg.MajoritySeats,
		"poll_every":  h.cfg.PollInterval.String(),
	})
}

// HealthCheck returns basic health status.
// @Summary Health check
// @Description Returns basic health status and timestamp.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respond.WriteStatus(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": h.timestamp(),
	})
}

// HealthCheckPoller reports the state of the polling pipeline.
// @Summary Poller health check
// @Description Reports whether a snapshot has been published and the outcome of the latest refresh. Unhealthy until the first successful load.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health/poller [get]
func (h *Handler) HealthCheckPoller(w http.ResponseWriter, r *http.Request) {
	st := h.source.Status()
	status, code := "healthy", http.StatusOK
	switch {
	case !st.Ready:
		status, code = "unhealthy", http.StatusServiceUnavailable
	case st.LastError != "":
		status = "degraded"
	}
	respond.WriteStatus(w, code, map[string]interface{}{
		"status":    status,
		"poller":    st,
		"timestamp": h.timestamp(),
	})
}

// HealthCheckCache returns cache statistics.
// @Summary Cache health check
// @Description Returns response cache statistics for the current snapshot.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health/cache [get]
func (h *Handler) HealthCheckCache(w http.ResponseWriter, r *http.Request) {
	respond.WriteStatus(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"cache":     h.cache.Stats(),
		"timestamp": h.timestamp(),
	})
}
