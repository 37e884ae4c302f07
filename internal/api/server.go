package api

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	corslib "github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/albapepper/elecciones-aragon/internal/api/handler"
	"github.com/albapepper/elecciones-aragon/internal/cache"
	"github.com/albapepper/elecciones-aragon/internal/config"
)

// NewRouter creates and configures the Chi router with all middleware and routes.
// When cfg.BasePath is set every route is mounted below it.
func NewRouter(source handler.SnapshotSource, appCache *cache.Cache, cfg *config.Config, logger *slog.Logger) *chi.Mux {
	r := chi.NewRouter()

	// --- Middleware stack ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(TimingMiddleware)
	r.Use(middleware.Compress(5)) // gzip

	// CORS
	c := corslib.New(corslib.Options{
		AllowedOrigins:   cfg.CORSAllowOrigins,
		AllowedMethods:   []string{"GET", "HEAD", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Accept-Encoding", "Content-Type", "If-None-Match", "Cache-Control"},
		ExposedHeaders:   []string{"X-Process-Time", "X-Cache", "X-Load-ID", "ETag"},
		AllowCredentials: false,
	})
	r.Use(c.Handler)

	// Rate limiting
	if cfg.RateLimitEnabled {
		r.Use(RateLimitMiddleware(cfg.RateLimitRequests, cfg.RateLimitWindow))
	}

	// --- Handler dependencies ---
	h := handler.New(source, appCache, cfg, logger)

	// --- Routes ---
	routes := func(r chi.Router) {
		// Root
		r.Get("/", h.Root)

		// Health checks
		r.Route("/health", func(r chi.Router) {
			r.Get("/", h.HealthCheck)
			r.Get("/poller", h.HealthCheckPoller)
			r.Get("/cache", h.HealthCheckCache)
		})

		// Swagger UI
		r.Get("/docs/*", httpSwagger.Handler(
			httpSwagger.URL(cfg.BasePath+"/docs/doc.json"),
		))

		// API v1 routes
		r.Route("/api/v1", func(r chi.Router) {
			// Seats and votes
			r.Get("/snapshot", h.GetSnapshot)
			r.Get("/seats", h.GetSeats)
			r.Get("/seats/display", h.GetDisplayedSeats)
			r.Get("/votes", h.GetVotes)
			r.Get("/status", h.GetCountStatus)
			r.Get("/hemicycle", h.GetHemicycle)

			// Map
			r.Get("/municipalities", h.GetMunicipalities)
			r.Get("/municipalities/{province}/{name}", h.GetMunicipality)

			// Turnout
			r.Get("/turnout", h.GetTurnout)
			r.Get("/participation", h.GetParticipation)

			// Refresh triggers
			r.Post("/refresh", h.Refresh)
		})
	}

	if cfg.BasePath != "" {
		r.Route(cfg.BasePath, routes)
	} else {
		routes(r)
	}
	return r
}
