// Package config provides centralized configuration loaded from environment
// variables. Shared by both cmd/api and cmd/ingest.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/albapepper/elecciones-aragon/internal/poller"
	"github.com/albapepper/elecciones-aragon/internal/sheets"
	"github.com/albapepper/elecciones-aragon/internal/views"
)

// --------------------------------------------------------------------------
// Published sheet exports
// --------------------------------------------------------------------------

const (
	sheetsBookA = "https://docs.google.com/spreadsheets/d/e/2PACX-1vRZMjykDggme0HIzUK4C3zzI795JBg1JxVPXxvpNCK5bK39Q6S9qqKcpPuAbYRXi9pPYADuM-3Q2Qsk/pub"
	sheetsBookB = "https://docs.google.com/spreadsheets/d/e/2PACX-1vRTfSc7iiZ_v6A3p77NS6-ebgfWz_sKcE3pIilAOACBjmHdRI1teGlTlXBR3agtmYZtRpVTP5RcdP17/pub"

	DefaultSeatsURL          = sheetsBookA + "?gid=877884979&single=true&output=csv"
	DefaultVotesURL          = sheetsBookB + "?gid=1329011177&single=true&output=csv"
	DefaultStatusURL         = sheetsBookA + "?gid=1181648817&single=true&output=csv"
	DefaultMunicipalitiesURL = sheetsBookB + "?gid=1638668905&single=true&output=csv"
	DefaultTurnoutURL        = sheetsBookA + "?gid=1075967663&single=true&output=csv"
)

// --------------------------------------------------------------------------
// Config struct, populated from environment variables
// --------------------------------------------------------------------------

type Config struct {
	// Sources
	SeatsURL          string
	VotesURL          string
	StatusURL         string
	MunicipalitiesURL string
	TurnoutURL        string

	// Polling
	PollInterval           time.Duration
	FetchTimeout           time.Duration
	FetchRequestsPerMinute int

	// Chamber
	TotalSeats    int
	MajoritySeats int

	// API server
	APIHost     string
	APIPort     int
	Environment string // development, staging, production
	Debug       bool
	BasePath    string

	// CORS
	CORSAllowOrigins []string

	// Rate limiting
	RateLimitEnabled  bool
	RateLimitRequests int
	RateLimitWindow   time.Duration

	// Cache
	CacheEnabled bool
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (*Config, error) {
	cfg := &Config{
		SeatsURL:          envOr("SHEET_URL_ESCANOS", DefaultSeatsURL),
		VotesURL:          envOr("SHEET_URL_VOTOS", DefaultVotesURL),
		StatusURL:         envOr("SHEET_URL_ESTADO", DefaultStatusURL),
		MunicipalitiesURL: envOr("SHEET_URL_MUNICIPIOS", DefaultMunicipalitiesURL),
		TurnoutURL:        envOr("SHEET_URL_PARTICIPACION", DefaultTurnoutURL),

		PollInterval:           envDuration("POLL_INTERVAL_SECONDS", poller.DefaultInterval),
		FetchTimeout:           envDuration("FETCH_TIMEOUT_SECONDS", 30*time.Second),
		FetchRequestsPerMinute: envInt("FETCH_REQUESTS_PER_MINUTE", 120),

		TotalSeats:    envInt("TOTAL_SEATS", views.DefaultTotalSeats),
		MajoritySeats: envInt("MAJORITY_SEATS", views.DefaultMajority),

		APIHost:     envOr("API_HOST", "0.0.0.0"),
		APIPort:     envInt("API_PORT", envInt("PORT", 8000)),
		Environment: envOr("ENVIRONMENT", "development"),
		Debug:       envBool("DEBUG", false),
		BasePath:    strings.TrimRight(envOr("BASE_PATH", ""), "/"),

		CORSAllowOrigins: envList("CORS_ALLOW_ORIGINS", []string{
			"http://localhost:3000",
			"http://localhost:4321",
			"http://localhost:5173",
		}),

		RateLimitEnabled:  envBool("RATE_LIMIT_ENABLED", true),
		RateLimitRequests: envInt("RATE_LIMIT_REQUESTS", 100),
		RateLimitWindow:   envDuration("RATE_LIMIT_WINDOW", 60*time.Second),

		CacheEnabled: envBool("CACHE_ENABLED", true),
	}

	if cfg.TotalSeats <= 0 {
		return nil, fmt.Errorf("TOTAL_SEATS must be positive, got %d", cfg.TotalSeats)
	}
	if cfg.MajoritySeats <= 0 || cfg.MajoritySeats > cfg.TotalSeats {
		return nil, fmt.Errorf("MAJORITY_SEATS must be between 1 and %d, got %d", cfg.TotalSeats, cfg.MajoritySeats)
	}
	for name, u := range map[string]string{
		"SHEET_URL_ESCANOS":       cfg.SeatsURL,
		"SHEET_URL_VOTOS":         cfg.VotesURL,
		"SHEET_URL_ESTADO":        cfg.StatusURL,
		"SHEET_URL_MUNICIPIOS":    cfg.MunicipalitiesURL,
		"SHEET_URL_PARTICIPACION": cfg.TurnoutURL,
	} {
		if !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://") {
			return nil, fmt.Errorf("%s must be an http(s) URL, got %q", name, u)
		}
	}
	return cfg, nil
}

// Sources returns the five exports as poller sources.
func (c *Config) Sources() poller.Sources {
	return poller.Sources{
		Seats:          sheets.Source{Name: sheets.SourceSeats, URL: c.SeatsURL},
		Votes:          sheets.Source{Name: sheets.SourceVotes, URL: c.VotesURL},
		Status:         sheets.Source{Name: sheets.SourceStatus, URL: c.StatusURL},
		Municipalities: sheets.Source{Name: sheets.SourceMunicipalities, URL: c.MunicipalitiesURL},
		Turnout:        sheets.Source{Name: sheets.SourceTurnout, URL: c.TurnoutURL},
	}
}

// Hemicycle returns the chart geometry for the configured chamber.
func (c *Config) Hemicycle() views.HemicycleConfig {
	h := views.DefaultHemicycleConfig()
	h.TotalSeats = c.TotalSeats
	h.Majority = c.MajoritySeats
	return h
}

// --------------------------------------------------------------------------
// Env helpers
// --------------------------------------------------------------------------

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

// envDuration reads a whole number of seconds.
func envDuration(key string, fallback time.Duration) time.Duration {
	if n := envInt(key, 0); n > 0 {
		return time.Duration(n) * time.Second
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return fallback
}

func envList(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return fallback
}
