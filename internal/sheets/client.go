package sheets

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// Names of the five published exports.
const (
	SourceSeats          = "escanos"
	SourceVotes          = "votos"
	SourceStatus         = "estado"
	SourceMunicipalities = "municipios"
	SourceTurnout        = "participacion"
)

// maxBodyBytes caps a single export download.
const maxBodyBytes = 16 << 20

// ErrTooLarge rejects an export over the download cap. A cut-off body would
// otherwise parse as a shorter but valid document.
var ErrTooLarge = errors.New("export exceeds size limit")

// Source is one independently addressed export.
type Source struct {
	Name string
	URL  string
}

// HTTPError is a non-success response from an export URL.
type HTTPError struct {
	Source     string
	StatusCode int
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("fetch %s: HTTP %d", e.Source, e.StatusCode)
}

// Client downloads exports with cache-defeating query parameters so neither
// Google's edge nor an intermediate proxy can serve a stale body.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *slog.Logger
	now        func() time.Time
	maxBody    int64
}

// NewClient creates a rate-limited export client. A nil httpClient gets a 30s
// timeout; a nil limiter disables limiting.
func NewClient(httpClient *http.Client, limiter *rate.Limiter, logger *slog.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	if limiter == nil {
		limiter = rate.NewLimiter(rate.Inf, 0)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		httpClient: httpClient,
		limiter:    limiter,
		logger:     logger,
		now:        time.Now,
		maxBody:    maxBodyBytes,
	}
}

// NewLimiter builds an outbound limiter allowing requestsPerMinute with a
// burst large enough for one full poll cycle.
func NewLimiter(requestsPerMinute, burst int) *rate.Limiter {
	if requestsPerMinute <= 0 {
		return rate.NewLimiter(rate.Inf, 0)
	}
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(float64(requestsPerMinute)/60.0), burst)
}

// Fetch downloads the body of src. The request carries no cookies or
// credentials; the client is built without a jar.
func (c *Client) Fetch(ctx context.Context, src Source) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit wait: %w", err)
	}

	u, err := BustCache(src.URL, c.now())
	if err != nil {
		return "", fmt.Errorf("build url for %s: %w", src.Name, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Pragma", "no-cache")
	req.Header.Set("Accept", "text/csv, text/plain;q=0.9, */*;q=0.1")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("http request %s: %w", src.Name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &HTTPError{Source: src.Name, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody+1))
	if err != nil {
		return "", fmt.Errorf("read %s body: %w", src.Name, err)
	}
	if int64(len(body)) > c.maxBody {
		return "", &ParseError{Source: src.Name, Err: ErrTooLarge}
	}

	c.logger.Debug("Fetched export",
		"source", src.Name,
		"bytes", len(body),
		"duration", time.Since(start).Round(time.Millisecond))
	return string(body), nil
}

// BustCache appends the cache-defeating parameters to raw: a millisecond
// timestamp, a random base-36 token, a UUID and a repeat of the timestamp.
// Existing query parameters are kept.
func BustCache(raw string, now time.Time) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	ts := strconv.FormatInt(now.UnixMilli(), 10)

	q := u.Query()
	q.Set("_t", ts)
	q.Set("_r", randomToken())
	q.Set("_uuid", uuid.NewString())
	q.Set("cachebust", ts)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func randomToken() string {
	return strconv.FormatUint(rand.Uint64(), 36)
}
