// Package client provides the resilient transport layer beneath the
// iRacing data endpoints: retrying GET execution with a status-code state
// machine, session re-authentication on 401, rate-limit-aware backoff,
// link-indirection resolution, and chunked result aggregation.
package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Sternrassler/iracing-data-client/pkg/auth"
	"github.com/Sternrassler/iracing-data-client/pkg/ratelimit"
)

// DefaultBaseURL is the production members service host.
const DefaultBaseURL = "https://members-ng.iracing.com"

// Prometheus metrics for data requests.
var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "iracing_requests_total",
		Help: "Total data requests by endpoint and status",
	}, []string{"endpoint", "status"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "iracing_request_duration_seconds",
		Help:    "Data request duration in seconds by endpoint",
		Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30},
	}, []string{"endpoint"})

	retriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "iracing_retries_total",
		Help: "Total number of retry attempts by reason",
	}, []string{"reason"})

	retryBackoffSeconds = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "iracing_retry_backoff_seconds",
		Help:    "Backoff duration for retries by reason",
		Buckets: []float64{0.5, 1, 2, 5, 10, 30, 60},
	}, []string{"reason"})

	retryExhaustedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "iracing_retry_exhausted_total",
		Help: "Total number of times retry attempts were exhausted",
	}, []string{"endpoint"})
)

// Client is the resilient data client. It is safe for sequential use; the
// session it wraps serializes the authenticate-then-request sequence, but
// callers issuing concurrent requests through one Client should add their
// own coordination for request ordering.
type Client struct {
	httpClient  *http.Client
	session     *auth.Session
	baseURL     string
	maxAttempts int
	logger      zerolog.Logger
}

// Config holds the client configuration.
type Config struct {
	// Session performs the login handshake and carries the cookie state.
	Session *auth.Session

	// BaseURL overrides the production host, mainly for tests.
	BaseURL string

	// MaxAttempts is the retry budget per request.
	MaxAttempts int
}

// New creates a new data client.
func New(cfg Config) (*Client, error) {
	if cfg.Session == nil {
		return nil, fmt.Errorf("session is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 3
	}

	return &Client{
		// Requests share the session's cookie-jar client so they carry
		// the auth cookie.
		httpClient:  cfg.Session.HTTPClient(),
		session:     cfg.Session,
		baseURL:     cfg.BaseURL,
		maxAttempts: cfg.MaxAttempts,
		logger:      log.With().Str("component", "data-client").Logger(),
	}, nil
}

// BaseURL returns the configured service host.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Get performs an authenticated resilient GET against an absolute URL.
// The caller owns the response body.
func (c *Client) Get(ctx context.Context, rawURL string, query url.Values) (*http.Response, error) {
	return c.get(ctx, rawURL, query, true)
}

// GetUnauthenticated performs a resilient GET without requiring a login
// first. Pre-signed chunk URLs are fetched this way.
func (c *Client) GetUnauthenticated(ctx context.Context, rawURL string, query url.Values) (*http.Response, error) {
	return c.get(ctx, rawURL, query, false)
}

// get runs the per-request state machine. Each call owns a fresh attempt
// counter and a single-use re-login flag; neither leaks across calls.
func (c *Client) get(ctx context.Context, rawURL string, query url.Values, requireAuth bool) (*http.Response, error) {
	if requireAuth {
		if err := c.session.EnsureAuthenticated(ctx); err != nil {
			return nil, err
		}
	}

	target, err := buildURL(rawURL, query)
	if err != nil {
		return nil, &RequestError{URL: rawURL, Err: fmt.Errorf("build request URL: %w", err)}
	}
	endpoint := endpointLabel(target)

	start := time.Now()
	defer func() {
		requestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	}()

	// One re-login per call: a second 401 after re-authentication is a
	// real authorization problem, not a stale session.
	attemptedRelogin := false

	for attempt := 0; attempt < c.maxAttempts; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
		if err != nil {
			return nil, &RequestError{URL: target, Err: fmt.Errorf("create request: %w", err)}
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, &RequestError{URL: target, Err: fmt.Errorf("%w: %v", ErrContextCancelled, ctx.Err())}
			}
			wait := ratelimit.Backoff(attempt, time.Time{})
			c.logger.Warn().
				Err(err).
				Str("endpoint", endpoint).
				Int("attempt", attempt+1).
				Dur("backoff", wait).
				Msg("Request failed, retrying")
			retriesTotal.WithLabelValues("network_error").Inc()
			retryBackoffSeconds.WithLabelValues("network_error").Observe(wait.Seconds())
			if err := c.sleep(ctx, wait); err != nil {
				return nil, &RequestError{URL: target, Err: err}
			}
			continue
		}

		sig := ratelimit.ParseHeaders(resp.Header)
		c.logger.Debug().
			Str("endpoint", endpoint).
			Int("status", resp.StatusCode).
			Time("ratelimit_reset", sig.Reset).
			Int("ratelimit_remaining", sig.Remaining).
			Int("ratelimit_limit", sig.Limit).
			Msg("Data response")

		switch resp.StatusCode {
		case http.StatusOK:
			requestsTotal.WithLabelValues(endpoint, "200").Inc()
			return resp, nil

		case http.StatusUnauthorized:
			resp.Body.Close()
			requestsTotal.WithLabelValues(endpoint, "401").Inc()
			if attemptedRelogin {
				return nil, &RequestError{
					URL:        target,
					StatusCode: http.StatusUnauthorized,
					Message:    "401 repeated after re-login",
				}
			}
			attemptedRelogin = true
			c.session.Invalidate()
			c.logger.Warn().Str("endpoint", endpoint).Msg("401 Unauthorized, re-authenticating")
			if err := c.session.Login(ctx); err != nil {
				return nil, err
			}
			// Retry the same attempt slot; the re-login does not consume
			// retry budget.
			attempt--

		case http.StatusForbidden:
			resp.Body.Close()
			requestsTotal.WithLabelValues(endpoint, "403").Inc()
			c.logger.Error().Str("endpoint", endpoint).Msg("403 Forbidden")
			return nil, &RequestError{
				URL:        target,
				StatusCode: http.StatusForbidden,
				Message:    "forbidden, not retryable",
			}

		case http.StatusTooManyRequests:
			resp.Body.Close()
			requestsTotal.WithLabelValues(endpoint, "429").Inc()
			wait := ratelimit.Backoff(attempt, sig.Reset)
			c.logger.Warn().
				Str("endpoint", endpoint).
				Int("attempt", attempt+1).
				Dur("backoff", wait).
				Msg("429 Rate limited, waiting")
			retriesTotal.WithLabelValues("rate_limited").Inc()
			retryBackoffSeconds.WithLabelValues("rate_limited").Observe(wait.Seconds())
			if err := c.sleep(ctx, wait); err != nil {
				return nil, &RequestError{URL: target, Err: err}
			}

		default:
			resp.Body.Close()
			requestsTotal.WithLabelValues(endpoint, fmt.Sprintf("%d", resp.StatusCode)).Inc()
			return nil, &RequestError{
				URL:        target,
				StatusCode: resp.StatusCode,
				Message:    "unexpected status",
			}
		}
	}

	retryExhaustedTotal.WithLabelValues(endpoint).Inc()
	c.logger.Warn().
		Str("endpoint", endpoint).
		Int("max_attempts", c.maxAttempts).
		Msg("Retry attempts exhausted")
	return nil, &RequestError{
		URL: target,
		Err: fmt.Errorf("%w after %d attempts", ErrRetryExhausted, c.maxAttempts),
	}
}

// sleep waits for the backoff duration or until the context is cancelled.
func (c *Client) sleep(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("%w: %v", ErrContextCancelled, ctx.Err())
	case <-time.After(d):
		return nil
	}
}

// buildURL attaches query parameters to a target URL.
func buildURL(rawURL string, query url.Values) (string, error) {
	if len(query) == 0 {
		return rawURL, nil
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	u.RawQuery = query.Encode()
	return u.String(), nil
}

// endpointLabel reduces a URL to its path for metric labels, keeping the
// cardinality bounded by endpoint rather than by query string.
func endpointLabel(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "invalid"
	}
	return u.Path
}
