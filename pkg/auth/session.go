package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Sternrassler/iracing-data-client/pkg/ratelimit"
)

// Prometheus metrics for login attempts.
var (
	loginsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "iracing_logins_total",
		Help: "Total login attempts by outcome",
	}, []string{"outcome"})
)

// DefaultAuthURL is the production login endpoint.
const DefaultAuthURL = "https://members-ng.iracing.com/auth"

// ErrLoginExhausted is returned when every login attempt has been consumed
// without a successful handshake.
var ErrLoginExhausted = errors.New("login attempts exhausted")

// AuthError represents a failed authentication handshake.
type AuthError struct {
	StatusCode int
	// Body contains the raw response body from the server, which may hold
	// more details about the denial.
	Body string
	Err  error
}

// Error implements the error interface.
func (e *AuthError) Error() string {
	var sb strings.Builder
	sb.WriteString("auth error")

	if e.StatusCode != 0 {
		fmt.Fprintf(&sb, ": status code %d", e.StatusCode)
	}
	if e.Body != "" {
		fmt.Fprintf(&sb, ", body: %q", e.Body)
	}
	if e.Err != nil {
		fmt.Fprintf(&sb, ", err: %v", e.Err)
	}

	return sb.String()
}

// Unwrap allows error chaining with errors.Is and errors.As.
func (e *AuthError) Unwrap() error { return e.Err }

// Config holds session configuration.
type Config struct {
	// Email is the member account email address.
	Email string

	// Password is the plaintext account password. It is encoded once at
	// construction and never stored.
	Password string

	// AuthURL is the full login endpoint URL. Defaults to DefaultAuthURL.
	AuthURL string

	// HTTPClient carries the session cookie across requests. When nil, a
	// client with a fresh cookie jar is created.
	HTTPClient *http.Client

	// MaxAttempts is the login retry budget.
	MaxAttempts int

	// StabilizeDelay is the pause after a successful login before the
	// session is reported usable. The service needs a moment before the
	// fresh cookie is accepted on data endpoints.
	StabilizeDelay time.Duration
}

// Session owns the authenticated state shared by every request of one
// client instance. All state transitions happen under a single mutex so a
// 401-triggered re-login cannot race a concurrent caller.
type Session struct {
	mu            sync.Mutex
	authenticated bool

	email      string
	secret     string
	authURL    string
	httpClient *http.Client

	maxAttempts    int
	stabilizeDelay time.Duration
	logger         zerolog.Logger
}

// NewSession creates an unauthenticated session for the given credentials.
func NewSession(cfg Config) (*Session, error) {
	if cfg.Email == "" || cfg.Password == "" {
		return nil, fmt.Errorf("email and password are required")
	}
	if cfg.AuthURL == "" {
		cfg.AuthURL = DefaultAuthURL
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 3
	}
	if cfg.StabilizeDelay <= 0 {
		cfg.StabilizeDelay = 500 * time.Millisecond
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, fmt.Errorf("create cookie jar: %w", err)
		}
		httpClient = &http.Client{
			Jar:     jar,
			Timeout: 30 * time.Second,
		}
	}

	return &Session{
		email:          cfg.Email,
		secret:         EncodePassword(cfg.Email, cfg.Password),
		authURL:        cfg.AuthURL,
		httpClient:     httpClient,
		maxAttempts:    cfg.MaxAttempts,
		stabilizeDelay: cfg.StabilizeDelay,
		logger:         log.With().Str("component", "auth").Logger(),
	}, nil
}

// HTTPClient returns the cookie-jar-backed client the session authenticates.
// Data requests must go through this client so they carry the session cookie.
func (s *Session) HTTPClient() *http.Client {
	return s.httpClient
}

// Authenticated reports whether the session holds a verified login.
func (s *Session) Authenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.authenticated
}

// Invalidate resets the session to unauthenticated. Called when a request
// reports an authentication failure.
func (s *Session) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.authenticated = false
}

// Login performs the authentication handshake, retrying through rate limits
// and transient network failures up to the configured attempt budget.
func (s *Session) Login(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.login(ctx)
}

// EnsureAuthenticated logs in only when the session is not yet
// authenticated.
func (s *Session) EnsureAuthenticated(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.authenticated {
		return nil
	}
	return s.login(ctx)
}

// login runs the per-attempt protocol. Callers must hold s.mu.
func (s *Session) login(ctx context.Context) error {
	body, err := json.Marshal(map[string]string{
		"email":    s.email,
		"password": s.secret,
	})
	if err != nil {
		return &AuthError{Err: fmt.Errorf("marshal login body: %w", err)}
	}

	for attempt := 0; attempt < s.maxAttempts; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.authURL, bytes.NewReader(body))
		if err != nil {
			return &AuthError{Err: fmt.Errorf("create login request: %w", err)}
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := s.httpClient.Do(req)
		if err != nil {
			// Network-level failure: back off and consume the attempt.
			wait := ratelimit.Backoff(attempt, time.Time{})
			s.logger.Warn().
				Err(err).
				Int("attempt", attempt+1).
				Dur("backoff", wait).
				Msg("Login request failed, retrying")
			loginsTotal.WithLabelValues("network_error").Inc()
			if err := sleepCtx(ctx, wait); err != nil {
				return &AuthError{Err: err}
			}
			continue
		}

		sig := ratelimit.ParseHeaders(resp.Header)
		s.logger.Debug().
			Int("status", resp.StatusCode).
			Time("ratelimit_reset", sig.Reset).
			Int("ratelimit_remaining", sig.Remaining).
			Int("ratelimit_limit", sig.Limit).
			Msg("Login response")

		switch {
		case resp.StatusCode == http.StatusTooManyRequests:
			resp.Body.Close()
			wait := ratelimit.Backoff(attempt, sig.Reset)
			s.logger.Warn().
				Int("attempt", attempt+1).
				Dur("backoff", wait).
				Msg("Login rate-limited, waiting")
			loginsTotal.WithLabelValues("rate_limited").Inc()
			if err := sleepCtx(ctx, wait); err != nil {
				return &AuthError{Err: err}
			}

		case resp.StatusCode == http.StatusOK:
			var loginResp map[string]any
			decodeErr := json.NewDecoder(resp.Body).Decode(&loginResp)
			resp.Body.Close()
			if decodeErr != nil {
				return &AuthError{StatusCode: resp.StatusCode, Err: fmt.Errorf("decode login response: %w", decodeErr)}
			}

			if !truthy(loginResp["authcode"]) {
				// Denied or malformed login response, not retryable.
				loginsTotal.WithLabelValues("denied").Inc()
				return &AuthError{
					StatusCode: resp.StatusCode,
					Body:       fmt.Sprintf("%v", loginResp),
					Err:        fmt.Errorf("login response carried no authcode"),
				}
			}

			s.authenticated = true
			loginsTotal.WithLabelValues("success").Inc()
			s.logger.Info().Msg("Session authenticated")

			// The service rejects data requests issued immediately after
			// login; give the fresh session a moment to settle.
			if err := sleepCtx(ctx, s.stabilizeDelay); err != nil {
				return err
			}
			return nil

		default:
			resp.Body.Close()
			loginsTotal.WithLabelValues("unexpected_status").Inc()
			return &AuthError{
				StatusCode: resp.StatusCode,
				Err:        fmt.Errorf("unexpected login status"),
			}
		}
	}

	loginsTotal.WithLabelValues("exhausted").Inc()
	return &AuthError{Err: fmt.Errorf("%w after %d attempts", ErrLoginExhausted, s.maxAttempts)}
}

// truthy mirrors the service contract for the authcode field: present and
// neither false, zero, nor empty.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case float64:
		return t != 0
	default:
		return true
	}
}

// sleepCtx waits for d or until ctx is cancelled.
func sleepCtx(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
