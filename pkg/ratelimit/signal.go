// Package ratelimit parses the iRacing rate-limit response headers and
// computes retry backoff. It monitors x-ratelimit-reset to wait out the
// current window instead of hammering a throttled endpoint.
package ratelimit

import (
	"net/http"
	"strconv"
	"time"
)

// Header names sent by the members service on every response.
const (
	HeaderReset     = "x-ratelimit-reset"
	HeaderRemaining = "x-ratelimit-remaining"
	HeaderLimit     = "x-ratelimit-limit"
)

// Signal is the rate-limit metadata of a single response.
// Reset drives backoff decisions; Remaining and Limit are log-only.
// A Signal is transient and is never stored between requests.
type Signal struct {
	// Reset is the instant the current rate-limit window ends.
	// Zero when the header was absent.
	Reset time.Time

	// Remaining is the number of requests left in the window, -1 if unknown.
	Remaining int

	// Limit is the window size, -1 if unknown.
	Limit int
}

// HasReset reports whether the server supplied a reset timestamp.
func (s Signal) HasReset() bool {
	return !s.Reset.IsZero()
}

// ParseHeaders extracts the rate-limit signal from response headers.
// Missing or malformed headers degrade to the zero/unknown values.
func ParseHeaders(headers http.Header) Signal {
	sig := Signal{Remaining: -1, Limit: -1}

	if v := headers.Get(HeaderReset); v != "" {
		if secs, err := strconv.ParseInt(v, 10, 64); err == nil {
			sig.Reset = time.Unix(secs, 0)
		}
	}
	if v := headers.Get(HeaderRemaining); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			sig.Remaining = n
		}
	}
	if v := headers.Get(HeaderLimit); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			sig.Limit = n
		}
	}

	return sig
}
