package ratelimit

import (
	"math/rand"
	"time"
)

// Backoff bounds.
const (
	// MinBackoff is the floor for every computed wait.
	MinBackoff = 1 * time.Second

	// MaxBackoff caps the exponential fallback path. The reset-driven path
	// is not capped: waiting past the window is the only correct move.
	MaxBackoff = 60 * time.Second

	// resetPad absorbs clock skew between client and server when waiting
	// for a rate-limit window to end.
	resetPad = 500 * time.Millisecond
)

// Backoff computes how long to wait before retrying a request.
//
// When the server supplied a reset timestamp, the wait runs until that
// instant plus a small pad, with a 1s floor. Otherwise it falls back to
// exponential growth with jitter so that independent clients do not retry
// in lockstep.
func Backoff(attempt int, reset time.Time) time.Duration {
	if !reset.IsZero() {
		wait := time.Until(reset) + resetPad
		if wait < MinBackoff {
			return MinBackoff
		}
		return wait
	}

	// 2^attempt seconds plus up to one second of jitter, capped at 60s.
	if attempt > 6 {
		attempt = 6 // 2^6 already exceeds the cap
	}
	wait := time.Duration(1<<uint(attempt))*time.Second +
		time.Duration(rand.Float64()*float64(time.Second))
	if wait > MaxBackoff {
		return MaxBackoff
	}
	return wait
}
