package ratelimit

import (
	"testing"
	"time"
)

func TestBackoff_ResetInFuture(t *testing.T) {
	reset := time.Now().Add(10 * time.Second)

	wait := Backoff(0, reset)

	// Expect roughly (reset - now) + 500ms pad.
	if wait < 9*time.Second || wait > 11*time.Second {
		t.Errorf("Backoff = %v, want ~10.5s", wait)
	}
}

func TestBackoff_ResetInPastClampsToFloor(t *testing.T) {
	tests := []struct {
		name  string
		reset time.Time
	}{
		{"reset already passed", time.Now().Add(-30 * time.Second)},
		{"reset imminent", time.Now().Add(100 * time.Millisecond)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if wait := Backoff(0, tt.reset); wait != MinBackoff {
				t.Errorf("Backoff = %v, want floor %v", wait, MinBackoff)
			}
		})
	}
}

func TestBackoff_ExponentialRange(t *testing.T) {
	for attempt := 0; attempt <= 4; attempt++ {
		base := time.Duration(1<<uint(attempt)) * time.Second

		wait := Backoff(attempt, time.Time{})

		if wait < base || wait > base+time.Second {
			t.Errorf("attempt %d: Backoff = %v, want in [%v, %v]",
				attempt, wait, base, base+time.Second)
		}
	}
}

func TestBackoff_ExponentialCap(t *testing.T) {
	for attempt := 6; attempt <= 20; attempt++ {
		if wait := Backoff(attempt, time.Time{}); wait > MaxBackoff {
			t.Errorf("attempt %d: Backoff = %v exceeds cap %v", attempt, wait, MaxBackoff)
		}
	}
}

func TestBackoff_JitterVaries(t *testing.T) {
	seen := map[time.Duration]bool{}
	for i := 0; i < 20; i++ {
		seen[Backoff(2, time.Time{})] = true
	}

	// With sub-second jitter, 20 draws landing on one value means the
	// jitter is not being applied.
	if len(seen) == 1 {
		t.Error("expected jitter to vary backoff values, all 20 draws identical")
	}
}
