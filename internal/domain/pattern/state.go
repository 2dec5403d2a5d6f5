// Package pattern models detected behavioral patterns and their 30-day
// time-to-live.
//
// A pattern's expiry is fixed at detection and never extended; pinning makes
// a pattern immune to TTL dismissal. The TTL pass is a pure function over
// projected state with an explicit reference time, not an event.
package pattern

import "time"

// TTL is the fixed window after which an unpinned pattern is auto-dismissed.
const TTL = 30 * 24 * time.Hour

// Pattern is a detected correlation surfaced to the user.
type Pattern struct {
	ID          string
	Type        string
	Correlation string
	Confidence  float64
	Headline    string
	Subtext     string
	DetectedAt  time.Time
	SurfacedAt  time.Time
	PinnedAt    time.Time
	DismissedAt time.Time
	ExpiresAt   time.Time
}

// State holds the pattern projection for one user.
type State struct {
	Patterns map[string]Pattern
}

// InitialState returns the empty pattern state.
func InitialState() State {
	return State{}
}

// Active returns patterns that are neither dismissed nor past expiry at now.
// Pinned patterns never expire.
func Active(state State, now time.Time) []Pattern {
	var active []Pattern
	for _, p := range ApplyTTL(state, now).Patterns {
		if p.DismissedAt.IsZero() {
			active = append(active, p)
		}
	}
	return active
}

// ApplyTTL dismisses, at now, every pattern whose expiry has passed and that
// is neither pinned nor already dismissed. It is a pure pass: running it
// twice at the same now yields the same dismissed set.
func ApplyTTL(state State, now time.Time) State {
	if len(state.Patterns) == 0 {
		return state
	}
	swept := make(map[string]Pattern, len(state.Patterns))
	for id, p := range state.Patterns {
		if p.DismissedAt.IsZero() && p.PinnedAt.IsZero() && !p.ExpiresAt.IsZero() && !p.ExpiresAt.After(now) {
			p.DismissedAt = now
		}
		swept[id] = p
	}
	state.Patterns = swept
	return state
}
