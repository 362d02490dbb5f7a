package domain

import (
	"time"

	"github.com/jonboulle/clockwork"
)

// clock is a package-level time source so tests can freeze time via SetClock.
// Production code uses the real clock; tests inject a fake for deterministic output.
var clock = clockwork.NewRealClock()

// SetClock swaps the time source used for evaluation context. Pass nil to
// reset to real time.
func SetClock(c clockwork.Clock) {
	if c == nil {
		clock = clockwork.NewRealClock()
		return
	}
	clock = c
}

// Now returns the current time from the evaluation clock.
func Now() time.Time {
	return clock.Now()
}

// CurrentMonth returns the UTC month used as the suitability evaluation
// context when the caller has no more specific one.
func CurrentMonth() time.Month {
	return clock.Now().UTC().Month()
}
