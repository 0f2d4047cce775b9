// Package search implements the listing search engine and the job alert
// matcher: filter parsing, safe sort resolution, category expansion,
// query composition and pagination.
package search

import "time"

// Clock supplies the current time for promotional-flag expiry checks.
// Injected so tests can pin "now" against fixture timestamps.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock is the wall clock used outside of tests.
var SystemClock Clock = systemClock{}

// FixedClock is a Clock stuck at one instant, for tests.
type FixedClock struct {
	Time time.Time
}

// Now returns the pinned instant.
func (f FixedClock) Now() time.Time { return f.Time }
