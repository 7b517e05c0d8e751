package ratelimit

import "time"

// Clock abstracts time so limiter tests can drive refills deterministically.
type Clock interface {
	Now() time.Time
}

// RealClock reads the wall clock.
type RealClock struct{}

// Now returns the current time.
func (RealClock) Now() time.Time { return time.Now() }

var _ Clock = RealClock{}
