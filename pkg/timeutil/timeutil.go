package timeutil

import "time"

// Clock abstracts away the wall clock so that time-gated behavior
// (such as interval-based cache flushing) can be tested without sleeping.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the real wall clock.
type SystemClock struct{}

func NewSystemClock() SystemClock {
	return SystemClock{}
}

func (SystemClock) Now() time.Time {
	return time.Now()
}

// FixedClock always reports the instant it was last set to.
type FixedClock struct {
	now time.Time
}

func NewFixedClock(now time.Time) *FixedClock {
	return &FixedClock{now: now}
}

func (f *FixedClock) Now() time.Time {
	return f.now
}

// Advance moves the fixed clock forward by d.
func (f *FixedClock) Advance(d time.Duration) {
	f.now = f.now.Add(d)
}
