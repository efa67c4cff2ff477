package timeutil_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/rohmanhakim/termdeck/pkg/timeutil"
)

func TestFixedClock(t *testing.T) {
	start := time.Date(2023, 5, 15, 0, 0, 0, 0, time.UTC)
	clock := timeutil.NewFixedClock(start)

	assert.Equal(t, start, clock.Now())
	assert.Equal(t, start, clock.Now(), "fixed clock does not drift")

	clock.Advance(16 * time.Second)
	assert.Equal(t, start.Add(16*time.Second), clock.Now())
}

func TestSystemClock(t *testing.T) {
	clock := timeutil.NewSystemClock()

	before := time.Now()
	got := clock.Now()
	after := time.Now()

	assert.False(t, got.Before(before))
	assert.False(t, got.After(after))
}
