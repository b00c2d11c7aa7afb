// Package clock is the time source shared by the limiters and their background
// tasks. Production code uses the real monotonic clock; tests inject a fake one
// and advance it explicitly instead of sleeping.
package clock

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
)

// Clock supplies "now" readings and timers.
type Clock = clockwork.Clock

// Fake is a Clock that only moves when advanced.
type Fake = *clockwork.FakeClock

// New returns the real clock. Readings carry Go's monotonic component, so
// elapsed-time arithmetic is immune to wall-clock adjustments.
func New() Clock {
	return clockwork.NewRealClock()
}

// NewFake returns a fake clock starting at a fixed instant.
func NewFake() Fake {
	return clockwork.NewFakeClockAt(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
}

// WaitForTimers blocks until n timers are pending on clk or the timeout
// elapses, whichever comes first.
func WaitForTimers(clk Fake, n int, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return clk.BlockUntilContext(ctx, n)
}
