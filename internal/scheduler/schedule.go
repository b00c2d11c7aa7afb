package scheduler

import (
	"math"
	"time"

	"github.com/robfig/cron/v3"
)

// ensure that FixedRate can drive a cron.Cron as well as a Task
var _ cron.Schedule = &FixedRate{}

// FixedRate is a schedule of evenly spaced instants anchored at an origin.
//
// The k-th instant (k >= 1) is origin + round(k * interval), with the interval
// kept in fractional nanoseconds. Each instant is off by at most half a
// nanosecond from the ideal one and the error never carries over to the next,
// so a rate that does not divide a second evenly (e.g. 3/s) still produces
// exactly that many instants per second over any long run.
type FixedRate struct {
	origin   time.Time
	interval float64 // nanoseconds
}

// minInterval keeps Next finite: instants must be strictly increasing.
const minInterval = float64(time.Nanosecond)

// Every returns a schedule firing every period, starting one period after origin.
// Periods shorter than a nanosecond are raised to one.
func Every(origin time.Time, period time.Duration) *FixedRate {
	return newFixedRate(origin, float64(period))
}

// Rate returns a schedule firing perSecond times a second, starting one
// interval after origin. Rates above one per nanosecond, including +Inf, are
// capped at one per nanosecond.
func Rate(origin time.Time, perSecond float64) *FixedRate {
	return newFixedRate(origin, float64(time.Second)/perSecond)
}

func newFixedRate(origin time.Time, interval float64) *FixedRate {
	// also catches NaN
	if !(interval >= minInterval) {
		interval = minInterval
	}
	return &FixedRate{origin: origin, interval: interval}
}

// Interval returns the nominal spacing between instants, rounded to the
// nearest nanosecond.
func (s *FixedRate) Interval() time.Duration {
	return time.Duration(math.Round(s.interval))
}

// At returns the k-th instant of the schedule.
func (s *FixedRate) At(k int64) time.Time {
	return s.origin.Add(time.Duration(math.Round(float64(k) * s.interval)))
}

// Next returns the first instant strictly after t.
func (s *FixedRate) Next(t time.Time) time.Time {
	if !t.After(s.origin) {
		return s.At(1)
	}

	k := int64(float64(t.Sub(s.origin))/s.interval) + 1
	// the float estimate can be one off in either direction
	for k > 1 && s.At(k-1).After(t) {
		k--
	}
	for !s.At(k).After(t) {
		k++
	}
	return s.At(k)
}
