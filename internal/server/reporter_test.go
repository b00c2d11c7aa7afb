package server

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/atomic"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/momahgoub172/rate-limiting-algorithms/internal/clock"
)

type fakeStats struct {
	admitted  atomic.Int64
	throttled atomic.Int64
}

func (f *fakeStats) Snapshot() (int64, int64) {
	return f.admitted.Load(), f.throttled.Load()
}

func TestReporter_ReportsDeltas(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	stats := &fakeStats{}
	r := NewReporter(clock.NewFake(), stats, time.Minute, zap.New(core))

	stats.admitted.Store(10)
	stats.throttled.Store(4)
	r.report()

	stats.admitted.Store(15)
	stats.throttled.Store(4)
	r.report()

	entries := logs.FilterMessage("rate limiter stats").All()
	require.Len(t, entries, 2)

	first, second := entries[0].ContextMap(), entries[1].ContextMap()
	assert.EqualValues(t, 10, first["admitted"])
	assert.EqualValues(t, 4, first["throttled"])
	assert.EqualValues(t, 5, second["admitted"])
	assert.EqualValues(t, 0, second["throttled"])
	assert.EqualValues(t, 15, second["admittedTotal"])
}

func TestReporter_ReportsOnEveryInterval(t *testing.T) {
	clk := clock.NewFake()
	core, logs := observer.New(zap.InfoLevel)
	stats := &fakeStats{}
	r := NewReporter(clk, stats, time.Minute, zap.New(core))

	r.Start()
	waitParked(t, clk)

	stats.admitted.Store(3)
	clk.Advance(59 * time.Second)
	waitParked(t, clk)
	assert.Zero(t, logs.FilterMessage("rate limiter stats").Len(), "no report before the first interval")

	clk.Advance(time.Second)
	waitParked(t, clk)
	require.Equal(t, 1, logs.FilterMessage("rate limiter stats").Len())

	// a late wake-up reports once per missed interval
	clk.Advance(3 * time.Minute)
	waitParked(t, clk)
	assert.Equal(t, 4, logs.FilterMessage("rate limiter stats").Len())

	require.NoError(t, r.Stop())
	require.NoError(t, r.Stop())

	clk.Advance(time.Hour)
	assert.Equal(t, 4, logs.FilterMessage("rate limiter stats").Len(), "no reports after Stop")
}

func TestReporter_StopBeforeStart(t *testing.T) {
	r := NewReporter(clock.NewFake(), &fakeStats{}, time.Minute, zap.NewNop())
	assert.NoError(t, r.Stop())
}

func waitParked(t *testing.T, clk clock.Fake) {
	t.Helper()
	require.NoError(t, clock.WaitForTimers(clk, 1, 5*time.Second), "reporter never parked on its timer")
}
