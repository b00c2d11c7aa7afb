package algorithm

import (
	"sync"
	"time"

	"github.com/momahgoub172/rate-limiting-algorithms/internal/clock"
	"go.uber.org/zap"
)

// LeakyBucket holds up to capacity units of pending load that leak out at
// leakRate units per second. Every admission adds one unit; the leak is
// computed lazily from elapsed time on each call, so there is no background task.
type LeakyBucket struct {
	mu       sync.Mutex
	capacity int
	leakRate float64 // units per second
	clock    clock.Clock
	logger   *zap.Logger

	level     int
	lastDrain time.Time
}

func NewLeakyBucket(capacity int, leakRate float64, opts ...Option) (*LeakyBucket, error) {
	if err := positiveInt("capacity", capacity); err != nil {
		return nil, err
	}
	if err := positiveRate("leakRate", leakRate); err != nil {
		return nil, err
	}

	o := newOptions(opts)
	return &LeakyBucket{
		capacity:  capacity,
		leakRate:  leakRate,
		clock:     o.clock,
		logger:    o.logger.With(zap.String("algorithm", "leaky_bucket")),
		lastDrain: o.clock.Now(),
	}, nil
}

// TryAdmit drains the bucket for the time elapsed since the last drain and
// admits the call if the bucket is not full.
func (b *LeakyBucket) TryAdmit() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.drain(b.clock.Now())

	if b.level >= b.capacity {
		return false
	}
	b.level++
	return true
}

// drain removes the whole units leaked since lastDrain. lastDrain only moves
// once at least one unit has leaked, and then moves to now.
func (b *LeakyBucket) drain(now time.Time) {
	elapsed := now.Sub(b.lastDrain)
	if elapsed <= 0 {
		return
	}

	units := elapsed.Seconds() * b.leakRate
	if units < 1 {
		return
	}

	drained := b.level
	if units < float64(b.level) {
		drained = int(units)
	}
	b.level -= drained
	b.lastDrain = now

	if drained > 0 {
		b.logger.Debug("bucket leaked", zap.Int("leaked", drained), zap.Int("level", b.level))
	}
}

// Level returns the bucket level as of the last call.
func (b *LeakyBucket) Level() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.level
}

func (b *LeakyBucket) Capacity() int {
	return b.capacity
}

func (b *LeakyBucket) LeakRate() float64 {
	return b.leakRate
}

// Close is a no-op; LeakyBucket has no background task.
func (b *LeakyBucket) Close() error {
	return nil
}
