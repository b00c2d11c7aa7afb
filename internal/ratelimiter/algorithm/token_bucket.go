package algorithm

import (
	"sync"

	"github.com/momahgoub172/rate-limiting-algorithms/internal/scheduler"
	"go.uber.org/zap"
)

// TokenBucket is a pool of at most capacity tokens, full at construction. A
// background task adds one token every 1/refillRate seconds and each admission
// consumes one.
//
// The refill instants are anchored at construction: the k-th refill happens at
// k/refillRate seconds, rounded to the nearest nanosecond, and the rounding
// error does not accumulate (see scheduler.FixedRate). Over any long run the
// pool receives refillRate tokens per second, minus those dropped while full.
type TokenBucket struct {
	mu         sync.Mutex
	capacity   int
	refillRate float64 // tokens per second
	tokens     int

	logger *zap.Logger
	task   *scheduler.Task
}

// NewTokenBucket creates a full TokenBucket and starts its refill task. Close
// must be called to stop the task.
func NewTokenBucket(capacity int, refillRate float64, opts ...Option) (*TokenBucket, error) {
	if err := positiveInt("capacity", capacity); err != nil {
		return nil, err
	}
	if err := tickRate("refillRate", refillRate); err != nil {
		return nil, err
	}

	o := newOptions(opts)
	b := &TokenBucket{
		capacity:   capacity,
		refillRate: refillRate,
		tokens:     capacity,
		logger:     o.logger.With(zap.String("algorithm", "token_bucket")),
	}
	schedule := scheduler.Rate(o.clock.Now(), refillRate)
	b.task = o.scheduler().Start("token_bucket_refill", schedule, b.refill)
	b.logger.Debug("token bucket created",
		zap.Int("capacity", capacity),
		zap.Duration("refillInterval", schedule.Interval()))
	return b, nil
}

// TryAdmit takes a token if one is available. It never waits for a refill.
func (b *TokenBucket) TryAdmit() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.tokens == 0 {
		return false
	}
	b.tokens--
	return true
}

// refill adds one token unless the pool is already full.
func (b *TokenBucket) refill() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.tokens < b.capacity {
		b.tokens++
	}
}

// Available returns the number of tokens in the pool.
func (b *TokenBucket) Available() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.tokens
}

func (b *TokenBucket) Capacity() int {
	return b.capacity
}

func (b *TokenBucket) RefillRate() float64 {
	return b.refillRate
}

// Close stops the refill task.
func (b *TokenBucket) Close() error {
	if err := b.task.Stop(); err != nil {
		return &TeardownError{Limiter: "token_bucket", Err: err}
	}
	return nil
}
