package ratelimiter

import (
	"time"

	"github.com/momahgoub172/rate-limiting-algorithms/internal/ratelimiter/algorithm"
)

// SlidingWindowLimiter keeps a log of request timestamps and allows a request
// only if fewer than limit requests were admitted during the trailing window.
type SlidingWindowLimiter struct {
	impl *algorithm.SlidingWindow
}

func NewSlidingWindowLimiter(limit int, window time.Duration, opts ...algorithm.Option) (*SlidingWindowLimiter, error) {
	impl, err := algorithm.NewSlidingWindow(limit, window, opts...)
	if err != nil {
		return nil, err
	}
	return &SlidingWindowLimiter{impl: impl}, nil
}

func (l *SlidingWindowLimiter) Type() Type {
	return SlidingWindowLimiterType
}

func (l *SlidingWindowLimiter) TryAdmit() bool {
	return l.impl.TryAdmit()
}

func (l *SlidingWindowLimiter) Limit() int {
	return l.impl.Limit()
}

func (l *SlidingWindowLimiter) Close() error {
	return l.impl.Close()
}
