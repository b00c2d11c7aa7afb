package ratelimiter

import (
	"time"

	"github.com/momahgoub172/rate-limiting-algorithms/internal/ratelimiter/algorithm"
)

// FixedWindowLimiter counts requests per fixed window and resets the count at
// every window boundary.
type FixedWindowLimiter struct {
	impl *algorithm.FixedWindow
}

func NewFixedWindowLimiter(limit int, window time.Duration, opts ...algorithm.Option) (*FixedWindowLimiter, error) {
	impl, err := algorithm.NewFixedWindow(limit, window, opts...)
	if err != nil {
		return nil, err
	}
	return &FixedWindowLimiter{impl: impl}, nil
}

func (l *FixedWindowLimiter) Type() Type {
	return FixedWindowLimiterType
}

func (l *FixedWindowLimiter) TryAdmit() bool {
	return l.impl.TryAdmit()
}

func (l *FixedWindowLimiter) Limit() int {
	return l.impl.Limit()
}

func (l *FixedWindowLimiter) Close() error {
	return l.impl.Close()
}
