package ratelimiter

import (
	"github.com/momahgoub172/rate-limiting-algorithms/internal/ratelimiter/algorithm"
)

type LeakyBucketLimiter struct {
	impl *algorithm.LeakyBucket
}

func (l *LeakyBucketLimiter) TryAdmit() bool {
	return l.impl.TryAdmit()
}

func (l *LeakyBucketLimiter) Type() Type {
	return LeakyBucketLimiterType
}

func (l *LeakyBucketLimiter) Limit() int {
	return l.impl.Capacity()
}

func (l *LeakyBucketLimiter) Close() error {
	return l.impl.Close()
}

func NewLeakyBucketLimiter(capacity int, rate float64, opts ...algorithm.Option) (*LeakyBucketLimiter, error) {
	impl, err := algorithm.NewLeakyBucket(capacity, rate, opts...)
	if err != nil {
		return nil, err
	}
	return &LeakyBucketLimiter{impl: impl}, nil
}
