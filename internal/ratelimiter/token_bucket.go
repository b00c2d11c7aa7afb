package ratelimiter

import (
	"github.com/momahgoub172/rate-limiting-algorithms/internal/ratelimiter/algorithm"
)

// TokenBucketLimiter is a popular approach that regulates the flow of requests using a token bucket.
// Each request consumes a token from the bucket, and once the bucket is empty, no more requests are
// allowed until the bucket is refilled.
type TokenBucketLimiter struct {
	impl *algorithm.TokenBucket
}

// NewTokenBucketLimiter creates a new TokenBucketLimiter with the given capacity and refill rate
// (tokens per second).
func NewTokenBucketLimiter(capacity int, rate float64, opts ...algorithm.Option) (*TokenBucketLimiter, error) {
	impl, err := algorithm.NewTokenBucket(capacity, rate, opts...)
	if err != nil {
		return nil, err
	}
	return &TokenBucketLimiter{impl: impl}, nil
}

func (l *TokenBucketLimiter) Type() Type {
	return TokenBucketLimiterType
}

func (l *TokenBucketLimiter) TryAdmit() bool {
	return l.impl.TryAdmit()
}

func (l *TokenBucketLimiter) Limit() int {
	return l.impl.Capacity()
}

func (l *TokenBucketLimiter) Close() error {
	return l.impl.Close()
}
