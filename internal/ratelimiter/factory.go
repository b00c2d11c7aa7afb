package ratelimiter

import (
	"fmt"
	"time"

	"github.com/momahgoub172/rate-limiting-algorithms/internal/ratelimiter/algorithm"
)

// Config selects and parameterizes one limiter.
type Config struct {
	Type Type `yaml:"algorithm"`
	// Limit is the window limit or the bucket capacity.
	Limit int `yaml:"limit"`
	// Window is used by the window algorithms.
	Window time.Duration `yaml:"window"`
	// Rate is the leak rate or the refill rate, per second, used by the bucket algorithms.
	Rate float64 `yaml:"rate"`
}

// New builds the limiter described by cfg.
func New(cfg Config, opts ...algorithm.Option) (RateLimiter, error) {
	var (
		limiter RateLimiter
		err     error
	)
	// a failed constructor must yield a nil interface, not a nil pointer in one
	switch cfg.Type {
	case TokenBucketLimiterType:
		var l *TokenBucketLimiter
		l, err = NewTokenBucketLimiter(cfg.Limit, cfg.Rate, opts...)
		limiter = l
	case LeakyBucketLimiterType:
		var l *LeakyBucketLimiter
		l, err = NewLeakyBucketLimiter(cfg.Limit, cfg.Rate, opts...)
		limiter = l
	case FixedWindowLimiterType:
		var l *FixedWindowLimiter
		l, err = NewFixedWindowLimiter(cfg.Limit, cfg.Window, opts...)
		limiter = l
	case SlidingWindowLimiterType:
		var l *SlidingWindowLimiter
		l, err = NewSlidingWindowLimiter(cfg.Limit, cfg.Window, opts...)
		limiter = l
	default:
		return nil, fmt.Errorf("unsupported rate limiter type %v", cfg.Type)
	}
	if err != nil {
		return nil, err
	}
	return limiter, nil
}
