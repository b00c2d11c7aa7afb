package ratelimiter

import (
	"fmt"
	"strings"
)

// Type defines the type of rate limiter.
type Type uint32

const (
	TokenBucketLimiterType Type = iota
	LeakyBucketLimiterType
	FixedWindowLimiterType
	SlidingWindowLimiterType
)

var typeNames = map[Type]string{
	TokenBucketLimiterType:   "token_bucket",
	LeakyBucketLimiterType:   "leaky_bucket",
	FixedWindowLimiterType:   "fixed_window",
	SlidingWindowLimiterType: "sliding_window",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("Type(%d)", uint32(t))
}

// ParseType maps a name such as "token_bucket" (or "token-bucket") to its Type.
func ParseType(name string) (Type, error) {
	normalized := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "_")
	for t, n := range typeNames {
		if n == normalized {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown rate limiter type %q", name)
}

// MarshalText lets a Type appear by name in YAML config and flags.
func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Type) UnmarshalText(text []byte) error {
	parsed, err := ParseType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// RateLimiter defines the interface for a rate limiter policing one stream of
// requests.
type RateLimiter interface {
	// TryAdmit reports whether one unit of work may proceed now. It never blocks.
	TryAdmit() bool
	// Close stops any background task. It is idempotent.
	Close() error
	Type() Type
	// Limit is the configured limit or capacity.
	Limit() int
}
