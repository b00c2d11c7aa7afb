package algorithm

import (
	"errors"
	"fmt"
	"math"
	"time"
)

var (
	// ErrInvalidConfig is wrapped by every ConfigError.
	ErrInvalidConfig = errors.New("invalid limiter configuration")
	// ErrTeardown is wrapped by every TeardownError.
	ErrTeardown = errors.New("limiter teardown failed")
)

// ConfigError reports a constructor parameter that is out of range. No limiter
// is produced when it is returned.
type ConfigError struct {
	Field string
	Value interface{}
	// Reason defaults to "must be positive".
	Reason string
}

func (e *ConfigError) Error() string {
	reason := e.Reason
	if reason == "" {
		reason = "must be positive"
	}
	return fmt.Sprintf("%v: %s %s, got %v", ErrInvalidConfig, e.Field, reason, e.Value)
}

func (e *ConfigError) Unwrap() error {
	return ErrInvalidConfig
}

// TeardownError reports a background task that could not be stopped on Close.
// The limiter's state is abandoned either way.
type TeardownError struct {
	Limiter string
	Err     error
}

func (e *TeardownError) Error() string {
	return fmt.Sprintf("%v: %s: %v", ErrTeardown, e.Limiter, e.Err)
}

func (e *TeardownError) Unwrap() []error {
	return []error{ErrTeardown, e.Err}
}

func IsConfigError(err error) bool {
	return errors.Is(err, ErrInvalidConfig)
}

func IsTeardownError(err error) bool {
	return errors.Is(err, ErrTeardown)
}

func positiveInt(field string, v int) error {
	if v <= 0 {
		return &ConfigError{Field: field, Value: v}
	}
	return nil
}

func positiveDuration(field string, v time.Duration) error {
	if v <= 0 {
		return &ConfigError{Field: field, Value: v}
	}
	return nil
}

func positiveRate(field string, v float64) error {
	// NaN fails both comparisons, so test for the valid range instead
	if !(v > 0) {
		return &ConfigError{Field: field, Value: v}
	}
	if math.IsInf(v, 1) {
		return &ConfigError{Field: field, Value: v, Reason: "must be finite"}
	}
	return nil
}

// MaxTickRate is the fastest per-second rate a periodic task can run at: one
// tick per nanosecond.
const MaxTickRate = float64(time.Second)

func tickRate(field string, v float64) error {
	if err := positiveRate(field, v); err != nil {
		return err
	}
	if v > MaxTickRate {
		return &ConfigError{Field: field, Value: v, Reason: fmt.Sprintf("must not exceed %g per second", MaxTickRate)}
	}
	return nil
}
