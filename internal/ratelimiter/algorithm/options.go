package algorithm

import (
	"time"

	"github.com/momahgoub172/rate-limiting-algorithms/internal/clock"
	"github.com/momahgoub172/rate-limiting-algorithms/internal/log"
	"github.com/momahgoub172/rate-limiting-algorithms/internal/scheduler"
	"go.uber.org/zap"
)

type Option func(*options)

type options struct {
	clock       clock.Clock
	logger      *zap.Logger
	stopTimeout time.Duration
}

// WithClock sets the time source. Defaults to the real clock.
func WithClock(c clock.Clock) Option {
	return func(o *options) {
		o.clock = c
	}
}

// WithLogger sets the logger. Defaults to log.Logger().Named("ratelimiter").
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithStopTimeout bounds how long Close waits for the background task.
func WithStopTimeout(d time.Duration) Option {
	return func(o *options) {
		o.stopTimeout = d
	}
}

func newOptions(opts []Option) options {
	o := options{
		stopTimeout: scheduler.DefaultStopTimeout,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.clock == nil {
		o.clock = clock.New()
	}
	if o.logger == nil {
		o.logger = log.Logger().Named("ratelimiter")
	}
	return o
}

func (o options) scheduler() *scheduler.Scheduler {
	return scheduler.New(o.clock,
		scheduler.WithLogger(o.logger),
		scheduler.WithStopTimeout(o.stopTimeout),
	)
}
