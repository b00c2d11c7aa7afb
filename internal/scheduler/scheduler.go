// Package scheduler runs periodic background tasks on an injected clock.
//
// A Task owns one goroutine that sleeps on the clock's timers until the next
// instant of its schedule and then invokes its callback. When the goroutine
// wakes late it invokes the callback once per missed instant, so the number of
// invocations tracks elapsed time rather than the number of wake-ups.
//
// Stopping a Task is idempotent and waits, bounded by a stop timeout, for the
// goroutine to exit; after Stop returns nil the callback will never run again.
package scheduler

import (
	"errors"
	"time"

	"github.com/momahgoub172/rate-limiting-algorithms/internal/clock"
	"github.com/robfig/cron/v3"
	"go.uber.org/atomic"
	"go.uber.org/zap"
)

// DefaultStopTimeout bounds how long Stop waits for a running callback.
const DefaultStopTimeout = 5 * time.Second

// ErrStopTimeout is returned by Stop when the task goroutine did not exit in time.
var ErrStopTimeout = errors.New("periodic task did not stop in time")

type Option func(*Scheduler)

// WithStopTimeout overrides DefaultStopTimeout.
func WithStopTimeout(d time.Duration) Option {
	return func(s *Scheduler) {
		if d > 0 {
			s.stopTimeout = d
		}
	}
}

// WithLogger sets the logger used for task lifecycle events.
func WithLogger(l *zap.Logger) Option {
	return func(s *Scheduler) {
		s.logger = l
	}
}

// Scheduler starts Tasks on a clock.
type Scheduler struct {
	clock       clock.Clock
	logger      *zap.Logger
	stopTimeout time.Duration
}

func New(clk clock.Clock, opts ...Option) *Scheduler {
	s := &Scheduler{
		clock:       clk,
		logger:      zap.NewNop(),
		stopTimeout: DefaultStopTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start runs fn at every instant of sched until the returned Task is stopped.
func (s *Scheduler) Start(name string, sched cron.Schedule, fn func()) *Task {
	t := &Task{
		name:        name,
		clock:       s.clock,
		schedule:    sched,
		fn:          fn,
		logger:      s.logger.With(zap.String("task", name)),
		stopTimeout: s.stopTimeout,
		quit:        make(chan struct{}),
		done:        make(chan struct{}),
	}
	// read "now" before returning so the first instant is computed from the
	// caller's construction time, not from whenever the goroutine gets to run
	next := sched.Next(s.clock.Now())
	go t.run(next)
	t.logger.Debug("periodic task started", zap.Time("next", next))
	return t
}

// Task is a running periodic callback.
type Task struct {
	name        string
	clock       clock.Clock
	schedule    cron.Schedule
	fn          func()
	logger      *zap.Logger
	stopTimeout time.Duration

	stopped atomic.Bool
	quit    chan struct{}
	done    chan struct{}
}

func (t *Task) run(next time.Time) {
	defer close(t.done)

	for {
		timer := t.clock.NewTimer(next.Sub(t.clock.Now()))
		select {
		case <-t.quit:
			timer.Stop()
			return
		case <-timer.Chan():
		}

		now := t.clock.Now()
		for !next.After(now) {
			select {
			case <-t.quit:
				return
			default:
			}
			t.fn()
			next = t.schedule.Next(next)
		}
	}
}

// Stop cancels the task and waits for its goroutine to exit. Only the first
// call does any work; later calls return nil.
func (t *Task) Stop() error {
	if !t.stopped.CompareAndSwap(false, true) {
		return nil
	}
	close(t.quit)

	// the stop timeout is an operational bound, so it is measured in real time
	// even when the task itself runs on a fake clock
	timeout := time.NewTimer(t.stopTimeout)
	defer timeout.Stop()

	select {
	case <-t.done:
		t.logger.Debug("periodic task stopped")
		return nil
	case <-timeout.C:
		t.logger.Error("periodic task did not stop", zap.Duration("timeout", t.stopTimeout))
		return ErrStopTimeout
	}
}

// Done is closed once the task goroutine has exited.
func (t *Task) Done() <-chan struct{} {
	return t.done
}
