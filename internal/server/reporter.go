package server

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/momahgoub172/rate-limiting-algorithms/internal/clock"
	"github.com/momahgoub172/rate-limiting-algorithms/internal/scheduler"
)

// StatsSource supplies cumulative decision totals.
type StatsSource interface {
	Snapshot() (admitted, throttled int64)
}

// Reporter logs the number of admitted and throttled requests at a fixed
// interval.
type Reporter struct {
	clock     clock.Clock
	scheduler *scheduler.Scheduler
	source    StatsSource
	interval  time.Duration
	logger    *zap.Logger

	mu            sync.Mutex
	task          *scheduler.Task
	lastAdmitted  int64
	lastThrottled int64
}

func NewReporter(clk clock.Clock, source StatsSource, interval time.Duration, logger *zap.Logger) *Reporter {
	return &Reporter{
		clock:     clk,
		scheduler: scheduler.New(clk, scheduler.WithLogger(logger)),
		source:    source,
		interval:  interval,
		logger:    logger,
	}
}

// Start schedules the report. It does not block.
func (r *Reporter) Start() {
	task := r.scheduler.Start("stats_report", scheduler.Every(r.clock.Now(), r.interval), r.report)

	r.mu.Lock()
	r.task = task
	r.mu.Unlock()
	r.logger.Info("stats reporter started", zap.Duration("interval", r.interval))
}

// Stop stops the schedule and waits for a running report to finish.
func (r *Reporter) Stop() error {
	r.mu.Lock()
	task := r.task
	r.mu.Unlock()

	if task == nil {
		return nil
	}
	return task.Stop()
}

func (r *Reporter) report() {
	admitted, throttled := r.source.Snapshot()

	r.mu.Lock()
	deltaAdmitted, deltaThrottled := admitted-r.lastAdmitted, throttled-r.lastThrottled
	r.lastAdmitted, r.lastThrottled = admitted, throttled
	r.mu.Unlock()

	r.logger.Info("rate limiter stats",
		zap.Int64("admitted", deltaAdmitted),
		zap.Int64("throttled", deltaThrottled),
		zap.Int64("admittedTotal", admitted),
		zap.Int64("throttledTotal", throttled))
}
