package algorithm

import (
	"sync"
	"time"

	"github.com/momahgoub172/rate-limiting-algorithms/internal/scheduler"
	"go.uber.org/zap"
)

// FixedWindow allows up to limit admissions per window. A background task
// resets the count at every window boundary, measured from construction.
type FixedWindow struct {
	mu     sync.Mutex
	limit  int
	window time.Duration
	count  int

	logger *zap.Logger
	task   *scheduler.Task
}

// NewFixedWindow creates a FixedWindow and starts its reset task. Close must be
// called to stop the task.
func NewFixedWindow(limit int, window time.Duration, opts ...Option) (*FixedWindow, error) {
	if err := positiveInt("limit", limit); err != nil {
		return nil, err
	}
	if err := positiveDuration("window", window); err != nil {
		return nil, err
	}

	o := newOptions(opts)
	w := &FixedWindow{
		limit:  limit,
		window: window,
		logger: o.logger.With(zap.String("algorithm", "fixed_window")),
	}
	w.task = o.scheduler().Start("fixed_window_reset", scheduler.Every(o.clock.Now(), window), w.reset)
	return w, nil
}

// TryAdmit admits the call if fewer than limit calls were admitted in the
// current window.
func (w *FixedWindow) TryAdmit() bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.count >= w.limit {
		return false
	}
	w.count++
	return true
}

func (w *FixedWindow) reset() {
	w.mu.Lock()
	previous := w.count
	w.count = 0
	w.mu.Unlock()

	w.logger.Debug("window reset", zap.Int("admitted", previous))
}

// Count returns the number of admissions in the current window.
func (w *FixedWindow) Count() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.count
}

func (w *FixedWindow) Limit() int {
	return w.limit
}

func (w *FixedWindow) Window() time.Duration {
	return w.window
}

// Close stops the reset task.
func (w *FixedWindow) Close() error {
	if err := w.task.Stop(); err != nil {
		return &TeardownError{Limiter: "fixed_window", Err: err}
	}
	return nil
}
