package algorithm

import (
	"sync"
	"time"

	"github.com/momahgoub172/rate-limiting-algorithms/internal/clock"
)

// SlidingWindow allows up to limit admissions within any span of window. It
// keeps the instants of the admissions still inside the window, oldest first,
// in a ring buffer of size limit; there is no background task.
type SlidingWindow struct {
	mu     sync.Mutex
	limit  int
	window time.Duration
	clock  clock.Clock

	log  []time.Time
	head int // index of the oldest instant
	size int
}

func NewSlidingWindow(limit int, window time.Duration, opts ...Option) (*SlidingWindow, error) {
	if err := positiveInt("limit", limit); err != nil {
		return nil, err
	}
	if err := positiveDuration("window", window); err != nil {
		return nil, err
	}

	o := newOptions(opts)
	return &SlidingWindow{
		limit:  limit,
		window: window,
		clock:  o.clock,
		log:    make([]time.Time, limit),
	}, nil
}

// TryAdmit evicts every instant at least window old, then admits the call and
// records its instant if fewer than limit remain.
func (w *SlidingWindow) TryAdmit() bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	now := w.clock.Now()
	w.evict(now)

	if w.size >= w.limit {
		return false
	}
	w.log[(w.head+w.size)%w.limit] = now
	w.size++
	return true
}

func (w *SlidingWindow) evict(now time.Time) {
	cutoff := now.Add(-w.window)
	for w.size > 0 && !w.log[w.head].After(cutoff) {
		w.log[w.head] = time.Time{}
		w.head = (w.head + 1) % w.limit
		w.size--
	}
}

// Len returns the number of admissions recorded as of the last call.
func (w *SlidingWindow) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.size
}

func (w *SlidingWindow) Limit() int {
	return w.limit
}

func (w *SlidingWindow) Window() time.Duration {
	return w.window
}

// Close is a no-op; SlidingWindow has no background task.
func (w *SlidingWindow) Close() error {
	return nil
}
