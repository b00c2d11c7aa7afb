package algorithm

import (
	"sync"
	"testing"
	"time"

	"github.com/momahgoub172/rate-limiting-algorithms/internal/clock"
	"go.uber.org/zap/zaptest"
)

func testOptions(t *testing.T, clk clock.Clock) []Option {
	return []Option{WithClock(clk), WithLogger(zaptest.NewLogger(t))}
}

// waitParked waits until the limiter's background task is parked on its timer.
func waitParked(t *testing.T, clk clock.Fake) {
	t.Helper()
	if err := clock.WaitForTimers(clk, 1, 5*time.Second); err != nil {
		t.Fatalf("background task never parked: %v", err)
	}
}

// advanceTicking moves a fake clock driving a limiter with a background task.
// It returns once the task has handled every tick that came due.
func advanceTicking(t *testing.T, clk clock.Fake, d time.Duration) {
	t.Helper()
	waitParked(t, clk)
	clk.Advance(d)
	waitParked(t, clk)
}

// admitConcurrently calls admit n times from n goroutines and returns how many
// calls were admitted.
func admitConcurrently(n int, admit func() bool) int {
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		admitted int
	)
	start := make(chan struct{})
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			if admit() {
				mu.Lock()
				admitted++
				mu.Unlock()
			}
		}()
	}
	close(start)
	wg.Wait()
	return admitted
}
