package ratelimiter

import (
	"math"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/momahgoub172/rate-limiting-algorithms/internal/clock"
	"github.com/momahgoub172/rate-limiting-algorithms/internal/ratelimiter"
	"github.com/momahgoub172/rate-limiting-algorithms/internal/ratelimiter/algorithm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPRateLimiterHandler_ServeHTTP(t *testing.T) {
	limiter, err := ratelimiter.NewSlidingWindowLimiter(2, time.Minute, algorithm.WithClock(clock.NewFake()))
	require.NoError(t, err)

	calls := 0
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusOK)
	})
	handler := NewHTTPRateLimiterHandler(next, &Config{Limiter: limiter})

	var tests = []struct {
		name      string
		requestID string
		status    int
		state     string
	}{
		{name: "first request is allowed", requestID: "a", status: http.StatusOK, state: "Allow"},
		{name: "second request is allowed", requestID: "b", status: http.StatusOK, state: "Allow"},
		{name: "third request is throttled", requestID: "c", status: http.StatusTooManyRequests, state: "Deny"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("X-Request-Id", tt.requestID)
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.state, rec.Header().Get("X-Ratelimit-State"))
			assert.Equal(t, "2", rec.Header().Get("X-Ratelimit-Max-Requests"))
			assert.Equal(t, tt.requestID, rec.Header().Get("X-Request-Id"))
		})
	}

	assert.Equal(t, 2, calls, "throttled requests never reach the wrapped handler")
}

func TestMiddleware_GeneratesRequestID(t *testing.T) {
	limiter, err := ratelimiter.NewLeakyBucketLimiter(1, 1, algorithm.WithClock(clock.NewFake()))
	require.NoError(t, err)

	handler := Middleware(&Config{Limiter: limiter})(http.NotFoundHandler())
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}

func TestHTTPRateLimiterHandler_ReportsFullLimit(t *testing.T) {
	limiter, err := ratelimiter.NewFixedWindowLimiter(math.MaxInt, time.Minute, algorithm.WithClock(clock.NewFake()))
	require.NoError(t, err)
	defer limiter.Close()

	handler := NewHTTPRateLimiterHandler(http.NotFoundHandler(), &Config{Limiter: limiter})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, strconv.Itoa(math.MaxInt), rec.Header().Get("X-Ratelimit-Max-Requests"))
}
