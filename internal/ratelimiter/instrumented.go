package ratelimiter

// Recorder observes admission decisions.
type Recorder interface {
	Observe(limiter string, admitted bool)
}

type instrumentedLimiter struct {
	RateLimiter
	recorder Recorder
}

// Instrument wraps l so that every decision is reported to r.
func Instrument(l RateLimiter, r Recorder) RateLimiter {
	return &instrumentedLimiter{RateLimiter: l, recorder: r}
}

func (l *instrumentedLimiter) TryAdmit() bool {
	admitted := l.RateLimiter.TryAdmit()
	l.recorder.Observe(l.Type().String(), admitted)
	return admitted
}
