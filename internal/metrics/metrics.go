// Package metrics counts admission decisions for Prometheus and for the
// periodic stats log.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/atomic"
)

const namespace = "ratelimiter"

// Collector records admitted and throttled decisions per limiter type.
type Collector struct {
	decisions *prometheus.CounterVec

	admitted  atomic.Int64
	throttled atomic.Int64
}

// NewCollector creates a Collector and registers its metrics with reg.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	c := &Collector{
		decisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "decisions_total",
			Help:      "Admission decisions by limiter type and outcome.",
		}, []string{"limiter", "outcome"}),
	}
	if err := reg.Register(c.decisions); err != nil {
		return nil, err
	}
	return c, nil
}

// Observe records one decision.
func (c *Collector) Observe(limiter string, admitted bool) {
	outcome := "throttled"
	if admitted {
		outcome = "admitted"
		c.admitted.Inc()
	} else {
		c.throttled.Inc()
	}
	c.decisions.WithLabelValues(limiter, outcome).Inc()
}

// Snapshot returns the totals recorded since the Collector was created.
func (c *Collector) Snapshot() (admitted, throttled int64) {
	return c.admitted.Load(), c.throttled.Load()
}
