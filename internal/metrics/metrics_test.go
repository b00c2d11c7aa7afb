package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector_Observe(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := NewCollector(reg)
	require.NoError(t, err)

	c.Observe("token_bucket", true)
	c.Observe("token_bucket", true)
	c.Observe("token_bucket", false)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.decisions.WithLabelValues("token_bucket", "admitted")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.decisions.WithLabelValues("token_bucket", "throttled")))

	admitted, throttled := c.Snapshot()
	assert.EqualValues(t, 2, admitted)
	assert.EqualValues(t, 1, throttled)
}

func TestNewCollector_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewCollector(reg)
	require.NoError(t, err)

	_, err = NewCollector(reg)
	assert.Error(t, err)
}
