package runtime

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatchMetricsCounts(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewDispatchMetrics(reg)
	require.NoError(t, m.Register())

	m.recordEnqueued("log")
	m.recordEnqueued("log")
	m.recordEnqueued("metric")
	m.recordDelivered("log", 5*time.Millisecond)
	m.recordFailed("metric", 7*time.Millisecond)
	m.recordDropped("trace", "full")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.enqueuedTotal.WithLabelValues("log")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.enqueuedTotal.WithLabelValues("metric")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.deliveredTotal.WithLabelValues("log")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.failedTotal.WithLabelValues("metric")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.droppedTotal.WithLabelValues("trace", "full")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.queueDepth), "three enqueued minus two completed")
}

func TestDispatchMetricsRegisterTwiceFails(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewDispatchMetrics(reg)
	require.NoError(t, m.Register())
	require.Error(t, m.Register())
}

func TestDispatchMetricsNilReceiverIsSafe(t *testing.T) {
	var m *DispatchMetrics
	m.recordEnqueued("log")
	m.recordDropped("log", "full")
	m.recordDelivered("log", time.Millisecond)
	m.recordFailed("log", time.Millisecond)
}
