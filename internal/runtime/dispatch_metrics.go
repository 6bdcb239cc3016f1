package runtime

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// DispatchMetrics tracks the dispatch pipeline: what was accepted into the
// queue, what was dropped at the door, and how deliveries went.
type DispatchMetrics struct {
	enqueuedTotal   *prometheus.CounterVec
	droppedTotal    *prometheus.CounterVec
	deliveredTotal  *prometheus.CounterVec
	failedTotal     *prometheus.CounterVec
	queueDepth      prometheus.Gauge
	deliverySeconds *prometheus.HistogramVec

	registerer prometheus.Registerer
}

func newDispatchCounterVec(name, help string, labels []string) *prometheus.CounterVec {
	return prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "obsflow",
			Subsystem: "dispatch",
			Name:      name,
			Help:      help,
		},
		labels,
	)
}

// NewDispatchMetrics creates the metric collectors. Pass nil to use the
// default Prometheus registerer.
func NewDispatchMetrics(registerer prometheus.Registerer) *DispatchMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &DispatchMetrics{
		enqueuedTotal: newDispatchCounterVec("enqueued_total",
			"Commands accepted into the dispatch queue.", []string{"kind"}),
		droppedTotal: newDispatchCounterVec("dropped_total",
			"Commands rejected at enqueue time.", []string{"kind", "reason"}),
		deliveredTotal: newDispatchCounterVec("delivered_total",
			"Commands delivered to the collector.", []string{"kind"}),
		failedTotal: newDispatchCounterVec("failed_total",
			"Commands whose delivery failed and was swallowed.", []string{"kind"}),
		queueDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "obsflow",
			Subsystem: "dispatch",
			Name:      "queue_depth",
			Help:      "Commands currently waiting in the dispatch queue.",
		}),
		deliverySeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "obsflow",
			Subsystem: "dispatch",
			Name:      "delivery_seconds",
			Help:      "Wall time of one command delivery.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"kind"}),
		registerer: registerer,
	}
}

// Register attaches the collectors to the configured registerer.
func (m *DispatchMetrics) Register() error {
	collectors := []prometheus.Collector{
		m.enqueuedTotal,
		m.droppedTotal,
		m.deliveredTotal,
		m.failedTotal,
		m.queueDepth,
		m.deliverySeconds,
	}
	for _, collector := range collectors {
		if err := m.registerer.Register(collector); err != nil {
			return err
		}
	}
	return nil
}

func (m *DispatchMetrics) recordEnqueued(kind string) {
	if m == nil {
		return
	}
	m.enqueuedTotal.WithLabelValues(kind).Inc()
	m.queueDepth.Inc()
}

func (m *DispatchMetrics) recordDropped(kind, reason string) {
	if m == nil {
		return
	}
	m.droppedTotal.WithLabelValues(kind, reason).Inc()
}

func (m *DispatchMetrics) recordDelivered(kind string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.deliveredTotal.WithLabelValues(kind).Inc()
	m.deliverySeconds.WithLabelValues(kind).Observe(elapsed.Seconds())
	m.queueDepth.Dec()
}

func (m *DispatchMetrics) recordFailed(kind string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.failedTotal.WithLabelValues(kind).Inc()
	m.deliverySeconds.WithLabelValues(kind).Observe(elapsed.Seconds())
	m.queueDepth.Dec()
}
