package engine

import (
	"github.com/prometheus/client_golang/prometheus"
)

const defaultMetricsNamespace = "flowgraph"

// Metrics holds the Prometheus counters kept by the engine: dispatches,
// fan-outs, deferrals, and failures, labelled by node kind.
type Metrics struct {
	dispatched *prometheus.CounterVec
	fanOuts    *prometheus.CounterVec
	failures   *prometheus.CounterVec
	deferred   prometheus.Counter
}

// NewMetrics builds and registers the engine counters on the supplied
// registerer. A nil registerer falls back to prometheus.DefaultRegisterer.
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	if namespace == "" {
		namespace = defaultMetricsNamespace
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		dispatched: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_dispatched_total",
			Help:      "Number of work executions started, per node kind.",
		}, []string{"kind"}),
		fanOuts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "channel_fanouts_total",
			Help:      "Number of envelopes handed to downstream targets, per node kind and channel.",
		}, []string{"kind", "channel"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "work_failures_total",
			Help:      "Number of failure records delivered, per node kind.",
		}, []string{"kind"}),
		deferred: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "deferred_dispatches_total",
			Help:      "Number of dispatches scheduled through Post.",
		}),
	}

	reg.MustRegister(m.dispatched, m.fanOuts, m.failures, m.deferred)
	return m
}

func (m *Metrics) ObserveDispatch(kind string) {
	m.dispatched.WithLabelValues(kind).Inc()
}

func (m *Metrics) ObserveFanOut(kind, channel string, targets int) {
	m.fanOuts.WithLabelValues(kind, channel).Add(float64(targets))
}

func (m *Metrics) ObserveFailure(kind string) {
	m.failures.WithLabelValues(kind).Inc()
}

func (m *Metrics) ObserveDeferred() {
	m.deferred.Inc()
}
