package monitoring

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds the Prometheus collectors the monitoring loop updates as it
// processes checkpoints and heartbeat ticks. Nothing here serves an HTTP
// endpoint; a caller that wants the numbers reads them back from the
// registry (see cmd/panopticon-demo).
type Metrics struct {
	CheckpointsReceived prometheus.Counter
	SloViolations       *prometheus.CounterVec
	AgentsUnresponsive  prometheus.Counter
}

// NewMetrics registers a fresh set of counters against registry and returns
// the handle the monitoring loop will increment.
func NewMetrics(registry *prometheus.Registry) *Metrics {
	m := &Metrics{
		CheckpointsReceived: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "panopticon_checkpoints_received_total",
			Help: "Total number of checkpoints received by the monitoring loop.",
		}),
		SloViolations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "panopticon_slo_violations_total",
			Help: "Total number of SLO violations detected, by metric name.",
		}, []string{"metric_name"}),
		AgentsUnresponsive: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "panopticon_agents_unresponsive_total",
			Help: "Total number of heartbeat-timeout detections.",
		}),
	}
	registry.MustRegister(m.CheckpointsReceived, m.SloViolations, m.AgentsUnresponsive)
	return m
}
