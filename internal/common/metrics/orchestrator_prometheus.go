package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

type OrchestratorPrometheusMetrics struct {
	transitionCounter     *prometheus.CounterVec
	gatewayOutcomeCounter *prometheus.CounterVec
	staleFetchCounter     prometheus.Counter
}

func newOrchestratorPrometheusMetrics(reg prometheus.Registerer) *OrchestratorPrometheusMetrics {
	transitionCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "orchestrator_state_transitions_total",
			Help: "Count of orchestrator state transitions.",
		},
		[]string{"from", "to"},
	)

	gatewayOutcomeCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gateway_outcomes_total",
			Help: "Count of gateway call outcomes by operation and error kind.",
		},
		[]string{"operation", "kind"},
	)

	staleFetchCounter := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "stale_fetch_responses_discarded_total",
			Help: "Count of fetch responses discarded for staleness.",
		},
	)

	reg.MustRegister(transitionCounter, gatewayOutcomeCounter, staleFetchCounter)

	return &OrchestratorPrometheusMetrics{
		transitionCounter:     transitionCounter,
		gatewayOutcomeCounter: gatewayOutcomeCounter,
		staleFetchCounter:     staleFetchCounter,
	}
}

func (m *OrchestratorPrometheusMetrics) RecordTransition(from, to string) {
	m.transitionCounter.WithLabelValues(from, to).Inc()
}

func (m *OrchestratorPrometheusMetrics) RecordGatewayOutcome(operation, kind string) {
	m.gatewayOutcomeCounter.WithLabelValues(operation, kind).Inc()
}

func (m *OrchestratorPrometheusMetrics) RecordStaleFetchDiscarded() {
	m.staleFetchCounter.Inc()
}
