package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// HTTPClientPrometheusMetrics tracks latency of outbound gateway calls
// (billing, settlement, wallet) by endpoint and response code.
type HTTPClientPrometheusMetrics struct {
	gatewayRequestDurationHist *prometheus.HistogramVec
}

func newHTTPClientPrometheusMetrics(reg prometheus.Registerer) *HTTPClientPrometheusMetrics {
	gatewayRequestDurationHist := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "gateway_request_duration_seconds",
			Help: "Duration of outbound gateway requests in seconds.",
			// Submit calls routinely sit at the gateway for seconds before
			// timing out, so the upper buckets matter.
			Buckets: []float64{0.010, 0.050, 0.100, 0.250, 0.500, 1, 2, 5, 10, 30, 60},
		},
		[]string{"service", "method", "endpoint", "response_code"},
	)

	reg.MustRegister(gatewayRequestDurationHist)

	return &HTTPClientPrometheusMetrics{gatewayRequestDurationHist}
}

func (m *HTTPClientPrometheusMetrics) Record(duration time.Duration, service, method, endpoint string, statusCode int) {
	m.gatewayRequestDurationHist.WithLabelValues(service, method, endpoint, fmt.Sprint(statusCode)).
		Observe(duration.Seconds())
}
