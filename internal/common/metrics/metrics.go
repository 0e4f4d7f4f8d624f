package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/extra/redisprometheus/v9"
	"github.com/redis/go-redis/v9"
)

type Metrics interface {
	RegisterRedis(client *redis.Client, serviceName, namespace string) error
	PrometheusRegisterer() prometheus.Registerer
	GetHTTPClientPrometheus() *HTTPClientPrometheusMetrics
	GetOrchestratorPrometheus() *OrchestratorPrometheusMetrics
}

type metrics struct {
	reg                 prometheus.Registerer
	httpClientMetrics   *HTTPClientPrometheusMetrics
	orchestratorMetrics *OrchestratorPrometheusMetrics
}

func New() Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

// NewWithRegisterer builds a Metrics bound to a caller-supplied registry.
// Tests use this with a fresh registry per instance.
func NewWithRegisterer(reg prometheus.Registerer) Metrics {
	return &metrics{
		reg:                 reg,
		httpClientMetrics:   newHTTPClientPrometheusMetrics(reg),
		orchestratorMetrics: newOrchestratorPrometheusMetrics(reg),
	}
}

func (m *metrics) RegisterRedis(client *redis.Client, serviceName, namespace string) error {
	return m.reg.Register(redisprometheus.NewCollector(BuildFQName(serviceName, namespace), "redis", client))
}

func (m *metrics) PrometheusRegisterer() prometheus.Registerer {
	return m.reg
}

func (m *metrics) GetHTTPClientPrometheus() *HTTPClientPrometheusMetrics {
	return m.httpClientMetrics
}

func (m *metrics) GetOrchestratorPrometheus() *OrchestratorPrometheusMetrics {
	return m.orchestratorMetrics
}
