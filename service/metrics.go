package service

import (
	"fmt"

	"github.com/chaoslab/rollout-api/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics exposes the controller's state to Prometheus. A nil *Metrics is
// valid and turns every observation into a no-op, so tests can build a
// Service without touching the default registry.
type Metrics struct {
	desiredReplicas    *prometheus.GaugeVec
	deployments        *prometheus.CounterVec
	chaosKills         prometheus.Counter
	orchestratorErrors prometheus.Counter
}

func NewMetrics() (*Metrics, error) {
	m := &Metrics{
		desiredReplicas: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "rollout_pool_desired_replicas",
			Help: "Desired replica count last requested for each pool.",
		}, []string{"pool"}),
		deployments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "rollout_deployments_total",
			Help: "Strategy operations applied, by strategy label.",
		}, []string{"strategy"}),
		chaosKills: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "rollout_chaos_kills_total",
			Help: "Pod deletions requested through the chaos endpoint.",
		}),
		orchestratorErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "rollout_orchestrator_errors_total",
			Help: "Failed calls to the cluster orchestrator.",
		}),
	}

	for _, c := range []prometheus.Collector{m.desiredReplicas, m.deployments, m.chaosKills, m.orchestratorErrors} {
		if err := prometheus.Register(c); err != nil {
			return nil, fmt.Errorf("failed to register metric collector: %v", err)
		}
	}
	return m, nil
}

func (m *Metrics) setDesiredReplicas(blue, green int32) {
	if m == nil {
		return
	}
	m.desiredReplicas.WithLabelValues(domain.PoolBlue).Set(float64(blue))
	m.desiredReplicas.WithLabelValues(domain.PoolGreen).Set(float64(green))
}

func (m *Metrics) observeDeploy(strategy domain.Strategy) {
	if m == nil {
		return
	}
	m.deployments.WithLabelValues(string(strategy)).Inc()
}

func (m *Metrics) observeChaosKill() {
	if m == nil {
		return
	}
	m.chaosKills.Inc()
}

func (m *Metrics) observeOrchestratorError() {
	if m == nil {
		return
	}
	m.orchestratorErrors.Inc()
}
