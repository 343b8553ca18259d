package service

import (
	"math/rand"

	"github.com/chaoslab/rollout-api/domain"
)

// defaultHealthyRate is the probability a Running pod is reported healthy.
// Transient flakiness is modeled with randomness instead of real readiness
// probes; the rate and the random source are injectable so tests stay
// deterministic.
const defaultHealthyRate = 0.95

// HealthClassifier maps a pod's reported lifecycle phase, plus a chaos
// injection marker, to a health verdict.
type HealthClassifier func(pod *domain.Pod, chaosMarked bool) domain.Health

// NewFlakyClassifier returns the demo classifier. A nil rnd falls back to the
// package-level random source.
func NewFlakyClassifier(healthyRate float64, rnd func() float64) HealthClassifier {
	if rnd == nil {
		rnd = rand.Float64
	}
	return func(pod *domain.Pod, chaosMarked bool) domain.Health {
		switch {
		case chaosMarked:
			// explicit chaos marker wins over the reported phase
			return domain.HealthUnhealthy
		case pod.Phase == domain.PhasePending:
			return domain.HealthPending
		case pod.Phase == domain.PhaseRunning:
			if rnd() < healthyRate {
				return domain.HealthHealthy
			}
			return domain.HealthUnhealthy
		default:
			return domain.HealthUnhealthy
		}
	}
}
