package service

import (
	"context"
	"math"
	"time"

	"github.com/chaoslab/rollout-api/domain"
	"github.com/chaoslab/rollout-api/pkg/logger"
	"github.com/pkg/errors"
)

// Deploy switches both pools to the replica split of the named strategy.
func (svc *Service) Deploy(ctx context.Context, strategy domain.Strategy) (domain.StrategyState, error) {
	if !domain.KnownStrategy(strategy) {
		return domain.StrategyState{}, errors.Wrapf(domain.ErrInvalidStrategy, "%q", strategy)
	}

	var blue int32
	switch strategy {
	case domain.StrategyBlueGreen:
		blue = 0 // full cutover to green
	case domain.StrategyRolling:
		blue = svc.pools.RollingBluePods
	case domain.StrategyCanary:
		blue = svc.pools.CanaryBluePods
	}
	return svc.applySplit(ctx, strategy, blue, svc.pools.TotalPods-blue)
}

// Rollout shifts percent of the total capacity to the green pool using a
// linear interpolation over the fixed pool total.
func (svc *Service) Rollout(ctx context.Context, percent int) (domain.StrategyState, error) {
	if percent < 0 || percent > 100 {
		return domain.StrategyState{}, errors.Wrapf(domain.ErrInvalidArgument, "rollout percent %d outside [0,100]", percent)
	}

	green := int32(math.Round(float64(svc.pools.TotalPods) * float64(percent) / 100))
	return svc.applySplit(ctx, domain.StrategyRollout, svc.pools.TotalPods-green, green)
}

// Reset restores the baseline even split. Calling it repeatedly is harmless.
func (svc *Service) Reset(ctx context.Context) (domain.StrategyState, error) {
	blue := svc.pools.TotalPods / 2
	return svc.applySplit(ctx, domain.StrategyBlueGreen, blue, svc.pools.TotalPods-blue)
}

// applySplit pushes the new desired counts to the orchestrator and mutates
// the in-memory state. The lock is held across both scale calls so racing
// operations land on exactly one target configuration, never a mix.
//
// When a scale call fails the in-memory state is still updated to the
// intended target: the controller's own view of "current strategy" stays
// consistent even if the cluster has not converged. That trade-off is
// surfaced to the caller through the returned error, not hidden.
func (svc *Service) applySplit(ctx context.Context, strategy domain.Strategy, blue, green int32) (domain.StrategyState, error) {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	var scaleErr error
	if err := svc.orchestrator.SetReplicas(ctx, domain.PoolBlue, blue); err != nil {
		scaleErr = err
	}
	if err := svc.orchestrator.SetReplicas(ctx, domain.PoolGreen, green); err != nil && scaleErr == nil {
		scaleErr = err
	}

	svc.state.CurrentStrategy = strategy
	svc.state.BlueReplicas = blue
	svc.state.GreenReplicas = green
	svc.state.LastDeploymentTime = time.Now().UTC()
	svc.invalidatePodCache()

	svc.metrics.observeDeploy(strategy)
	svc.metrics.setDesiredReplicas(blue, green)

	if scaleErr != nil {
		svc.metrics.observeOrchestratorError()
		logger.Logger(ctx).Warn().Err(scaleErr).
			Str("strategy", string(strategy)).
			Int32("blue", blue).Int32("green", green).
			Msg("scale request failed, in-memory state updated to intended target")
		return svc.state, scaleErr
	}

	logger.Logger(ctx).Info().
		Str("strategy", string(strategy)).
		Int32("blue", blue).Int32("green", green).
		Msg("strategy applied")
	return svc.state, nil
}

// KillPod deletes a single pod so the orchestrator's self-healing can be
// observed. No local bookkeeping is kept; the next inventory query is the
// only source of truth.
func (svc *Service) KillPod(ctx context.Context, name string) error {
	if name == "" {
		return errors.Wrap(domain.ErrInvalidArgument, "pod name must not be empty")
	}

	if err := svc.orchestrator.DeletePod(ctx, name); err != nil {
		svc.metrics.observeOrchestratorError()
		return err
	}

	svc.invalidatePodCache()
	svc.metrics.observeChaosKill()
	logger.Logger(ctx).Info().Str("pod", name).Msg("chaos kill requested")
	return nil
}

// Status reports the current strategy and replica counts. Counts come from a
// live pod listing when the orchestrator is reachable; otherwise the
// in-memory mirror is returned with Authoritative set to false.
func (svc *Service) Status(ctx context.Context) (domain.StatusSnapshot, error) {
	svc.mu.Lock()
	state := svc.state
	svc.mu.Unlock()

	snapshot := domain.StatusSnapshot{
		CurrentStrategy:    state.CurrentStrategy,
		BlueReplicas:       state.BlueReplicas,
		GreenReplicas:      state.GreenReplicas,
		LastDeploymentTime: state.LastDeploymentTime,
	}

	pods, err := svc.orchestrator.ListPods(ctx, svc.pools.AppLabel)
	if err != nil {
		logger.Logger(ctx).Warn().Err(err).Msg("status falling back to in-memory mirror")
		svc.metrics.observeOrchestratorError()
		return snapshot, nil
	}

	var blue, green int32
	for _, pod := range pods {
		switch pod.Version {
		case domain.PoolBlue:
			blue++
		case domain.PoolGreen:
			green++
		}
	}
	snapshot.BlueReplicas = blue
	snapshot.GreenReplicas = green
	snapshot.Authoritative = true
	return snapshot, nil
}
