package service

import (
	"context"
	"fmt"

	gcache "github.com/Code-Hex/go-generics-cache"
	"github.com/chaoslab/rollout-api/domain"
	"github.com/chaoslab/rollout-api/pkg/logger"
)

// GetPods returns the annotated pod inventory for the two pools. Results are
// cached for a short TTL so dashboard polling stays cheap; every strategy
// mutation invalidates the cache.
//
// When the orchestrator is unreachable a synthetic placeholder list sized
// from the in-memory state is returned instead, with the synthetic flag set
// and the original error passed through so the caller can mark the response
// as degraded rather than silently serving fake data.
func (svc *Service) GetPods(ctx context.Context) ([]*domain.PodView, bool, error) {
	if views, ok := svc.podCache.Get(podCacheKey); ok {
		return views, false, nil
	}

	pods, err := svc.orchestrator.ListPods(ctx, svc.pools.AppLabel)
	if err != nil {
		logger.Logger(ctx).Warn().Err(err).Msg("pod listing failed, serving synthetic inventory")
		svc.metrics.observeOrchestratorError()
		return svc.syntheticPods(), true, err
	}

	views := make([]*domain.PodView, 0, len(pods))
	for _, pod := range pods {
		views = append(views, &domain.PodView{
			Name:    pod.Name,
			Version: pod.Version,
			Health:  svc.classifier(pod, pod.ChaosMarked),
			Status:  pod.Phase,
			Node:    pod.Node,
			Created: pod.CreatedAt,
		})
	}

	svc.podCache.Set(podCacheKey, views, gcache.WithExpiration(svc.cacheTTL))
	return views, false, nil
}

// syntheticPods builds a placeholder inventory sized from the current
// in-memory replica split. All pods read as running and healthy; the caller
// is responsible for flagging the list as synthetic.
func (svc *Service) syntheticPods() []*domain.PodView {
	svc.mu.Lock()
	state := svc.state
	svc.mu.Unlock()

	views := make([]*domain.PodView, 0, state.BlueReplicas+state.GreenReplicas)
	appendPool := func(version string, deployment string, count int32) {
		for i := int32(1); i <= count; i++ {
			views = append(views, &domain.PodView{
				Name:    fmt.Sprintf("%s-synthetic-%d", deployment, i),
				Version: version,
				Health:  domain.HealthHealthy,
				Status:  domain.PhaseRunning,
				Node:    "synthetic",
				Created: state.LastDeploymentTime,
			})
		}
	}
	appendPool(domain.PoolBlue, svc.pools.BlueDeployment, state.BlueReplicas)
	appendPool(domain.PoolGreen, svc.pools.GreenDeployment, state.GreenReplicas)
	return views
}
