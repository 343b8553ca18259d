package service

import (
	"fmt"
	"sync"
	"time"

	gcache "github.com/Code-Hex/go-generics-cache"
	"github.com/chaoslab/rollout-api/config"
	"github.com/chaoslab/rollout-api/domain"
	"go.uber.org/fx"
)

// Params holds the parameters for creating a new Service.
type Params struct {
	fx.In
	Orchestrator domain.Orchestrator
	Pools        config.PoolsConfig
	Classifier   HealthClassifier `optional:"true"`
	Metrics      *Metrics         `optional:"true"`
}

// NewService creates a new Service instance. The pools start at the baseline
// even split with the blue-green strategy selected; nothing is persisted, a
// restart resets the controller to this state.
func NewService(params Params) (domain.Service, error) {
	pools := params.Pools
	if pools.TotalPods <= 0 {
		return nil, fmt.Errorf("total_pods must be positive, got %d", pools.TotalPods)
	}
	if pools.RollingBluePods > pools.TotalPods || pools.CanaryBluePods > pools.TotalPods {
		return nil, fmt.Errorf("strategy split exceeds total pods (%d)", pools.TotalPods)
	}

	classifier := params.Classifier
	if classifier == nil {
		classifier = NewFlakyClassifier(defaultHealthyRate, nil)
	}

	blue := pools.TotalPods / 2
	svc := &Service{
		orchestrator: params.Orchestrator,
		pools:        pools,
		classifier:   classifier,
		metrics:      params.Metrics,
		podCache:     gcache.New[string, []*domain.PodView](),
		cacheTTL:     time.Duration(pools.CacheTTLSeconds) * time.Second,
		state: domain.StrategyState{
			CurrentStrategy:    domain.StrategyBlueGreen,
			BlueReplicas:       blue,
			GreenReplicas:      pools.TotalPods - blue,
			LastDeploymentTime: time.Now().UTC(),
		},
	}
	svc.metrics.setDesiredReplicas(svc.state.BlueReplicas, svc.state.GreenReplicas)
	return svc, nil
}

// Service implements the strategy controller and the pod inventory. The
// in-memory strategy state is the only shared mutable resource; every
// mutation happens under mu, and reads hand out copies.
type Service struct {
	orchestrator domain.Orchestrator
	pools        config.PoolsConfig
	classifier   HealthClassifier
	metrics      *Metrics

	podCache *gcache.Cache[string, []*domain.PodView]
	cacheTTL time.Duration

	mu    sync.Mutex
	state domain.StrategyState
}

const podCacheKey = "pods"

func (svc *Service) invalidatePodCache() {
	svc.podCache.Delete(podCacheKey)
}
