package app

import (
	"context"
	"time"

	"github.com/chaoslab/rollout-api/adapter/kubernetes"
	"github.com/chaoslab/rollout-api/config"
	"github.com/chaoslab/rollout-api/domain"
	"github.com/chaoslab/rollout-api/rest"
	"github.com/chaoslab/rollout-api/service"
	"go.uber.org/fx"
)

func ConfigModule(cfg config.Config) fx.Option {
	return fx.Options(
		fx.Provide(func() config.Config {
			return cfg
		}),
		fx.Provide(func(c config.Config) config.ServerConfig {
			return c.Server
		}),
		fx.Provide(func(c config.Config) config.KubernetesConfig {
			return c.Kubernetes
		}),
		fx.Provide(func(c config.Config) config.PoolsConfig {
			return c.Pools
		}),
	)
}

// AdapterModule provides the orchestrator client, return domain.Orchestrator
func AdapterModule() fx.Option {
	return fx.Provide(func(kcfg config.KubernetesConfig, pools config.PoolsConfig) (domain.Orchestrator, error) {
		return kubernetes.NewOrchestrator(context.Background(), kubernetes.Options{
			KubeConfigPath: kcfg.KubeConfigPath,
			InCluster:      kcfg.InCluster,
			Namespace:      kcfg.Namespace,
			Timeout:        time.Duration(kcfg.TimeoutSeconds) * time.Second,
			Pools:          pools,
		})
	})
}

// ServiceModule provides the service layer, return domain.Service
func ServiceModule() fx.Option {
	return fx.Options(
		fx.Provide(service.NewMetrics),
		fx.Provide(service.NewService),
	)
}

// HandlerModule provides the REST handler, return *rest.Handler
func HandlerModule() fx.Option {
	return fx.Provide(rest.NewHandler)
}
