package kubernetes

import (
	"context"
	"fmt"
	"time"

	"github.com/chaoslab/rollout-api/config"
	"github.com/chaoslab/rollout-api/domain"
	"github.com/chaoslab/rollout-api/pkg/logger"
	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
)

// Options contains Kubernetes adapter options.
type Options struct {
	KubeConfigPath string
	InCluster      bool
	Namespace      string
	Timeout        time.Duration
	Pools          config.PoolsConfig
}

type k8sOrchestrator struct {
	client    kubernetes.Interface
	namespace string
	timeout   time.Duration
	pools     config.PoolsConfig
}

// NewOrchestrator creates an orchestrator client backed by the Kubernetes API.
// Supports two modes:
// 1. When running inside the cluster, use in-cluster configuration
// 2. When running outside the cluster, use kubeconfig configuration
func NewOrchestrator(ctx context.Context, options Options) (domain.Orchestrator, error) {
	var cfg *rest.Config
	var err error

	if options.InCluster {
		logger.Logger(ctx).Info().Msg("using in-cluster Kubernetes configuration")
		cfg, err = rest.InClusterConfig()
		if err != nil {
			return nil, fmt.Errorf("failed to create in-cluster config: %w", err)
		}
	} else if options.KubeConfigPath != "" {
		logger.Logger(ctx).Info().Str("path", options.KubeConfigPath).Msg("using kubeconfig")
		cfg, err = clientcmd.BuildConfigFromFlags("", options.KubeConfigPath)
		if err != nil {
			return nil, fmt.Errorf("failed to build kubeconfig from %s: %w", options.KubeConfigPath, err)
		}
	} else {
		return nil, domain.ErrNoKubeConfig
	}

	cfg.Timeout = 10 * time.Second
	cfg.QPS = 20
	cfg.Burst = 50

	client, err := kubernetes.NewForConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kubernetes client: %w", err)
	}

	return NewWithClient(client, options), nil
}

// NewWithClient wraps an existing clientset. Used by tests with a fake client.
func NewWithClient(client kubernetes.Interface, options Options) domain.Orchestrator {
	timeout := options.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	namespace := options.Namespace
	if namespace == "" {
		namespace = metav1.NamespaceDefault
	}
	return &k8sOrchestrator{
		client:    client,
		namespace: namespace,
		timeout:   timeout,
		pools:     options.Pools,
	}
}

func (k *k8sOrchestrator) opCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, k.timeout)
}

func (k *k8sOrchestrator) ListPods(ctx context.Context, labelSelector string) ([]*domain.Pod, error) {
	ctx, cancel := k.opCtx(ctx)
	defer cancel()

	list, err := k.client.CoreV1().Pods(k.namespace).List(ctx, metav1.ListOptions{
		LabelSelector: labelSelector,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: list pods: %v", domain.ErrOrchestratorUnavailable, err)
	}

	pods := make([]*domain.Pod, 0, len(list.Items))
	for i := range list.Items {
		pods = append(pods, k.toDomainPod(&list.Items[i]))
	}
	return pods, nil
}

func (k *k8sOrchestrator) toDomainPod(pod *corev1.Pod) *domain.Pod {
	_, chaosMarked := pod.Labels[k.pools.ChaosLabelKey]
	return &domain.Pod{
		Name:        pod.Name,
		Version:     pod.Labels[k.pools.VersionLabelKey],
		Phase:       string(pod.Status.Phase),
		Node:        pod.Spec.NodeName,
		CreatedAt:   pod.CreationTimestamp.Time,
		ChaosMarked: chaosMarked,
	}
}

// SetReplicas patches the scale subresource of the pool's deployment. The
// call returning nil only means the orchestrator accepted the new desired
// count; convergence happens in its reconciliation loop.
func (k *k8sOrchestrator) SetReplicas(ctx context.Context, pool string, replicas int32) error {
	deployment, err := k.deploymentFor(pool)
	if err != nil {
		return err
	}

	ctx, cancel := k.opCtx(ctx)
	defer cancel()

	scale, err := k.client.AppsV1().Deployments(k.namespace).GetScale(ctx, deployment, metav1.GetOptions{})
	if apierrors.IsNotFound(err) {
		return fmt.Errorf("%w: deployment %s", domain.ErrNotFound, deployment)
	}
	if err != nil {
		return fmt.Errorf("%w: get scale for %s: %v", domain.ErrOrchestratorUnavailable, deployment, err)
	}
	scale.Spec.Replicas = replicas
	_, err = k.client.AppsV1().Deployments(k.namespace).UpdateScale(ctx, deployment, scale, metav1.UpdateOptions{})
	if err != nil {
		return fmt.Errorf("%w: update scale for %s: %v", domain.ErrOrchestratorUnavailable, deployment, err)
	}

	logger.Logger(ctx).Debug().Str("deployment", deployment).Int32("replicas", replicas).Msg("scale request accepted")
	return nil
}

func (k *k8sOrchestrator) deploymentFor(pool string) (string, error) {
	switch pool {
	case domain.PoolBlue:
		return k.pools.BlueDeployment, nil
	case domain.PoolGreen:
		return k.pools.GreenDeployment, nil
	}
	return "", fmt.Errorf("%w: unknown pool %q", domain.ErrInvalidArgument, pool)
}

// DeletePod is idempotent: deleting a pod that is already gone succeeds,
// since the desired end state already holds.
func (k *k8sOrchestrator) DeletePod(ctx context.Context, name string) error {
	ctx, cancel := k.opCtx(ctx)
	defer cancel()

	err := k.client.CoreV1().Pods(k.namespace).Delete(ctx, name, metav1.DeleteOptions{})
	if apierrors.IsNotFound(err) {
		logger.Logger(ctx).Debug().Str("pod", name).Msg("pod already gone, treating delete as no-op")
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: delete pod %s: %v", domain.ErrOrchestratorUnavailable, name, err)
	}
	return nil
}
