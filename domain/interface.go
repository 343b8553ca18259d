package domain

import "context"

// Orchestrator is the thin contract this service has with the cluster
// orchestration API. SetReplicas is asynchronous: a nil error means the
// request was accepted, not that the pools have converged. Pod recreation
// after DeletePod is the orchestrator's reconciliation loop, not ours.
type Orchestrator interface {
	// ListPods returns the pods matching a label selector.
	ListPods(ctx context.Context, labelSelector string) ([]*Pod, error)
	// SetReplicas requests a new desired replica count for a pool
	// ("blue" or "green").
	SetReplicas(ctx context.Context, pool string, replicas int32) error
	// DeletePod requests deletion of a single pod. Deleting a pod that is
	// already gone is a no-op.
	DeletePod(ctx context.Context, name string) error
}

// Service defines the interface for the service layer.
type Service interface {
	// Deploy switches both pools to the replica split of the named strategy.
	Deploy(ctx context.Context, strategy Strategy) (StrategyState, error)
	// Rollout shifts the given percentage of total capacity to the green pool.
	Rollout(ctx context.Context, percent int) (StrategyState, error)
	// Reset restores the baseline even split.
	Reset(ctx context.Context) (StrategyState, error)
	// KillPod deletes a single pod to let the orchestrator's self-healing be
	// observed on the next inventory query.
	KillPod(ctx context.Context, name string) error
	// Status reports the current strategy and replica counts, authoritative
	// from the orchestrator when reachable.
	Status(ctx context.Context) (StatusSnapshot, error)
	// GetPods returns the annotated pod inventory. The bool is true when the
	// list is a synthetic fallback generated because the orchestrator was
	// unreachable.
	GetPods(ctx context.Context) ([]*PodView, bool, error)
}
