package service_test

import (
	"context"

	"github.com/chaoslab/rollout-api/domain"
	"github.com/stretchr/testify/mock"
)

type mockOrchestrator struct {
	mock.Mock
}

func (m *mockOrchestrator) ListPods(ctx context.Context, labelSelector string) ([]*domain.Pod, error) {
	args := m.Called(ctx, labelSelector)
	pods, _ := args.Get(0).([]*domain.Pod)
	return pods, args.Error(1)
}

func (m *mockOrchestrator) SetReplicas(ctx context.Context, pool string, replicas int32) error {
	args := m.Called(ctx, pool, replicas)
	return args.Error(0)
}

func (m *mockOrchestrator) DeletePod(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}
