package kubernetes_test

import (
	"context"
	"testing"
	"time"

	adapter "github.com/chaoslab/rollout-api/adapter/kubernetes"
	"github.com/chaoslab/rollout-api/config"
	"github.com/chaoslab/rollout-api/domain"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	autoscalingv1 "k8s.io/api/autoscaling/v1"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/client-go/kubernetes/fake"
	ktesting "k8s.io/client-go/testing"
)

func testOptions() adapter.Options {
	return adapter.Options{
		Namespace: "default",
		Timeout:   time.Second,
		Pools: config.PoolsConfig{
			TotalPods:       10,
			AppLabel:        "app=rollout-demo",
			VersionLabelKey: "version",
			ChaosLabelKey:   "chaos",
			BlueDeployment:  "rollout-demo-blue",
			GreenDeployment: "rollout-demo-green",
		},
	}
}

func demoPod(name, version string, phase corev1.PodPhase, chaos bool) *corev1.Pod {
	labels := map[string]string{
		"app":     "rollout-demo",
		"version": version,
	}
	if chaos {
		labels["chaos"] = "true"
	}
	return &corev1.Pod{
		ObjectMeta: metav1.ObjectMeta{
			Name:      name,
			Namespace: "default",
			Labels:    labels,
		},
		Spec:   corev1.PodSpec{NodeName: "node-a"},
		Status: corev1.PodStatus{Phase: phase},
	}
}

func TestListPods(t *testing.T) {
	client := fake.NewSimpleClientset(
		demoPod("blue-1", "blue", corev1.PodRunning, false),
		demoPod("green-1", "green", corev1.PodPending, false),
		demoPod("green-2", "green", corev1.PodRunning, true),
		&corev1.Pod{ObjectMeta: metav1.ObjectMeta{Name: "unrelated", Namespace: "default"}},
	)
	orch := adapter.NewWithClient(client, testOptions())

	pods, err := orch.ListPods(context.Background(), "app=rollout-demo")
	require.NoError(t, err, "ListPods should not return error")
	require.Len(t, pods, 3, "unrelated pods must be filtered by the label selector")

	byName := map[string]*domain.Pod{}
	for _, p := range pods {
		byName[p.Name] = p
	}
	require.Equal(t, "blue", byName["blue-1"].Version)
	require.Equal(t, string(corev1.PodRunning), byName["blue-1"].Phase)
	require.Equal(t, "node-a", byName["blue-1"].Node)
	require.False(t, byName["blue-1"].ChaosMarked)
	require.True(t, byName["green-2"].ChaosMarked, "chaos label must be carried into the domain pod")
}

func TestListPodsUnavailable(t *testing.T) {
	client := fake.NewSimpleClientset()
	client.PrependReactor("list", "pods", func(action ktesting.Action) (bool, runtime.Object, error) {
		return true, nil, errors.New("connection refused")
	})
	orch := adapter.NewWithClient(client, testOptions())

	_, err := orch.ListPods(context.Background(), "app=rollout-demo")
	require.ErrorIs(t, err, domain.ErrOrchestratorUnavailable, "transport failures map to orchestrator-unavailable")
}

func TestSetReplicas(t *testing.T) {
	client := fake.NewSimpleClientset()
	client.PrependReactor("get", "deployments", func(action ktesting.Action) (bool, runtime.Object, error) {
		ga := action.(ktesting.GetAction)
		if ga.GetSubresource() != "scale" {
			return false, nil, nil
		}
		return true, &autoscalingv1.Scale{
			ObjectMeta: metav1.ObjectMeta{Name: ga.GetName(), Namespace: "default"},
			Spec:       autoscalingv1.ScaleSpec{Replicas: 5},
		}, nil
	})
	var gotName string
	var gotReplicas int32
	client.PrependReactor("update", "deployments", func(action ktesting.Action) (bool, runtime.Object, error) {
		ua := action.(ktesting.UpdateAction)
		if ua.GetSubresource() != "scale" {
			return false, nil, nil
		}
		scale := ua.GetObject().(*autoscalingv1.Scale)
		gotName = scale.Name
		gotReplicas = scale.Spec.Replicas
		return true, scale, nil
	})
	orch := adapter.NewWithClient(client, testOptions())

	err := orch.SetReplicas(context.Background(), domain.PoolGreen, 7)
	require.NoError(t, err, "SetReplicas should not return error")
	require.Equal(t, "rollout-demo-green", gotName, "pool name must resolve to its deployment")
	require.EqualValues(t, 7, gotReplicas)
}

func TestSetReplicasUnknownPool(t *testing.T) {
	orch := adapter.NewWithClient(fake.NewSimpleClientset(), testOptions())

	err := orch.SetReplicas(context.Background(), "purple", 3)
	require.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestSetReplicasMissingDeployment(t *testing.T) {
	// the fake clientset has no deployments, so the scale lookup 404s
	orch := adapter.NewWithClient(fake.NewSimpleClientset(), testOptions())

	err := orch.SetReplicas(context.Background(), domain.PoolBlue, 3)
	require.ErrorIs(t, err, domain.ErrNotFound, "a missing deployment is not an availability problem")
}

func TestSetReplicasUnavailable(t *testing.T) {
	client := fake.NewSimpleClientset()
	client.PrependReactor("get", "deployments", func(action ktesting.Action) (bool, runtime.Object, error) {
		return true, nil, errors.New("apiserver down")
	})
	orch := adapter.NewWithClient(client, testOptions())

	err := orch.SetReplicas(context.Background(), domain.PoolBlue, 3)
	require.ErrorIs(t, err, domain.ErrOrchestratorUnavailable)
}

func TestDeletePod(t *testing.T) {
	client := fake.NewSimpleClientset(demoPod("blue-1", "blue", corev1.PodRunning, false))
	orch := adapter.NewWithClient(client, testOptions())

	require.NoError(t, orch.DeletePod(context.Background(), "blue-1"))

	pods, err := client.CoreV1().Pods("default").List(context.Background(), metav1.ListOptions{})
	require.NoError(t, err)
	require.Empty(t, pods.Items, "pod should be gone after delete")
}

func TestDeleteMissingPodIsNoOp(t *testing.T) {
	orch := adapter.NewWithClient(fake.NewSimpleClientset(), testOptions())

	err := orch.DeletePod(context.Background(), "nonexistent")
	require.NoError(t, err, "deleting an already-gone pod is an idempotent success")
}
