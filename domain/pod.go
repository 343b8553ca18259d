package domain

import "time"

// Health is the verdict assigned to a pod by the health classifier.
type Health string

const (
	HealthHealthy   Health = "healthy"
	HealthUnhealthy Health = "unhealthy"
	HealthPending   Health = "pending"
)

// Pod is a read-only view of a pod as reported by the orchestrator.
// Pods are owned by the cluster; this service only observes them.
type Pod struct {
	Name        string    `json:"name"`
	Version     string    `json:"version"` // "blue" or "green"
	Phase       string    `json:"phase"`   // lifecycle phase as reported by the orchestrator
	Node        string    `json:"node"`
	CreatedAt   time.Time `json:"created_at"`
	ChaosMarked bool      `json:"chaos_marked"` // chaos injection label present
}

// PodView is a Pod annotated with a health verdict, as returned by the
// inventory service and the pods endpoint.
type PodView struct {
	Name    string    `json:"name"`
	Version string    `json:"version"`
	Health  Health    `json:"health"`
	Status  string    `json:"status"` // lifecycle phase
	Node    string    `json:"node"`
	Created time.Time `json:"created"`
}

// Lifecycle phases this service cares about. Anything else is treated as
// unhealthy by the classifier.
const (
	PhasePending = "Pending"
	PhaseRunning = "Running"
)
