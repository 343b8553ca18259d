package domain

import "time"

// Strategy identifies a deployment strategy.
type Strategy string

const (
	StrategyBlueGreen Strategy = "blue-green"
	StrategyRolling   Strategy = "rolling"
	StrategyCanary    Strategy = "canary"
	// StrategyRollout is the label applied after an explicit percentage
	// rollout; it is not accepted as a deploy target by itself.
	StrategyRollout Strategy = "rollout"
)

// KnownStrategy reports whether s is a strategy name accepted by the deploy
// operation.
func KnownStrategy(s Strategy) bool {
	switch s {
	case StrategyBlueGreen, StrategyRolling, StrategyCanary:
		return true
	}
	return false
}

const (
	PoolBlue  = "blue"
	PoolGreen = "green"
)

// StrategyState is the controller's in-memory view of the two pools. It is
// owned by the strategy service and mutated only under its lock; callers
// always receive copies.
type StrategyState struct {
	CurrentStrategy    Strategy  `json:"current_strategy"`
	BlueReplicas       int32     `json:"blue_replicas"`
	GreenReplicas      int32     `json:"green_replicas"`
	LastDeploymentTime time.Time `json:"last_deployment_time"`
}

// StatusSnapshot is the answer to a status query. Replica counts come from
// the orchestrator when it is reachable; Authoritative is false when the
// counts are the in-memory mirror instead.
type StatusSnapshot struct {
	CurrentStrategy    Strategy  `json:"current_strategy"`
	BlueReplicas       int32     `json:"blue_replicas"`
	GreenReplicas      int32     `json:"green_replicas"`
	LastDeploymentTime time.Time `json:"last_deployment_time"`
	Authoritative      bool      `json:"authoritative"`
}
