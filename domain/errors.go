package domain

import "errors"

var (
	// ErrInvalidStrategy is returned when a deploy request names a strategy
	// this controller does not know. It never reaches the orchestrator.
	ErrInvalidStrategy = errors.New("unknown deployment strategy")

	// ErrInvalidArgument is returned for out-of-range rollout percentages and
	// empty pod names.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrOrchestratorUnavailable covers any transport, auth or API failure
	// while talking to the cluster orchestrator, including call timeouts.
	ErrOrchestratorUnavailable = errors.New("orchestrator unavailable")

	// ErrNotFound is reported by the orchestrator adapter when a named object
	// does not exist.
	ErrNotFound = errors.New("not found")

	ErrNoKubeConfig = errors.New("kubernetes configuration not provided")
)
