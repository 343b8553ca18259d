package rest

import (
	"errors"
	"net/http"
	"time"

	"github.com/chaoslab/rollout-api/domain"
)

const (
	statusSuccess = "success"
	// statusDegraded marks a response whose operation ran against a
	// best-effort simulation because the orchestrator was unreachable.
	statusDegraded = "degraded"
)

type DeployRequest struct {
	Strategy string `json:"strategy"`
}

type DeployResponse struct {
	Status    string `json:"status"`
	Strategy  string `json:"strategy"`
	BluePods  int32  `json:"blue_pods"`
	GreenPods int32  `json:"green_pods"`
	Error     string `json:"error,omitempty"`
}

// DeployHandler switches both pools to the replica split of the requested
// strategy.
func (h *Handler) DeployHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req DeployRequest
	if err := h.JSONBind(r, &req); err != nil {
		h.ErrorResponse(ctx, w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	state, err := h.Svc.Deploy(ctx, domain.Strategy(req.Strategy))
	if err != nil && !errors.Is(err, domain.ErrOrchestratorUnavailable) {
		h.HandleError(ctx, w, err)
		return
	}

	resp := DeployResponse{
		Status:    statusSuccess,
		Strategy:  string(state.CurrentStrategy),
		BluePods:  state.BlueReplicas,
		GreenPods: state.GreenReplicas,
	}
	if err != nil {
		// state is the intended target even though the cluster call failed
		resp.Status = statusDegraded
		resp.Error = err.Error()
		h.JSONResponse(ctx, w, http.StatusServiceUnavailable, resp)
		return
	}
	h.JSONResponse(ctx, w, http.StatusOK, resp)
}

type RolloutRequest struct {
	Percent int `json:"percent"`
}

type SplitResponse struct {
	Status string `json:"status"`
	Blue   int32  `json:"blue"`
	Green  int32  `json:"green"`
	Error  string `json:"error,omitempty"`
}

// RolloutHandler shifts the requested percentage of capacity to green.
func (h *Handler) RolloutHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req RolloutRequest
	if err := h.JSONBind(r, &req); err != nil {
		h.ErrorResponse(ctx, w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	state, err := h.Svc.Rollout(ctx, req.Percent)
	h.splitResponse(w, r, state, err)
}

// ResetHandler restores the baseline even split.
func (h *Handler) ResetHandler(w http.ResponseWriter, r *http.Request) {
	state, err := h.Svc.Reset(r.Context())
	h.splitResponse(w, r, state, err)
}

func (h *Handler) splitResponse(w http.ResponseWriter, r *http.Request, state domain.StrategyState, err error) {
	ctx := r.Context()
	if err != nil && !errors.Is(err, domain.ErrOrchestratorUnavailable) {
		h.HandleError(ctx, w, err)
		return
	}

	resp := SplitResponse{
		Status: statusSuccess,
		Blue:   state.BlueReplicas,
		Green:  state.GreenReplicas,
	}
	if err != nil {
		resp.Status = statusDegraded
		resp.Error = err.Error()
		h.JSONResponse(ctx, w, http.StatusServiceUnavailable, resp)
		return
	}
	h.JSONResponse(ctx, w, http.StatusOK, resp)
}

type StatusResponse struct {
	CurrentStrategy    string `json:"current_strategy"`
	BluePods           int32  `json:"blue_pods"`
	GreenPods          int32  `json:"green_pods"`
	LastDeploymentTime string `json:"last_deployment_time"`
	Authoritative      bool   `json:"authoritative"`
}

// StatusHandler reports the current strategy state. Counts are live when the
// orchestrator is reachable; otherwise the in-memory mirror is served with
// authoritative=false.
func (h *Handler) StatusHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	snapshot, err := h.Svc.Status(ctx)
	if err != nil {
		h.HandleError(ctx, w, err)
		return
	}

	h.JSONResponse(ctx, w, http.StatusOK, StatusResponse{
		CurrentStrategy:    string(snapshot.CurrentStrategy),
		BluePods:           snapshot.BlueReplicas,
		GreenPods:          snapshot.GreenReplicas,
		LastDeploymentTime: snapshot.LastDeploymentTime.UTC().Format(time.RFC3339),
		Authoritative:      snapshot.Authoritative,
	})
}
