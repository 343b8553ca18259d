package rest

import (
	"net/http"

	"github.com/chaoslab/rollout-api/domain"
)

type PodListResponse struct {
	Status string `json:"status"`
	// Synthetic is true when the orchestrator was unreachable and the list is
	// a placeholder generated from the in-memory state.
	Synthetic bool              `json:"synthetic"`
	Count     int               `json:"count"`
	Pods      []*domain.PodView `json:"pods"`
	Error     string            `json:"error,omitempty"`
}

// GetPodsHandler returns the annotated pod inventory for both pools.
func (h *Handler) GetPodsHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	pods, synthetic, err := h.Svc.GetPods(ctx)

	resp := PodListResponse{
		Status:    statusSuccess,
		Synthetic: synthetic,
		Count:     len(pods),
		Pods:      pods,
	}
	if synthetic {
		resp.Status = statusDegraded
		if err != nil {
			resp.Error = err.Error()
		}
		h.JSONResponse(ctx, w, http.StatusServiceUnavailable, resp)
		return
	}
	if err != nil {
		h.HandleError(ctx, w, err)
		return
	}
	h.JSONResponse(ctx, w, http.StatusOK, resp)
}

type KillPodRequest struct {
	Name string `json:"name"`
}

type KillPodResponse struct {
	Status string `json:"status"`
	Pod    string `json:"pod"`
}

// KillPodHandler deletes a single pod for chaos injection. The orchestrator
// recreates it to satisfy the pool's desired count; a pods query shortly
// after should show the pool back at full strength.
func (h *Handler) KillPodHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req KillPodRequest
	if err := h.JSONBind(r, &req); err != nil {
		h.ErrorResponse(ctx, w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	if err := h.Svc.KillPod(ctx, req.Name); err != nil {
		h.HandleError(ctx, w, err)
		return
	}

	h.JSONResponse(ctx, w, http.StatusOK, KillPodResponse{
		Status: statusSuccess,
		Pod:    req.Name,
	})
}
