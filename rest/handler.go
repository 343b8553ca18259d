package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/chaoslab/rollout-api/domain"
	"github.com/chaoslab/rollout-api/pkg/logger"
	"go.uber.org/fx"
)

// ErrorResponse represents error response structure
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

type Params struct {
	fx.In
	Svc domain.Service
}

func NewHandler(params Params) (*Handler, error) {
	return &Handler{
		Svc: params.Svc,
	}, nil
}

type Handler struct {
	Svc domain.Service
}

func (h *Handler) JSONResponse(ctx context.Context, w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(data)
	if err != nil {
		logger.Logger(ctx).Error().Err(err).Msg("Failed to encode JSON response")
		http.Error(w, "Failed to encode JSON response", http.StatusInternalServerError)
	}
}

func (h *Handler) JSONBind(r *http.Request, dst any) error {
	decoder := json.NewDecoder(r.Body)
	err := decoder.Decode(dst)
	if err != nil {
		return err
	}
	return nil
}

func (h *Handler) ErrorResponse(ctx context.Context, w http.ResponseWriter, status int, errMsg string, err error) {
	if err != nil {
		logger.Logger(ctx).Debug().Err(err).Msg(errMsg)
		errMsg = errMsg + ": " + err.Error()
	}
	resp := ErrorResponse{
		Success: false,
		Error:   errMsg,
	}
	h.JSONResponse(ctx, w, status, resp)
}

// HandleError maps domain errors to HTTP responses: validation failures are
// client errors, orchestrator failures are server errors.
func (h *Handler) HandleError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidStrategy), errors.Is(err, domain.ErrInvalidArgument):
		h.ErrorResponse(ctx, w, http.StatusBadRequest, "invalid request", err)
	case errors.Is(err, domain.ErrNotFound):
		h.ErrorResponse(ctx, w, http.StatusNotFound, "not found", err)
	case errors.Is(err, domain.ErrOrchestratorUnavailable):
		h.ErrorResponse(ctx, w, http.StatusServiceUnavailable, "orchestrator unavailable", err)
	default:
		h.ErrorResponse(ctx, w, http.StatusInternalServerError, "internal error", err)
	}
}

func (h *Handler) Version(w http.ResponseWriter, r *http.Request) {
	response := map[string]string{
		"message":   "Deployment Strategy API Server",
		"version":   "1.0.0",
		"endpoints": "/api/pods (GET), /api/deploy (POST), /api/rollout (POST), /api/kill-pod (POST), /api/status (GET), /api/reset (POST), /health (GET), /metrics (GET)",
	}
	h.JSONResponse(r.Context(), w, http.StatusOK, response)
}

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	response := map[string]any{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   "Deployment Strategy API Server",
	}
	h.JSONResponse(r.Context(), w, http.StatusOK, response)
}
