package handler

import (
	"net/http"

	"github.com/furnet/instance-server/internal/domain"
	"github.com/furnet/instance-server/internal/service"
)

// HealthCheckHandler handles bulk peer health checks.
type HealthCheckHandler struct {
	health *service.HealthService
}

// NewHealthCheckHandler creates a new HealthCheckHandler.
func NewHealthCheckHandler(health *service.HealthService) *HealthCheckHandler {
	return &HealthCheckHandler{health: health}
}

// Check probes every submitted instance URL and returns one result per
// URL, in input order (POST /health-check).
func (h *HealthCheckHandler) Check(w http.ResponseWriter, r *http.Request) {
	var req domain.HealthCheckRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, domain.ErrCodeInvalidInput, "invalid request body")
		return
	}
	if len(req.InstanceURLs) == 0 {
		respondError(w, http.StatusBadRequest, domain.ErrCodeInvalidInput, "instance_urls must not be empty")
		return
	}

	results := h.health.CheckHealth(r.Context(), req.InstanceURLs)
	respondJSON(w, http.StatusOK, results)
}
