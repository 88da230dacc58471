package controllers

import (
	"net/http"

	h "gradinvite/internal/delivery/http/helpers"
)

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string `json:"status"`
}

// Health godoc
// @Summary Liveness probe
// @Tags health
// @Produce json
// @Success 200 {object} helpers.APIResponse "data.status is healthy"
// @Router /health [get]
func Health(w http.ResponseWriter, _ *http.Request) {
	h.WriteJSONSuccess(w, http.StatusOK, HealthResponse{Status: "healthy"})
}
