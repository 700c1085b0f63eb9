package handlers

import (
	"encoding/json"
	"net/http"
)

// HealthResponse represents the liveness payload
// swagger:model HealthResponse
type HealthResponse struct {
	// Service status
	// default: ok
	Status string `json:"status"`
}

// NewHealthHandler returns an HTTP handler for liveness checks.
// It does not check the database.
// @Summary Liveness probe
// @Description Always reports ok while the process serves HTTP
// @Tags system
// @Produce json
// @Success 200 {object} handlers.HealthResponse "Service is alive"
// @Router /health [get]
func NewHealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(HealthResponse{Status: "ok"})
	}
}
