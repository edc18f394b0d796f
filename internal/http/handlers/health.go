package handlers

import (
	"net/http"
	"time"

	"github.com/rsinnovation/hub-api/internal/http/respond"
)

// HealthHandler reports process liveness.
type HealthHandler struct {
	startedAt time.Time
}

// NewHealthHandler constructs the handler, anchoring uptime at startup.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{startedAt: time.Now().UTC()}
}

// Check returns service status and uptime.
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusOK, "ok", map[string]any{
		"status": "healthy",
		"uptime": time.Since(h.startedAt).Round(time.Second).String(),
	})
}
