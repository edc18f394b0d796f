package handlers

import (
	"net/http"
	"time"

	"github.com/rsinnovation/hub-api/internal/http/respond"
	"github.com/rsinnovation/hub-api/internal/storage"
)

// recentWindow bounds the "new in the last N days" dashboard counters.
const recentWindow = 30 * 24 * time.Hour

// DashboardHandler serves the aggregate admin dashboard.
type DashboardHandler struct {
	store storage.StatsStore
}

// NewDashboardHandler constructs the handler.
func NewDashboardHandler(store storage.StatsStore) *DashboardHandler {
	return &DashboardHandler{store: store}
}

// Stats returns totals, recent activity, breakdowns and recent items.
func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	since := time.Now().UTC().Add(-recentWindow)
	stats, err := h.store.DashboardStats(r.Context(), since)
	if err != nil {
		storeError(w, err, "stats unavailable")
		return
	}
	respond.JSON(w, http.StatusOK, "ok", stats)
}
