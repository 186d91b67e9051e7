package handlers

import (
	"net/http"

	"github.com/star-burger/backend/internal/application/services"
)

// DashboardHandler serves the manager's order dashboard
type DashboardHandler struct {
	dashboardService *services.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
	}
}

// ListOrders handles GET /api/manager/orders
func (h *DashboardHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	rows, err := h.dashboardService.ListOrders(r.Context())
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"orders": rows,
		"count":  len(rows),
	})
}
