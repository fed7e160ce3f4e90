package handler

import (
	"net/http"

	"github.com/bagdasarian/task-balancer/internal/service"
)

func (h *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	caller, err := callerID(r)
	if err != nil {
		h.handleError(w, err)
		return
	}

	q := r.URL.Query()
	dashboard, err := h.dashboardService.GetDashboard(r.Context(), caller, service.DashboardFilter{
		TeamID:    q.Get("team_id"),
		ProjectID: q.Get("project_id"),
	})
	if err != nil {
		h.handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, domainDashboardToHTTP(dashboard))
}

// Health возвращает статус сервиса
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}
