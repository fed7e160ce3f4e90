package server

import (
	"net/http"

	"github.com/bagdasarian/task-balancer/internal/handler"
	"github.com/bagdasarian/task-balancer/internal/logging"
)

func SetupRoutes(mux *http.ServeMux, h *handler.Handler) {
	mux.HandleFunc("GET /health", h.Health)
	mux.HandleFunc("GET /workload/load", h.GetTeamLoad)
	mux.HandleFunc("POST /workload/reassign", h.ReassignMemberTasks)
	mux.HandleFunc("POST /workload/unassign", h.UnassignMemberTasks)
	mux.HandleFunc("POST /workload/reassignTask", h.ReassignTask)
	mux.HandleFunc("POST /workload/autoBalance", h.AutoBalance)
	mux.HandleFunc("GET /workload/suggest", h.SuggestAssignee)
	mux.HandleFunc("GET /workload/check", h.CheckAssignment)
	mux.HandleFunc("GET /dashboard", h.GetDashboard)
}

// NewRouter собирает маршруты и оборачивает их middleware
func NewRouter(h *handler.Handler, logger *logging.Logger) http.Handler {
	mux := http.NewServeMux()
	SetupRoutes(mux, h)

	var root http.Handler = mux
	root = handler.LoggingMiddleware(logger)(root)
	root = handler.RecoveryMiddleware(logger)(root)
	return root
}
