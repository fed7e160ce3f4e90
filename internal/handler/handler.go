package handler

import (
	"github.com/bagdasarian/task-balancer/internal/logging"
	"github.com/bagdasarian/task-balancer/internal/service"
)

// UserIDHeader - заголовок с идентификатором вызывающего, проставляется внешней аутентификацией
const UserIDHeader = "X-User-ID"

type Handler struct {
	workloadService  service.WorkloadService
	dashboardService service.DashboardService
	logger           *logging.Logger
}

func NewHandler(
	workloadService service.WorkloadService,
	dashboardService service.DashboardService,
	logger *logging.Logger,
) *Handler {
	return &Handler{
		workloadService:  workloadService,
		dashboardService: dashboardService,
		logger:           logger,
	}
}
