package service

import (
	"context"

	"github.com/bagdasarian/task-balancer/internal/domain"
)

type DashboardFilter struct {
	TeamID    string
	ProjectID string
}

type Dashboard struct {
	TotalProjects       int
	TotalTasks          int
	TeamSummary         []domain.LoadEntry
	RecentReassignments []*domain.AuditEvent
	Filter              DashboardFilter
}

type DashboardService interface {
	GetDashboard(ctx context.Context, callerID string, filter DashboardFilter) (*Dashboard, error)
}
