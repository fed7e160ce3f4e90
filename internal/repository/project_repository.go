package repository

import (
	"context"

	"github.com/bagdasarian/task-balancer/internal/domain"
)

type ProjectFilter struct {
	OwnerID   string
	TeamID    string
	ProjectID string
}

type ProjectRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	Count(ctx context.Context, filter ProjectFilter) (int, error)
}
