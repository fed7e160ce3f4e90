package repository

import (
	"context"

	"github.com/bagdasarian/task-balancer/internal/domain"
)

type TeamRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Team, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.Team, error)
}
