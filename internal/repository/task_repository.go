package repository

import (
	"context"

	"github.com/bagdasarian/task-balancer/internal/domain"
)

// TaskFilter - пустые поля не участвуют в отборе
type TaskFilter struct {
	TeamID           string
	ProjectID        string
	AssignedMemberID string
	OwnerID          string
	ExcludeTaskID    string
}

type TaskRepository interface {
	FindTasks(ctx context.Context, filter TaskFilter) ([]*domain.Task, error)
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	// UpdateAssignedMember меняет исполнителя, только если текущий исполнитель равен expectedMemberID.
	// memberID == nil снимает назначение.
	UpdateAssignedMember(ctx context.Context, taskID string, expectedMemberID, memberID *string) (*domain.Task, error)
	Count(ctx context.Context, filter TaskFilter) (int, error)
}
