package service

import (
	"context"

	"github.com/bagdasarian/task-balancer/internal/domain"
)

type WorkloadService interface {
	// GetTeamLoad возвращает загрузку каждого участника команды в пределах scope
	GetTeamLoad(ctx context.Context, callerID string, scope domain.Scope) ([]domain.LoadEntry, error)

	// ReassignMemberTasks переносит все задачи участника fromID на toID
	ReassignMemberTasks(ctx context.Context, callerID, teamID, fromID, toID string) (*domain.ExecutionResult, error)

	// UnassignMemberTasks снимает назначение со всех задач участника
	UnassignMemberTasks(ctx context.Context, callerID, teamID, memberID string) (*domain.ExecutionResult, error)

	// ReassignTask переназначает одну задачу
	ReassignTask(ctx context.Context, callerID, taskID, toID string) (*domain.ExecutionResult, error)

	// PlanAutoBalance строит план автобалансировки без выполнения
	PlanAutoBalance(ctx context.Context, callerID string, scope domain.Scope) (*domain.Plan, error)

	// AutoBalance строит и выполняет план автобалансировки
	AutoBalance(ctx context.Context, callerID string, scope domain.Scope) (*domain.Plan, *domain.ExecutionResult, error)

	// SuggestAssignee подбирает наименее загруженного участника для новой задачи
	SuggestAssignee(ctx context.Context, callerID string, scope domain.Scope) (*domain.Member, error)

	// CheckAssignment предупреждает, если участник уже заполнен
	CheckAssignment(ctx context.Context, callerID string, scope domain.Scope, memberID string) (*AssignmentCheck, error)
}
