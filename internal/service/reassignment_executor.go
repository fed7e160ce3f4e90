package service

import (
	"context"
	"fmt"
	"time"

	"github.com/bagdasarian/task-balancer/internal/domain"
	"github.com/bagdasarian/task-balancer/internal/logging"
	"github.com/bagdasarian/task-balancer/internal/repository"
	"golang.org/x/sync/errgroup"
)

// Executor применяет план: по одному обновлению задачи и одной записи журнала на перемещение.
// Ошибка одного перемещения не прерывает остальные, откатов нет.
type Executor struct {
	taskRepo     repository.TaskRepository
	activityRepo repository.ActivityLogRepository
	concurrency  int
	locks        *taskLocks
	logger       *logging.Logger
	now          func() time.Time
}

func NewExecutor(
	taskRepo repository.TaskRepository,
	activityRepo repository.ActivityLogRepository,
	concurrency int,
	logger *logging.Logger,
) *Executor {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Executor{
		taskRepo:     taskRepo,
		activityRepo: activityRepo,
		concurrency:  concurrency,
		locks:        newTaskLocks(),
		logger:       logger,
		now:          time.Now,
	}
}

// Execute выполняет все перемещения плана до конца. Отмена ctx не прерывает пакет.
func (e *Executor) Execute(ctx context.Context, plan *domain.Plan, actorID string) *domain.ExecutionResult {
	ctx = context.WithoutCancel(ctx)

	results := make([]domain.MoveResult, len(plan.Moves))

	var g errgroup.Group
	g.SetLimit(e.concurrency)
	for i, move := range plan.Moves {
		g.Go(func() error {
			results[i] = e.apply(ctx, plan, move, actorID)
			return nil
		})
	}
	_ = g.Wait()

	result := &domain.ExecutionResult{
		PlanID:  plan.ID,
		Results: results,
	}
	for _, res := range results {
		if res.Status != domain.MoveFailed {
			result.MovedCount++
		}
	}

	log := e.logger.With("plan_id", plan.ID, "team_id", plan.TeamID, "kind", string(plan.Kind))
	if err := result.Err(); err != nil {
		log.Warn("plan executed with failures",
			"moved", result.MovedCount,
			"failed", len(result.Failed()),
			"total", len(plan.Moves),
		)
	} else {
		log.Info("plan executed", "moved", result.MovedCount)
	}

	return result
}

func (e *Executor) apply(ctx context.Context, plan *domain.Plan, move domain.Move, actorID string) domain.MoveResult {
	unlock := e.locks.Lock(move.Task.ID)
	defer unlock()

	var expected, target *string
	if move.From != nil {
		expected = &move.From.ID
	}
	if move.To != nil {
		target = &move.To.ID
	}

	if _, err := e.taskRepo.UpdateAssignedMember(ctx, move.Task.ID, expected, target); err != nil {
		if err.Error() == "task not found" || err.Error() == "task assignment changed" {
			err = domain.NewStaleTaskError(move.Task.ID)
		} else {
			err = fmt.Errorf("update task %s: %w", move.Task.ID, err)
		}
		e.logger.Warn("reassignment failed", "plan_id", plan.ID, "task_id", move.Task.ID, "error", err)
		return domain.MoveResult{Move: move, Status: domain.MoveFailed, Err: err}
	}

	taskID := move.Task.ID
	event := &domain.AuditEvent{
		Message:   AuditMessage(plan.Kind, move),
		TaskID:    &taskID,
		TeamID:    plan.TeamID,
		ActorID:   actorID,
		Timestamp: e.now(),
	}
	if move.Task.ProjectID != "" {
		projectID := move.Task.ProjectID
		event.ProjectID = &projectID
	}

	saved, err := e.activityRepo.Append(ctx, event)
	if err != nil {
		// Задача уже переназначена, перемещение считается выполненным
		e.logger.Error("audit append failed", "plan_id", plan.ID, "task_id", move.Task.ID, "error", err)
		return domain.MoveResult{Move: move, Status: domain.MoveAuditFailed, Err: err}
	}

	return domain.MoveResult{Move: move, Status: domain.MoveApplied, Event: saved}
}

// AuditMessage формирует текст записи журнала для перемещения
func AuditMessage(kind domain.PlanKind, move domain.Move) string {
	switch {
	case move.To == nil:
		return fmt.Sprintf("Task %q unassigned from %s", move.Task.Title, memberName(move.From))
	case move.From == nil:
		return fmt.Sprintf("Task %q assigned to %s", move.Task.Title, move.To.Name)
	case kind == domain.PlanKindAutoBalance:
		return fmt.Sprintf("Task %q auto-reassigned from %s to %s", move.Task.Title, memberName(move.From), move.To.Name)
	default:
		return fmt.Sprintf("Task %q reassigned from %s to %s", move.Task.Title, memberName(move.From), move.To.Name)
	}
}

func memberName(m *domain.Member) string {
	if m == nil {
		return "nobody"
	}
	if m.Name == "" {
		return "removed member " + m.ID
	}
	return m.Name
}
