package service

import (
	"context"
	"errors"

	"github.com/bagdasarian/task-balancer/internal/config"
	"github.com/bagdasarian/task-balancer/internal/domain"
	"github.com/bagdasarian/task-balancer/internal/logging"
	"github.com/bagdasarian/task-balancer/internal/repository"
)

type workloadService struct {
	teamRepo repository.TeamRepository
	taskRepo repository.TaskRepository
	planner  *Planner
	executor *Executor
	policy   LoadPolicy
	logger   *logging.Logger
}

// NewWorkloadService создает новый экземпляр WorkloadService
func NewWorkloadService(
	teamRepo repository.TeamRepository,
	taskRepo repository.TaskRepository,
	activityRepo repository.ActivityLogRepository,
	cfg config.WorkloadConfig,
	logger *logging.Logger,
) WorkloadService {
	return &workloadService{
		teamRepo: teamRepo,
		taskRepo: taskRepo,
		planner:  NewPlanner(cfg),
		executor: NewExecutor(taskRepo, activityRepo, cfg.ExecuteConcurrency, logger),
		policy:   loadPolicy(cfg),
		logger:   logger,
	}
}

// loadTeam получает команду и проверяет, что вызывающий - её владелец
func (s *workloadService) loadTeam(ctx context.Context, callerID, teamID string) (*domain.Team, error) {
	if teamID == "" {
		return nil, domain.NewBadRequestError("team_id is required")
	}

	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		if err.Error() == "team not found" {
			return nil, domain.NewNotFoundError("team with id " + teamID)
		}
		return nil, err
	}

	if team.OwnerID != callerID {
		return nil, domain.ErrForbidden
	}

	return team, nil
}

// snapshot читает команду и её задачи в пределах scope
func (s *workloadService) snapshot(ctx context.Context, callerID string, scope domain.Scope) (*domain.Team, []*domain.Task, error) {
	team, err := s.loadTeam(ctx, callerID, scope.TeamID)
	if err != nil {
		return nil, nil, err
	}

	tasks, err := s.taskRepo.FindTasks(ctx, repository.TaskFilter{
		TeamID:    scope.TeamID,
		ProjectID: scope.ProjectID,
	})
	if err != nil {
		return nil, nil, err
	}

	return team, tasks, nil
}

func (s *workloadService) GetTeamLoad(ctx context.Context, callerID string, scope domain.Scope) ([]domain.LoadEntry, error) {
	team, tasks, err := s.snapshot(ctx, callerID, scope)
	if err != nil {
		return nil, err
	}

	return AggregateLoad(team, tasks, scope, s.policy), nil
}

func (s *workloadService) ReassignMemberTasks(ctx context.Context, callerID, teamID, fromID, toID string) (*domain.ExecutionResult, error) {
	scope := domain.Scope{TeamID: teamID}
	team, tasks, err := s.snapshot(ctx, callerID, scope)
	if err != nil {
		return nil, err
	}

	plan, err := s.planner.PlanManual(team, tasks, scope, fromID, toID)
	if err != nil {
		return nil, err
	}

	return s.executor.Execute(ctx, plan, callerID), nil
}

func (s *workloadService) UnassignMemberTasks(ctx context.Context, callerID, teamID, memberID string) (*domain.ExecutionResult, error) {
	scope := domain.Scope{TeamID: teamID}
	team, tasks, err := s.snapshot(ctx, callerID, scope)
	if err != nil {
		return nil, err
	}

	plan, err := s.planner.PlanUnassign(team, tasks, scope, memberID)
	if err != nil {
		return nil, err
	}

	return s.executor.Execute(ctx, plan, callerID), nil
}

func (s *workloadService) ReassignTask(ctx context.Context, callerID, taskID, toID string) (*domain.ExecutionResult, error) {
	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		if err.Error() == "task not found" {
			return nil, domain.NewNotFoundError("task with id " + taskID)
		}
		return nil, err
	}

	team, tasks, err := s.snapshot(ctx, callerID, domain.Scope{TeamID: task.TeamID})
	if err != nil {
		// Чужая задача неотличима от несуществующей
		if errors.Is(err, domain.ErrForbidden) {
			return nil, domain.NewNotFoundError("task with id " + taskID)
		}
		return nil, err
	}

	plan, err := s.planner.PlanSingleTask(team, tasks, task, toID)
	if err != nil {
		return nil, err
	}

	return s.executor.Execute(ctx, plan, callerID), nil
}

func (s *workloadService) PlanAutoBalance(ctx context.Context, callerID string, scope domain.Scope) (*domain.Plan, error) {
	// Ёмкость ограничивает всю команду, поэтому задачи читаются без фильтра по проекту
	team, tasks, err := s.snapshot(ctx, callerID, domain.Scope{TeamID: scope.TeamID})
	if err != nil {
		return nil, err
	}

	plan := s.planner.PlanAutoBalance(team, tasks, scope)
	for _, u := range plan.Unresolved {
		s.logger.Warn("overload left unresolved",
			"plan_id", plan.ID,
			"team_id", team.ID,
			"member_id", u.MemberID,
			"load", u.ProjectedLoad,
			"capacity", u.Capacity,
			"code", u.Code,
		)
	}

	return plan, nil
}

func (s *workloadService) AutoBalance(ctx context.Context, callerID string, scope domain.Scope) (*domain.Plan, *domain.ExecutionResult, error) {
	plan, err := s.PlanAutoBalance(ctx, callerID, scope)
	if err != nil {
		return nil, nil, err
	}

	return plan, s.executor.Execute(ctx, plan, callerID), nil
}

func (s *workloadService) SuggestAssignee(ctx context.Context, callerID string, scope domain.Scope) (*domain.Member, error) {
	team, tasks, err := s.snapshot(ctx, callerID, scope)
	if err != nil {
		return nil, err
	}

	return s.planner.SuggestAssignee(team, tasks, scope)
}

func (s *workloadService) CheckAssignment(ctx context.Context, callerID string, scope domain.Scope, memberID string) (*AssignmentCheck, error) {
	team, tasks, err := s.snapshot(ctx, callerID, scope)
	if err != nil {
		return nil, err
	}

	return s.planner.CheckAssignment(team, tasks, scope, memberID)
}
