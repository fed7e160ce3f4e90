package service

import (
	"context"

	"github.com/bagdasarian/task-balancer/internal/config"
	"github.com/bagdasarian/task-balancer/internal/domain"
	"github.com/bagdasarian/task-balancer/internal/repository"
)

// ReassignmentPattern отбирает записи журнала о назначениях и переназначениях
const ReassignmentPattern = "reassign|assigned"

type dashboardService struct {
	teamRepo     repository.TeamRepository
	projectRepo  repository.ProjectRepository
	taskRepo     repository.TaskRepository
	activityRepo repository.ActivityLogRepository
	policy       LoadPolicy
	recentLimit  int
}

func NewDashboardService(
	teamRepo repository.TeamRepository,
	projectRepo repository.ProjectRepository,
	taskRepo repository.TaskRepository,
	activityRepo repository.ActivityLogRepository,
	cfg config.WorkloadConfig,
) DashboardService {
	limit := cfg.RecentEventsLimit
	if limit <= 0 {
		limit = config.DefaultRecentEventsLimit
	}
	return &dashboardService{
		teamRepo:     teamRepo,
		projectRepo:  projectRepo,
		taskRepo:     taskRepo,
		activityRepo: activityRepo,
		policy:       loadPolicy(cfg),
		recentLimit:  limit,
	}
}

// GetDashboard собирает сводку только для чтения. Пустой состав команд - не ошибка.
func (s *dashboardService) GetDashboard(ctx context.Context, callerID string, filter DashboardFilter) (*Dashboard, error) {
	teams, err := s.resolveTeams(ctx, callerID, filter.TeamID)
	if err != nil {
		return nil, err
	}

	if filter.ProjectID != "" {
		project, err := s.projectRepo.GetByID(ctx, filter.ProjectID)
		if err != nil {
			if err.Error() == "project not found" {
				return nil, domain.NewNotFoundError("project with id " + filter.ProjectID)
			}
			return nil, err
		}
		if project.OwnerID != callerID {
			return nil, domain.ErrForbidden
		}
	}

	totalProjects, err := s.projectRepo.Count(ctx, repository.ProjectFilter{
		OwnerID:   callerID,
		TeamID:    filter.TeamID,
		ProjectID: filter.ProjectID,
	})
	if err != nil {
		return nil, err
	}

	totalTasks, err := s.taskRepo.Count(ctx, repository.TaskFilter{
		OwnerID:   callerID,
		TeamID:    filter.TeamID,
		ProjectID: filter.ProjectID,
	})
	if err != nil {
		return nil, err
	}

	summary := make([]domain.LoadEntry, 0)
	teamIDs := make([]string, 0, len(teams))
	for _, team := range teams {
		teamIDs = append(teamIDs, team.ID)
		if len(team.Members) == 0 {
			continue
		}

		scope := domain.Scope{TeamID: team.ID, ProjectID: filter.ProjectID}
		tasks, err := s.taskRepo.FindTasks(ctx, repository.TaskFilter{
			TeamID:    team.ID,
			ProjectID: filter.ProjectID,
		})
		if err != nil {
			return nil, err
		}
		summary = append(summary, AggregateLoad(team, tasks, scope, s.policy)...)
	}
	SortForDashboard(summary)

	recent, err := s.activityRepo.FindRecent(ctx, repository.ActivityFilter{
		TeamIDs:        teamIDs,
		ProjectID:      filter.ProjectID,
		MessagePattern: ReassignmentPattern,
		Limit:          s.recentLimit,
	})
	if err != nil {
		return nil, err
	}
	if recent == nil {
		recent = []*domain.AuditEvent{}
	}

	return &Dashboard{
		TotalProjects:       totalProjects,
		TotalTasks:          totalTasks,
		TeamSummary:         summary,
		RecentReassignments: recent,
		Filter:              filter,
	}, nil
}

func (s *dashboardService) resolveTeams(ctx context.Context, callerID, teamID string) ([]*domain.Team, error) {
	if teamID == "" {
		return s.teamRepo.ListByOwner(ctx, callerID)
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

	return []*domain.Team{team}, nil
}
