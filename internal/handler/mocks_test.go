package handler

import (
	"context"

	"github.com/bagdasarian/task-balancer/internal/domain"
	"github.com/bagdasarian/task-balancer/internal/service"
	"github.com/stretchr/testify/mock"
)

type mockWorkloadService struct {
	mock.Mock
}

func (m *mockWorkloadService) GetTeamLoad(ctx context.Context, callerID string, scope domain.Scope) ([]domain.LoadEntry, error) {
	args := m.Called(ctx, callerID, scope)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LoadEntry), args.Error(1)
}

func (m *mockWorkloadService) ReassignMemberTasks(ctx context.Context, callerID, teamID, fromID, toID string) (*domain.ExecutionResult, error) {
	args := m.Called(ctx, callerID, teamID, fromID, toID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExecutionResult), args.Error(1)
}

func (m *mockWorkloadService) UnassignMemberTasks(ctx context.Context, callerID, teamID, memberID string) (*domain.ExecutionResult, error) {
	args := m.Called(ctx, callerID, teamID, memberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExecutionResult), args.Error(1)
}

func (m *mockWorkloadService) ReassignTask(ctx context.Context, callerID, taskID, toID string) (*domain.ExecutionResult, error) {
	args := m.Called(ctx, callerID, taskID, toID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExecutionResult), args.Error(1)
}

func (m *mockWorkloadService) PlanAutoBalance(ctx context.Context, callerID string, scope domain.Scope) (*domain.Plan, error) {
	args := m.Called(ctx, callerID, scope)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Plan), args.Error(1)
}

func (m *mockWorkloadService) AutoBalance(ctx context.Context, callerID string, scope domain.Scope) (*domain.Plan, *domain.ExecutionResult, error) {
	args := m.Called(ctx, callerID, scope)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.Plan), args.Get(1).(*domain.ExecutionResult), args.Error(2)
}

func (m *mockWorkloadService) SuggestAssignee(ctx context.Context, callerID string, scope domain.Scope) (*domain.Member, error) {
	args := m.Called(ctx, callerID, scope)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Member), args.Error(1)
}

func (m *mockWorkloadService) CheckAssignment(ctx context.Context, callerID string, scope domain.Scope, memberID string) (*service.AssignmentCheck, error) {
	args := m.Called(ctx, callerID, scope, memberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AssignmentCheck), args.Error(1)
}

type mockDashboardService struct {
	mock.Mock
}

func (m *mockDashboardService) GetDashboard(ctx context.Context, callerID string, filter service.DashboardFilter) (*service.Dashboard, error) {
	args := m.Called(ctx, callerID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Dashboard), args.Error(1)
}
