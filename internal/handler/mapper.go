package handler

import (
	"errors"
	"time"

	"github.com/bagdasarian/task-balancer/internal/domain"
	"github.com/bagdasarian/task-balancer/internal/service"
)

func domainMemberToHTTP(member domain.Member) MemberResponse {
	return MemberResponse{
		MemberID: member.ID,
		Name:     member.Name,
		Role:     member.Role,
		Capacity: member.Capacity,
	}
}

func domainLoadEntriesToHTTP(entries []domain.LoadEntry) []LoadEntryResponse {
	result := make([]LoadEntryResponse, 0, len(entries))
	for _, e := range entries {
		result = append(result, LoadEntryResponse{
			MemberID:    e.MemberID,
			Name:        e.Name,
			Role:        e.Role,
			CurrentLoad: e.CurrentLoad,
			Capacity:    e.Capacity,
			State:       string(e.State),
		})
	}
	return result
}

func domainPlanToHTTP(plan *domain.Plan) PlanResponse {
	moves := make([]MoveResponse, 0, len(plan.Moves))
	for _, m := range plan.Moves {
		var from, to *string
		if m.From != nil {
			id := m.From.ID
			from = &id
		}
		if m.To != nil {
			id := m.To.ID
			to = &id
		}
		moves = append(moves, MoveResponse{
			TaskID:              m.Task.ID,
			TaskTitle:           m.Task.Title,
			Priority:            string(m.Task.Priority),
			FromMemberID:        from,
			ToMemberID:          to,
			Reason:              m.Reason,
			ProjectedTargetLoad: m.ProjectedTargetLoad,
		})
	}

	unresolved := make([]UnresolvedOverloadResponse, 0, len(plan.Unresolved))
	for _, u := range plan.Unresolved {
		unresolved = append(unresolved, UnresolvedOverloadResponse{
			MemberID:      u.MemberID,
			Name:          u.Name,
			ProjectedLoad: u.ProjectedLoad,
			Capacity:      u.Capacity,
			Code:          u.Code,
		})
	}

	return PlanResponse{
		PlanID:     plan.ID,
		Kind:       string(plan.Kind),
		TeamID:     plan.TeamID,
		Moves:      moves,
		Unresolved: unresolved,
	}
}

func domainAuditEventToHTTP(event *domain.AuditEvent) AuditEventResponse {
	return AuditEventResponse{
		ID:        event.ID,
		Message:   event.Message,
		TaskID:    event.TaskID,
		ProjectID: event.ProjectID,
		TeamID:    event.TeamID,
		ActorID:   event.ActorID,
		Timestamp: event.Timestamp.Format(time.RFC3339),
	}
}

func domainAuditEventsToHTTP(events []*domain.AuditEvent) []AuditEventResponse {
	result := make([]AuditEventResponse, 0, len(events))
	for _, e := range events {
		result = append(result, domainAuditEventToHTTP(e))
	}
	return result
}

func domainExecutionToHTTP(result *domain.ExecutionResult) ExecutionResponse {
	failures := make([]MoveFailureResponse, 0)
	for _, res := range result.Results {
		if res.Status == domain.MoveApplied {
			continue
		}
		failure := MoveFailureResponse{
			TaskID: res.Move.Task.ID,
			Status: string(res.Status),
			Code:   "INTERNAL_ERROR",
		}
		if res.Err != nil {
			failure.Message = res.Err.Error()
		}
		var domainErr *domain.DomainError
		if errors.As(res.Err, &domainErr) {
			failure.Code = domainErr.Code
		}
		failures = append(failures, failure)
	}

	return ExecutionResponse{
		PlanID:      result.PlanID,
		MovedCount:  result.MovedCount,
		Failures:    failures,
		AuditEvents: domainAuditEventsToHTTP(result.AuditEvents()),
	}
}

func domainDashboardToHTTP(d *service.Dashboard) DashboardResponse {
	return DashboardResponse{
		TotalProjects:       d.TotalProjects,
		TotalTasks:          d.TotalTasks,
		TeamSummary:         domainLoadEntriesToHTTP(d.TeamSummary),
		RecentReassignments: domainAuditEventsToHTTP(d.RecentReassignments),
		TeamID:              d.Filter.TeamID,
		ProjectID:           d.Filter.ProjectID,
	}
}
