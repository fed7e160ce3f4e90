package service

import (
	"github.com/bagdasarian/task-balancer/internal/config"
	"github.com/bagdasarian/task-balancer/internal/domain"
)

const (
	testTeamID    = "team-1"
	testProjectID = "project-1"
	testOwnerID   = "owner-1"
)

func strPtr(s string) *string {
	return &s
}

func testConfig() config.WorkloadConfig {
	return config.WorkloadConfig{
		HighLoadThreshold:  config.DefaultHighLoadThreshold,
		RecentEventsLimit:  config.DefaultRecentEventsLimit,
		CountDoneTasks:     true,
		ExecuteConcurrency: 1,
	}
}

func newTask(id string, priority domain.Priority, memberID string) *domain.Task {
	task := &domain.Task{
		ID:        id,
		Title:     "Task " + id,
		Priority:  priority,
		Status:    domain.TaskStatusPending,
		ProjectID: testProjectID,
		TeamID:    testTeamID,
		OwnerID:   testOwnerID,
	}
	if memberID != "" {
		task.AssignedMemberID = strPtr(memberID)
	}
	return task
}

func newTeam(members ...domain.Member) *domain.Team {
	return &domain.Team{
		ID:      testTeamID,
		Name:    "backend",
		OwnerID: testOwnerID,
		Members: members,
	}
}

// applyPlan применяет перемещения к задачам в памяти, как это сделал бы исполнитель
func applyPlan(plan *domain.Plan) {
	for _, move := range plan.Moves {
		if move.To == nil {
			move.Task.AssignedMemberID = nil
			continue
		}
		move.Task.AssignedMemberID = strPtr(move.To.ID)
	}
}

func loadOf(entries []domain.LoadEntry, memberID string) int {
	for _, e := range entries {
		if e.MemberID == memberID {
			return e.CurrentLoad
		}
	}
	return -1
}
