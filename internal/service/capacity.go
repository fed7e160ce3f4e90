package service

import (
	"github.com/bagdasarian/task-balancer/internal/config"
	"github.com/bagdasarian/task-balancer/internal/domain"
)

// LoadPolicy - правила подсчёта загрузки и классификации
type LoadPolicy struct {
	HighLoadThreshold float64
	CountDoneTasks    bool
}

func loadPolicy(cfg config.WorkloadConfig) LoadPolicy {
	threshold := cfg.HighLoadThreshold
	if threshold <= 0 {
		threshold = config.DefaultHighLoadThreshold
	}
	return LoadPolicy{
		HighLoadThreshold: threshold,
		CountDoneTasks:    cfg.CountDoneTasks,
	}
}

// CapacityOf возвращает заявленную ёмкость участника.
// Ограничение capacity >= 1 проверяется при редактировании участника, здесь не повторяется.
func CapacityOf(member domain.Member) int {
	return member.Capacity
}

// CurrentLoad считает задачи участника в пределах scope
func CurrentLoad(member domain.Member, tasks []*domain.Task, scope domain.Scope, policy LoadPolicy) int {
	load := 0
	for _, task := range tasks {
		if task.IsAssignedTo(member.ID) && countsTowardLoad(task, scope, policy) {
			load++
		}
	}
	return load
}

func countsTowardLoad(task *domain.Task, scope domain.Scope, policy LoadPolicy) bool {
	if scope.TeamID != "" && task.TeamID != scope.TeamID {
		return false
	}
	if scope.ProjectID != "" && task.ProjectID != scope.ProjectID {
		return false
	}
	if scope.ExcludeTaskID != "" && task.ID == scope.ExcludeTaskID {
		return false
	}
	if !policy.CountDoneTasks && task.Status == domain.TaskStatusDone {
		return false
	}
	return true
}
