package service

import "github.com/bagdasarian/task-balancer/internal/domain"

// AggregateLoad строит сводку загрузки по каждому участнику команды в порядке состава команды.
// Сложность O(участники × задачи): команды и проекты небольшие.
func AggregateLoad(team *domain.Team, tasks []*domain.Task, scope domain.Scope, policy LoadPolicy) []domain.LoadEntry {
	entries := make([]domain.LoadEntry, 0, len(team.Members))
	for _, member := range team.Members {
		load := CurrentLoad(member, tasks, scope, policy)
		capacity := CapacityOf(member)
		entries = append(entries, domain.LoadEntry{
			MemberID:    member.ID,
			Name:        member.Name,
			Role:        member.Role,
			CurrentLoad: load,
			Capacity:    capacity,
			State:       Classify(load, capacity, policy.HighLoadThreshold),
		})
	}
	return entries
}
