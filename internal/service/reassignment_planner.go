package service

import (
	"fmt"
	"sort"

	"github.com/bagdasarian/task-balancer/internal/config"
	"github.com/bagdasarian/task-balancer/internal/domain"
	"github.com/google/uuid"
)

// Planner строит планы переназначения. Хранилище не читает и не меняет:
// работает только со снимком команды и задач, переданным вызывающим.
type Planner struct {
	policy           LoadPolicy
	drainToHighWater bool
	newID            func() string
}

func NewPlanner(cfg config.WorkloadConfig) *Planner {
	return &Planner{
		policy:           loadPolicy(cfg),
		drainToHighWater: cfg.DrainToHighWater,
		newID:            uuid.NewString,
	}
}

func (p *Planner) newPlan(kind domain.PlanKind, teamID string) *domain.Plan {
	return &domain.Plan{
		ID:         p.newID(),
		Kind:       kind,
		TeamID:     teamID,
		Moves:      make([]domain.Move, 0),
		Unresolved: make([]domain.UnresolvedOverload, 0),
	}
}

// memberTasks возвращает задачи участника в пределах команды/проекта, независимо от статуса
func memberTasks(memberID string, tasks []*domain.Task, scope domain.Scope) []*domain.Task {
	all := LoadPolicy{CountDoneTasks: true}
	result := make([]*domain.Task, 0)
	for _, task := range tasks {
		if task.IsAssignedTo(memberID) && countsTowardLoad(task, scope, all) {
			result = append(result, task)
		}
	}
	return result
}

// PlanManual переносит все задачи участника fromID на toID вне зависимости от приоритета
func (p *Planner) PlanManual(team *domain.Team, tasks []*domain.Task, scope domain.Scope, fromID, toID string) (*domain.Plan, error) {
	from, ok := team.MemberByID(fromID)
	if !ok {
		return nil, domain.NewNotFoundError("member with id " + fromID)
	}
	if toID == "" {
		return nil, domain.NewInvalidTargetError("target member is required, use unassign to clear assignments")
	}
	if toID == fromID {
		return nil, domain.NewInvalidTargetError("target member must differ from source member")
	}
	to, ok := team.MemberByID(toID)
	if !ok {
		return nil, domain.NewInvalidTargetError("target member " + toID + " is not a member of team " + team.ID)
	}

	plan := p.newPlan(domain.PlanKindManual, team.ID)
	plan.Snapshot = AggregateLoad(team, tasks, scope, p.policy)

	targetLoad := CurrentLoad(to, tasks, scope, p.policy)
	for _, task := range memberTasks(fromID, tasks, scope) {
		if countsTowardLoad(task, scope, p.policy) {
			targetLoad++
		}
		plan.Moves = append(plan.Moves, domain.Move{
			Task:                task,
			From:                &from,
			To:                  &to,
			Reason:              "manual reassignment",
			ProjectedTargetLoad: targetLoad,
		})
	}

	return plan, nil
}

// PlanUnassign снимает назначение со всех задач участника
func (p *Planner) PlanUnassign(team *domain.Team, tasks []*domain.Task, scope domain.Scope, memberID string) (*domain.Plan, error) {
	from, ok := team.MemberByID(memberID)
	if !ok {
		return nil, domain.NewNotFoundError("member with id " + memberID)
	}

	plan := p.newPlan(domain.PlanKindUnassign, team.ID)
	plan.Snapshot = AggregateLoad(team, tasks, scope, p.policy)

	for _, task := range memberTasks(memberID, tasks, scope) {
		plan.Moves = append(plan.Moves, domain.Move{
			Task:   task,
			From:   &from,
			Reason: "member unassigned",
		})
	}

	return plan, nil
}

// PlanSingleTask переназначает одну задачу на участника toID
func (p *Planner) PlanSingleTask(team *domain.Team, tasks []*domain.Task, task *domain.Task, toID string) (*domain.Plan, error) {
	if task.TeamID != team.ID {
		return nil, domain.NewInvalidTargetError("task " + task.ID + " does not belong to team " + team.ID)
	}
	if toID == "" {
		return nil, domain.NewInvalidTargetError("target member is required, use unassign to clear assignments")
	}
	to, ok := team.MemberByID(toID)
	if !ok {
		return nil, domain.NewInvalidTargetError("target member " + toID + " is not a member of team " + team.ID)
	}

	var from *domain.Member
	if task.AssignedMemberID != nil {
		if *task.AssignedMemberID == toID {
			return nil, domain.NewInvalidTargetError("task is already assigned to target member")
		}
		if m, ok := team.MemberByID(*task.AssignedMemberID); ok {
			from = &m
		} else {
			// Участник удалён, задача держит висячую ссылку
			from = &domain.Member{ID: *task.AssignedMemberID}
		}
	}

	scope := domain.Scope{TeamID: team.ID, ExcludeTaskID: task.ID}
	plan := p.newPlan(domain.PlanKindSingleTask, team.ID)
	plan.Snapshot = AggregateLoad(team, tasks, scope, p.policy)

	projected := CurrentLoad(to, tasks, scope, p.policy)
	if countsTowardLoad(task, domain.Scope{TeamID: team.ID}, p.policy) {
		projected++
	}
	plan.Moves = append(plan.Moves, domain.Move{
		Task:                task,
		From:                from,
		To:                  &to,
		Reason:              "manual task assignment",
		ProjectedTargetLoad: projected,
	})

	return plan, nil
}

// eligibleForAutoBalance возвращает задачи Low и Medium, сначала Low.
// High никогда не переносятся автоматически.
func eligibleForAutoBalance(memberID string, tasks []*domain.Task, scope domain.Scope, policy LoadPolicy) []*domain.Task {
	eligible := make([]*domain.Task, 0)
	for _, task := range tasks {
		if !task.IsAssignedTo(memberID) || !countsTowardLoad(task, scope, policy) {
			continue
		}
		if task.Priority == domain.PriorityLow || task.Priority == domain.PriorityMedium {
			eligible = append(eligible, task)
		}
	}
	sort.SliceStable(eligible, func(i, j int) bool {
		return eligible[i].Priority.Rank() < eligible[j].Priority.Rank()
	})
	return eligible
}

// needsRelief - нужно ли продолжать разгружать участника
func (p *Planner) needsRelief(load, capacity int) bool {
	if p.drainToHighWater {
		return Classify(load, capacity, p.policy.HighLoadThreshold) != domain.StateNormal
	}
	return load > capacity
}

// PlanAutoBalance переносит задачи Low/Medium с перегруженных участников на наименее загруженных.
// Загрузка и ёмкость всегда считаются по всей команде, scope.ProjectID лишь ограничивает,
// какие задачи можно переносить. tasks должны содержать все задачи команды.
// Пустой план означает, что делать нечего.
func (p *Planner) PlanAutoBalance(team *domain.Team, tasks []*domain.Task, scope domain.Scope) *domain.Plan {
	teamScope := domain.Scope{TeamID: team.ID}
	plan := p.newPlan(domain.PlanKindAutoBalance, team.ID)
	plan.Snapshot = AggregateLoad(team, tasks, teamScope, p.policy)

	loads := make(map[string]int, len(team.Members))
	for _, entry := range plan.Snapshot {
		loads[entry.MemberID] = entry.CurrentLoad
	}

	for _, source := range team.Members {
		if Classify(loads[source.ID], source.Capacity, p.policy.HighLoadThreshold) != domain.StateOverloaded {
			continue
		}

		noCandidates := false
		for _, task := range eligibleForAutoBalance(source.ID, tasks, scope, p.policy) {
			if !p.needsRelief(loads[source.ID], source.Capacity) {
				break
			}

			target, ok := pickTarget(team.Members, loads, source.ID)
			if !ok {
				noCandidates = true
				break
			}

			from := source
			plan.Moves = append(plan.Moves, domain.Move{
				Task:                task,
				From:                &from,
				To:                  &target,
				Reason:              fmt.Sprintf("%s is overloaded (%d/%d)", source.Name, loads[source.ID], source.Capacity),
				ProjectedTargetLoad: loads[target.ID] + 1,
			})
			loads[source.ID]--
			loads[target.ID]++
		}

		if loads[source.ID] > source.Capacity {
			code := domain.CodeNoEligibleTasks
			if noCandidates {
				code = domain.CodeNoEligibleCandidates
			}
			plan.Unresolved = append(plan.Unresolved, domain.UnresolvedOverload{
				MemberID:      source.ID,
				Name:          source.Name,
				ProjectedLoad: loads[source.ID],
				Capacity:      source.Capacity,
				Code:          code,
			})
		}
	}

	return plan
}

// pickTarget выбирает участника с наименьшей текущей загрузкой среди тех, у кого load < capacity.
// Загрузка берётся из счётчиков планирования, поэтому уже заполненные этим проходом получатели
// не выбираются. При равенстве побеждает тот, кто раньше в составе команды.
func pickTarget(members []domain.Member, loads map[string]int, excludeID string) (domain.Member, bool) {
	var best domain.Member
	found := false
	for _, member := range members {
		if member.ID == excludeID || loads[member.ID] >= member.Capacity {
			continue
		}
		if !found || loads[member.ID] < loads[best.ID] {
			best = member
			found = true
		}
	}
	return best, found
}

// SuggestAssignee подбирает участника с наименьшим отношением загрузки к ёмкости.
// scope.ExcludeTaskID позволяет не учитывать редактируемую задачу.
func (p *Planner) SuggestAssignee(team *domain.Team, tasks []*domain.Task, scope domain.Scope) (*domain.Member, error) {
	if len(team.Members) == 0 {
		return nil, domain.ErrNoEligibleCandidates
	}

	var best *domain.Member
	bestRatio := 0.0
	for i := range team.Members {
		member := team.Members[i]
		ratio := loadRatio(CurrentLoad(member, tasks, scope, p.policy), member.Capacity)
		if best == nil || ratio < bestRatio {
			best = &member
			bestRatio = ratio
		}
	}

	return best, nil
}

func loadRatio(load, capacity int) float64 {
	if capacity <= 0 {
		if load == 0 {
			return 0
		}
		return float64(load)
	}
	return float64(load) / float64(capacity)
}

// AssignmentCheck - результат проверки назначения задачи на участника
type AssignmentCheck struct {
	Member      domain.Member
	CurrentLoad int
	Capacity    int
	// WouldOverload - у участника уже нет свободного места
	WouldOverload bool
}

// CheckAssignment проверяет, перегрузит ли назначение ещё одной задачи участника memberID
func (p *Planner) CheckAssignment(team *domain.Team, tasks []*domain.Task, scope domain.Scope, memberID string) (*AssignmentCheck, error) {
	member, ok := team.MemberByID(memberID)
	if !ok {
		return nil, domain.NewInvalidTargetError("member " + memberID + " is not a member of team " + team.ID)
	}

	load := CurrentLoad(member, tasks, scope, p.policy)
	return &AssignmentCheck{
		Member:        member,
		CurrentLoad:   load,
		Capacity:      member.Capacity,
		WouldOverload: load >= member.Capacity,
	}, nil
}
