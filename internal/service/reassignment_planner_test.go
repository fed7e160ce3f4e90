package service

import (
	"errors"
	"fmt"
	"math/rand"
	"testing"

	"github.com/bagdasarian/task-balancer/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPlanner(drain bool) *Planner {
	cfg := testConfig()
	cfg.DrainToHighWater = drain
	p := NewPlanner(cfg)
	p.newID = func() string { return "plan-1" }
	return p
}

func movedTaskIDs(plan *domain.Plan) []string {
	ids := make([]string, 0, len(plan.Moves))
	for _, m := range plan.Moves {
		ids = append(ids, m.Task.ID)
	}
	return ids
}

// exampleTeam: A(capacity 2) ведёт t1 Low, t2 Medium, t3 High; B(capacity 3) ведёт одну задачу
func exampleTeam() (*domain.Team, []*domain.Task) {
	team := newTeam(
		domain.Member{ID: "a", Name: "A", Capacity: 2},
		domain.Member{ID: "b", Name: "B", Capacity: 3},
	)
	tasks := []*domain.Task{
		newTask("t3", domain.PriorityHigh, "a"),
		newTask("t2", domain.PriorityMedium, "a"),
		newTask("t1", domain.PriorityLow, "a"),
		newTask("b1", domain.PriorityHigh, "b"),
	}
	return team, tasks
}

func TestPlanner_PlanAutoBalance(t *testing.T) {
	scope := domain.Scope{TeamID: testTeamID}

	t.Run("разгрузка до ёмкости: переносится только Low", func(t *testing.T) {
		team, tasks := exampleTeam()
		planner := newTestPlanner(false)

		plan := planner.PlanAutoBalance(team, tasks, scope)

		require.Equal(t, []string{"t1"}, movedTaskIDs(plan))
		move := plan.Moves[0]
		assert.Equal(t, "a", move.From.ID)
		assert.Equal(t, "b", move.To.ID)
		assert.Equal(t, 2, move.ProjectedTargetLoad)
		assert.Equal(t, "A is overloaded (3/2)", move.Reason)
		assert.Empty(t, plan.Unresolved)
		assert.Equal(t, "plan-1", plan.ID)
		assert.Equal(t, domain.PlanKindAutoBalance, plan.Kind)

		applyPlan(plan)
		after := AggregateLoad(team, tasks, scope, planner.policy)
		assert.Equal(t, 2, loadOf(after, "a"))
		assert.Equal(t, 2, loadOf(after, "b"))
	})

	t.Run("разгрузка до порога: t1 затем t2, t3 остаётся", func(t *testing.T) {
		team, tasks := exampleTeam()
		planner := newTestPlanner(true)

		plan := planner.PlanAutoBalance(team, tasks, scope)

		require.Equal(t, []string{"t1", "t2"}, movedTaskIDs(plan))
		assert.Equal(t, 2, plan.Moves[0].ProjectedTargetLoad)
		assert.Equal(t, 3, plan.Moves[1].ProjectedTargetLoad)
		assert.Equal(t, "A is overloaded (2/2)", plan.Moves[1].Reason)

		applyPlan(plan)
		after := AggregateLoad(team, tasks, scope, planner.policy)
		assert.Equal(t, 1, loadOf(after, "a"))
		assert.Equal(t, 3, loadOf(after, "b"))
		assert.Equal(t, domain.StateHighLoad, after[1].State)
	})

	t.Run("одинокий перегруженный участник: пустой план и неснятая перегрузка", func(t *testing.T) {
		team := newTeam(domain.Member{ID: "a", Name: "A", Capacity: 1})
		tasks := []*domain.Task{
			newTask("t1", domain.PriorityLow, "a"),
			newTask("t2", domain.PriorityLow, "a"),
		}

		plan := newTestPlanner(false).PlanAutoBalance(team, tasks, scope)

		assert.True(t, plan.IsEmpty())
		require.Len(t, plan.Unresolved, 1)
		assert.Equal(t, domain.UnresolvedOverload{
			MemberID:      "a",
			Name:          "A",
			ProjectedLoad: 2,
			Capacity:      1,
			Code:          domain.CodeNoEligibleCandidates,
		}, plan.Unresolved[0])
	})

	t.Run("только High задачи: перегрузка остаётся", func(t *testing.T) {
		team := newTeam(
			domain.Member{ID: "a", Name: "A", Capacity: 1},
			domain.Member{ID: "b", Name: "B", Capacity: 5},
		)
		tasks := []*domain.Task{
			newTask("t1", domain.PriorityHigh, "a"),
			newTask("t2", domain.PriorityHigh, "a"),
		}

		plan := newTestPlanner(false).PlanAutoBalance(team, tasks, scope)

		assert.True(t, plan.IsEmpty())
		require.Len(t, plan.Unresolved, 1)
		assert.Equal(t, domain.CodeNoEligibleTasks, plan.Unresolved[0].Code)
	})

	t.Run("получатель - наименее загруженный, при равенстве первый по составу", func(t *testing.T) {
		team := newTeam(
			domain.Member{ID: "a", Name: "A", Capacity: 1},
			domain.Member{ID: "b", Name: "B", Capacity: 4},
			domain.Member{ID: "c", Name: "C", Capacity: 4},
			domain.Member{ID: "d", Name: "D", Capacity: 4},
		)
		tasks := []*domain.Task{
			newTask("t1", domain.PriorityLow, "a"),
			newTask("t2", domain.PriorityLow, "a"),
			newTask("t3", domain.PriorityLow, "a"),
			newTask("b1", domain.PriorityHigh, "b"),
		}

		plan := newTestPlanner(false).PlanAutoBalance(team, tasks, scope)

		require.Len(t, plan.Moves, 2)
		assert.Equal(t, "c", plan.Moves[0].To.ID)
		assert.Equal(t, "d", plan.Moves[1].To.ID)
	})

	t.Run("получатели заполняются, остаток перегрузки фиксируется", func(t *testing.T) {
		team := newTeam(
			domain.Member{ID: "a", Name: "A", Capacity: 1},
			domain.Member{ID: "b", Name: "B", Capacity: 1},
		)
		tasks := []*domain.Task{
			newTask("t1", domain.PriorityLow, "a"),
			newTask("t2", domain.PriorityLow, "a"),
			newTask("t3", domain.PriorityMedium, "a"),
		}

		plan := newTestPlanner(false).PlanAutoBalance(team, tasks, scope)

		require.Equal(t, []string{"t1"}, movedTaskIDs(plan))
		require.Len(t, plan.Unresolved, 1)
		assert.Equal(t, 2, plan.Unresolved[0].ProjectedLoad)
		assert.Equal(t, domain.CodeNoEligibleCandidates, plan.Unresolved[0].Code)
	})

	t.Run("без перегрузки план пустой", func(t *testing.T) {
		team := newTeam(
			domain.Member{ID: "a", Name: "A", Capacity: 2},
			domain.Member{ID: "b", Name: "B", Capacity: 2},
		)
		tasks := []*domain.Task{
			newTask("t1", domain.PriorityLow, "a"),
			newTask("t2", domain.PriorityLow, "a"),
		}

		plan := newTestPlanner(true).PlanAutoBalance(team, tasks, scope)

		assert.True(t, plan.IsEmpty())
		assert.Empty(t, plan.Unresolved)
		assert.Len(t, plan.Snapshot, 2)
	})

	t.Run("задачи Done не переносятся, если не учитываются", func(t *testing.T) {
		team := newTeam(
			domain.Member{ID: "a", Name: "A", Capacity: 1},
			domain.Member{ID: "b", Name: "B", Capacity: 3},
		)
		done := newTask("t1", domain.PriorityLow, "a")
		done.Status = domain.TaskStatusDone
		tasks := []*domain.Task{
			done,
			newTask("t2", domain.PriorityLow, "a"),
		}

		cfg := testConfig()
		cfg.CountDoneTasks = false
		plan := NewPlanner(cfg).PlanAutoBalance(team, tasks, scope)
		assert.True(t, plan.IsEmpty())

		plan = newTestPlanner(false).PlanAutoBalance(team, tasks, scope)
		assert.Equal(t, []string{"t1"}, movedTaskIDs(plan))
	})

	t.Run("проект ограничивает задачи, но не ёмкость получателя", func(t *testing.T) {
		team := newTeam(
			domain.Member{ID: "a", Name: "A", Capacity: 2},
			domain.Member{ID: "b", Name: "B", Capacity: 2},
		)
		other := func(task *domain.Task) *domain.Task {
			task.ProjectID = "project-2"
			return task
		}
		tasks := []*domain.Task{
			newTask("p1", domain.PriorityLow, "a"),
			newTask("p2", domain.PriorityLow, "a"),
			newTask("p3", domain.PriorityLow, "a"),
			other(newTask("q1", domain.PriorityHigh, "b")),
			other(newTask("q2", domain.PriorityHigh, "b")),
		}
		projectScope := domain.Scope{TeamID: testTeamID, ProjectID: testProjectID}

		for _, drain := range []bool{false, true} {
			plan := newTestPlanner(drain).PlanAutoBalance(team, tasks, projectScope)

			assert.Empty(t, plan.Moves, "drain=%v", drain)
			require.Len(t, plan.Unresolved, 1)
			assert.Equal(t, "a", plan.Unresolved[0].MemberID)
			assert.Equal(t, domain.CodeNoEligibleCandidates, plan.Unresolved[0].Code)
			assert.Equal(t, 3, loadOf(plan.Snapshot, "a"))
			assert.Equal(t, 2, loadOf(plan.Snapshot, "b"))
		}
	})

	t.Run("в пределах проекта переносятся только его задачи", func(t *testing.T) {
		team := newTeam(
			domain.Member{ID: "a", Name: "A", Capacity: 2},
			domain.Member{ID: "b", Name: "B", Capacity: 3},
		)
		foreign := newTask("q1", domain.PriorityLow, "a")
		foreign.ProjectID = "project-2"
		tasks := []*domain.Task{
			foreign,
			newTask("p1", domain.PriorityMedium, "a"),
			newTask("p2", domain.PriorityHigh, "a"),
			newTask("b1", domain.PriorityHigh, "b"),
		}

		plan := newTestPlanner(false).PlanAutoBalance(team, tasks, domain.Scope{TeamID: testTeamID, ProjectID: testProjectID})

		assert.Equal(t, []string{"p1"}, movedTaskIDs(plan))
		assert.Equal(t, 2, plan.Moves[0].ProjectedTargetLoad)
	})

	t.Run("повторный запуск даёт пустой план", func(t *testing.T) {
		for _, drain := range []bool{false, true} {
			team, tasks := exampleTeam()
			planner := newTestPlanner(drain)

			first := planner.PlanAutoBalance(team, tasks, scope)
			require.False(t, first.IsEmpty())
			applyPlan(first)

			second := planner.PlanAutoBalance(team, tasks, scope)
			assert.True(t, second.IsEmpty(), "drain=%v", drain)
		}
	})
}

func TestPlanner_PlanAutoBalance_Properties(t *testing.T) {
	rnd := rand.New(rand.NewSource(20240611))
	priorities := []domain.Priority{domain.PriorityLow, domain.PriorityMedium, domain.PriorityHigh}
	projects := []string{testProjectID, "project-2", "project-3"}
	teamScope := domain.Scope{TeamID: testTeamID}

	for i := 0; i < 300; i++ {
		memberCount := 1 + rnd.Intn(5)
		members := make([]domain.Member, 0, memberCount)
		for m := 0; m < memberCount; m++ {
			members = append(members, domain.Member{
				ID:       fmt.Sprintf("m%d", m),
				Name:     fmt.Sprintf("Member %d", m),
				Capacity: 1 + rnd.Intn(4),
			})
		}
		team := newTeam(members...)

		taskCount := rnd.Intn(15)
		tasks := make([]*domain.Task, 0, taskCount)
		for n := 0; n < taskCount; n++ {
			assignee := ""
			if k := rnd.Intn(len(members) + 1); k < len(members) {
				assignee = members[k].ID
			}
			task := newTask(fmt.Sprintf("t%d", n), priorities[rnd.Intn(3)], assignee)
			task.ProjectID = projects[rnd.Intn(len(projects))]
			tasks = append(tasks, task)
		}

		drain := i%2 == 1
		// Каждый третий случай балансирует в пределах одного проекта
		scope := teamScope
		if i%3 == 0 {
			scope.ProjectID = projects[rnd.Intn(len(projects))]
		}
		planner := newTestPlanner(drain)
		name := fmt.Sprintf("случай %d drain=%v project=%q", i, drain, scope.ProjectID)

		before := AggregateLoad(team, tasks, teamScope, planner.policy)
		plan := planner.PlanAutoBalance(team, tasks, scope)

		targets := make(map[string]int)
		for _, move := range plan.Moves {
			assert.NotEqual(t, domain.PriorityHigh, move.Task.Priority, name)
			if scope.ProjectID != "" {
				assert.Equal(t, scope.ProjectID, move.Task.ProjectID, name)
			}
			require.NotNil(t, move.To, name)
			assert.LessOrEqual(t, move.ProjectedTargetLoad, move.To.Capacity, name)
			targets[move.To.ID] = move.To.Capacity
		}

		applyPlan(plan)
		after := AggregateLoad(team, tasks, teamScope, planner.policy)
		for j := range after {
			if before[j].State != domain.StateOverloaded {
				assert.NotEqual(t, domain.StateOverloaded, after[j].State, name)
			}
		}
		for memberID, capacity := range targets {
			assert.LessOrEqual(t, loadOf(after, memberID), capacity, name)
		}

		second := planner.PlanAutoBalance(team, tasks, scope)
		assert.True(t, second.IsEmpty(), name)

		// Балансировка всей команды не отменяет перенесённое в пределах проекта
		if scope.ProjectID != "" {
			followUp := planner.PlanAutoBalance(team, tasks, teamScope)
			for _, move := range followUp.Moves {
				_, wasTarget := targets[move.From.ID]
				assert.False(t, wasTarget, name)
			}
		}
	}
}

func TestPlanner_PlanManual(t *testing.T) {
	scope := domain.Scope{TeamID: testTeamID}

	t.Run("переносятся все задачи, включая High и Done", func(t *testing.T) {
		team, tasks := exampleTeam()
		done := newTask("t4", domain.PriorityLow, "a")
		done.Status = domain.TaskStatusDone
		tasks = append(tasks, done)

		plan, err := newTestPlanner(false).PlanManual(team, tasks, scope, "a", "b")

		require.NoError(t, err)
		assert.Equal(t, []string{"t3", "t2", "t1", "t4"}, movedTaskIDs(plan))
		assert.Equal(t, domain.PlanKindManual, plan.Kind)
		assert.Equal(t, 5, plan.Moves[3].ProjectedTargetLoad)
		for _, move := range plan.Moves {
			assert.Equal(t, "manual reassignment", move.Reason)
		}
	})

	t.Run("ошибка: получатель не указан", func(t *testing.T) {
		team, tasks := exampleTeam()

		plan, err := newTestPlanner(false).PlanManual(team, tasks, scope, "a", "")

		assert.Nil(t, plan)
		assert.True(t, errors.Is(err, domain.ErrInvalidTarget))
	})

	t.Run("ошибка: получатель совпадает с источником", func(t *testing.T) {
		team, tasks := exampleTeam()

		_, err := newTestPlanner(false).PlanManual(team, tasks, scope, "a", "a")

		assert.True(t, errors.Is(err, domain.ErrInvalidTarget))
	})

	t.Run("ошибка: получатель не из команды", func(t *testing.T) {
		team, tasks := exampleTeam()

		_, err := newTestPlanner(false).PlanManual(team, tasks, scope, "a", "stranger")

		assert.True(t, errors.Is(err, domain.ErrInvalidTarget))
	})

	t.Run("ошибка: источник не найден", func(t *testing.T) {
		team, tasks := exampleTeam()

		_, err := newTestPlanner(false).PlanManual(team, tasks, scope, "ghost", "b")

		assert.True(t, errors.Is(err, domain.ErrNotFound))
	})
}

func TestPlanner_PlanUnassign(t *testing.T) {
	scope := domain.Scope{TeamID: testTeamID}

	t.Run("снимаются все задачи участника", func(t *testing.T) {
		team, tasks := exampleTeam()

		plan, err := newTestPlanner(false).PlanUnassign(team, tasks, scope, "a")

		require.NoError(t, err)
		assert.Equal(t, []string{"t3", "t2", "t1"}, movedTaskIDs(plan))
		for _, move := range plan.Moves {
			assert.Nil(t, move.To)
			assert.Zero(t, move.ProjectedTargetLoad)
		}

		applyPlan(plan)
		after := AggregateLoad(team, tasks, scope, newTestPlanner(false).policy)
		assert.Equal(t, 0, loadOf(after, "a"))
		assert.Equal(t, 1, loadOf(after, "b"))
	})

	t.Run("ошибка: участник не найден", func(t *testing.T) {
		team, tasks := exampleTeam()

		_, err := newTestPlanner(false).PlanUnassign(team, tasks, scope, "ghost")

		assert.True(t, errors.Is(err, domain.ErrNotFound))
	})
}

func TestPlanner_PlanSingleTask(t *testing.T) {
	t.Run("переносится одна задача", func(t *testing.T) {
		team, tasks := exampleTeam()

		plan, err := newTestPlanner(false).PlanSingleTask(team, tasks, tasks[0], "b")

		require.NoError(t, err)
		require.Len(t, plan.Moves, 1)
		assert.Equal(t, "t3", plan.Moves[0].Task.ID)
		assert.Equal(t, "a", plan.Moves[0].From.ID)
		assert.Equal(t, 2, plan.Moves[0].ProjectedTargetLoad)
		assert.Equal(t, domain.PlanKindSingleTask, plan.Kind)
	})

	t.Run("неназначенная задача", func(t *testing.T) {
		team, tasks := exampleTeam()
		free := newTask("t9", domain.PriorityLow, "")
		tasks = append(tasks, free)

		plan, err := newTestPlanner(false).PlanSingleTask(team, tasks, free, "a")

		require.NoError(t, err)
		assert.Nil(t, plan.Moves[0].From)
		assert.Equal(t, 4, plan.Moves[0].ProjectedTargetLoad)
	})

	t.Run("задача удалённого участника", func(t *testing.T) {
		team, tasks := exampleTeam()
		orphan := newTask("t9", domain.PriorityLow, "gone")
		tasks = append(tasks, orphan)

		plan, err := newTestPlanner(false).PlanSingleTask(team, tasks, orphan, "b")

		require.NoError(t, err)
		assert.Equal(t, "gone", plan.Moves[0].From.ID)
		assert.Empty(t, plan.Moves[0].From.Name)
	})

	t.Run("ошибка: задача уже у получателя", func(t *testing.T) {
		team, tasks := exampleTeam()

		_, err := newTestPlanner(false).PlanSingleTask(team, tasks, tasks[0], "a")

		assert.True(t, errors.Is(err, domain.ErrInvalidTarget))
	})

	t.Run("ошибка: получатель не указан", func(t *testing.T) {
		team, tasks := exampleTeam()

		_, err := newTestPlanner(false).PlanSingleTask(team, tasks, tasks[0], "")

		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrInvalidTarget))
		assert.NotContains(t, err.Error(), "  ")
	})

	t.Run("ошибка: задача другой команды", func(t *testing.T) {
		team, tasks := exampleTeam()
		foreign := newTask("t9", domain.PriorityLow, "a")
		foreign.TeamID = "team-2"

		_, err := newTestPlanner(false).PlanSingleTask(team, tasks, foreign, "b")

		assert.True(t, errors.Is(err, domain.ErrInvalidTarget))
	})
}

func TestPlanner_SuggestAssignee(t *testing.T) {
	t.Run("наименьшее отношение загрузки к ёмкости", func(t *testing.T) {
		team := newTeam(
			domain.Member{ID: "a", Name: "A", Capacity: 2},
			domain.Member{ID: "b", Name: "B", Capacity: 6},
		)
		tasks := []*domain.Task{
			newTask("t1", domain.PriorityLow, "a"),
			newTask("t2", domain.PriorityLow, "b"),
			newTask("t3", domain.PriorityLow, "b"),
		}

		member, err := newTestPlanner(false).SuggestAssignee(team, tasks, domain.Scope{TeamID: testTeamID})

		require.NoError(t, err)
		assert.Equal(t, "b", member.ID)
	})

	t.Run("редактируемая задача не учитывается, при равенстве первый", func(t *testing.T) {
		team := newTeam(
			domain.Member{ID: "a", Name: "A", Capacity: 2},
			domain.Member{ID: "b", Name: "B", Capacity: 2},
		)
		tasks := []*domain.Task{
			newTask("t1", domain.PriorityLow, "a"),
		}

		member, err := newTestPlanner(false).SuggestAssignee(team, tasks, domain.Scope{TeamID: testTeamID, ExcludeTaskID: "t1"})

		require.NoError(t, err)
		assert.Equal(t, "a", member.ID)
	})

	t.Run("ошибка: пустая команда", func(t *testing.T) {
		_, err := newTestPlanner(false).SuggestAssignee(newTeam(), nil, domain.Scope{TeamID: testTeamID})

		assert.True(t, errors.Is(err, domain.ErrNoEligibleCandidates))
	})
}

func TestPlanner_CheckAssignment(t *testing.T) {
	team, tasks := exampleTeam()
	planner := newTestPlanner(false)
	scope := domain.Scope{TeamID: testTeamID}

	t.Run("участник заполнен", func(t *testing.T) {
		check, err := planner.CheckAssignment(team, tasks, scope, "a")

		require.NoError(t, err)
		assert.True(t, check.WouldOverload)
		assert.Equal(t, 3, check.CurrentLoad)
		assert.Equal(t, 2, check.Capacity)
	})

	t.Run("есть свободное место", func(t *testing.T) {
		check, err := planner.CheckAssignment(team, tasks, scope, "b")

		require.NoError(t, err)
		assert.False(t, check.WouldOverload)
		assert.Equal(t, 1, check.CurrentLoad)
	})

	t.Run("ошибка: участник не из команды", func(t *testing.T) {
		_, err := planner.CheckAssignment(team, tasks, scope, "ghost")

		assert.True(t, errors.Is(err, domain.ErrInvalidTarget))
	})
}
