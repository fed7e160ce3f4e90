package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bagdasarian/task-balancer/internal/domain"
	"github.com/bagdasarian/task-balancer/internal/repository"
)

type taskRepository struct {
	executor DBExecutor
}

func NewTaskRepository(db *sql.DB) *taskRepository {
	return &taskRepository{executor: db}
}

const taskColumns = `id, title, priority, status, project_id, team_id, assigned_member_id, owner_id, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*domain.Task, error) {
	task := &domain.Task{}
	var priority, status string
	var assigned sql.NullString
	var updatedAt sql.NullTime
	err := row.Scan(
		&task.ID,
		&task.Title,
		&priority,
		&status,
		&task.ProjectID,
		&task.TeamID,
		&assigned,
		&task.OwnerID,
		&task.CreatedAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	task.Priority = domain.Priority(priority)
	task.Status = domain.TaskStatus(status)
	task.AssignedMemberID = stringPtr(assigned)
	if updatedAt.Valid {
		task.UpdatedAt = &updatedAt.Time
	}

	return task, nil
}

// buildTaskWhere собирает условие WHERE по непустым полям фильтра.
// Некорректный UUID в фильтре означает пустую выборку, ok == false.
func buildTaskWhere(filter repository.TaskFilter) (where string, args []any, ok bool) {
	conditions := make([]string, 0, 5)
	add := func(cond string, value string) bool {
		if value == "" {
			return true
		}
		if validateID(value) != nil {
			return false
		}
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf(cond, len(args)))
		return true
	}

	if !add("team_id = $%d", filter.TeamID) ||
		!add("project_id = $%d", filter.ProjectID) ||
		!add("assigned_member_id = $%d", filter.AssignedMemberID) ||
		!add("owner_id = $%d", filter.OwnerID) ||
		!add("id <> $%d", filter.ExcludeTaskID) {
		return "", nil, false
	}

	if len(conditions) == 0 {
		return "", nil, true
	}
	return " WHERE " + strings.Join(conditions, " AND "), args, true
}

func (r *taskRepository) FindTasks(ctx context.Context, filter repository.TaskFilter) ([]*domain.Task, error) {
	where, args, ok := buildTaskWhere(filter)
	if !ok {
		return []*domain.Task{}, nil
	}

	query := "SELECT " + taskColumns + " FROM tasks" + where + " ORDER BY created_at, id"

	rows, err := r.executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := make([]*domain.Task, 0)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}

	return tasks, rows.Err()
}

func (r *taskRepository) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	if err := validateID(id); err != nil {
		return nil, errors.New("task not found")
	}

	query := "SELECT " + taskColumns + " FROM tasks WHERE id = $1"

	task, err := scanTask(r.executor.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errors.New("task not found")
		}
		return nil, err
	}

	return task, nil
}

func (r *taskRepository) UpdateAssignedMember(ctx context.Context, taskID string, expectedMemberID, memberID *string) (*domain.Task, error) {
	if err := validateID(taskID); err != nil {
		return nil, errors.New("task not found")
	}

	query := `
		UPDATE tasks
		SET assigned_member_id = $2, updated_at = $3
		WHERE id = $1 AND assigned_member_id IS NOT DISTINCT FROM $4
		RETURNING ` + taskColumns

	task, err := scanTask(r.executor.QueryRowContext(
		ctx,
		query,
		taskID,
		nullableString(memberID),
		time.Now(),
		nullableString(expectedMemberID),
	))
	if err == nil {
		return task, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	// Задача либо удалена, либо уже переназначена кем-то другим
	var exists bool
	err = r.executor.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM tasks WHERE id = $1)", taskID).Scan(&exists)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, errors.New("task not found")
	}
	return nil, errors.New("task assignment changed")
}

func (r *taskRepository) Count(ctx context.Context, filter repository.TaskFilter) (int, error) {
	where, args, ok := buildTaskWhere(filter)
	if !ok {
		return 0, nil
	}

	var count int
	err := r.executor.QueryRowContext(ctx, "SELECT COUNT(*) FROM tasks"+where, args...).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}
