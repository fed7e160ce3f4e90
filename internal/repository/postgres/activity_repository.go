package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/bagdasarian/task-balancer/internal/domain"
	"github.com/bagdasarian/task-balancer/internal/repository"
	"github.com/google/uuid"
)

type activityRepository struct {
	executor DBExecutor
}

func NewActivityRepository(db *sql.DB) *activityRepository {
	return &activityRepository{executor: db}
}

// Append записывает событие журнала. Идентификатор и время проставляются здесь,
// если их не задал вызывающий.
func (r *activityRepository) Append(ctx context.Context, event *domain.AuditEvent) (*domain.AuditEvent, error) {
	saved := *event
	if saved.ID == "" {
		saved.ID = uuid.NewString()
	}
	if saved.Timestamp.IsZero() {
		saved.Timestamp = time.Now()
	}

	query := `
		INSERT INTO activity_logs (id, task_id, project_id, team_id, message, actor_id, timestamp)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.executor.ExecContext(
		ctx,
		query,
		saved.ID,
		nullableString(saved.TaskID),
		nullableString(saved.ProjectID),
		saved.TeamID,
		saved.Message,
		saved.ActorID,
		saved.Timestamp,
	)
	if err != nil {
		return nil, fmt.Errorf("append activity log: %w", err)
	}

	return &saved, nil
}

func (r *activityRepository) FindRecent(ctx context.Context, filter repository.ActivityFilter) ([]*domain.AuditEvent, error) {
	teamIDs := make([]string, 0, len(filter.TeamIDs))
	for _, id := range filter.TeamIDs {
		if validateID(id) == nil {
			teamIDs = append(teamIDs, id)
		}
	}
	if len(teamIDs) == 0 {
		return []*domain.AuditEvent{}, nil
	}

	args := make([]any, 0, len(teamIDs)+3)
	placeholders := make([]string, 0, len(teamIDs))
	for _, id := range teamIDs {
		args = append(args, id)
		placeholders = append(placeholders, fmt.Sprintf("$%d", len(args)))
	}

	query := `
		SELECT id, task_id, project_id, team_id, message, actor_id, timestamp
		FROM activity_logs
		WHERE team_id IN (` + strings.Join(placeholders, ", ") + `)`

	if filter.ProjectID != "" {
		if validateID(filter.ProjectID) != nil {
			return []*domain.AuditEvent{}, nil
		}
		args = append(args, filter.ProjectID)
		query += fmt.Sprintf(" AND project_id = $%d", len(args))
	}
	if filter.MessagePattern != "" {
		args = append(args, filter.MessagePattern)
		query += fmt.Sprintf(" AND message ~* $%d", len(args))
	}
	query += " ORDER BY timestamp DESC"
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := r.executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]*domain.AuditEvent, 0)
	for rows.Next() {
		event := &domain.AuditEvent{}
		var taskID, projectID sql.NullString
		err := rows.Scan(
			&event.ID,
			&taskID,
			&projectID,
			&event.TeamID,
			&event.Message,
			&event.ActorID,
			&event.Timestamp,
		)
		if err != nil {
			return nil, err
		}
		event.TaskID = stringPtr(taskID)
		event.ProjectID = stringPtr(projectID)
		events = append(events, event)
	}

	return events, rows.Err()
}
