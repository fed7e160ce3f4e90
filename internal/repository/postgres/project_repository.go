package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/bagdasarian/task-balancer/internal/domain"
	"github.com/bagdasarian/task-balancer/internal/repository"
)

type projectRepository struct {
	executor DBExecutor
}

func NewProjectRepository(db *sql.DB) *projectRepository {
	return &projectRepository{executor: db}
}

func (r *projectRepository) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	if err := validateID(id); err != nil {
		return nil, errors.New("project not found")
	}

	query := `
		SELECT id, name, team_id, owner_id, created_at
		FROM projects
		WHERE id = $1
	`

	project := &domain.Project{}
	err := r.executor.QueryRowContext(ctx, query, id).Scan(
		&project.ID,
		&project.Name,
		&project.TeamID,
		&project.OwnerID,
		&project.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errors.New("project not found")
		}
		return nil, err
	}

	return project, nil
}

func (r *projectRepository) Count(ctx context.Context, filter repository.ProjectFilter) (int, error) {
	conditions := make([]string, 0, 3)
	args := make([]any, 0, 3)
	for _, f := range []struct {
		column string
		value  string
	}{
		{"owner_id", filter.OwnerID},
		{"team_id", filter.TeamID},
		{"id", filter.ProjectID},
	} {
		if f.value == "" {
			continue
		}
		if validateID(f.value) != nil {
			return 0, nil
		}
		args = append(args, f.value)
		conditions = append(conditions, fmt.Sprintf("%s = $%d", f.column, len(args)))
	}

	query := "SELECT COUNT(*) FROM projects"
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	var count int
	if err := r.executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
