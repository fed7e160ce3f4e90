package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/bagdasarian/task-balancer/internal/domain"
)

type teamRepository struct {
	executor DBExecutor
}

func NewTeamRepository(db *sql.DB) *teamRepository {
	return &teamRepository{executor: db}
}

func (r *teamRepository) GetByID(ctx context.Context, id string) (*domain.Team, error) {
	if err := validateID(id); err != nil {
		return nil, errors.New("team not found")
	}

	query := `
		SELECT id, name, owner_id, created_at, updated_at
		FROM teams
		WHERE id = $1
	`

	team := &domain.Team{}
	var updatedAt sql.NullTime
	err := r.executor.QueryRowContext(ctx, query, id).Scan(
		&team.ID,
		&team.Name,
		&team.OwnerID,
		&team.CreatedAt,
		&updatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errors.New("team not found")
		}
		return nil, err
	}

	if updatedAt.Valid {
		team.UpdatedAt = &updatedAt.Time
	}

	members, err := r.getMembers(ctx, team.ID)
	if err != nil {
		return nil, err
	}
	team.Members = members

	return team, nil
}

func (r *teamRepository) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Team, error) {
	if err := validateID(ownerID); err != nil {
		return []*domain.Team{}, nil
	}

	query := `
		SELECT id, name, owner_id, created_at, updated_at
		FROM teams
		WHERE owner_id = $1
		ORDER BY created_at
	`

	rows, err := r.executor.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	teams := make([]*domain.Team, 0)
	for rows.Next() {
		team := &domain.Team{}
		var updatedAt sql.NullTime
		if err := rows.Scan(&team.ID, &team.Name, &team.OwnerID, &team.CreatedAt, &updatedAt); err != nil {
			return nil, err
		}
		if updatedAt.Valid {
			team.UpdatedAt = &updatedAt.Time
		}
		teams = append(teams, team)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, team := range teams {
		members, err := r.getMembers(ctx, team.ID)
		if err != nil {
			return nil, err
		}
		team.Members = members
	}

	return teams, nil
}

// getMembers возвращает участников в порядке добавления в команду
func (r *teamRepository) getMembers(ctx context.Context, teamID string) ([]domain.Member, error) {
	query := `
		SELECT id, name, role, capacity
		FROM team_members
		WHERE team_id = $1
		ORDER BY seq
	`

	rows, err := r.executor.QueryContext(ctx, query, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	members := make([]domain.Member, 0)
	for rows.Next() {
		var m domain.Member
		if err := rows.Scan(&m.ID, &m.Name, &m.Role, &m.Capacity); err != nil {
			return nil, err
		}
		members = append(members, m)
	}

	return members, rows.Err()
}
