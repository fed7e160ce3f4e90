//go:build integration
// +build integration

package integration

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// fixture - данные, засеянные напрямую SQL: команды, участники и задачи
type fixture struct {
	db        *sql.DB
	ownerID   string
	teamID    string
	projectID string
	members   map[string]string
	tasks     map[string]string
	seq       int
}

func newFixture(t *testing.T, db *sql.DB) *fixture {
	ctx := context.Background()
	f := &fixture{db: db, members: map[string]string{}, tasks: map[string]string{}}

	require.NoError(t, db.QueryRowContext(ctx,
		`INSERT INTO users (name, email) VALUES ('Owner', $1) RETURNING id`,
		fmt.Sprintf("owner-%d@example.com", time.Now().UnixNano()),
	).Scan(&f.ownerID))

	require.NoError(t, db.QueryRowContext(ctx,
		`INSERT INTO teams (name, owner_id) VALUES ('backend', $1) RETURNING id`, f.ownerID,
	).Scan(&f.teamID))

	require.NoError(t, db.QueryRowContext(ctx,
		`INSERT INTO projects (name, team_id, owner_id) VALUES ('launch', $1, $2) RETURNING id`, f.teamID, f.ownerID,
	).Scan(&f.projectID))

	return f
}

func (f *fixture) addMember(t *testing.T, name string, capacity int) string {
	var id string
	require.NoError(t, f.db.QueryRowContext(context.Background(),
		`INSERT INTO team_members (team_id, name, role, capacity) VALUES ($1, $2, 'dev', $3) RETURNING id`,
		f.teamID, name, capacity,
	).Scan(&id))
	f.members[name] = id
	return id
}

func (f *fixture) addTask(t *testing.T, title, priority, member string) string {
	var assigned any
	if member != "" {
		assigned = f.members[member]
	}
	// created_at задаётся явно, чтобы порядок задач был детерминированным
	f.seq++
	createdAt := time.Date(2024, 1, 1, 0, 0, f.seq, 0, time.UTC)

	var id string
	require.NoError(t, f.db.QueryRowContext(context.Background(), `
		INSERT INTO tasks (title, priority, project_id, team_id, assigned_member_id, owner_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		title, priority, f.projectID, f.teamID, assigned, f.ownerID, createdAt,
	).Scan(&id))
	f.tasks[title] = id
	return id
}

func (f *fixture) loadOf(t *testing.T, member string) int {
	var count int
	require.NoError(t, f.db.QueryRowContext(context.Background(),
		`SELECT COUNT(*) FROM tasks WHERE assigned_member_id = $1`, f.members[member],
	).Scan(&count))
	return count
}

func (f *fixture) auditCount(t *testing.T) int {
	var count int
	require.NoError(t, f.db.QueryRowContext(context.Background(),
		`SELECT COUNT(*) FROM activity_logs WHERE team_id = $1`, f.teamID,
	).Scan(&count))
	return count
}
