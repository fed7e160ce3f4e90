package postgres

import (
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

const (
	teamID    = "6f1c2a4e-1b7d-4c1e-9a51-0d2f0b7c9e01"
	ownerID   = "0a3b5c7d-2e4f-4a6b-8c9d-1e2f3a4b5c6d"
	projectID = "9b8a7c6d-5e4f-4321-8765-4321abcdef01"
	taskID    = "c1d2e3f4-a5b6-4c7d-8e9f-0a1b2c3d4e5f"
	memberA   = "11111111-1111-4111-8111-111111111111"
	memberB   = "22222222-2222-4222-8222-222222222222"
)

// setupMockDB создает мок базы данных для тестов
// Автоматически закрывает соединение при завершении теста
func setupMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err, "не удалось создать мок БД")
	t.Cleanup(func() { db.Close() })
	return db, mock
}

var taskRowColumns = []string{
	"id", "title", "priority", "status", "project_id", "team_id",
	"assigned_member_id", "owner_id", "created_at", "updated_at",
}
