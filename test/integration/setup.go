//go:build integration
// +build integration

package integration

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// schemaTables - таблицы, которые создаёт 000001_init.up.sql, в порядке зависимостей
var schemaTables = []string{"users", "teams", "team_members", "projects", "tasks", "activity_logs"}

func setupTestDB(t *testing.T) *sql.DB {
	ctx := context.Background()

	postgresContainer, err := postgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:17.7"),
		postgres.WithDatabase("balancer_test"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	require.NoError(t, err)

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := sql.Open("pgx", connStr)
	require.NoError(t, err)
	require.NoError(t, db.Ping())

	applyMigration(t, db, "000001_init.up.sql")
	requireTables(t, db, true)

	// Cleanup выполняется в обратном порядке: сначала down-миграция, потом контейнер
	t.Cleanup(func() {
		db.Close()
		require.NoError(t, postgresContainer.Terminate(ctx))
	})
	t.Cleanup(func() {
		applyMigration(t, db, "000001_init.down.sql")
		requireTables(t, db, false)
	})

	return db
}

// applyMigration читает файл миграции из migrations/ относительно нескольких рабочих каталогов
func applyMigration(t *testing.T, db *sql.DB, name string) {
	var migrationSQL []byte
	var err error

	for _, dir := range []string{filepath.Join("..", ".."), ".", ".."} {
		migrationSQL, err = os.ReadFile(filepath.Join(dir, "migrations", name))
		if err == nil {
			break
		}
	}
	require.NoError(t, err, "не удалось прочитать migrations/%s", name)

	_, err = db.Exec(string(migrationSQL))
	require.NoError(t, err, "не удалось применить %s", name)
}

// requireTables проверяет, что все таблицы схемы существуют (или все удалены)
func requireTables(t *testing.T, db *sql.DB, exist bool) {
	for _, table := range schemaTables {
		var regclass sql.NullString
		err := db.QueryRow("SELECT to_regclass($1)::text", "public."+table).Scan(&regclass)
		require.NoError(t, err)
		require.Equal(t, exist, regclass.Valid, "таблица %s", table)
	}
}
