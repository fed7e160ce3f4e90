package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
)

// DBExecutor - общий интерфейс *sql.DB и *sql.Tx
type DBExecutor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

var errInvalidID = errors.New("invalid id")

// validateID проверяет, что идентификатор - корректный UUID.
// Иначе postgres вернёт ошибку приведения типа вместо "not found".
func validateID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return errInvalidID
	}
	return nil
}

func nullableString(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	v := ns.String
	return &v
}
