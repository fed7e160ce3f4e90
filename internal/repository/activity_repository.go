package repository

import (
	"context"

	"github.com/bagdasarian/task-balancer/internal/domain"
)

type ActivityFilter struct {
	TeamIDs   []string
	ProjectID string
	// MessagePattern - регулярное выражение POSIX, сравнивается без учёта регистра
	MessagePattern string
	Limit          int
}

type ActivityLogRepository interface {
	Append(ctx context.Context, event *domain.AuditEvent) (*domain.AuditEvent, error)
	FindRecent(ctx context.Context, filter ActivityFilter) ([]*domain.AuditEvent, error)
}
