package domain

import "time"

// AuditEvent - запись журнала активности. После записи не изменяется.
type AuditEvent struct {
	ID        string
	Message   string
	TaskID    *string
	ProjectID *string
	TeamID    string
	ActorID   string
	Timestamp time.Time
}
