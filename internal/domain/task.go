package domain

import "time"

type Task struct {
	ID               string
	Title            string
	Priority         Priority
	Status           TaskStatus
	ProjectID        string
	TeamID           string
	AssignedMemberID *string
	OwnerID          string
	CreatedAt        time.Time
	UpdatedAt        *time.Time
}

// IsAssignedTo сообщает, назначена ли задача на участника memberID
func (t *Task) IsAssignedTo(memberID string) bool {
	return t.AssignedMemberID != nil && *t.AssignedMemberID == memberID
}

type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

// Rank задаёт порядок приоритетов: Low < Medium < High
func (p Priority) Rank() int {
	switch p {
	case PriorityLow:
		return 0
	case PriorityMedium:
		return 1
	default:
		return 2
	}
}

type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "Pending"
	TaskStatusInProgress TaskStatus = "In Progress"
	TaskStatusDone       TaskStatus = "Done"
)
