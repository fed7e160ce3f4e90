package domain

import "fmt"

type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// Это позволяет использовать errors.Is()
func (e *DomainError) Is(target error) bool {
	if t, ok := target.(*DomainError); ok {
		return e.Code == t.Code
	}
	return false
}

const (
	CodeNotFound             = "NOT_FOUND"
	CodeForbidden            = "FORBIDDEN"
	CodeInvalidTarget        = "INVALID_TARGET"
	CodeNoEligibleCandidates = "NO_ELIGIBLE_CANDIDATES"
	CodeNoEligibleTasks      = "NO_ELIGIBLE_TASKS"
	CodePartialExecution     = "PARTIAL_EXECUTION_FAILURE"
	CodeStaleTask            = "STALE_TASK"
	CodeBadRequest           = "BAD_REQUEST"
)

var (
	// ErrNotFound - ресурс не найден
	ErrNotFound = &DomainError{
		Code:    CodeNotFound,
		Message: "resource not found",
	}

	// ErrForbidden - вызывающий не владеет командой
	ErrForbidden = &DomainError{
		Code:    CodeForbidden,
		Message: "only team owner can manage team workload",
	}

	// ErrInvalidTarget - получатель совпадает с источником или не состоит в команде
	ErrInvalidTarget = &DomainError{
		Code:    CodeInvalidTarget,
		Message: "invalid reassignment target",
	}

	// ErrNoEligibleCandidates - у перегруженного участника нет подходящего получателя
	ErrNoEligibleCandidates = &DomainError{
		Code:    CodeNoEligibleCandidates,
		Message: "no team member with free capacity",
	}

	// ErrPartialExecution - часть перемещений плана не выполнилась
	ErrPartialExecution = &DomainError{
		Code:    CodePartialExecution,
		Message: "some reassignments failed",
	}

	// ErrStaleTask - задача изменилась или удалена после построения плана
	ErrStaleTask = &DomainError{
		Code:    CodeStaleTask,
		Message: "task no longer matches planned state",
	}
)

// NewNotFoundError создает ошибку NOT_FOUND с дополнительным контекстом
func NewNotFoundError(resource string) *DomainError {
	return &DomainError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s not found", resource),
	}
}

// NewInvalidTargetError создает ошибку INVALID_TARGET с причиной
func NewInvalidTargetError(reason string) *DomainError {
	return &DomainError{
		Code:    CodeInvalidTarget,
		Message: reason,
	}
}

// NewStaleTaskError создает ошибку STALE_TASK для конкретной задачи
func NewStaleTaskError(taskID string) *DomainError {
	return &DomainError{
		Code:    CodeStaleTask,
		Message: fmt.Sprintf("task %s was changed or deleted after planning", taskID),
	}
}

// NewBadRequestError создает ошибку BAD_REQUEST
func NewBadRequestError(message string) *DomainError {
	return &DomainError{
		Code:    CodeBadRequest,
		Message: message,
	}
}
