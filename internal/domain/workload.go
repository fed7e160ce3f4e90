package domain

// OverloadState - классификация загрузки участника
type OverloadState string

const (
	StateNormal     OverloadState = "NORMAL"
	StateHighLoad   OverloadState = "HIGH_LOAD"
	StateOverloaded OverloadState = "OVERLOADED"
)

// LoadEntry - загрузка одного участника в пределах области (команда или проект)
type LoadEntry struct {
	MemberID    string
	Name        string
	Role        string
	CurrentLoad int
	Capacity    int
	State       OverloadState
}

// Scope задаёт область подсчёта загрузки
type Scope struct {
	TeamID        string
	ProjectID     string
	ExcludeTaskID string
}

type PlanKind string

const (
	PlanKindManual      PlanKind = "MANUAL"
	PlanKindUnassign    PlanKind = "UNASSIGN"
	PlanKindAutoBalance PlanKind = "AUTO_BALANCE"
	PlanKindSingleTask  PlanKind = "SINGLE_TASK"
)

// Move - одно предлагаемое перемещение задачи. To == nil означает снятие назначения,
// From == nil - задача до перемещения ни на кого не назначена.
type Move struct {
	Task   *Task
	From   *Member
	To     *Member
	Reason string
	// Загрузка получателя после перемещения, как её видел планировщик
	ProjectedTargetLoad int
}

// UnresolvedOverload - перегрузка, которую планировщик не смог снять
type UnresolvedOverload struct {
	MemberID      string
	Name          string
	ProjectedLoad int
	Capacity      int
	Code          string
}

// Plan существует только на время цикла plan/execute и не сохраняется
type Plan struct {
	ID         string
	Kind       PlanKind
	TeamID     string
	Moves      []Move
	Unresolved []UnresolvedOverload
	// Снимок загрузки на момент построения плана
	Snapshot []LoadEntry
}

func (p *Plan) IsEmpty() bool {
	return len(p.Moves) == 0
}

type MoveStatus string

const (
	MoveApplied     MoveStatus = "APPLIED"
	MoveAuditFailed MoveStatus = "AUDIT_FAILED"
	MoveFailed      MoveStatus = "FAILED"
)

// MoveResult - итог выполнения одного перемещения
type MoveResult struct {
	Move   Move
	Status MoveStatus
	Event  *AuditEvent
	Err    error
}

// ExecutionResult - сводка выполнения плана
type ExecutionResult struct {
	PlanID     string
	MovedCount int
	Results    []MoveResult
}

// Failed возвращает перемещения, которые не удалось сохранить
func (r *ExecutionResult) Failed() []MoveResult {
	failed := make([]MoveResult, 0)
	for _, res := range r.Results {
		if res.Status == MoveFailed {
			failed = append(failed, res)
		}
	}
	return failed
}

// AuditEvents возвращает записанные события журнала
func (r *ExecutionResult) AuditEvents() []*AuditEvent {
	events := make([]*AuditEvent, 0, len(r.Results))
	for _, res := range r.Results {
		if res.Event != nil {
			events = append(events, res.Event)
		}
	}
	return events
}

// Err возвращает ErrPartialExecution, если хотя бы одно перемещение
// не сохранилось или для него не записалось событие журнала
func (r *ExecutionResult) Err() error {
	for _, res := range r.Results {
		if res.Status != MoveApplied {
			return ErrPartialExecution
		}
	}
	return nil
}
