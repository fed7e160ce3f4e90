package handler

type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type MemberResponse struct {
	MemberID string `json:"member_id"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	Capacity int    `json:"capacity"`
}

type LoadEntryResponse struct {
	MemberID    string `json:"member_id"`
	Name        string `json:"name"`
	Role        string `json:"role"`
	CurrentLoad int    `json:"current_load"`
	Capacity    int    `json:"capacity"`
	State       string `json:"state"`
}

type TeamLoadResponse struct {
	TeamID  string              `json:"team_id"`
	Members []LoadEntryResponse `json:"members"`
}

type ReassignMemberRequest struct {
	TeamID       string `json:"team_id"`
	FromMemberID string `json:"from_member_id"`
	ToMemberID   string `json:"to_member_id"`
}

type UnassignMemberRequest struct {
	TeamID   string `json:"team_id"`
	MemberID string `json:"member_id"`
}

type ReassignTaskRequest struct {
	TaskID     string `json:"task_id"`
	ToMemberID string `json:"to_member_id"`
}

type AutoBalanceRequest struct {
	TeamID    string `json:"team_id"`
	ProjectID string `json:"project_id,omitempty"`
	DryRun    bool   `json:"dry_run"`
}

type MoveResponse struct {
	TaskID              string  `json:"task_id"`
	TaskTitle           string  `json:"task_title"`
	Priority            string  `json:"priority"`
	FromMemberID        *string `json:"from_member_id"`
	ToMemberID          *string `json:"to_member_id"`
	Reason              string  `json:"reason"`
	ProjectedTargetLoad int     `json:"projected_target_load"`
}

type UnresolvedOverloadResponse struct {
	MemberID      string `json:"member_id"`
	Name          string `json:"name"`
	ProjectedLoad int    `json:"projected_load"`
	Capacity      int    `json:"capacity"`
	Code          string `json:"code"`
}

type PlanResponse struct {
	PlanID     string                       `json:"plan_id"`
	Kind       string                       `json:"kind"`
	TeamID     string                       `json:"team_id"`
	Moves      []MoveResponse               `json:"moves"`
	Unresolved []UnresolvedOverloadResponse `json:"unresolved"`
}

type MoveFailureResponse struct {
	TaskID  string `json:"task_id"`
	Status  string `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type AuditEventResponse struct {
	ID        string  `json:"id"`
	Message   string  `json:"message"`
	TaskID    *string `json:"task_id"`
	ProjectID *string `json:"project_id"`
	TeamID    string  `json:"team_id"`
	ActorID   string  `json:"actor_id"`
	Timestamp string  `json:"timestamp"`
}

type ExecutionResponse struct {
	PlanID      string                `json:"plan_id"`
	MovedCount  int                   `json:"moved_count"`
	Failures    []MoveFailureResponse `json:"failures"`
	AuditEvents []AuditEventResponse  `json:"audit_events"`
}

type AutoBalanceResponse struct {
	Plan   PlanResponse       `json:"plan"`
	Result *ExecutionResponse `json:"result,omitempty"`
}

type SuggestResponse struct {
	Member MemberResponse `json:"member"`
}

type AssignmentCheckResponse struct {
	Member        MemberResponse `json:"member"`
	CurrentLoad   int            `json:"current_load"`
	Capacity      int            `json:"capacity"`
	WouldOverload bool           `json:"would_overload"`
}

type DashboardResponse struct {
	TotalProjects       int                  `json:"total_projects"`
	TotalTasks          int                  `json:"total_tasks"`
	TeamSummary         []LoadEntryResponse  `json:"team_summary"`
	RecentReassignments []AuditEventResponse `json:"recent_reassignments"`
	TeamID              string               `json:"team_id,omitempty"`
	ProjectID           string               `json:"project_id,omitempty"`
}

type HealthResponse struct {
	Status string `json:"status"`
}
