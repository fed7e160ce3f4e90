package handler

import (
	"net/http"

	"github.com/bagdasarian/task-balancer/internal/domain"
)

func callerID(r *http.Request) (string, error) {
	id := r.Header.Get(UserIDHeader)
	if id == "" {
		return "", domain.NewBadRequestError(UserIDHeader + " header is required")
	}
	return id, nil
}

func scopeFromQuery(r *http.Request) domain.Scope {
	q := r.URL.Query()
	return domain.Scope{
		TeamID:        q.Get("team_id"),
		ProjectID:     q.Get("project_id"),
		ExcludeTaskID: q.Get("exclude_task_id"),
	}
}

// writeExecution отдаёт 200 и при частичном выполнении: неудачные перемещения перечислены в failures
func writeExecution(w http.ResponseWriter, result *domain.ExecutionResult) {
	writeJSON(w, http.StatusOK, domainExecutionToHTTP(result))
}

func (h *Handler) GetTeamLoad(w http.ResponseWriter, r *http.Request) {
	caller, err := callerID(r)
	if err != nil {
		h.handleError(w, err)
		return
	}

	scope := scopeFromQuery(r)
	entries, err := h.workloadService.GetTeamLoad(r.Context(), caller, scope)
	if err != nil {
		h.handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, TeamLoadResponse{
		TeamID:  scope.TeamID,
		Members: domainLoadEntriesToHTTP(entries),
	})
}

func (h *Handler) ReassignMemberTasks(w http.ResponseWriter, r *http.Request) {
	caller, err := callerID(r)
	if err != nil {
		h.handleError(w, err)
		return
	}

	var req ReassignMemberRequest
	if err := decodeJSON(r, &req); err != nil {
		h.handleError(w, err)
		return
	}

	result, err := h.workloadService.ReassignMemberTasks(r.Context(), caller, req.TeamID, req.FromMemberID, req.ToMemberID)
	if err != nil {
		h.handleError(w, err)
		return
	}

	writeExecution(w, result)
}

func (h *Handler) UnassignMemberTasks(w http.ResponseWriter, r *http.Request) {
	caller, err := callerID(r)
	if err != nil {
		h.handleError(w, err)
		return
	}

	var req UnassignMemberRequest
	if err := decodeJSON(r, &req); err != nil {
		h.handleError(w, err)
		return
	}

	result, err := h.workloadService.UnassignMemberTasks(r.Context(), caller, req.TeamID, req.MemberID)
	if err != nil {
		h.handleError(w, err)
		return
	}

	writeExecution(w, result)
}

func (h *Handler) ReassignTask(w http.ResponseWriter, r *http.Request) {
	caller, err := callerID(r)
	if err != nil {
		h.handleError(w, err)
		return
	}

	var req ReassignTaskRequest
	if err := decodeJSON(r, &req); err != nil {
		h.handleError(w, err)
		return
	}
	if req.TaskID == "" {
		h.handleError(w, domain.NewBadRequestError("task_id is required"))
		return
	}

	result, err := h.workloadService.ReassignTask(r.Context(), caller, req.TaskID, req.ToMemberID)
	if err != nil {
		h.handleError(w, err)
		return
	}

	writeExecution(w, result)
}

func (h *Handler) AutoBalance(w http.ResponseWriter, r *http.Request) {
	caller, err := callerID(r)
	if err != nil {
		h.handleError(w, err)
		return
	}

	var req AutoBalanceRequest
	if err := decodeJSON(r, &req); err != nil {
		h.handleError(w, err)
		return
	}

	scope := domain.Scope{TeamID: req.TeamID, ProjectID: req.ProjectID}

	if req.DryRun {
		plan, err := h.workloadService.PlanAutoBalance(r.Context(), caller, scope)
		if err != nil {
			h.handleError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, AutoBalanceResponse{Plan: domainPlanToHTTP(plan)})
		return
	}

	plan, result, err := h.workloadService.AutoBalance(r.Context(), caller, scope)
	if err != nil {
		h.handleError(w, err)
		return
	}

	execution := domainExecutionToHTTP(result)
	writeJSON(w, http.StatusOK, AutoBalanceResponse{
		Plan:   domainPlanToHTTP(plan),
		Result: &execution,
	})
}

func (h *Handler) SuggestAssignee(w http.ResponseWriter, r *http.Request) {
	caller, err := callerID(r)
	if err != nil {
		h.handleError(w, err)
		return
	}

	member, err := h.workloadService.SuggestAssignee(r.Context(), caller, scopeFromQuery(r))
	if err != nil {
		h.handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, SuggestResponse{Member: domainMemberToHTTP(*member)})
}

func (h *Handler) CheckAssignment(w http.ResponseWriter, r *http.Request) {
	caller, err := callerID(r)
	if err != nil {
		h.handleError(w, err)
		return
	}

	memberID := r.URL.Query().Get("member_id")
	if memberID == "" {
		h.handleError(w, domain.NewBadRequestError("member_id is required"))
		return
	}

	check, err := h.workloadService.CheckAssignment(r.Context(), caller, scopeFromQuery(r), memberID)
	if err != nil {
		h.handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, AssignmentCheckResponse{
		Member:        domainMemberToHTTP(check.Member),
		CurrentLoad:   check.CurrentLoad,
		Capacity:      check.Capacity,
		WouldOverload: check.WouldOverload,
	})
}
