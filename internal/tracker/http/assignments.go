package http

import (
	"net/http"
	"strconv"

	"github.com/aussiebroadwan/tracker/internal/tracker/domain"
	"github.com/aussiebroadwan/tracker/internal/tracker/service"
	"github.com/aussiebroadwan/tracker/pkg/httpx"
	"github.com/aussiebroadwan/tracker/pkg/trackersdk"
)

type AssignmentsHandler struct {
	AssignmentService *service.AssignmentService

	// DateShiftDays is added to both dates of an update. The timeline view
	// renders end dates exclusively and submits them one day early.
	DateShiftDays int
}

// HandleCreate schedules a user on a project.
//
//	@Summary		Create an assignment
//	@Description	Dates are stored exactly as given. Overlapping assignments are allowed.
//	@Tags			Assignments
//	@Accept			json
//	@Produce		json
//	@Param			request	body		trackersdk.CreateAssignmentRequest	true	"Assignment"
//	@Success		201		{object}	trackersdk.Assignment				"Created assignment"
//	@Failure		400		{object}	trackersdk.ErrorResponse			"Start after end"
//	@Failure		404		{object}	trackersdk.ErrorResponse			"Unknown user or project"
//	@Security		BearerAuth
//	@Router			/v1/assignments [post].
func (h *AssignmentsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req trackersdk.CreateAssignmentRequest
	if !decodeBody(w, r, &req) {
		return
	}
	start, ok := parseDayParam(w, "start", req.Start)
	if !ok {
		return
	}
	end, ok := parseDayParam(w, "end", req.End)
	if !ok {
		return
	}

	a, err := h.AssignmentService.Create(r.Context(), service.AssignmentInput{
		UserID:    req.UserID,
		ProjectID: req.ProjectID,
		Start:     start,
		End:       end,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toAssignment(a))
}

// HandleUpdate moves an assignment as dragged on the timeline.
//
//	@Summary		Update an assignment
//	@Description	Both dates are shifted forward by the configured offset (one day by default) before they are stored.
//	@Tags			Assignments
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string								true	"Assignment ID"
//	@Param			request	body		trackersdk.UpdateAssignmentRequest	true	"New range"
//	@Success		200		{object}	trackersdk.Assignment				"Stored assignment"
//	@Failure		400		{object}	trackersdk.ErrorResponse			"Start after end"
//	@Failure		404		{object}	trackersdk.ErrorResponse			"Unknown assignment or project"
//	@Security		BearerAuth
//	@Router			/v1/assignments/{id} [put].
func (h *AssignmentsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req trackersdk.UpdateAssignmentRequest
	if !decodeBody(w, r, &req) {
		return
	}
	start, ok := parseDayParam(w, "start", req.Start)
	if !ok {
		return
	}
	end, ok := parseDayParam(w, "end", req.End)
	if !ok {
		return
	}

	a, err := h.AssignmentService.Update(r.Context(), r.PathValue("id"), service.AssignmentUpdate{
		ProjectID: req.ProjectID,
		Start:     domain.AddDays(start, h.DateShiftDays),
		End:       domain.AddDays(end, h.DateShiftDays),
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toAssignment(a))
}

// HandleDelete removes an assignment.
//
//	@Summary	Delete an assignment
//	@Tags		Assignments
//	@Param		id	path	string	true	"Assignment ID"
//	@Success	204
//	@Failure	404	{object}	trackersdk.ErrorResponse	"Unknown assignment"
//	@Security	BearerAuth
//	@Router		/v1/assignments/{id} [delete].
func (h *AssignmentsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.AssignmentService.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleActive lists the assignments covering a date.
//
//	@Summary		Active assignments
//	@Description	Returns the assignments of user_id (default: caller) whose range contains date. Only admins may name another user.
//	@Tags			Assignments
//	@Produce		json
//	@Param			user_id	query		string								false	"User ID"
//	@Param			date	query		string								true	"Day (YYYY-MM-DD)"
//	@Success		200		{object}	trackersdk.ListAssignmentsResponse	"Assignments, possibly empty"
//	@Failure		403		{object}	trackersdk.ErrorResponse			"Another user's assignments"
//	@Security		BearerAuth
//	@Router			/v1/assignments/active [get].
func (h *AssignmentsHandler) HandleActive(w http.ResponseWriter, r *http.Request) {
	p := principal(r)
	q := r.URL.Query()

	day, ok := parseDayParam(w, "date", q.Get("date"))
	if !ok {
		return
	}

	userID := q.Get("user_id")
	if userID == "" {
		userID = p.UserID
	}
	if userID != p.UserID && !p.IsAdmin {
		httpx.WriteError(w, http.StatusForbidden, trackersdk.ErrorCodeForbidden,
			"only admins may view other users' assignments")
		return
	}

	active, err := h.AssignmentService.ActiveOn(r.Context(), userID, day)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, trackersdk.ListAssignmentsResponse{Assignments: toAssignments(active)})
}

// HandleTimeline returns everything the timeline view draws.
//
//	@Summary		Timeline
//	@Description	Every assignment plus the projects and users. With active_only (default true) inactive projects and users are left out; assignments are never filtered.
//	@Tags			Assignments
//	@Produce		json
//	@Param			active_only	query		bool						false	"Only active projects and users"
//	@Success		200			{object}	trackersdk.TimelineResponse	"Timeline"
//	@Security		BearerAuth
//	@Router			/v1/timeline [get].
func (h *AssignmentsHandler) HandleTimeline(w http.ResponseWriter, r *http.Request) {
	activeOnly, ok := parseBoolParam(w, r, "active_only", true)
	if !ok {
		return
	}

	tl, err := h.AssignmentService.Timeline(r.Context(), activeOnly)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, trackersdk.TimelineResponse{
		Assignments: toAssignments(tl.Assignments),
		Projects:    toProjects(tl.Projects),
		Users:       toUsers(tl.Users),
	})
}

// parseBoolParam reads an optional boolean query parameter.
func parseBoolParam(w http.ResponseWriter, r *http.Request, name string, def bool) (bool, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, true
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, trackersdk.ErrorCodeValidation, name+" must be true or false")
		return false, false
	}
	return v, true
}
