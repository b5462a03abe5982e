package http

import (
	"net/http"
	"time"

	"github.com/aussiebroadwan/tracker/internal/tracker/service"
	"github.com/aussiebroadwan/tracker/pkg/httpx"
	"github.com/aussiebroadwan/tracker/pkg/trackersdk"
)

type ProjectsHandler struct {
	ProjectService *service.ProjectService
}

// HandleCreate adds a project.
//
//	@Summary	Create a project
//	@Tags		Projects
//	@Accept		json
//	@Produce	json
//	@Param		request	body		trackersdk.CreateProjectRequest	true	"Project"
//	@Success	201		{object}	trackersdk.Project				"Created project"
//	@Failure	409		{object}	trackersdk.ErrorResponse		"Name taken"
//	@Security	BearerAuth
//	@Router		/v1/projects [post].
func (h *ProjectsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req trackersdk.CreateProjectRequest
	if !decodeBody(w, r, &req) {
		return
	}
	deadline, ok := optionalDay(w, "deadline", req.Deadline)
	if !ok {
		return
	}

	p, err := h.ProjectService.Create(r.Context(), req.Name, deadline)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toProject(p))
}

// HandleList returns projects.
//
//	@Summary	List projects
//	@Tags		Projects
//	@Produce	json
//	@Param		active_only	query		bool							false	"Only active projects"
//	@Success	200			{object}	trackersdk.ListProjectsResponse	"Projects ordered by name"
//	@Security	BearerAuth
//	@Router		/v1/projects [get].
func (h *ProjectsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	activeOnly, ok := parseBoolParam(w, r, "active_only", false)
	if !ok {
		return
	}

	projects, err := h.ProjectService.List(r.Context(), activeOnly)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, trackersdk.ListProjectsResponse{Projects: toProjects(projects)})
}

// HandleSetDeadline sets or clears a project deadline.
//
//	@Summary	Set project deadline
//	@Tags		Projects
//	@Accept		json
//	@Param		id		path	string							true	"Project ID"
//	@Param		request	body	trackersdk.SetDeadlineRequest	true	"Deadline, null to clear"
//	@Success	204
//	@Failure	404	{object}	trackersdk.ErrorResponse	"Unknown project"
//	@Security	BearerAuth
//	@Router		/v1/projects/{id}/deadline [put].
func (h *ProjectsHandler) HandleSetDeadline(w http.ResponseWriter, r *http.Request) {
	var req trackersdk.SetDeadlineRequest
	if !decodeBody(w, r, &req) {
		return
	}
	deadline, ok := optionalDay(w, "deadline", req.Deadline)
	if !ok {
		return
	}

	if err := h.ProjectService.SetDeadline(r.Context(), r.PathValue("id"), deadline); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleToggleActive flips the active flag of a project.
//
//	@Summary	Toggle project activation
//	@Tags		Projects
//	@Produce	json
//	@Param		id	path		string						true	"Project ID"
//	@Success	200	{object}	trackersdk.Project			"Updated project"
//	@Failure	404	{object}	trackersdk.ErrorResponse	"Unknown project"
//	@Security	BearerAuth
//	@Router		/v1/projects/{id}/toggle-active [post].
func (h *ProjectsHandler) HandleToggleActive(w http.ResponseWriter, r *http.Request) {
	p, err := h.ProjectService.ToggleActive(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toProject(p))
}

func optionalDay(w http.ResponseWriter, name string, value *string) (*time.Time, bool) {
	if value == nil || *value == "" {
		return nil, true
	}
	d, ok := parseDayParam(w, name, *value)
	if !ok {
		return nil, false
	}
	return &d, true
}
