package http

import (
	"net/http"

	"github.com/aussiebroadwan/tracker/internal/tracker/service"
	"github.com/aussiebroadwan/tracker/pkg/httpx"
	"github.com/aussiebroadwan/tracker/pkg/trackersdk"
)

type UsersHandler struct {
	UserService *service.UserService
}

// HandleCreate adds a user.
//
//	@Summary	Create a user
//	@Tags		Users
//	@Accept		json
//	@Produce	json
//	@Param		request	body		trackersdk.CreateUserRequest	true	"User"
//	@Success	201		{object}	trackersdk.User					"Created user"
//	@Failure	400		{object}	trackersdk.ErrorResponse		"Invalid username or password"
//	@Failure	409		{object}	trackersdk.ErrorResponse		"Username taken"
//	@Security	BearerAuth
//	@Router		/v1/users [post].
func (h *UsersHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req trackersdk.CreateUserRequest
	if !decodeBody(w, r, &req) {
		return
	}

	u, err := h.UserService.Create(r.Context(), req.Username, req.Password, req.Admin)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toUser(u))
}

// HandleList returns every user.
//
//	@Summary	List users
//	@Tags		Users
//	@Produce	json
//	@Param		active_only	query		bool							false	"Only active users"
//	@Success	200			{object}	trackersdk.ListUsersResponse	"Users ordered by username"
//	@Security	BearerAuth
//	@Router		/v1/users [get].
func (h *UsersHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	activeOnly, ok := parseBoolParam(w, r, "active_only", false)
	if !ok {
		return
	}

	users, err := h.UserService.List(r.Context(), activeOnly)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, trackersdk.ListUsersResponse{Users: toUsers(users)})
}

// setActive builds the activate and deactivate handlers.
//
//	@Summary	Activate or deactivate a user
//	@Tags		Users
//	@Param		id	path	string	true	"User ID"
//	@Success	204
//	@Failure	400	{object}	trackersdk.ErrorResponse	"Deactivating yourself"
//	@Failure	404	{object}	trackersdk.ErrorResponse	"Unknown user"
//	@Security	BearerAuth
//	@Router		/v1/users/{id}/activate [post]
//	@Router		/v1/users/{id}/deactivate [post].
func (h *UsersHandler) setActive(active bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := h.UserService.SetActive(r.Context(), principal(r), r.PathValue("id"), active); err != nil {
			writeServiceError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})
}

// HandleToggleAdmin flips the admin flag of a user.
//
//	@Summary	Toggle admin
//	@Tags		Users
//	@Produce	json
//	@Param		id	path		string						true	"User ID"
//	@Success	200	{object}	trackersdk.User				"Updated user"
//	@Failure	400	{object}	trackersdk.ErrorResponse	"Changing your own role"
//	@Failure	404	{object}	trackersdk.ErrorResponse	"Unknown user"
//	@Security	BearerAuth
//	@Router		/v1/users/{id}/toggle-admin [post].
func (h *UsersHandler) HandleToggleAdmin(w http.ResponseWriter, r *http.Request) {
	u, err := h.UserService.ToggleAdmin(r.Context(), principal(r), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toUser(u))
}
