package trackersdk

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// Session is an authenticated client. Tokens are not refreshed; log in
// again once the token expires.
type Session struct {
	client      *Client
	accessToken string
}

// AccessToken returns the bearer token backing the session.
func (s *Session) AccessToken() string {
	return s.accessToken
}

// ============================================================================
// Entries
// ============================================================================

func (s *Session) AddEntries(ctx context.Context, req AddEntriesRequest) ([]Entry, error) {
	var out ListEntriesResponse
	if err := s.doJSON(ctx, http.MethodPost, "/v1/entries", req, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return out.Entries, nil
}

func (s *Session) BulkEntries(ctx context.Context, req BulkEntriesRequest) ([]Entry, error) {
	var out ListEntriesResponse
	if err := s.doJSON(ctx, http.MethodPost, "/v1/entries/bulk", req, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return out.Entries, nil
}

// ListEntries returns the caller's entries between from and to inclusive
// (YYYY-MM-DD).
func (s *Session) ListEntries(ctx context.Context, from, to string) (*ListEntriesResponse, error) {
	q := url.Values{"from": {from}, "to": {to}}
	var out ListEntriesResponse
	if err := s.doJSON(ctx, http.MethodGet, "/v1/entries?"+q.Encode(), nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) UpdateEntry(ctx context.Context, id string, req UpdateEntryRequest) (*Entry, error) {
	var out Entry
	if err := s.doJSON(ctx, http.MethodPatch, "/v1/entries/"+url.PathEscape(id), req, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) DeleteEntry(ctx context.Context, id string) error {
	return s.doJSON(ctx, http.MethodDelete, "/v1/entries/"+url.PathEscape(id), nil, nil, http.StatusNoContent)
}

// ============================================================================
// Assignments
// ============================================================================

func (s *Session) CreateAssignment(ctx context.Context, req CreateAssignmentRequest) (*Assignment, error) {
	var out Assignment
	if err := s.doJSON(ctx, http.MethodPost, "/v1/assignments", req, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) UpdateAssignment(ctx context.Context, id string, req UpdateAssignmentRequest) (*Assignment, error) {
	var out Assignment
	if err := s.doJSON(ctx, http.MethodPut, "/v1/assignments/"+url.PathEscape(id), req, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) DeleteAssignment(ctx context.Context, id string) error {
	return s.doJSON(ctx, http.MethodDelete, "/v1/assignments/"+url.PathEscape(id), nil, nil, http.StatusNoContent)
}

// ActiveAssignments lists the assignments of userID covering date. An
// empty userID means the caller.
func (s *Session) ActiveAssignments(ctx context.Context, userID, date string) ([]Assignment, error) {
	q := url.Values{"date": {date}}
	if userID != "" {
		q.Set("user_id", userID)
	}
	var out ListAssignmentsResponse
	if err := s.doJSON(ctx, http.MethodGet, "/v1/assignments/active?"+q.Encode(), nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out.Assignments, nil
}

func (s *Session) Timeline(ctx context.Context, activeOnly bool) (*TimelineResponse, error) {
	path := "/v1/timeline?active_only=" + strconv.FormatBool(activeOnly)
	var out TimelineResponse
	if err := s.doJSON(ctx, http.MethodGet, path, nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// ============================================================================
// Users & Projects
// ============================================================================

func (s *Session) CreateUser(ctx context.Context, req CreateUserRequest) (*User, error) {
	var out User
	if err := s.doJSON(ctx, http.MethodPost, "/v1/users", req, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) ListUsers(ctx context.Context) ([]User, error) {
	var out ListUsersResponse
	if err := s.doJSON(ctx, http.MethodGet, "/v1/users", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out.Users, nil
}

// SetUserActive activates or deactivates a user.
func (s *Session) SetUserActive(ctx context.Context, id string, active bool) error {
	action := "deactivate"
	if active {
		action = "activate"
	}
	path := fmt.Sprintf("/v1/users/%s/%s", url.PathEscape(id), action)
	return s.doJSON(ctx, http.MethodPost, path, nil, nil, http.StatusNoContent)
}

func (s *Session) ToggleAdmin(ctx context.Context, id string) (*User, error) {
	var out User
	path := fmt.Sprintf("/v1/users/%s/toggle-admin", url.PathEscape(id))
	if err := s.doJSON(ctx, http.MethodPost, path, nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) CreateProject(ctx context.Context, req CreateProjectRequest) (*Project, error) {
	var out Project
	if err := s.doJSON(ctx, http.MethodPost, "/v1/projects", req, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) ListProjects(ctx context.Context, activeOnly bool) ([]Project, error) {
	path := "/v1/projects?active_only=" + strconv.FormatBool(activeOnly)
	var out ListProjectsResponse
	if err := s.doJSON(ctx, http.MethodGet, path, nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out.Projects, nil
}

func (s *Session) SetProjectDeadline(ctx context.Context, id string, deadline *string) error {
	path := fmt.Sprintf("/v1/projects/%s/deadline", url.PathEscape(id))
	return s.doJSON(ctx, http.MethodPut, path, SetDeadlineRequest{Deadline: deadline}, nil, http.StatusNoContent)
}

func (s *Session) ToggleProjectActive(ctx context.Context, id string) (*Project, error) {
	var out Project
	path := fmt.Sprintf("/v1/projects/%s/toggle-active", url.PathEscape(id))
	if err := s.doJSON(ctx, http.MethodPost, path, nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// ============================================================================
// Summary & Reports
// ============================================================================

func (s *Session) Summary(ctx context.Context) (*SummaryResponse, error) {
	var out SummaryResponse
	if err := s.doJSON(ctx, http.MethodGet, "/v1/summary", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) PreviewReport(ctx context.Context, req ReportRequest) (*ReportPreview, error) {
	var out ReportPreview
	if err := s.doJSON(ctx, http.MethodPost, "/v1/reports/export", req, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}
