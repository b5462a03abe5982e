package trackersdk

import "encoding/json"

// ============================================================================
// Common Types
// ============================================================================

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description,omitempty"`
}

// HealthResponse is returned by /livez and /readyz.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime,omitempty"`
	Version string        `json:"version,omitempty"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks lists dependency state on /readyz.
type HealthChecks struct {
	Database string `json:"database"`
}

// ============================================================================
// Auth Types
// ============================================================================

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// TokenResponse carries the bearer token issued by POST /v1/auth/login.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
	UserID      string `json:"user_id"`
	Admin       bool   `json:"admin"`
}

// ============================================================================
// Entry Types
// ============================================================================

// EntryLine is one project/hours pair of an add-entries submission. Hours
// is accepted as a JSON number or a numeric string.
type EntryLine struct {
	ProjectID string      `json:"project_id" validate:"required"`
	Hours     json.Number `json:"hours" validate:"required"`
}

// AddEntriesRequest books one or more lines against a single day.
type AddEntriesRequest struct {
	Date    string      `json:"date" validate:"required,datetime=2006-01-02"`
	Entries []EntryLine `json:"entries" validate:"required,min=1,dive"`
}

// BulkEntriesRequest spreads TotalHours over the days from Start up to
// (not including) End. UserID defaults to the caller.
type BulkEntriesRequest struct {
	UserID     string  `json:"user_id,omitempty"`
	ProjectID  string  `json:"project_id" validate:"required"`
	Start      string  `json:"start" validate:"required,datetime=2006-01-02"`
	End        string  `json:"end" validate:"required,datetime=2006-01-02"`
	TotalHours float64 `json:"total_hours" validate:"gt=0"`
}

// UpdateEntryRequest changes the project and/or hours of an entry.
type UpdateEntryRequest struct {
	ProjectID *string      `json:"project_id,omitempty"`
	Hours     *json.Number `json:"hours,omitempty"`
}

type Entry struct {
	ID          string  `json:"id"`
	Date        string  `json:"date"`
	Hours       float64 `json:"hours"`
	ProjectID   string  `json:"project_id"`
	ProjectName string  `json:"project_name,omitempty"`
	UserID      string  `json:"user_id"`
	Username    string  `json:"username,omitempty"`
}

type ListEntriesResponse struct {
	Entries []Entry `json:"entries"`
	Total   float64 `json:"total"`
}

// ============================================================================
// Assignment Types
// ============================================================================

type CreateAssignmentRequest struct {
	UserID    string `json:"user_id" validate:"required"`
	ProjectID string `json:"project_id" validate:"required"`
	Start     string `json:"start" validate:"required,datetime=2006-01-02"`
	End       string `json:"end" validate:"required,datetime=2006-01-02"`
}

// UpdateAssignmentRequest carries the dates as shown by the timeline view.
// The server shifts them by its configured offset before storing.
type UpdateAssignmentRequest struct {
	ProjectID *string `json:"project_id,omitempty"`
	Start     string  `json:"start" validate:"required,datetime=2006-01-02"`
	End       string  `json:"end" validate:"required,datetime=2006-01-02"`
}

type Assignment struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	ProjectID string `json:"project_id"`
	Start     string `json:"start"`
	End       string `json:"end"`
}

type ListAssignmentsResponse struct {
	Assignments []Assignment `json:"assignments"`
}

type TimelineResponse struct {
	Assignments []Assignment `json:"assignments"`
	Projects    []Project    `json:"projects"`
	Users       []User       `json:"users"`
}

// ============================================================================
// User & Project Types
// ============================================================================

type CreateUserRequest struct {
	Username string `json:"username" validate:"required,min=3,max=64"`
	Password string `json:"password" validate:"required,min=8"`
	Admin    bool   `json:"admin"`
}

type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Admin    bool   `json:"admin"`
	Active   bool   `json:"active"`
}

type ListUsersResponse struct {
	Users []User `json:"users"`
}

type CreateProjectRequest struct {
	Name     string  `json:"name" validate:"required,max=128"`
	Deadline *string `json:"deadline,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

// SetDeadlineRequest sets the deadline, or clears it when Deadline is nil.
type SetDeadlineRequest struct {
	Deadline *string `json:"deadline" validate:"omitempty,datetime=2006-01-02"`
}

type Project struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Deadline *string `json:"deadline,omitempty"`
	Active   bool    `json:"active"`
}

type ListProjectsResponse struct {
	Projects []Project `json:"projects"`
}

// ============================================================================
// Summary & Report Types
// ============================================================================

type ProjectHours struct {
	Project string  `json:"project"`
	Hours   float64 `json:"hours"`
}

type PeriodSummary struct {
	From      string         `json:"from"`
	To        string         `json:"to"`
	ByProject []ProjectHours `json:"by_project"`
	Total     float64        `json:"total"`
}

type SummaryResponse struct {
	Weekly            PeriodSummary `json:"weekly"`
	Monthly           PeriodSummary `json:"monthly"`
	CurrentMonthHours float64       `json:"current_month_hours"`
}

// ReportRequest selects the entries of an export. AggregateBy is one of
// none, project, user or project_and_user (default none).
type ReportRequest struct {
	Start       string   `json:"start" validate:"required,datetime=2006-01-02"`
	End         string   `json:"end" validate:"required,datetime=2006-01-02"`
	ProjectIDs  []string `json:"project_ids,omitempty"`
	UserIDs     []string `json:"user_ids,omitempty"`
	AggregateBy string   `json:"aggregate_by,omitempty" validate:"omitempty,oneof=none project user project_and_user"`
}

// ReportPreview is the JSON rendering of an export. Cells are strings,
// numbers or null.
type ReportPreview struct {
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"rows"`
}
