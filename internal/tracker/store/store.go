package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/tracker/internal/tracker/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite for
// now) implement this. Sub-repositories are exposed as methods so that a
// Tx-scoped Store hands out repos bound to the same transaction, which
// keeps people from accidentally mixing transactional and plain writes.
type Store interface {
	Users() Users
	Projects() Projects
	Entries() Entries
	Assignments() Assignments

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise it is committed. Repos used
	// inside fn must come from the tx argument.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByUsername is used during login and duplicate checks.
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)

	// ListUsers returns users ordered by username. activeOnly drops
	// deactivated accounts.
	ListUsers(ctx context.Context, activeOnly bool) ([]domain.User, error)

	// CreateUser inserts a new user (id is provided by app via ULID).
	// Returns ErrAlreadyExists when the username is taken.
	CreateUser(ctx context.Context, u domain.User) error

	SetUserActive(ctx context.Context, id string, active bool) error
	SetUserAdmin(ctx context.Context, id string, admin bool) error

	// IsEmpty returns true if there are no users.
	IsEmpty(ctx context.Context) (bool, error)
}

type Projects interface {
	GetProjectByID(ctx context.Context, id string) (domain.Project, error)
	GetProjectByName(ctx context.Context, name string) (domain.Project, error)

	// ListProjects returns projects ordered by name.
	ListProjects(ctx context.Context, activeOnly bool) ([]domain.Project, error)

	// CreateProject returns ErrAlreadyExists when the name is taken.
	CreateProject(ctx context.Context, p domain.Project) error

	// SetProjectDeadline sets or (with nil) clears the deadline.
	SetProjectDeadline(ctx context.Context, id string, deadline *time.Time) error
	SetProjectActive(ctx context.Context, id string, active bool) error
}

type Entries interface {
	GetEntryByID(ctx context.Context, id string) (domain.TimeEntry, error)

	CreateEntry(ctx context.Context, e domain.TimeEntry) error

	// UpdateEntry rewrites project_id and hours of an existing entry.
	UpdateEntry(ctx context.Context, e domain.TimeEntry) error

	DeleteEntry(ctx context.Context, id string) error

	// ListEntryDetails returns entries joined with project name and
	// username, ordered by date then creation. Bounds are inclusive.
	ListEntryDetails(ctx context.Context, f domain.EntryFilter) ([]domain.EntryDetail, error)
}

type Assignments interface {
	GetAssignmentByID(ctx context.Context, id string) (domain.Assignment, error)

	// ListAssignments returns every assignment ordered by start date.
	ListAssignments(ctx context.Context) ([]domain.Assignment, error)

	// ListActiveAssignments returns the user's assignments whose range
	// contains day. An empty result is not an error.
	ListActiveAssignments(ctx context.Context, userID string, day time.Time) ([]domain.Assignment, error)

	CreateAssignment(ctx context.Context, a domain.Assignment) error
	UpdateAssignment(ctx context.Context, a domain.Assignment) error
	DeleteAssignment(ctx context.Context, id string) error
}
