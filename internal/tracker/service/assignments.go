package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/tracker/internal/tracker/domain"
	"github.com/aussiebroadwan/tracker/internal/tracker/metrics"
	"github.com/aussiebroadwan/tracker/internal/tracker/store"
	"github.com/aussiebroadwan/tracker/pkg/idx"
	"github.com/aussiebroadwan/tracker/pkg/slogx"
)

// AssignmentInput describes a new assignment. Dates are calendar days and
// stored exactly as given.
type AssignmentInput struct {
	UserID    string
	ProjectID string
	Start     time.Time
	End       time.Time
}

// AssignmentUpdate replaces the range of an assignment and optionally moves
// it to another project. Dates are canonical; any display-layer shifting
// has already been applied by the caller.
type AssignmentUpdate struct {
	ProjectID *string
	Start     time.Time
	End       time.Time
}

type AssignmentService struct {
	Store store.Store
}

func checkRange(start, end time.Time) error {
	if start.After(end) {
		return validationf("start date %s is after end date %s", domain.FormatDay(start), domain.FormatDay(end))
	}
	return nil
}

// Create schedules a user on a project. Overlaps with existing assignments
// are allowed.
func (s *AssignmentService) Create(ctx context.Context, in AssignmentInput) (domain.Assignment, error) {
	log := slogx.FromContext(ctx)

	a := domain.Assignment{
		ID:        idx.New().String(),
		UserID:    in.UserID,
		ProjectID: in.ProjectID,
		StartDate: domain.Day(in.Start),
		EndDate:   domain.Day(in.End),
	}
	if err := checkRange(a.StartDate, a.EndDate); err != nil {
		return domain.Assignment{}, err
	}

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if _, err := tx.Users().GetUserByID(ctx, a.UserID); err != nil {
			return storeErr(err, "user "+a.UserID)
		}
		if _, err := tx.Projects().GetProjectByID(ctx, a.ProjectID); err != nil {
			return storeErr(err, "project "+a.ProjectID)
		}
		return storeErr(tx.Assignments().CreateAssignment(ctx, a), "assignment")
	})
	if err != nil {
		return domain.Assignment{}, storeErr(err, "assignment")
	}

	log.Info("assignment created",
		slog.String("assignment_id", a.ID),
		slog.String("user_id", a.UserID),
		slog.String("project_id", a.ProjectID),
		slog.String("start_date", domain.FormatDay(a.StartDate)),
		slog.String("end_date", domain.FormatDay(a.EndDate)),
	)
	metrics.AssignmentChangesTotal.WithLabelValues("create").Inc()
	return a, nil
}

// Update rewrites the assignment's range, and its project when one is given.
func (s *AssignmentService) Update(ctx context.Context, id string, upd AssignmentUpdate) (domain.Assignment, error) {
	log := slogx.FromContext(ctx)

	start, end := domain.Day(upd.Start), domain.Day(upd.End)
	if err := checkRange(start, end); err != nil {
		return domain.Assignment{}, err
	}

	var updated domain.Assignment
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		a, err := tx.Assignments().GetAssignmentByID(ctx, id)
		if err != nil {
			return storeErr(err, "assignment "+id)
		}

		if upd.ProjectID != nil && *upd.ProjectID != a.ProjectID {
			if _, err := tx.Projects().GetProjectByID(ctx, *upd.ProjectID); err != nil {
				return storeErr(err, "project "+*upd.ProjectID)
			}
			a.ProjectID = *upd.ProjectID
		}
		a.StartDate, a.EndDate = start, end

		if err := tx.Assignments().UpdateAssignment(ctx, a); err != nil {
			return storeErr(err, "assignment "+id)
		}
		updated = a
		return nil
	})
	if err != nil {
		return domain.Assignment{}, storeErr(err, "assignment "+id)
	}

	log.Info("assignment updated",
		slog.String("assignment_id", id),
		slog.String("start_date", domain.FormatDay(start)),
		slog.String("end_date", domain.FormatDay(end)),
	)
	metrics.AssignmentChangesTotal.WithLabelValues("update").Inc()
	return updated, nil
}

func (s *AssignmentService) Delete(ctx context.Context, id string) error {
	if err := s.Store.Assignments().DeleteAssignment(ctx, id); err != nil {
		return storeErr(err, "assignment "+id)
	}

	slogx.FromContext(ctx).Info("assignment deleted", slog.String("assignment_id", id))
	metrics.AssignmentChangesTotal.WithLabelValues("delete").Inc()
	return nil
}

// ActiveOn returns the user's assignments covering day. Overlapping
// assignments are all returned; none is an empty slice, not an error.
func (s *AssignmentService) ActiveOn(ctx context.Context, userID string, day time.Time) ([]domain.Assignment, error) {
	active, err := s.Store.Assignments().ListActiveAssignments(ctx, userID, domain.Day(day))
	if err != nil {
		return nil, storeErr(err, "assignments")
	}
	return active, nil
}

// Timeline returns every assignment together with the projects and users
// needed to draw them. activeOnly restricts the project and user sets to
// active records; assignments are never filtered.
func (s *AssignmentService) Timeline(ctx context.Context, activeOnly bool) (domain.Timeline, error) {
	var tl domain.Timeline
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		var err error
		if tl.Assignments, err = tx.Assignments().ListAssignments(ctx); err != nil {
			return err
		}
		if tl.Projects, err = tx.Projects().ListProjects(ctx, activeOnly); err != nil {
			return err
		}
		tl.Users, err = tx.Users().ListUsers(ctx, activeOnly)
		return err
	})
	if err != nil {
		return domain.Timeline{}, storeErr(err, "timeline")
	}
	return tl, nil
}
