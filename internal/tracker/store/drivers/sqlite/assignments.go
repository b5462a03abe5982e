package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/tracker/internal/tracker/domain"
)

type assignmentsRepo struct {
	q dbtx
}

const assignmentColumns = `id, user_id, project_id, start_date, end_date, created_at, updated_at`

func scanAssignment(row rowScanner) (domain.Assignment, error) {
	var (
		a                    domain.Assignment
		start, end           string
		createdAt, updatedAt string
	)
	if err := row.Scan(&a.ID, &a.UserID, &a.ProjectID, &start, &end, &createdAt, &updatedAt); err != nil {
		return domain.Assignment{}, err
	}

	var err error
	if a.StartDate, err = parseDay(start); err != nil {
		return domain.Assignment{}, err
	}
	if a.EndDate, err = parseDay(end); err != nil {
		return domain.Assignment{}, err
	}
	a.CreatedAt = parseTimestamp(createdAt)
	a.UpdatedAt = parseTimestamp(updatedAt)
	return a, nil
}

func (r *assignmentsRepo) GetAssignmentByID(ctx context.Context, id string) (domain.Assignment, error) {
	row := r.q.QueryRowContext(ctx, `SELECT `+assignmentColumns+` FROM project_assignments WHERE id = ?`, id)
	a, err := scanAssignment(row)
	if err != nil {
		return domain.Assignment{}, mapNotFound(err)
	}
	return a, nil
}

func (r *assignmentsRepo) ListAssignments(ctx context.Context) ([]domain.Assignment, error) {
	return r.list(ctx, `SELECT `+assignmentColumns+` FROM project_assignments ORDER BY start_date, id`)
}

func (r *assignmentsRepo) ListActiveAssignments(
	ctx context.Context,
	userID string,
	day time.Time,
) ([]domain.Assignment, error) {
	d := formatDay(day)
	return r.list(ctx,
		`SELECT `+assignmentColumns+` FROM project_assignments
		 WHERE user_id = ? AND start_date <= ? AND end_date >= ?
		 ORDER BY start_date, id`,
		userID, d, d,
	)
}

func (r *assignmentsRepo) list(ctx context.Context, query string, args ...any) ([]domain.Assignment, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	assignments := make([]domain.Assignment, 0)
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, err
		}
		assignments = append(assignments, a)
	}
	return assignments, rows.Err()
}

func (r *assignmentsRepo) CreateAssignment(ctx context.Context, a domain.Assignment) error {
	ts := now()
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO project_assignments (id, user_id, project_id, start_date, end_date, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.UserID, a.ProjectID, formatDay(a.StartDate), formatDay(a.EndDate), ts, ts,
	)
	return mapConstraint(err)
}

func (r *assignmentsRepo) UpdateAssignment(ctx context.Context, a domain.Assignment) error {
	return requireAffected(r.q.ExecContext(ctx,
		`UPDATE project_assignments
		 SET project_id = ?, start_date = ?, end_date = ?, updated_at = ?
		 WHERE id = ?`,
		a.ProjectID, formatDay(a.StartDate), formatDay(a.EndDate), now(), a.ID,
	))
}

func (r *assignmentsRepo) DeleteAssignment(ctx context.Context, id string) error {
	return requireAffected(r.q.ExecContext(ctx, `DELETE FROM project_assignments WHERE id = ?`, id))
}
