package sqlite

import (
	"context"
	"strings"

	"github.com/aussiebroadwan/tracker/internal/tracker/domain"
)

type entriesRepo struct {
	q dbtx
}

func (r *entriesRepo) GetEntryByID(ctx context.Context, id string) (domain.TimeEntry, error) {
	var (
		e              domain.TimeEntry
		day, createdAt string
	)
	err := r.q.QueryRowContext(ctx,
		`SELECT id, date, hours, project_id, user_id, created_at FROM time_entries WHERE id = ?`, id,
	).Scan(&e.ID, &day, &e.Hours, &e.ProjectID, &e.UserID, &createdAt)
	if err != nil {
		return domain.TimeEntry{}, mapNotFound(err)
	}
	if e.Date, err = parseDay(day); err != nil {
		return domain.TimeEntry{}, err
	}
	e.CreatedAt = parseTimestamp(createdAt)
	return e, nil
}

func (r *entriesRepo) CreateEntry(ctx context.Context, e domain.TimeEntry) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO time_entries (id, date, hours, project_id, user_id, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		e.ID, formatDay(e.Date), e.Hours, e.ProjectID, e.UserID, now(),
	)
	return mapConstraint(err)
}

func (r *entriesRepo) UpdateEntry(ctx context.Context, e domain.TimeEntry) error {
	return requireAffected(r.q.ExecContext(ctx,
		`UPDATE time_entries SET project_id = ?, hours = ? WHERE id = ?`, e.ProjectID, e.Hours, e.ID))
}

func (r *entriesRepo) DeleteEntry(ctx context.Context, id string) error {
	return requireAffected(r.q.ExecContext(ctx, `DELETE FROM time_entries WHERE id = ?`, id))
}

func (r *entriesRepo) ListEntryDetails(ctx context.Context, f domain.EntryFilter) ([]domain.EntryDetail, error) {
	var (
		where = []string{"e.date BETWEEN ? AND ?"}
		args  = []any{formatDay(f.From), formatDay(f.To)}
	)
	if len(f.UserIDs) > 0 {
		where = append(where, "e.user_id IN ("+placeholders(len(f.UserIDs))+")")
		args = append(args, toArgs(f.UserIDs)...)
	}
	if len(f.ProjectIDs) > 0 {
		where = append(where, "e.project_id IN ("+placeholders(len(f.ProjectIDs))+")")
		args = append(args, toArgs(f.ProjectIDs)...)
	}

	query := `
		SELECT e.id, e.date, e.hours, e.project_id, e.user_id, e.created_at, p.name, u.username
		FROM time_entries e
		JOIN projects p ON p.id = e.project_id
		JOIN users u ON u.id = e.user_id
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY e.date, e.created_at, e.id`

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	details := make([]domain.EntryDetail, 0)
	for rows.Next() {
		var (
			d              domain.EntryDetail
			day, createdAt string
		)
		if err := rows.Scan(
			&d.ID,
			&day,
			&d.Hours,
			&d.ProjectID,
			&d.UserID,
			&createdAt,
			&d.ProjectName,
			&d.Username,
		); err != nil {
			return nil, err
		}
		if d.Date, err = parseDay(day); err != nil {
			return nil, err
		}
		d.CreatedAt = parseTimestamp(createdAt)
		details = append(details, d)
	}
	return details, rows.Err()
}
