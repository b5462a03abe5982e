package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/aussiebroadwan/tracker/internal/tracker/domain"
)

type projectsRepo struct {
	q dbtx
}

const projectColumns = `id, name, deadline, is_active, created_at, updated_at`

func scanProject(row rowScanner) (domain.Project, error) {
	var (
		p                    domain.Project
		deadline             sql.NullString
		createdAt, updatedAt string
	)
	if err := row.Scan(&p.ID, &p.Name, &deadline, &p.IsActive, &createdAt, &updatedAt); err != nil {
		return domain.Project{}, err
	}
	d, err := mapNullDayPtr(deadline)
	if err != nil {
		return domain.Project{}, err
	}
	p.Deadline = d
	p.CreatedAt = parseTimestamp(createdAt)
	p.UpdatedAt = parseTimestamp(updatedAt)
	return p, nil
}

func (r *projectsRepo) GetProjectByID(ctx context.Context, id string) (domain.Project, error) {
	row := r.q.QueryRowContext(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = ?`, id)
	p, err := scanProject(row)
	if err != nil {
		return domain.Project{}, mapNotFound(err)
	}
	return p, nil
}

func (r *projectsRepo) GetProjectByName(ctx context.Context, name string) (domain.Project, error) {
	row := r.q.QueryRowContext(ctx, `SELECT `+projectColumns+` FROM projects WHERE name = ?`, name)
	p, err := scanProject(row)
	if err != nil {
		return domain.Project{}, mapNotFound(err)
	}
	return p, nil
}

func (r *projectsRepo) ListProjects(ctx context.Context, activeOnly bool) ([]domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects`
	if activeOnly {
		query += ` WHERE is_active = 1`
	}
	query += ` ORDER BY name`

	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	projects := make([]domain.Project, 0)
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

func (r *projectsRepo) CreateProject(ctx context.Context, p domain.Project) error {
	ts := now()
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO projects (id, name, deadline, is_active, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name, mapOptionalDay(p.Deadline), p.IsActive, ts, ts,
	)
	return mapConstraint(err)
}

func (r *projectsRepo) SetProjectDeadline(ctx context.Context, id string, deadline *time.Time) error {
	return requireAffected(r.q.ExecContext(ctx,
		`UPDATE projects SET deadline = ?, updated_at = ? WHERE id = ?`, mapOptionalDay(deadline), now(), id))
}

func (r *projectsRepo) SetProjectActive(ctx context.Context, id string, active bool) error {
	return requireAffected(r.q.ExecContext(ctx,
		`UPDATE projects SET is_active = ?, updated_at = ? WHERE id = ?`, active, now(), id))
}
