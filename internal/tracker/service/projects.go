package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/aussiebroadwan/tracker/internal/tracker/domain"
	"github.com/aussiebroadwan/tracker/internal/tracker/store"
	"github.com/aussiebroadwan/tracker/pkg/idx"
	"github.com/aussiebroadwan/tracker/pkg/slogx"
)

type ProjectService struct {
	Store store.Store
}

// Create adds an active project. Names are unique.
func (s *ProjectService) Create(ctx context.Context, name string, deadline *time.Time) (domain.Project, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Project{}, validationf("project name is required")
	}

	p := domain.Project{
		ID:       idx.New().String(),
		Name:     name,
		Deadline: dayPtr(deadline),
		IsActive: true,
	}
	if err := s.Store.Projects().CreateProject(ctx, p); err != nil {
		return domain.Project{}, storeErr(err, "project "+name)
	}

	slogx.FromContext(ctx).Info("project created", slog.String("project_id", p.ID), slog.String("name", name))
	return p, nil
}

func (s *ProjectService) Get(ctx context.Context, id string) (domain.Project, error) {
	p, err := s.Store.Projects().GetProjectByID(ctx, id)
	if err != nil {
		return domain.Project{}, storeErr(err, "project "+id)
	}
	return p, nil
}

func (s *ProjectService) List(ctx context.Context, activeOnly bool) ([]domain.Project, error) {
	projects, err := s.Store.Projects().ListProjects(ctx, activeOnly)
	if err != nil {
		return nil, storeErr(err, "projects")
	}
	return projects, nil
}

// SetDeadline sets the deadline, or clears it when deadline is nil.
func (s *ProjectService) SetDeadline(ctx context.Context, id string, deadline *time.Time) error {
	if err := s.Store.Projects().SetProjectDeadline(ctx, id, dayPtr(deadline)); err != nil {
		return storeErr(err, "project "+id)
	}

	attrs := []any{slog.String("project_id", id)}
	if deadline != nil {
		attrs = append(attrs, slog.String("deadline", domain.FormatDay(*deadline)))
	}
	slogx.FromContext(ctx).Info("project deadline changed", attrs...)
	return nil
}

// ToggleActive flips the active flag and returns the updated project.
func (s *ProjectService) ToggleActive(ctx context.Context, id string) (domain.Project, error) {
	var updated domain.Project
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		p, err := tx.Projects().GetProjectByID(ctx, id)
		if err != nil {
			return storeErr(err, "project "+id)
		}
		p.IsActive = !p.IsActive
		if err := tx.Projects().SetProjectActive(ctx, id, p.IsActive); err != nil {
			return storeErr(err, "project "+id)
		}
		updated = p
		return nil
	})
	if err != nil {
		return domain.Project{}, storeErr(err, "project "+id)
	}

	slogx.FromContext(ctx).Info("project activation toggled", slog.String("project_id", id), slog.Bool("active", updated.IsActive))
	return updated, nil
}

func dayPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	d := domain.Day(*t)
	return &d
}
