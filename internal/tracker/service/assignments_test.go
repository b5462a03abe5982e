package service

import (
	"testing"

	"github.com/aussiebroadwan/tracker/internal/tracker/domain"
	"github.com/stretchr/testify/require"
)

func TestActiveOn(t *testing.T) {
	f := newFixture(t)
	svc := &AssignmentService{Store: f.store}

	alice := f.user(t, "alice", false)
	five := f.project(t, "Five")
	six := f.project(t, "Six")

	month, err := svc.Create(f.ctx, AssignmentInput{
		UserID:    alice.ID,
		ProjectID: five.ID,
		Start:     mustDay(t, "2024-06-01"),
		End:       mustDay(t, "2024-06-30"),
	})
	require.NoError(t, err)

	_, err = svc.Create(f.ctx, AssignmentInput{
		UserID:    alice.ID,
		ProjectID: six.ID,
		Start:     mustDay(t, "2024-06-10"),
		End:       mustDay(t, "2024-06-12"),
	})
	require.NoError(t, err)

	active, err := svc.ActiveOn(f.ctx, alice.ID, mustDay(t, "2024-06-15"))
	require.NoError(t, err)
	require.Len(t, active, 1)
	require.Equal(t, month.ID, active[0].ID)
	require.Equal(t, five.ID, active[0].ProjectID)

	overlapping, err := svc.ActiveOn(f.ctx, alice.ID, mustDay(t, "2024-06-11"))
	require.NoError(t, err)
	require.Len(t, overlapping, 2)

	none, err := svc.ActiveOn(f.ctx, alice.ID, mustDay(t, "2024-07-01"))
	require.NoError(t, err)
	require.NotNil(t, none)
	require.Empty(t, none)
}

func TestAssignmentLifecycle(t *testing.T) {
	f := newFixture(t)
	svc := &AssignmentService{Store: f.store}

	alice := f.user(t, "alice", false)
	apollo := f.project(t, "Apollo")
	gemini := f.project(t, "Gemini")

	t.Run("create validates range", func(t *testing.T) {
		_, err := svc.Create(f.ctx, AssignmentInput{
			UserID:    alice.ID,
			ProjectID: apollo.ID,
			Start:     mustDay(t, "2024-01-05"),
			End:       mustDay(t, "2024-01-01"),
		})
		require.ErrorIs(t, err, ErrValidation)
	})

	t.Run("create requires user and project", func(t *testing.T) {
		_, err := svc.Create(f.ctx, AssignmentInput{
			UserID:    "missing",
			ProjectID: apollo.ID,
			Start:     mustDay(t, "2024-01-01"),
			End:       mustDay(t, "2024-01-05"),
		})
		require.ErrorIs(t, err, ErrNotFound)

		_, err = svc.Create(f.ctx, AssignmentInput{
			UserID:    alice.ID,
			ProjectID: "missing",
			Start:     mustDay(t, "2024-01-01"),
			End:       mustDay(t, "2024-01-05"),
		})
		require.ErrorIs(t, err, ErrNotFound)
	})

	a, err := svc.Create(f.ctx, AssignmentInput{
		UserID:    alice.ID,
		ProjectID: apollo.ID,
		Start:     mustDay(t, "2024-01-01"),
		End:       mustDay(t, "2024-01-05"),
	})
	require.NoError(t, err)
	require.Equal(t, "2024-01-01", domain.FormatDay(a.StartDate))

	t.Run("update stores dates as given", func(t *testing.T) {
		updated, err := svc.Update(f.ctx, a.ID, AssignmentUpdate{
			ProjectID: &gemini.ID,
			Start:     mustDay(t, "2024-01-02"),
			End:       mustDay(t, "2024-01-06"),
		})
		require.NoError(t, err)
		require.Equal(t, gemini.ID, updated.ProjectID)

		got, err := f.store.Assignments().GetAssignmentByID(f.ctx, a.ID)
		require.NoError(t, err)
		require.Equal(t, "2024-01-02", domain.FormatDay(got.StartDate))
		require.Equal(t, "2024-01-06", domain.FormatDay(got.EndDate))
		require.Equal(t, gemini.ID, got.ProjectID)
	})

	t.Run("update validates", func(t *testing.T) {
		_, err := svc.Update(f.ctx, a.ID, AssignmentUpdate{Start: mustDay(t, "2024-02-02"), End: mustDay(t, "2024-02-01")})
		require.ErrorIs(t, err, ErrValidation)

		_, err = svc.Update(f.ctx, "missing", AssignmentUpdate{Start: mustDay(t, "2024-02-01"), End: mustDay(t, "2024-02-02")})
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, svc.Delete(f.ctx, a.ID))
		require.ErrorIs(t, svc.Delete(f.ctx, a.ID), ErrNotFound)
	})
}

func TestTimeline(t *testing.T) {
	f := newFixture(t)
	svc := &AssignmentService{Store: f.store}

	alice := f.user(t, "alice", false)
	bob := f.user(t, "bob", false)
	apollo := f.project(t, "Apollo")
	retired := f.project(t, "Retired")

	for _, p := range []domain.Project{apollo, retired} {
		_, err := svc.Create(f.ctx, AssignmentInput{
			UserID:    alice.ID,
			ProjectID: p.ID,
			Start:     mustDay(t, "2024-01-01"),
			End:       mustDay(t, "2024-01-31"),
		})
		require.NoError(t, err)
	}

	require.NoError(t, f.store.Projects().SetProjectActive(f.ctx, retired.ID, false))
	require.NoError(t, f.store.Users().SetUserActive(f.ctx, bob.ID, false))

	tl, err := svc.Timeline(f.ctx, true)
	require.NoError(t, err)
	require.Len(t, tl.Assignments, 2)
	require.Len(t, tl.Projects, 1)
	require.Equal(t, apollo.ID, tl.Projects[0].ID)
	require.Len(t, tl.Users, 1)
	require.Equal(t, alice.ID, tl.Users[0].ID)

	all, err := svc.Timeline(f.ctx, false)
	require.NoError(t, err)
	require.Len(t, all.Projects, 2)
	require.Len(t, all.Users, 2)
}
