package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aussiebroadwan/tracker/internal/tracker/domain"
	"github.com/aussiebroadwan/tracker/internal/tracker/store"
	"github.com/aussiebroadwan/tracker/pkg/idx"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	return s
}

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := domain.ParseDay(s)
	require.NoError(t, err)
	return d
}

func seedUser(t *testing.T, s *Store, username string) domain.User {
	t.Helper()
	u := domain.User{ID: idx.New().String(), Username: username, PasswordHash: "hash", IsActive: true}
	require.NoError(t, s.Users().CreateUser(context.Background(), u))
	return u
}

func seedProject(t *testing.T, s *Store, name string) domain.Project {
	t.Helper()
	p := domain.Project{ID: idx.New().String(), Name: name, IsActive: true}
	require.NoError(t, s.Projects().CreateProject(context.Background(), p))
	return p
}

func TestMigrations(t *testing.T) {
	s := newTestStore(t)

	// Applying twice is a no-op.
	require.NoError(t, s.ApplyMigrations())

	version, dirty, err := s.MigrationVersion()
	require.NoError(t, err)
	require.False(t, dirty)
	require.Equal(t, uint(3), version)
}

func TestUsers(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	empty, err := s.Users().IsEmpty(ctx)
	require.NoError(t, err)
	require.True(t, empty)

	alice := seedUser(t, s, "alice")
	bob := seedUser(t, s, "bob")

	t.Run("duplicate username", func(t *testing.T) {
		err := s.Users().CreateUser(ctx, domain.User{ID: idx.New().String(), Username: "alice", PasswordHash: "x"})
		require.ErrorIs(t, err, store.ErrAlreadyExists)
	})

	t.Run("lookup", func(t *testing.T) {
		got, err := s.Users().GetUserByUsername(ctx, "alice")
		require.NoError(t, err)
		require.Equal(t, alice.ID, got.ID)
		require.True(t, got.IsActive)
		require.False(t, got.IsAdmin)
		require.False(t, got.CreatedAt.IsZero())

		_, err = s.Users().GetUserByID(ctx, "missing")
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("flags", func(t *testing.T) {
		require.NoError(t, s.Users().SetUserActive(ctx, bob.ID, false))
		require.NoError(t, s.Users().SetUserAdmin(ctx, alice.ID, true))
		require.ErrorIs(t, s.Users().SetUserAdmin(ctx, "missing", true), store.ErrNotFound)

		all, err := s.Users().ListUsers(ctx, false)
		require.NoError(t, err)
		require.Len(t, all, 2)
		require.Equal(t, "alice", all[0].Username)
		require.True(t, all[0].IsAdmin)

		active, err := s.Users().ListUsers(ctx, true)
		require.NoError(t, err)
		require.Len(t, active, 1)
		require.Equal(t, alice.ID, active[0].ID)
	})
}

func TestProjects(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	apollo := seedProject(t, s, "Apollo")
	seedProject(t, s, "Gemini")

	err := s.Projects().CreateProject(ctx, domain.Project{ID: idx.New().String(), Name: "Apollo"})
	require.ErrorIs(t, err, store.ErrAlreadyExists)

	deadline := day(t, "2024-06-30")
	require.NoError(t, s.Projects().SetProjectDeadline(ctx, apollo.ID, &deadline))

	got, err := s.Projects().GetProjectByName(ctx, "Apollo")
	require.NoError(t, err)
	require.NotNil(t, got.Deadline)
	require.True(t, deadline.Equal(*got.Deadline))

	require.NoError(t, s.Projects().SetProjectDeadline(ctx, apollo.ID, nil))
	got, err = s.Projects().GetProjectByID(ctx, apollo.ID)
	require.NoError(t, err)
	require.Nil(t, got.Deadline)

	require.NoError(t, s.Projects().SetProjectActive(ctx, apollo.ID, false))
	active, err := s.Projects().ListProjects(ctx, true)
	require.NoError(t, err)
	require.Len(t, active, 1)
	require.Equal(t, "Gemini", active[0].Name)

	require.ErrorIs(t, s.Projects().SetProjectActive(ctx, "missing", true), store.ErrNotFound)
}

func TestEntries(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	alice := seedUser(t, s, "alice")
	bob := seedUser(t, s, "bob")
	apollo := seedProject(t, s, "Apollo")
	gemini := seedProject(t, s, "Gemini")

	add := func(date string, hours float64, p domain.Project, u domain.User) domain.TimeEntry {
		e := domain.TimeEntry{ID: idx.New().String(), Date: day(t, date), Hours: hours, ProjectID: p.ID, UserID: u.ID}
		require.NoError(t, s.Entries().CreateEntry(ctx, e))
		return e
	}

	later := add("2024-01-03", 2, apollo, alice)
	add("2024-01-01", 3, gemini, bob)
	add("2024-01-02", 4, apollo, bob)
	add("2024-01-05", 1, apollo, alice)

	t.Run("foreign keys enforced", func(t *testing.T) {
		err := s.Entries().CreateEntry(ctx, domain.TimeEntry{
			ID:        idx.New().String(),
			Date:      day(t, "2024-01-01"),
			Hours:     1,
			ProjectID: "missing",
			UserID:    alice.ID,
		})
		require.Error(t, err)
	})

	t.Run("range is inclusive and ordered by date", func(t *testing.T) {
		got, err := s.Entries().ListEntryDetails(ctx, domain.EntryFilter{
			From: day(t, "2024-01-01"),
			To:   day(t, "2024-01-03"),
		})
		require.NoError(t, err)
		require.Len(t, got, 3)
		require.Equal(t, "2024-01-01", domain.FormatDay(got[0].Date))
		require.Equal(t, "2024-01-03", domain.FormatDay(got[2].Date))
		require.Equal(t, "Gemini", got[0].ProjectName)
		require.Equal(t, "bob", got[0].Username)
	})

	t.Run("user and project filters", func(t *testing.T) {
		got, err := s.Entries().ListEntryDetails(ctx, domain.EntryFilter{
			From:       day(t, "2024-01-01"),
			To:         day(t, "2024-01-31"),
			UserIDs:    []string{alice.ID},
			ProjectIDs: []string{apollo.ID, gemini.ID},
		})
		require.NoError(t, err)
		require.Len(t, got, 2)
		for _, e := range got {
			require.Equal(t, alice.ID, e.UserID)
		}
	})

	t.Run("update and delete", func(t *testing.T) {
		later.ProjectID = gemini.ID
		later.Hours = 6.5
		require.NoError(t, s.Entries().UpdateEntry(ctx, later))

		got, err := s.Entries().GetEntryByID(ctx, later.ID)
		require.NoError(t, err)
		require.Equal(t, gemini.ID, got.ProjectID)
		require.Equal(t, 6.5, got.Hours)
		require.Equal(t, "2024-01-03", domain.FormatDay(got.Date))

		require.NoError(t, s.Entries().DeleteEntry(ctx, later.ID))
		_, err = s.Entries().GetEntryByID(ctx, later.ID)
		require.ErrorIs(t, err, store.ErrNotFound)
		require.ErrorIs(t, s.Entries().DeleteEntry(ctx, later.ID), store.ErrNotFound)
	})
}

func TestAssignments(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	alice := seedUser(t, s, "alice")
	apollo := seedProject(t, s, "Apollo")
	gemini := seedProject(t, s, "Gemini")

	first := domain.Assignment{
		ID:        idx.New().String(),
		UserID:    alice.ID,
		ProjectID: apollo.ID,
		StartDate: day(t, "2024-01-01"),
		EndDate:   day(t, "2024-01-10"),
	}
	second := domain.Assignment{
		ID:        idx.New().String(),
		UserID:    alice.ID,
		ProjectID: gemini.ID,
		StartDate: day(t, "2024-01-05"),
		EndDate:   day(t, "2024-01-15"),
	}
	require.NoError(t, s.Assignments().CreateAssignment(ctx, second))
	require.NoError(t, s.Assignments().CreateAssignment(ctx, first))

	t.Run("start after end rejected by schema", func(t *testing.T) {
		err := s.Assignments().CreateAssignment(ctx, domain.Assignment{
			ID:        idx.New().String(),
			UserID:    alice.ID,
			ProjectID: apollo.ID,
			StartDate: day(t, "2024-02-02"),
			EndDate:   day(t, "2024-02-01"),
		})
		require.Error(t, err)
	})

	t.Run("list ordered by start date", func(t *testing.T) {
		all, err := s.Assignments().ListAssignments(ctx)
		require.NoError(t, err)
		require.Len(t, all, 2)
		require.Equal(t, first.ID, all[0].ID)
	})

	t.Run("active on overlapping day", func(t *testing.T) {
		active, err := s.Assignments().ListActiveAssignments(ctx, alice.ID, day(t, "2024-01-07"))
		require.NoError(t, err)
		require.Len(t, active, 2)

		active, err = s.Assignments().ListActiveAssignments(ctx, alice.ID, day(t, "2024-01-15"))
		require.NoError(t, err)
		require.Len(t, active, 1)
		require.Equal(t, second.ID, active[0].ID)

		active, err = s.Assignments().ListActiveAssignments(ctx, alice.ID, day(t, "2024-01-16"))
		require.NoError(t, err)
		require.Empty(t, active)
	})

	t.Run("update and delete", func(t *testing.T) {
		first.EndDate = day(t, "2024-01-20")
		require.NoError(t, s.Assignments().UpdateAssignment(ctx, first))

		got, err := s.Assignments().GetAssignmentByID(ctx, first.ID)
		require.NoError(t, err)
		require.Equal(t, "2024-01-20", domain.FormatDay(got.EndDate))

		require.NoError(t, s.Assignments().DeleteAssignment(ctx, first.ID))
		require.ErrorIs(t, s.Assignments().DeleteAssignment(ctx, first.ID), store.ErrNotFound)
	})
}

func TestWithTxRollsBack(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	boom := errors.New("boom")
	err := s.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().CreateUser(ctx, domain.User{ID: idx.New().String(), Username: "ghost", PasswordHash: "x"}); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	_, err = s.Users().GetUserByUsername(ctx, "ghost")
	require.ErrorIs(t, err, store.ErrNotFound)

	err = s.WithTx(ctx, func(tx store.Tx) error {
		return tx.Users().CreateUser(ctx, domain.User{ID: idx.New().String(), Username: "kept", PasswordHash: "x"})
	})
	require.NoError(t, err)

	_, err = s.Users().GetUserByUsername(ctx, "kept")
	require.NoError(t, err)
}
