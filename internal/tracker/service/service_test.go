package service

import (
	"context"
	"testing"
	"time"

	"github.com/aussiebroadwan/tracker/internal/tracker/domain"
	"github.com/aussiebroadwan/tracker/internal/tracker/store/drivers/sqlite"
	"github.com/aussiebroadwan/tracker/pkg/idx"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	ctx   context.Context
	store *sqlite.Store
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	s, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.ApplyMigrations())

	return &fixture{ctx: context.Background(), store: s}
}

func (f *fixture) user(t *testing.T, name string, admin bool) domain.User {
	t.Helper()
	u := domain.User{ID: idx.New().String(), Username: name, PasswordHash: "x", IsAdmin: admin, IsActive: true}
	require.NoError(t, f.store.Users().CreateUser(f.ctx, u))
	return u
}

func (f *fixture) project(t *testing.T, name string) domain.Project {
	t.Helper()
	p := domain.Project{ID: idx.New().String(), Name: name, IsActive: true}
	require.NoError(t, f.store.Projects().CreateProject(f.ctx, p))
	return p
}

func (f *fixture) entry(t *testing.T, date string, hours float64, p domain.Project, u domain.User) {
	t.Helper()
	require.NoError(t, f.store.Entries().CreateEntry(f.ctx, domain.TimeEntry{
		ID:        idx.New().String(),
		Date:      mustDay(t, date),
		Hours:     hours,
		ProjectID: p.ID,
		UserID:    u.ID,
	}))
}

func (f *fixture) countEntries(t *testing.T) int {
	t.Helper()
	all, err := f.store.Entries().ListEntryDetails(f.ctx, domain.EntryFilter{
		From: mustDay(t, "1970-01-01"),
		To:   mustDay(t, "2999-12-31"),
	})
	require.NoError(t, err)
	return len(all)
}

func mustDay(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := domain.ParseDay(s)
	require.NoError(t, err)
	return d
}

func as(u domain.User) Principal {
	return Principal{UserID: u.ID, IsAdmin: u.IsAdmin}
}
