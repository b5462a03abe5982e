package service

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/aussiebroadwan/tracker/internal/tracker/domain"
	"github.com/aussiebroadwan/tracker/internal/tracker/metrics"
	"github.com/aussiebroadwan/tracker/internal/tracker/store"
	"github.com/aussiebroadwan/tracker/pkg/idx"
	"github.com/aussiebroadwan/tracker/pkg/slogx"
)

// EntryInput is one line of an add-entries submission. Hours arrives as
// text and is parsed by AddEntries.
type EntryInput struct {
	ProjectID string
	Hours     string
}

// BulkRequest spreads TotalHours across the days from Start up to End.
// UserID defaults to the caller; only admins may book for someone else.
type BulkRequest struct {
	UserID     string
	ProjectID  string
	Start      time.Time
	End        time.Time
	TotalHours float64
}

// EntryUpdate changes the project and/or hours of an entry. Nil fields are
// left untouched.
type EntryUpdate struct {
	ProjectID *string
	Hours     *string
}

type EntryService struct {
	Store store.Store
}

// ParseHours parses a textual hour count. The result must be a finite
// number greater than zero.
func ParseHours(s string) (float64, error) {
	h, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(h) || math.IsInf(h, 0) {
		return 0, validationf("hours %q is not a number", s)
	}
	if h <= 0 {
		return 0, validationf("hours must be greater than zero, got %s", s)
	}
	return h, nil
}

// AddEntries books every input against date for the caller in a single
// transaction. Either all entries are stored or none.
func (s *EntryService) AddEntries(
	ctx context.Context,
	p Principal,
	date time.Time,
	inputs []EntryInput,
) ([]domain.TimeEntry, error) {
	log := slogx.FromContext(ctx)

	if len(inputs) == 0 {
		return nil, validationf("at least one entry is required")
	}

	day := domain.Day(date)
	entries := make([]domain.TimeEntry, 0, len(inputs))
	for i, in := range inputs {
		if strings.TrimSpace(in.ProjectID) == "" {
			return nil, validationf("entry %d: project is required", i)
		}
		hours, err := ParseHours(in.Hours)
		if err != nil {
			return nil, err
		}
		entries = append(entries, domain.TimeEntry{
			ID:        idx.New().String(),
			Date:      day,
			Hours:     hours,
			ProjectID: in.ProjectID,
			UserID:    p.UserID,
		})
	}

	if err := s.insert(ctx, p.UserID, entries); err != nil {
		return nil, err
	}

	log.Info("entries added",
		slog.String("date", domain.FormatDay(day)),
		slog.Int("count", len(entries)),
	)
	observeEntries("manual", entries)
	return entries, nil
}

// BulkDistribute splits the total evenly over the range (see Distribute)
// and stores one entry per day atomically.
func (s *EntryService) BulkDistribute(ctx context.Context, p Principal, req BulkRequest) ([]domain.TimeEntry, error) {
	log := slogx.FromContext(ctx)

	userID := req.UserID
	if userID == "" {
		userID = p.UserID
	}
	if userID != p.UserID && !p.IsAdmin {
		log.Warn("non-admin attempted bulk entry for another user", slog.String("target_user_id", userID))
		return nil, ErrForbidden
	}
	if strings.TrimSpace(req.ProjectID) == "" {
		return nil, validationf("project is required")
	}

	days, err := Distribute(req.Start, req.End, req.TotalHours)
	if err != nil {
		return nil, err
	}

	entries := make([]domain.TimeEntry, len(days))
	for i, d := range days {
		entries[i] = domain.TimeEntry{
			ID:        idx.New().String(),
			Date:      d.Date,
			Hours:     d.Hours,
			ProjectID: req.ProjectID,
			UserID:    userID,
		}
	}

	if err := s.insert(ctx, userID, entries); err != nil {
		return nil, err
	}

	log.Info("bulk entries distributed",
		slog.String("user_id", userID),
		slog.String("project_id", req.ProjectID),
		slog.Int("days", len(entries)),
		slog.Float64("total_hours", req.TotalHours),
	)
	observeEntries("bulk", entries)
	return entries, nil
}

func (s *EntryService) insert(ctx context.Context, userID string, entries []domain.TimeEntry) error {
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if _, err := tx.Users().GetUserByID(ctx, userID); err != nil {
			return storeErr(err, "user "+userID)
		}

		checked := make(map[string]struct{})
		for _, e := range entries {
			if _, ok := checked[e.ProjectID]; !ok {
				if _, err := tx.Projects().GetProjectByID(ctx, e.ProjectID); err != nil {
					return storeErr(err, "project "+e.ProjectID)
				}
				checked[e.ProjectID] = struct{}{}
			}
			if err := tx.Entries().CreateEntry(ctx, e); err != nil {
				return storeErr(err, "entry "+e.ID)
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrStorage) {
			slogx.FromContext(ctx).Error("failed to store entries", slog.Any("error", err))
		}
		return storeErr(err, "entries")
	}
	return nil
}

// ListOwn returns the caller's entries between from and to inclusive.
func (s *EntryService) ListOwn(ctx context.Context, p Principal, from, to time.Time) ([]domain.EntryDetail, error) {
	from, to = domain.Day(from), domain.Day(to)
	if from.After(to) {
		return nil, validationf("start date %s is after end date %s", domain.FormatDay(from), domain.FormatDay(to))
	}

	entries, err := s.Store.Entries().ListEntryDetails(ctx, domain.EntryFilter{
		From:    from,
		To:      to,
		UserIDs: []string{p.UserID},
	})
	if err != nil {
		return nil, storeErr(err, "entries")
	}
	return entries, nil
}

// Update reassigns the project and/or corrects the hours of an entry owned
// by the caller.
func (s *EntryService) Update(ctx context.Context, p Principal, entryID string, upd EntryUpdate) (domain.TimeEntry, error) {
	log := slogx.FromContext(ctx)

	if upd.ProjectID == nil && upd.Hours == nil {
		return domain.TimeEntry{}, validationf("nothing to update")
	}

	var hours float64
	if upd.Hours != nil {
		h, err := ParseHours(*upd.Hours)
		if err != nil {
			return domain.TimeEntry{}, err
		}
		hours = h
	}

	var updated domain.TimeEntry
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		e, err := ownedEntry(ctx, tx, p, entryID)
		if err != nil {
			return err
		}

		if upd.ProjectID != nil && *upd.ProjectID != e.ProjectID {
			if _, err := tx.Projects().GetProjectByID(ctx, *upd.ProjectID); err != nil {
				return storeErr(err, "project "+*upd.ProjectID)
			}
			e.ProjectID = *upd.ProjectID
		}
		if upd.Hours != nil {
			e.Hours = hours
		}

		if err := tx.Entries().UpdateEntry(ctx, e); err != nil {
			return storeErr(err, "entry "+entryID)
		}
		updated = e
		return nil
	})
	if err != nil {
		return domain.TimeEntry{}, storeErr(err, "entry "+entryID)
	}

	log.Info("entry updated", slog.String("entry_id", entryID))
	return updated, nil
}

// Delete removes an entry owned by the caller.
func (s *EntryService) Delete(ctx context.Context, p Principal, entryID string) error {
	log := slogx.FromContext(ctx)

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if _, err := ownedEntry(ctx, tx, p, entryID); err != nil {
			return err
		}
		return storeErr(tx.Entries().DeleteEntry(ctx, entryID), "entry "+entryID)
	})
	if err != nil {
		return storeErr(err, "entry "+entryID)
	}

	log.Info("entry deleted", slog.String("entry_id", entryID))
	return nil
}

// ownedEntry loads an entry and enforces that the caller owns it. Admins
// get no exemption: entries are only ever changed by their owner.
func ownedEntry(ctx context.Context, tx store.Tx, p Principal, entryID string) (domain.TimeEntry, error) {
	e, err := tx.Entries().GetEntryByID(ctx, entryID)
	if err != nil {
		return domain.TimeEntry{}, storeErr(err, "entry "+entryID)
	}
	if e.UserID != p.UserID {
		slogx.FromContext(ctx).Warn("entry mutation by non-owner",
			slog.String("entry_id", entryID),
			slog.String("owner_id", e.UserID),
		)
		return domain.TimeEntry{}, ErrForbidden
	}
	return e, nil
}

func observeEntries(source string, entries []domain.TimeEntry) {
	metrics.EntriesCreatedTotal.WithLabelValues(source).Add(float64(len(entries)))
	for _, e := range entries {
		metrics.HoursLoggedTotal.Add(e.Hours)
	}
}
