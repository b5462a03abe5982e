package service

import (
	"context"
	"time"

	"github.com/aussiebroadwan/tracker/internal/tracker/domain"
	"github.com/aussiebroadwan/tracker/internal/tracker/store"
)

const (
	weeklyWindowDays  = 7
	monthlyWindowDays = 30
)

type SummaryService struct {
	Store store.Store
}

// WeeklyMonthly summarises a user's hours by project over
// [today-7, today] and [today-30, today], plus the total for the calendar
// month containing today.
func (s *SummaryService) WeeklyMonthly(ctx context.Context, userID string, today time.Time) (domain.Summary, error) {
	today = domain.Day(today)
	monthStart := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, -1)

	var (
		summary domain.Summary
		err     error
	)
	txErr := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if _, err := tx.Users().GetUserByID(ctx, userID); err != nil {
			return storeErr(err, "user "+userID)
		}

		if summary.Weekly, err = periodSummary(ctx, tx, userID, domain.AddDays(today, -weeklyWindowDays), today); err != nil {
			return err
		}
		if summary.Monthly, err = periodSummary(ctx, tx, userID, domain.AddDays(today, -monthlyWindowDays), today); err != nil {
			return err
		}

		month, err := tx.Entries().ListEntryDetails(ctx, domain.EntryFilter{
			From:    monthStart,
			To:      monthEnd,
			UserIDs: []string{userID},
		})
		if err != nil {
			return err
		}
		for _, e := range month {
			summary.CurrentMonthHours += e.Hours
		}
		return nil
	})
	if txErr != nil {
		return domain.Summary{}, storeErr(txErr, "summary")
	}
	return summary, nil
}

func periodSummary(ctx context.Context, tx store.Tx, userID string, from, to time.Time) (domain.PeriodSummary, error) {
	entries, err := tx.Entries().ListEntryDetails(ctx, domain.EntryFilter{
		From:    from,
		To:      to,
		UserIDs: []string{userID},
	})
	if err != nil {
		return domain.PeriodSummary{}, err
	}

	byProject, total := SumByProject(entries)
	return domain.PeriodSummary{
		From:      domain.FormatDay(from),
		To:        domain.FormatDay(to),
		ByProject: byProject,
		Total:     total,
	}, nil
}
