package service

import (
	"time"

	"github.com/aussiebroadwan/tracker/internal/tracker/domain"
)

// MaxBulkDays caps the number of entries a single bulk distribution books.
const MaxBulkDays = 366

// DayHours is one day of a bulk distribution.
type DayHours struct {
	Date  time.Time
	Hours float64
}

// Distribute spreads total evenly over the (end - start) whole days
// starting at start. The day count is exclusive of end, so a range of
// 2024-01-01..2024-01-04 yields three days (01, 02, 03) of total/3 each.
// start must be strictly before end, the span at most MaxBulkDays and
// total positive.
func Distribute(start, end time.Time, total float64) ([]DayHours, error) {
	if total <= 0 {
		return nil, validationf("total hours must be greater than zero")
	}

	start, end = domain.Day(start), domain.Day(end)
	days := domain.DaysBetween(start, end)
	switch {
	case days < 0:
		return nil, validationf("start date %s is after end date %s", domain.FormatDay(start), domain.FormatDay(end))
	case days == 0:
		return nil, validationf("bulk range %s to %s spans zero days", domain.FormatDay(start), domain.FormatDay(end))
	case days > MaxBulkDays:
		return nil, validationf("bulk range spans %d days, at most %d allowed", days, MaxBulkDays)
	}

	per := total / float64(days)
	out := make([]DayHours, days)
	for i := range out {
		out[i] = DayHours{Date: domain.AddDays(start, i), Hours: per}
	}
	return out, nil
}
