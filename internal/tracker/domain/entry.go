package domain

import "time"

// TimeEntry is a number of hours a user booked against a project on a day.
type TimeEntry struct {
	ID        string
	Date      time.Time
	Hours     float64
	ProjectID string
	UserID    string
	CreatedAt time.Time
}

// EntryDetail is a TimeEntry joined with the display names used by reports.
type EntryDetail struct {
	TimeEntry

	ProjectName string
	Username    string
}

// EntryFilter narrows an entry listing. Empty slices mean "no filter".
type EntryFilter struct {
	From       time.Time
	To         time.Time
	UserIDs    []string
	ProjectIDs []string
}
