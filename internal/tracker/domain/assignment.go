package domain

import "time"

// Assignment schedules a user on a project for an inclusive date range.
// Overlapping assignments for the same user are allowed.
type Assignment struct {
	ID        string
	UserID    string
	ProjectID string
	StartDate time.Time
	EndDate   time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ActiveOn reports whether day falls inside the assignment range.
func (a Assignment) ActiveOn(day time.Time) bool {
	day = Day(day)
	return !day.Before(a.StartDate) && !day.After(a.EndDate)
}

// Timeline is the data set behind the calendar view.
type Timeline struct {
	Assignments []Assignment
	Projects    []Project
	Users       []User
}
