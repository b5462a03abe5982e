package domain

// ProjectHours is an hours total for one project.
type ProjectHours struct {
	ProjectName string
	Hours       float64
}

// PeriodSummary is a per-project breakdown over a date window.
type PeriodSummary struct {
	From      string
	To        string
	ByProject []ProjectHours
	Total     float64
}

// Summary is the dashboard view for a single user.
type Summary struct {
	Weekly            PeriodSummary
	Monthly           PeriodSummary
	CurrentMonthHours float64
}
