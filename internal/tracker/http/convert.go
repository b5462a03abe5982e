package http

import (
	"github.com/aussiebroadwan/tracker/internal/tracker/domain"
	"github.com/aussiebroadwan/tracker/pkg/trackersdk"
)

func toEntry(e domain.TimeEntry) trackersdk.Entry {
	return trackersdk.Entry{
		ID:        e.ID,
		Date:      domain.FormatDay(e.Date),
		Hours:     e.Hours,
		ProjectID: e.ProjectID,
		UserID:    e.UserID,
	}
}

func toEntries(entries []domain.TimeEntry) trackersdk.ListEntriesResponse {
	out := trackersdk.ListEntriesResponse{Entries: make([]trackersdk.Entry, len(entries))}
	for i, e := range entries {
		out.Entries[i] = toEntry(e)
		out.Total += e.Hours
	}
	return out
}

func toEntryDetails(details []domain.EntryDetail) trackersdk.ListEntriesResponse {
	out := trackersdk.ListEntriesResponse{Entries: make([]trackersdk.Entry, len(details))}
	for i, d := range details {
		e := toEntry(d.TimeEntry)
		e.ProjectName = d.ProjectName
		e.Username = d.Username
		out.Entries[i] = e
		out.Total += d.Hours
	}
	return out
}

func toAssignment(a domain.Assignment) trackersdk.Assignment {
	return trackersdk.Assignment{
		ID:        a.ID,
		UserID:    a.UserID,
		ProjectID: a.ProjectID,
		Start:     domain.FormatDay(a.StartDate),
		End:       domain.FormatDay(a.EndDate),
	}
}

func toAssignments(as []domain.Assignment) []trackersdk.Assignment {
	out := make([]trackersdk.Assignment, len(as))
	for i, a := range as {
		out[i] = toAssignment(a)
	}
	return out
}

func toUser(u domain.User) trackersdk.User {
	return trackersdk.User{
		ID:       u.ID,
		Username: u.Username,
		Admin:    u.IsAdmin,
		Active:   u.IsActive,
	}
}

func toUsers(users []domain.User) []trackersdk.User {
	out := make([]trackersdk.User, len(users))
	for i, u := range users {
		out[i] = toUser(u)
	}
	return out
}

func toProject(p domain.Project) trackersdk.Project {
	out := trackersdk.Project{
		ID:     p.ID,
		Name:   p.Name,
		Active: p.IsActive,
	}
	if p.Deadline != nil {
		d := domain.FormatDay(*p.Deadline)
		out.Deadline = &d
	}
	return out
}

func toProjects(projects []domain.Project) []trackersdk.Project {
	out := make([]trackersdk.Project, len(projects))
	for i, p := range projects {
		out[i] = toProject(p)
	}
	return out
}

func toPeriod(p domain.PeriodSummary) trackersdk.PeriodSummary {
	out := trackersdk.PeriodSummary{
		From:      p.From,
		To:        p.To,
		ByProject: make([]trackersdk.ProjectHours, len(p.ByProject)),
		Total:     p.Total,
	}
	for i, ph := range p.ByProject {
		out.ByProject[i] = trackersdk.ProjectHours{Project: ph.ProjectName, Hours: ph.Hours}
	}
	return out
}

func toSummary(s domain.Summary) trackersdk.SummaryResponse {
	return trackersdk.SummaryResponse{
		Weekly:            toPeriod(s.Weekly),
		Monthly:           toPeriod(s.Monthly),
		CurrentMonthHours: s.CurrentMonthHours,
	}
}
