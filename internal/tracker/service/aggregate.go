package service

import (
	"fmt"
	"strings"

	"github.com/aussiebroadwan/tracker/internal/tracker/domain"
)

// AggregateBy selects how report rows are grouped.
type AggregateBy string

const (
	AggregateNone           AggregateBy = "none"
	AggregateProject        AggregateBy = "project"
	AggregateUser           AggregateBy = "user"
	AggregateProjectAndUser AggregateBy = "project_and_user"
)

// ParseAggregateBy maps the wire value to a mode. Empty means none.
func ParseAggregateBy(s string) (AggregateBy, error) {
	switch mode := AggregateBy(strings.ToLower(strings.TrimSpace(s))); mode {
	case "":
		return AggregateNone, nil
	case AggregateNone, AggregateProject, AggregateUser, AggregateProjectAndUser:
		return mode, nil
	default:
		return "", validationf("unknown aggregation mode %q", s)
	}
}

// Columns returns the header row for the mode. Hours is always last.
func (m AggregateBy) Columns() []string {
	switch m {
	case AggregateProject:
		return []string{domain.ColumnProject, domain.ColumnHours}
	case AggregateUser:
		return []string{domain.ColumnUser, domain.ColumnHours}
	case AggregateProjectAndUser:
		return []string{domain.ColumnProject, domain.ColumnUser, domain.ColumnHours}
	default:
		return []string{domain.ColumnDate, domain.ColumnProject, domain.ColumnUser, domain.ColumnHours}
	}
}

// Group is one aggregated output row. Project and User are empty when the
// mode does not group by them.
type Group struct {
	Project string
	User    string
	Hours   float64
}

type groupKey struct {
	project string
	user    string
}

// Aggregate sums entry hours per group. Groups are keyed on display names,
// not ids, and come out in order of first appearance in entries. In
// AggregateNone mode every entry is its own group. The second return value
// is the sum over all groups.
func Aggregate(entries []domain.EntryDetail, mode AggregateBy) ([]Group, float64, error) {
	groups := make([]Group, 0)
	var total float64

	if mode == AggregateNone {
		for _, e := range entries {
			groups = append(groups, Group{Project: e.ProjectName, User: e.Username, Hours: e.Hours})
			total += e.Hours
		}
		return groups, total, nil
	}

	keyOf, err := groupKeyFunc(mode)
	if err != nil {
		return nil, 0, err
	}

	pos := make(map[groupKey]int)
	for _, e := range entries {
		k := keyOf(e)
		i, ok := pos[k]
		if !ok {
			i = len(groups)
			pos[k] = i
			groups = append(groups, Group{Project: k.project, User: k.user})
		}
		groups[i].Hours += e.Hours
		total += e.Hours
	}
	return groups, total, nil
}

func groupKeyFunc(mode AggregateBy) (func(domain.EntryDetail) groupKey, error) {
	switch mode {
	case AggregateProject:
		return func(e domain.EntryDetail) groupKey { return groupKey{project: e.ProjectName} }, nil
	case AggregateUser:
		return func(e domain.EntryDetail) groupKey { return groupKey{user: e.Username} }, nil
	case AggregateProjectAndUser:
		return func(e domain.EntryDetail) groupKey { return groupKey{project: e.ProjectName, user: e.Username} }, nil
	default:
		return nil, fmt.Errorf("%w: unknown aggregation mode %q", ErrValidation, mode)
	}
}

// SumByProject is the dashboard variant of Aggregate.
func SumByProject(entries []domain.EntryDetail) ([]domain.ProjectHours, float64) {
	groups, total, _ := Aggregate(entries, AggregateProject)

	out := make([]domain.ProjectHours, len(groups))
	for i, g := range groups {
		out[i] = domain.ProjectHours{ProjectName: g.Project, Hours: g.Hours}
	}
	return out, total
}
