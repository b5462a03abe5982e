package service

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/aussiebroadwan/tracker/internal/tracker/domain"
	"github.com/aussiebroadwan/tracker/internal/tracker/metrics"
	"github.com/aussiebroadwan/tracker/internal/tracker/store"
	"github.com/aussiebroadwan/tracker/pkg/slogx"
)

const (
	TotalHoursLabel = "Total Hours"

	exportRangeFormat   = "Export Range: %s to %s"
	dateGeneratedFormat = "Date Generated: %s"
)

// ReportRequest selects the entries of a report. Empty id slices mean no
// filter. UserIDs is only honoured for admins.
type ReportRequest struct {
	Start       time.Time
	End         time.Time
	ProjectIDs  []string
	UserIDs     []string
	AggregateBy AggregateBy
}

type ReportService struct {
	Store store.Store

	// Now stamps the "Date Generated" row. Defaults to time.Now.
	Now func() time.Time
}

// Build selects, aggregates and lays out the report table. The table ends
// with a blank row, the total, the export range and the generation date,
// even when no entries match.
func (s *ReportService) Build(ctx context.Context, p Principal, req ReportRequest) (domain.Table, error) {
	log := slogx.FromContext(ctx)
	began := time.Now()

	start, end := domain.Day(req.Start), domain.Day(req.End)
	if start.After(end) {
		return domain.Table{}, validationf("start date %s is after end date %s", domain.FormatDay(start), domain.FormatDay(end))
	}

	mode := req.AggregateBy
	if mode == "" {
		mode = AggregateNone
	}
	if _, err := ParseAggregateBy(string(mode)); err != nil {
		return domain.Table{}, err
	}

	filter := domain.EntryFilter{
		From:       start,
		To:         end,
		ProjectIDs: req.ProjectIDs,
		UserIDs:    req.UserIDs,
	}
	if !p.IsAdmin {
		filter.UserIDs = []string{p.UserID}
	}

	var entries []domain.EntryDetail
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		var err error
		entries, err = tx.Entries().ListEntryDetails(ctx, filter)
		return err
	})
	if err != nil {
		log.Error("failed to select report entries", slog.Any("error", err))
		return domain.Table{}, storeErr(err, "entries")
	}

	if mode == AggregateNone {
		slices.SortStableFunc(entries, func(a, b domain.EntryDetail) int {
			return a.Date.Compare(b.Date)
		})
	}

	groups, total, err := Aggregate(entries, mode)
	if err != nil {
		return domain.Table{}, err
	}

	table := layoutReport(mode, entries, groups, total)
	table.Rows = append(table.Rows, trailingRows(table.Columns, total, start, end, s.now())...)

	log.Info("report built",
		slog.String("aggregate_by", string(mode)),
		slog.String("start_date", domain.FormatDay(start)),
		slog.String("end_date", domain.FormatDay(end)),
		slog.Int("rows", len(groups)),
		slog.Bool("admin", p.IsAdmin),
	)
	metrics.ReportsBuiltTotal.WithLabelValues(string(mode)).Inc()
	metrics.ReportBuildDuration.Observe(time.Since(began).Seconds())

	return table, nil
}

func (s *ReportService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func layoutReport(mode AggregateBy, entries []domain.EntryDetail, groups []Group, total float64) domain.Table {
	table := domain.Table{Columns: mode.Columns()}
	table.Rows = make([][]any, 0, len(groups)+4)

	for i, g := range groups {
		var row []any
		switch mode {
		case AggregateProject:
			row = []any{g.Project, g.Hours}
		case AggregateUser:
			row = []any{g.User, g.Hours}
		case AggregateProjectAndUser:
			row = []any{g.Project, g.User, g.Hours}
		default:
			row = []any{domain.FormatDay(entries[i].Date), g.Project, g.User, g.Hours}
		}
		table.Rows = append(table.Rows, row)
	}
	return table
}

// trailingRows builds the blank, total, range and generated rows. The total
// label sits in the column before Hours, or the first column when Hours is
// first.
func trailingRows(columns []string, total float64, start, end, now time.Time) [][]any {
	width := len(columns)
	blank := func() []any { return make([]any, width) }

	hoursAt := max(slices.Index(columns, domain.ColumnHours), 0)
	labelAt := max(hoursAt-1, 0)

	totalRow := blank()
	totalRow[labelAt] = TotalHoursLabel
	totalRow[hoursAt] = total

	rangeRow := blank()
	rangeRow[0] = fmt.Sprintf(exportRangeFormat, domain.FormatDay(start), domain.FormatDay(end))

	generatedRow := blank()
	generatedRow[0] = fmt.Sprintf(dateGeneratedFormat, domain.FormatDay(domain.Day(now)))

	return [][]any{blank(), totalRow, rangeRow, generatedRow}
}
