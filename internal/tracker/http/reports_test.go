package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/aussiebroadwan/tracker/internal/tracker/domain"
	"github.com/aussiebroadwan/tracker/pkg/trackersdk"
)

func seedReportEntries(t *testing.T, ts *testServer) (web, ops *trackersdk.Project) {
	t.Helper()
	web = ts.project(t, "Website")
	ops = ts.project(t, "Ops")

	_, err := ts.aliceSess.AddEntries(ts.ctx, trackersdk.AddEntriesRequest{
		Date: "2024-03-02",
		Entries: []trackersdk.EntryLine{
			{ProjectID: web.ID, Hours: json.Number("3")},
			{ProjectID: ops.ID, Hours: json.Number("2")},
		},
	})
	require.NoError(t, err)
	_, err = ts.adminSess.AddEntries(ts.ctx, trackersdk.AddEntriesRequest{
		Date:    "2024-03-01",
		Entries: []trackersdk.EntryLine{{ProjectID: web.ID, Hours: json.Number("4")}},
	})
	require.NoError(t, err)
	return web, ops
}

func TestExportPreview(t *testing.T) {
	ts := newTestServer(t)
	seedReportEntries(t, ts)

	t.Run("admin sees everyone, sorted by date", func(t *testing.T) {
		preview, err := ts.adminSess.PreviewReport(ts.ctx, trackersdk.ReportRequest{
			Start: "2024-03-01",
			End:   "2024-03-31",
		})
		require.NoError(t, err)
		require.Equal(t, []string{"Date", "Project", "User", "Hours"}, preview.Columns)
		require.Len(t, preview.Rows, 3+4)
		require.Equal(t, "2024-03-01", preview.Rows[0][0])
		require.Equal(t, "admin", preview.Rows[0][2])

		total := preview.Rows[4]
		require.Equal(t, "Total Hours", total[2])
		require.InDelta(t, 9.0, total[3], 1e-9)
		require.Equal(t, "Export Range: 2024-03-01 to 2024-03-31", preview.Rows[5][0])
		require.Equal(t, "Date Generated: 2024-04-02", preview.Rows[6][0])
	})

	t.Run("user filter is ignored for non-admins", func(t *testing.T) {
		preview, err := ts.aliceSess.PreviewReport(ts.ctx, trackersdk.ReportRequest{
			Start:       "2024-03-01",
			End:         "2024-03-31",
			UserIDs:     []string{ts.admin.ID},
			AggregateBy: "user",
		})
		require.NoError(t, err)
		require.Equal(t, []string{"User", "Hours"}, preview.Columns)
		require.Equal(t, "alice", preview.Rows[0][0])
		require.InDelta(t, 5.0, preview.Rows[0][1], 1e-9)
		require.Equal(t, "Total Hours", preview.Rows[2][0])
	})

	t.Run("empty range still has trailing rows", func(t *testing.T) {
		preview, err := ts.adminSess.PreviewReport(ts.ctx, trackersdk.ReportRequest{
			Start:       "2023-01-01",
			End:         "2023-01-31",
			AggregateBy: "project",
		})
		require.NoError(t, err)
		require.Len(t, preview.Rows, 4)
		require.InDelta(t, 0.0, preview.Rows[1][1], 1e-9)
	})

	t.Run("inverted range", func(t *testing.T) {
		_, err := ts.adminSess.PreviewReport(ts.ctx, trackersdk.ReportRequest{
			Start: "2024-03-31",
			End:   "2024-03-01",
		})
		requireStatus(t, err, http.StatusBadRequest)
	})

	t.Run("unknown mode", func(t *testing.T) {
		_, err := ts.adminSess.PreviewReport(ts.ctx, trackersdk.ReportRequest{
			Start:       "2024-03-01",
			End:         "2024-03-31",
			AggregateBy: "team",
		})
		requireStatus(t, err, http.StatusBadRequest)
	})
}

func TestExportXLSX(t *testing.T) {
	ts := newTestServer(t)
	_, ops := seedReportEntries(t, ts)

	export, err := ts.adminSess.ExportReport(ts.ctx, trackersdk.ReportRequest{
		Start:       "2024-03-01",
		End:         "2024-03-31",
		ProjectIDs:  []string{ops.ID},
		AggregateBy: "project_and_user",
	})
	require.NoError(t, err)
	require.Equal(t, "time_report_20240402.xlsx", export.Filename)

	f, err := excelize.OpenReader(bytes.NewReader(export.Data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(reportSheet)
	require.NoError(t, err)
	require.Equal(t, []string{"Project", "User", "Hours"}, rows[0])
	require.Equal(t, []string{"Ops", "alice", "2"}, rows[1])
	require.Equal(t, []string{"", "Total Hours", "2"}, rows[3])
	require.Equal(t, "Export Range: 2024-03-01 to 2024-03-31", rows[4][0])
	require.Equal(t, "Date Generated: 2024-04-02", rows[5][0])

	for _, cell := range []string{"A1", "C1"} {
		styleID, err := f.GetCellStyle(reportSheet, cell)
		require.NoError(t, err)
		style, err := f.GetStyle(styleID)
		require.NoError(t, err)
		require.NotNil(t, style.Font, cell)
		require.True(t, style.Font.Bold, cell)
	}
}

func TestRenderXLSXHeaderIsPlainText(t *testing.T) {
	data, err := renderXLSX(domain.Table{
		Columns: []string{domain.ColumnDate, domain.ColumnProject, domain.ColumnUser, domain.ColumnHours},
		Rows:    [][]any{{"2024-03-04", "Ops", "alice", 1.5}},
	})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(reportSheet)
	require.NoError(t, err)
	require.Equal(t, []string{"Date", "Project", "User", "Hours"}, rows[0])
	require.Equal(t, []string{"2024-03-04", "Ops", "alice", "1.5"}, rows[1])
}

func TestReportFilename(t *testing.T) {
	require.Equal(t, "time_report_20240402.xlsx", ReportFilename(fixedNow))
}
