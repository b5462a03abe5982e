package http

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/aussiebroadwan/tracker/internal/tracker/domain"
	"github.com/aussiebroadwan/tracker/internal/tracker/service"
	"github.com/aussiebroadwan/tracker/pkg/httpx"
	"github.com/aussiebroadwan/tracker/pkg/trackersdk"
)

const reportSheet = "Sheet1"

type ExportHandler struct {
	ReportService *service.ReportService
	Now           func() time.Time
}

// ServeHTTP builds a report and returns it as an xlsx download, or as JSON
// when the client asks for application/json.
//
//	@Summary		Export report
//	@Description	Selects entries in [start, end], optionally filtered by project and (admins only) user, groups them and appends the total, range and generation rows. Non-admins only ever see their own entries.
//	@Tags			Reports
//	@Accept			json
//	@Produce		application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
//	@Produce		json
//	@Param			request	body		trackersdk.ReportRequest	true	"Report selection"
//	@Success		200		{file}		file						"time_report_YYYYMMDD.xlsx"
//	@Success		200		{object}	trackersdk.ReportPreview	"JSON preview"
//	@Failure		400		{object}	trackersdk.ErrorResponse	"Start after end or unknown mode"
//	@Security		BearerAuth
//	@Router			/v1/reports/export [post].
func (h *ExportHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req trackersdk.ReportRequest
	if !decodeBody(w, r, &req) {
		return
	}
	start, ok := parseDayParam(w, "start", req.Start)
	if !ok {
		return
	}
	end, ok := parseDayParam(w, "end", req.End)
	if !ok {
		return
	}
	mode, err := service.ParseAggregateBy(req.AggregateBy)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	table, err := h.ReportService.Build(r.Context(), principal(r), service.ReportRequest{
		Start:       start,
		End:         end,
		ProjectIDs:  req.ProjectIDs,
		UserIDs:     req.UserIDs,
		AggregateBy: mode,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	if wantsJSON(r) {
		httpx.WriteJSON(w, http.StatusOK, trackersdk.ReportPreview{Columns: table.Columns, Rows: table.Rows})
		return
	}

	data, err := renderXLSX(table)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	filename := ReportFilename(h.Now())
	httpx.NoCache(w)
	w.Header().Set("Content-Type", trackersdk.XLSXContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// ReportFilename is the download name of an export generated at now.
func ReportFilename(now time.Time) string {
	return "time_report_" + now.Format("20060102") + ".xlsx"
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

// renderXLSX writes the table to a single-sheet workbook with a bold
// header row.
func renderXLSX(t domain.Table) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("xlsx style: %w", err)
	}

	if len(t.Columns) > 0 {
		header := make([]any, len(t.Columns))
		for i, c := range t.Columns {
			header[i] = c
		}
		if err := f.SetSheetRow(reportSheet, "A1", &header); err != nil {
			return nil, fmt.Errorf("xlsx header: %w", err)
		}
		last, err := excelize.CoordinatesToCellName(len(t.Columns), 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellStyle(reportSheet, "A1", last, bold); err != nil {
			return nil, fmt.Errorf("xlsx header style: %w", err)
		}
	}

	for i, row := range t.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(reportSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("xlsx row %d: %w", i+2, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}
	return buf.Bytes(), nil
}
