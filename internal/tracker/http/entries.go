package http

import (
	"net/http"

	"github.com/aussiebroadwan/tracker/internal/tracker/service"
	"github.com/aussiebroadwan/tracker/pkg/httpx"
	"github.com/aussiebroadwan/tracker/pkg/trackersdk"
)

type EntriesHandler struct {
	EntryService *service.EntryService
}

// HandleAdd books hours for the caller on one day.
//
//	@Summary		Add time entries
//	@Description	Books one or more project/hours lines against a date for the caller. Either every line is stored or none.
//	@Tags			Entries
//	@Accept			json
//	@Produce		json
//	@Param			request	body		trackersdk.AddEntriesRequest		true	"Entries"
//	@Success		201		{object}	trackersdk.ListEntriesResponse	"Created entries"
//	@Failure		400		{object}	trackersdk.ErrorResponse			"Invalid hours or date"
//	@Failure		404		{object}	trackersdk.ErrorResponse			"Unknown project"
//	@Security		BearerAuth
//	@Router			/v1/entries [post].
func (h *EntriesHandler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	var req trackersdk.AddEntriesRequest
	if !decodeBody(w, r, &req) {
		return
	}
	date, ok := parseDayParam(w, "date", req.Date)
	if !ok {
		return
	}

	inputs := make([]service.EntryInput, len(req.Entries))
	for i, line := range req.Entries {
		inputs[i] = service.EntryInput{ProjectID: line.ProjectID, Hours: line.Hours.String()}
	}

	entries, err := h.EntryService.AddEntries(r.Context(), principal(r), date, inputs)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toEntries(entries))
}

// HandleBulk spreads a total over a date range.
//
//	@Summary		Bulk distribute hours
//	@Description	Creates one entry per day from start up to (not including) end, each holding total_hours divided by the number of days. Admins may book for another user.
//	@Tags			Entries
//	@Accept			json
//	@Produce		json
//	@Param			request	body		trackersdk.BulkEntriesRequest	true	"Range and total"
//	@Success		201		{object}	trackersdk.ListEntriesResponse	"Created entries"
//	@Failure		400		{object}	trackersdk.ErrorResponse		"Empty or inverted range"
//	@Failure		403		{object}	trackersdk.ErrorResponse		"Booking for another user"
//	@Security		BearerAuth
//	@Router			/v1/entries/bulk [post].
func (h *EntriesHandler) HandleBulk(w http.ResponseWriter, r *http.Request) {
	var req trackersdk.BulkEntriesRequest
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

	entries, err := h.EntryService.BulkDistribute(r.Context(), principal(r), service.BulkRequest{
		UserID:     req.UserID,
		ProjectID:  req.ProjectID,
		Start:      start,
		End:        end,
		TotalHours: req.TotalHours,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toEntries(entries))
}

// HandleList returns the caller's entries.
//
//	@Summary		List own entries
//	@Tags			Entries
//	@Produce		json
//	@Param			from	query		string							true	"First day (YYYY-MM-DD)"
//	@Param			to		query		string							true	"Last day (YYYY-MM-DD)"
//	@Success		200		{object}	trackersdk.ListEntriesResponse	"Entries ordered by date"
//	@Failure		400		{object}	trackersdk.ErrorResponse		"Bad range"
//	@Security		BearerAuth
//	@Router			/v1/entries [get].
func (h *EntriesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	from, ok := parseDayParam(w, "from", q.Get("from"))
	if !ok {
		return
	}
	to, ok := parseDayParam(w, "to", q.Get("to"))
	if !ok {
		return
	}

	details, err := h.EntryService.ListOwn(r.Context(), principal(r), from, to)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toEntryDetails(details))
}

// HandleUpdate changes the project and/or hours of one of the caller's entries.
//
//	@Summary		Update an entry
//	@Tags			Entries
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string							true	"Entry ID"
//	@Param			request	body		trackersdk.UpdateEntryRequest	true	"Changes"
//	@Success		200		{object}	trackersdk.Entry				"Updated entry"
//	@Failure		403		{object}	trackersdk.ErrorResponse		"Not the owner"
//	@Failure		404		{object}	trackersdk.ErrorResponse		"Unknown entry or project"
//	@Security		BearerAuth
//	@Router			/v1/entries/{id} [patch].
func (h *EntriesHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req trackersdk.UpdateEntryRequest
	if !decodeBody(w, r, &req) {
		return
	}

	upd := service.EntryUpdate{ProjectID: req.ProjectID}
	if req.Hours != nil {
		hours := req.Hours.String()
		upd.Hours = &hours
	}

	e, err := h.EntryService.Update(r.Context(), principal(r), r.PathValue("id"), upd)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toEntry(e))
}

// HandleDelete removes one of the caller's entries.
//
//	@Summary		Delete an entry
//	@Tags			Entries
//	@Param			id	path	string	true	"Entry ID"
//	@Success		204
//	@Failure		403	{object}	trackersdk.ErrorResponse	"Not the owner"
//	@Failure		404	{object}	trackersdk.ErrorResponse	"Unknown entry"
//	@Security		BearerAuth
//	@Router			/v1/entries/{id} [delete].
func (h *EntriesHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.EntryService.Delete(r.Context(), principal(r), r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
