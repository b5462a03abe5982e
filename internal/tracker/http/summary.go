package http

import (
	"net/http"
	"time"

	"github.com/aussiebroadwan/tracker/internal/tracker/service"
	"github.com/aussiebroadwan/tracker/pkg/httpx"
)

type SummaryHandler struct {
	SummaryService *service.SummaryService
	Now            func() time.Time
}

// ServeHTTP returns the caller's dashboard totals.
//
//	@Summary		Dashboard summary
//	@Description	Hours by project over the last 7 and 30 days plus the current calendar month total.
//	@Tags			Summary
//	@Produce		json
//	@Success		200	{object}	trackersdk.SummaryResponse	"Summary"
//	@Security		BearerAuth
//	@Router			/v1/summary [get].
func (h *SummaryHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s, err := h.SummaryService.WeeklyMonthly(r.Context(), principal(r).UserID, h.Now())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toSummary(s))
}
