package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/aussiebroadwan/tracker/internal/tracker/domain"
	"github.com/aussiebroadwan/tracker/internal/tracker/service"
	"github.com/aussiebroadwan/tracker/pkg/httpx"
	"github.com/aussiebroadwan/tracker/pkg/slogx"
	"github.com/aussiebroadwan/tracker/pkg/trackersdk"
)

// writeServiceError maps a service error onto the JSON error envelope.
// Storage failures are logged and reported without detail.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		httpx.WriteError(w, http.StatusBadRequest, trackersdk.ErrorCodeValidation, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		httpx.WriteError(w, http.StatusUnauthorized, trackersdk.ErrorCodeInvalidCredentials, "invalid username or password")
	case errors.Is(err, service.ErrForbidden):
		httpx.WriteError(w, http.StatusForbidden, trackersdk.ErrorCodeForbidden, err.Error())
	case errors.Is(err, service.ErrNotFound):
		httpx.WriteError(w, http.StatusNotFound, trackersdk.ErrorCodeNotFound, err.Error())
	case errors.Is(err, service.ErrDuplicate):
		httpx.WriteError(w, http.StatusConflict, trackersdk.ErrorCodeConflict, err.Error())
	default:
		slogx.FromContext(r.Context()).Error("request failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, trackersdk.ErrorCodeServerError, "internal server error")
	}
}

// principal converts the authenticated caller for the service layer.
// Routes reaching this are always behind AuthnMiddleware.
func principal(r *http.Request) service.Principal {
	p, _ := httpx.PrincipalFromContext(r.Context())
	return service.Principal{UserID: p.UserID, IsAdmin: p.Admin}
}

// parseDayParam parses a YYYY-MM-DD value, writing a 400 on failure.
func parseDayParam(w http.ResponseWriter, name, value string) (time.Time, bool) {
	d, err := domain.ParseDay(value)
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, trackersdk.ErrorCodeValidation, name+": "+err.Error())
		return time.Time{}, false
	}
	return d, true
}
