package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/tracker/internal/tracker/service"
	"github.com/aussiebroadwan/tracker/pkg/httpx"
	"github.com/aussiebroadwan/tracker/pkg/jwtx"
	"github.com/aussiebroadwan/tracker/pkg/slogx"
	"github.com/aussiebroadwan/tracker/pkg/trackersdk"
)

type LoginHandler struct {
	UserService *service.UserService
	Signer      jwtx.Signer
	Issuer      string
	TTL         time.Duration
	Now         func() time.Time
}

// ServeHTTP exchanges credentials for an access token.
//
//	@Summary		Log in
//	@Description	Verifies username and password and issues an HS256 access token. Deactivated users are refused.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		trackersdk.LoginRequest		true	"Credentials"
//	@Success		200		{object}	trackersdk.TokenResponse	"Access token"
//	@Failure		400		{object}	trackersdk.ErrorResponse	"Malformed request"
//	@Failure		401		{object}	trackersdk.ErrorResponse	"Invalid credentials"
//	@Failure		429		{object}	trackersdk.ErrorResponse	"Too many attempts"
//	@Router			/v1/auth/login [post].
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req trackersdk.LoginRequest
	if !decodeBody(w, r, &req) {
		return
	}

	u, err := h.UserService.Authenticate(ctx, req.Username, req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	claims := jwtx.NewAccessClaims(u.ID, u.Username, u.IsAdmin, h.Issuer, h.TTL, h.Now())
	token, err := h.Signer.Sign(claims)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	log.Info("user logged in", slog.String("user_id", u.ID))
	httpx.WriteJSON(w, http.StatusOK, trackersdk.TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int(h.TTL.Seconds()),
		UserID:      u.ID,
		Admin:       u.IsAdmin,
	})
}
