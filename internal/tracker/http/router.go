package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aussiebroadwan/tracker/internal/tracker/service"
	"github.com/aussiebroadwan/tracker/internal/tracker/store"
	"github.com/aussiebroadwan/tracker/pkg/httpx"
	"github.com/aussiebroadwan/tracker/pkg/jwtx"
	"github.com/aussiebroadwan/tracker/pkg/slogx"
)

// DefaultDateShiftDays is the offset applied to timeline update dates when
// the router is not configured otherwise.
const DefaultDateShiftDays = 1

// RateLimits groups the three rate limit profiles: Strict for login,
// Moderate for writes and Lenient for reads.
type RateLimits struct {
	Strict   httpx.RateLimitConfig
	Moderate httpx.RateLimitConfig
	Lenient  httpx.RateLimitConfig
}

// DefaultRateLimits are the httpx profiles.
func DefaultRateLimits() RateLimits {
	return RateLimits{
		Strict:   httpx.StrictLimit,
		Moderate: httpx.ModerateLimit,
		Lenient:  httpx.LenientLimit,
	}
}

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	signer       jwtx.Signer
	verifier     jwtx.Verifier
	issuer       string
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	store        store.Store

	// TokenTTL is the lifetime of tokens issued at login.
	TokenTTL time.Duration

	// DateShiftDays is added to both dates of a timeline assignment update
	// before it reaches the service.
	DateShiftDays int

	// Now is the clock used for summaries and token issue. Defaults to time.Now.
	Now func() time.Time

	// Limits are the rate limit profiles applied per route.
	Limits RateLimits

	UserService       *service.UserService
	ProjectService    *service.ProjectService
	EntryService      *service.EntryService
	AssignmentService *service.AssignmentService
	ReportService     *service.ReportService
	SummaryService    *service.SummaryService
}

func NewRouter(
	signer jwtx.Signer,
	verifier jwtx.Verifier,
	issuer, buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:           http.NewServeMux(),
		signer:        signer,
		verifier:      verifier,
		issuer:        issuer,
		buildVersion:  buildVersion,
		startTime:     time.Now(),
		logger:        logger,
		store:         st,
		TokenTTL:      jwtx.DefaultAccessTokenTTL,
		DateShiftDays: DefaultDateShiftDays,
		Now:           time.Now,
		Limits:        DefaultRateLimits(),
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerEntries()
	r.registerReports()
	r.registerAssignments()
	r.registerUsers()
	r.registerProjects()
	r.registerSummary()
	r.registerSystem()
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Tracker API
//	@version		0.1.0
//	@description	Time tracking: entries, assignments, timeline and spreadsheet exports.
//
//	@contact.name	AussieBroadWAN Team
//	@contact.url	https://github.com/aussiebroadwan/tracker
//
//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT
//
//	@host			localhost:8080
//	@BasePath		/
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				HS256 access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// authed is the chain shared by every endpoint that needs a caller.
func (r *Router) authed(h http.Handler, limit httpx.RateLimitConfig, extra ...httpx.Middleware) http.Handler {
	mws := []httpx.Middleware{httpx.AuthnMiddleware(r.verifier)}
	mws = append(mws, extra...)
	mws = append(mws, httpx.RateLimitByUser(limit))
	return httpx.Chain(h, mws...)
}

func (r *Router) registerAuth() {
	h := &LoginHandler{
		UserService: r.UserService,
		Signer:      r.signer,
		Issuer:      r.issuer,
		TTL:         r.TokenTTL,
		Now:         r.Now,
	}

	// Credential checks are limited by IP.
	r.Mux.Handle("POST /v1/auth/login",
		httpx.Chain(h, httpx.RateLimitByIP(r.Limits.Strict)),
	)
}

func (r *Router) registerEntries() {
	h := &EntriesHandler{EntryService: r.EntryService}

	r.Mux.Handle("POST /v1/entries", r.authed(http.HandlerFunc(h.HandleAdd), r.Limits.Moderate))
	r.Mux.Handle("POST /v1/entries/bulk", r.authed(http.HandlerFunc(h.HandleBulk), r.Limits.Moderate))
	r.Mux.Handle("GET /v1/entries", r.authed(http.HandlerFunc(h.HandleList), r.Limits.Lenient))
	r.Mux.Handle("PATCH /v1/entries/{id}", r.authed(http.HandlerFunc(h.HandleUpdate), r.Limits.Moderate))
	r.Mux.Handle("DELETE /v1/entries/{id}", r.authed(http.HandlerFunc(h.HandleDelete), r.Limits.Moderate))
}

func (r *Router) registerReports() {
	h := &ExportHandler{ReportService: r.ReportService, Now: r.Now}

	r.Mux.Handle("POST /v1/reports/export", r.authed(h, r.Limits.Moderate))
}

func (r *Router) registerAssignments() {
	h := &AssignmentsHandler{
		AssignmentService: r.AssignmentService,
		DateShiftDays:     r.DateShiftDays,
	}
	admin := httpx.RequireAdmin()

	r.Mux.Handle("POST /v1/assignments", r.authed(http.HandlerFunc(h.HandleCreate), r.Limits.Moderate, admin))
	r.Mux.Handle("PUT /v1/assignments/{id}", r.authed(http.HandlerFunc(h.HandleUpdate), r.Limits.Moderate, admin))
	r.Mux.Handle("DELETE /v1/assignments/{id}", r.authed(http.HandlerFunc(h.HandleDelete), r.Limits.Moderate, admin))
	r.Mux.Handle("GET /v1/timeline", r.authed(http.HandlerFunc(h.HandleTimeline), r.Limits.Lenient, admin))

	// Anyone may look up their own active assignments; the handler checks
	// admin rights when another user is named.
	r.Mux.Handle("GET /v1/assignments/active", r.authed(http.HandlerFunc(h.HandleActive), r.Limits.Lenient))
}

func (r *Router) registerUsers() {
	h := &UsersHandler{UserService: r.UserService}
	admin := httpx.RequireAdmin()

	r.Mux.Handle("POST /v1/users", r.authed(http.HandlerFunc(h.HandleCreate), r.Limits.Moderate, admin))
	r.Mux.Handle("GET /v1/users", r.authed(http.HandlerFunc(h.HandleList), r.Limits.Lenient, admin))
	r.Mux.Handle("POST /v1/users/{id}/activate", r.authed(h.setActive(true), r.Limits.Moderate, admin))
	r.Mux.Handle("POST /v1/users/{id}/deactivate", r.authed(h.setActive(false), r.Limits.Moderate, admin))
	r.Mux.Handle("POST /v1/users/{id}/toggle-admin", r.authed(http.HandlerFunc(h.HandleToggleAdmin), r.Limits.Moderate, admin))
}

func (r *Router) registerProjects() {
	h := &ProjectsHandler{ProjectService: r.ProjectService}
	admin := httpx.RequireAdmin()

	r.Mux.Handle("GET /v1/projects", r.authed(http.HandlerFunc(h.HandleList), r.Limits.Lenient))
	r.Mux.Handle("POST /v1/projects", r.authed(http.HandlerFunc(h.HandleCreate), r.Limits.Moderate, admin))
	r.Mux.Handle("PUT /v1/projects/{id}/deadline", r.authed(http.HandlerFunc(h.HandleSetDeadline), r.Limits.Moderate, admin))
	r.Mux.Handle("POST /v1/projects/{id}/toggle-active", r.authed(http.HandlerFunc(h.HandleToggleActive), r.Limits.Moderate, admin))
}

func (r *Router) registerSummary() {
	h := &SummaryHandler{SummaryService: r.SummaryService, Now: r.Now}

	r.Mux.Handle("GET /v1/summary", r.authed(h, r.Limits.Lenient))
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(r.Limits.Lenient),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store),
			httpx.RateLimitByIP(r.Limits.Lenient),
		),
	)
	r.Mux.Handle("GET /metrics", promhttp.Handler())
}
