package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/aussiebroadwan/tracker/internal/tracker/http"
	"github.com/aussiebroadwan/tracker/internal/tracker/service"
	"github.com/aussiebroadwan/tracker/internal/tracker/store"
	"github.com/aussiebroadwan/tracker/internal/tracker/store/drivers/sqlite"
	"github.com/aussiebroadwan/tracker/pkg/cryptox"
	"github.com/aussiebroadwan/tracker/pkg/jwtx"
	"github.com/aussiebroadwan/tracker/pkg/slogx"
)

// BuildVersion is overridden at build time via -ldflags "-X".
var BuildVersion = "v0.1.0"

// Application wires the tracker service and owns its lifecycle.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db     store.Store
	hasher cryptox.Hasher

	signer   *jwtx.HS256Signer
	verifier *jwtx.HS256Verifier

	userService       *service.UserService
	projectService    *service.ProjectService
	entryService      *service.EntryService
	assignmentService *service.AssignmentService
	reportService     *service.ReportService
	summaryService    *service.SummaryService

	server *http.Server
	router *httpapi.Router
}

// NewLogger builds the service logger for cfg.
func NewLogger(cfg Config) *slog.Logger {
	return slogx.New(slogx.Config{
		Service: "tracker",
		Version: BuildVersion,
		Env:     cfg.Env,
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
	})
}

// New creates an Application with all dependencies initialised. The
// database is migrated as part of startup.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg:    cfg,
		logger: NewLogger(cfg),
	}

	if err := app.initAuth(); err != nil {
		return nil, err
	}

	db, err := OpenStore(cfg)
	if err != nil {
		return nil, err
	}
	app.db = db
	app.logger.Info("database migrations applied successfully", "file", cfg.DatabaseFile)

	app.initServices()

	if err := app.bootstrapAdmin(context.Background()); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	app.initHTTP()
	return app, nil
}

// OpenStore opens the configured database and applies pending migrations.
func OpenStore(cfg Config) (*sqlite.Store, error) {
	db, err := sqlite.NewStore(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to apply database migrations: %w", err)
	}
	return db, nil
}

// LoadHasher reads (or creates) the pepper file and returns the password
// hasher built on it.
func LoadHasher(cfg Config) (cryptox.Hasher, error) {
	pepper, err := cryptox.LoadOrGeneratePepper(cfg.PepperFile)
	if err != nil {
		return cryptox.Hasher{}, fmt.Errorf("failed to load pepper: %w", err)
	}
	return cryptox.Hasher{Pepper: pepper}, nil
}

// Run starts the HTTP server and blocks until a shutdown signal arrives or
// the server fails.
func (app *Application) Run() error {
	app.logger.Info("tracker starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			_ = app.db.Close()
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)
		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown drains in-flight requests and closes the database.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down tracker...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("tracker stopped")
	return nil
}

// Handler exposes the HTTP handler, mainly for tests.
func (app *Application) Handler() http.Handler {
	return app.router
}

func (app *Application) initAuth() error {
	secret := []byte(app.cfg.JWTSecret)

	signer, err := jwtx.NewSignerHS256(secret)
	if err != nil {
		return fmt.Errorf("TRACKER_JWT_SECRET: %w", err)
	}
	verifier, err := jwtx.NewVerifierHS256(secret, app.cfg.Issuer, 30*time.Second)
	if err != nil {
		return fmt.Errorf("TRACKER_JWT_SECRET: %w", err)
	}
	app.signer, app.verifier = signer, verifier

	hasher, err := LoadHasher(app.cfg)
	if err != nil {
		return err
	}
	app.hasher = hasher
	return nil
}

func (app *Application) initServices() {
	app.userService = &service.UserService{Store: app.db, Hasher: app.hasher}
	app.projectService = &service.ProjectService{Store: app.db}
	app.entryService = &service.EntryService{Store: app.db}
	app.assignmentService = &service.AssignmentService{Store: app.db}
	app.reportService = &service.ReportService{Store: app.db}
	app.summaryService = &service.SummaryService{Store: app.db}
}

// bootstrapAdmin creates the configured admin on an empty database.
func (app *Application) bootstrapAdmin(ctx context.Context) error {
	if app.cfg.AdminUsername == "" || app.cfg.AdminPassword == "" {
		return nil
	}

	u, err := app.userService.BootstrapAdmin(ctx, app.cfg.AdminUsername, app.cfg.AdminPassword)
	switch {
	case errors.Is(err, service.ErrAlreadyBootstrapped):
		app.logger.Debug("admin bootstrap skipped, users exist")
		return nil
	case err != nil:
		return fmt.Errorf("failed to bootstrap admin: %w", err)
	}

	app.logger.Info("admin user bootstrapped", "user_id", u.ID, "username", u.Username)
	return nil
}

func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.signer,
		app.verifier,
		app.cfg.Issuer,
		BuildVersion,
		app.db,
		app.logger,
	)

	router.TokenTTL = app.cfg.TokenTTL
	router.DateShiftDays = app.cfg.DateShiftDays
	router.Limits = httpapi.RateLimits{
		Strict:   app.cfg.StrictLimit,
		Moderate: app.cfg.ModerateLimit,
		Lenient:  app.cfg.LenientLimit,
	}

	router.UserService = app.userService
	router.ProjectService = app.projectService
	router.EntryService = app.entryService
	router.AssignmentService = app.assignmentService
	router.ReportService = app.reportService
	router.SummaryService = app.summaryService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
