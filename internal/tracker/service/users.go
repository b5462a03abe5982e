package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aussiebroadwan/tracker/internal/tracker/domain"
	"github.com/aussiebroadwan/tracker/internal/tracker/metrics"
	"github.com/aussiebroadwan/tracker/internal/tracker/store"
	"github.com/aussiebroadwan/tracker/pkg/cryptox"
	"github.com/aussiebroadwan/tracker/pkg/idx"
	"github.com/aussiebroadwan/tracker/pkg/slogx"
)

const minPasswordLength = 8

var ErrAlreadyBootstrapped = errors.New("admin already exists")

type UserService struct {
	Store  store.Store
	Hasher cryptox.Hasher
}

// Create adds an active user. Usernames are unique.
func (s *UserService) Create(ctx context.Context, username, password string, admin bool) (domain.User, error) {
	log := slogx.FromContext(ctx)

	username = strings.TrimSpace(username)
	if username == "" {
		return domain.User{}, validationf("username is required")
	}
	if len(password) < minPasswordLength {
		return domain.User{}, validationf("password must be at least %d characters", minPasswordLength)
	}

	hash, err := s.Hasher.Hash(password)
	if err != nil {
		log.Error("failed to hash password", slog.Any("error", err))
		return domain.User{}, fmt.Errorf("%w: hash password: %w", ErrStorage, err)
	}

	u := domain.User{
		ID:           idx.New().String(),
		Username:     username,
		PasswordHash: hash,
		IsAdmin:      admin,
		IsActive:     true,
	}
	if err := s.Store.Users().CreateUser(ctx, u); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			log.Warn("username already taken", slog.String("username", username))
		}
		return domain.User{}, storeErr(err, "username "+username)
	}

	log.Info("user created",
		slog.String("user_id", u.ID),
		slog.String("username", username),
		slog.Bool("admin", admin),
	)
	return u, nil
}

// Authenticate checks credentials. Unknown users, wrong passwords and
// deactivated accounts all yield ErrInvalidCredentials.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (domain.User, error) {
	log := slogx.FromContext(ctx)

	u, err := s.Store.Users().GetUserByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			metrics.LoginAttemptsTotal.WithLabelValues("invalid_credentials").Inc()
			return domain.User{}, ErrInvalidCredentials
		}
		return domain.User{}, storeErr(err, "user")
	}

	if err := s.Hasher.Verify(password, u.PasswordHash); err != nil {
		log.Warn("login failed", slog.String("username", u.Username))
		metrics.LoginAttemptsTotal.WithLabelValues("invalid_credentials").Inc()
		return domain.User{}, ErrInvalidCredentials
	}

	if !u.IsActive {
		log.Warn("login refused for inactive user", slog.String("user_id", u.ID))
		metrics.LoginAttemptsTotal.WithLabelValues("inactive").Inc()
		return domain.User{}, ErrInvalidCredentials
	}

	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	return u, nil
}

func (s *UserService) Get(ctx context.Context, id string) (domain.User, error) {
	u, err := s.Store.Users().GetUserByID(ctx, id)
	if err != nil {
		return domain.User{}, storeErr(err, "user "+id)
	}
	return u, nil
}

func (s *UserService) List(ctx context.Context, activeOnly bool) ([]domain.User, error) {
	users, err := s.Store.Users().ListUsers(ctx, activeOnly)
	if err != nil {
		return nil, storeErr(err, "users")
	}
	return users, nil
}

// SetActive activates or deactivates a user. Callers may not deactivate
// themselves.
func (s *UserService) SetActive(ctx context.Context, p Principal, id string, active bool) error {
	if !active && id == p.UserID {
		return validationf("you cannot deactivate your own account")
	}
	if err := s.Store.Users().SetUserActive(ctx, id, active); err != nil {
		return storeErr(err, "user "+id)
	}

	slogx.FromContext(ctx).Info("user activation changed", slog.String("target_user_id", id), slog.Bool("active", active))
	return nil
}

// ToggleAdmin flips the admin flag and returns the updated user. Callers
// may not demote themselves.
func (s *UserService) ToggleAdmin(ctx context.Context, p Principal, id string) (domain.User, error) {
	if id == p.UserID {
		return domain.User{}, validationf("you cannot change your own admin status")
	}

	var updated domain.User
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		u, err := tx.Users().GetUserByID(ctx, id)
		if err != nil {
			return storeErr(err, "user "+id)
		}
		u.IsAdmin = !u.IsAdmin
		if err := tx.Users().SetUserAdmin(ctx, id, u.IsAdmin); err != nil {
			return storeErr(err, "user "+id)
		}
		updated = u
		return nil
	})
	if err != nil {
		return domain.User{}, storeErr(err, "user "+id)
	}

	slogx.FromContext(ctx).Info("user admin toggled", slog.String("target_user_id", id), slog.Bool("admin", updated.IsAdmin))
	return updated, nil
}

// BootstrapAdmin creates the first administrator. It refuses once any user
// exists.
func (s *UserService) BootstrapAdmin(ctx context.Context, username, password string) (domain.User, error) {
	empty, err := s.Store.Users().IsEmpty(ctx)
	if err != nil {
		return domain.User{}, storeErr(err, "users")
	}
	if !empty {
		return domain.User{}, ErrAlreadyBootstrapped
	}
	return s.Create(ctx, username, password, true)
}
