package app

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/tracker/internal/tracker/service"
	"github.com/aussiebroadwan/tracker/pkg/httpx"
	"github.com/aussiebroadwan/tracker/pkg/jwtx"
	"github.com/aussiebroadwan/tracker/pkg/trackersdk"
)

func testConfig(t *testing.T) Config {
	t.Helper()
	dir := t.TempDir()
	return Config{
		Issuer:              "tracker-test",
		JWTSecret:           "0123456789abcdef0123456789abcdef",
		TokenTTL:            time.Hour,
		DatabaseFile:        filepath.Join(dir, "tracker.db"),
		PepperFile:          filepath.Join(dir, "pepper"),
		DateShiftDays:       1,
		AdminUsername:       "admin",
		AdminPassword:       "admin-password",
		Env:                 "test",
		LogLevel:            "error",
		LogFormat:           "json",
		Port:                0,
		ShutdownGracePeriod: time.Second,
		StrictLimit:         httpx.StrictLimit,
		ModerateLimit:       httpx.ModerateLimit,
		LenientLimit:        httpx.LenientLimit,
	}
}

func TestNewBootstrapsAdmin(t *testing.T) {
	cfg := testConfig(t)

	app, err := New(cfg)
	require.NoError(t, err)

	body, err := json.Marshal(trackersdk.LoginRequest{Username: "admin", Password: "admin-password"})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/v1/auth/login", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	app.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var token trackersdk.TokenResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &token))
	require.True(t, token.Admin)
	require.Equal(t, 3600, token.ExpiresIn)
	require.NoError(t, app.Shutdown())

	// A second start reuses the database and pepper and skips the bootstrap.
	again, err := New(cfg)
	require.NoError(t, err)
	users, err := again.userService.List(t.Context(), false)
	require.NoError(t, err)
	require.Len(t, users, 1)
	_, err = again.userService.Authenticate(t.Context(), "admin", "admin-password")
	require.NoError(t, err)
	require.NoError(t, again.Shutdown())
}

func TestNewRejectsWeakSecret(t *testing.T) {
	cfg := testConfig(t)
	cfg.JWTSecret = "short"

	_, err := New(cfg)
	require.ErrorIs(t, err, jwtx.ErrWeakSecret)
}

func TestBootstrapAdminOnlyOnce(t *testing.T) {
	cfg := testConfig(t)
	db, err := OpenStore(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	hasher, err := LoadHasher(cfg)
	require.NoError(t, err)
	users := &service.UserService{Store: db, Hasher: hasher}

	_, err = users.BootstrapAdmin(t.Context(), "root", "root-password")
	require.NoError(t, err)
	_, err = users.BootstrapAdmin(t.Context(), "root2", "root-password")
	require.ErrorIs(t, err, service.ErrAlreadyBootstrapped)
}
