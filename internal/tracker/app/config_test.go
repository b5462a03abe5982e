package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/tracker/pkg/httpx"
	"github.com/aussiebroadwan/tracker/pkg/jwtx"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("ENV", "test")
	for _, key := range []string{
		"TRACKER_ISSUER", "TRACKER_JWT_SECRET", "TRACKER_TOKEN_TTL", "TRACKER_DATABASE_FILE",
		"TRACKER_PEPPER_FILE", "TIMELINE_DATE_SHIFT_DAYS", "PORT", "SHUTDOWN_GRACE_PERIOD",
		"RATELIMIT_STRICT_REQUESTS", "RATELIMIT_STRICT_WINDOW_SEC", "RATELIMIT_STRICT_BURST",
	} {
		t.Setenv(key, "")
	}

	cfg := LoadConfig()
	require.Equal(t, "tracker", cfg.Issuer)
	require.Equal(t, jwtx.DefaultAccessTokenTTL, cfg.TokenTTL)
	require.Equal(t, "tracker.db", cfg.DatabaseFile)
	require.Equal(t, "pepper", cfg.PepperFile)
	require.Equal(t, 1, cfg.DateShiftDays)
	require.Equal(t, 8080, cfg.Port)
	require.Equal(t, 10*time.Second, cfg.ShutdownGracePeriod)
	require.Equal(t, httpx.StrictLimit, cfg.StrictLimit)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("ENV", "test")
	t.Setenv("TRACKER_ISSUER", "acme")
	t.Setenv("TRACKER_TOKEN_TTL", "90")
	t.Setenv("TRACKER_DATABASE_FILE", "/data/t.db")
	t.Setenv("TIMELINE_DATE_SHIFT_DAYS", "0")
	t.Setenv("PORT", "9090")
	t.Setenv("SHUTDOWN_GRACE_PERIOD", "3s")
	t.Setenv("RATELIMIT_STRICT_REQUESTS", "1000")
	t.Setenv("RATELIMIT_STRICT_BURST", "500")

	cfg := LoadConfig()
	require.Equal(t, "acme", cfg.Issuer)
	require.Equal(t, 90*time.Minute, cfg.TokenTTL)
	require.Equal(t, 0, cfg.DateShiftDays)
	require.Equal(t, 9090, cfg.Port)
	require.Equal(t, 3*time.Second, cfg.ShutdownGracePeriod)
	require.Equal(t, 1000, cfg.StrictLimit.RequestsPerWindow)
	require.Equal(t, 500, cfg.StrictLimit.Burst)
	require.Equal(t, "file:/data/t.db?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)", cfg.DSN())
}

func TestEnvHelpersIgnoreGarbage(t *testing.T) {
	t.Setenv("TRACKER_TEST_INT", "many")
	t.Setenv("TRACKER_TEST_DURATION", "soon")

	require.Equal(t, 7, getEnvIntOrDefault("TRACKER_TEST_INT", 7))
	require.Equal(t, time.Hour, getEnvDurationOrDefault("TRACKER_TEST_DURATION", time.Hour))
	require.Equal(t, "x", getEnvOrDefault("TRACKER_TEST_UNSET", "x"))
}
