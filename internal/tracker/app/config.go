package app

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/aussiebroadwan/tracker/pkg/httpx"
	"github.com/aussiebroadwan/tracker/pkg/jwtx"
)

type Config struct {
	Issuer        string        // Issuer claim of access tokens (default: tracker)
	JWTSecret     string        // Required for serve: HS256 secret, at least 32 bytes
	TokenTTL      time.Duration // Access token lifetime (default: 8h)
	DatabaseFile  string        // Path to SQLite database file (default: ./tracker.db)
	PepperFile    string        // Path to file containing pepper for password hashing (default: ./pepper)
	DateShiftDays int           // Days added to timeline update dates (default: 1)

	AdminUsername string // Optional: admin created on an empty database at startup
	AdminPassword string // Optional: password for AdminUsername

	Env                 string        // Environment (dev, test, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)

	StrictLimit   httpx.RateLimitConfig
	ModerateLimit httpx.RateLimitConfig
	LenientLimit  httpx.RateLimitConfig
}

// LoadConfig reads the configuration from the environment. With ENV=dev
// (the default) a .env file in the working directory is loaded first;
// variables already set win.
func LoadConfig() Config {
	if os.Getenv("ENV") == "dev" || os.Getenv("ENV") == "" {
		_ = godotenv.Load()
	}

	return Config{
		Issuer:        getEnvOrDefault("TRACKER_ISSUER", "tracker"),
		JWTSecret:     os.Getenv("TRACKER_JWT_SECRET"),
		TokenTTL:      getEnvDurationOrDefault("TRACKER_TOKEN_TTL", jwtx.DefaultAccessTokenTTL),
		DatabaseFile:  getEnvOrDefault("TRACKER_DATABASE_FILE", "tracker.db"),
		PepperFile:    getEnvOrDefault("TRACKER_PEPPER_FILE", "pepper"),
		DateShiftDays: getEnvIntOrDefault("TIMELINE_DATE_SHIFT_DAYS", 1),

		AdminUsername: os.Getenv("TRACKER_ADMIN_USERNAME"),
		AdminPassword: os.Getenv("TRACKER_ADMIN_PASSWORD"),

		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),

		StrictLimit:   httpx.ParseRateLimitFromEnv("STRICT", httpx.StrictLimit),
		ModerateLimit: httpx.ParseRateLimitFromEnv("MODERATE", httpx.ModerateLimit),
		LenientLimit:  httpx.ParseRateLimitFromEnv("LENIENT", httpx.LenientLimit),
	}
}

// DSN is the SQLite connection string for DatabaseFile.
func (c Config) DSN() string {
	return "file:" + c.DatabaseFile +
		"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)"
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Bare integers are minutes
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
