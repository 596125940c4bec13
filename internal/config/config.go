package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rotisserie/eris"
)

// Config holds runtime configuration values for the SMO web API.
type Config struct {
	DBDriver        string
	DBPath          string
	DatabaseURL     string
	ServerPort      int
	LogLevel        string
	SentryDSN       string
	Environment     string
	SlugMaxAttempts int
	RateLimit       RateLimitConfig
	ShutdownGrace   time.Duration
}

// RateLimitConfig controls the per-client token bucket applied to API requests.
type RateLimitConfig struct {
	Burst             int
	RequestsPerSecond float64
	ClientTTL         time.Duration
}

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

const (
	defaultDBDriver        = DriverSQLite
	defaultDBPath          = "./data/smoweb.db"
	defaultServerPort      = 8080
	defaultLogLevel        = "info"
	defaultEnvironment     = "development"
	defaultSlugMaxAttempts = 5
	defaultRateBurst       = 30
	defaultRatePerSecond   = 10.0
	defaultRateClientTTL   = 5 * time.Minute
	defaultShutdownGrace   = 10 * time.Second
)

// Load reads configuration values from environment variables, applying defaults where necessary.
func Load() (*Config, error) {
	cfg := &Config{
		DBDriver:    strings.ToLower(getEnv("DB_DRIVER", defaultDBDriver)),
		DBPath:      getEnv("DB_PATH", defaultDBPath),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		LogLevel:    getEnv("LOG_LEVEL", defaultLogLevel),
		SentryDSN:   os.Getenv("SENTRY_DSN"),
		Environment: getEnv("ENV", defaultEnvironment),
	}

	switch cfg.DBDriver {
	case DriverSQLite:
	case DriverPostgres:
		if cfg.DatabaseURL == "" {
			return nil, eris.New("DATABASE_URL is required when DB_DRIVER is postgres")
		}
	default:
		return nil, eris.Errorf("unsupported DB_DRIVER value: %s", cfg.DBDriver)
	}

	var err error

	if cfg.ServerPort, err = getInt("SERVER_PORT", defaultServerPort); err != nil {
		return nil, err
	}

	if cfg.SlugMaxAttempts, err = getInt("SLUG_MAX_ATTEMPTS", defaultSlugMaxAttempts); err != nil {
		return nil, err
	}
	if cfg.SlugMaxAttempts < 1 {
		return nil, eris.Errorf("invalid SLUG_MAX_ATTEMPTS value: %d", cfg.SlugMaxAttempts)
	}

	if cfg.RateLimit.Burst, err = getInt("RATE_LIMIT_BURST", defaultRateBurst); err != nil {
		return nil, err
	}

	rpsValue := getEnv("RATE_LIMIT_RPS", strconv.FormatFloat(defaultRatePerSecond, 'f', -1, 64))
	rps, err := strconv.ParseFloat(rpsValue, 64)
	if err != nil {
		return nil, eris.Wrapf(err, "invalid RATE_LIMIT_RPS value: %s", rpsValue)
	}
	cfg.RateLimit.RequestsPerSecond = rps

	if cfg.RateLimit.ClientTTL, err = getDuration("RATE_LIMIT_TTL", defaultRateClientTTL); err != nil {
		return nil, err
	}

	if cfg.ShutdownGrace, err = getDuration("SHUTDOWN_GRACE", defaultShutdownGrace); err != nil {
		return nil, err
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) (int, error) {
	value := getEnv(key, strconv.Itoa(fallback))
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, eris.Wrapf(err, "invalid %s value: %s", key, value)
	}
	return parsed, nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	value := getEnv(key, fallback.String())
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return 0, eris.Wrapf(err, "invalid %s value: %s", key, value)
	}
	return parsed, nil
}
