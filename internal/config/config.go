// Package config loads and validates application configuration from environment variables.
package config

import (
	"errors"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Plan store backends selectable with PLAN_STORE.
const (
	PlanStorePostgres = "postgres"
	PlanStoreRedis    = "redis"
)

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// DatabaseURL is the Postgres connection string. Required: events are
	// always read from Postgres.
	DatabaseURL string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:5173"] (Vite dev server).
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// PlanStore selects where trip plans are persisted: "postgres" (default)
	// or "redis".
	PlanStore string

	// RedisAddr is the host:port of the Redis server. Required when
	// PlanStore is "redis".
	RedisAddr string

	// RedisPassword is optional.
	RedisPassword string

	// RedisDB selects the Redis logical database. Defaults to 0.
	RedisDB int

	// PlanNamespace prefixes every Redis plan key. Defaults to
	// "eventbuzzer:trip-plan".
	PlanNamespace string

	// MapsBaseURL is the directions endpoint route links point at.
	// Empty means the route package default.
	MapsBaseURL string

	// QRBaseURL is the QR code provider. Defaults to "https://api.qrserver.com/v1".
	QRBaseURL string

	// QRSize is the QR image size as WIDTHxHEIGHT. Defaults to "300x300".
	QRSize string

	// QRTimeout bounds each QR image fetch. Defaults to 5s.
	QRTimeout time.Duration

	// MaxBodyBytes caps request bodies. Defaults to 1 MiB.
	MaxBodyBytes int64
}

var qrSizePattern = regexp.MustCompile(`^[1-9][0-9]{1,3}x[1-9][0-9]{1,3}$`)

// Load reads configuration from environment variables and returns a Config.
// Missing required variables and invalid values are reported together in a
// single error.
func Load() (Config, error) {
	cfg := Config{
		Port:          getEnv("PORT", "8080"),
		LogLevel:      strings.ToLower(getEnv("LOG_LEVEL", "info")),
		CORSOrigins:   splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		PlanStore:     strings.ToLower(getEnv("PLAN_STORE", PlanStorePostgres)),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		PlanNamespace: getEnv("PLAN_NAMESPACE", "eventbuzzer:trip-plan"),
		MapsBaseURL:   os.Getenv("MAPS_BASE_URL"),
		QRBaseURL:     getEnv("QR_BASE_URL", "https://api.qrserver.com/v1"),
		QRSize:        getEnv("QR_SIZE", "300x300"),
	}

	var missing, invalid []string

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}

	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		invalid = append(invalid, "LOG_LEVEL must be one of debug, info, warn, error")
	}

	switch cfg.PlanStore {
	case PlanStorePostgres:
	case PlanStoreRedis:
		if cfg.RedisAddr == "" {
			missing = append(missing, "REDIS_ADDR")
		}
	default:
		invalid = append(invalid, "PLAN_STORE must be postgres or redis")
	}

	if !qrSizePattern.MatchString(cfg.QRSize) {
		invalid = append(invalid, "QR_SIZE must look like 300x300")
	}

	var err error
	if cfg.RedisDB, err = strconv.Atoi(getEnv("REDIS_DB", "0")); err != nil || cfg.RedisDB < 0 {
		invalid = append(invalid, "REDIS_DB must be a non-negative integer")
	}
	if cfg.QRTimeout, err = time.ParseDuration(getEnv("QR_TIMEOUT", "5s")); err != nil || cfg.QRTimeout <= 0 {
		invalid = append(invalid, "QR_TIMEOUT must be a positive duration")
	}
	if cfg.MaxBodyBytes, err = strconv.ParseInt(getEnv("MAX_BODY_BYTES", "1048576"), 10, 64); err != nil || cfg.MaxBodyBytes <= 0 {
		invalid = append(invalid, "MAX_BODY_BYTES must be a positive integer")
	}

	var problems []string
	if len(missing) > 0 {
		problems = append(problems, "required environment variables not set: "+strings.Join(missing, ", "))
	}
	problems = append(problems, invalid...)
	if len(problems) > 0 {
		return Config{}, errors.New(strings.Join(problems, "; "))
	}

	return cfg, nil
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
