// Package config loads runtime configuration from the environment.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// Port the API server listens on.
	Port string

	// SQLiteDBPath is the path to the SQLite database file, or
	// ":memory:" for an ephemeral database.
	SQLiteDBPath string

	// AMQP settings for the change-event stream. An empty URL disables
	// event publishing entirely.
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	// Google Sheets export settings, used by the export worker.
	GoogleSpreadsheetID string
	GoogleSheetName     string

	// JWTSecret signs access tokens. Required when AuthRequired is on.
	JWTSecret string
	TokenTTL  time.Duration

	// AuthRequired gates the API behind bearer tokens.
	AuthRequired bool

	// CORSOrigins lists origins allowed to call the API from a
	// browser. "*" allows any origin.
	CORSOrigins []string

	// RateLimitPerMinute caps mutating requests per client IP.
	RateLimitPerMinute int
}

// Load reads configuration from environment variables, applying
// defaults for everything optional.
func Load() Config {
	return Config{
		Port:                getEnv("PORT", "8081"),
		SQLiteDBPath:        getEnv("SQLITE_DB_PATH", "./data/balancer.db"),
		AMQPURL:             getEnv("AMQP_URL", ""),
		AMQPExchange:        getEnv("AMQP_EXCHANGE", "balancer.changes"),
		AMQPQueue:           getEnv("AMQP_QUEUE", "balancer.export"),
		GoogleSpreadsheetID: getEnv("GOOGLE_SPREADSHEET_ID", ""),
		GoogleSheetName:     getEnv("GOOGLE_SHEET_NAME", "Expenses"),
		JWTSecret:           getEnv("JWT_SECRET", ""),
		TokenTTL:            getEnvDuration("TOKEN_TTL", 24*time.Hour),
		AuthRequired:        getEnvBool("AUTH_REQUIRED", false),
		CORSOrigins:         splitCSV(getEnv("CORS_ORIGINS", "*")),
		RateLimitPerMinute:  getEnvInt("RATE_LIMIT_PER_MINUTE", 60),
	}
}

// Validate checks for inconsistent settings and returns all problems at
// once.
func (c Config) Validate() error {
	var problems []string

	if c.Port == "" {
		problems = append(problems, "PORT must not be empty")
	}
	if c.SQLiteDBPath == "" {
		problems = append(problems, "SQLITE_DB_PATH must not be empty")
	}
	if c.AuthRequired && c.JWTSecret == "" {
		problems = append(problems, "JWT_SECRET is required when AUTH_REQUIRED is enabled")
	}
	if c.TokenTTL <= 0 {
		problems = append(problems, "TOKEN_TTL must be positive")
	}
	if c.RateLimitPerMinute <= 0 {
		problems = append(problems, "RATE_LIMIT_PER_MINUTE must be positive")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		slog.Warn("Invalid integer in environment, using fallback",
			"key", key, "value", v, "fallback", fallback)
		return fallback
	}
	return n
}

func getEnvBool(key string, fallback bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("Invalid boolean in environment, using fallback",
			"key", key, "value", v, "fallback", fallback)
		return fallback
	}
	return b
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("Invalid duration in environment, using fallback",
			"key", key, "value", v, "fallback", fallback)
		return fallback
	}
	return d
}
