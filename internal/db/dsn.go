package db

import (
	"os"
	"path/filepath"
	"strings"
)

// NormalizeDSN trims quotes and whitespace from a DSN. Two forms are
// accepted: a postgres URL (postgres://...) or a sqlite file path. A bare
// relative path is made absolute so the store lands in a predictable place
// regardless of the working directory.
func NormalizeDSN(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.Trim(s, "\"'")
	if s == "" {
		return s
	}
	if IsPostgres(s) || strings.HasPrefix(s, "file:") {
		return s
	}
	if abs, err := filepath.Abs(s); err == nil {
		return abs
	}
	return s
}

// IsPostgres reports whether the DSN selects the postgres driver.
func IsPostgres(dsn string) bool {
	lower := strings.ToLower(strings.TrimSpace(dsn))
	return strings.HasPrefix(lower, "postgres://") || strings.HasPrefix(lower, "postgresql://")
}

// MigrateURL converts a normalized DSN into the database URL form
// golang-migrate expects.
func MigrateURL(dsn string) string {
	if IsPostgres(dsn) {
		return dsn
	}
	return "sqlite3://" + dsn
}

// GetNormalizedDSN fetches DATABASE_DSN env var and normalizes it.
func GetNormalizedDSN() string { return NormalizeDSN(os.Getenv("DATABASE_DSN")) }
