// Package config loads and validates application configuration from environment variables.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Row source kinds accepted by ROW_SOURCE.
const (
	RowSourceCSV      = "csv"
	RowSourcePostgres = "postgres"
)

// Config holds all configuration values for the API server and the CLI.
// Values are populated by Load from environment variables (or by FromViper
// when flags have been bound to the same keys).
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:5173"].
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// DataDir is the directory holding the city CSV files. Defaults to "./data".
	DataDir string

	// RowSource selects where trips are read from: "csv" (default) or "postgres".
	RowSource string

	// DatabaseURL is the Postgres connection string.
	// Required only when RowSource is "postgres".
	DatabaseURL string

	// MaxBodyBytes caps request bodies. Defaults to 1 MiB.
	MaxBodyBytes int64
}

// Load reads configuration from environment variables and returns a Config.
func Load() (Config, error) {
	return FromViper(NewViper())
}

// NewViper returns a viper instance with the defaults applied and every key
// bound to its environment variable.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetDefault("PORT", "8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("CORS_ORIGINS", "http://localhost:5173")
	v.SetDefault("DATA_DIR", "./data")
	v.SetDefault("ROW_SOURCE", RowSourceCSV)
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("MAX_BODY_BYTES", int64(1<<20))
	v.AutomaticEnv()
	return v
}

// FromViper builds a Config from v and validates it.
// Returns an error listing any required variables that are not set.
func FromViper(v *viper.Viper) (Config, error) {
	cfg := Config{
		Port:         nonEmpty(v.GetString("PORT"), "8080"),
		LogLevel:     nonEmpty(v.GetString("LOG_LEVEL"), "info"),
		CORSOrigins:  splitCSV(nonEmpty(v.GetString("CORS_ORIGINS"), "http://localhost:5173")),
		DataDir:      nonEmpty(v.GetString("DATA_DIR"), "./data"),
		RowSource:    strings.ToLower(nonEmpty(v.GetString("ROW_SOURCE"), RowSourceCSV)),
		DatabaseURL:  v.GetString("DATABASE_URL"),
		MaxBodyBytes: v.GetInt64("MAX_BODY_BYTES"),
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = 1 << 20
	}

	switch cfg.RowSource {
	case RowSourceCSV:
	case RowSourcePostgres:
		if cfg.DatabaseURL == "" {
			return Config{}, fmt.Errorf("required environment variables not set: DATABASE_URL (ROW_SOURCE=%s)", cfg.RowSource)
		}
	default:
		return Config{}, fmt.Errorf("ROW_SOURCE must be %q or %q, got %q", RowSourceCSV, RowSourcePostgres, cfg.RowSource)
	}

	return cfg, nil
}

// nonEmpty returns v, or fallback if v is empty. An environment variable set
// to "" overrides viper's default, so defaults are re-applied here.
func nonEmpty(v, fallback string) string {
	if v != "" {
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
