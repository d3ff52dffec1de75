// Package config provides centralized configuration management for the
// application. It loads configuration from environment variables with
// sensible defaults and validates all settings on startup to fail fast on
// misconfiguration.
package config

import (
	"fmt"
	"time"
)

// Config holds all application configuration.
// All settings can be configured via environment variables.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Upload   UploadConfig
	Profile  ProfileConfig
	Report   ReportConfig
	Runs     RunsConfig
	Rate     RateLimitConfig
	Logging  LoggingConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the interface to bind to (default: 0.0.0.0)
	Host string `env:"SERVER_HOST" default:"0.0.0.0"`

	// Port is the port to listen on (default: 8080)
	Port int `env:"SERVER_PORT" default:"8080"`

	// ReadTimeout is the maximum duration for reading request body (default: 15s)
	ReadTimeout time.Duration `env:"SERVER_READ_TIMEOUT" default:"15s"`

	// WriteTimeout is the maximum duration for writing response (default: 60s)
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"60s"`

	// IdleTimeout is the keep-alive timeout (default: 60s)
	IdleTimeout time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`

	// ShutdownTimeout is the maximum duration to wait for graceful shutdown (default: 30s)
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`

	// RequestTimeout is the middleware timeout for requests (default: 60s)
	RequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" default:"60s"`
}

// Addr returns the host:port the server binds to.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// DatabaseConfig holds database connection settings.
type DatabaseConfig struct {
	// URL is the PostgreSQL connection string (required)
	// Supports both DATABASE_URL and DB_URL env vars for compatibility
	URL string `env:"DATABASE_URL" envAlt:"DB_URL" required:"true"`

	// MaxConns is the maximum number of connections in the pool (default: 10)
	MaxConns int `env:"DB_MAX_CONNS" default:"10"`

	// MinConns is the minimum number of connections to keep open (default: 2)
	MinConns int `env:"DB_MIN_CONNS" default:"2"`

	// MaxConnLifetime is the maximum lifetime of a connection (default: 1h)
	MaxConnLifetime time.Duration `env:"DB_MAX_CONN_LIFETIME" default:"1h"`

	// MaxConnIdleTime is the maximum idle time before a connection is closed (default: 30m)
	MaxConnIdleTime time.Duration `env:"DB_MAX_CONN_IDLE_TIME" default:"30m"`
}

// UploadConfig holds workbook upload settings.
type UploadConfig struct {
	// MaxFileSize is the maximum allowed file size in bytes (default: 50MB)
	MaxFileSize int64 `env:"UPLOAD_MAX_FILE_SIZE" default:"52428800"`

	// AllowedExtensions are the accepted file extensions (default: .xlsx,.xlsm,.csv)
	AllowedExtensions []string `env:"UPLOAD_ALLOWED_EXTENSIONS" default:".xlsx,.xlsm,.csv"`
}

// ProfileConfig holds column profiler settings.
type ProfileConfig struct {
	// TypeVoteWindow is how many leading values vote on a column's type (default: 10)
	TypeVoteWindow int `env:"PROFILE_TYPE_VOTE_WINDOW" default:"10"`

	// QualityWindow is how many leading values the completeness grade scans (default: 100)
	QualityWindow int `env:"PROFILE_QUALITY_WINDOW" default:"100"`

	// MaxSamples is how many sample values each column report carries (default: 2)
	MaxSamples int `env:"PROFILE_MAX_SAMPLES" default:"2"`

	// MaxSampleLen is the per-sample character cap, truncation marker included (default: 25)
	MaxSampleLen int `env:"PROFILE_MAX_SAMPLE_LEN" default:"25"`

	// RulesPath points to a TOML advisory rule table; empty uses the built-in rules
	RulesPath string `env:"PROFILE_RULES_PATH"`
}

// ReportConfig holds report generation settings.
type ReportConfig struct {
	// MaxExportRows caps data rows in Markdown sheet exports; 0 disables the cap (default: 1000)
	MaxExportRows int `env:"REPORT_MAX_EXPORT_ROWS" default:"1000"`
}

// RunsConfig holds artifact retention settings.
type RunsConfig struct {
	// Retention is how long run artifacts stay downloadable (default: 15m)
	Retention time.Duration `env:"RUNS_RETENTION" default:"15m"`
}

// RateLimitConfig holds rate limiting settings per time window.
type RateLimitConfig struct {
	// Enabled controls whether rate limiting is active (default: true)
	Enabled bool `env:"RATE_LIMIT_ENABLED" default:"true"`

	// RequestsPerMinute is the default rate limit per IP (default: 100)
	RequestsPerMinute int `env:"RATE_LIMIT_REQUESTS_PER_MINUTE" default:"100"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}
