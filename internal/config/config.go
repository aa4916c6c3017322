// Package config provides environment-driven configuration for routeviz.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Secret wraps a sensitive string to prevent accidental logging or marshalling.
type Secret string

// String implements fmt.Stringer, returning a redacted placeholder.
func (s Secret) String() string { return "[REDACTED]" }

// GoString implements fmt.GoStringer, returning a redacted placeholder.
func (s Secret) GoString() string { return "[REDACTED]" }

// MarshalText implements encoding.TextMarshaler, returning a redacted placeholder.
func (s Secret) MarshalText() ([]byte, error) { return []byte("[REDACTED]"), nil }

// Value returns the underlying secret string.
func (s Secret) Value() string { return string(s) }

// Config holds all application configuration values.
type Config struct {
	Port        string
	ListenHost  string
	CORSOrigins []string
	LogLevel    string

	GraphPath     string
	GraphFormat   string
	ParallelEdges string

	DatabaseURL      Secret
	DBMaxConns       int
	HistoryQueue     int
	HistoryRetention time.Duration

	AdminAPIKey Secret

	TraceSampleStep int
	RateLimit       float64
	RateBurst       int
}

// Load reads configuration from the environment, after merging an optional
// .env file from the working directory. Real environment variables win.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("reading .env: %w", err)
	}

	cfg := &Config{
		Port:          envOrDefault("PORT", "8080"),
		ListenHost:    envOrDefault("LISTEN_HOST", "127.0.0.1"),
		LogLevel:      envOrDefault("LOG_LEVEL", "info"),
		GraphPath:     envOrDefault("GRAPH_PATH", ""),
		GraphFormat:   strings.ToLower(envOrDefault("GRAPH_FORMAT", "auto")),
		ParallelEdges: strings.ToLower(envOrDefault("PARALLEL_EDGES", "min")),
		DatabaseURL:   Secret(envOrDefault("DATABASE_URL", "")),
		AdminAPIKey:   Secret(envOrDefault("ADMIN_API_KEY", "")),
	}

	var err error

	if cfg.DBMaxConns, err = envInt("DB_MAX_CONNS", 9, 2, 100); err != nil {
		return nil, err
	}

	if cfg.HistoryQueue, err = envInt("HISTORY_QUEUE", 256, 1, 100000); err != nil {
		return nil, err
	}

	if cfg.TraceSampleStep, err = envInt("TRACE_SAMPLE_STEP", 10, 1, 10000); err != nil {
		return nil, err
	}

	if cfg.RateBurst, err = envInt("RATE_BURST", 40, 1, 100000); err != nil {
		return nil, err
	}

	rate, err := strconv.ParseFloat(envOrDefault("RATE_LIMIT", "20"), 64)
	if err != nil || math.IsNaN(rate) || math.IsInf(rate, 0) || rate <= 0 {
		return nil, fmt.Errorf("RATE_LIMIT must be a positive number")
	}
	cfg.RateLimit = rate

	retention, err := time.ParseDuration(envOrDefault("HISTORY_RETENTION", "0s"))
	if err != nil || retention < 0 {
		return nil, fmt.Errorf("HISTORY_RETENTION must be a non-negative duration such as 720h")
	}
	cfg.HistoryRetention = retention

	origins := envOrDefault("CORS_ORIGINS", "http://localhost:5173")
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.CORSOrigins = append(cfg.CORSOrigins, o)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

// Addr returns the listen address in host:port format.
func (c *Config) Addr() string {
	return c.ListenHost + ":" + c.Port
}

// AdminEnabled reports whether destructive admin endpoints are open to
// callers holding ADMIN_API_KEY.
func (c *Config) AdminEnabled() bool {
	return c.AdminAPIKey.Value() != ""
}

// HistoryEnabled reports whether a database is configured.
func (c *Config) HistoryEnabled() bool {
	return c.DatabaseURL.Value() != ""
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}

func envInt(key string, fallback, lo, hi int) (int, error) {
	n, err := strconv.Atoi(envOrDefault(key, strconv.Itoa(fallback)))
	if err != nil || n < lo || n > hi {
		return 0, fmt.Errorf("%s must be an integer between %d and %d", key, lo, hi)
	}

	return n, nil
}
