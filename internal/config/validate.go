package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/routeviz/routeviz/internal/roadgraph"
)

func (c *Config) validate() error {
	if err := c.validateGraph(); err != nil {
		return err
	}

	if err := c.validateDatabase(); err != nil {
		return err
	}

	if err := c.validateNetwork(); err != nil {
		return err
	}

	if err := c.validateAdmin(); err != nil {
		return err
	}

	if err := c.validateCORS(); err != nil {
		return err
	}

	return c.validateLogLevel()
}

func (c *Config) validateGraph() error {
	if c.GraphPath == "" {
		return fmt.Errorf("GRAPH_PATH is required")
	}

	info, err := os.Stat(c.GraphPath)
	if err != nil {
		return fmt.Errorf("GRAPH_PATH: %w", err)
	}

	if info.IsDir() {
		return fmt.Errorf("GRAPH_PATH must be a file, got directory %q", c.GraphPath)
	}

	if _, err := roadgraph.ParseFormat(c.GraphFormat); err != nil {
		return fmt.Errorf("GRAPH_FORMAT: %w", err)
	}

	if _, err := roadgraph.ParseParallelPolicy(c.ParallelEdges); err != nil {
		return fmt.Errorf("PARALLEL_EDGES: %w", err)
	}

	return nil
}

// validateDatabase accepts an empty DATABASE_URL; history is then disabled.
func (c *Config) validateDatabase() error {
	if c.DatabaseURL.Value() == "" {
		return nil
	}

	dbURL, err := url.Parse(c.DatabaseURL.Value())
	if err != nil {
		return fmt.Errorf("DATABASE_URL is not a valid URL: %w", err)
	}

	if dbURL.Scheme != "postgres" && dbURL.Scheme != "postgresql" {
		return fmt.Errorf("DATABASE_URL scheme must be postgres:// or postgresql://")
	}

	if dbURL.Hostname() == "" {
		return fmt.Errorf("DATABASE_URL must include a host")
	}

	dbHost := dbURL.Hostname()
	if !isLoopback(dbHost) && dbURL.Query().Get("sslmode") == "disable" {
		return fmt.Errorf("DATABASE_URL sslmode=disable is not allowed for non-local host %q", dbHost)
	}

	return nil
}

func (c *Config) validateNetwork() error {
	port, err := strconv.Atoi(c.Port)
	if err != nil {
		return fmt.Errorf("PORT must be a valid integer: %w", err)
	}

	if port < 1 || port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535")
	}

	// Loopback for local use; 0.0.0.0/:: for containers where the network
	// boundary is enforced outside the process.
	validHosts := map[string]bool{
		"127.0.0.1": true,
		"::1":       true,
		"localhost": true,
		"0.0.0.0":   true,
		"::":        true,
	}
	if !validHosts[c.ListenHost] {
		return fmt.Errorf("LISTEN_HOST must be a loopback address or 0.0.0.0/:: for containers (got %q)", c.ListenHost)
	}

	return nil
}

// minAdminKeyLen keeps the admin key out of brute-force range.
const minAdminKeyLen = 16

// validateAdmin accepts an empty ADMIN_API_KEY; admin endpoints then refuse
// every request.
func (c *Config) validateAdmin() error {
	key := c.AdminAPIKey.Value()
	if key == "" {
		return nil
	}

	if len(key) < minAdminKeyLen {
		return fmt.Errorf("ADMIN_API_KEY must be at least %d characters", minAdminKeyLen)
	}

	if strings.TrimSpace(key) != key {
		return fmt.Errorf("ADMIN_API_KEY must not have leading or trailing whitespace")
	}

	return nil
}

func (c *Config) validateCORS() error {
	for _, origin := range c.CORSOrigins {
		if origin == "*" {
			return fmt.Errorf("CORS_ORIGINS must not contain wildcard '*'")
		}

		if strings.ContainsAny(origin, "*?[]") {
			return fmt.Errorf("CORS_ORIGINS must not contain glob characters (*?[]), got %q", origin)
		}

		u, err := url.Parse(origin)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("CORS_ORIGINS contains invalid origin %q (must have scheme and host)", origin)
		}
	}

	return nil
}

func (c *Config) validateLogLevel() error {
	switch c.LogLevel {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal", "panic":
		return nil
	default:
		return fmt.Errorf("LOG_LEVEL must be one of trace, debug, info, warn, error (got %q)", c.LogLevel)
	}
}

func isLoopback(host string) bool {
	return host == "localhost" || host == "127.0.0.1" || host == "::1"
}

// OriginHosts returns the host[:port] part of each CORS origin, the form the
// WebSocket origin check expects.
func (c *Config) OriginHosts() []string {
	hosts := make([]string, 0, len(c.CORSOrigins))

	for _, o := range c.CORSOrigins {
		if u, err := url.Parse(o); err == nil && u.Host != "" {
			hosts = append(hosts, u.Host)
		}
	}

	return hosts
}
