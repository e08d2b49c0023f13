// Package config loads process configuration from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Storage drivers accepted in DB_DRIVER.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"
)

// Session backends accepted in SESSION_BACKEND.
const (
	SessionsMemory = "memory"
	SessionsRedis  = "redis"
)

// Config is the complete process configuration.
type Config struct {
	Port       int    `env:"PORT" envDefault:"8888"`
	Production bool   `env:"PRODUCTION"`
	CORSOrigin string `env:"CORS_ORIGIN" envDefault:"*"`
	TrustProxy bool   `env:"TRUST_PROXY"`

	DBDriver      string `env:"DB_DRIVER"`
	DatabaseURL   string `env:"DATABASE_URL"`
	DBTLSInsecure bool   `env:"DB_TLS_INSECURE"`
	SQLitePath    string `env:"SQLITE_PATH" envDefault:"db.sqlite3"`

	SessionBackend string `env:"SESSION_BACKEND" envDefault:"memory"`
	RedisAddr      string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword  string `env:"REDIS_PASSWORD"`
	RedisKey       string `env:"REDIS_KEY" envDefault:"scoreboard:sessions"`
}

// Load parses the environment into a Config and validates it.
func Load() (Config, error) {
	var c Config
	if err := env.Parse(&c); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return c, c.Validate()
}

// LoadFrom is Load with an explicit environment, for tests.
func LoadFrom(environ map[string]string) (Config, error) {
	var c Config
	if err := env.ParseWithOptions(&c, env.Options{Environment: environ}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return c, c.Validate()
}

// Driver returns the storage driver, defaulting to postgres in production
// and sqlite otherwise.
func (c Config) Driver() string {
	if c.DBDriver != "" {
		return c.DBDriver
	}
	if c.Production {
		return DriverPostgres
	}
	return DriverSQLite
}

// SSLMode returns the postgres sslmode implied by the TLS trust settings.
// An empty result leaves the connection string as configured.
func (c Config) SSLMode() string {
	switch {
	case c.DBTLSInsecure:
		return "require"
	case c.Production:
		return "verify-full"
	default:
		return ""
	}
}

// Addr returns the listen address.
func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Validate reports configuration that cannot be wired.
func (c Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("PORT out of range: %d", c.Port)
	}
	switch c.Driver() {
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for the postgres driver")
		}
	case DriverSQLite, DriverMemory:
	default:
		return fmt.Errorf("unknown DB_DRIVER %q", c.DBDriver)
	}
	switch c.SessionBackend {
	case SessionsMemory, SessionsRedis:
	default:
		return fmt.Errorf("unknown SESSION_BACKEND %q", c.SessionBackend)
	}
	return nil
}
