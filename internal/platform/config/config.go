// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values. A '.env' file in the
working directory, when present, is loaded first with 'joho/godotenv'; variables
already set in the process environment win.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (store, limiter) via constructors.
  - Zero Hidden State: No global variables are used to store config.
*/
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/taibuivan/locallibrary/internal/platform/constants"
)

// Supported store drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// # Configuration Schema

// Config holds all runtime configuration for the catalog API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// DBDriver selects the entity store backend: "postgres" or "sqlite".
	DBDriver string `env:"DB_DRIVER" envDefault:"postgres"`

	// Relational Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// SQLitePath is the database file used when DBDriver is "sqlite".
	SQLitePath string `env:"SQLITE_PATH" envDefault:"./data/locallibrary.db"`

	// Key-Value store (Redis). Optional; enables the shared rate limiter.
	RedisURL string `env:"REDIS_URL"`

	// Rate limiting per client IP
	RateLimitRPS   float64 `env:"RATE_LIMIT_RPS"   envDefault:"100"`
	RateLimitBurst int     `env:"RATE_LIMIT_BURST" envDefault:"150"`

	// Cross-Origin Resource Sharing (comma-separated origin suffixes)
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:","`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {

	// A missing .env file is normal outside local development.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: failed to read .env file: %w", err)
	}

	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks cross-field rules the struct tags cannot express.
func (c *Config) Validate() error {
	switch c.DBDriver {
	case DriverPostgres:
		if strings.TrimSpace(c.DatabaseURL) == "" {
			return errors.New("config: DATABASE_URL is required when DB_DRIVER is postgres")
		}
	case DriverSQLite:
		if strings.TrimSpace(c.SQLitePath) == "" {
			return errors.New("config: SQLITE_PATH is required when DB_DRIVER is sqlite")
		}
	default:
		return fmt.Errorf("config: unsupported DB_DRIVER %q", c.DBDriver)
	}

	if c.RateLimitRPS <= 0 {
		c.RateLimitRPS = constants.DefaultRateLimitRPS
	}
	if c.RateLimitBurst <= 0 {
		c.RateLimitBurst = constants.DefaultRateLimitBurst
	}
	return nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// Origins returns the configured CORS origin suffixes.
func (c *Config) Origins() []string {
	return c.AllowedOrigins
}
