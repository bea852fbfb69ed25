package config

import (
	"fmt"
	"strings"
	"time"
)

// Supported database URL schemes.
const (
	SchemePostgres   = "postgres://"
	SchemePostgreSQL = "postgresql://"
	SchemeSQLite     = "sqlite://"
	SchemeMemory     = "memory://"
)

type DatabaseConfig struct {
	URL     string        `koanf:"url" validate:"required"`
	Timeout time.Duration `koanf:"timeout"`
	Migrate bool          `koanf:"migrate"`
}

func (c *DatabaseConfig) Validate() error {
	if c.URL == "" {
		return fmt.Errorf("database URL is not configured")
	}
	switch {
	case c.IsPostgres():
		if c.Timeout <= 0 {
			return fmt.Errorf("database timeout must be greater than 0")
		}
	case c.IsSQLite():
		if strings.TrimPrefix(c.URL, SchemeSQLite) == "" {
			return fmt.Errorf("sqlite database path is not configured")
		}
	case c.IsMemory():
	default:
		return fmt.Errorf("database URL must start with one of postgres://, postgresql://, sqlite://, memory://: %s", c.URL)
	}
	return nil
}

// IsPostgres checks if the provided URL is a valid PostgreSQL URL
func (c *DatabaseConfig) IsPostgres() bool {
	return strings.HasPrefix(c.URL, SchemePostgres) ||
		strings.HasPrefix(c.URL, SchemePostgreSQL)
}

func (c *DatabaseConfig) IsSQLite() bool {
	return strings.HasPrefix(c.URL, SchemeSQLite)
}

func (c *DatabaseConfig) IsMemory() bool {
	return strings.HasPrefix(c.URL, SchemeMemory)
}
