// Package config loads pgtypegen settings from defaults, an optional YAML
// file, the environment (including a .env file) and command-line flags.
package config

import (
	"fmt"

	"pgtypegen/internal/database"
	"pgtypegen/internal/merge"
	"pgtypegen/internal/naming"
)

// Default configuration values.
const (
	DefaultSchema     = "public"
	DefaultTarget     = "src/types/database.ts"
	DefaultAddr       = ":8080"
	DefaultConfigFile = "pgtypegen.yaml"
	DefaultEnvFile    = ".env"
	EnvPrefix         = "PGTYPEGEN_"
)

// DefaultExcludedTables are migration bookkeeping tables that never get a
// record type.
var DefaultExcludedTables = []string{
	"goose_db_version",
	"knex_migrations",
	"knex_migrations_lock",
	"schema_migrations",
}

// Config holds all settings for one invocation.
type Config struct {
	DatabaseURL   string   `koanf:"database_url"`
	DBHost        string   `koanf:"db_host"`
	DBPort        int      `koanf:"db_port"`
	DBUser        string   `koanf:"db_user"`
	DBPassword    string   `koanf:"db_password"`
	DBName        string   `koanf:"db_name"`
	DBSSLMode     string   `koanf:"db_sslmode"`
	Schema        string   `koanf:"schema"`
	Target        string   `koanf:"target"`
	Anchor        string   `koanf:"anchor"`
	ExcludeTables []string `koanf:"exclude_tables"`
	Singularizer  string   `koanf:"singularizer"`
	Verbose       bool     `koanf:"verbose"`
	Addr          string   `koanf:"addr"`
}

// Database returns the connection settings.
func (c *Config) Database() database.Config {
	return database.Config{
		URL:      c.DatabaseURL,
		Host:     c.DBHost,
		Port:     c.DBPort,
		User:     c.DBUser,
		Password: c.DBPassword,
		Name:     c.DBName,
		SSLMode:  c.DBSSLMode,
	}
}

// Validate checks settings every command depends on.
func (c *Config) Validate() error {
	if c.Schema == "" {
		return fmt.Errorf("schema is required")
	}
	if _, ok := naming.SingularizerFor(c.Singularizer); !ok {
		return fmt.Errorf("unknown singularizer %q (want %s or %s)", c.Singularizer, naming.ModeLegacy, naming.ModeInflect)
	}
	if c.DatabaseURL == "" && c.DBHost == "" {
		return fmt.Errorf("database_url or DB_HOST is required\nHint: set them in %s or the environment", DefaultEnvFile)
	}
	return nil
}

func defaults() map[string]interface{} {
	return map[string]interface{}{
		"schema":         DefaultSchema,
		"target":         DefaultTarget,
		"anchor":         merge.DefaultAnchor,
		"exclude_tables": DefaultExcludedTables,
		"singularizer":   naming.ModeLegacy,
		"verbose":        false,
		"addr":           DefaultAddr,
		"db_port":        5432,
		"db_sslmode":     "disable",
	}
}
