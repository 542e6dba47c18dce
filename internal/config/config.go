package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Backend names a progress storage backend.
type Backend string

const (
	BackendSQLite Backend = "sqlite"
	BackendRedis  Backend = "redis"
	BackendMemory Backend = "memory"
)

// DefaultNamespace prefixes every progress key.
const DefaultNamespace = "skill-progress"

// Config holds runtime settings read from the environment. Command-line
// flags override individual fields after parsing.
type Config struct {
	// DBPath is the SQLite database file. Empty means the XDG default.
	DBPath string `env:"SKILLPATH_DB"`

	Backend   Backend `env:"SKILLPATH_BACKEND" envDefault:"sqlite"`
	RedisAddr string  `env:"SKILLPATH_REDIS_ADDR"`
	RedisDB   int     `env:"SKILLPATH_REDIS_DB" envDefault:"0"`

	// Namespace is the key prefix for progress records.
	Namespace string `env:"SKILLPATH_NAMESPACE" envDefault:"skill-progress"`

	// CatalogPath points at a JSON catalog. Empty means the bundled seed.
	CatalogPath string `env:"SKILLPATH_CATALOG"`

	LogMode string `env:"SKILLPATH_LOG_MODE" envDefault:"dev"`
	LogFile string `env:"SKILLPATH_LOG_FILE"`
}

// Load parses the process environment. Callers apply overrides, then call
// Validate.
func Load() (Config, error) {
	return parse(env.Options{})
}

// LoadFrom parses the given variables instead of the process environment.
func LoadFrom(vars map[string]string) (Config, error) {
	return parse(env.Options{Environment: vars})
}

func parse(opts env.Options) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.Backend = Backend(strings.ToLower(string(cfg.Backend)))
	return cfg, nil
}

// Validate checks field combinations.
func (c Config) Validate() error {
	switch c.Backend {
	case BackendSQLite, BackendMemory:
	case BackendRedis:
		if c.RedisAddr == "" {
			return fmt.Errorf("backend %q requires SKILLPATH_REDIS_ADDR", c.Backend)
		}
	default:
		return fmt.Errorf("unknown backend %q (want sqlite, redis or memory)", c.Backend)
	}
	if strings.TrimSpace(c.Namespace) == "" {
		return fmt.Errorf("namespace must not be empty")
	}
	if strings.Contains(c.Namespace, ":") {
		return fmt.Errorf("namespace %q must not contain ':'", c.Namespace)
	}
	return nil
}
