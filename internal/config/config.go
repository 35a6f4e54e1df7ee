// Package config loads stringscope settings from defaults, an optional TOML
// file and STRINGSCOPE_* environment variables, in increasing precedence.
package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/its-jojoo/stringscope/internal/core"
	"github.com/its-jojoo/stringscope/internal/errors"
)

const EnvPrefix = "STRINGSCOPE"

// Storage drivers
const (
	DriverMemory    = "memory"
	DriverSQLite    = "sqlite"
	DriverPostgres  = "postgres"
	DriverSurrealDB = "surrealdb"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Log       LogConfig       `mapstructure:"log"`
	Storage   StorageConfig   `mapstructure:"storage"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
	Limits    LimitsConfig    `mapstructure:"limits"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
}

type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type LogConfig struct {
	JSON  bool   `mapstructure:"json"`
	Level string `mapstructure:"level"`
}

type StorageConfig struct {
	Driver    string          `mapstructure:"driver"`
	SQLite    SQLiteConfig    `mapstructure:"sqlite"`
	Postgres  PostgresConfig  `mapstructure:"postgres"`
	SurrealDB SurrealDBConfig `mapstructure:"surrealdb"`
}

type SQLiteConfig struct {
	Path string `mapstructure:"path"`
}

type PostgresConfig struct {
	DSN string `mapstructure:"dsn"`
}

type SurrealDBConfig struct {
	URL       string `mapstructure:"url"`
	Namespace string `mapstructure:"namespace"`
	Database  string `mapstructure:"database"`
	Username  string `mapstructure:"username"`
	Password  string `mapstructure:"password"`
}

// RateLimitConfig allows Max requests per client IP in each Window.
type RateLimitConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	Window  time.Duration `mapstructure:"window"`
	Max     int           `mapstructure:"max"`
}

type LimitsConfig struct {
	MaxValueLength int `mapstructure:"max_value_length"`
}

type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 3000)
	v.SetDefault("server.read_timeout", 10*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("log.json", false)
	v.SetDefault("log.level", "info")

	v.SetDefault("storage.driver", DriverMemory)
	v.SetDefault("storage.sqlite.path", "stringscope.db")
	v.SetDefault("storage.postgres.dsn", "")
	v.SetDefault("storage.surrealdb.url", "ws://localhost:8000")
	v.SetDefault("storage.surrealdb.namespace", "stringscope")
	v.SetDefault("storage.surrealdb.database", "stringscope")
	v.SetDefault("storage.surrealdb.username", "root")
	v.SetDefault("storage.surrealdb.password", "")

	v.SetDefault("ratelimit.enabled", true)
	v.SetDefault("ratelimit.window", 15*time.Minute)
	v.SetDefault("ratelimit.max", 100)

	v.SetDefault("limits.max_value_length", core.MaxValueLen)

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")
}

// New returns a viper instance with defaults and environment binding.
// PORT is honoured for hosting platforms that inject it.
func New() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("server.port", EnvPrefix+"_SERVER_PORT", "PORT")
	SetDefaults(v)
	return v
}

// Load reads configuration. An empty path looks for ./stringscope.toml and
// tolerates its absence; an explicit path must exist.
func Load(path string) (*Config, error) {
	v := New()
	v.SetConfigType("toml")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("stringscope")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, errors.Wrapf(err, "read config %s", path)
		}
	}
	return FromViper(v)
}

// FromViper decodes and validates v.
func FromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshal config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that the configuration is usable
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return errors.Newf("server.port must be in 1..65535, got %d", c.Server.Port)
	}
	if c.Server.ShutdownTimeout <= 0 {
		return errors.Newf("server.shutdown_timeout must be > 0, got %s", c.Server.ShutdownTimeout)
	}

	switch c.Storage.Driver {
	case DriverMemory:
	case DriverSQLite:
		if c.Storage.SQLite.Path == "" {
			return errors.New("storage.sqlite.path cannot be empty")
		}
	case DriverPostgres:
		if c.Storage.Postgres.DSN == "" {
			return errors.New("storage.postgres.dsn cannot be empty when driver is postgres")
		}
	case DriverSurrealDB:
		if c.Storage.SurrealDB.URL == "" {
			return errors.New("storage.surrealdb.url cannot be empty when driver is surrealdb")
		}
	default:
		return errors.WithHint(
			errors.Newf("unknown storage.driver %q", c.Storage.Driver),
			"use one of memory, sqlite, postgres, surrealdb",
		)
	}

	if c.RateLimit.Enabled {
		if c.RateLimit.Max <= 0 {
			return errors.Newf("ratelimit.max must be > 0, got %d", c.RateLimit.Max)
		}
		if c.RateLimit.Window <= 0 {
			return errors.Newf("ratelimit.window must be > 0, got %s", c.RateLimit.Window)
		}
	}
	if c.Limits.MaxValueLength <= 0 {
		return errors.Newf("limits.max_value_length must be > 0, got %d", c.Limits.MaxValueLength)
	}
	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		return errors.Newf("metrics.path must start with /, got %q", c.Metrics.Path)
	}
	return nil
}
