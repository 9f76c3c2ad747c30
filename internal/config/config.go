// Package config loads the server configuration from a YAML file and
// environment variables, with sensible defaults for local development.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Log      LogConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port    int
	Metrics bool
}

// DatabaseConfig selects and configures the storage backend.
type DatabaseConfig struct {
	// Driver is "sqlite" or "postgres".
	Driver string

	// Path is the SQLite database file (sqlite driver).
	Path string

	// DSN is the PostgreSQL connection string (postgres driver).
	DSN string
}

// AuthConfig holds session signing configuration and the bootstrap owner
// account created on an empty database.
type AuthConfig struct {
	JWTSecret     string
	TokenTTL      time.Duration
	OwnerPhone    string
	OwnerPassword string
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level string
}

// Load reads configuration from the given file (or ./config.yaml when empty),
// letting QARZDAFTAR_* environment variables override file values.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.metrics", true)
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.path", "./data/qarzdaftar.db")
	v.SetDefault("auth.tokenttl", "24h")
	v.SetDefault("auth.ownerphone", "+998999649695")
	v.SetDefault("log.level", "info")

	v.SetEnvPrefix("QARZDAFTAR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		// No config file is fine; defaults and env cover everything. An
		// explicitly named file must exist.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.Auth.JWTSecret == "" {
		return nil, fmt.Errorf("auth.jwtsecret is required")
	}
	switch cfg.Database.Driver {
	case "sqlite":
		if cfg.Database.Path == "" {
			return nil, fmt.Errorf("database.path is required for the sqlite driver")
		}
	case "postgres":
		if cfg.Database.DSN == "" {
			return nil, fmt.Errorf("database.dsn is required for the postgres driver")
		}
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Database.Driver)
	}

	return &cfg, nil
}
