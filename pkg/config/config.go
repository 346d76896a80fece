package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds all configuration for mindwell-engine.
// Configuration can come from YAML file (config.yaml) or environment variables.
// Environment variables always override YAML values.
type Config struct {
	// Env selects the runtime environment ("local" or "production").
	// It controls logger construction, nothing else.
	Env string `yaml:"env" env:"MINDWELL_ENV" env-default:"local"`

	// LogLevel is the minimum zap log level ("debug", "info", "warn", "error").
	LogLevel string `yaml:"log_level" env:"MINDWELL_LOG_LEVEL" env-default:"info"`

	// Version is set at load time, not from config.
	Version string `yaml:"-"`

	// Database configuration (embedded SQLite)
	Database DatabaseConfig `yaml:"database"`

	// Backup configuration
	Backup BackupConfig `yaml:"backup"`
}

// DatabaseConfig holds embedded SQLite database configuration.
type DatabaseConfig struct {
	// Path is the database file. If empty it defaults to
	// $HOME/.mindwell/mindwell.db.
	Path string `yaml:"path" env:"MINDWELL_DB_PATH" env-default:""`

	// BusyTimeoutMS is how long a connection waits on a locked database.
	BusyTimeoutMS int `yaml:"busy_timeout_ms" env:"MINDWELL_DB_BUSY_TIMEOUT_MS" env-default:"5000"`
}

// BackupConfig holds backup export defaults.
type BackupConfig struct {
	// Dir is where export files are written when no explicit output path
	// is given. Defaults to the database directory.
	Dir string `yaml:"dir" env:"MINDWELL_BACKUP_DIR" env-default:""`
}

// Load reads configuration from config.yaml with environment variable
// overrides. A missing config.yaml is fine; defaults and environment
// variables apply.
func Load(version string) (*Config, error) {
	cfg := &Config{Version: version}

	if _, err := os.Stat("config.yaml"); err == nil {
		if err := cleanenv.ReadConfig("config.yaml", cfg); err != nil {
			return nil, fmt.Errorf("failed to read config.yaml: %w", err)
		}
	} else {
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return nil, fmt.Errorf("failed to read environment: %w", err)
		}
	}

	if err := cfg.applyDefaults(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyDefaults fills in the paths that depend on the home directory.
func (c *Config) applyDefaults() error {
	if c.Database.Path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to resolve home directory: %w", err)
		}
		c.Database.Path = filepath.Join(home, ".mindwell", "mindwell.db")
	}
	if c.Backup.Dir == "" {
		c.Backup.Dir = filepath.Dir(c.Database.Path)
	}
	return nil
}
