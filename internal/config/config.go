// Package config loads wordwise settings from defaults, an optional YAML
// file, an optional .env file and WORDWISE_* environment variables, in
// increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/abhisek/wordwise/internal/revision"
)

// Config holds all application configuration.
type Config struct {
	// DBPath is the SQLite file. Empty resolves to the XDG data path.
	DBPath  string        `yaml:"db_path"`
	Log     LogConfig     `yaml:"log"`
	Session SessionConfig `yaml:"session"`
}

// LogConfig configures the slog handler.
type LogConfig struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" validate:"oneof=text json"`
}

// SessionConfig sizes revision pools and sessions.
type SessionConfig struct {
	Cap           int   `yaml:"cap" validate:"gt=0"`
	MinPoolSize   int   `yaml:"min_pool_size" validate:"gte=0"`
	SlowAttemptMs int64 `yaml:"slow_attempt_ms" validate:"gt=0"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	rc := revision.DefaultConfig()
	return &Config{
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
		Session: SessionConfig{
			Cap:           rc.SessionCap,
			MinPoolSize:   rc.MinPoolSize,
			SlowAttemptMs: rc.SlowAttemptMs,
		},
	}
}

// Load builds the effective configuration. path may be empty; a missing
// .env file is not an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv overrides fields from WORDWISE_* environment variables.
func (c *Config) applyEnv() error {
	if v := os.Getenv("WORDWISE_DB"); v != "" {
		c.DBPath = v
	}
	if v := os.Getenv("WORDWISE_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("WORDWISE_LOG_FORMAT"); v != "" {
		c.Log.Format = v
	}

	ints := []struct {
		name string
		set  func(int64)
	}{
		{"WORDWISE_SESSION_CAP", func(n int64) { c.Session.Cap = int(n) }},
		{"WORDWISE_MIN_POOL_SIZE", func(n int64) { c.Session.MinPoolSize = int(n) }},
		{"WORDWISE_SLOW_ATTEMPT_MS", func(n int64) { c.Session.SlowAttemptMs = n }},
	}
	for _, e := range ints {
		v := os.Getenv(e.name)
		if v == "" {
			continue
		}
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", e.name, err)
		}
		e.set(n)
	}
	return nil
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Revision converts the session settings for the revision package.
func (c *Config) Revision() revision.Config {
	return revision.Config{
		MinPoolSize:   c.Session.MinPoolSize,
		SlowAttemptMs: c.Session.SlowAttemptMs,
		SessionCap:    c.Session.Cap,
	}
}
