// Package config loads runtime settings from the environment and an
// optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/abhisek/secjobcoach/internal/spacedrep"
)

// DefaultEnvFile is read when present in the working directory.
const DefaultEnvFile = ".env"

// Config holds runtime settings.
type Config struct {
	DBPath   string `env:"SECJOBCOACH_DB"`
	LogLevel string `env:"SECJOBCOACH_LOG_LEVEL" envDefault:"info"`
	LogFile  string `env:"SECJOBCOACH_LOG_FILE"`
	DueLimit int    `env:"SECJOBCOACH_DUE_LIMIT" envDefault:"12"`
	TZ       string `env:"SECJOBCOACH_TZ"`
}

// Load reads envFile into the process environment, if it exists, then
// parses Config. Variables already set take precedence over the file.
// An empty envFile skips the file step.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks value ranges that the parser cannot.
func (c Config) Validate() error {
	if c.DueLimit <= 0 {
		return fmt.Errorf("SECJOBCOACH_DUE_LIMIT must be positive, got %d", c.DueLimit)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location returns the time zone used to decide "today". An empty TZ means
// local time.
func (c Config) Location() (*time.Location, error) {
	if c.TZ == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.TZ)
	if err != nil {
		return nil, fmt.Errorf("load time zone %q: %w", c.TZ, err)
	}
	return loc, nil
}

// DueLimitOrDefault returns the configured due queue size, falling back to
// the scheduler default for an unset Config.
func (c Config) DueLimitOrDefault() int {
	if c.DueLimit <= 0 {
		return spacedrep.DefaultDueLimit
	}
	return c.DueLimit
}
