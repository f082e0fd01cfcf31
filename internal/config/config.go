package config

import (
	"fmt"
	"slices"

	"github.com/caarlos0/env/v11"

	"health_tracker/internal/storage"
)

type Config struct {
	Backend    string `env:"HEALTH_TRACKER_BACKEND" envDefault:"sqlite"`
	DBPath     string `env:"HEALTH_TRACKER_DB" envDefault:"health_tracker.db"`
	StorageKey string `env:"HEALTH_TRACKER_KEY" envDefault:"logs"`
	LogFile    string `env:"HEALTH_TRACKER_LOG_FILE"`
	Debug      bool   `env:"HEALTH_TRACKER_DEBUG"`
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if !slices.Contains(storage.Backends, c.Backend) {
		return fmt.Errorf("invalid backend: %s (valid options: %v)", c.Backend, storage.Backends)
	}
	if c.StorageKey == "" {
		return fmt.Errorf("storage key is required")
	}
	if c.Backend != storage.BackendMemory && c.DBPath == "" {
		return fmt.Errorf("db path is required for the %s backend", c.Backend)
	}
	return nil
}
