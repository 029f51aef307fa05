package config

import (
	"fmt"
	"time"
)

// Config holds runtime settings for the wellness CLI.
type Config struct {
	BaseURL        string
	RequestTimeout time.Duration
	// DatabaseDSN is the sqlite file that remembers the login between
	// runs. Empty disables persistence.
	DatabaseDSN string
	LogLevel    string
	// Retries is how many times a read that failed in transport is retried.
	// Zero, the default, leaves retrying to the user.
	Retries uint64
}

const envFile = ".env"

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BaseURL = "http://localhost:8080"
	c.RequestTimeout = 30 * time.Second
	c.DatabaseDSN = "bienestar.db"
	c.LogLevel = "info"
	c.Retries = 0
}

// LoadConfig applies defaults, then the environment, a JSON file (if
// -c/-config is given) and finally flags. args excludes the program name.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseEnv(cfg, envFile); err != nil {
		return nil, fmt.Errorf("environment: %w", err)
	}
	if err := parseJSON(cfg, args); err != nil {
		return nil, fmt.Errorf("json config: %w", err)
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, fmt.Errorf("flags: %w", err)
	}
	return cfg, nil
}
