package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	EnvBaseURL  = "BIENESTAR_BASE_URL"
	EnvTimeout  = "BIENESTAR_TIMEOUT"
	EnvDatabase = "BIENESTAR_DB"
	EnvLogLevel = "BIENESTAR_LOG_LEVEL"
	EnvRetries  = "BIENESTAR_RETRIES"
)

// parseEnv overlays cfg with variables from path (a dotenv file, optional)
// and from the process environment.
func parseEnv(cfg *Config, path string) error {
	vars := map[string]string{}

	if path != "" {
		fileVars, err := godotenv.Read(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return fmt.Errorf("read %s: %w", path, err)
		default:
			vars = fileVars
		}
	}

	for _, key := range []string{EnvBaseURL, EnvTimeout, EnvDatabase, EnvLogLevel, EnvRetries} {
		if v, ok := os.LookupEnv(key); ok {
			vars[key] = v
		}
	}

	return applyEnv(cfg, vars)
}

func applyEnv(cfg *Config, vars map[string]string) error {
	if v, ok := vars[EnvBaseURL]; ok && v != "" {
		cfg.BaseURL = v
	}
	if v, ok := vars[EnvTimeout]; ok && v != "" {
		d, err := parseTimeout(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvTimeout, err)
		}
		cfg.RequestTimeout = d
	}
	if v, ok := vars[EnvDatabase]; ok {
		cfg.DatabaseDSN = v
	}
	if v, ok := vars[EnvLogLevel]; ok && v != "" {
		cfg.LogLevel = v
	}
	if v, ok := vars[EnvRetries]; ok && v != "" {
		n, err := strconv.ParseUint(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvRetries, err)
		}
		cfg.Retries = n
	}
	return nil
}

// parseTimeout accepts a Go duration ("15s") or whole seconds ("15").
func parseTimeout(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if secs, err := strconv.Atoi(s); err == nil {
		if secs <= 0 {
			return 0, fmt.Errorf("timeout must be positive, got %d", secs)
		}
		return time.Duration(secs) * time.Second, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, fmt.Errorf("timeout must be positive, got %s", d)
	}
	return d, nil
}
