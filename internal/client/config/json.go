package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/bienestar/internal/flagx"
	"github.com/dmitrijs2005/bienestar/internal/timex"
)

// JSONConfig is a DTO used exclusively for JSON unmarshalling. Pointer
// fields distinguish "absent" from "set to empty".
type JSONConfig struct {
	BaseURL        *string         `json:"base_url"`
	RequestTimeout *timex.Duration `json:"request_timeout"`
	DatabaseDSN    *string         `json:"database_dsn"`
	LogLevel       *string         `json:"log_level"`
	Retries        *uint64         `json:"retries"`
}

// parseJSON overlays cfg with the file named by -c/-config in args. Without
// either flag it does nothing.
func parseJSON(cfg *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var jc JSONConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	if jc.BaseURL != nil {
		cfg.BaseURL = *jc.BaseURL
	}
	if jc.RequestTimeout != nil {
		if jc.RequestTimeout.Duration <= 0 {
			return fmt.Errorf("request_timeout must be positive")
		}
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.DatabaseDSN != nil {
		cfg.DatabaseDSN = *jc.DatabaseDSN
	}
	if jc.LogLevel != nil {
		cfg.LogLevel = *jc.LogLevel
	}
	if jc.Retries != nil {
		cfg.Retries = *jc.Retries
	}
	return nil
}
