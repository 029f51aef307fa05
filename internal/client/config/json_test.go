package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, dir, name string, data map[string]any) string {
	t.Helper()
	if dir == "" {
		dir = t.TempDir()
	}
	if name == "" {
		name = "cfg.json"
	}
	path := filepath.Join(dir, name)
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJSON(t *testing.T) {
	dir := t.TempDir()
	path := writeTempJSON(t, dir, "flag.json", map[string]any{
		"base_url":        "http://www.example:9000",
		"request_timeout": "10s",
		"database_dsn":    "",
	})

	t.Run("loads from -config", func(t *testing.T) {
		cfg := &Config{DatabaseDSN: "keep-me.db", LogLevel: "info"}
		require.NoError(t, parseJSON(cfg, []string{"-config", path}))

		assert.Equal(t, "http://www.example:9000", cfg.BaseURL)
		assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
		assert.Empty(t, cfg.DatabaseDSN)
		assert.Equal(t, "info", cfg.LogLevel)
	})

	t.Run("no flag leaves config alone", func(t *testing.T) {
		cfg := &Config{BaseURL: "http://defaults:1234", RequestTimeout: 42 * time.Second}
		require.NoError(t, parseJSON(cfg, []string{"-a", "x"}))

		assert.Equal(t, "http://defaults:1234", cfg.BaseURL)
		assert.Equal(t, 42*time.Second, cfg.RequestTimeout)
	})

	t.Run("invalid JSON", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))
		require.Error(t, parseJSON(&Config{}, []string{"-c", bad}))
	})

	t.Run("missing file", func(t *testing.T) {
		require.Error(t, parseJSON(&Config{}, []string{"-c", filepath.Join(dir, "nope.json")}))
	})

	t.Run("non positive timeout", func(t *testing.T) {
		p := writeTempJSON(t, dir, "zero.json", map[string]any{"request_timeout": 0})
		require.Error(t, parseJSON(&Config{}, []string{"-c", p}))
	})
}
