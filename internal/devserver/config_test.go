package devserver

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := LoadConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "dev-secret", cfg.JWTSecret)
	assert.Equal(t, 8*time.Hour, cfg.TokenTTL)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadConfig_Precedence(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"),
		[]byte("DEVSERVER_ADDR=:9000\nDEVSERVER_JWT_SECRET=from-file\nDEVSERVER_TOKEN_TTL=1h\n"), 0o600))
	t.Setenv(EnvJWTSecret, "from-env")

	cfg, err := LoadConfig([]string{"-a", ":9100", "-x", "ignored"})
	require.NoError(t, err)
	assert.Equal(t, ":9100", cfg.Addr)
	assert.Equal(t, "from-env", cfg.JWTSecret)
	assert.Equal(t, time.Hour, cfg.TokenTTL)
}

func TestLoadConfig_BadTTL(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv(EnvTokenTTL, "soon")

	_, err := LoadConfig(nil)
	assert.Error(t, err)
}
