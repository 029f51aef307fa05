package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{EnvBaseURL, EnvTimeout, EnvDatabase, EnvLogLevel, EnvRetries} {
		if v, ok := os.LookupEnv(k); ok {
			require.NoError(t, os.Unsetenv(k))
			t.Cleanup(func() { _ = os.Setenv(k, v) })
		}
	}
}

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	want := Config{
		BaseURL:        "http://localhost:8080",
		RequestTimeout: 30 * time.Second,
		DatabaseDSN:    "bienestar.db",
		LogLevel:       "info",
	}
	if diff := cmp.Diff(want, c); diff != "" {
		t.Fatalf("defaults mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadConfig_DefaultsWithoutSources(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())

	cfg, err := LoadConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080", cfg.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
}

func TestLoadConfig_Precedence(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	t.Chdir(dir)

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"),
		[]byte("BIENESTAR_BASE_URL=http://from-dotenv:1\nBIENESTAR_LOG_LEVEL=warn\nBIENESTAR_DB=dotenv.db\n"), 0o600))
	t.Setenv(EnvLogLevel, "debug")

	jsonPath := writeTempJSON(t, dir, "cfg.json", map[string]any{
		"database_dsn":    "json.db",
		"request_timeout": "5s",
	})

	cfg, err := LoadConfig([]string{"-c", jsonPath, "-a", "http://from-flag:2"})
	require.NoError(t, err)

	want := &Config{
		BaseURL:        "http://from-flag:2",
		RequestTimeout: 5 * time.Second,
		DatabaseDSN:    "json.db",
		LogLevel:       "debug",
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadConfig_BadEnvTimeout(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())
	t.Setenv(EnvTimeout, "soon")

	_, err := LoadConfig(nil)
	require.Error(t, err)
}

func TestApplyEnv(t *testing.T) {
	tests := []struct {
		name    string
		vars    map[string]string
		want    Config
		wantErr bool
	}{
		{
			name: "seconds timeout",
			vars: map[string]string{EnvTimeout: "12"},
			want: Config{RequestTimeout: 12 * time.Second},
		},
		{
			name: "duration timeout",
			vars: map[string]string{EnvTimeout: "1500ms"},
			want: Config{RequestTimeout: 1500 * time.Millisecond},
		},
		{
			name:    "zero timeout",
			vars:    map[string]string{EnvTimeout: "0"},
			wantErr: true,
		},
		{
			name: "empty db disables persistence",
			vars: map[string]string{EnvDatabase: ""},
			want: Config{DatabaseDSN: ""},
		},
		{
			name: "retries",
			vars: map[string]string{EnvRetries: "5"},
			want: Config{Retries: 5},
		},
		{
			name:    "negative retries",
			vars:    map[string]string{EnvRetries: "-1"},
			wantErr: true,
		},
		{
			name: "empty base url is ignored",
			vars: map[string]string{EnvBaseURL: ""},
			want: Config{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Config
			err := applyEnv(&got, tt.vars)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Empty(t, cmp.Diff(tt.want, got))
		})
	}
}

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		start    Config
		expected Config
		wantErr  bool
	}{
		{
			name:     "all flags",
			args:     []string{"-a", "http://h:9", "-t", "10", "-d", "x.db", "-l", "error", "-r", "0"},
			expected: Config{BaseURL: "http://h:9", RequestTimeout: 10 * time.Second, DatabaseDSN: "x.db", LogLevel: "error"},
		},
		{
			name:     "unknown flags are ignored",
			args:     []string{"-c", "cfg.json", "-x", "-a", "http://h:9"},
			start:    Config{RequestTimeout: 1500 * time.Millisecond},
			expected: Config{BaseURL: "http://h:9", RequestTimeout: 1500 * time.Millisecond},
		},
		{name: "non numeric timeout", args: []string{"-t", "abc"}, wantErr: true},
		{name: "negative timeout", args: []string{"-t=-1"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.start
			err := parseFlags(&cfg, tt.args)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Empty(t, cmp.Diff(tt.expected, cfg))
		})
	}
}
