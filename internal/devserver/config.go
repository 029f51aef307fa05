package devserver

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/dmitrijs2005/bienestar/internal/flagx"
)

const (
	EnvAddr      = "DEVSERVER_ADDR"
	EnvJWTSecret = "DEVSERVER_JWT_SECRET"
	EnvTokenTTL  = "DEVSERVER_TOKEN_TTL"
	EnvLogLevel  = "DEVSERVER_LOG_LEVEL"
)

// Config holds the dev server settings.
//
// Fields:
//   - Addr: listen address, e.g. ":8080".
//   - JWTSecret: HMAC secret for the session cookie token. The default is for local use only.
//   - TokenTTL: lifetime of a session.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	Addr      string
	JWTSecret string
	TokenTTL  time.Duration
	LogLevel  string
}

func (c *Config) LoadDefaults() {
	c.Addr = ":8080"
	c.JWTSecret = "dev-secret"
	c.TokenTTL = 8 * time.Hour
	c.LogLevel = "info"
}

// LoadConfig applies defaults, then .env and the environment, then flags.
// args excludes the program name.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	vars, err := godotenv.Read(".env")
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("read .env: %w", err)
	}
	if vars == nil {
		vars = map[string]string{}
	}
	for _, key := range []string{EnvAddr, EnvJWTSecret, EnvTokenTTL, EnvLogLevel} {
		if v, ok := os.LookupEnv(key); ok {
			vars[key] = v
		}
	}
	if err := cfg.applyEnv(vars); err != nil {
		return nil, err
	}

	if err := cfg.parseFlags(args); err != nil {
		return nil, fmt.Errorf("flags: %w", err)
	}
	return cfg, nil
}

func (c *Config) applyEnv(vars map[string]string) error {
	if v := vars[EnvAddr]; v != "" {
		c.Addr = v
	}
	if v := vars[EnvJWTSecret]; v != "" {
		c.JWTSecret = v
	}
	if v := vars[EnvLogLevel]; v != "" {
		c.LogLevel = v
	}
	if v := vars[EnvTokenTTL]; v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvTokenTTL, err)
		}
		c.TokenTTL = d
	}
	return nil
}

// parseFlags handles:
//
//	-a string   listen address
//	-k string   JWT secret
//	-l string   log level
func (c *Config) parseFlags(args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-k", "-l"})

	fs := flag.NewFlagSet("devserver", flag.ContinueOnError)
	fs.StringVar(&c.Addr, "a", c.Addr, "address and port to listen on")
	fs.StringVar(&c.JWTSecret, "k", c.JWTSecret, "session token secret")
	fs.StringVar(&c.LogLevel, "l", c.LogLevel, "log level")

	return fs.Parse(args)
}
