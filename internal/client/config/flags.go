package config

import (
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/bienestar/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   backend base URL
//	-t int      request timeout in seconds
//	-d string   sqlite database path
//	-l string   log level
//	-r uint     retries for reads that failed in transport
//
// args is filtered with flagx.FilterArgs so flags owned by other loaders
// (-c/-config) do not cause parse errors.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-t", "-d", "-l", "-r"})

	fs := flag.NewFlagSet("bienestar", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.BaseURL, "a", cfg.BaseURL, "backend base URL")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "sqlite database path")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	fs.Uint64Var(&cfg.Retries, "r", cfg.Retries, "retries for failed reads")

	if err := fs.Parse(args); err != nil {
		return err
	}

	// Only touch the timeout when -t was given, so a sub-second value from
	// the environment or JSON survives.
	var timeoutSet bool
	fs.Visit(func(f *flag.Flag) { timeoutSet = timeoutSet || f.Name == "t" })
	if !timeoutSet {
		return nil
	}
	if *timeout <= 0 {
		return fmt.Errorf("-t must be positive, got %d", *timeout)
	}
	cfg.RequestTimeout = time.Duration(*timeout) * time.Second
	return nil
}
