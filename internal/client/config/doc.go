// Package config loads runtime configuration for the wellness CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. A .env file in the working directory, then the process environment
//     (see parseEnv). Real environment variables win over the file.
//  3. Optional JSON file (see parseJSON) selected via flags: -c or -config.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Environment
//
//	BIENESTAR_BASE_URL   backend base URL
//	BIENESTAR_TIMEOUT    request timeout ("15s" or whole seconds)
//	BIENESTAR_DB         path of the local sqlite database ("" disables it)
//	BIENESTAR_LOG_LEVEL  debug | info | warn | error
//	BIENESTAR_RETRIES    retries for reads that failed in transport
//
// Supported flags
//
//	-a string   backend base URL
//	-t int      request timeout (seconds)
//	-d string   sqlite database path
//	-l string   log level
//	-r uint     retries for failed reads
//
// # JSON schema
//
// The JSON loader uses timex.Duration for the timeout, so values can be
// either strings like "15s" or integer nanoseconds:
//
//	{
//	  "base_url": "http://localhost:8080",
//	  "request_timeout": "15s",
//	  "database_dsn": "bienestar.db",
//	  "log_level": "debug",
//	  "retries": 3
//	}
package config
