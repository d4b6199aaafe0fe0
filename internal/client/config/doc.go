// Package config loads runtime configuration for the lifeboard client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment variables (LIFEBOARD_* — see env.go).
//  3. Optional JSON file selected via flags: -c or -config.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-d string   path/DSN of the local SQLite database
//	-l int      simulated operation latency (milliseconds)
//	-r int      verification-code resend cooldown (seconds)
//
// # JSON schema
//
// The JSON loader uses timex.Duration for intervals, so values can be
// either strings like "600ms" or integer nanoseconds:
//
//	{
//	  "database_dsn": "lifeboard.db",
//	  "simulated_latency": "600ms",
//	  "resend_cooldown": "30s",
//	  "theme_poll_interval": "2s"
//	}
//
// Primary API
//
//   - type Config                     — runtime settings
//   - func LoadConfig() *Config       — defaults, env, JSON, then flags
//   - func (*Config) LoadDefaults()   — sets sensible defaults
package config
