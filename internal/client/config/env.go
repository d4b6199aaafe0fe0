package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// envConfig is a DTO used exclusively for environment parsing. Pointer
// fields distinguish "unset" from zero values so the overlay only touches
// what was actually provided.
type envConfig struct {
	DatabaseDSN       *string        `env:"LIFEBOARD_DATABASE_DSN"`
	SimulatedLatency  *time.Duration `env:"LIFEBOARD_SIMULATED_LATENCY"`
	ResendCooldown    *time.Duration `env:"LIFEBOARD_RESEND_COOLDOWN"`
	ThemePollInterval *time.Duration `env:"LIFEBOARD_THEME_POLL_INTERVAL"`
}

// parseEnv overlays Config with values from the environment. Parse errors
// panic, matching the JSON loader's behavior for malformed config.
func parseEnv(cfg *Config) {
	var ec envConfig
	if err := env.Parse(&ec); err != nil {
		panic(err)
	}

	if ec.DatabaseDSN != nil {
		cfg.DatabaseDSN = *ec.DatabaseDSN
	}
	if ec.SimulatedLatency != nil {
		cfg.SimulatedLatency = *ec.SimulatedLatency
	}
	if ec.ResendCooldown != nil {
		cfg.ResendCooldown = *ec.ResendCooldown
	}
	if ec.ThemePollInterval != nil {
		cfg.ThemePollInterval = *ec.ThemePollInterval
	}
}
