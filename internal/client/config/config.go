package config

import "time"

// Config holds runtime settings for the lifeboard client.
//
// Fields:
//   - DatabaseDSN: path/DSN of the local SQLite database.
//   - SimulatedLatency: artificial delay applied to every auth operation,
//     standing in for a real backend round trip.
//   - ResendCooldown: how long the UI waits before offering another
//     verification-code resend. Enforced by the UI, not the controller.
//   - ThemePollInterval: how often the theme store probes the OS color
//     scheme while the "system" theme is selected.
type Config struct {
	DatabaseDSN       string
	SimulatedLatency  time.Duration
	ResendCooldown    time.Duration
	ThemePollInterval time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DatabaseDSN = "lifeboard.db"
	c.SimulatedLatency = 600 * time.Millisecond
	c.ResendCooldown = 30 * time.Second
	c.ThemePollInterval = 2 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from the environment, a JSON file (if present) and command-line flags.
// Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
