package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetArgs(t *testing.T) {
	t.Helper()
	orig := os.Args
	os.Args = []string{"testbin"}
	t.Cleanup(func() { os.Args = orig })
}

func TestLoadDefaults(t *testing.T) {
	var cfg Config
	cfg.LoadDefaults()

	assert.Equal(t, "lifeboard.db", cfg.DatabaseDSN)
	assert.Equal(t, 600*time.Millisecond, cfg.SimulatedLatency)
	assert.Equal(t, 30*time.Second, cfg.ResendCooldown)
	assert.Equal(t, 2*time.Second, cfg.ThemePollInterval)
}

func TestLoadConfig_DefaultsOnly(t *testing.T) {
	resetArgs(t)

	cfg := LoadConfig()
	assert.Equal(t, "lifeboard.db", cfg.DatabaseDSN)
	assert.Equal(t, 600*time.Millisecond, cfg.SimulatedLatency)
}

func TestLoadConfig_EnvOverridesDefaults(t *testing.T) {
	resetArgs(t)
	t.Setenv("LIFEBOARD_DATABASE_DSN", "/tmp/env.db")
	t.Setenv("LIFEBOARD_SIMULATED_LATENCY", "0s")

	cfg := LoadConfig()
	assert.Equal(t, "/tmp/env.db", cfg.DatabaseDSN)
	assert.Equal(t, time.Duration(0), cfg.SimulatedLatency)
	assert.Equal(t, 30*time.Second, cfg.ResendCooldown, "untouched fields keep defaults")
}

func TestLoadConfig_FlagsOverrideEnv(t *testing.T) {
	orig := os.Args
	os.Args = []string{"testbin", "-d", "/tmp/flag.db", "-l", "5", "-r", "10"}
	t.Cleanup(func() { os.Args = orig })
	t.Setenv("LIFEBOARD_DATABASE_DSN", "/tmp/env.db")

	cfg := LoadConfig()
	assert.Equal(t, "/tmp/flag.db", cfg.DatabaseDSN)
	assert.Equal(t, 5*time.Millisecond, cfg.SimulatedLatency)
	assert.Equal(t, 10*time.Second, cfg.ResendCooldown)
}

func TestLoadConfig_JsonFile(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/conf.json"
	require.NoError(t, os.WriteFile(path, []byte(`{
		"database_dsn": "/tmp/json.db",
		"simulated_latency": "50ms",
		"resend_cooldown": "7s"
	}`), 0o600))

	orig := os.Args
	os.Args = []string{"testbin", "-c", path}
	t.Cleanup(func() { os.Args = orig })

	cfg := LoadConfig()
	assert.Equal(t, "/tmp/json.db", cfg.DatabaseDSN)
	assert.Equal(t, 50*time.Millisecond, cfg.SimulatedLatency)
	assert.Equal(t, 7*time.Second, cfg.ResendCooldown)
	assert.Equal(t, 2*time.Second, cfg.ThemePollInterval, "absent JSON fields keep defaults")
}

func TestLoadConfig_JsonMalformedPanics(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/conf.json"
	require.NoError(t, os.WriteFile(path, []byte(`{not json`), 0o600))

	orig := os.Args
	os.Args = []string{"testbin", "-c", path}
	t.Cleanup(func() { os.Args = orig })

	assert.Panics(t, func() { LoadConfig() })
}
