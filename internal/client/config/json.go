package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/lifeboard/internal/flagx"
	"github.com/dmitrijs2005/lifeboard/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify intervals either as strings like
// "600ms" or as integer nanoseconds. After parsing, values are copied into
// the runtime Config (which uses time.Duration).
type JsonConfig struct {
	DatabaseDSN       *string         `json:"database_dsn"`
	SimulatedLatency  *timex.Duration `json:"simulated_latency"`
	ResendCooldown    *timex.Duration `json:"resend_cooldown"`
	ThemePollInterval *timex.Duration `json:"theme_poll_interval"`
}

// parseJson overlays Config with values loaded from a JSON file.
//
// The file path comes from the -c or -config flags via
// flagx.JsonConfigFlags(); if empty, no JSON is loaded. Read or unmarshal
// errors panic (caller should recover if desired). Only fields present in
// the file are copied.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.DatabaseDSN != nil {
		cfg.DatabaseDSN = *jc.DatabaseDSN
	}
	if jc.SimulatedLatency != nil {
		cfg.SimulatedLatency = time.Duration(jc.SimulatedLatency.Duration)
	}
	if jc.ResendCooldown != nil {
		cfg.ResendCooldown = time.Duration(jc.ResendCooldown.Duration)
	}
	if jc.ThemePollInterval != nil {
		cfg.ThemePollInterval = time.Duration(jc.ThemePollInterval.Duration)
	}
}
