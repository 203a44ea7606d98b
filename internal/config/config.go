// Package config holds server configuration and its YAML loader.
package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"svw.info/sumgrid/internal/session"
)

// Config holds all sumgrid configuration. Durations are plain
// millisecond integers so configs stay trivially editable.
type Config struct {
	Addr                string `yaml:"addr"`
	StartLevel          int    `yaml:"start_level"`
	TimeBudget          int    `yaml:"time_budget"` // seconds
	TickIntervalMs      int    `yaml:"tick_interval_ms"`
	SettleDelayMs       int    `yaml:"settle_delay_ms"`
	InvalidationDelayMs int    `yaml:"invalidation_delay_ms"`
	StartScore          int    `yaml:"start_score"`
	WinAward            int    `yaml:"win_award"`
}

func (c *Config) defaults() {
	if c.Addr == "" {
		c.Addr = ":8080"
	}
	if c.StartLevel <= 0 {
		c.StartLevel = 1
	}
	if c.TimeBudget <= 0 {
		c.TimeBudget = 300
	}
	if c.TickIntervalMs <= 0 {
		c.TickIntervalMs = 1000
	}
	if c.SettleDelayMs <= 0 {
		c.SettleDelayMs = 500
	}
	if c.InvalidationDelayMs <= 0 {
		c.InvalidationDelayMs = 2000
	}
	if c.StartScore <= 0 {
		c.StartScore = 120
	}
	if c.WinAward <= 0 {
		c.WinAward = 50
	}
}

// Load reads a YAML config file; an empty path yields pure defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	}
	cfg.defaults()
	return cfg, nil
}

// Session maps the file form onto the session's runtime config.
func (c *Config) Session() session.Config {
	return session.Config{
		TimeBudget:        c.TimeBudget,
		TickInterval:      time.Duration(c.TickIntervalMs) * time.Millisecond,
		SettleDelay:       time.Duration(c.SettleDelayMs) * time.Millisecond,
		InvalidationDelay: time.Duration(c.InvalidationDelayMs) * time.Millisecond,
		StartScore:        c.StartScore,
		WinAward:          c.WinAward,
	}
}
