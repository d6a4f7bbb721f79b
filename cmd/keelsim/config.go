package main

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config carries every knob the simulation reads.
type Config struct {
	Sim     SimConfig     `toml:"sim"`
	Logging LoggingConfig `toml:"logging"`
}

type SimConfig struct {
	Seed     int64   `toml:"seed"`
	Steps    int     `toml:"steps"`
	Count    int     `toml:"count"`
	Width    float64 `toml:"width"`
	Height   float64 `toml:"height"`
	MaxAge   int     `toml:"max_age"`
	Jitter   float64 `toml:"jitter"`
	MaxSpeed float64 `toml:"max_speed"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Sim: SimConfig{
			Seed:     1,
			Steps:    300,
			Count:    64,
			Width:    100,
			Height:   100,
			MaxAge:   200,
			Jitter:   0.2,
			MaxSpeed: 1.5,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
