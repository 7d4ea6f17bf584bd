// Package config loads the view configuration file.
package config

import (
	"fmt"
	"os"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"
)

// Config is the view's configuration.
type Config struct {
	LogLevel string `yaml:"log_level"`
	LogFile  string `yaml:"log_file"`

	// DisableActions mirrors the backend policy flag for local testing;
	// a real backend supplies this through the feed.
	DisableActions bool `yaml:"disable_actions"`

	DemoSeed int64 `yaml:"demo_seed"`

	Theme Theme `yaml:"theme"`
}

// Theme holds the configurable colors as hex strings.
type Theme struct {
	Popup  string `yaml:"popup"`
	Hint   string `yaml:"hint"`
	Accent string `yaml:"accent"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		LogLevel: "info",
		LogFile:  "simview.log",
		DemoSeed: 1,
		Theme: Theme{
			Popup:  "#d7d7af",
			Hint:   "#808080",
			Accent: "#5fafd7",
		},
	}
}

// Load reads and validates a configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML config bytes, filling defaults and validating.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log_level: %s (must be debug, info, warn, or error)", cfg.LogLevel)
	}
	for name, hex := range map[string]string{
		"popup":  cfg.Theme.Popup,
		"hint":   cfg.Theme.Hint,
		"accent": cfg.Theme.Accent,
	} {
		if hex == "" {
			continue
		}
		if _, err := colorful.Hex(hex); err != nil {
			return fmt.Errorf("theme.%s: invalid color %q: %w", name, hex, err)
		}
	}
	return nil
}
