// Package config loads the bridge configuration from an optional YAML file
// with sane defaults for every field.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the process configuration.
type Config struct {
	// Listen is the HTTP listen address for the REST surface.
	Listen string `yaml:"listen"`

	// GateTimeoutSeconds bounds how long a request waits for the session
	// gate before failing with a busy response.
	GateTimeoutSeconds int `yaml:"gate_timeout_seconds"`

	// PopupPauseMs is the pause between stacked-popup dismissal attempts.
	PopupPauseMs int `yaml:"popup_pause_ms"`

	// TabRetryPauseMs is the pause before retrying a tab select while a
	// screen is still rendering.
	TabRetryPauseMs int `yaml:"tab_retry_pause_ms"`

	// AllowUnkeyedRelease re-enables releasing whatever order is loaded
	// when no id_sap is supplied. Off by default.
	AllowUnkeyedRelease bool `yaml:"allow_unkeyed_release"`

	Defaults DefaultsConfig `yaml:"defaults"`
}

// DefaultsConfig holds order-field defaults applied when the request omits
// them.
type DefaultsConfig struct {
	Casa     string `yaml:"casa"`
	Cantidad string `yaml:"cantidad"`
	Unidad   string `yaml:"unidad"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Listen:             ":5000",
		GateTimeoutSeconds: 30,
		PopupPauseMs:       500,
		TabRetryPauseMs:    1000,
		Defaults: DefaultsConfig{
			Casa:     "PC13",
			Cantidad: "100",
			Unidad:   "HL",
		},
	}
}

// Load reads path over the defaults. An empty path returns the defaults;
// a missing file is an error so a typo'd --config does not silently run
// with defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) GateTimeout() time.Duration {
	return time.Duration(c.GateTimeoutSeconds) * time.Second
}

func (c *Config) PopupPause() time.Duration {
	return time.Duration(c.PopupPauseMs) * time.Millisecond
}

func (c *Config) TabRetryPause() time.Duration {
	return time.Duration(c.TabRetryPauseMs) * time.Millisecond
}
