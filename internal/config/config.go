// Package config loads the YAML service configuration.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the service configuration. Zero fields take defaults after
// unmarshal.
type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
	} `yaml:"server"`

	Board struct {
		// Store selects the sparse store strategy: "window" or "quadrant".
		Store string `yaml:"store"`
		// HexSize is the hexagon circumradius for world coordinate queries.
		HexSize float64 `yaml:"hex_size"`
	} `yaml:"board"`

	Watch struct {
		Enabled    bool `yaml:"enabled"`
		DebounceMS int  `yaml:"debounce_ms"`
	} `yaml:"watch"`

	Database struct {
		Path string `yaml:"path"`
	} `yaml:"database"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	var cfg Config
	cfg.Server.Host = "127.0.0.1"
	cfg.Server.Port = 8420
	cfg.Board.Store = "window"
	cfg.Board.HexSize = 1
	cfg.Watch.Enabled = true
	cfg.Watch.DebounceMS = 250
	cfg.Database.Path = "data/hexscope.db"
	return cfg
}

// Load reads the config file at path, applying defaults to unset fields.
// An empty path yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return cfg, fmt.Errorf("config %s: invalid port %d", path, cfg.Server.Port)
	}
	if cfg.Board.HexSize <= 0 {
		return cfg, fmt.Errorf("config %s: hex_size must be positive", path)
	}
	return cfg, nil
}
