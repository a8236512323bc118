// Package config handles loading taskdeck configuration files.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/amonks/taskdeck/internal/paths"
)

// Config represents the taskdeck config.toml file.
type Config struct {
	// StateDir overrides where task data is persisted.
	StateDir string `toml:"state-dir"`

	Auth     Auth     `toml:"auth"`
	Defaults Defaults `toml:"defaults"`
}

// Auth holds the demo login credential. This is a demo gate, not a
// security boundary; the password is stored in plain text.
type Auth struct {
	Username string `toml:"username"`
	Password string `toml:"password"`

	// Name is the display name recorded on activity entries.
	Name string `toml:"name"`
}

// Defaults holds default values applied to new tasks.
type Defaults struct {
	Priority string `toml:"priority"`
	Category string `toml:"category"`
}

// Load reads the config file, applying defaults for anything unset.
// A missing file yields the default config.
func Load() (*Config, error) {
	path, err := paths.DefaultConfigPath()
	if err != nil {
		return nil, err
	}

	cfg := &Config{}
	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config file %s: %w", path, err)
	}
	if err == nil {
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	applyDefaults(cfg)
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.StateDir == "" {
		dir, err := paths.DefaultStateDir()
		if err == nil {
			cfg.StateDir = dir
		}
	}
	if cfg.Auth.Username == "" {
		cfg.Auth.Username = "admin"
	}
	if cfg.Auth.Password == "" {
		cfg.Auth.Password = "123"
	}
	if cfg.Auth.Name == "" {
		cfg.Auth.Name = "Administrator"
	}
	if cfg.Defaults.Priority == "" {
		cfg.Defaults.Priority = "Medium"
	}
	if cfg.Defaults.Category == "" {
		cfg.Defaults.Category = "Work"
	}
}
