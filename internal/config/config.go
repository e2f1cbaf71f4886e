// Package config loads server settings from defaults, an optional TOML file
// and the environment, in that order.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// DefaultFile is the config file looked up in the working directory when no
// explicit path is given.
const DefaultFile = "todoapp.toml"

type Config struct {
	Addr         string `toml:"addr"`
	StoreBackend string `toml:"store_backend"`
	SQLitePath   string `toml:"sqlite_path"`
	LogLevel     string `toml:"log_level"`
}

func defaults() *Config {
	return &Config{
		Addr:         ":8080",
		StoreBackend: "memory",
		SQLitePath:   "./todoapp.db",
		LogLevel:     "info",
	}
}

// Load builds the configuration. A missing file is fine; a present but
// unparsable one is not.
func Load(path string) (*Config, error) {
	cfg := defaults()

	if path == "" {
		path = DefaultFile
	}
	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", path, err)
		}
	}

	loadFromEnv(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadFromEnv(cfg *Config) {
	if v := os.Getenv("TODOAPP_ADDR"); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv("TODOAPP_STORE_BACKEND"); v != "" {
		cfg.StoreBackend = v
	}
	if v := os.Getenv("TODOAPP_SQLITE_PATH"); v != "" {
		cfg.SQLitePath = v
	}
	if v := os.Getenv("TODOAPP_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
}

func (c *Config) validate() error {
	switch c.StoreBackend {
	case "memory", "sqlite":
		return nil
	default:
		return fmt.Errorf("unknown store backend %q", c.StoreBackend)
	}
}
