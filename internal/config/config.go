// Package config loads application settings from defaults, an optional
// YAML file and environment overrides, in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/MihkelHunter/mkTasks/internal/log"
)

// Environment overrides.
const (
	EnvAddr        = "TASKS_ADDR"
	EnvStoreDriver = "TASKS_STORE_DRIVER"
	EnvDBPath      = "TASKS_DB_PATH"
	EnvDBDSN       = "TASKS_DB_DSN"
)

// Config is the application configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Storage StorageConfig `yaml:"storage"`
	Log     log.Config    `yaml:"log"`
}

// ServerConfig configures the web front end.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// StorageConfig selects the key-value backend.
type StorageConfig struct {
	// Driver: sqlite, mysql, memory
	Driver string `yaml:"driver"`
	// Path of the SQLite database file.
	Path string `yaml:"path"`
	// DSN for MySQL, e.g. user:pass@tcp(127.0.0.1:3306)/tasks
	DSN string `yaml:"dsn"`
}

// NewConfig returns the defaults. The SQLite file lives under ~/.todoapp.
func NewConfig() *Config {
	path := "tasks.db"
	if home, err := os.UserHomeDir(); err == nil {
		path = filepath.Join(home, ".todoapp", "tasks.db")
	}
	return &Config{
		Server:  ServerConfig{Addr: ":8080"},
		Storage: StorageConfig{Driver: "sqlite", Path: path},
		Log:     log.NewConfigFromEnv(),
	}
}

// Load applies the YAML file at path (if path is non-empty and the file
// exists) and then environment overrides on top of the defaults.
func Load(path string) (*Config, error) {
	cfg := NewConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}
	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvAddr); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv(EnvStoreDriver); v != "" {
		c.Storage.Driver = v
	}
	if v := os.Getenv(EnvDBPath); v != "" {
		c.Storage.Path = v
	}
	if v := os.Getenv(EnvDBDSN); v != "" {
		c.Storage.DSN = v
	}
}
