package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

// Config represents ~/.config/ommbake/config.yaml.
// Pointer fields distinguish "not set" from zero values.
type Config struct {
	DebugSync     *bool  `yaml:"debug_sync"`
	LogLevel      string `yaml:"log_level"`
	LogFormat     string `yaml:"log_format"`
	ServerAddress string `yaml:"server_address"`
}

func configPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "ommbake", "config.yaml")
}

// LoadConfig reads path. A missing file yields a zero Config.
func LoadConfig(path string) (Config, error) {
	if path == "" {
		return Config{}, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Config{}, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// applyConfig fills root flags the user did not set explicitly.
func applyConfig(c *cli.Command, cfg Config) {
	if cfg.DebugSync != nil && !c.IsSet("debug-sync") {
		debugSync = *cfg.DebugSync
	}
	if cfg.LogLevel != "" && !c.IsSet("log-level") {
		logLevel = cfg.LogLevel
	}
	if cfg.LogFormat != "" && !c.IsSet("log-format") {
		logFormat = cfg.LogFormat
	}
}

func applyServeConfig(c *cli.Command, cfg Config, addr *string) {
	if cfg.ServerAddress != "" && !c.IsSet("addr") {
		*addr = cfg.ServerAddress
	}
}
