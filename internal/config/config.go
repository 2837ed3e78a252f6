// Package config loads the grsbpl command-line settings.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// EnvPath names the environment variable that overrides the config path.
const EnvPath = "GRSBPL_CONFIG"

// Config holds the settings shared by the CLI subcommands.
type Config struct {
	Color       bool   `yaml:"color"`
	TabWidth    int    `yaml:"tab_width"`
	MaxWidth    int    `yaml:"max_width"`
	HistoryFile string `yaml:"history_file"`
	JSON        bool   `yaml:"json"`
}

// Default returns the settings used when no config file exists.
func Default() Config {
	cfg := Config{
		Color:    true,
		TabWidth: 4,
		MaxWidth: 120,
	}
	if home, err := os.UserHomeDir(); err == nil {
		cfg.HistoryFile = filepath.Join(home, ".grsbpl_history")
	}
	return cfg
}

// Paths returns the candidate config files in lookup order.
func Paths() []string {
	if p := os.Getenv(EnvPath); p != "" {
		return []string{p}
	}
	paths := []string{".grsbpl.yaml"}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "grsbpl", "config.yaml"))
	}
	return paths
}

// Load reads the first existing file from Paths over the defaults.
func Load() (Config, error) {
	for _, p := range Paths() {
		cfg, err := ReadFile(p)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		return cfg, err
	}
	return Default(), nil
}

// ReadFile reads the config at path over the defaults. A missing file is
// reported as an error wrapping os.ErrNotExist.
func ReadFile(path string) (Config, error) {
	cfg := Default()
	bs, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(bs, &cfg); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	if cfg.TabWidth <= 0 {
		return cfg, fmt.Errorf("config %s: tab_width must be positive, got %d", path, cfg.TabWidth)
	}
	if cfg.MaxWidth < 0 {
		return cfg, fmt.Errorf("config %s: max_width must not be negative, got %d", path, cfg.MaxWidth)
	}
	return cfg, nil
}
