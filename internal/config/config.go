// Package config handles the global configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the configuration stored in ~/.config/bibgulp/config.yml.
// Every field is optional; the zero value gives sensible behavior.
type Config struct {
	// WatchDir is the default download directory to watch when the CLI
	// gets no argument.
	WatchDir string `yaml:"watch_dir,omitempty"`
	// SettleMS is how long to wait after a file appears before parsing
	// it, giving the browser time to finish writing. Default 300.
	SettleMS int `yaml:"settle_ms,omitempty"`
	// Clipboard selects the clipboard helper: auto, xsel, xclip, pbcopy,
	// or off. Default auto.
	Clipboard string `yaml:"clipboard,omitempty"`
	// History disables the cleaned-record history database when false.
	History *bool `yaml:"history,omitempty"`
}

const (
	// ConfigDir is the directory name under XDG_CONFIG_HOME.
	ConfigDir = "bibgulp"
	// ConfigFile is the config file name.
	ConfigFile = "config.yml"

	defaultSettle = 300 * time.Millisecond
)

// cache holds the loaded config for the life of the process.
var cache *Config

// Path returns the config file location. The BIBGULP_CONFIG environment
// variable overrides it; otherwise XDG_CONFIG_HOME is respected with
// ~/.config as the fallback.
func Path() string {
	if p := os.Getenv("BIBGULP_CONFIG"); p != "" {
		return p
	}
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, ConfigDir, ConfigFile)
}

// Load reads the global configuration. A missing file is not an error;
// it yields an empty config. The result is cached.
func Load() (*Config, error) {
	if cache != nil {
		return cache, nil
	}

	path := Path()
	if path == "" {
		return &Config{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cache = &Config{}
			return cache, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.WatchDir != "" {
		cfg.WatchDir = ExpandTilde(cfg.WatchDir)
	}

	cache = &cfg
	return cache, nil
}

// ResetCache clears the cached config. Useful for testing.
func ResetCache() {
	cache = nil
}

// Settle returns the configured settle delay.
func (c *Config) Settle() time.Duration {
	if c.SettleMS <= 0 {
		return defaultSettle
	}
	return time.Duration(c.SettleMS) * time.Millisecond
}

// HistoryEnabled reports whether the history database should be used.
// Defaults to true when unset.
func (c *Config) HistoryEnabled() bool {
	return c.History == nil || *c.History
}

// ExpandTilde expands a leading ~ to the user's home directory. Paths not
// starting with ~ are returned unchanged.
func ExpandTilde(path string) string {
	if len(path) == 0 || path[0] != '~' {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
