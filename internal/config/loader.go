package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Load discovers a config file, merges it with defaults, applies environment
// variable overrides, validates the result, and returns the final config.
func Load() (*Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getting working directory: %w", err)
	}
	return LoadFrom(cwd)
}

// LoadFrom loads config using dir as the root for file discovery.
func LoadFrom(dir string) (*Config, error) {
	cfg := DefaultConfig()

	path := discoverConfigPath(dir)
	if path != "" {
		override, err := loadFromFile(path)
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", path, err)
		}
		merge(&cfg, override)
	}

	applyEnvOverrides(&cfg)
	cfg.Source.Dir = ExpandHome(cfg.Source.Dir)
	cfg.Log.File = ExpandHome(cfg.Log.File)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return &cfg, nil
}

// discoverConfigPath returns the first config file on the discovery chain, or
// "" when none exists.
func discoverConfigPath(dir string) string {
	candidates := []string{
		filepath.Join(dir, "runlogs.yaml"),
		filepath.Join(dir, "runlogs.toml"),
	}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates,
			filepath.Join(home, ".config", "runlogs", "config.yaml"),
			filepath.Join(home, ".config", "runlogs", "config.toml"),
		)
	}
	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			return c
		}
	}
	return ""
}

// loadFromFile reads a YAML or TOML config file, chosen by extension.
func loadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}

	var cfg Config
	switch filepath.Ext(path) {
	case ".toml":
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return nil, fmt.Errorf("parsing TOML: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parsing YAML: %w", err)
		}
	}

	return &cfg, nil
}

// ExpandHome replaces a leading "~/" with the user's home directory.
func ExpandHome(p string) string {
	if !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, p[2:])
}

// merge overlays override onto base. Scalars override when non-zero,
// pointer-to-bool fields when non-nil.
func merge(base *Config, override *Config) {
	// Source
	if override.Source.Kind != "" {
		base.Source.Kind = override.Source.Kind
	}
	if override.Source.Dir != "" {
		base.Source.Dir = override.Source.Dir
	}
	if override.Source.URL != "" {
		base.Source.URL = override.Source.URL
	}
	if override.Source.Timeout != 0 {
		base.Source.Timeout = override.Source.Timeout
	}
	if override.Source.RetryMax != 0 {
		base.Source.RetryMax = override.Source.RetryMax
	}

	// Logs
	if override.Logs.PageSize != 0 {
		base.Logs.PageSize = override.Logs.PageSize
	}
	if override.Logs.FollowInterval != 0 {
		base.Logs.FollowInterval = override.Logs.FollowInterval
	}
	if override.Logs.Template != "" {
		base.Logs.Template = override.Logs.Template
	}
	if override.Logs.Follow != nil {
		base.Logs.Follow = override.Logs.Follow
	}

	// Catalog
	if override.Catalog.RefreshInterval != 0 {
		base.Catalog.RefreshInterval = override.Catalog.RefreshInterval
	}

	// UI
	if override.UI.LogScrollSpeed != 0 {
		base.UI.LogScrollSpeed = override.UI.LogScrollSpeed
	}
	if override.UI.AltScreen != nil {
		base.UI.AltScreen = override.UI.AltScreen
	}

	// Log
	if override.Log.Level != "" {
		base.Log.Level = override.Log.Level
	}
	if override.Log.File != "" {
		base.Log.File = override.Log.File
	}
}

// applyEnvOverrides applies RUNLOGS_* environment variables on top of the config.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("RUNLOGS_SOURCE"); v != "" {
		cfg.Source.Kind = v
	}
	if v := os.Getenv("RUNLOGS_DIR"); v != "" {
		cfg.Source.Dir = v
	}
	if v := os.Getenv("RUNLOGS_URL"); v != "" {
		cfg.Source.URL = v
	}
	if v := os.Getenv("RUNLOGS_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("RUNLOGS_PAGE_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Logs.PageSize = n
		} else {
			fmt.Fprintf(os.Stderr, "warning: RUNLOGS_PAGE_SIZE=%q is not a valid integer, ignoring\n", v)
		}
	}
}
