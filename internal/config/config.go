// Package config loads and watches mailstorm configuration.
//
// Configuration comes from an optional file (TOML or YAML, chosen by
// extension) overlaid with MAILSTORM_-prefixed environment variables.
// A missing file is not an error; defaults apply.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Config is the full mailstorm configuration.
type Config struct {
	// Logging configures log output.
	Logging LoggingConfig `toml:"logging" yaml:"logging"`

	// Dispatch configures the dispatch client.
	Dispatch DispatchConfig `toml:"dispatch" yaml:"dispatch"`

	// Launcher configures the platform probe chain.
	Launcher LauncherConfig `toml:"launcher" yaml:"launcher"`

	// Plugins configures Lua probe plugins.
	Plugins PluginsConfig `toml:"plugins" yaml:"plugins"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	// Level is the minimum log level (debug, info, warn, error).
	Level string `toml:"level" yaml:"level"`
}

// DispatchConfig configures the dispatch client.
type DispatchConfig struct {
	// Agent is the name the dispatch client registers under.
	Agent string `toml:"agent" yaml:"agent"`

	// Fallback is the fallback composer agent name. Empty means the
	// previously active agent is captured on activation.
	Fallback string `toml:"fallback" yaml:"fallback"`
}

// LauncherConfig configures the probe chain.
type LauncherConfig struct {
	// DisplayHelper overrides the URI-open helper for the display probe.
	DisplayHelper string `toml:"display_helper" yaml:"display_helper"`

	// Probes lists built-in probe names in priority order.
	// Empty means the default order (display, darwin, windows).
	Probes []string `toml:"probes" yaml:"probes"`
}

// PluginsConfig configures Lua probe plugins.
type PluginsConfig struct {
	// Enabled turns plugin loading on.
	Enabled bool `toml:"enabled" yaml:"enabled"`

	// Dir is the directory scanned for *.lua probe plugins.
	Dir string `toml:"dir" yaml:"dir"`
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Logging: LoggingConfig{
			Level: "info",
		},
		Dispatch: DispatchConfig{
			Agent: "mailclient",
		},
	}
}

// Load reads configuration from path, overlaying defaults.
// A missing file returns the defaults without error. An empty path
// skips file loading entirely.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		cfg.applyEnv()
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnv()
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config file %s: %w", path, err)
	}

	switch filepath.Ext(path) {
	case ".toml":
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing %s: %w", path, err)
		}
	default:
		return cfg, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}

	cfg.applyEnv()
	return cfg, nil
}

// applyEnv overlays MAILSTORM_ environment variables onto the config.
// Environment values override file values.
func (c *Config) applyEnv() {
	if v, ok := os.LookupEnv("MAILSTORM_LOG_LEVEL"); ok {
		c.Logging.Level = v
	}
	if v, ok := os.LookupEnv("MAILSTORM_AGENT"); ok {
		c.Dispatch.Agent = v
	}
	if v, ok := os.LookupEnv("MAILSTORM_FALLBACK_AGENT"); ok {
		c.Dispatch.Fallback = v
	}
	if v, ok := os.LookupEnv("MAILSTORM_DISPLAY_HELPER"); ok {
		c.Launcher.DisplayHelper = v
	}
	if v, ok := os.LookupEnv("MAILSTORM_PLUGIN_DIR"); ok {
		c.Plugins.Dir = v
		c.Plugins.Enabled = true
	}
}
