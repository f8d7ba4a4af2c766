// Package config handles configuration loading and validation for librarian.
package config

import (
	"fmt"
	"net/url"
	"os"
	"slices"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/colonyops/librarian/internal/core/styles"
)

// Config holds the application configuration.
type Config struct {
	Server  ServerConfig `yaml:"server"`
	UI      UIConfig     `yaml:"ui"`
	DataDir string       `yaml:"-"` // set by caller, not from config file
}

// ServerConfig points the client at the librarian service.
type ServerConfig struct {
	// URL is the base URL of the librarian API, e.g. http://127.0.0.1:5000.
	URL string `yaml:"url"`
	// TimeoutSeconds bounds a single ask request. Answering can take a
	// while, so the default is generous.
	TimeoutSeconds int `yaml:"timeout_seconds"`
}

// UIConfig holds presentation options.
type UIConfig struct {
	Theme string `yaml:"theme"`
	// ToastSeconds is how long a transient notification stays on screen.
	ToastSeconds int `yaml:"toast_seconds"`
}

// DefaultConfig returns the configuration used when no config file exists.
func DefaultConfig() Config {
	return Config{
		Server: ServerConfig{
			URL:            "http://127.0.0.1:5000",
			TimeoutSeconds: 120,
		},
		UI: UIConfig{
			Theme:        "tokyo-night",
			ToastSeconds: 5,
		},
	}
}

// Load reads the config file at configPath, falling back to defaults when the
// file does not exist.
func Load(configPath, dataDir string) (*Config, error) {
	cfg := DefaultConfig()
	cfg.DataDir = dataDir

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}

			// Re-set dataDir since Unmarshal may have cleared it
			cfg.DataDir = dataDir
		}
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Server.URL == "" {
		c.Server.URL = defaults.Server.URL
	}
	if c.Server.TimeoutSeconds == 0 {
		c.Server.TimeoutSeconds = defaults.Server.TimeoutSeconds
	}
	if c.UI.Theme == "" {
		c.UI.Theme = defaults.UI.Theme
	}
	if c.UI.ToastSeconds == 0 {
		c.UI.ToastSeconds = defaults.UI.ToastSeconds
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	u, err := url.Parse(c.Server.URL)
	if err != nil {
		return fmt.Errorf("server.url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("server.url: unsupported scheme %q", u.Scheme)
	}
	if c.Server.TimeoutSeconds < 0 {
		return fmt.Errorf("server.timeout_seconds must not be negative")
	}
	if !slices.Contains(styles.ThemeNames(), c.UI.Theme) {
		return fmt.Errorf("ui.theme: unknown theme %q (available: %s)",
			c.UI.Theme, strings.Join(styles.ThemeNames(), ", "))
	}
	if c.UI.ToastSeconds < 0 {
		return fmt.Errorf("ui.toast_seconds must not be negative")
	}
	return nil
}

// Timeout returns the ask timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.Server.TimeoutSeconds) * time.Second
}

// ToastTTL returns how long a toast stays visible.
func (c *Config) ToastTTL() time.Duration {
	return time.Duration(c.UI.ToastSeconds) * time.Second
}
