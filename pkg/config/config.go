// Package config handles loading and saving sp configuration.
//
// Configuration follows the XDG Base Directory specification:
//   - Config: ~/.config/sp/config.yaml
//
// The API base URL resolves in order: SP_API_URL env var, config file,
// built-in default.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultAPIURL is used when neither the env var nor the config file
// provides a base URL.
const DefaultAPIURL = "http://localhost:8000"

// EnvAPIURL is the environment variable that overrides the API base URL.
const EnvAPIURL = "SP_API_URL"

// APIConfig holds settings for the roadmap API connection.
type APIConfig struct {
	BaseURL        string `yaml:"base_url,omitempty"`
	TimeoutSeconds int    `yaml:"timeout_seconds,omitempty"`
}

// UIConfig holds UI preference settings.
type UIConfig struct {
	DefaultTab string `yaml:"default_tab,omitempty"` // roadmap, insights
}

// Config is the top-level configuration for sp.
type Config struct {
	API APIConfig `yaml:"api,omitempty"`
	UI  UIConfig  `yaml:"ui,omitempty"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		API: APIConfig{
			BaseURL:        DefaultAPIURL,
			TimeoutSeconds: 15,
		},
		UI: UIConfig{
			DefaultTab: "roadmap",
		},
	}
}

// ConfigDir returns the XDG config directory for sp.
func ConfigDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "sp")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "sp")
}

// ConfigPath returns the full path to config.yaml.
func ConfigPath() string {
	dir := ConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// Load reads the config file from the XDG config directory and applies the
// SP_API_URL override. Returns DefaultConfig if the file doesn't exist.
func Load() (Config, error) {
	path := ConfigPath()
	if path == "" {
		return applyEnv(DefaultConfig()), nil
	}
	cfg, err := LoadFrom(path)
	return applyEnv(cfg), err
}

// LoadFrom reads config from a specific path without applying env overrides.
// Returns DefaultConfig if the file doesn't exist.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.API.BaseURL == "" {
		cfg.API.BaseURL = DefaultAPIURL
	}
	if cfg.API.TimeoutSeconds <= 0 {
		cfg.API.TimeoutSeconds = 15
	}

	return cfg, nil
}

// Save writes the config to the XDG config directory, creating it if needed.
func Save(cfg Config) error {
	path := ConfigPath()
	if path == "" {
		return fmt.Errorf("cannot determine config directory")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

func applyEnv(cfg Config) Config {
	if v := strings.TrimSpace(os.Getenv(EnvAPIURL)); v != "" {
		cfg.API.BaseURL = strings.TrimRight(v, "/")
	}
	return cfg
}
