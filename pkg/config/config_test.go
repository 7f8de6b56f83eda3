package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFromMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.API.BaseURL != DefaultAPIURL {
		t.Errorf("expected default base URL, got %q", cfg.API.BaseURL)
	}
	if cfg.UI.DefaultTab != "roadmap" {
		t.Errorf("expected default tab roadmap, got %q", cfg.UI.DefaultTab)
	}
}

func TestLoadFromParsesYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := "api:\n  base_url: https://roadmap.example.com\n  timeout_seconds: 30\nui:\n  default_tab: insights\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.API.BaseURL != "https://roadmap.example.com" {
		t.Errorf("base URL = %q", cfg.API.BaseURL)
	}
	if cfg.API.TimeoutSeconds != 30 {
		t.Errorf("timeout = %d", cfg.API.TimeoutSeconds)
	}
	if cfg.UI.DefaultTab != "insights" {
		t.Errorf("default tab = %q", cfg.UI.DefaultTab)
	}
}

func TestLoadFromInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("api: [not a map"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadFrom(path); err == nil {
		t.Error("expected parse error for invalid YAML")
	}
}

func TestEnvOverridesBaseURL(t *testing.T) {
	t.Setenv(EnvAPIURL, "https://api.example.com/")
	cfg := applyEnv(DefaultConfig())
	// Trailing slash is stripped so path joins stay clean.
	if cfg.API.BaseURL != "https://api.example.com" {
		t.Errorf("base URL = %q", cfg.API.BaseURL)
	}
}
