package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if err := cfg.Validate(); err != nil {
		t.Errorf("Default config should be valid: %v", err)
	}
	if cfg.LLM.Model == "" {
		t.Error("Expected a default model")
	}
	if cfg.Analysis.MaxIssues < 3 || cfg.Analysis.MaxIssues > 8 {
		t.Errorf("Default max_issues out of contract range: %d", cfg.Analysis.MaxIssues)
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load with no config file should succeed: %v", err)
	}

	if cfg.LLM.Provider != "nvidia" {
		t.Errorf("Expected default provider, got %s", cfg.LLM.Provider)
	}
}

func TestLoad_FromFile(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "config_test")
	if err != nil {
		t.Fatalf("Failed to create temp directory: %v", err)
	}
	defer os.RemoveAll(tempDir)

	configPath := filepath.Join(tempDir, "a11yaudit.yaml")
	content := `llm:
  provider: openai
  model: gpt-4o-mini
fetch:
  timeout_seconds: 5
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.LLM.Provider != "openai" {
		t.Errorf("Expected provider openai, got %s", cfg.LLM.Provider)
	}
	if cfg.LLM.Model != "gpt-4o-mini" {
		t.Errorf("Expected model gpt-4o-mini, got %s", cfg.LLM.Model)
	}
	if cfg.Fetch.TimeoutSecs != 5 {
		t.Errorf("Expected fetch timeout 5, got %d", cfg.Fetch.TimeoutSecs)
	}
	// Unset sections keep their defaults.
	if cfg.Analysis.MaxIssues != 8 {
		t.Errorf("Expected default max_issues 8, got %d", cfg.Analysis.MaxIssues)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid defaults", func(c *Config) {}, false},
		{"bad provider", func(c *Config) { c.LLM.Provider = "mystery" }, true},
		{"negative temperature", func(c *Config) { c.LLM.Temperature = -1 }, true},
		{"zero max tokens", func(c *Config) { c.LLM.MaxTokens = 0 }, true},
		{"zero fetch timeout", func(c *Config) { c.Fetch.TimeoutSecs = 0 }, true},
		{"max issues too low", func(c *Config) { c.Analysis.MaxIssues = 1 }, true},
		{"max issues too high", func(c *Config) { c.Analysis.MaxIssues = 20 }, true},
	}

	for _, test := range tests {
		cfg := DefaultConfig()
		test.mutate(cfg)

		err := cfg.Validate()
		if test.wantErr && err == nil {
			t.Errorf("%s: expected validation error", test.name)
		}
		if !test.wantErr && err != nil {
			t.Errorf("%s: unexpected error: %v", test.name, err)
		}
	}
}

func TestSave_OmitsAPIKey(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "config_save_test")
	if err != nil {
		t.Fatalf("Failed to create temp directory: %v", err)
	}
	defer os.RemoveAll(tempDir)

	cfg := DefaultConfig()
	cfg.LLM.APIKey = "super-secret"

	path := filepath.Join(tempDir, "out.yaml")
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read saved config: %v", err)
	}
	if string(data) == "" {
		t.Fatal("Expected config content")
	}
	if strings.Contains(string(data), "super-secret") {
		t.Error("API key must not be written to disk")
	}
}
