package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

type Config struct {
	LLM      LLMConfig      `mapstructure:"llm" yaml:"llm"`
	Fetch    FetchConfig    `mapstructure:"fetch" yaml:"fetch"`
	Analysis AnalysisConfig `mapstructure:"analysis" yaml:"analysis"`
}

type LLMConfig struct {
	Provider    string  `mapstructure:"provider" yaml:"provider"`
	Model       string  `mapstructure:"model" yaml:"model"`
	APIKey      string  `mapstructure:"api_key" yaml:"api_key"`
	BaseURL     string  `mapstructure:"base_url" yaml:"base_url"`
	Temperature float64 `mapstructure:"temperature" yaml:"temperature"`
	MaxTokens   int     `mapstructure:"max_tokens" yaml:"max_tokens"`
	TimeoutSecs int     `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
}

type FetchConfig struct {
	TimeoutSecs    int    `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
	MaxBodySizeMB  int    `mapstructure:"max_body_size_mb" yaml:"max_body_size_mb"`
	UserAgent      string `mapstructure:"user_agent" yaml:"user_agent"`
	FollowRedirect bool   `mapstructure:"follow_redirects" yaml:"follow_redirects"`
}

type AnalysisConfig struct {
	MaxIssues      int `mapstructure:"max_issues" yaml:"max_issues"`
	HTMLExcerptKB  int `mapstructure:"html_excerpt_kb" yaml:"html_excerpt_kb"`
	MaxScreenshots int `mapstructure:"max_screenshots" yaml:"max_screenshots"`
}

func Load(configPath string) (*Config, error) {
	config := DefaultConfig()

	v := viper.New()
	v.SetConfigType("yaml")

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName(".a11yaudit")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME")
	}

	v.SetEnvPrefix("A11Y")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if config.LLM.APIKey == "" {
		config.LLM.APIKey = os.Getenv("A11Y_LLM_API_KEY")
	}

	return config, nil
}

func DefaultConfig() *Config {
	return &Config{
		LLM: LLMConfig{
			Provider:    "nvidia",
			Model:       "meta/llama-3.1-70b-instruct",
			Temperature: 0.3,
			MaxTokens:   2000,
			TimeoutSecs: 30,
		},
		Fetch: FetchConfig{
			TimeoutSecs:    15,
			MaxBodySizeMB:  5,
			UserAgent:      "a11y-auditor/1.0 (+https://github.com/a11yauditor/a11y-auditor)",
			FollowRedirect: true,
		},
		Analysis: AnalysisConfig{
			MaxIssues:      8,
			HTMLExcerptKB:  8,
			MaxScreenshots: 4,
		},
	}
}

func (c *Config) Validate() error {
	if err := c.validateLLM(); err != nil {
		return err
	}
	if err := c.validateFetch(); err != nil {
		return err
	}
	return c.validateAnalysis()
}

func (c *Config) validateLLM() error {
	switch c.LLM.Provider {
	case "nvidia", "openai", "openrouter", "anthropic", "":
	default:
		return fmt.Errorf("llm.provider %q is not supported", c.LLM.Provider)
	}
	if c.LLM.Temperature < 0 || c.LLM.Temperature > 2 {
		return fmt.Errorf("llm.temperature must be between 0 and 2")
	}
	if c.LLM.MaxTokens <= 0 {
		return fmt.Errorf("llm.max_tokens must be positive")
	}
	if c.LLM.TimeoutSecs <= 0 {
		return fmt.Errorf("llm.timeout_seconds must be positive")
	}
	return nil
}

func (c *Config) validateFetch() error {
	if c.Fetch.TimeoutSecs <= 0 {
		return fmt.Errorf("fetch.timeout_seconds must be positive")
	}
	if c.Fetch.MaxBodySizeMB <= 0 {
		return fmt.Errorf("fetch.max_body_size_mb must be positive")
	}
	return nil
}

func (c *Config) validateAnalysis() error {
	if c.Analysis.MaxIssues < 3 || c.Analysis.MaxIssues > 8 {
		return fmt.Errorf("analysis.max_issues must be between 3 and 8")
	}
	if c.Analysis.HTMLExcerptKB <= 0 {
		return fmt.Errorf("analysis.html_excerpt_kb must be positive")
	}
	if c.Analysis.MaxScreenshots <= 0 {
		return fmt.Errorf("analysis.max_screenshots must be positive")
	}
	return nil
}

func (c *Config) Save(path string) error {
	v := viper.New()
	v.SetConfigType("yaml")

	// The API key stays in the environment, never on disk.
	llm := c.LLM
	llm.APIKey = ""

	v.Set("llm", llm)
	v.Set("fetch", c.Fetch)
	v.Set("analysis", c.Analysis)

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
