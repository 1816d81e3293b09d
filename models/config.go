// Package models defines the data structures shared across the analysis pipeline.
package models

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// LLMConfig holds connection settings for the language-model service.
// An empty APIKey is a valid state: every consumer must check
// availability and use its fallback path.
type LLMConfig struct {
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`
	BaseURL string `yaml:"base_url"`
}

// Config holds runtime configuration for the auditor.
// Values come from an optional YAML file with environment overrides
// for the LLM credentials.
type Config struct {
	ListenAddr      string `yaml:"listen_addr"`
	MaxPages        int    `yaml:"max_pages"`
	WorkerCount     int    `yaml:"worker_count"`
	CrawlTimeoutSec int    `yaml:"crawl_timeout_sec"`
	FetchTimeoutSec int    `yaml:"fetch_timeout_sec"`
	StorePath       string `yaml:"store_path"`
	LogLevel        string `yaml:"log_level"`

	LLM LLMConfig `yaml:"llm"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		ListenAddr:      ":8080",
		MaxPages:        5,
		WorkerCount:     4,
		CrawlTimeoutSec: 5,
		FetchTimeoutSec: 12,
		StorePath:       "zeo.db",
		LogLevel:        "info",
		LLM: LLMConfig{
			Model:   "gpt-5-nano",
			BaseURL: "https://api.openai.com/v1",
		},
	}
}

// LoadConfig reads configuration from the given YAML file, falling back
// to defaults when the file does not exist. Environment variables
// OPENAI_API_KEY, OPENAI_MODEL and OPENAI_BASE_URL override the LLM
// section in all cases.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err == nil {
			if err := yaml.Unmarshal(data, config); err != nil {
				return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		config.LLM.APIKey = v
	}
	if v := os.Getenv("OPENAI_MODEL"); v != "" {
		config.LLM.Model = v
	}
	if v := os.Getenv("OPENAI_BASE_URL"); v != "" {
		config.LLM.BaseURL = v
	}

	if config.MaxPages <= 0 {
		config.MaxPages = 5
	}
	if config.WorkerCount <= 0 {
		config.WorkerCount = 4
	}

	return config, nil
}

// CrawlTimeout returns the per-request timeout used during link discovery.
func (c *Config) CrawlTimeout() time.Duration {
	return time.Duration(c.CrawlTimeoutSec) * time.Second
}

// FetchTimeout returns the timeout used for full content extraction fetches.
func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutSec) * time.Second
}
