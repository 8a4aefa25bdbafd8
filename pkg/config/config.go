package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	DefaultModel       = "gpt-4"
	DefaultAPIBase     = "https://api.openai.com/v1"
	DefaultMemoryFile  = "agent_memory.txt"
	DefaultMemoryLines = 20
	DefaultMaxTokens   = 500
	DefaultTemperature = 0.7
	DefaultLogLevel    = "warn"
)

type Config struct {
	Agent    AgentConfig    `json:"agent"`
	Provider ProviderConfig `json:"provider"`
	Memory   MemoryConfig   `json:"memory"`
	Log      LogConfig      `json:"log"`
}

type AgentConfig struct {
	Model       string  `json:"model"`
	MaxTokens   int     `json:"max_tokens"`
	Temperature float64 `json:"temperature"`
}

type ProviderConfig struct {
	APIKey      string        `json:"api_key" env:"OPENAI_API_KEY"`
	APIBase     string        `json:"api_base" env:"OPENAI_API_BASE"`
	HTTPTimeout time.Duration `json:"http_timeout" env:"OPENAI_HTTP_TIMEOUT"`
}

type MemoryConfig struct {
	File  string `json:"file" env:"AGENT_MEMORY_FILE"`
	Lines int    `json:"lines"`
}

type LogConfig struct {
	Level string `json:"level" env:"MINAGENT_LOG_LEVEL"`
}

func DefaultConfig() *Config {
	return &Config{
		Agent: AgentConfig{
			Model:       DefaultModel,
			MaxTokens:   DefaultMaxTokens,
			Temperature: DefaultTemperature,
		},
		Provider: ProviderConfig{
			APIBase: DefaultAPIBase,
		},
		Memory: MemoryConfig{
			File:  DefaultMemoryFile,
			Lines: DefaultMemoryLines,
		},
		Log: LogConfig{
			Level: DefaultLogLevel,
		},
	}
}

// LoadConfig returns the defaults overlaid with any environment overrides.
func LoadConfig() (*Config, error) {
	cfg := DefaultConfig()
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}

// Overrides carries explicit values from the command line. Empty fields
// leave the loaded configuration untouched.
type Overrides struct {
	Model  string
	APIKey string
}

func (c *Config) Apply(o Overrides) {
	if model := strings.TrimSpace(o.Model); model != "" {
		c.Agent.Model = model
	}
	if key := strings.TrimSpace(o.APIKey); key != "" {
		c.Provider.APIKey = key
	}
}

func (c *Config) GetAPIKey() string {
	return strings.TrimSpace(c.Provider.APIKey)
}

func (c *Config) GetAPIBase() string {
	if base := strings.TrimSpace(c.Provider.APIBase); base != "" {
		return base
	}
	return DefaultAPIBase
}

func (c *Config) MemoryPath() string {
	path := strings.TrimSpace(c.Memory.File)
	if path == "" {
		path = DefaultMemoryFile
	}
	return expandHome(path)
}

func expandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	if path == "~" {
		return home
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(home, path[2:])
	}
	return path
}
