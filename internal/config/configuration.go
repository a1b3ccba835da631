package config

import (
	"gopkg.in/yaml.v3"
	"os"
	"strings"
	"time"
)

type Configuration struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	Auth       AuthConfig       `yaml:"auth"`
	Analysis   AnalysisConfig   `yaml:"analysis"`
	Pagination PaginationConfig `yaml:"pagination"`
}

type ServerConfig struct {
	Port            int             `yaml:"port"`
	Concurrency     int             `yaml:"concurrency"`
	PublicURL       string          `yaml:"publicUrl"`
	RequestConfig   RequestConfig   `yaml:"request"`
	LogConfig       LogConfig       `yaml:"log"`
	ReconcileConfig ReconcileConfig `yaml:"reconcile"`
}

type RequestConfig struct {
	// SizeLimit is the request body limit in megabytes. Captured photos travel
	// as data URLs, so this has to be generous.
	SizeLimit int `yaml:"sizeLimit"`
}

type LogConfig struct {
	Format  string `yaml:"format"`
	Level   string `yaml:"level"`
	Output  string `yaml:"output"`
	LogPath string `yaml:"logPath"`
}

type ReconcileConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Schedule string `yaml:"schedule"`
}

type DatabaseConfig struct {
	// Driver is either "postgres" or "sqlite".
	Driver string `yaml:"driver"`
	Path   string `yaml:"path"`
}

type AuthConfig struct {
	Enabled   bool     `yaml:"enabled"`
	KeyLookup string   `yaml:"keyLookup"`
	Tokens    []string `yaml:"tokens"`
}

type AnalysisConfig struct {
	BaseURL   string                   `yaml:"baseUrl"`
	APIKeyEnv string                   `yaml:"apiKeyEnv"`
	Timeout   int                      `yaml:"timeout"`
	RateLimit float64                  `yaml:"rateLimit"`
	Burst     int                      `yaml:"burst"`
	Profiles  map[string]ProfileConfig `yaml:"profiles"`
}

type ProfileConfig struct {
	Model string `yaml:"model"`
	// Structured marks models that accept a JSON response format. Others get a
	// textual instruction and their reply is scraped for a JSON block.
	Structured bool `yaml:"structured"`
}

type PaginationConfig struct {
	DefaultLimit int `yaml:"defaultLimit"`
	MaxLimit     int `yaml:"maxLimit"`
}

func (a AnalysisConfig) APIKey() string {
	return os.Getenv(a.APIKeyEnv)
}

func (a AnalysisConfig) TimeoutDuration() time.Duration {
	return time.Duration(a.Timeout) * time.Second
}

func LoadConfiguration(configurationFilePath string) (*Configuration, error) {
	data, err := os.ReadFile(configurationFilePath)
	if err != nil {
		return nil, err
	}
	var config Configuration
	err = yaml.Unmarshal(data, &config)
	if err != nil {
		return nil, err
	}
	config.ApplyDefaults()
	return &config, nil
}

// ApplyDefaults fills every zero value with the value used when the key is
// missing from the configuration file.
func (c *Configuration) ApplyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 3000
	}
	if c.Server.Concurrency == 0 {
		c.Server.Concurrency = 256
	}
	if c.Server.PublicURL == "" {
		c.Server.PublicURL = "http://localhost:3000"
	}
	c.Server.PublicURL = strings.TrimRight(c.Server.PublicURL, "/")
	if c.Server.RequestConfig.SizeLimit == 0 {
		c.Server.RequestConfig.SizeLimit = 20
	}
	if c.Server.LogConfig.Output == "" {
		c.Server.LogConfig.Output = "stdout"
	}
	if c.Server.LogConfig.Level == "" {
		c.Server.LogConfig.Level = "info"
	}
	if c.Server.ReconcileConfig.Schedule == "" {
		c.Server.ReconcileConfig.Schedule = "@every 1h"
	}
	if c.Database.Driver == "" {
		c.Database.Driver = "sqlite"
	}
	if c.Database.Path == "" {
		c.Database.Path = "boxbox.db"
	}
	if c.Auth.KeyLookup == "" {
		c.Auth.KeyLookup = "header:Authorization"
	}
	if c.Analysis.BaseURL == "" {
		c.Analysis.BaseURL = "https://openrouter.ai/api/v1"
	}
	if c.Analysis.APIKeyEnv == "" {
		c.Analysis.APIKeyEnv = "OPENROUTER_API_KEY"
	}
	if c.Analysis.Timeout == 0 {
		c.Analysis.Timeout = 60
	}
	if c.Analysis.RateLimit == 0 {
		c.Analysis.RateLimit = 1
	}
	if c.Analysis.Burst == 0 {
		c.Analysis.Burst = 3
	}
	if len(c.Analysis.Profiles) == 0 {
		c.Analysis.Profiles = DefaultProfiles()
	}
	if c.Pagination.DefaultLimit == 0 {
		c.Pagination.DefaultLimit = 20
	}
	if c.Pagination.MaxLimit == 0 {
		c.Pagination.MaxLimit = 50
	}
}

func DefaultProfiles() map[string]ProfileConfig {
	return map[string]ProfileConfig{
		"fast":     {Model: "openai/gpt-4o-mini", Structured: true},
		"balanced": {Model: "openai/gpt-4o", Structured: true},
		"high":     {Model: "anthropic/claude-3.5-sonnet", Structured: false},
	}
}

// Default returns a configuration with every default applied, used when no
// configuration file is present.
func Default() *Configuration {
	c := &Configuration{}
	c.ApplyDefaults()
	return c
}
