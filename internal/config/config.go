// Package config resolves the tool configuration from a YAML file and
// environment variable overrides. The rest of the program receives the
// resolved Config and performs no environment access itself.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the single resolved configuration object.
type Config struct {
	Notion  Notion  `yaml:"notion"`
	API     API     `yaml:"api"`
	Bulk    Bulk    `yaml:"bulk_upload"`
	Logging Logging `yaml:"logging"`
}

// Notion holds the credential and API version.
type Notion struct {
	Token      string `yaml:"token"`
	APIVersion string `yaml:"api_version"`
}

// API holds the transport caps and retry/pacing tuning. Delays are expressed
// in seconds to keep the config file format simple.
type API struct {
	MaxBlocksPerRequest   int     `yaml:"max_blocks_per_request"`
	MaxTextLength         int     `yaml:"max_text_length"`
	RetryAttempts         int     `yaml:"retry_attempts"`
	RetryDelaySeconds     float64 `yaml:"retry_delay"`
	RateLimitDelaySeconds float64 `yaml:"rate_limit_delay"`
}

// Bulk holds bulk-upload directory filtering.
type Bulk struct {
	ExcludePatterns []string `yaml:"exclude_patterns"`
}

// Logging holds the log level.
type Logging struct {
	Level string `yaml:"level"`
}

// RetryDelay returns the base retry delay as a duration.
func (a API) RetryDelay() time.Duration {
	return time.Duration(a.RetryDelaySeconds * float64(time.Second))
}

// RateLimitDelay returns the inter-request pacing delay as a duration.
func (a API) RateLimitDelay() time.Duration {
	return time.Duration(a.RateLimitDelaySeconds * float64(time.Second))
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Notion: Notion{
			APIVersion: "2022-06-28",
		},
		API: API{
			MaxBlocksPerRequest:   100,
			MaxTextLength:         2000,
			RetryAttempts:         3,
			RetryDelaySeconds:     1.0,
			RateLimitDelaySeconds: 0.5,
		},
		Bulk: Bulk{
			ExcludePatterns: []string{".git", "node_modules", "vendor", ".venv"},
		},
		Logging: Logging{
			Level: "info",
		},
	}
}

// Load builds the configuration from defaults, an optional YAML file, and
// environment overrides, then validates it. An explicit path must exist;
// with an empty path the default locations are tried and may be absent.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := loadFile(path, cfg); err != nil {
			return nil, err
		}
	} else {
		for _, candidate := range defaultPaths() {
			if _, err := os.Stat(candidate); err != nil {
				continue
			}
			if err := loadFile(candidate, cfg); err != nil {
				return nil, err
			}
			break
		}
	}

	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaultPaths() []string {
	paths := []string{"config.yaml"}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".notion-sync", "config.yaml"))
	}
	return paths
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), cfg); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("NOTION_TOKEN"); v != "" {
		c.Notion.Token = v
	}
	if v := os.Getenv("NOTION_API_VERSION"); v != "" {
		c.Notion.APIVersion = v
	}
	if v := os.Getenv("NOTION_MAX_BLOCKS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.API.MaxBlocksPerRequest = n
		}
	}
	if v := os.Getenv("NOTION_RETRY_ATTEMPTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.API.RetryAttempts = n
		}
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
}

// Validate fails fast on configuration that would only surface as a network
// error later.
func (c *Config) Validate() error {
	if c.Notion.Token == "" {
		return fmt.Errorf("notion token is required: set NOTION_TOKEN or notion.token in config.yaml")
	}
	if c.API.MaxBlocksPerRequest < 1 {
		return fmt.Errorf("max_blocks_per_request must be at least 1")
	}
	if c.API.RetryAttempts < 1 {
		return fmt.Errorf("retry_attempts must be at least 1")
	}
	return nil
}
