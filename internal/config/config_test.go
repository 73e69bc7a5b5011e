package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"NOTION_TOKEN", "NOTION_API_VERSION", "NOTION_MAX_BLOCKS",
		"NOTION_RETRY_ATTEMPTS", "LOG_LEVEL",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "2022-06-28", cfg.Notion.APIVersion)
	assert.Equal(t, 100, cfg.API.MaxBlocksPerRequest)
	assert.Equal(t, 2000, cfg.API.MaxTextLength)
	assert.Equal(t, 3, cfg.API.RetryAttempts)
	assert.Equal(t, time.Second, cfg.API.RetryDelay())
	assert.Equal(t, 500*time.Millisecond, cfg.API.RateLimitDelay())
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Contains(t, cfg.Bulk.ExcludePatterns, ".git")
}

func TestLoadFromFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
notion:
  token: secret-token
  api_version: "2021-08-16"
api:
  max_blocks_per_request: 50
  retry_delay: 2.5
bulk_upload:
  exclude_patterns:
    - drafts
logging:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "secret-token", cfg.Notion.Token)
	assert.Equal(t, "2021-08-16", cfg.Notion.APIVersion)
	assert.Equal(t, 50, cfg.API.MaxBlocksPerRequest)
	assert.Equal(t, 2500*time.Millisecond, cfg.API.RetryDelay())
	// Unset file keys keep their defaults.
	assert.Equal(t, 3, cfg.API.RetryAttempts)
	assert.Equal(t, []string{"drafts"}, cfg.Bulk.ExcludePatterns)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("NOTION_TOKEN", "env-token")
	t.Setenv("NOTION_MAX_BLOCKS", "25")
	t.Setenv("LOG_LEVEL", "warn")

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("notion:\n  token: file-token\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	// Environment wins over the file.
	assert.Equal(t, "env-token", cfg.Notion.Token)
	assert.Equal(t, 25, cfg.API.MaxBlocksPerRequest)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestLoadExpandsEnvInFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("MY_SECRET", "expanded-token")

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("notion:\n  token: ${MY_SECRET}\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "expanded-token", cfg.Notion.Token)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	clearEnv(t)
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:   "Valid",
			mutate: func(c *Config) { c.Notion.Token = "tok" },
		},
		{
			name:    "Missing token",
			mutate:  func(c *Config) {},
			wantErr: true,
		},
		{
			name: "Zero batch size",
			mutate: func(c *Config) {
				c.Notion.Token = "tok"
				c.API.MaxBlocksPerRequest = 0
			},
			wantErr: true,
		},
		{
			name: "Zero retry attempts",
			mutate: func(c *Config) {
				c.Notion.Token = "tok"
				c.API.RetryAttempts = 0
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
