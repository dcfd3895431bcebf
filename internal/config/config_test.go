package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_ValidJSON(t *testing.T) {
	// Create temp config file
	content := `{
		"gemini_api_key": "test-key",
		"database_url": "postgres://localhost/devlens",
		"port": 9090,
		"repo_limit": 25,
		"verbose": true
	}`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "test-key", cfg.GeminiAPIKey)
	assert.Equal(t, "postgres://localhost/devlens", cfg.DatabaseURL)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, 25, cfg.RepoLimit)
	assert.True(t, cfg.Verbose)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	content := `{ invalid json }`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.json")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "config path is empty")
}

func TestFromEnv(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "env-key")
	t.Setenv("DATABASE_URL", "postgres://localhost/env")
	t.Setenv("PORT", "8888")
	t.Setenv("REPO_LIMIT", "10")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "env-key", cfg.GeminiAPIKey)
	assert.Equal(t, "postgres://localhost/env", cfg.DatabaseURL)
	assert.Equal(t, 8888, cfg.Port)
	assert.Equal(t, 10, cfg.RepoLimit)
}

func TestFromEnv_InvalidPort(t *testing.T) {
	t.Setenv("PORT", "not-a-number")

	cfg, err := FromEnv()
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "invalid PORT")
}

func TestValidate_PortOutOfRange(t *testing.T) {
	cfg := &Config{Port: 70000}

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "port")
}

func TestValidate_NegativeRepoLimit(t *testing.T) {
	cfg := &Config{RepoLimit: -1}

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "repo_limit")
}

func TestValidate_ValidConfig(t *testing.T) {
	cfg := &Config{
		GeminiAPIKey: "key",
		Port:         8080,
		RepoLimit:    15,
	}

	err := cfg.Validate()
	assert.NoError(t, err)
}

func TestMergeWithDefaults(t *testing.T) {
	defaults := Config{
		GeminiAPIKey: "default-key",
		DatabaseURL:  "postgres://localhost/default",
		Port:         9000,
		RepoLimit:    20,
	}

	partial := Config{
		GeminiAPIKey: "custom-key",
	}

	merged := partial.MergeWithDefaults(defaults)

	// Custom values should be preserved
	assert.Equal(t, "custom-key", merged.GeminiAPIKey)

	// Default values should fill in empty fields
	assert.Equal(t, "postgres://localhost/default", merged.DatabaseURL)
	assert.Equal(t, 9000, merged.Port)
	assert.Equal(t, 20, merged.RepoLimit)
}

func TestMergeWithDefaults_EmptyDefaults(t *testing.T) {
	cfg := Config{
		GeminiAPIKey: "key",
	}

	merged := cfg.MergeWithDefaults(Config{})

	assert.Equal(t, "key", merged.GeminiAPIKey)
	assert.Equal(t, DefaultPort, merged.Port, "port falls back to the built-in default")
}
