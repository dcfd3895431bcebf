// Package config provides configuration loading and validation for the CLI
// and the hosted server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Config represents the application configuration. Values can come from a
// JSON file, environment variables, or CLI flags; missing values use
// defaults or must be provided via CLI flags.
type Config struct {
	// Credentials
	GeminiAPIKey string `json:"gemini_api_key,omitempty"` // Gemini API key
	GitHubToken  string `json:"github_token,omitempty"`   // Optional GitHub token for higher rate limits

	// Server
	Port        int    `json:"port,omitempty"`         // HTTP listen port
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL

	// Behavior
	RepoLimit int  `json:"repo_limit,omitempty"` // Max repositories fetched per profile
	Verbose   bool `json:"verbose,omitempty"`    // Print detailed debug information
	JSONLogs  bool `json:"json_logs,omitempty"`  // Emit structured JSON logs
}

// DefaultPort is used when neither PORT nor a config file sets one.
const DefaultPort = 8080

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// FromEnv builds a Config from environment variables:
// GEMINI_API_KEY, GITHUB_TOKEN, DATABASE_URL, PORT, REPO_LIMIT.
func FromEnv() (*Config, error) {
	cfg := &Config{
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		GitHubToken:  os.Getenv("GITHUB_TOKEN"),
		DatabaseURL:  os.Getenv("DATABASE_URL"),
	}

	if portStr := os.Getenv("PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT: %v", err)
		}
		cfg.Port = port
	}

	if limitStr := os.Getenv("REPO_LIMIT"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil {
			return nil, fmt.Errorf("invalid REPO_LIMIT: %v", err)
		}
		cfg.RepoLimit = limit
	}

	return cfg, nil
}

// Validate checks that the configuration has valid values.
// Note: this doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' out of range: %d", c.Port)
	}
	if c.RepoLimit < 0 {
		return fmt.Errorf("config error: 'repo_limit' must be non-negative")
	}
	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from
// defaults. This is used to apply config file values as defaults for CLI
// flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.GeminiAPIKey == "" {
		result.GeminiAPIKey = defaults.GeminiAPIKey
	}
	if result.GitHubToken == "" {
		result.GitHubToken = defaults.GitHubToken
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}

	if result.Port == 0 {
		if defaults.Port > 0 {
			result.Port = defaults.Port
		} else {
			result.Port = DefaultPort
		}
	}
	if result.RepoLimit == 0 {
		result.RepoLimit = defaults.RepoLimit
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
