package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJWTConfig(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-value")
	t.Setenv("JWT_EXPIRATION_HOURS", "48")

	cfg, err := NewJWTConfig()
	require.NoError(t, err)

	assert.Equal(t, "test-secret-value", cfg.Secret)
	assert.Equal(t, 48, cfg.ExpirationHours)
}

func TestNewJWTConfig_DefaultExpiration(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-value")
	t.Setenv("JWT_EXPIRATION_HOURS", "")

	cfg, err := NewJWTConfig()
	require.NoError(t, err)
	assert.Equal(t, 24, cfg.ExpirationHours)
}

func TestNewJWTConfig_MissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	cfg, err := NewJWTConfig()
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestNewJWTConfig_InvalidExpiration(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-value")

	tests := []struct {
		name  string
		value string
	}{
		{name: "not a number", value: "abc"},
		{name: "zero hours", value: "0"},
		{name: "negative hours", value: "-5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("JWT_EXPIRATION_HOURS", tt.value)

			cfg, err := NewJWTConfig()
			assert.Error(t, err)
			assert.Nil(t, cfg)
		})
	}
}
