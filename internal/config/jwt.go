package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// defaultTokenLifetime is used when JWT_EXPIRATION_HOURS is unset.
const defaultTokenLifetime = 24

// JWTConfig holds the signing secret and token lifetime for issued JWTs.
type JWTConfig struct {
	Secret          string
	ExpirationHours int
}

// NewJWTConfig reads JWT_SECRET (required) and JWT_EXPIRATION_HOURS
// (default 24) from the environment.
func NewJWTConfig() (*JWTConfig, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required but not set")
	}

	hours := defaultTokenLifetime
	if s := os.Getenv("JWT_EXPIRATION_HOURS"); s != "" {
		parsed, err := strconv.Atoi(s)
		if err != nil {
			return nil, fmt.Errorf("invalid JWT_EXPIRATION_HOURS: %v", err)
		}
		hours = parsed
	}
	if hours < 1 {
		return nil, fmt.Errorf("JWT_EXPIRATION_HOURS must be at least 1 hour, got: %d", hours)
	}

	return &JWTConfig{Secret: secret, ExpirationHours: hours}, nil
}

// TokenLifetime returns the configured lifetime as a duration.
func (c *JWTConfig) TokenLifetime() time.Duration {
	return time.Duration(c.ExpirationHours) * time.Hour
}
