// Package config provides JWT configuration functionality.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// JWTConfig holds configuration for session token generation and validation.
type JWTConfig struct {
	Secret          string
	ExpirationHours int
}

// NewJWTConfig creates a new JWT configuration from environment variables.
// It reads AUTH_SECRET (required) and AUTH_EXPIRATION_HOURS (default: 168,
// i.e. seven days).
func NewJWTConfig() (*JWTConfig, error) {
	secret := os.Getenv("AUTH_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("AUTH_SECRET is required but not set")
	}

	expirationStr := os.Getenv("AUTH_EXPIRATION_HOURS")
	if expirationStr == "" {
		expirationStr = "168" // default: seven days
	}

	expirationHours, err := strconv.Atoi(expirationStr)
	if err != nil {
		return nil, fmt.Errorf("invalid AUTH_EXPIRATION_HOURS: %v", err)
	}

	config := &JWTConfig{
		Secret:          secret,
		ExpirationHours: expirationHours,
	}

	if err := config.normalize(); err != nil {
		return nil, err
	}

	return config, nil
}

// normalize validates the configuration.
func (c *JWTConfig) normalize() error {
	if c.Secret == "" {
		return fmt.Errorf("AUTH_SECRET cannot be empty")
	}
	if c.ExpirationHours < 1 {
		return fmt.Errorf("AUTH_EXPIRATION_HOURS must be at least 1 hour, got: %d", c.ExpirationHours)
	}
	return nil
}
