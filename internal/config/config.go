// Package config provides configuration loading and validation for the server.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds the application configuration, read from environment
// variables. OpenAIAPIKey is optional: without it the practice interview
// runs on the scripted engine and the speech endpoints report themselves
// unavailable.
type Config struct {
	Port         int
	DatabaseURL  string
	OpenAIAPIKey string
	UploadDir    string
}

// Load reads the application configuration from the environment.
// DATABASE_URL is required; PORT defaults to 8080 and UPLOAD_DIR to
// "uploads".
func Load() (*Config, error) {
	cfg := &Config{
		Port:         8080,
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		OpenAIAPIKey: os.Getenv("OPENAI_API_KEY"),
		UploadDir:    os.Getenv("UPLOAD_DIR"),
	}

	if portStr := os.Getenv("PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT: %v", err)
		}
		cfg.Port = port
	}

	if cfg.UploadDir == "" {
		cfg.UploadDir = "uploads"
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// normalize validates the configuration.
func (c *Config) normalize() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required but not set")
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("PORT out of range: %d", c.Port)
	}
	return nil
}
