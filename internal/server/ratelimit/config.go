package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// EndpointConfig is the rate limit for one endpoint. A trailing "/" in Path
// makes it a prefix match.
type EndpointConfig struct {
	Path   string
	Method string
	Limit  int
	Window time.Duration
	Burst  int
}

// LoadConfig loads rate limiting configuration from environment variables.
func LoadConfig() *Config {
	enabled := getEnvBool("RATE_LIMIT_ENABLED", true)
	if !enabled {
		return &Config{Enabled: false}
	}

	return &Config{
		Enabled:         enabled,
		DefaultLimit:    getEnvInt("RATE_LIMIT_DEFAULT_LIMIT", 1000),
		DefaultWindow:   getEnvDuration("RATE_LIMIT_DEFAULT_WINDOW", time.Minute),
		CleanupInterval: getEnvDuration("RATE_LIMIT_CLEANUP_INTERVAL", 5*time.Minute),
		Whitelist:       parseIPList(os.Getenv("RATE_LIMIT_WHITELIST")),
		Blacklist:       parseIPList(os.Getenv("RATE_LIMIT_BLACKLIST")),
		EndpointConfigs: DefaultEndpointConfigs(),
	}
}

// DefaultEndpointConfigs returns the per-endpoint limits.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		// Endpoints that call out to the model provider.
		{Path: "/practice-interview", Method: "POST", Limit: 120, Window: time.Hour, Burst: 10},
		{Path: "/practice-interview/", Method: "POST", Limit: 120, Window: time.Hour, Burst: 10},

		// Credential endpoints get tight limits to slow down guessing.
		{Path: "/auth/signup", Method: "POST", Limit: 20, Window: time.Minute, Burst: 5},
		{Path: "/auth/signin", Method: "POST", Limit: 20, Window: time.Minute, Burst: 5},
		{Path: "/auth/password", Method: "POST", Limit: 20, Window: time.Minute, Burst: 5},

		// Uploads.
		{Path: "/profile/resume", Method: "POST", Limit: 30, Window: time.Minute, Burst: 5},
		{Path: "/profile/resume/", Method: "POST", Limit: 30, Window: time.Minute, Burst: 5},
		{Path: "/profile/documents", Method: "POST", Limit: 30, Window: time.Minute, Burst: 5},

		// General write operations.
		{Path: "/profile", Method: "PUT", Limit: 100, Window: time.Minute, Burst: 10},
		{Path: "/roles", Method: "POST", Limit: 100, Window: time.Minute, Burst: 10},
		{Path: "/roles/", Method: "POST", Limit: 100, Window: time.Minute, Burst: 10},
		{Path: "/roles/", Method: "PATCH", Limit: 100, Window: time.Minute, Burst: 10},
		{Path: "/roles/", Method: "DELETE", Limit: 100, Window: time.Minute, Burst: 10},
		{Path: "/prep-items/", Method: "PATCH", Limit: 100, Window: time.Minute, Burst: 10},
		{Path: "/prep-items/", Method: "DELETE", Limit: 100, Window: time.Minute, Burst: 10},

		// Reads fall through to the default limit; /health is unlimited.
	}
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func parseIPList(list string) map[string]bool {
	result := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			result[ip] = true
		}
	}
	return result
}
