package ratelimit

import (
	"testing"
	"time"
)

func TestTokenBucket_Allow(t *testing.T) {
	bucket := newTokenBucket(5, 1.0)

	for i := 0; i < 5; i++ {
		if !bucket.allow() {
			t.Errorf("Expected request %d to be allowed", i+1)
		}
	}

	if bucket.allow() {
		t.Error("Expected request to be denied once the bucket is empty")
	}
}

func TestTokenBucket_Refill(t *testing.T) {
	bucket := newTokenBucket(5, 10.0)

	for i := 0; i < 5; i++ {
		bucket.allow()
	}

	time.Sleep(150 * time.Millisecond)

	if !bucket.allow() {
		t.Error("Expected request to be allowed after refill")
	}
}

func TestTokenBucket_Status(t *testing.T) {
	bucket := newTokenBucket(10, 1.0)

	for i := 0; i < 4; i++ {
		bucket.allow()
	}

	remaining, resetTime := bucket.status()
	if remaining != 6 {
		t.Errorf("Expected 6 remaining tokens, got %d", remaining)
	}
	if resetTime.Before(time.Now()) {
		t.Error("Reset time should be in the future")
	}
}

func TestLimiter_Allow(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  3,
		DefaultWindow: time.Minute,
	})
	defer limiter.Stop()

	for i := 0; i < 3; i++ {
		allowed, info := limiter.Allow("127.0.0.1", "/roles", "GET")
		if !allowed {
			t.Errorf("Expected request %d to be allowed", i+1)
		}
		if info.Limit != 3 {
			t.Errorf("Expected limit 3, got %d", info.Limit)
		}
	}

	allowed, info := limiter.Allow("127.0.0.1", "/roles", "GET")
	if allowed {
		t.Error("Expected request over the limit to be denied")
	}
	if info.RetryAfter <= 0 {
		t.Error("Expected a positive retry after")
	}
}

func TestLimiter_SeparateClients(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  1,
		DefaultWindow: time.Minute,
	})
	defer limiter.Stop()

	if allowed, _ := limiter.Allow("10.0.0.1", "/roles", "GET"); !allowed {
		t.Error("Expected first client to be allowed")
	}
	if allowed, _ := limiter.Allow("10.0.0.1", "/roles", "GET"); allowed {
		t.Error("Expected first client to be limited")
	}
	if allowed, _ := limiter.Allow("10.0.0.2", "/roles", "GET"); !allowed {
		t.Error("Expected second client to have its own bucket")
	}
}

func TestLimiter_Disabled(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: false, DefaultLimit: 1, DefaultWindow: time.Minute})
	defer limiter.Stop()

	for i := 0; i < 50; i++ {
		if allowed, _ := limiter.Allow("127.0.0.1", "/roles", "GET"); !allowed {
			t.Fatal("Expected all requests to be allowed when disabled")
		}
	}
}

func TestLimiter_WhitelistAndBlacklist(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  1,
		DefaultWindow: time.Minute,
		Whitelist:     map[string]bool{"10.0.0.5": true},
		Blacklist:     map[string]bool{"10.0.0.6": true},
	})
	defer limiter.Stop()

	for i := 0; i < 10; i++ {
		if allowed, _ := limiter.Allow("10.0.0.5", "/roles", "GET"); !allowed {
			t.Fatal("Expected whitelisted client to always be allowed")
		}
	}

	if allowed, _ := limiter.Allow("10.0.0.6", "/roles", "GET"); allowed {
		t.Error("Expected blacklisted client to be denied")
	}
}

func TestMatchEndpoint(t *testing.T) {
	configs := DefaultEndpointConfigs()

	tests := []struct {
		path      string
		method    string
		wantLimit int
		wantNil   bool
	}{
		{path: "/practice-interview", method: "POST", wantLimit: 120},
		{path: "/practice-interview/transcribe", method: "POST", wantLimit: 120},
		{path: "/practice-interview/tts", method: "POST", wantLimit: 120},
		{path: "/auth/signin", method: "POST", wantLimit: 20},
		{path: "/roles", method: "POST", wantLimit: 100},
		{path: "/roles/abc123/interviews", method: "POST", wantLimit: 100},
		{path: "/prep-items/abc123", method: "DELETE", wantLimit: 100},
		{path: "/roles", method: "GET", wantNil: true},
		{path: "/health", method: "GET", wantLimit: 0},
	}

	for _, tt := range tests {
		got := MatchEndpoint(tt.path, tt.method, configs)
		if tt.wantNil {
			if got != nil {
				t.Errorf("MatchEndpoint(%s %s): expected no match, got %+v", tt.method, tt.path, got)
			}
			continue
		}
		if got == nil {
			t.Errorf("MatchEndpoint(%s %s): expected a match", tt.method, tt.path)
			continue
		}
		if got.Limit != tt.wantLimit {
			t.Errorf("MatchEndpoint(%s %s): expected limit %d, got %d", tt.method, tt.path, tt.wantLimit, got.Limit)
		}
	}
}
