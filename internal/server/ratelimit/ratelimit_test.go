package ratelimit

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

// newFrozenLimiter returns a limiter whose clock only moves when advance is called.
func newFrozenLimiter(config *Config) (*Limiter, func(time.Duration)) {
	limiter := NewLimiter(config)
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }
	return limiter, func(d time.Duration) { now = now.Add(d) }
}

func within(got, want time.Duration) bool {
	diff := got - want
	return diff > -time.Millisecond && diff < time.Millisecond
}

func TestLimiter_Allow(t *testing.T) {
	limiter, _ := newFrozenLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  10,
		DefaultWindow: time.Minute,
	})
	defer limiter.Stop()

	// Should allow requests up to limit
	for i := 0; i < 10; i++ {
		allowed, info := limiter.Allow("127.0.0.1", "/careers", "GET")
		if !allowed {
			t.Errorf("Expected request %d to be allowed", i+1)
		}
		if info.Limit != 10 {
			t.Errorf("Expected limit 10, got %d", info.Limit)
		}
		if info.Remaining != 9-i {
			t.Errorf("Expected remaining %d, got %d", 9-i, info.Remaining)
		}
	}

	// 11th request should be denied
	allowed, info := limiter.Allow("127.0.0.1", "/careers", "GET")
	if allowed {
		t.Error("Expected 11th request to be denied")
	}
	if info.Remaining != 0 {
		t.Errorf("Expected remaining 0, got %d", info.Remaining)
	}
	// 10 per minute refills one token every 6 seconds.
	if !within(info.RetryAfter, 6*time.Second) {
		t.Errorf("Expected retry after 6s, got %v", info.RetryAfter)
	}
	if !info.ResetTime.After(limiter.now()) {
		t.Error("Reset time should be in the future")
	}
}

func TestLimiter_Refill(t *testing.T) {
	limiter, advance := newFrozenLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  10,
		DefaultWindow: 10 * time.Second,
	})
	defer limiter.Stop()

	for i := 0; i < 10; i++ {
		limiter.Allow("c", "/x", "GET")
	}
	if allowed, _ := limiter.Allow("c", "/x", "GET"); allowed {
		t.Fatal("Expected bucket to be empty")
	}

	advance(time.Second)

	if allowed, _ := limiter.Allow("c", "/x", "GET"); !allowed {
		t.Error("Expected request to be allowed after refill")
	}
	if allowed, _ := limiter.Allow("c", "/x", "GET"); allowed {
		t.Error("Expected request to be denied after consuming refilled token")
	}
}

func TestLimiter_Whitelist(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  1,
		DefaultWindow: time.Minute,
		Whitelist:     map[string]bool{"127.0.0.1": true},
	})
	defer limiter.Stop()

	for i := 0; i < 100; i++ {
		allowed, info := limiter.Allow("127.0.0.1", "/test", "GET")
		if !allowed {
			t.Errorf("Expected whitelisted request %d to be allowed", i+1)
		}
		if info.Limit != 0 {
			t.Errorf("Expected limit 0 for whitelisted, got %d", info.Limit)
		}
	}
}

func TestLimiter_Blacklist(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  1000,
		DefaultWindow: time.Minute,
		Blacklist:     map[string]bool{"192.168.1.1": true},
	})
	defer limiter.Stop()

	if allowed, _ := limiter.Allow("192.168.1.1", "/test", "GET"); allowed {
		t.Error("Expected blacklisted request to be denied")
	}
}

func TestLimiter_Disabled(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: false})
	defer limiter.Stop()

	for i := 0; i < 100; i++ {
		allowed, info := limiter.Allow("127.0.0.1", "/test", "GET")
		if !allowed {
			t.Errorf("Expected request %d to be allowed when disabled", i+1)
		}
		if info.Limit != 0 {
			t.Errorf("Expected limit 0 when disabled, got %d", info.Limit)
		}
	}
}

func TestLimiter_EndpointSpecific(t *testing.T) {
	limiter, _ := newFrozenLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  1000,
		DefaultWindow: time.Minute,
		EndpointConfigs: []EndpointConfig{
			{Path: "/auth/login", Method: "POST", Limit: 5, Window: time.Hour, Burst: 5},
		},
	})
	defer limiter.Stop()

	for i := 0; i < 5; i++ {
		allowed, info := limiter.Allow("127.0.0.1", "/auth/login", "POST")
		if !allowed {
			t.Errorf("Expected request %d to be allowed", i+1)
		}
		if info.Limit != 5 {
			t.Errorf("Expected limit 5, got %d", info.Limit)
		}
	}

	allowed, info := limiter.Allow("127.0.0.1", "/auth/login", "POST")
	if allowed {
		t.Error("Expected 6th request to be denied")
	}
	if !within(info.RetryAfter, 12*time.Minute) {
		t.Errorf("Expected retry after 12m, got %v", info.RetryAfter)
	}

	// Different endpoint should use default limit
	allowed, info = limiter.Allow("127.0.0.1", "/careers", "GET")
	if !allowed {
		t.Error("Expected different endpoint to be allowed")
	}
	if info.Limit != 1000 {
		t.Errorf("Expected default limit 1000, got %d", info.Limit)
	}
}

func TestLimiter_PrefixConfigSharesBucket(t *testing.T) {
	limiter, _ := newFrozenLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  1000,
		DefaultWindow: time.Minute,
		EndpointConfigs: []EndpointConfig{
			{Path: "/jobs/", Method: "POST", Limit: 2, Window: time.Minute, Burst: 2},
		},
	})
	defer limiter.Stop()

	for i := 0; i < 2; i++ {
		path := fmt.Sprintf("/jobs/job-%d/apply", i)
		if allowed, _ := limiter.Allow("c", path, "POST"); !allowed {
			t.Errorf("Expected %s to be allowed", path)
		}
	}
	if allowed, _ := limiter.Allow("c", "/jobs/job-9/apply", "POST"); allowed {
		t.Error("Expected a third apply to be denied regardless of job")
	}
}

func TestLimiter_Concurrent(t *testing.T) {
	limiter, _ := newFrozenLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  100,
		DefaultWindow: time.Minute,
	})
	defer limiter.Stop()

	var wg sync.WaitGroup
	var mu sync.Mutex
	allowedCount := 0

	// Make 200 concurrent requests (should only allow 100)
	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if allowed, _ := limiter.Allow("127.0.0.1", "/test", "GET"); allowed {
				mu.Lock()
				allowedCount++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if allowedCount != 100 {
		t.Errorf("Expected 100 allowed requests, got %d", allowedCount)
	}
}

func TestLimiter_CleanupBuckets(t *testing.T) {
	limiter, advance := newFrozenLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  10,
		DefaultWindow: time.Minute,
	})
	defer limiter.Stop()

	for i := 0; i < 10; i++ {
		limiter.Allow(fmt.Sprintf("127.0.0.%d", i+1), "/test", "GET")
	}

	advance(2 * time.Hour)
	for i := 0; i < 5; i++ {
		limiter.Allow(fmt.Sprintf("127.0.0.%d", i+1), "/test", "GET")
	}

	limiter.cleanupBuckets(limiter.now().Add(-idleTTL))

	if got := len(limiter.buckets); got != 5 {
		t.Errorf("Expected 5 buckets after cleanup, got %d", got)
	}
}

func TestLimiter_Burst(t *testing.T) {
	limiter, _ := newFrozenLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  10,
		DefaultWindow: time.Minute,
		EndpointConfigs: []EndpointConfig{
			{Path: "/burst", Method: "POST", Limit: 10, Window: time.Minute, Burst: 5},
		},
	})
	defer limiter.Stop()

	for i := 0; i < 5; i++ {
		if allowed, _ := limiter.Allow("127.0.0.1", "/burst", "POST"); !allowed {
			t.Errorf("Expected burst request %d to be allowed", i+1)
		}
	}

	if allowed, _ := limiter.Allow("127.0.0.1", "/burst", "POST"); allowed {
		t.Error("Expected request after burst to be denied")
	}
}

func TestLimiter_StopIsIdempotent(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: true, DefaultLimit: 1, DefaultWindow: time.Second, CleanupInterval: time.Millisecond})
	limiter.Stop()
	limiter.Stop()
}

func TestNewLimiter_NilConfig(t *testing.T) {
	limiter := NewLimiter(nil)
	defer limiter.Stop()

	allowed, info := limiter.Allow("127.0.0.1", "/test", "GET")
	if !allowed {
		t.Error("Expected request to be allowed with default config")
	}
	if info.Limit != 1000 {
		t.Errorf("Expected default limit 1000, got %d", info.Limit)
	}
}

func TestMatchEndpoint(t *testing.T) {
	configs := DefaultEndpointConfigs()

	if ec := MatchEndpoint("/health", "GET", configs); ec == nil || ec.Limit != 0 {
		t.Error("Expected health check to be unlimited")
	}
	if ec := MatchEndpoint("/match/score", "OPTIONS", configs); ec == nil || ec.Limit != 0 {
		t.Error("Expected preflight to be unlimited")
	}
	if ec := MatchEndpoint("/auth/login", "POST", configs); ec == nil || ec.Path != "/auth/login" {
		t.Error("Expected exact match for login")
	}
	if ec := MatchEndpoint("/recruiter/applications/abc/status", "POST", configs); ec == nil || ec.Path != "/recruiter/applications/" {
		t.Error("Expected prefix match for status updates")
	}
	if ec := MatchEndpoint("/careers", "GET", configs); ec != nil {
		t.Error("Expected no match for reads")
	}
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "true")
	t.Setenv("RATE_LIMIT_DEFAULT_LIMIT", "50")
	t.Setenv("RATE_LIMIT_DEFAULT_WINDOW", "30s")
	t.Setenv("RATE_LIMIT_WHITELIST", "10.0.0.1, 10.0.0.2")

	cfg := LoadConfig()
	if !cfg.Enabled || cfg.DefaultLimit != 50 || cfg.DefaultWindow != 30*time.Second {
		t.Errorf("Unexpected config: %+v", cfg)
	}
	if !cfg.Whitelist["10.0.0.2"] {
		t.Error("Expected whitelist to be parsed")
	}

	t.Setenv("RATE_LIMIT_ENABLED", "false")
	if LoadConfig().Enabled {
		t.Error("Expected rate limiting to be disabled")
	}
}
