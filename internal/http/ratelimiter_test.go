package http

import (
	"testing"
	"time"
)

func TestRateLimiterAllowConsumesBudget(t *testing.T) {
	t.Parallel()

	current := time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(2, 1, 0)
	rl.now = func() time.Time { return current }

	if !rl.Allow("10.0.0.1") {
		t.Fatalf("expected first request to pass")
	}
	if !rl.Allow("10.0.0.1") {
		t.Fatalf("expected second request to pass")
	}
	if rl.Allow("10.0.0.1") {
		t.Fatalf("expected third request to be rejected")
	}
}

func TestRateLimiterRefillsOverTime(t *testing.T) {
	t.Parallel()

	current := time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(1, 1, 0)
	rl.now = func() time.Time { return current }

	if !rl.Allow("10.0.0.2") {
		t.Fatalf("expected first request to pass")
	}
	if rl.Allow("10.0.0.2") {
		t.Fatalf("expected second request to be rejected")
	}

	current = current.Add(1500 * time.Millisecond)

	if !rl.Allow("10.0.0.2") {
		t.Fatalf("expected request after refill to pass")
	}
}

func TestRateLimiterTracksClientsIndependently(t *testing.T) {
	t.Parallel()

	current := time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(1, 1, 0)
	rl.now = func() time.Time { return current }

	if !rl.Allow("10.0.0.3") {
		t.Fatalf("expected first client to pass")
	}
	if rl.Allow("10.0.0.3") {
		t.Fatalf("expected first client to be exhausted")
	}
	if !rl.Allow("10.0.0.4") {
		t.Fatalf("expected second client to have its own budget")
	}
}

func TestRateLimiterPrunesStaleClients(t *testing.T) {
	t.Parallel()

	current := time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)
	rl := &RateLimiter{
		clients:    make(map[string]*rateLimiterClient),
		maxTokens:  1,
		refillRate: 1,
		ttl:        time.Minute,
		now:        func() time.Time { return current },
	}

	if !rl.Allow("10.0.0.5") {
		t.Fatalf("expected request to pass")
	}

	current = current.Add(2 * time.Minute)
	rl.pruneStale()

	rl.mu.Lock()
	_, ok := rl.clients["10.0.0.5"]
	rl.mu.Unlock()
	if ok {
		t.Fatalf("expected stale client to be pruned")
	}
}

func TestRateLimiterEmptyKeyFallsBackToShared(t *testing.T) {
	t.Parallel()

	current := time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(1, 1, 0)
	rl.now = func() time.Time { return current }

	if !rl.Allow("") {
		t.Fatalf("expected first anonymous request to pass")
	}
	if rl.Allow("") {
		t.Fatalf("expected anonymous requests to share a budget")
	}
}
