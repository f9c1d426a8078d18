package redis

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

type expireCall struct {
	key string
	ttl time.Duration
}

type mockCmdable struct {
	incr        map[string]int64
	expireCalls []expireCall
}

func newMockCmdable() *mockCmdable {
	return &mockCmdable{incr: make(map[string]int64)}
}

func (m *mockCmdable) Ping(context.Context) *redis.StatusCmd {
	return redis.NewStatusResult("PONG", nil)
}

func (m *mockCmdable) Incr(ctx context.Context, key string) *redis.IntCmd {
	m.incr[key]++
	return redis.NewIntResult(m.incr[key], nil)
}

func (m *mockCmdable) Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd {
	m.expireCalls = append(m.expireCalls, expireCall{key: key, ttl: expiration})
	return redis.NewBoolResult(true, nil)
}

func TestIncrWithTTL_SetsExpiryOnFirstIncrementOnly(t *testing.T) {
	mock := newMockCmdable()
	client := &Client{store: mock}

	for want := int64(1); want <= 3; want++ {
		count, err := client.IncrWithTTL(context.Background(), "kc:rate_limit:export:user:u1", time.Minute)
		if err != nil {
			t.Fatalf("IncrWithTTL failed: %v", err)
		}
		if count != want {
			t.Fatalf("count = %d, want %d", count, want)
		}
	}

	if len(mock.expireCalls) != 1 {
		t.Fatalf("expire called %d times, want 1", len(mock.expireCalls))
	}
	if mock.expireCalls[0].ttl != time.Minute {
		t.Fatalf("ttl = %s, want 1m", mock.expireCalls[0].ttl)
	}
}

func TestFixedWindowAllow(t *testing.T) {
	mock := newMockCmdable()
	client := &Client{store: mock}
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		allowed, count, err := client.FixedWindowAllow(ctx, "export:user:u1", 2, time.Minute)
		if err != nil {
			t.Fatalf("FixedWindowAllow failed: %v", err)
		}
		if !allowed {
			t.Fatalf("attempt %d blocked, want allowed", i+1)
		}
		if count != int64(i+1) {
			t.Fatalf("count = %d, want %d", count, i+1)
		}
	}

	allowed, count, err := client.FixedWindowAllow(ctx, "export:user:u1", 2, time.Minute)
	if err != nil {
		t.Fatalf("FixedWindowAllow failed: %v", err)
	}
	if allowed {
		t.Fatal("third attempt allowed, want blocked")
	}
	if count != 3 {
		t.Fatalf("count = %d, want 3", count)
	}

	// Scopes keep independent budgets under namespaced keys.
	allowed, _, err = client.FixedWindowAllow(ctx, "export:user:u2", 2, time.Minute)
	if err != nil {
		t.Fatalf("FixedWindowAllow failed: %v", err)
	}
	if !allowed {
		t.Fatal("other scope blocked, want allowed")
	}
	if _, ok := mock.incr["kc:rate_limit:export:user:u2"]; !ok {
		t.Fatalf("scope key not namespaced: %v", mock.incr)
	}
}

func TestRateLimitKey(t *testing.T) {
	client := &Client{}
	if got := client.RateLimitKey("export:ip:10.0.0.1"); got != "kc:rate_limit:export:ip:10.0.0.1" {
		t.Fatalf("key = %q", got)
	}
}
