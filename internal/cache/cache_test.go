package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/raysh454/jobcheck/internal/logging"
	"github.com/raysh454/jobcheck/internal/model"
	"github.com/raysh454/jobcheck/internal/predictor"
)

func TestKey_DependsOnBackendText(t *testing.T) {
	t.Parallel()
	a := model.JobPosting{Title: "Clerk"}
	b := model.JobPosting{Title: "Clerk", Industry: "Retail"}

	if Key(a) != Key(a) {
		t.Error("Key is not deterministic")
	}
	if Key(a) == Key(b) {
		t.Error("different postings share a key")
	}
	if len(Key(a)) != 64 {
		t.Errorf("expected hex sha256, got %q", Key(a))
	}
}

func TestMemoryCache_GetSet(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	c := NewMemoryCache(time.Minute, 0)

	if got, err := c.Get(ctx, "k"); got != nil || err != nil {
		t.Fatalf("empty cache Get = %v, %v", got, err)
	}

	in := &predictor.Prediction{FraudProbability: 0.4, Key: "probability"}
	if err := c.Set(ctx, "k", in); err != nil {
		t.Fatalf("Set: %v", err)
	}
	in.FraudProbability = 0.9 // stored value is a copy

	got, err := c.Get(ctx, "k")
	if err != nil || got == nil {
		t.Fatalf("Get = %v, %v", got, err)
	}
	if got.FraudProbability != 0.4 || got.Key != "probability" {
		t.Errorf("Get = %+v", got)
	}
}

func TestMemoryCache_Expiry(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	c := NewMemoryCache(time.Minute, 0)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	_ = c.Set(ctx, "k", &predictor.Prediction{FraudProbability: 0.2})
	now = now.Add(59 * time.Second)
	if got, _ := c.Get(ctx, "k"); got == nil {
		t.Fatal("entry expired early")
	}
	now = now.Add(time.Second)
	if got, _ := c.Get(ctx, "k"); got != nil {
		t.Fatalf("expected expiry, got %+v", got)
	}
	if c.Len() != 0 {
		t.Errorf("expired entry not removed, Len = %d", c.Len())
	}
}

func TestMemoryCache_Eviction(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	c := NewMemoryCache(time.Minute, 2)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	_ = c.Set(ctx, "a", &predictor.Prediction{FraudProbability: 0.1})
	now = now.Add(time.Second)
	_ = c.Set(ctx, "b", &predictor.Prediction{FraudProbability: 0.2})
	now = now.Add(time.Second)
	_ = c.Set(ctx, "c", &predictor.Prediction{FraudProbability: 0.3})

	if c.Len() != 2 {
		t.Fatalf("Len = %d, want 2", c.Len())
	}
	if got, _ := c.Get(ctx, "a"); got != nil {
		t.Error("oldest entry should have been evicted")
	}
	if got, _ := c.Get(ctx, "c"); got == nil {
		t.Error("newest entry missing")
	}
}

func TestNew_Backends(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	c, err := New(ctx, Config{Backend: "none"}, logging.NopLogger{})
	if err != nil || c != nil {
		t.Errorf("none backend = %v, %v", c, err)
	}

	c, err = New(ctx, DefaultConfig(), logging.NopLogger{})
	if err != nil {
		t.Fatalf("memory backend: %v", err)
	}
	if _, ok := c.(*MemoryCache); !ok {
		t.Errorf("expected *MemoryCache, got %T", c)
	}

	if _, err := New(ctx, Config{Backend: "memcached"}, logging.NopLogger{}); err == nil {
		t.Error("expected error for unknown backend")
	}
	if _, err := New(ctx, Config{Backend: "redis", RedisURL: "not-a-url"}, logging.NopLogger{}); err == nil {
		t.Error("expected error for bad redis url")
	}
}

// TestRedisCache_RoundTrip needs a live server; set JOBCHECK_TEST_REDIS_URL
// (e.g. redis://localhost:6379/15) to run it.
func TestRedisCache_RoundTrip(t *testing.T) {
	url := os.Getenv("JOBCHECK_TEST_REDIS_URL")
	if url == "" {
		t.Skip("JOBCHECK_TEST_REDIS_URL not set")
	}
	ctx := context.Background()
	c, err := NewRedisCache(ctx, url, "jobcheck:test:", time.Minute)
	if err != nil {
		t.Fatalf("NewRedisCache: %v", err)
	}
	defer c.Close()

	key := Key(model.JobPosting{Title: t.Name()})
	if got, err := c.Get(ctx, key+"-absent"); got != nil || err != nil {
		t.Fatalf("miss = %v, %v", got, err)
	}
	if err := c.Set(ctx, key, &predictor.Prediction{FraudProbability: 0.7, Key: "fraud_proba"}); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, err := c.Get(ctx, key)
	if err != nil || got == nil || got.FraudProbability != 0.7 {
		t.Errorf("Get = %+v, %v", got, err)
	}
}
