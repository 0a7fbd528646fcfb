// Package cache stores backend predictions keyed by posting content so a
// resubmitted posting does not hit the model again.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/raysh454/jobcheck/internal/model"
	"github.com/raysh454/jobcheck/internal/predictor"
)

// Cache is a prediction cache. Get reports a miss with (nil, nil).
type Cache interface {
	Get(ctx context.Context, key string) (*predictor.Prediction, error)
	Set(ctx context.Context, key string, p *predictor.Prediction) error
	Close() error
}

// Backend names for Config.Backend.
const (
	BackendNone   = "none"
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// Config selects the cache backend.
type Config struct {
	Backend  string        `json:"backend" yaml:"backend"`
	TTL      time.Duration `json:"ttl" yaml:"ttl"`
	RedisURL string        `json:"redis_url" yaml:"redis_url"`

	// Prefix namespaces redis keys.
	Prefix string `json:"prefix" yaml:"prefix"`

	// MaxEntries bounds the memory cache. Zero means 10000.
	MaxEntries int `json:"max_entries" yaml:"max_entries"`
}

// DefaultConfig caches in memory for an hour.
func DefaultConfig() Config {
	return Config{
		Backend:    BackendMemory,
		TTL:        time.Hour,
		Prefix:     "jobcheck:prediction:",
		MaxEntries: 10000,
	}
}

// Key derives the cache key for a posting from exactly what the backend sees.
func Key(p model.JobPosting) string {
	sum := sha256.Sum256([]byte(p.BackendText()))
	return hex.EncodeToString(sum[:])
}
