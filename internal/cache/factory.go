package cache

import (
	"context"
	"fmt"
	"strings"

	"github.com/raysh454/jobcheck/internal/logging"
)

// New builds the configured cache. It returns (nil, nil) when caching is
// disabled.
func New(ctx context.Context, cfg Config, logger logging.Logger) (Cache, error) {
	backend := strings.ToLower(strings.TrimSpace(cfg.Backend))
	l := logger.With(logging.Field{Key: "component", Value: "cache"})

	switch backend {
	case "", BackendNone:
		l.Info("prediction cache disabled")
		return nil, nil
	case BackendMemory:
		l.Info("using memory prediction cache", logging.Field{Key: "ttl", Value: cfg.TTL.String()})
		return NewMemoryCache(cfg.TTL, cfg.MaxEntries), nil
	case BackendRedis:
		c, err := NewRedisCache(ctx, cfg.RedisURL, cfg.Prefix, cfg.TTL)
		if err != nil {
			return nil, err
		}
		l.Info("using redis prediction cache", logging.Field{Key: "ttl", Value: cfg.TTL.String()})
		return c, nil
	default:
		return nil, fmt.Errorf("cache: unknown backend %q (want none, memory or redis)", cfg.Backend)
	}
}
