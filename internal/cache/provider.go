// Package cache provides caching for menus loaded from the menu source.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var ErrNotFound = errors.New("key not found")

// Provider stores serialized values under string keys with a TTL.
type Provider interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

type Config struct {
	Provider              string
	MemorySize            int
	RedisConnectionString string
	KeyPrefix             string
}

func NewProvider(cfg Config) (Provider, error) {
	switch cfg.Provider {
	case "memory", "":
		return NewMemoryProvider(cfg.MemorySize)
	case "redis":
		return NewRedisProvider(cfg.RedisConnectionString, cfg.KeyPrefix)
	default:
		return nil, fmt.Errorf("unsupported cache provider: %s", cfg.Provider)
	}
}

// MenuKey is the cache key of a product menu.
func MenuKey(productID int64) string {
	return fmt.Sprintf("menu:%d", productID)
}
