package cache

import (
	"context"
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultMemorySize bounds the number of cached menus when no size is configured.
const DefaultMemorySize = 1000

// MemoryProvider is a process-local LRU. Expired entries are dropped on read.
type MemoryProvider struct {
	entries *lru.Cache[string, entry]
	now     func() time.Time
}

type entry struct {
	value     string
	expiresAt time.Time
}

func NewMemoryProvider(size int) (*MemoryProvider, error) {
	if size <= 0 {
		size = DefaultMemorySize
	}
	entries, err := lru.New[string, entry](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create memory cache: %w", err)
	}
	return &MemoryProvider{entries: entries, now: time.Now}, nil
}

func (m *MemoryProvider) Get(_ context.Context, key string) (string, error) {
	cached, ok := m.entries.Get(key)
	if !ok {
		return "", ErrNotFound
	}
	if !m.now().Before(cached.expiresAt) {
		m.entries.Remove(key)
		return "", ErrNotFound
	}
	return cached.value, nil
}

func (m *MemoryProvider) Set(_ context.Context, key string, value string, ttl time.Duration) error {
	if ttl <= 0 {
		m.entries.Remove(key)
		return nil
	}
	m.entries.Add(key, entry{
		value:     value,
		expiresAt: m.now().Add(ttl),
	})
	return nil
}

func (m *MemoryProvider) Delete(_ context.Context, key string) error {
	m.entries.Remove(key)
	return nil
}

// Len reports the number of entries, including expired ones not yet read.
func (m *MemoryProvider) Len() int {
	return m.entries.Len()
}

func (m *MemoryProvider) Close() error {
	m.entries.Purge()
	return nil
}
