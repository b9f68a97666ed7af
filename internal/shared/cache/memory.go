package cache

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	goCache "github.com/patrickmn/go-cache"
)

// DefaultExpiration applies when neither the caller nor config give a TTL.
const DefaultExpiration = 5 * time.Minute

// DefaultCleanupInterval is how often expired items are removed.
const DefaultCleanupInterval = 10 * time.Minute

// Memory is a process local cache backed by go-cache.
type Memory struct {
	cache *goCache.Cache
}

func NewMemory(defaultTTL time.Duration) *Memory {
	if defaultTTL <= 0 {
		defaultTTL = DefaultExpiration
	}
	return &Memory{cache: goCache.New(defaultTTL, DefaultCleanupInterval)}
}

func (m *Memory) Get(_ context.Context, key string, dest any) (bool, error) {
	raw, ok := m.cache.Get(key)
	if !ok {
		return false, nil
	}
	b, ok := raw.([]byte)
	if !ok {
		m.cache.Delete(key)
		return false, nil
	}
	if err := json.Unmarshal(b, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (m *Memory) Set(_ context.Context, key string, value any, ttl time.Duration) error {
	b, err := encode(value)
	if err != nil {
		return err
	}
	if ttl <= 0 {
		ttl = goCache.DefaultExpiration
	}
	m.cache.Set(key, b, ttl)
	return nil
}

func (m *Memory) DeleteByPrefix(_ context.Context, prefix string) error {
	for k := range m.cache.Items() {
		if strings.HasPrefix(k, prefix) {
			m.cache.Delete(k)
		}
	}
	return nil
}

func (m *Memory) Ping(context.Context) error { return nil }

func (m *Memory) Name() string { return "memory" }
