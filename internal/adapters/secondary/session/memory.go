package session

import (
	"context"
	"strings"
	"sync"

	"release-viewer/internal/core/domain"
	ports "release-viewer/internal/core/ports/output"
)

// memoryCache is a single-session cache for processes that are the session,
// such as the terminal client, and for tests.
type memoryCache struct {
	mu      sync.RWMutex
	entries map[string][]byte
}

func NewMemoryCache() ports.CacheStore {
	return &memoryCache{entries: make(map[string][]byte)}
}

func (c *memoryCache) Get(_ context.Context, key string) ([]byte, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	b, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	return append([]byte(nil), b...), true
}

func (c *memoryCache) Set(_ context.Context, key string, value []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = append([]byte(nil), value...)
}

func (c *memoryCache) Clear(_ context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for key := range c.entries {
		if strings.HasPrefix(key, domain.CacheKeyPrefix) {
			delete(c.entries, key)
		}
	}
}
