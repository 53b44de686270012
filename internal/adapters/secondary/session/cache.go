package session

import (
	"context"
	"strings"

	"github.com/alexedwards/scs/v2"

	"release-viewer/internal/core/domain"
	ports "release-viewer/internal/core/ports/output"
)

type sessionCache struct {
	sm *scs.SessionManager
}

// NewSessionCache stores release snapshots in the browsing session that the
// session middleware loaded into the request context.
func NewSessionCache(sm *scs.SessionManager) ports.CacheStore {
	return &sessionCache{sm: sm}
}

func (c *sessionCache) Get(ctx context.Context, key string) ([]byte, bool) {
	if !c.sm.Exists(ctx, key) {
		return nil, false
	}
	b := c.sm.GetBytes(ctx, key)
	return b, b != nil
}

func (c *sessionCache) Set(ctx context.Context, key string, value []byte) {
	c.sm.Put(ctx, key, value)
}

// Clear removes snapshots only; other session values such as the viewer ID
// survive a reload.
func (c *sessionCache) Clear(ctx context.Context) {
	for _, key := range c.sm.Keys(ctx) {
		if strings.HasPrefix(key, domain.CacheKeyPrefix) {
			c.sm.Remove(ctx, key)
		}
	}
}
