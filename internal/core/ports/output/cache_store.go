package ports

import "context"

// CacheStore is a session-scoped key/value store. Implementations resolve
// the session from ctx (or ignore it when there is only one session).
type CacheStore interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte)

	// Clear drops every cached release snapshot of the session.
	Clear(ctx context.Context)
}
