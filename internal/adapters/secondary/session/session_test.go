package session

import (
	"context"
	"testing"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"release-viewer/internal/config"
	"release-viewer/internal/core/domain"
)

func loadedContext(t *testing.T, sm *scs.SessionManager) context.Context {
	t.Helper()
	ctx, err := sm.Load(context.Background(), "")
	require.NoError(t, err)
	return ctx
}

func TestSessionCache_GetSet(t *testing.T) {
	sm := scs.New()
	ctx := loadedContext(t, sm)
	cache := NewSessionCache(sm)

	_, ok := cache.Get(ctx, "releases:20::")
	assert.False(t, ok)

	cache.Set(ctx, "releases:20::", []byte(`{"all":[]}`))

	b, ok := cache.Get(ctx, "releases:20::")
	assert.True(t, ok)
	assert.JSONEq(t, `{"all":[]}`, string(b))
}

func TestSessionCache_ClearKeepsViewerID(t *testing.T) {
	sm := scs.New()
	ctx := loadedContext(t, sm)
	cache := NewSessionCache(sm)

	id := ViewerID(ctx, sm)
	cache.Set(ctx, domain.Query{Limit: 10}.CacheKey(), []byte("a"))
	cache.Set(ctx, domain.Query{Limit: 20, FilterExt: ".pdf"}.CacheKey(), []byte("b"))

	cache.Clear(ctx)

	_, ok := cache.Get(ctx, domain.Query{Limit: 10}.CacheKey())
	assert.False(t, ok)
	_, ok = cache.Get(ctx, domain.Query{Limit: 20, FilterExt: ".pdf"}.CacheKey())
	assert.False(t, ok)
	assert.Equal(t, id, ViewerID(ctx, sm))
}

func TestSessionCache_SessionsAreIsolated(t *testing.T) {
	sm := scs.New()
	cache := NewSessionCache(sm)

	first := loadedContext(t, sm)
	second := loadedContext(t, sm)

	cache.Set(first, "releases:20::", []byte("first"))

	_, ok := cache.Get(second, "releases:20::")
	assert.False(t, ok)
}

func TestViewerID_Stable(t *testing.T) {
	sm := scs.New()
	ctx := loadedContext(t, sm)

	id := ViewerID(ctx, sm)
	assert.NotEmpty(t, id)
	assert.Equal(t, id, ViewerID(ctx, sm))

	other := loadedContext(t, sm)
	assert.NotEqual(t, id, ViewerID(other, sm))
}

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()
	cache := NewMemoryCache()

	value := []byte("snapshot")
	cache.Set(ctx, "releases:20::", value)
	value[0] = 'X'

	b, ok := cache.Get(ctx, "releases:20::")
	require.True(t, ok)
	assert.Equal(t, "snapshot", string(b))

	cache.Set(ctx, "other", []byte("kept"))
	cache.Clear(ctx)

	_, ok = cache.Get(ctx, "releases:20::")
	assert.False(t, ok)
	_, ok = cache.Get(ctx, "other")
	assert.True(t, ok)
}

func TestNewManager(t *testing.T) {
	sm := NewManager(&config.SessionConfig{
		IdleTimeout: 5 * time.Minute,
		Lifetime:    time.Hour,
		CookieName:  "rv",
		Secure:      true,
	}, nil)

	assert.Equal(t, 5*time.Minute, sm.IdleTimeout)
	assert.Equal(t, time.Hour, sm.Lifetime)
	assert.Equal(t, "rv", sm.Cookie.Name)
	assert.False(t, sm.Cookie.Persist)
	assert.True(t, sm.Cookie.HttpOnly)
	assert.True(t, sm.Cookie.Secure)
}

func TestOpenStore_Memory(t *testing.T) {
	store, closer, err := OpenStore(context.Background(), &config.Config{Session: config.SessionConfig{Store: StoreMemory}})
	require.NoError(t, err)
	assert.Nil(t, store)
	closer()
}

func TestOpenStore_Unknown(t *testing.T) {
	_, _, err := OpenStore(context.Background(), &config.Config{Session: config.SessionConfig{Store: "etcd"}})
	assert.ErrorIs(t, err, ErrUnknownStore)
}
