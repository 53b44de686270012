package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"release-viewer/internal/adapters/secondary/postgres"
	"release-viewer/internal/config"
)

const (
	StoreMemory   = "memory"
	StoreRedis    = "redis"
	StorePostgres = "postgres"

	viewerIDKey     = "viewer_id"
	cleanupInterval = 5 * time.Minute
)

// ErrUnknownStore is returned by OpenStore for a SESSION_STORE value it does
// not support.
var ErrUnknownStore = errors.New("unknown session store")

// NewManager builds a session manager whose cookie lives only as long as the
// browser session. A nil store keeps the scs in-memory store.
func NewManager(cfg *config.SessionConfig, store scs.Store) *scs.SessionManager {
	sm := scs.New()
	if store != nil {
		sm.Store = store
	}
	if cfg.IdleTimeout > 0 {
		sm.IdleTimeout = cfg.IdleTimeout
	}
	if cfg.Lifetime > 0 {
		sm.Lifetime = cfg.Lifetime
	}
	if cfg.CookieName != "" {
		sm.Cookie.Name = cfg.CookieName
	}
	sm.Cookie.HttpOnly = true
	sm.Cookie.SameSite = http.SameSiteLaxMode
	sm.Cookie.Persist = false
	sm.Cookie.Secure = cfg.Secure
	return sm
}

// OpenStore connects the backing store named by cfg.Session.Store. The
// returned closer releases its connections.
func OpenStore(ctx context.Context, cfg *config.Config) (scs.Store, func(), error) {
	switch cfg.Session.Store {
	case "", StoreMemory:
		log.Info("session store: memory")
		return nil, func() {}, nil

	case StoreRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("ping redis: %w", err)
		}
		log.WithField("addr", cfg.Redis.Addr).Info("session store: redis")
		return NewRedisStore(client, cfg.Redis.Prefix), func() { _ = client.Close() }, nil

	case StorePostgres:
		pool, err := postgres.NewPool(ctx, &cfg.Database)
		if err != nil {
			return nil, nil, err
		}

		store := postgres.NewSessionStore(pool)
		if err := store.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}

		cleanupCtx, stop := context.WithCancel(context.Background())
		store.StartCleanup(cleanupCtx, cleanupInterval)

		log.WithField("host", cfg.Database.Host).Info("session store: postgres")
		return store, func() { stop(); pool.Close() }, nil

	default:
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownStore, cfg.Session.Store)
	}
}

// ViewerID returns the stable identifier of the browsing session, minting
// one on first use.
func ViewerID(ctx context.Context, sm *scs.SessionManager) string {
	id := sm.GetString(ctx, viewerIDKey)
	if id == "" {
		id = uuid.New().String()
		sm.Put(ctx, viewerIDKey, id)
	}
	return id
}
