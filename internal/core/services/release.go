package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"release-viewer/internal/core/domain"
	ports "release-viewer/internal/core/ports/output"
	"release-viewer/internal/metrics"
)

type ReleaseService struct {
	source       ports.ReleaseSource
	cache        ports.CacheStore
	tracker      *loadTracker
	location     *time.Location
	defaultLimit int
	metrics      *metrics.Metrics
}

func NewReleaseService(source ports.ReleaseSource, cache ports.CacheStore, location *time.Location, defaultLimit int, m *metrics.Metrics) *ReleaseService {
	if location == nil {
		location = time.Local
	}
	if defaultLimit <= 0 {
		defaultLimit = domain.DefaultLimit
	}
	return &ReleaseService{
		source:       source,
		cache:        cache,
		tracker:      newLoadTracker(),
		location:     location,
		defaultLimit: defaultLimit,
		metrics:      m,
	}
}

// Load renders q for the browsing session identified by scope. Unless force
// is set, a cached snapshot for the exact same query is rendered without
// touching the network. Otherwise the releases are fetched, rendered and
// cached. If any newer load for scope starts while this one is fetching, the
// result is dropped and ErrLoadSuperseded returned.
func (s *ReleaseService) Load(ctx context.Context, scope string, q domain.Query, force bool) (*domain.View, error) {
	q = q.Normalize(s.defaultLimit)
	key := q.CacheKey()

	// Every load, cached or not, supersedes the ones already in flight.
	token := s.tracker.begin(scope)
	defer s.tracker.end(scope, token)

	if !force {
		if view, ok := s.fromCache(ctx, key, q); ok {
			return view, nil
		}
	}

	result, err := s.source.ListReleases(ctx)
	if err != nil {
		s.metrics.LoadFinished(metrics.LoadCancelled)
		return nil, fmt.Errorf("list releases: %w", err)
	}

	if !s.tracker.isCurrent(scope, token) {
		s.metrics.LoadFinished(metrics.LoadSuperseded)
		log.WithFields(log.Fields{
			"scope": scope,
			"key":   key,
		}).Debug("dropping superseded load")
		return nil, domain.ErrLoadSuperseded
	}

	view := domain.NewView(result.Releases, q, s.location)
	view.RateLimit = result.RateLimit

	raw, err := json.Marshal(domain.NewSnapshot(result.Releases, q))
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	s.cache.Set(ctx, key, raw)
	s.metrics.LoadFinished(metrics.LoadRendered)

	log.WithFields(log.Fields{
		"key":     key,
		"fetched": len(result.Releases),
		"pages":   result.Pages,
		"cards":   len(view.Cards),
		"limited": result.RateLimit != nil,
		"force":   force,
	}).Debug("releases loaded")

	return view, nil
}

// Reload clears every cached snapshot of the session and forces a fresh
// load.
func (s *ReleaseService) Reload(ctx context.Context, scope string, q domain.Query) (*domain.View, error) {
	s.cache.Clear(ctx)
	return s.Load(ctx, scope, q, true)
}

// fromCache renders the snapshot stored under key. Distinct queries can share
// a key when the filter or search text contains ':', so the stored
// parameters must equal q.
func (s *ReleaseService) fromCache(ctx context.Context, key string, q domain.Query) (*domain.View, bool) {
	raw, ok := s.cache.Get(ctx, key)
	if !ok {
		s.metrics.CacheLookup(metrics.CacheMiss)
		return nil, false
	}

	var snap domain.Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		s.metrics.CacheLookup(metrics.CacheCorrupt)
		log.WithError(err).WithField("key", key).Warn("ignoring malformed cache entry")
		return nil, false
	}

	if snap.Params() != q {
		s.metrics.CacheLookup(metrics.CacheMismatch)
		log.WithFields(log.Fields{
			"key":    key,
			"stored": snap.Params(),
		}).Debug("cache entry belongs to another query")
		return nil, false
	}

	s.metrics.CacheLookup(metrics.CacheHit)
	view := domain.NewView(snap.All, q, s.location)
	view.FromCache = true
	return view, true
}
