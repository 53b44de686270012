package domain

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	// CacheKeyPrefix namespaces release snapshots inside a session.
	CacheKeyPrefix = "releases:"

	DefaultLimit = 20
)

// Query is the user-selected view state. It doubles as the cache key.
type Query struct {
	Limit     int    `json:"limit"`
	FilterExt string `json:"filterExt"`
	Search    string `json:"q"`
}

// ParseLimit reads a limit control value, falling back when it is missing,
// unparsable or not positive.
func ParseLimit(raw string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

// Normalize lowercases the extension filter, trims the search text and
// replaces a non-positive limit with defaultLimit.
func (q Query) Normalize(defaultLimit int) Query {
	if defaultLimit <= 0 {
		defaultLimit = DefaultLimit
	}
	if q.Limit <= 0 {
		q.Limit = defaultLimit
	}
	q.FilterExt = strings.ToLower(strings.TrimSpace(q.FilterExt))
	q.Search = strings.TrimSpace(q.Search)
	return q
}

// CacheKey serializes the query as releases:{limit}:{filterExt}:{q}.
func (q Query) CacheKey() string {
	return fmt.Sprintf("%s%d:%s:%s", CacheKeyPrefix, q.Limit, q.FilterExt, q.Search)
}

// Snapshot is what a cache entry holds: every fetched release plus the
// parameters that were used to render it.
type Snapshot struct {
	All       []Release `json:"all"`
	Limit     int       `json:"limit"`
	FilterExt string    `json:"filterExt"`
	Query     string    `json:"q"`
}

// NewSnapshot pairs fetched releases with the query that rendered them.
func NewSnapshot(all []Release, q Query) Snapshot {
	return Snapshot{All: all, Limit: q.Limit, FilterExt: q.FilterExt, Query: q.Search}
}

// Params returns the query stored alongside the releases.
func (s Snapshot) Params() Query {
	return Query{Limit: s.Limit, FilterExt: s.FilterExt, Search: s.Query}
}
