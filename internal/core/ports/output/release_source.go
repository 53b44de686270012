package ports

import (
	"context"

	"release-viewer/internal/core/domain"
)

// FetchResult is a best-effort listing: a short or empty Releases slice does
// not prove the upstream has no more data.
type FetchResult struct {
	Releases []domain.Release

	// RateLimit is set when any page came back 403.
	RateLimit *domain.RateLimitHint

	// Pages is the number of page requests issued.
	Pages int
}

// ReleaseSource defines the contract for retrieving releases, newest first
type ReleaseSource interface {
	// ListReleases pages through the upstream and stops at the first failure
	// or short page. It only returns an error when ctx is done.
	ListReleases(ctx context.Context) (*FetchResult, error)
}
