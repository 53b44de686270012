package testutil

import (
	"context"
	"strconv"

	"github.com/stretchr/testify/mock"

	"release-viewer/internal/core/domain"
	ports "release-viewer/internal/core/ports/output"
)

// MockReleaseSource is a mock of ReleaseSource.
type MockReleaseSource struct {
	mock.Mock
}

func (m *MockReleaseSource) ListReleases(ctx context.Context) (*ports.FetchResult, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ports.FetchResult), args.Error(1)
}

// MockCacheStore is a mock of CacheStore.
type MockCacheStore struct {
	mock.Mock
}

func (m *MockCacheStore) Get(ctx context.Context, key string) ([]byte, bool) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Bool(1)
	}
	return args.Get(0).([]byte), args.Bool(1)
}

func (m *MockCacheStore) Set(ctx context.Context, key string, value []byte) {
	m.Called(ctx, key, value)
}

func (m *MockCacheStore) Clear(ctx context.Context) {
	m.Called(ctx)
}

// Releases builds n releases named r0..r{n-1}, each carrying the given asset
// names.
func Releases(n int, assets ...string) []domain.Release {
	out := make([]domain.Release, 0, n)
	for i := 0; i < n; i++ {
		rel := domain.Release{
			Name:        "r" + strconv.Itoa(i),
			TagName:     "v" + strconv.Itoa(i),
			PublishedAt: "2024-01-02T03:04:05Z",
			HTMLURL:     "https://github.com/acme/reports/releases/tag/v" + strconv.Itoa(i),
		}
		for _, name := range assets {
			rel.Assets = append(rel.Assets, domain.Asset{Name: name, DownloadURL: "https://dl/" + strconv.Itoa(i) + "/" + name})
		}
		out = append(out, rel)
	}
	return out
}
