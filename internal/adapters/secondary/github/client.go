package github

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"release-viewer/internal/config"
	"release-viewer/internal/core/domain"
	ports "release-viewer/internal/core/ports/output"
	"release-viewer/internal/metrics"
)

const (
	acceptHeader   = "application/vnd.github+json"
	headerRLReset  = "X-Ratelimit-Reset"
	defaultPerPage = 30
)

type releaseClient struct {
	httpClient *http.Client
	baseURL    string
	owner      string
	repo       string
	token      string
	perPage    int
	maxPages   int
	metrics    *metrics.Metrics
	now        func() time.Time
}

// NewReleaseClient creates a ReleaseSource backed by the GitHub REST API
func NewReleaseClient(cfg *config.GitHubConfig, m *metrics.Metrics) ports.ReleaseSource {
	return newReleaseClient(cfg, &http.Client{Timeout: cfg.Timeout}, m)
}

func newReleaseClient(cfg *config.GitHubConfig, httpClient *http.Client, m *metrics.Metrics) *releaseClient {
	perPage := cfg.PerPage
	if perPage <= 0 {
		perPage = defaultPerPage
	}

	return &releaseClient{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(cfg.APIURL, "/"),
		owner:      cfg.Owner,
		repo:       cfg.Repo,
		token:      cfg.Token,
		perPage:    perPage,
		maxPages:   cfg.MaxPages(),
		metrics:    m,
		now:        time.Now,
	}
}

func (c *releaseClient) ListReleases(ctx context.Context) (*ports.FetchResult, error) {
	start := time.Now()
	defer func() { c.metrics.ObserveFetch(time.Since(start)) }()

	result := &ports.FetchResult{}
	for page := 1; page <= c.maxPages; page++ {
		releases, hint, err := c.fetchPage(ctx, page)
		result.Pages++

		if hint != nil && result.RateLimit == nil {
			result.RateLimit = hint
		}

		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return result, fmt.Errorf("list releases: %w", ctxErr)
			}
			log.WithError(err).WithFields(log.Fields{
				"owner":    c.owner,
				"repo":     c.repo,
				"page":     page,
				"releases": len(result.Releases),
			}).Warn("release listing truncated")
			break
		}

		result.Releases = append(result.Releases, releases...)

		// A short page means there is nothing after it.
		if len(releases) < c.perPage {
			break
		}
	}

	return result, nil
}

func (c *releaseClient) fetchPage(ctx context.Context, page int) ([]domain.Release, *domain.RateLimitHint, error) {
	reqURL := fmt.Sprintf("%s/repos/%s/%s/releases?per_page=%d&page=%d",
		c.baseURL, url.PathEscape(c.owner), url.PathEscape(c.repo), c.perPage, page)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("create releases request: %w", err)
	}
	req.Header.Set("Accept", acceptHeader)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	log.WithFields(log.Fields{
		"url":  reqURL,
		"page": page,
	}).Debug("fetching release page")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.ObservePage(0)
		return nil, nil, fmt.Errorf("fetch releases page %d: %w", page, err)
	}
	defer resp.Body.Close()

	c.metrics.ObservePage(resp.StatusCode)

	var hint *domain.RateLimitHint
	if resp.StatusCode == http.StatusForbidden {
		c.metrics.RateLimited()
		hint = &domain.RateLimitHint{}
		if until, ok := parseRateLimitReset(resp.Header, c.now()); ok {
			hint.ResetIn = until
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, hint, fmt.Errorf("fetch releases page %d: unexpected status %d", page, resp.StatusCode)
	}

	var payload []gitRelease
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, hint, fmt.Errorf("decode releases page %d: %w", page, err)
	}

	releases := make([]domain.Release, 0, len(payload))
	for _, r := range payload {
		releases = append(releases, r.toDomain())
	}
	return releases, hint, nil
}

// parseRateLimitReset reads the epoch in X-RateLimit-Reset and returns how
// long until it passes.
func parseRateLimitReset(h http.Header, now time.Time) (time.Duration, bool) {
	raw := h.Get(headerRLReset)
	if raw == "" {
		return 0, false
	}

	reset, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false
	}

	until := time.Unix(reset, 0).Sub(now.UTC())
	if until < 0 {
		until = 0
	}
	return until, true
}
