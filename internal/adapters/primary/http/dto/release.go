package dto

import (
	"fmt"
	"time"

	"release-viewer/internal/core/domain"
)

// ReleaseQueryRequest binds the page controls from the query string or a
// submitted form.
type ReleaseQueryRequest struct {
	Limit  string `form:"limit"`
	Filter string `form:"filter"`
	Q      string `form:"q"`
	Force  bool   `form:"force"`
}

// ToQuery maps the controls to a domain query. An unparsable limit is left
// at zero so the service applies its configured default.
func (r ReleaseQueryRequest) ToQuery() domain.Query {
	return domain.Query{
		Limit:     domain.ParseLimit(r.Limit, 0),
		FilterExt: r.Filter,
		Search:    r.Q,
	}
}

type QueryResponse struct {
	Limit  int    `json:"limit"`
	Filter string `json:"filter"`
	Q      string `json:"q"`
}

type AssetResponse struct {
	Name string `json:"name"`
	URL  string `json:"url"`
	Kind string `json:"kind"`
}

type CardResponse struct {
	Title     string          `json:"title"`
	Tag       string          `json:"tag"`
	Published string          `json:"published"`
	URL       string          `json:"url"`
	Assets    []AssetResponse `json:"assets"`
	Labels    []string        `json:"labels"`
	Fallback  bool            `json:"fallback"`
}

type RateLimitResponse struct {
	ResetInSeconds int64  `json:"reset_in_seconds,omitempty"`
	Message        string `json:"message"`
}

type ReleaseViewResponse struct {
	Query     QueryResponse      `json:"query"`
	Cards     []CardResponse     `json:"cards"`
	Empty     bool               `json:"empty"`
	Fetched   int                `json:"fetched"`
	FromCache bool               `json:"from_cache"`
	RateLimit *RateLimitResponse `json:"rate_limit,omitempty"`
}

func ToReleaseViewResponse(v *domain.View) ReleaseViewResponse {
	cards := make([]CardResponse, 0, len(v.Cards))
	for _, card := range v.Cards {
		cards = append(cards, ToCardResponse(card))
	}

	resp := ReleaseViewResponse{
		Query: QueryResponse{
			Limit:  v.Query.Limit,
			Filter: v.Query.FilterExt,
			Q:      v.Query.Search,
		},
		Cards:     cards,
		Empty:     v.Empty,
		Fetched:   v.Fetched,
		FromCache: v.FromCache,
	}
	if v.RateLimit != nil {
		resp.RateLimit = &RateLimitResponse{
			ResetInSeconds: int64(v.RateLimit.ResetIn / time.Second),
			Message:        RateLimitMessage(v.RateLimit),
		}
	}
	return resp
}

func ToCardResponse(card domain.Card) CardResponse {
	assets := make([]AssetResponse, 0, len(card.Assets))
	for _, a := range card.Assets {
		assets = append(assets, AssetResponse{Name: a.Name, URL: a.URL, Kind: string(a.Kind)})
	}
	labels := card.Labels
	if labels == nil {
		labels = []string{}
	}
	return CardResponse{
		Title:     card.Title,
		Tag:       card.Tag,
		Published: card.Published,
		URL:       card.URL,
		Assets:    assets,
		Labels:    labels,
		Fallback:  card.Fallback,
	}
}

// RateLimitMessage is the user-facing text for a rate-limit hint.
func RateLimitMessage(h *domain.RateLimitHint) string {
	if h == nil {
		return ""
	}
	if h.ResetIn <= 0 {
		return "GitHub API rate limit reached; the list may be incomplete. Set GITHUB_TOKEN to raise the limit."
	}
	return fmt.Sprintf("GitHub API rate limit reached; the list may be incomplete. The limit resets in %s.",
		h.ResetIn.Round(time.Second))
}
