package domain

import (
	"strings"
	"time"
)

// AssetLink is one download link on a card.
type AssetLink struct {
	Name string    `json:"name"`
	URL  string    `json:"url"`
	Kind AssetKind `json:"kind"`
}

// Card is the display model of one release.
type Card struct {
	Title     string      `json:"title"`
	Tag       string      `json:"tag"`
	Published string      `json:"published"`
	URL       string      `json:"url"`
	Assets    []AssetLink `json:"assets"`
	Labels    []string    `json:"labels"`
	// Fallback is set when Assets holds representative assets because
	// nothing matched the filter and query.
	Fallback bool `json:"fallback"`
}

// RateLimitHint is surfaced when the upstream API answered 403.
type RateLimitHint struct {
	// ResetIn is zero when the upstream did not say when the limit resets.
	ResetIn time.Duration `json:"reset_in"`
}

// View is everything a presenter needs to paint one load.
type View struct {
	Query     Query          `json:"query"`
	Cards     []Card         `json:"cards"`
	Empty     bool           `json:"empty"`
	Fetched   int            `json:"fetched"`
	FromCache bool           `json:"from_cache"`
	RateLimit *RateLimitHint `json:"rate_limit,omitempty"`
}

// MatchFilter reports whether an asset passes both the extension filter and
// the search text. Empty values pass everything.
func MatchFilter(a Asset, filterExt, query string) bool {
	name := strings.ToLower(a.Name)
	hitExt := filterExt == "" || strings.HasSuffix(name, strings.ToLower(filterExt))
	hitQ := query == "" || strings.Contains(name, strings.ToLower(query))
	return hitExt && hitQ
}

// FilterAssets keeps the assets that pass MatchFilter, in order.
func FilterAssets(assets []Asset, filterExt, query string) []Asset {
	var out []Asset
	for _, a := range assets {
		if MatchFilter(a, filterExt, query) {
			out = append(out, a)
		}
	}
	return out
}

// FallbackAssets picks, for each preferred extension in priority order, the
// first asset whose name ends with it. The user's filter is ignored.
func FallbackAssets(assets []Asset) []Asset {
	var out []Asset
	for _, ext := range PreferredExtensions {
		for _, a := range assets {
			if a.Name != "" && strings.HasSuffix(strings.ToLower(a.Name), ext) {
				out = append(out, a)
				break
			}
		}
	}
	return out
}

// ExtensionLabels derives unique uppercase labels by splitting each asset name
// on its last dot. A name without a dot contributes the whole name, so labels
// can disagree with ExtTag; that is expected.
func ExtensionLabels(assets []Asset) []string {
	seen := make(map[string]struct{}, len(assets))
	labels := make([]string, 0, len(assets))
	for _, a := range assets {
		label := a.Name
		if i := strings.LastIndex(label, "."); i >= 0 {
			label = label[i+1:]
		}
		label = strings.ToUpper(label)
		if label == "" {
			continue
		}
		if _, ok := seen[label]; ok {
			continue
		}
		seen[label] = struct{}{}
		labels = append(labels, label)
	}
	return labels
}

// Select builds cards for the first q.Limit releases, newest first as
// received.
func Select(all []Release, q Query, loc *time.Location) []Card {
	n := q.Limit
	if n < 0 {
		n = 0
	}
	if n > len(all) {
		n = len(all)
	}

	cards := make([]Card, 0, n)
	for _, rel := range all[:n] {
		shown := FilterAssets(rel.Assets, q.FilterExt, q.Search)
		fallback := false
		if len(shown) == 0 && len(rel.Assets) > 0 {
			shown = FallbackAssets(rel.Assets)
			fallback = true
		}

		links := make([]AssetLink, 0, len(shown))
		for _, a := range shown {
			links = append(links, AssetLink{Name: a.Name, URL: a.DownloadURL, Kind: a.Kind()})
		}

		cards = append(cards, Card{
			Title:     rel.Title(),
			Tag:       rel.TagName,
			Published: HumanDate(rel.Timestamp(), loc),
			URL:       rel.HTMLURL,
			Assets:    links,
			Labels:    ExtensionLabels(rel.Assets),
			Fallback:  fallback,
		})
	}
	return cards
}

// NewView selects cards and sets the empty-state flag.
func NewView(all []Release, q Query, loc *time.Location) *View {
	cards := Select(all, q, loc)
	return &View{
		Query:   q,
		Cards:   cards,
		Empty:   len(cards) == 0,
		Fetched: len(all),
	}
}
