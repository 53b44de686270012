package github

import "release-viewer/internal/core/domain"

// gitRelease is the subset of the GitHub release payload the viewer reads.
type gitRelease struct {
	Name        string     `json:"name"`
	TagName     string     `json:"tag_name"`
	Draft       bool       `json:"draft"`
	Prerelease  bool       `json:"prerelease"`
	CreatedAt   string     `json:"created_at"`
	PublishedAt string     `json:"published_at"`
	HTMLURL     string     `json:"html_url"`
	Assets      []gitAsset `json:"assets"`
}

type gitAsset struct {
	Name               string `json:"name"`
	ContentType        string `json:"content_type"`
	Size               int64  `json:"size"`
	BrowserDownloadURL string `json:"browser_download_url"`
}

func (r gitRelease) toDomain() domain.Release {
	assets := make([]domain.Asset, 0, len(r.Assets))
	for _, a := range r.Assets {
		assets = append(assets, domain.Asset{
			Name:        a.Name,
			DownloadURL: a.BrowserDownloadURL,
		})
	}
	return domain.Release{
		Name:        r.Name,
		TagName:     r.TagName,
		PublishedAt: r.PublishedAt,
		CreatedAt:   r.CreatedAt,
		HTMLURL:     r.HTMLURL,
		Assets:      assets,
	}
}
