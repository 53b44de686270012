package domain

import "strings"

// ============================================================================
// Value Objects
// ============================================================================

// AssetKind is the coarse type tag shown next to an asset link.
type AssetKind string

const (
	AssetKindHTML AssetKind = "HTML"
	AssetKindPDF  AssetKind = "PDF"
	AssetKindDOCX AssetKind = "DOCX"
	AssetKindWEBP AssetKind = "WEBP"
	AssetKindFile AssetKind = "FILE"
)

// PreferredExtensions is the fixed priority order used both for classifying
// assets and for picking representative assets when nothing matches a filter.
var PreferredExtensions = []string{".html", ".pdf", ".docx", ".webp"}

var extensionKinds = map[string]AssetKind{
	".html": AssetKindHTML,
	".pdf":  AssetKindPDF,
	".docx": AssetKindDOCX,
	".webp": AssetKindWEBP,
}

// ExtTag classifies a file name by a case-insensitive suffix check against
// PreferredExtensions, in that order.
func ExtTag(name string) AssetKind {
	lower := strings.ToLower(name)
	for _, ext := range PreferredExtensions {
		if strings.HasSuffix(lower, ext) {
			return extensionKinds[ext]
		}
	}
	return AssetKindFile
}

// ============================================================================
// Entities
// ============================================================================

// Release is one published version of the project. Field names follow the
// GitHub REST payload so cached snapshots keep the upstream shape.
type Release struct {
	Name        string  `json:"name"`
	TagName     string  `json:"tag_name"`
	PublishedAt string  `json:"published_at,omitempty"`
	CreatedAt   string  `json:"created_at,omitempty"`
	HTMLURL     string  `json:"html_url"`
	Assets      []Asset `json:"assets"`
}

// Asset is a downloadable file attached to a release.
type Asset struct {
	Name        string `json:"name"`
	DownloadURL string `json:"browser_download_url"`
}

// Kind returns the asset's type tag.
func (a Asset) Kind() AssetKind {
	return ExtTag(a.Name)
}

// Title falls back from the release name to its tag.
func (r Release) Title() string {
	if r.Name != "" {
		return r.Name
	}
	if r.TagName != "" {
		return r.TagName
	}
	return "(no title)"
}

// Timestamp is the publish time, or the creation time for drafts.
func (r Release) Timestamp() string {
	if r.PublishedAt != "" {
		return r.PublishedAt
	}
	return r.CreatedAt
}
