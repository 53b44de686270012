package domain

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtTag(t *testing.T) {
	tests := []struct {
		name     string
		expected AssetKind
	}{
		{"report.html", AssetKindHTML},
		{"REPORT.HTML", AssetKindHTML},
		{"Report.PDF", AssetKindPDF},
		{"notes.docx", AssetKindDOCX},
		{"cover.WebP", AssetKindWEBP},
		{"archive.tar.gz", AssetKindFile},
		{"README", AssetKindFile},
		{"", AssetKindFile},
		{"html", AssetKindFile},
		{"page.pdf.html", AssetKindHTML},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExtTag(tt.name))
		})
	}
}

func TestMatchFilter(t *testing.T) {
	tests := []struct {
		name      string
		asset     string
		filterExt string
		query     string
		expected  bool
	}{
		{"no filter no query", "a.bin", "", "", true},
		{"ext matches case-insensitively", "Report.PDF", ".pdf", "", true},
		{"ext mismatch", "Report.PDF", ".docx", "", false},
		{"query substring", "weekly-report.html", "", "REPORT", true},
		{"query miss", "weekly-report.html", "", "daily", false},
		{"ext and query both hold", "weekly-report.html", ".html", "weekly", true},
		{"ext holds query fails", "weekly-report.html", ".html", "daily", false},
		{"query holds ext fails", "weekly-report.html", ".pdf", "weekly", false},
		{"empty name with filter", "", ".pdf", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, MatchFilter(Asset{Name: tt.asset}, tt.filterExt, tt.query))
		})
	}
}

func TestFallbackAssets_PriorityOrder(t *testing.T) {
	assets := []Asset{
		{Name: "y.webp", DownloadURL: "u/y.webp"},
		{Name: "x.pdf", DownloadURL: "u/x.pdf"},
		{Name: "z.PDF", DownloadURL: "u/z.PDF"},
		{Name: "notes.txt"},
	}

	got := FallbackAssets(assets)
	require.Len(t, got, 2)
	assert.Equal(t, "x.pdf", got[0].Name)
	assert.Equal(t, "y.webp", got[1].Name)
}

func TestFallbackAssets_NothingPreferred(t *testing.T) {
	assert.Empty(t, FallbackAssets([]Asset{{Name: "a.zip"}, {Name: ""}}))
}

func TestExtensionLabels(t *testing.T) {
	assets := []Asset{
		{Name: "a.pdf"},
		{Name: "b.PDF"},
		{Name: "bundle.tar.gz"},
		{Name: "README"},
		{Name: "trailing."},
		{Name: ""},
	}

	assert.Equal(t, []string{"PDF", "GZ", "README"}, ExtensionLabels(assets))
}

func TestExtensionLabels_DifferFromExtTag(t *testing.T) {
	a := Asset{Name: "LICENSE"}
	assert.Equal(t, AssetKindFile, a.Kind())
	assert.Equal(t, []string{"LICENSE"}, ExtensionLabels([]Asset{a}))
}

func TestSelect_LimitKeepsSourceOrder(t *testing.T) {
	var all []Release
	for i := 0; i < 5; i++ {
		all = append(all, Release{Name: fmt.Sprintf("r%d", i), TagName: fmt.Sprintf("v%d", i)})
	}

	cards := Select(all, Query{Limit: 3}, time.UTC)
	require.Len(t, cards, 3)
	assert.Equal(t, "r0", cards[0].Title)
	assert.Equal(t, "r1", cards[1].Title)
	assert.Equal(t, "r2", cards[2].Title)
}

func TestSelect_LimitLargerThanList(t *testing.T) {
	cards := Select([]Release{{Name: "only"}}, Query{Limit: 20}, time.UTC)
	assert.Len(t, cards, 1)
}

func TestSelect_FilteredAssets(t *testing.T) {
	all := []Release{{
		Name: "r",
		Assets: []Asset{
			{Name: "a.pdf", DownloadURL: "u/a.pdf"},
			{Name: "b.html", DownloadURL: "u/b.html"},
			{Name: "c.pdf", DownloadURL: "u/c.pdf"},
		},
	}}

	cards := Select(all, Query{Limit: 1, FilterExt: ".pdf"}, time.UTC)
	require.Len(t, cards, 1)
	assert.False(t, cards[0].Fallback)
	assert.Equal(t, []AssetLink{
		{Name: "a.pdf", URL: "u/a.pdf", Kind: AssetKindPDF},
		{Name: "c.pdf", URL: "u/c.pdf", Kind: AssetKindPDF},
	}, cards[0].Assets)
	assert.ElementsMatch(t, []string{"PDF", "HTML"}, cards[0].Labels)
}

func TestSelect_FallbackWhenNothingMatches(t *testing.T) {
	all := []Release{{
		Name: "r",
		Assets: []Asset{
			{Name: "x.pdf", DownloadURL: "u/x.pdf"},
			{Name: "y.webp", DownloadURL: "u/y.webp"},
		},
	}}

	cards := Select(all, Query{Limit: 1, FilterExt: ".docx"}, time.UTC)
	require.Len(t, cards, 1)
	assert.True(t, cards[0].Fallback)
	require.Len(t, cards[0].Assets, 2)
	assert.Equal(t, "x.pdf", cards[0].Assets[0].Name)
	assert.Equal(t, "y.webp", cards[0].Assets[1].Name)
}

func TestSelect_ZeroAssetsNeverFallsBack(t *testing.T) {
	cards := Select([]Release{{Name: "r"}}, Query{Limit: 1, FilterExt: ".docx"}, time.UTC)
	require.Len(t, cards, 1)
	assert.False(t, cards[0].Fallback)
	assert.Empty(t, cards[0].Assets)
	assert.Empty(t, cards[0].Labels)
}

func TestSelect_CardFields(t *testing.T) {
	all := []Release{{
		TagName:   "v1.2.0",
		CreatedAt: "2024-03-01T10:20:30Z",
		HTMLURL:   "https://github.com/o/r/releases/tag/v1.2.0",
	}}

	cards := Select(all, Query{Limit: 1}, time.UTC)
	require.Len(t, cards, 1)
	assert.Equal(t, "v1.2.0", cards[0].Title)
	assert.Equal(t, "v1.2.0", cards[0].Tag)
	assert.Equal(t, "2024-03-01 10:20:30", cards[0].Published)
	assert.Equal(t, "https://github.com/o/r/releases/tag/v1.2.0", cards[0].URL)
}

func TestNewView_EmptyState(t *testing.T) {
	view := NewView(nil, Query{Limit: 20}, time.UTC)
	assert.True(t, view.Empty)
	assert.Empty(t, view.Cards)

	view = NewView([]Release{{Name: "r"}}, Query{Limit: 20}, time.UTC)
	assert.False(t, view.Empty)
	assert.Equal(t, 1, view.Fetched)
}

func TestRelease_Title(t *testing.T) {
	assert.Equal(t, "Name", Release{Name: "Name", TagName: "v1"}.Title())
	assert.Equal(t, "v1", Release{TagName: "v1"}.Title())
	assert.Equal(t, "(no title)", Release{}.Title())
}

func TestRelease_Timestamp(t *testing.T) {
	assert.Equal(t, "p", Release{PublishedAt: "p", CreatedAt: "c"}.Timestamp())
	assert.Equal(t, "c", Release{CreatedAt: "c"}.Timestamp())
}
