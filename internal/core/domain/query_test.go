package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuery_CacheKey(t *testing.T) {
	q := Query{Limit: 20, FilterExt: ".pdf", Search: "weekly"}
	assert.Equal(t, "releases:20:.pdf:weekly", q.CacheKey())

	assert.Equal(t, "releases:10::", Query{Limit: 10}.CacheKey())
}

func TestQuery_Normalize(t *testing.T) {
	q := Query{Limit: 0, FilterExt: " .PDF ", Search: "  Weekly Report "}.Normalize(20)

	assert.Equal(t, 20, q.Limit)
	assert.Equal(t, ".pdf", q.FilterExt)
	assert.Equal(t, "Weekly Report", q.Search)
}

func TestQuery_NormalizeKeepsPositiveLimit(t *testing.T) {
	assert.Equal(t, 5, Query{Limit: 5}.Normalize(20).Limit)
	assert.Equal(t, DefaultLimit, Query{Limit: -1}.Normalize(0).Limit)
}

func TestParseLimit(t *testing.T) {
	tests := []struct {
		raw      string
		expected int
	}{
		{"10", 10},
		{" 50 ", 50},
		{"", 20},
		{"abc", 20},
		{"0", 20},
		{"-3", 20},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseLimit(tt.raw, 20))
		})
	}
}

func TestSnapshot_JSONShape(t *testing.T) {
	snap := NewSnapshot([]Release{{Name: "r", TagName: "v1"}}, Query{Limit: 20, FilterExt: ".pdf", Search: "x"})

	raw, err := json.Marshal(snap)
	require.NoError(t, err)

	var generic map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &generic))
	assert.Contains(t, generic, "all")
	assert.Equal(t, float64(20), generic["limit"])
	assert.Equal(t, ".pdf", generic["filterExt"])
	assert.Equal(t, "x", generic["q"])

	assert.Equal(t, Query{Limit: 20, FilterExt: ".pdf", Search: "x"}, snap.Params())
}

func TestHumanDate(t *testing.T) {
	assert.Equal(t, "2024-01-02 03:04:05", HumanDate("2024-01-02T03:04:05Z", time.UTC))

	tokyo := time.FixedZone("JST", 9*60*60)
	assert.Equal(t, "2024-01-02 12:04:05", HumanDate("2024-01-02T03:04:05Z", tokyo))
}

func TestHumanDate_Unparsable(t *testing.T) {
	assert.Equal(t, "yesterday", HumanDate("yesterday", time.UTC))
	assert.Equal(t, "", HumanDate("", time.UTC))
}
