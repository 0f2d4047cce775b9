package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveSort_namedSortsForceDirection(t *testing.T) {
	cases := []struct {
		name     string
		expected Sort
	}{
		{"newest", Sort{Column: "created_at", Desc: true}},
		{"oldest", Sort{Column: "created_at", Desc: false}},
		{"salary_low", Sort{Column: "salary_min", Desc: false}},
		{"salary_high", Sort{Column: "salary_max", Desc: true}},
	}

	for _, c := range cases {
		// sort_type must not override a named sort's direction
		got := ResolveSort(c.name, "asc", DirDesc)
		assert.Equal(t, c.expected, got, c.name)
		got = ResolveSort(c.name, "desc", DirAsc)
		assert.Equal(t, c.expected, got, c.name)
	}
}

func TestResolveSort_relevanceEnablesFeaturedPriority(t *testing.T) {
	for _, name := range []string{"relevance", "featured", ""} {
		got := ResolveSort(name, "", DirDesc)
		assert.True(t, got.FeaturedPriority, name)
		assert.Equal(t, "created_at", got.Column, name)
		assert.True(t, got.Desc, name)
	}
}

func TestResolveSort_allowListedColumns(t *testing.T) {
	got := ResolveSort("price", "asc", DirDesc)
	assert.Equal(t, Sort{Column: "price", Desc: false}, got)

	got = ResolveSort("title", "desc", DirAsc)
	assert.Equal(t, Sort{Column: "title", Desc: true}, got)

	// listing_id is the public name of the id column
	got = ResolveSort("listing_id", "", DirAsc)
	assert.Equal(t, Sort{Column: "id", Desc: false}, got)
}

func TestResolveSort_defaultDirectionPerEndpoint(t *testing.T) {
	got := ResolveSort("price", "", DirDesc)
	assert.True(t, got.Desc)

	got = ResolveSort("price", "", DirAsc)
	assert.False(t, got.Desc)

	got = ResolveSort("price", "sideways", DirAsc)
	assert.False(t, got.Desc)
}

// Arbitrary input must never reach ORDER BY as an identifier. Every
// unrecognized name resolves to the created_at fallback.
func TestResolveSort_unknownNamesFallBack(t *testing.T) {
	hostile := []string{
		"updated_at; DROP TABLE listings--",
		"created_at,price",
		"(SELECT 1)",
		"nope",
		"id",
	}
	for _, name := range hostile {
		got := ResolveSort(name, "asc", DirDesc)
		assert.Equal(t, Sort{Column: "created_at", Desc: true}, got, name)
	}
}

func TestResolveSort_caseAndWhitespaceInsensitive(t *testing.T) {
	got := ResolveSort("  NEWEST ", "", DirAsc)
	assert.Equal(t, Sort{Column: "created_at", Desc: true}, got)

	got = ResolveSort("Price", " ASC ", DirDesc)
	assert.Equal(t, Sort{Column: "price", Desc: false}, got)
}
