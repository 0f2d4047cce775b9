package search

import "strings"

// Directions accepted for sort_type. Anything else falls back to the
// endpoint's default: desc for public search, asc for my-listings. That
// asymmetry is intentional and preserved per call site.
const (
	DirAsc  = "asc"
	DirDesc = "desc"
)

// Sort is a resolved, safe ordering: a concrete column drawn from the
// allow-list plus a direction. FeaturedPriority asks the engine to rank
// currently-featured listings first before applying Column.
type Sort struct {
	Column           string
	Desc             bool
	FeaturedPriority bool
}

// sortColumns are the user-facing sort names that map to a column of the
// same meaning and honor the caller-supplied direction. This is a closed
// list; it is the only way a sort name ever reaches an ORDER BY identifier.
var sortColumns = map[string]string{
	"created_at": "created_at",
	"updated_at": "updated_at",
	"listing_id": "id",
	"title":      "title",
	"price":      "price",
}

// ResolveSort maps a free-text sort name and direction onto the allow-list.
// Named sorts force their direction; unknown names fall back to
// created_at/desc. defaultDir decides the direction when sortType is not a
// recognized direction string.
func ResolveSort(name, sortType, defaultDir string) Sort {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "newest":
		return Sort{Column: "created_at", Desc: true}
	case "oldest":
		return Sort{Column: "created_at", Desc: false}
	case "salary_low":
		return Sort{Column: "salary_min", Desc: false}
	case "salary_high":
		return Sort{Column: "salary_max", Desc: true}
	case "relevance", "featured", "":
		return Sort{Column: "created_at", Desc: true, FeaturedPriority: true}
	default:
		if col, ok := sortColumns[strings.ToLower(strings.TrimSpace(name))]; ok {
			return Sort{Column: col, Desc: resolveDirection(sortType, defaultDir)}
		}
		return Sort{Column: "created_at", Desc: true}
	}
}

func resolveDirection(sortType, defaultDir string) bool {
	switch strings.ToLower(strings.TrimSpace(sortType)) {
	case DirAsc:
		return false
	case DirDesc:
		return true
	}
	return strings.ToLower(strings.TrimSpace(defaultDir)) == DirDesc
}
