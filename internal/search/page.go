package search

import (
	"net/url"
	"strconv"
	"strings"

	"adboard-backend/internal/model"
)

// Pagination defaults. Legacy skip/limit callers default to 10 rows,
// page/per_page callers to 15, capped at 100.
const (
	defaultLimit   = 10
	defaultPerPage = 15
	maxPerPage     = 100
)

// PageRequest carries one of two pagination modes, never both: legacy
// skip/limit (Skip non-nil) or page/per_page. ParsePageRequest decides the
// mode; presence of the skip key, even with an empty value, selects
// skip/limit semantics.
type PageRequest struct {
	Skip    *int
	Limit   int
	Page    int
	PerPage int
}

// ParsePageRequest normalizes raw pagination parameters. Invalid values
// degrade to defaults, matching the permissive filter parsing.
func ParsePageRequest(q url.Values) PageRequest {
	if q.Has("skip") {
		skip := parseNonNegative(q.Get("skip"), 0)
		limit := parseNonNegative(q.Get("limit"), defaultLimit)
		if limit < 1 {
			limit = defaultLimit
		}
		return PageRequest{Skip: &skip, Limit: limit}
	}

	page := parseNonNegative(q.Get("page"), 1)
	if page < 1 {
		page = 1
	}
	perPage := parseNonNegative(q.Get("per_page"), defaultPerPage)
	if perPage < 1 {
		perPage = defaultPerPage
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}
	return PageRequest{Page: page, PerPage: perPage}
}

// Offset returns the number of rows to skip in either mode.
func (p PageRequest) Offset() int {
	if p.Skip != nil {
		return *p.Skip
	}
	return (p.Page - 1) * p.PerPage
}

// Size returns the page size in either mode.
func (p PageRequest) Size() int {
	if p.Skip != nil {
		return p.Limit
	}
	return p.PerPage
}

// CurrentPage maps either mode onto a 1-indexed page number. A skip that is
// not a whole multiple of limit rounds down to the page containing it.
func (p PageRequest) CurrentPage() int {
	if p.Skip != nil {
		if p.Limit < 1 {
			return 1
		}
		return *p.Skip/p.Limit + 1
	}
	return p.Page
}

// PageResult is the normalized page envelope callers serialize field for
// field; its JSON shape is a de facto contract.
type PageResult struct {
	Items       []model.Listing `json:"items"`
	Total       int64           `json:"total"`
	PerPage     int             `json:"per_page"`
	CurrentPage int             `json:"current_page"`
	LastPage    int             `json:"last_page"`
	From        int             `json:"from"`
	To          int             `json:"to"`
}

// newPageResult shapes a fetched page. Empty results use one convention in
// both pagination modes: last_page, from and to are all zero.
func newPageResult(items []model.Listing, total int64, perPage, currentPage int) PageResult {
	res := PageResult{
		Items:       items,
		Total:       total,
		PerPage:     perPage,
		CurrentPage: currentPage,
	}
	if items == nil {
		res.Items = []model.Listing{}
	}
	if total == 0 || perPage < 1 {
		return res
	}

	res.LastPage = int((total + int64(perPage) - 1) / int64(perPage))
	res.From = (currentPage-1)*perPage + 1
	res.To = currentPage * perPage
	if int64(res.To) > total {
		res.To = int(total)
	}
	return res
}

func parseNonNegative(raw string, fallback int) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return fallback
	}
	return v
}
