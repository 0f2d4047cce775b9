package search

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"adboard-backend/internal/model"
)

// FilterSpec is the validated set of search predicates for one query.
// Built once from raw request parameters, immutable thereafter.
//
// CategoryIDs carries the expanded category filter: nil means no category
// filter, a non-nil empty slice means "match nothing" (stale or mistyped
// category reference). When CategoryIDs is nil and CategoryRef is set, the
// engine resolves the reference through ExpandCategory before querying.
type FilterSpec struct {
	Keyword     string
	CategoryRef string
	CategoryIDs []uint
	CurrencyIDs []uint
	MinPrice    *float64
	MaxPrice    *float64
	JobTypes    []string
	SalaryMin   *float64
	SalaryMax   *float64
	LocationIDs []uint
	Status      string
	Promos      []model.PromoFlag
	CustomerID  *uuid.UUID
}

// promoParams maps the query parameter name of each promotional toggle to
// its flag. A flag filter is applied only when the key is present and its
// value parses as true.
var promoParams = []struct {
	key  string
	flag model.PromoFlag
}{
	{"featured", model.PromoFeatured},
	{"suggested", model.PromoSuggested},
	{"paid", model.PromoPaid},
	{"promoted", model.PromoPromoted},
	{"sponsored", model.PromoSponsored},
	{"business", model.PromoBusiness},
	{"store", model.PromoStore},
}

// BuildFilterSpec parses raw query parameters into a FilterSpec. Parsing is
// permissive: malformed values are treated as "not specified", never as an
// error. The coercion rule per field lives here and nowhere else.
func BuildFilterSpec(q url.Values) FilterSpec {
	spec := FilterSpec{
		Keyword:     strings.TrimSpace(q.Get("keyword")),
		CategoryRef: strings.TrimSpace(q.Get("category")),
		CurrencyIDs: parseIDList(q["currency"]),
		MinPrice:    parseDecimal(q.Get("min_price")),
		MaxPrice:    parseDecimal(q.Get("max_price")),
		JobTypes:    parseList(q["job_type"]),
		SalaryMin:   parseDecimal(q.Get("salary_min")),
		SalaryMax:   parseDecimal(q.Get("salary_max")),
		LocationIDs: parseIDList(q["location_id"]),
		Status:      parseStatus(q.Get("status")),
	}

	for _, p := range promoParams {
		if !q.Has(p.key) {
			continue
		}
		if parseLenientBool(q.Get(p.key)) {
			spec.Promos = append(spec.Promos, p.flag)
		}
	}

	return spec
}

// parseLenientBool accepts "true"/"1"/"yes" (case-insensitive) as true;
// everything else is false.
func parseLenientBool(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "1", "yes":
		return true
	}
	return false
}

// parseDecimal coerces a numeric parameter; non-numeric input means absent.
func parseDecimal(raw string) *float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &v
}

// parseList normalizes a list-valued parameter: accepts repeated keys or a
// comma-separated string, trims tokens, drops empties.
func parseList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, tok := range strings.Split(v, ",") {
			tok = strings.TrimSpace(tok)
			if tok != "" {
				out = append(out, tok)
			}
		}
	}
	return out
}

// parseIDList is parseList for numeric ids; non-numeric tokens are dropped.
func parseIDList(values []string) []uint {
	var out []uint
	for _, tok := range parseList(values) {
		id, err := strconv.ParseUint(tok, 10, 64)
		if err != nil {
			continue
		}
		out = append(out, uint(id))
	}
	return out
}

// parseStatus accepts only the known listing statuses; anything else is
// "unspecified" and the engine falls back to the active default.
func parseStatus(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case model.StatusActive:
		return model.StatusActive
	case model.StatusInactive:
		return model.StatusInactive
	}
	return ""
}
