package query

import (
	"strings"

	"building-catalog-service/internal/domain"
)

// NormalizeTerm trims and lowercases raw search input.
func NormalizeTerm(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// NormalizeCategory trims a category value; an empty value selects every category.
func NormalizeCategory(raw string) string {
	c := strings.TrimSpace(raw)
	if c == "" {
		return domain.CategoryAll
	}
	return c
}

// ResolveCategory normalizes raw and maps a value naming none of categories
// back to "all", so exactly one filter control is always active.
func ResolveCategory(categories []string, raw string) string {
	c := NormalizeCategory(raw)
	for _, known := range categories {
		if known == c {
			return c
		}
	}
	return domain.CategoryAll
}

// Filter applies the category predicate and then the search predicate to the
// full list. The result is a new slice in catalog order.
func Filter(products []domain.Product, state domain.QueryState) []domain.Product {
	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if MatchesCategory(p, state.ActiveCategory) && MatchesTerm(p, state.SearchTerm) {
			out = append(out, p)
		}
	}
	return out
}

// MatchesCategory is an exact, case-sensitive comparison; "all" matches everything.
func MatchesCategory(p domain.Product, category string) bool {
	return category == domain.CategoryAll || p.Category == category
}

// MatchesTerm reports whether the normalized term is a substring of the
// lowercased name, description or category. An empty term matches everything.
func MatchesTerm(p domain.Product, term string) bool {
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.Name), term) ||
		strings.Contains(strings.ToLower(p.Description), term) ||
		strings.Contains(strings.ToLower(p.Category), term)
}
