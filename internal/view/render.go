package view

import (
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"building-catalog-service/internal/domain"
)

const (
	loadingMessage     = "Loading products..."
	noResultsHint      = "Try searching with different keywords or view all products."
	noCategoryResults  = "No products found in this category"
	noSearchResultsFmt = "No products found for \"%s\""
	allCategoriesLabel = "All Products"
	categorySeparators = "/-_"
)

// imageExtensions are matched as a case-insensitive suffix of the icon value.
var imageExtensions = []string{".png", ".jpg", ".jpeg", ".gif", ".webp", ".svg", ".avif"}

// Render maps the already filtered products to a grid description. ready is
// false while the catalog is still absent.
func Render(state domain.QueryState, products []domain.Product, ready bool) Grid {
	if !ready {
		return Grid{Kind: GridLoading, Loading: &LoadingState{Message: loadingMessage}}
	}
	if len(products) == 0 {
		return Grid{Kind: GridEmpty, Empty: emptyState(state.SearchTerm)}
	}

	cards := make([]Card, len(products))
	for i, p := range products {
		delay := time.Duration(i) * StaggerStep
		cards[i] = Card{
			ID:            p.ID,
			Icon:          ResolveIcon(p.Icon),
			Name:          p.Name,
			CategoryLabel: CategoryLabel(p.Category),
			Price:         p.Price,
			Description:   p.Description,
			Delay:         delay,
			DelayMillis:   delay.Milliseconds(),
		}
	}
	return Grid{Kind: GridCards, Cards: cards}
}

func emptyState(term string) *EmptyState {
	if term == "" {
		return &EmptyState{Message: noCategoryResults, Hint: noResultsHint}
	}
	return &EmptyState{
		Message:   fmt.Sprintf(noSearchResultsFmt, term),
		Hint:      noResultsHint,
		Term:      term,
		ShowClear: true,
	}
}

// ResolveIcon decides whether an icon value is an image reference or a glyph.
func ResolveIcon(value string) Icon {
	if IsImageRef(value) {
		return Icon{Kind: IconImage, Src: value, Placeholder: PlaceholderGlyph}
	}
	return Icon{Kind: IconGlyph, Glyph: value}
}

// IsImageRef reports whether value ends in a recognized image extension.
// Query strings and fragments on URLs are ignored.
func IsImageRef(value string) bool {
	v := strings.ToLower(strings.TrimSpace(value))
	if i := strings.IndexAny(v, "?#"); i >= 0 {
		v = v[:i]
	}
	for _, ext := range imageExtensions {
		if strings.HasSuffix(v, ext) && len(v) > len(ext) {
			return true
		}
	}
	return false
}

// CategoryLabel turns a category key into display text: separators become
// spaces and the first letter is upper-cased ("bathroom/sanitary" -> "Bathroom sanitary").
func CategoryLabel(category string) string {
	if category == domain.CategoryAll {
		return allCategoriesLabel
	}
	label := strings.Map(func(r rune) rune {
		if strings.ContainsRune(categorySeparators, r) {
			return ' '
		}
		return r
	}, category)
	label = strings.Join(strings.Fields(label), " ")
	if label == "" {
		return ""
	}
	r, size := utf8.DecodeRuneInString(label)
	return string(unicode.ToUpper(r)) + label[size:]
}

// Filters builds the category selectors: "all" first, then categories in the
// order given. The control matching the active category is flagged.
func Filters(categories []string, active string) []FilterControl {
	out := make([]FilterControl, 0, len(categories)+1)
	out = append(out, FilterControl{
		Category: domain.CategoryAll,
		Label:    CategoryLabel(domain.CategoryAll),
		Active:   active == domain.CategoryAll,
	})
	for _, c := range categories {
		if c == domain.CategoryAll {
			continue
		}
		out = append(out, FilterControl{Category: c, Label: CategoryLabel(c), Active: c == active})
	}
	return out
}
