// Package view turns a filtered product list into immutable view descriptions.
// Nothing in here touches a UI toolkit; adapters materialize the structures.
package view

import (
	"time"

	"building-catalog-service/internal/domain"
)

// StaggerStep is the entrance-animation delay added per card index.
const StaggerStep = 100 * time.Millisecond

// PlaceholderGlyph is shown instead of an image that fails to load.
const PlaceholderGlyph = "📦"

// GridKind tells which of the three grid shapes a Grid carries.
type GridKind string

const (
	GridCards   GridKind = "cards"
	GridEmpty   GridKind = "empty"
	GridLoading GridKind = "loading"
)

// IconKind distinguishes image references from inline glyphs.
type IconKind string

const (
	IconImage IconKind = "image"
	IconGlyph IconKind = "glyph"
)

// Icon is the resolved visual of a card.
type Icon struct {
	Kind        IconKind `json:"kind"`
	Src         string   `json:"src,omitempty"`         // image reference, IconImage only
	Glyph       string   `json:"glyph,omitempty"`       // inline glyph, IconGlyph only
	Placeholder string   `json:"placeholder,omitempty"` // shown when Src fails to load
}

// Card is the display description of one product.
type Card struct {
	ID            int64         `json:"id"`
	Icon          Icon          `json:"icon"`
	Name          string        `json:"name"`
	CategoryLabel string        `json:"category_label"`
	Price         string        `json:"price"`
	Description   string        `json:"description"`
	Delay         time.Duration `json:"-"`
	DelayMillis   int64         `json:"delay_ms"`
}

// EmptyState describes a grid with no results.
type EmptyState struct {
	Message   string `json:"message"`
	Hint      string `json:"hint"`
	Term      string `json:"term,omitempty"`
	ShowClear bool   `json:"show_clear"`
}

// LoadingState describes the grid while the catalog is absent.
type LoadingState struct {
	Message string `json:"message"`
}

// Grid is the full content of the product grid. Exactly one of Cards, Empty
// or Loading is meaningful, selected by Kind.
type Grid struct {
	Kind    GridKind      `json:"kind"`
	Cards   []Card        `json:"cards,omitempty"`
	Empty   *EmptyState   `json:"empty,omitempty"`
	Loading *LoadingState `json:"loading,omitempty"`
}

// Len returns the number of cards in the grid.
func (g Grid) Len() int {
	return len(g.Cards)
}

// FilterControl is one category selector.
type FilterControl struct {
	Category string `json:"category"`
	Label    string `json:"label"`
	Active   bool   `json:"active"`
}

// Page is everything an adapter needs to draw the catalog section.
type Page struct {
	State           domain.QueryState `json:"state"`
	Grid            Grid              `json:"grid"`
	Filters         []FilterControl   `json:"filters"`
	ShowClearSearch bool              `json:"show_clear_search"`
	FocusSearch     bool              `json:"focus_search"`
}
