package domain

// CategoryAll is the filter value that matches every product.
const CategoryAll = "all"

// Product represents a single catalog entry.
// The json/yaml tags correspond to the fields of the products document.
type Product struct {
	ID          int64  `json:"id" yaml:"id" validate:"gt=0"`
	Name        string `json:"name" yaml:"name" validate:"required,max=255"`
	Category    string `json:"category" yaml:"category" validate:"required,max=100"`
	Price       string `json:"price" yaml:"price" validate:"required,max=64"` // Pre-formatted for display, never parsed
	Description string `json:"description" yaml:"description"`
	Icon        string `json:"icon" yaml:"icon" validate:"required,max=2048"` // Glyph or image path/URL
}

// Document is the structured resource the catalog is loaded from.
type Document struct {
	Products []Product `json:"products" yaml:"products"`
}

// QueryState is the active filter state of one catalog view.
// SearchTerm is always stored normalized (trimmed, lowercase).
type QueryState struct {
	ActiveCategory string `json:"active_category"`
	SearchTerm     string `json:"search_term"`
}

// DefaultQueryState returns the state of a freshly opened catalog view.
func DefaultQueryState() QueryState {
	return QueryState{ActiveCategory: CategoryAll}
}
