package query

import (
	"building-catalog-service/internal/domain"
	"building-catalog-service/internal/store"
	"building-catalog-service/internal/view"
)

// Controller owns the query state of one catalog view and is its only writer.
// Every operation recomputes the visible set from the full catalog and returns
// the re-rendered page. A Controller is not safe for concurrent use.
type Controller struct {
	catalog     store.ProductReader
	state       domain.QueryState
	focusSearch bool
}

// NewController creates a controller over catalog starting from initial.
// The initial values are normalized the same way user input is.
func NewController(catalog store.ProductReader, initial domain.QueryState) *Controller {
	return &Controller{
		catalog: catalog,
		state: domain.QueryState{
			ActiveCategory: ResolveCategory(catalog.Categories(), initial.ActiveCategory),
			SearchTerm:     NormalizeTerm(initial.SearchTerm),
		},
	}
}

// State returns the current query state.
func (c *Controller) State() domain.QueryState {
	return c.state
}

// Visible returns the products matching the current state. ok is false while
// the catalog is absent, in which case filtering is skipped.
func (c *Controller) Visible() (products []domain.Product, ok bool) {
	all, ok := c.catalog.Products()
	if !ok {
		return nil, false
	}
	return Filter(all, c.state), true
}

// SetCategory selects the category carried by the triggering filter control.
// A category the catalog does not contain selects "all".
func (c *Controller) SetCategory(control view.FilterControl) view.Page {
	c.state.ActiveCategory = ResolveCategory(c.catalog.Categories(), control.Category)
	c.focusSearch = false
	return c.Page()
}

// SetSearchTerm stores the normalized search input. It is meant to be called
// on every change of the input.
func (c *Controller) SetSearchTerm(raw string) view.Page {
	c.state.SearchTerm = NormalizeTerm(raw)
	c.focusSearch = false
	return c.Page()
}

// ClearSearch resets the search term and asks for focus to return to the
// search input. The active category is kept.
func (c *Controller) ClearSearch() view.Page {
	c.state.SearchTerm = ""
	c.focusSearch = true
	return c.Page()
}

// Page renders the current state.
func (c *Controller) Page() view.Page {
	products, ready := c.Visible()
	return view.Page{
		State:           c.state,
		Grid:            view.Render(c.state, products, ready),
		Filters:         view.Filters(c.catalog.Categories(), c.state.ActiveCategory),
		ShowClearSearch: c.state.SearchTerm != "",
		FocusSearch:     c.focusSearch,
	}
}
