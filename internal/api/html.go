package api

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/url"

	"building-catalog-service/internal/domain"
	"building-catalog-service/internal/view"
)

//go:embed templates/*.html
var templateFS embed.FS

// HTMLRenderer materializes view descriptions as HTML.
type HTMLRenderer struct {
	tmpl *template.Template
}

// NewHTMLRenderer parses the embedded templates.
func NewHTMLRenderer() (*HTMLRenderer, error) {
	tmpl, err := template.New("catalog").ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("api: parse templates: %w", err)
	}
	return &HTMLRenderer{tmpl: tmpl}, nil
}

// filterLink is a filter control plus the focus targets used for arrow-key navigation.
type filterLink struct {
	view.FilterControl
	Index int
	Prev  int
	Next  int
	Href  string
}

type pageData struct {
	view.Page
	Links    []filterLink
	ClearURL string
	GridURL  string
}

func newPageData(page view.Page) pageData {
	links := make([]filterLink, len(page.Filters))
	for i, f := range page.Filters {
		links[i] = filterLink{
			FilterControl: f,
			Index:         i,
			Prev:          view.AdjacentFilter(len(page.Filters), i, view.KeyArrowLeft),
			Next:          view.AdjacentFilter(len(page.Filters), i, view.KeyArrowRight),
			Href:          catalogURL(f.Category, page.State.SearchTerm),
		}
	}
	return pageData{
		Page:     page,
		Links:    links,
		ClearURL: catalogURL(page.State.ActiveCategory, "") + "&clear=1",
		GridURL:  gridPartialPath,
	}
}

// RenderPage writes the full catalog page.
func (r *HTMLRenderer) RenderPage(w io.Writer, page view.Page) error {
	return r.execute(w, "page", newPageData(page))
}

// RenderGrid writes only the product grid container.
func (r *HTMLRenderer) RenderGrid(w io.Writer, page view.Page) error {
	return r.execute(w, "grid", newPageData(page))
}

// execute renders into a buffer first so a failing template never leaves a
// half-written response behind.
func (r *HTMLRenderer) execute(w io.Writer, name string, data pageData) error {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return fmt.Errorf("api: execute %s: %w", name, err)
	}
	_, err := buf.WriteTo(w)
	return err
}

// catalogURL builds the page URL for a category and search term.
func catalogURL(category, term string) string {
	v := url.Values{}
	if category == "" {
		category = domain.CategoryAll
	}
	v.Set("category", category)
	if term != "" {
		v.Set("q", term)
	}
	return "/?" + v.Encode()
}
