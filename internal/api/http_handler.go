package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/cors"
	"github.com/rs/zerolog"

	"building-catalog-service/internal/domain"
	"building-catalog-service/internal/query"
	"building-catalog-service/internal/store"
	"building-catalog-service/internal/view"
)

// ServiceName is reported by the health endpoint.
const ServiceName = "BuildingCatalogService"

// gridPartialPath serves the grid fragment the page swaps in while typing.
const gridPartialPath = "/partials/grid"

// CatalogReader is the read side of the catalog needed by the handlers.
type CatalogReader interface {
	store.ProductReader
	Snapshot() *store.Snapshot
}

// Pinger checks a backing connection, e.g. the catalog database.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HTTPHandler holds dependencies for HTTP handlers.
type HTTPHandler struct {
	catalog  CatalogReader
	renderer *HTMLRenderer
	metrics  *Metrics
	cors     *cors.Cors
	db       Pinger
	validate *validator.Validate
	log      zerolog.Logger
}

// NewHTTPHandler creates a new HTTPHandler with dependencies.
func NewHTTPHandler(catalog CatalogReader, renderer *HTMLRenderer, metrics *Metrics, corsOrigins []string, log zerolog.Logger) *HTTPHandler {
	return &HTTPHandler{
		catalog:  catalog,
		renderer: renderer,
		metrics:  metrics,
		cors: cors.New(cors.Options{
			AllowedOrigins: corsOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		}),
		validate: validator.New(),
		log:      log,
	}
}

// WithDBCheck makes the health endpoint report the state of p.
func (h *HTTPHandler) WithDBCheck(p Pinger) *HTTPHandler {
	h.db = p
	return h
}

// --- Helpers ---

// ErrorResponse defines the structure for JSON error responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

func (h *HTTPHandler) respondWithError(w http.ResponseWriter, code int, message string) {
	h.respondWithJSON(w, code, ErrorResponse{Error: message})
}

func (h *HTTPHandler) respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			h.log.Error().Err(err).Msg("failed to encode JSON response")
		}
	}
}

var errInvalidClear = errors.New("clear must be a boolean")

// catalogQueryInput is the query-string form of the user interactions.
type catalogQueryInput struct {
	Category string `validate:"omitempty,max=100"`
	Search   string `validate:"omitempty,max=200"`
	Clear    bool
}

func (h *HTTPHandler) parseQuery(r *http.Request) (catalogQueryInput, error) {
	q := r.URL.Query()
	input := catalogQueryInput{
		Category: q.Get("category"),
		Search:   q.Get("q"),
	}
	if raw := q.Get("clear"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return input, errInvalidClear
		}
		input.Clear = v
	}
	if err := h.validate.Struct(input); err != nil {
		return input, err
	}
	return input, nil
}

// pageFor replays the request's interactions through a fresh controller:
// select the category, type the search term, then optionally clear it.
func (h *HTTPHandler) pageFor(input catalogQueryInput) view.Page {
	ctrl := query.NewController(h.catalog, domain.DefaultQueryState())
	page := ctrl.SetCategory(view.FilterControl{Category: input.Category})
	page = ctrl.SetSearchTerm(input.Search)
	if input.Clear {
		page = ctrl.ClearSearch()
	}
	return page
}

// --- HTML Handlers ---

// CatalogPage renders the full catalog page.
func (h *HTTPHandler) CatalogPage(w http.ResponseWriter, r *http.Request) {
	input, err := h.parseQuery(r)
	if err != nil {
		http.Error(w, "Invalid catalog query: "+err.Error(), http.StatusBadRequest)
		return
	}
	page := h.pageFor(input)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.renderer.RenderPage(w, page); err != nil {
		h.log.Error().Err(err).Str("tpl", "page").Msg("render")
		http.Error(w, "Failed to render catalog", http.StatusInternalServerError)
	}
}

// GridPartial renders only the product grid, for in-place replacement.
func (h *HTTPHandler) GridPartial(w http.ResponseWriter, r *http.Request) {
	input, err := h.parseQuery(r)
	if err != nil {
		http.Error(w, "Invalid catalog query: "+err.Error(), http.StatusBadRequest)
		return
	}
	page := h.pageFor(input)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.renderer.RenderGrid(w, page); err != nil {
		h.log.Error().Err(err).Str("tpl", "grid").Msg("render")
		http.Error(w, "Failed to render grid", http.StatusInternalServerError)
	}
}

// --- JSON Handlers ---

// ProductsResponse is the JSON form of a rendered catalog view.
type ProductsResponse struct {
	Data  view.Page `json:"data"`
	Count int       `json:"count"`
}

// ListProducts returns the rendered view for the requested query state.
func (h *HTTPHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	input, err := h.parseQuery(r)
	if err != nil {
		h.respondWithError(w, http.StatusBadRequest, "Invalid catalog query: "+err.Error())
		return
	}
	page := h.pageFor(input)
	h.respondWithJSON(w, http.StatusOK, ProductsResponse{Data: page, Count: page.Grid.Len()})
}

// CategoriesResponse lists the filter controls.
type CategoriesResponse struct {
	Data []view.FilterControl `json:"data"`
}

// ListCategories returns the filter controls with the requested category flagged active.
func (h *HTTPHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	input, err := h.parseQuery(r)
	if err != nil {
		h.respondWithError(w, http.StatusBadRequest, "Invalid catalog query: "+err.Error())
		return
	}
	active := query.ResolveCategory(h.catalog.Categories(), input.Category)
	h.respondWithJSON(w, http.StatusOK, CategoriesResponse{Data: view.Filters(h.catalog.Categories(), active)})
}

// HealthResponse is the payload of the health endpoint.
type HealthResponse struct {
	Status      string `json:"status"`
	ServiceName string `json:"serviceName"`
	Timestamp   string `json:"timestamp"`
	Catalog     string `json:"catalog"`
	Origin      string `json:"origin,omitempty"`
	Products    int    `json:"products"`
	Database    string `json:"database,omitempty"`
}

// Health reports service status and catalog readiness. It always answers 200;
// the payload carries the detailed state.
func (h *HTTPHandler) Health(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{
		Status:      "healthy",
		ServiceName: ServiceName,
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
		Catalog:     "loading",
	}
	if snap := h.catalog.Snapshot(); snap != nil {
		resp.Catalog = "ready"
		resp.Origin = snap.Origin
		resp.Products = len(snap.Products)
	}
	if h.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		resp.Database = "healthy"
		if err := h.db.Ping(ctx); err != nil {
			resp.Database = "unhealthy"
			h.log.Warn().Err(err).Msg("health check DB ping failed")
		}
	}
	h.respondWithJSON(w, http.StatusOK, resp)
}

// --- Route Registration ---

// RegisterRoutes sets up the HTTP routes for the service.
func (h *HTTPHandler) RegisterRoutes(r chi.Router) {
	if h.metrics != nil {
		r.Use(h.metrics.Middleware)
		r.Handle("/metrics", h.metrics.Handler())
	}

	r.Get("/", h.CatalogPage)
	r.Get(gridPartialPath, h.GridPartial)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(h.cors.Handler)
		r.Get("/healthz", h.Health)
		r.Get("/products", h.ListProducts)
		r.Get("/categories", h.ListCategories)
	})
}
