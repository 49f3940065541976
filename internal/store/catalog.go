package store

import (
	"context"
	"fmt"
	"html"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"

	"building-catalog-service/internal/domain"
)

// Snapshot is the immutable result of the one catalog load.
type Snapshot struct {
	Products   []domain.Product
	Categories []string // first-appearance order
	Origin     string   // source name, or FallbackOrigin
	LoadErr    error    // why the fallback list was installed; nil otherwise
	LoadedAt   time.Time
}

// Fallback reports whether the static list replaced the configured source.
func (s *Snapshot) Fallback() bool {
	return s.Origin == FallbackOrigin
}

// Catalog owns the in-memory product list. It is loaded exactly once and is
// read-only afterwards; readers never observe a partially built list.
type Catalog struct {
	once      sync.Once
	snapshot  atomic.Pointer[Snapshot]
	validate  *validator.Validate
	sanitizer *bluemonday.Policy
	log       zerolog.Logger
	now       func() time.Time
}

// NewCatalog creates an empty (not yet loaded) catalog.
func NewCatalog(log zerolog.Logger) *Catalog {
	return &Catalog{
		validate:  validator.New(),
		sanitizer: bluemonday.StrictPolicy(),
		log:       log,
		now:       time.Now,
	}
}

// Load makes one attempt to read the product list from src. On any failure the
// static fallback list is installed instead. Only the first call has an effect;
// the returned snapshot is the one installed by that call.
func (c *Catalog) Load(ctx context.Context, src ProductSource) *Snapshot {
	c.once.Do(func() {
		snap := c.loadFrom(ctx, src)
		c.snapshot.Store(snap)
	})
	return c.snapshot.Load()
}

func (c *Catalog) loadFrom(ctx context.Context, src ProductSource) *Snapshot {
	origin := "none"
	var (
		products []domain.Product
		err      error
	)
	if src == nil {
		err = fmt.Errorf("%w: no source configured", ErrSourceUnavailable)
	} else {
		origin = src.Name()
		products, err = src.LoadProducts(ctx)
		if err == nil {
			products, err = c.prepare(products)
		}
	}

	if err != nil {
		c.log.Warn().Err(err).Str("source", origin).Msg("catalog load failed, using fallback products")
		products = FallbackProducts()
		origin = FallbackOrigin
	} else {
		c.log.Info().Str("source", origin).Int("products", len(products)).Msg("catalog loaded")
	}

	return &Snapshot{
		Products:   products,
		Categories: categoriesOf(products),
		Origin:     origin,
		LoadErr:    err,
		LoadedAt:   c.now().UTC(),
	}
}

// prepare validates and sanitizes a freshly loaded list. Any invalid entry
// rejects the whole document.
func (c *Catalog) prepare(products []domain.Product) ([]domain.Product, error) {
	if len(products) == 0 {
		return nil, ErrEmptyCatalog
	}
	seen := make(map[int64]struct{}, len(products))
	out := make([]domain.Product, 0, len(products))
	for i, p := range products {
		p, err := c.sanitize(p)
		if err != nil {
			return nil, fmt.Errorf("%w: entry %d: %v", ErrInvalidProduct, i, err)
		}
		if err := c.validate.Struct(p); err != nil {
			return nil, fmt.Errorf("%w: entry %d: %v", ErrInvalidProduct, i, err)
		}
		if _, dup := seen[p.ID]; dup {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateProductID, p.ID)
		}
		seen[p.ID] = struct{}{}
		out = append(out, p)
	}
	return out, nil
}

// sanitize trims the text fields and rejects any that carry markup. The fields
// are plain text and are escaped on output, so a value is accepted only when
// the strict policy leaves it unchanged.
func (c *Catalog) sanitize(p domain.Product) (domain.Product, error) {
	fields := []struct {
		name  string
		value *string
	}{
		{"name", &p.Name},
		{"category", &p.Category},
		{"price", &p.Price},
		{"description", &p.Description},
	}
	for _, f := range fields {
		v := strings.TrimSpace(*f.value)
		if html.UnescapeString(c.sanitizer.Sanitize(v)) != v {
			return p, fmt.Errorf("%s %q contains markup", f.name, v)
		}
		*f.value = v
	}
	p.Icon = strings.TrimSpace(p.Icon)
	return p, nil
}

// Products returns the loaded product list; ok is false while the catalog is absent.
// The slice is shared and must not be modified.
func (c *Catalog) Products() ([]domain.Product, bool) {
	snap := c.snapshot.Load()
	if snap == nil {
		return nil, false
	}
	return snap.Products, true
}

// Categories returns the distinct categories in first-appearance order.
func (c *Catalog) Categories() []string {
	snap := c.snapshot.Load()
	if snap == nil {
		return nil
	}
	return snap.Categories
}

// Snapshot returns the installed snapshot, or nil while loading.
func (c *Catalog) Snapshot() *Snapshot {
	return c.snapshot.Load()
}

func categoriesOf(products []domain.Product) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, p := range products {
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		out = append(out, p.Category)
	}
	return out
}
