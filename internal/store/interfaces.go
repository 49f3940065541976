package store

import (
	"context"
	"errors"

	"building-catalog-service/internal/domain"
)

// Predefined errors for catalog loading
var (
	ErrSourceUnavailable  = errors.New("store: catalog source unavailable")
	ErrMalformedDocument  = errors.New("store: malformed catalog document")
	ErrEmptyCatalog       = errors.New("store: catalog document has no products")
	ErrInvalidProduct     = errors.New("store: invalid product entry")
	ErrDuplicateProductID = errors.New("store: duplicate product id")
)

// ProductSource is an external resource the product list can be loaded from.
// LoadProducts is called at most once per process; implementations must not retry.
type ProductSource interface {
	LoadProducts(ctx context.Context) ([]domain.Product, error)
	Name() string
}

// ProductReader gives read access to the loaded catalog.
// ok is false until the catalog has been loaded (or replaced by the fallback list).
type ProductReader interface {
	Products() (products []domain.Product, ok bool)
	Categories() []string
}
