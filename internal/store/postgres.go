package store

import (
	"context"
	"database/sql"
	"fmt"

	"building-catalog-service/internal/domain"
)

const listProductsQuery = `
		SELECT id, name, category, price, description, icon
		FROM catalog.products
		ORDER BY id ASC;
	`

// PostgresSource implements ProductSource using PostgreSQL.
type PostgresSource struct {
	db *sql.DB
}

// NewPostgresSource creates a new PostgresSource instance.
func NewPostgresSource(db *sql.DB) *PostgresSource {
	return &PostgresSource{db: db}
}

// Name identifies the source in logs and health output.
func (s *PostgresSource) Name() string {
	return "postgres:catalog.products"
}

// LoadProducts reads the whole product table in id order.
func (s *PostgresSource) LoadProducts(ctx context.Context) ([]domain.Product, error) {
	rows, err := s.db.QueryContext(ctx, listProductsQuery)
	if err != nil {
		return nil, fmt.Errorf("%w: LoadProducts failed to query products: %v", ErrSourceUnavailable, err)
	}
	defer rows.Close()

	products := make([]domain.Product, 0, 32)
	for rows.Next() {
		var (
			p           domain.Product
			description sql.NullString
		)
		if err := rows.Scan(&p.ID, &p.Name, &p.Category, &p.Price, &description, &p.Icon); err != nil {
			return nil, fmt.Errorf("%w: LoadProducts failed to scan product row: %v", ErrMalformedDocument, err)
		}
		p.Description = description.String
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: LoadProducts iteration error: %v", ErrSourceUnavailable, err)
	}
	return products, nil
}

// Ping checks the database connection, used by the health endpoint.
func (s *PostgresSource) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the underlying database connection pool.
func (s *PostgresSource) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
