// Package store provides an interface for product storage operations.
package store

import (
	"context"

	"github.com/abgdnv/product-grpc/internal/store/db"
)

// ProductStore is an interface for product storage operations.
// It abstracts the underlying data store, allowing for different implementations (e.g., in-memory, database).
type ProductStore interface {
	// Save inserts the product when its ID is zero and assigns a new ID.
	// Otherwise it overwrites name, description, price and quantity of the stored product.
	// Returns ErrProductNotFound if a non-zero ID does not exist.
	Save(ctx context.Context, product db.Product) (*db.Product, error)

	// FindByID retrieves a single product by its unique identifier.
	// Returns ErrProductNotFound if no product exists with the given ID.
	FindByID(ctx context.Context, id int64) (*db.Product, error)

	// DeleteByID removes a product by its ID.
	// Returns ErrProductNotFound if no product exists with the given ID.
	DeleteByID(ctx context.Context, id int64) error

	// FindAll returns one zero-based page of products ordered by ID,
	// together with the total number of stored products.
	FindAll(ctx context.Context, page, size int32) ([]db.Product, int64, error)
}

var (
	_ ProductStore = (*PgStore)(nil)
	_ ProductStore = (*GormStore)(nil)
	_ ProductStore = (*InMemoryStore)(nil)
)
