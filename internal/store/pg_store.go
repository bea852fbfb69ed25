package store

import (
	"context"
	"errors"
	"fmt"

	perrors "github.com/abgdnv/product-grpc/internal/errors"
	"github.com/abgdnv/product-grpc/internal/store/db"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgStore implements ProductStore using PostgreSQL as the data store.
type PgStore struct {
	db *pgxpool.Pool
	q  *db.Queries
}

// NewPgStore creates a new instance of ProductStore using a PostgreSQL connection pool.
func NewPgStore(dbp *pgxpool.Pool) *PgStore {
	return &PgStore{
		db: dbp,
		q:  db.New(dbp),
	}
}

// Save creates the product when it has no ID yet, otherwise updates it in place.
// Returns ErrProductNotFound if the product to update does not exist.
func (p *PgStore) Save(ctx context.Context, product db.Product) (*db.Product, error) {
	if product.ID == 0 {
		created, err := p.q.Create(ctx, db.CreateParams{
			Name:        product.Name,
			Description: product.Description,
			Price:       product.Price,
			Quantity:    product.Quantity,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create product: %w", err)
		}
		return &created, nil
	}

	updated, err := p.q.Update(ctx, db.UpdateParams{
		ID:          product.ID,
		Name:        product.Name,
		Description: product.Description,
		Price:       product.Price,
		Quantity:    product.Quantity,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, perrors.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	return &updated, nil
}

// FindByID retrieves a product by its unique identifier.
// Returns ErrProductNotFound if no product exists with the given ID.
func (p *PgStore) FindByID(ctx context.Context, id int64) (*db.Product, error) {
	product, err := p.q.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, perrors.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product by ID: %w", err)
	}
	return &product, nil
}

// DeleteByID removes a product by its unique identifier.
// Returns ErrProductNotFound if no product exists with the given ID.
func (p *PgStore) DeleteByID(ctx context.Context, id int64) error {
	count, err := p.q.DeleteByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete product by ID: %w", err)
	}
	if count == 0 {
		return perrors.ErrProductNotFound
	}
	return nil
}

// FindAll retrieves one page of products and the total count.
// Both reads run in a single read-only transaction so the page and the total agree.
func (p *PgStore) FindAll(ctx context.Context, page, size int32) ([]db.Product, int64, error) {
	var (
		products []db.Product
		total    int64
	)
	txErr := p.withReadTransaction(ctx, func(qtx *db.Queries) error {
		var err error
		products, err = qtx.FindAll(ctx, db.FindAllParams{
			PageSize:  size,
			RowOffset: int64(page) * int64(size),
		})
		if err != nil {
			return fmt.Errorf("failed to find products: %w", err)
		}
		total, err = qtx.CountAll(ctx)
		if err != nil {
			return fmt.Errorf("failed to count products: %w", err)
		}
		return nil
	})
	if txErr != nil {
		return nil, 0, txErr
	}
	if products == nil {
		products = []db.Product{}
	}
	return products, total, nil
}

func (p *PgStore) withReadTransaction(ctx context.Context, fn func(qtx *db.Queries) error) error {
	tx, err := p.db.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly})
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	qtx := p.q.WithTx(tx)

	if err := fn(qtx); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			return fmt.Errorf("failed to rollback transaction: %w", rbErr)
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
