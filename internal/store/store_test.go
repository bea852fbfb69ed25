package store

import (
	"context"
	"fmt"
	"log/slog"
	"testing"

	perrors "github.com/abgdnv/product-grpc/internal/errors"
	"github.com/abgdnv/product-grpc/internal/store/db"
	"github.com/abgdnv/product-grpc/pkg/bootstrap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// storeFactories returns a fresh, empty store for every supported non-PostgreSQL backend.
func storeFactories() map[string]func(t *testing.T) ProductStore {
	return map[string]func(t *testing.T) ProductStore{
		"in-memory": func(_ *testing.T) ProductStore {
			return NewInMemoryStore()
		},
		"gorm-sqlite": func(t *testing.T) ProductStore {
			t.Helper()
			gdb, err := bootstrap.NewGormDB("sqlite://file::memory:", slog.Default())
			require.NoError(t, err)
			s := NewGormStore(gdb)
			require.NoError(t, s.Migrate(context.Background()))
			return s
		},
	}
}

func Test_ProductStore_SaveAndFind(t *testing.T) {
	for name, newStore := range storeFactories() {
		t.Run(name, func(t *testing.T) {
			// given
			ctx := context.Background()
			s := newStore(t)

			// when
			created, err := s.Save(ctx, db.Product{Name: "Laptop", Description: "15 inch", Price: 999.99, Quantity: 5})

			// then
			require.NoError(t, err)
			assert.NotZero(t, created.ID)
			found, err := s.FindByID(ctx, created.ID)
			require.NoError(t, err)
			assert.Equal(t, "Laptop", found.Name)
			assert.Equal(t, "15 inch", found.Description)
			assert.Equal(t, 999.99, found.Price)
			assert.Equal(t, int32(5), found.Quantity)
		})
	}
}

func Test_ProductStore_SaveUpdatesExisting(t *testing.T) {
	for name, newStore := range storeFactories() {
		t.Run(name, func(t *testing.T) {
			// given
			ctx := context.Background()
			s := newStore(t)
			created, err := s.Save(ctx, db.Product{Name: "Mouse", Price: 10, Quantity: 1})
			require.NoError(t, err)

			// when
			updated, err := s.Save(ctx, db.Product{ID: created.ID, Name: "Mouse Pro", Description: "", Price: 0, Quantity: 0})

			// then
			require.NoError(t, err)
			assert.Equal(t, created.ID, updated.ID)
			assert.Equal(t, "Mouse Pro", updated.Name)
			assert.Zero(t, updated.Price)
			assert.Zero(t, updated.Quantity)

			found, err := s.FindByID(ctx, created.ID)
			require.NoError(t, err)
			assert.Equal(t, "Mouse Pro", found.Name)
		})
	}
}

func Test_ProductStore_NotFound(t *testing.T) {
	for name, newStore := range storeFactories() {
		t.Run(name, func(t *testing.T) {
			// given
			ctx := context.Background()
			s := newStore(t)

			// when
			_, findErr := s.FindByID(ctx, 999)
			_, saveErr := s.Save(ctx, db.Product{ID: 999, Name: "ghost"})
			deleteErr := s.DeleteByID(ctx, 999)

			// then
			assert.ErrorIs(t, findErr, perrors.ErrProductNotFound)
			assert.ErrorIs(t, saveErr, perrors.ErrProductNotFound)
			assert.ErrorIs(t, deleteErr, perrors.ErrProductNotFound)
		})
	}
}

func Test_ProductStore_Delete(t *testing.T) {
	for name, newStore := range storeFactories() {
		t.Run(name, func(t *testing.T) {
			// given
			ctx := context.Background()
			s := newStore(t)
			created, err := s.Save(ctx, db.Product{Name: "Cable"})
			require.NoError(t, err)

			// when
			err = s.DeleteByID(ctx, created.ID)

			// then
			require.NoError(t, err)
			_, err = s.FindByID(ctx, created.ID)
			assert.ErrorIs(t, err, perrors.ErrProductNotFound)
		})
	}
}

func Test_ProductStore_FindAll(t *testing.T) {
	for name, newStore := range storeFactories() {
		t.Run(name, func(t *testing.T) {
			// given
			ctx := context.Background()
			s := newStore(t)
			for i := range 25 {
				_, err := s.Save(ctx, db.Product{Name: fmt.Sprintf("Product %02d", i+1)})
				require.NoError(t, err)
			}

			testCases := []struct {
				name      string
				page      int32
				size      int32
				wantNames []string
			}{
				{name: "first page", page: 0, size: 10, wantNames: []string{"Product 01", "Product 10"}},
				{name: "last partial page", page: 2, size: 10, wantNames: []string{"Product 21", "Product 25"}},
				{name: "page past the end", page: 5, size: 10, wantNames: nil},
			}
			for _, tc := range testCases {
				t.Run(tc.name, func(t *testing.T) {
					// when
					products, total, err := s.FindAll(ctx, tc.page, tc.size)

					// then
					require.NoError(t, err)
					assert.Equal(t, int64(25), total)
					if tc.wantNames == nil {
						assert.Empty(t, products)
						return
					}
					require.NotEmpty(t, products)
					assert.Equal(t, tc.wantNames[0], products[0].Name)
					assert.Equal(t, tc.wantNames[1], products[len(products)-1].Name)
				})
			}
		})
	}
}
