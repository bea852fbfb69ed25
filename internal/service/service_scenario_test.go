package service

import (
	"context"
	"testing"

	perrors "github.com/abgdnv/product-grpc/internal/errors"
	"github.com/abgdnv/product-grpc/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_ProductService_CreateListDeleteScenario(t *testing.T) {
	// given
	ctx := context.Background()
	svc := NewService(store.NewInMemoryStore())

	var ids []int64
	for _, name := range []string{"A", "B", "C"} {
		created, err := svc.Create(ctx, ProductCreateDto{Name: name, Price: 1, Quantity: 1})
		require.NoError(t, err)
		ids = append(ids, created.Product.ID)
	}
	assert.Len(t, ids, 3)
	assert.NotEqual(t, ids[0], ids[1])
	assert.NotEqual(t, ids[1], ids[2])

	// when
	page, err := svc.FindAll(ctx, 0, 10)

	// then
	require.NoError(t, err)
	assert.Equal(t, int32(3), page.Total)
	require.Len(t, page.Products, 3)

	// when
	deleted, err := svc.DeleteByID(ctx, ids[1])

	// then
	require.NoError(t, err)
	assert.Equal(t, &DeleteResult{Success: true, Message: MsgProductDeleted}, deleted)

	page, err = svc.FindAll(ctx, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int32(2), page.Total)
	require.Len(t, page.Products, 2)
	assert.Equal(t, "A", page.Products[0].Name)
	assert.Equal(t, "C", page.Products[1].Name)

	// deleting again reports failure without an error
	again, err := svc.DeleteByID(ctx, ids[1])
	require.NoError(t, err)
	assert.False(t, again.Success)
	assert.Equal(t, perrors.NewNotFound(ids[1]).Error(), again.Message)

	_, err = svc.FindByID(ctx, ids[1])
	assert.ErrorIs(t, err, perrors.ErrProductNotFound)
}

func Test_ProductService_UpdateThenGet(t *testing.T) {
	// given
	ctx := context.Background()
	svc := NewService(store.NewInMemoryStore())
	created, err := svc.Create(ctx, ProductCreateDto{Name: "Desk", Description: "oak", Price: 250, Quantity: 4})
	require.NoError(t, err)
	id := created.Product.ID

	// when
	updated, err := svc.Update(ctx, ProductDto{ID: id, Name: "N", Description: "D", Price: 9.5, Quantity: 4})
	require.NoError(t, err)
	found, err := svc.FindByID(ctx, id)

	// then
	require.NoError(t, err)
	assert.Equal(t, MsgProductUpdated, updated.Message)
	assert.Equal(t, MsgProductFound, found.Message)
	assert.Equal(t, ProductDto{ID: id, Name: "N", Description: "D", Price: 9.5, Quantity: 4}, found.Product)
}

func Test_ProductService_UpdateMissingCreatesNothing(t *testing.T) {
	// given
	ctx := context.Background()
	svc := NewService(store.NewInMemoryStore())

	// when
	_, err := svc.Update(ctx, ProductDto{ID: 99, Name: "ghost"})

	// then
	var nf *perrors.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, int64(99), nf.ID)
	page, err := svc.FindAll(ctx, 0, 0)
	require.NoError(t, err)
	assert.Zero(t, page.Total)
}

func Test_ProductService_PaginationDefaults(t *testing.T) {
	// given
	ctx := context.Background()
	svc := NewService(store.NewInMemoryStore())
	for range 25 {
		_, err := svc.Create(ctx, ProductCreateDto{Name: "item"})
		require.NoError(t, err)
	}

	testCases := []struct {
		name      string
		page      int32
		size      int32
		wantCount int
		wantFirst int64
	}{
		{name: "defaults", page: 0, size: 0, wantCount: 10, wantFirst: 1},
		{name: "negative page is first page", page: -1, size: 5, wantCount: 5, wantFirst: 1},
		{name: "second page", page: 1, size: 10, wantCount: 10, wantFirst: 11},
		{name: "partial last page", page: 2, size: 10, wantCount: 5, wantFirst: 21},
		{name: "beyond the end", page: 3, size: 10, wantCount: 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// when
			page, err := svc.FindAll(ctx, tc.page, tc.size)

			// then
			require.NoError(t, err)
			assert.Equal(t, int32(25), page.Total)
			require.Len(t, page.Products, tc.wantCount)
			if tc.wantCount > 0 {
				assert.Equal(t, tc.wantFirst, page.Products[0].ID)
			}
		})
	}
}
