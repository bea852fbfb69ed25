package service

import (
	"context"
	"errors"
	"math"
	"testing"

	perrors "github.com/abgdnv/product-grpc/internal/errors"
	"github.com/abgdnv/product-grpc/internal/store/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockProductStore is a mock implementation of the ProductStore interface
type mockProductStore struct {
	product   *db.Product
	products  []db.Product
	total     int64
	findErr   error
	saveErr   error
	deleteErr error
	listErr   error

	saved       *db.Product
	deleteCalls int
	listedPage  int32
	listedSize  int32
}

func (m *mockProductStore) Save(_ context.Context, product db.Product) (*db.Product, error) {
	saved := product
	m.saved = &saved
	if m.saveErr != nil {
		return nil, m.saveErr
	}
	if product.ID == 0 {
		product.ID = 1
	}
	return &product, nil
}

func (m *mockProductStore) FindByID(_ context.Context, _ int64) (*db.Product, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	p := *m.product
	return &p, nil
}

func (m *mockProductStore) DeleteByID(_ context.Context, _ int64) error {
	m.deleteCalls++
	return m.deleteErr
}

func (m *mockProductStore) FindAll(_ context.Context, page, size int32) ([]db.Product, int64, error) {
	m.listedPage, m.listedSize = page, size
	return m.products, m.total, m.listErr
}

func Test_ProductService_Create(t *testing.T) {
	ErrStoreError := errors.New("store error")
	testCases := []struct {
		name        string
		mockStore   *mockProductStore
		input       ProductCreateDto
		expected    *ProductResult
		expectError error
	}{
		{
			name:      "Success - product created",
			mockStore: &mockProductStore{},
			input:     ProductCreateDto{Name: "Laptop", Description: "Gaming", Price: 1299.5, Quantity: 3},
			expected: &ProductResult{
				Product: ProductDto{ID: 1, Name: "Laptop", Description: "Gaming", Price: 1299.5, Quantity: 3},
				Message: MsgProductCreated,
			},
		},
		{
			name:      "Success - no validation on empty name and negative price",
			mockStore: &mockProductStore{},
			input:     ProductCreateDto{Name: "", Price: -5, Quantity: -1},
			expected: &ProductResult{
				Product: ProductDto{ID: 1, Name: "", Price: -5, Quantity: -1},
				Message: MsgProductCreated,
			},
		},
		{
			name:        "Error - store error",
			mockStore:   &mockProductStore{saveErr: ErrStoreError},
			input:       ProductCreateDto{Name: "Laptop"},
			expectError: ErrStoreError,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			service := NewService(tc.mockStore)
			// when
			result, err := service.Create(context.Background(), tc.input)
			// then
			require.NotNil(t, tc.mockStore.saved)
			assert.Zero(t, tc.mockStore.saved.ID, "create must ask the store for a new ID")
			if tc.expectError != nil {
				assert.ErrorIs(t, err, tc.expectError)
				assert.Nil(t, result)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, result)
		})
	}
}

func Test_ProductService_FindByID(t *testing.T) {
	ErrStoreError := errors.New("store error")
	testCases := []struct {
		name        string
		mockStore   *mockProductStore
		expected    *ProductResult
		expectError error
		expectMsg   string
	}{
		{
			name:      "Success - product found",
			mockStore: &mockProductStore{product: &db.Product{ID: 7, Name: "Toy", Price: 9.99, Quantity: 2}},
			expected: &ProductResult{
				Product: ProductDto{ID: 7, Name: "Toy", Price: 9.99, Quantity: 2},
				Message: MsgProductFound,
			},
		},
		{
			name:        "Error - product not found",
			mockStore:   &mockProductStore{findErr: perrors.ErrProductNotFound},
			expectError: perrors.ErrProductNotFound,
			expectMsg:   "Product not found with id: 7",
		},
		{
			name:        "Error - store error",
			mockStore:   &mockProductStore{findErr: ErrStoreError},
			expectError: ErrStoreError,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			service := NewService(tc.mockStore)
			// when
			found, err := service.FindByID(context.Background(), 7)
			// then
			if tc.expectError != nil {
				assert.ErrorIs(t, err, tc.expectError)
				assert.Nil(t, found)
				if tc.expectMsg != "" {
					assert.EqualError(t, err, tc.expectMsg)
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, found)
		})
	}
}

func Test_ProductService_Update(t *testing.T) {
	ErrStoreError := errors.New("store error")
	existing := &db.Product{ID: 3, Name: "Old", Description: "old desc", Price: 1, Quantity: 1}
	input := ProductDto{ID: 3, Name: "New", Description: "", Price: 0, Quantity: 0}
	testCases := []struct {
		name        string
		mockStore   *mockProductStore
		expected    *ProductResult
		expectError error
		expectSave  bool
	}{
		{
			name:       "Success - all fields overwritten including zero values",
			mockStore:  &mockProductStore{product: existing},
			expected:   &ProductResult{Product: ProductDto{ID: 3, Name: "New"}, Message: MsgProductUpdated},
			expectSave: true,
		},
		{
			name:        "Error - product not found, nothing saved",
			mockStore:   &mockProductStore{findErr: perrors.ErrProductNotFound},
			expectError: perrors.ErrProductNotFound,
		},
		{
			name:        "Error - product vanished before save",
			mockStore:   &mockProductStore{product: existing, saveErr: perrors.ErrProductNotFound},
			expectError: perrors.ErrProductNotFound,
			expectSave:  true,
		},
		{
			name:        "Error - store error on save",
			mockStore:   &mockProductStore{product: existing, saveErr: ErrStoreError},
			expectError: ErrStoreError,
			expectSave:  true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			service := NewService(tc.mockStore)
			// when
			updated, err := service.Update(context.Background(), input)
			// then
			if tc.expectSave {
				require.NotNil(t, tc.mockStore.saved)
				assert.Equal(t, int64(3), tc.mockStore.saved.ID)
			} else {
				assert.Nil(t, tc.mockStore.saved)
			}
			if tc.expectError != nil {
				assert.ErrorIs(t, err, tc.expectError)
				assert.Nil(t, updated)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, updated)
		})
	}
}

func Test_ProductService_DeleteByID(t *testing.T) {
	ErrStoreError := errors.New("store error")
	testCases := []struct {
		name            string
		mockStore       *mockProductStore
		expected        *DeleteResult
		expectError     error
		expectDeletions int
	}{
		{
			name:            "Success - product deleted",
			mockStore:       &mockProductStore{product: &db.Product{ID: 5}},
			expected:        &DeleteResult{Success: true, Message: MsgProductDeleted},
			expectDeletions: 1,
		},
		{
			name:      "Success - missing product reported without error",
			mockStore: &mockProductStore{findErr: perrors.ErrProductNotFound},
			expected:  &DeleteResult{Success: false, Message: "Product not found with id: 5"},
		},
		{
			name:            "Success - product removed concurrently",
			mockStore:       &mockProductStore{product: &db.Product{ID: 5}, deleteErr: perrors.ErrProductNotFound},
			expected:        &DeleteResult{Success: true, Message: MsgProductDeleted},
			expectDeletions: 1,
		},
		{
			name:        "Error - store error on lookup",
			mockStore:   &mockProductStore{findErr: ErrStoreError},
			expectError: ErrStoreError,
		},
		{
			name:            "Error - store error on delete",
			mockStore:       &mockProductStore{product: &db.Product{ID: 5}, deleteErr: ErrStoreError},
			expectError:     ErrStoreError,
			expectDeletions: 1,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			service := NewService(tc.mockStore)
			// when
			result, err := service.DeleteByID(context.Background(), 5)
			// then
			assert.Equal(t, tc.expectDeletions, tc.mockStore.deleteCalls)
			if tc.expectError != nil {
				assert.ErrorIs(t, err, tc.expectError)
				assert.Nil(t, result)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, result)
		})
	}
}

func Test_ProductService_FindAll(t *testing.T) {
	ErrStoreError := errors.New("store error")
	testCases := []struct {
		name         string
		mockStore    *mockProductStore
		page, size   int32
		expectedPage int32
		expectedSize int32
		expected     *ProductPage
		expectError  error
	}{
		{
			name:         "Success - products found",
			mockStore:    &mockProductStore{products: []db.Product{{ID: 1, Name: "Toy"}}, total: 11},
			page:         1,
			size:         5,
			expectedPage: 1,
			expectedSize: 5,
			expected:     &ProductPage{Products: []ProductDto{{ID: 1, Name: "Toy"}}, Total: 11},
		},
		{
			name:         "Success - negative page and zero size normalized",
			mockStore:    &mockProductStore{products: []db.Product{}},
			page:         -3,
			size:         0,
			expectedPage: 0,
			expectedSize: DefaultPageSize,
			expected:     &ProductPage{Products: []ProductDto{}, Total: 0},
		},
		{
			name:         "Success - negative size normalized",
			mockStore:    &mockProductStore{products: []db.Product{}},
			page:         0,
			size:         -1,
			expectedPage: 0,
			expectedSize: DefaultPageSize,
			expected:     &ProductPage{Products: []ProductDto{}, Total: 0},
		},
		{
			name:         "Success - large size passed through",
			mockStore:    &mockProductStore{products: []db.Product{}, total: math.MaxInt32 + 5},
			page:         2,
			size:         100000,
			expectedPage: 2,
			expectedSize: 100000,
			expected:     &ProductPage{Products: []ProductDto{}, Total: math.MaxInt32},
		},
		{
			name:         "Error - store error",
			mockStore:    &mockProductStore{listErr: ErrStoreError},
			expectedPage: 0,
			expectedSize: DefaultPageSize,
			expectError:  ErrStoreError,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			service := NewService(tc.mockStore)
			// when
			page, err := service.FindAll(context.Background(), tc.page, tc.size)
			// then
			assert.Equal(t, tc.expectedPage, tc.mockStore.listedPage)
			assert.Equal(t, tc.expectedSize, tc.mockStore.listedSize)
			if tc.expectError != nil {
				assert.ErrorIs(t, err, tc.expectError)
				assert.Nil(t, page)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, page)
		})
	}
}
