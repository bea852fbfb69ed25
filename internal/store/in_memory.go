package store

import (
	"context"
	"slices"
	"sync"
	"time"

	perrors "github.com/abgdnv/product-grpc/internal/errors"
	"github.com/abgdnv/product-grpc/internal/store/db"
)

// InMemoryStore implements ProductStore using an in-memory map.
type InMemoryStore struct {
	mu       sync.RWMutex
	products map[int64]db.Product
	nextID   int64
}

// NewInMemoryStore creates a new empty InMemoryStore. IDs start at 1.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		products: make(map[int64]db.Product),
		nextID:   1,
	}
}

func (s *InMemoryStore) Save(_ context.Context, product db.Product) (*db.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	if product.ID == 0 {
		product.ID = s.nextID
		product.CreatedAt = now
		product.UpdatedAt = now
		s.nextID++
		s.products[product.ID] = product
		return &product, nil
	}

	stored, ok := s.products[product.ID]
	if !ok {
		return nil, perrors.ErrProductNotFound
	}
	stored.Name = product.Name
	stored.Description = product.Description
	stored.Price = product.Price
	stored.Quantity = product.Quantity
	stored.UpdatedAt = now
	s.products[stored.ID] = stored
	return &stored, nil
}

func (s *InMemoryStore) FindByID(_ context.Context, id int64) (*db.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[id]
	if !ok {
		return nil, perrors.ErrProductNotFound
	}
	return &p, nil
}

func (s *InMemoryStore) DeleteByID(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[id]; !ok {
		return perrors.ErrProductNotFound
	}
	delete(s.products, id)
	return nil
}

func (s *InMemoryStore) FindAll(_ context.Context, page, size int32) ([]db.Product, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]int64, 0, len(s.products))
	for id := range s.products {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	total := int64(len(ids))
	offset := int64(page) * int64(size)
	list := make([]db.Product, 0)
	if page < 0 || size <= 0 || offset >= total {
		return list, total, nil
	}
	end := min(offset+int64(size), total)
	for _, id := range ids[offset:end] {
		list = append(list, s.products[id])
	}
	return list, total, nil
}
