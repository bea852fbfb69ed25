// Package service provides the implementation of product-related business logic.
package service

import (
	"context"
	"errors"
	"fmt"
	"math"

	perrors "github.com/abgdnv/product-grpc/internal/errors"
	"github.com/abgdnv/product-grpc/internal/store"
	"github.com/abgdnv/product-grpc/internal/store/db"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// DefaultPageSize is used by FindAll when the requested size is not positive.
const DefaultPageSize int32 = 10

const (
	MsgProductCreated = "Product created successfully"
	MsgProductFound   = "Product found"
	MsgProductUpdated = "Product updated successfully"
	MsgProductDeleted = "Product deleted successfully"
)

// ProductService defines the methods for managing products.
// It abstracts the underlying business logic and data access.
type ProductService interface {
	// Create adds a new product to the system. No field validation is applied.
	Create(ctx context.Context, product ProductCreateDto) (*ProductResult, error)

	// FindByID retrieves a single product by its unique identifier.
	// Returns *errors.NotFoundError if no product exists with the given ID.
	FindByID(ctx context.Context, id int64) (*ProductResult, error)

	// Update replaces name, description, price and quantity of an existing product.
	// Returns *errors.NotFoundError if no product exists with the given ID.
	Update(ctx context.Context, product ProductDto) (*ProductResult, error)

	// DeleteByID removes a product by its ID.
	// A missing product is reported with Success=false, not with an error.
	DeleteByID(ctx context.Context, id int64) (*DeleteResult, error)

	// FindAll returns one zero-based page of products and the total product count.
	// page <= 0 selects the first page, size <= 0 selects DefaultPageSize.
	FindAll(ctx context.Context, page, size int32) (*ProductPage, error)
}

// Service implements ProductService and provides methods to manage products.
type Service struct {
	repository     store.ProductStore
	createdCounter metric.Int64Counter
	deletedCounter metric.Int64Counter
}

// NewService creates a new instance of ProductService with the provided repository.
func NewService(repo store.ProductStore) *Service {
	meter := otel.Meter("product-service")
	createdCounter, err := meter.Int64Counter("products_created", metric.WithDescription("Total number of created products"))
	if err != nil {
		panic(fmt.Sprintf("failed to create products_created counter: %v", err))
	}
	deletedCounter, err := meter.Int64Counter("products_deleted", metric.WithDescription("Total number of deleted products"))
	if err != nil {
		panic(fmt.Sprintf("failed to create products_deleted counter: %v", err))
	}
	return &Service{
		repository:     repo,
		createdCounter: createdCounter,
		deletedCounter: deletedCounter,
	}
}

// ProductCreateDto represents the data transfer object for creating a new product.
type ProductCreateDto struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Quantity    int32   `json:"quantity"`
}

// ProductDto represents the data transfer object for a product.
type ProductDto struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Quantity    int32   `json:"quantity"`
}

// ProductResult is the outcome of create, find and update.
type ProductResult struct {
	Product ProductDto `json:"product"`
	Message string     `json:"message"`
}

// DeleteResult is the outcome of a delete request.
type DeleteResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ProductPage is one page of products plus the total across all pages.
type ProductPage struct {
	Products []ProductDto `json:"products"`
	Total    int32        `json:"total"`
}

// Create stores a new product and returns it with its assigned ID.
func (s *Service) Create(ctx context.Context, product ProductCreateDto) (*ProductResult, error) {
	saved, err := s.repository.Save(ctx, db.Product{
		Name:        product.Name,
		Description: product.Description,
		Price:       product.Price,
		Quantity:    product.Quantity,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	s.createdCounter.Add(ctx, 1)

	return &ProductResult{Product: toDto(saved), Message: MsgProductCreated}, nil
}

// FindByID retrieves a product by its ID.
// Returns *errors.NotFoundError if no product exists with the given ID.
func (s *Service) FindByID(ctx context.Context, id int64) (*ProductResult, error) {
	product, err := s.repository.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, perrors.ErrProductNotFound) {
			return nil, perrors.NewNotFound(id)
		}
		return nil, fmt.Errorf("failed to fetch product by ID %d: %w", id, err)
	}

	return &ProductResult{Product: toDto(product), Message: MsgProductFound}, nil
}

// Update overwrites all mutable fields of an existing product.
// Returns *errors.NotFoundError if no product exists with the given ID.
func (s *Service) Update(ctx context.Context, product ProductDto) (*ProductResult, error) {
	existing, err := s.repository.FindByID(ctx, product.ID)
	if err != nil {
		if errors.Is(err, perrors.ErrProductNotFound) {
			return nil, perrors.NewNotFound(product.ID)
		}
		return nil, fmt.Errorf("failed to fetch product by ID %d: %w", product.ID, err)
	}

	existing.Name = product.Name
	existing.Description = product.Description
	existing.Price = product.Price
	existing.Quantity = product.Quantity

	saved, err := s.repository.Save(ctx, *existing)
	if err != nil {
		// the product was removed between the read and the write
		if errors.Is(err, perrors.ErrProductNotFound) {
			return nil, perrors.NewNotFound(product.ID)
		}
		return nil, fmt.Errorf("failed to update product with ID %d: %w", product.ID, err)
	}

	return &ProductResult{Product: toDto(saved), Message: MsgProductUpdated}, nil
}

// DeleteByID deletes a product by its ID.
// A missing product yields Success=false and the not-found message.
func (s *Service) DeleteByID(ctx context.Context, id int64) (*DeleteResult, error) {
	if _, err := s.repository.FindByID(ctx, id); err != nil {
		if errors.Is(err, perrors.ErrProductNotFound) {
			return &DeleteResult{Success: false, Message: perrors.NewNotFound(id).Error()}, nil
		}
		return nil, fmt.Errorf("failed to fetch product by ID %d: %w", id, err)
	}

	// a concurrent delete between the read and this call still leaves the product gone
	if err := s.repository.DeleteByID(ctx, id); err != nil && !errors.Is(err, perrors.ErrProductNotFound) {
		return nil, fmt.Errorf("failed to delete product with ID %d: %w", id, err)
	}
	s.deletedCounter.Add(ctx, 1)

	return &DeleteResult{Success: true, Message: MsgProductDeleted}, nil
}

// FindAll retrieves one page of products ordered by ID.
func (s *Service) FindAll(ctx context.Context, page, size int32) (*ProductPage, error) {
	page, size = normalizePage(page, size)

	products, total, err := s.repository.FindAll(ctx, page, size)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}
	productDTOs := make([]ProductDto, len(products))
	for i := range products {
		productDTOs[i] = toDto(&products[i])
	}

	return &ProductPage{Products: productDTOs, Total: clampTotal(total)}, nil
}

// normalizePage maps non-positive page to 0 and non-positive size to DefaultPageSize.
func normalizePage(page, size int32) (int32, int32) {
	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = DefaultPageSize
	}
	return page, size
}

func clampTotal(total int64) int32 {
	if total > math.MaxInt32 {
		return math.MaxInt32
	}
	return int32(total)
}

// toDto converts a db.Product to a ProductDto.
func toDto(product *db.Product) ProductDto {
	return ProductDto{
		ID:          product.ID,
		Name:        product.Name,
		Description: product.Description,
		Price:       product.Price,
		Quantity:    product.Quantity,
	}
}
