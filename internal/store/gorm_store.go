package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	perrors "github.com/abgdnv/product-grpc/internal/errors"
	"github.com/abgdnv/product-grpc/internal/store/db"
	"gorm.io/gorm"
)

// productModel is the gorm mapping of the products table.
type productModel struct {
	ID          int64   `gorm:"primaryKey;autoIncrement"`
	Name        string  `gorm:"not null"`
	Description string  `gorm:"not null;default:''"`
	Price       float64 `gorm:"not null;default:0"`
	Quantity    int32   `gorm:"not null;default:0"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (productModel) TableName() string {
	return "products"
}

// GormStore implements ProductStore on top of gorm. It is used with the sqlite driver.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GormStore using the given gorm connection.
func NewGormStore(gdb *gorm.DB) *GormStore {
	return &GormStore{db: gdb}
}

// Migrate creates or updates the products table.
func (s *GormStore) Migrate(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(&productModel{}); err != nil {
		return fmt.Errorf("failed to migrate products table: %w", err)
	}
	return nil
}

func (s *GormStore) Save(ctx context.Context, product db.Product) (*db.Product, error) {
	if product.ID == 0 {
		m := productModel{
			Name:        product.Name,
			Description: product.Description,
			Price:       product.Price,
			Quantity:    product.Quantity,
		}
		if err := s.db.WithContext(ctx).Create(&m).Error; err != nil {
			return nil, fmt.Errorf("failed to create product: %w", err)
		}
		return toProduct(&m), nil
	}

	var saved productModel
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&productModel{ID: product.ID}).Updates(map[string]any{
			"name":        product.Name,
			"description": product.Description,
			"price":       product.Price,
			"quantity":    product.Quantity,
		})
		if res.Error != nil {
			return fmt.Errorf("failed to update product: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return perrors.ErrProductNotFound
		}
		if err := tx.First(&saved, product.ID).Error; err != nil {
			return fmt.Errorf("failed to reload product: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toProduct(&saved), nil
}

func (s *GormStore) FindByID(ctx context.Context, id int64) (*db.Product, error) {
	var m productModel
	if err := s.db.WithContext(ctx).First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, perrors.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product by ID: %w", err)
	}
	return toProduct(&m), nil
}

func (s *GormStore) DeleteByID(ctx context.Context, id int64) error {
	res := s.db.WithContext(ctx).Delete(&productModel{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete product by ID: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return perrors.ErrProductNotFound
	}
	return nil
}

func (s *GormStore) FindAll(ctx context.Context, page, size int32) ([]db.Product, int64, error) {
	var (
		models []productModel
		total  int64
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&productModel{}).Count(&total).Error; err != nil {
			return fmt.Errorf("failed to count products: %w", err)
		}
		offset := int64(page) * int64(size)
		if err := tx.Order("id").Limit(int(size)).Offset(int(offset)).Find(&models).Error; err != nil {
			return fmt.Errorf("failed to find products: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}

	products := make([]db.Product, 0, len(models))
	for i := range models {
		products = append(products, *toProduct(&models[i]))
	}
	return products, total, nil
}

func toProduct(m *productModel) *db.Product {
	return &db.Product{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		Price:       m.Price,
		Quantity:    m.Quantity,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
