// Package errors provides custom error types for product-related operations.
package errors

import (
	"errors"
	"fmt"
)

var ErrProductNotFound = errors.New("product not found")

// NotFoundError is returned when a product lookup by ID misses.
// It matches ErrProductNotFound with errors.Is.
type NotFoundError struct {
	ID int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("Product not found with id: %d", e.ID)
}

func (e *NotFoundError) Unwrap() error {
	return ErrProductNotFound
}

// NewNotFound creates a NotFoundError for the given product ID.
func NewNotFound(id int64) *NotFoundError {
	return &NotFoundError{ID: id}
}
