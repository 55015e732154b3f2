package services

import (
	"errors"
	"fmt"
)

// Domain errors the controllers translate into status codes and messages.
var (
	ErrUserExists         = errors.New("User already exists")
	ErrUserNotFound       = errors.New("User account does not exist")
	ErrInvalidCredentials = errors.New("Invalid email or password")
	ErrWeakPassword       = errors.New("Password must be at least 6 characters long")
	ErrCategoryExists     = errors.New("Category already exists")
	ErrCategoryNotFound   = errors.New("Category not found")
	ErrCategoryTooShort   = errors.New("Category name must be at least 3 characters long")
	ErrCategoryTooLong    = errors.New("Category name must not exceed 50 characters")
	ErrProductNotFound    = errors.New("Product not found")
)

// InsufficientStockError reports an order line whose quantity exceeds the
// product's current stock.
type InsufficientStockError struct {
	ProductName string
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("Insufficient stock for %s", e.ProductName)
}
