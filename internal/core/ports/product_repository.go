// Package ports defines repository and messaging interfaces for the shipment
// domain. These interfaces establish contracts between the domain layer and
// infrastructure, enabling dependency inversion and testability.
package ports

import (
	"context"

	"routex/internal/core/domain/model/kernel"
	"routex/internal/core/domain/model/product"
)

// ProductRepository defines the persistence contract for product aggregates,
// including the stock ledger operations.
type ProductRepository interface {
	// Add persists a new product aggregate to storage.
	Add(ctx context.Context, aggregate *product.Product) error

	// Update persists changes to an existing product aggregate.
	Update(ctx context.Context, aggregate *product.Product) error

	// Get retrieves a product aggregate by its unique identifier.
	// Returns errs.ErrObjectNotFound when no such product exists.
	Get(ctx context.Context, id kernel.UUID) (*product.Product, error)

	// GetAll retrieves all products.
	GetAll(ctx context.Context) ([]*product.Product, error)

	// GetBelowStock retrieves all products whose available stock is strictly
	// below the given threshold, ordered by stock ascending.
	GetBelowStock(ctx context.Context, threshold int) ([]*product.Product, error)

	// Delete removes a product by its unique identifier.
	Delete(ctx context.Context, id kernel.UUID) error

	// Reserve atomically subtracts quantity from the product's available
	// stock. The subtraction only happens when the remaining stock would stay
	// non-negative; otherwise no write occurs and a product.InsufficientStockError
	// carrying the currently available quantity is returned.
	Reserve(ctx context.Context, id kernel.UUID, quantity int) error

	// Release atomically returns quantity to the product's available stock.
	Release(ctx context.Context, id kernel.UUID, quantity int) error
}
