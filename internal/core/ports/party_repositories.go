package ports

import (
	"context"

	"routex/internal/core/domain/model/customer"
	"routex/internal/core/domain/model/driver"
	"routex/internal/core/domain/model/kernel"
	"routex/internal/core/domain/model/warehouse"
)

// DriverRepository defines the persistence contract for driver aggregates.
type DriverRepository interface {
	// Add persists a new driver aggregate to storage.
	Add(ctx context.Context, aggregate *driver.Driver) error

	// Update persists changes to an existing driver aggregate.
	Update(ctx context.Context, aggregate *driver.Driver) error

	// Get retrieves a driver aggregate by its unique identifier.
	// Returns errs.ErrObjectNotFound when no such driver exists.
	Get(ctx context.Context, id kernel.UUID) (*driver.Driver, error)

	// GetAll retrieves all drivers.
	GetAll(ctx context.Context) ([]*driver.Driver, error)
}

// CustomerRepository defines the persistence contract for customer aggregates.
type CustomerRepository interface {
	// Add persists a new customer aggregate to storage.
	Add(ctx context.Context, aggregate *customer.Customer) error

	// Get retrieves a customer aggregate by its unique identifier.
	// Returns errs.ErrObjectNotFound when no such customer exists.
	Get(ctx context.Context, id kernel.UUID) (*customer.Customer, error)
}

// WarehouseRepository defines the persistence contract for warehouse aggregates.
type WarehouseRepository interface {
	// Add persists a new warehouse aggregate to storage.
	Add(ctx context.Context, aggregate *warehouse.Warehouse) error

	// Get retrieves a warehouse aggregate by its unique identifier.
	// Returns errs.ErrObjectNotFound when no such warehouse exists.
	Get(ctx context.Context, id kernel.UUID) (*warehouse.Warehouse, error)
}
