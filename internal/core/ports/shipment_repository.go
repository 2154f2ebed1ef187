package ports

import (
	"context"
	"time"

	"routex/internal/core/domain/model/kernel"
	"routex/internal/core/domain/model/shipment"
)

// ShipmentRepository defines the persistence contract for shipment aggregates.
type ShipmentRepository interface {
	// Add persists a new shipment aggregate to storage.
	Add(ctx context.Context, aggregate *shipment.Shipment) error

	// Update persists changes to an existing shipment aggregate.
	Update(ctx context.Context, aggregate *shipment.Shipment) error

	// Get retrieves a shipment aggregate by its unique identifier.
	// Returns errs.ErrObjectNotFound when no such shipment exists.
	Get(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error)

	// GetAll retrieves shipments ordered by most recently updated first,
	// at most limit rows. A non-zero updatedSince narrows the result to
	// shipments touched at or after that instant.
	GetAll(ctx context.Context, updatedSince time.Time, limit int) ([]*shipment.Shipment, error)

	// GetByDriver retrieves all shipments assigned to the given driver,
	// ordered by most recently updated first.
	GetByDriver(ctx context.Context, driverID kernel.UUID) ([]*shipment.Shipment, error)

	// GetActiveByDriver retrieves the driver's shipments whose current status
	// is one of shipment.ActiveStatuses.
	GetActiveByDriver(ctx context.Context, driverID kernel.UUID) ([]*shipment.Shipment, error)

	// Delete removes a shipment and, by cascade, its status history.
	Delete(ctx context.Context, id kernel.UUID) error

	// SyncStatus writes only the denormalized status column and the update
	// timestamp, leaving every client-editable field untouched.
	SyncStatus(ctx context.Context, id kernel.UUID, status shipment.Status) error

	// CountByProduct returns how many shipments reference the given product.
	CountByProduct(ctx context.Context, productID kernel.UUID) (int64, error)
}
