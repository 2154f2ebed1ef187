package ports

import (
	"context"

	"routex/internal/core/domain/model/kernel"
	"routex/internal/core/domain/model/shipment"
)

// StatusUpdateRepository defines the persistence contract for the immutable
// status history of shipments.
type StatusUpdateRepository interface {
	// Add persists a new history entry.
	Add(ctx context.Context, entry *shipment.StatusUpdate) error

	// Get retrieves a history entry by its unique identifier.
	// Returns errs.ErrObjectNotFound when no such entry exists.
	Get(ctx context.Context, id kernel.UUID) (*shipment.StatusUpdate, error)

	// GetForShipment retrieves a shipment's full history, newest first.
	// Entries are ordered by timestamp descending with the identifier as a
	// descending tiebreaker.
	GetForShipment(ctx context.Context, shipmentID kernel.UUID) ([]*shipment.StatusUpdate, error)

	// GetLatestForShipment retrieves the newest history entry under the same
	// ordering as GetForShipment. Returns (nil, nil) when the shipment has no
	// history at all.
	GetLatestForShipment(ctx context.Context, shipmentID kernel.UUID) (*shipment.StatusUpdate, error)

	// Delete removes a history entry by its unique identifier.
	Delete(ctx context.Context, id kernel.UUID) error
}
