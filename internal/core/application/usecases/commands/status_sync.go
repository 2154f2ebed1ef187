package commands

import (
	"context"

	"routex/internal/core/domain/model/kernel"
	"routex/internal/core/domain/model/shipment"
	"routex/internal/core/ports"
)

// syncShipmentStatus recomputes a shipment's denormalized status from its
// history and writes it back when it differs. The latest history entry wins;
// a shipment with no history at all reverts to NEW. Returns the status before
// and after the sync.
func syncShipmentStatus(
	ctx context.Context,
	shipments ports.ShipmentRepository,
	history ports.StatusUpdateRepository,
	shipmentID kernel.UUID,
) (oldStatus, newStatus shipment.Status, err error) {
	aggregate, err := shipments.Get(ctx, shipmentID)
	if err != nil {
		return "", "", err
	}

	latest, err := history.GetLatestForShipment(ctx, shipmentID)
	if err != nil {
		return "", "", err
	}

	oldStatus = aggregate.Status()
	newStatus = shipment.StatusNew
	if latest != nil {
		newStatus = latest.Status()
	}

	if newStatus == oldStatus {
		return oldStatus, newStatus, nil
	}

	if err := shipments.SyncStatus(ctx, shipmentID, newStatus); err != nil {
		return "", "", err
	}

	return oldStatus, newStatus, nil
}
