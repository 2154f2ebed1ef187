package ports

import (
	"context"
	"time"

	"routex/internal/core/domain/model/kernel"
	"routex/internal/core/domain/model/shipment"
)

// ShipmentStatusChangedEvent is published whenever a shipment's denormalized
// status changes, carrying enough context for downstream consumers to react
// without reading back.
type ShipmentStatusChangedEvent struct {
	ShipmentID kernel.UUID
	DriverID   *kernel.UUID
	OldStatus  shipment.Status
	NewStatus  shipment.Status
	OccurredAt time.Time
}

// EventPublisher emits domain events to the message bus.
// Publishing is best effort: a command that already committed must not fail
// because the bus is down, so implementations log and swallow transport errors.
type EventPublisher interface {
	// PublishShipmentStatusChanged emits a status change notification.
	PublishShipmentStatusChanged(ctx context.Context, event ShipmentStatusChangedEvent) error

	// Close flushes buffered events and releases the transport.
	Close() error
}
