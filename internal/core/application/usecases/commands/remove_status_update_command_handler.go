package commands

import (
	"context"
	"time"

	"routex/internal/core/ports"
	"routex/internal/pkg/errs"
)

// RemoveStatusUpdateCommandHandler handles deletion of history entries.
//
// Deletion is manager-only. After the entry is gone the shipment's status is
// recomputed from the remaining history in the same transaction, so deleting
// the latest entry acts as a status rollback.
type RemoveStatusUpdateCommandHandler struct {
	uowFactory StatusUoWFactory
	publisher  ports.EventPublisher
	cache      ports.ProjectionCache
}

// NewRemoveStatusUpdateCommandHandler creates a handler for history entry deletion.
func NewRemoveStatusUpdateCommandHandler(
	uowFactory StatusUoWFactory,
	publisher ports.EventPublisher,
	cache ports.ProjectionCache,
) RemoveStatusUpdateCommandHandler {
	return RemoveStatusUpdateCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		cache:      cache,
	}
}

// Handle processes the history entry deletion command.
func (h *RemoveStatusUpdateCommandHandler) Handle(ctx context.Context, cmd RemoveStatusUpdateCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if !cmd.Actor().IsManager() {
		return errs.NewPermissionDeniedError("remove status update")
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	entry, err := uow.StatusUpdateRepository().Get(ctx, cmd.UpdateID())
	if err != nil {
		return err
	}

	if err := uow.StatusUpdateRepository().Delete(ctx, cmd.UpdateID()); err != nil {
		return err
	}

	oldStatus, newStatus, err := syncShipmentStatus(
		ctx, uow.ShipmentRepository(), uow.StatusUpdateRepository(), entry.ShipmentID())
	if err != nil {
		return err
	}

	if err := uow.Commit(ctx); err != nil {
		return err
	}

	if oldStatus != newStatus {
		_ = h.publisher.PublishShipmentStatusChanged(ctx, ports.ShipmentStatusChangedEvent{
			ShipmentID: entry.ShipmentID(),
			OldStatus:  oldStatus,
			NewStatus:  newStatus,
			OccurredAt: time.Now().UTC(),
		})
	}
	_ = h.cache.Invalidate(ctx, ports.CacheKeyShipmentList)

	return nil
}
