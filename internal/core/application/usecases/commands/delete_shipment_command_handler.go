package commands

import (
	"context"

	"routex/internal/core/domain/services"
	"routex/internal/core/ports"
	"routex/internal/pkg/errs"
)

// DeleteShipmentCommandHandler handles shipment deletion.
//
// Deletion is manager-only. Stock reserved by the shipment is released in the
// same transaction as the row delete; the status history goes away by cascade.
type DeleteShipmentCommandHandler struct {
	uowFactory ShipmentUoWFactory
	planner    services.ReservationPlanner
	cache      ports.ProjectionCache
}

// NewDeleteShipmentCommandHandler creates a handler for shipment deletion.
func NewDeleteShipmentCommandHandler(
	uowFactory ShipmentUoWFactory,
	cache ports.ProjectionCache,
) DeleteShipmentCommandHandler {
	return DeleteShipmentCommandHandler{
		uowFactory: uowFactory,
		planner:    services.NewReservationPlanner(),
		cache:      cache,
	}
}

// Handle processes the shipment deletion command.
func (h *DeleteShipmentCommandHandler) Handle(ctx context.Context, cmd DeleteShipmentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if !cmd.Actor().IsManager() {
		return errs.NewPermissionDeniedError("delete shipment")
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.ShipmentRepository().Get(ctx, cmd.ShipmentID())
	if err != nil {
		return err
	}

	oldAssignment := aggregate.Assignment()
	if err := applyStockOps(ctx, uow.ProductRepository(), h.planner.Plan(&oldAssignment, nil)); err != nil {
		return err
	}

	if err := uow.ShipmentRepository().Delete(ctx, cmd.ShipmentID()); err != nil {
		return err
	}

	if err := uow.Commit(ctx); err != nil {
		return err
	}

	_ = h.cache.Invalidate(ctx, ports.CacheKeyShipmentList, ports.CacheKeyLowStock)
	return nil
}
