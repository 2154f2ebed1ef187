package commands

import (
	"context"
	"time"

	"routex/internal/core/domain/model/kernel"
	"routex/internal/core/domain/services"
	"routex/internal/core/ports"
	"routex/internal/pkg/errs"
)

// UpdateShipmentCommandHandler handles partial shipment updates.
//
// Updates are manager-only. The handler compares the assignment before and
// after the patch and applies the implied ledger operations in the same
// transaction as the shipment row write, so an edit can never leave stock
// counted twice or not at all.
type UpdateShipmentCommandHandler struct {
	uowFactory ShipmentUoWFactory
	planner    services.ReservationPlanner
	cache      ports.ProjectionCache
}

// NewUpdateShipmentCommandHandler creates a handler for shipment updates.
func NewUpdateShipmentCommandHandler(
	uowFactory ShipmentUoWFactory,
	cache ports.ProjectionCache,
) UpdateShipmentCommandHandler {
	return UpdateShipmentCommandHandler{
		uowFactory: uowFactory,
		planner:    services.NewReservationPlanner(),
		cache:      cache,
	}
}

// Handle processes the shipment update command.
func (h *UpdateShipmentCommandHandler) Handle(ctx context.Context, cmd UpdateShipmentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if !cmd.Actor().IsManager() {
		return errs.NewPermissionDeniedError("update shipment")
	}

	patch := cmd.Patch()
	if patch.IsEmpty() {
		return nil
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

	if patch.ProductID != nil {
		if _, err := uow.ProductRepository().Get(ctx, *patch.ProductID); err != nil {
			return err
		}
		if err := aggregate.ChangeProduct(*patch.ProductID); err != nil {
			return err
		}
	}

	if patch.Quantity != nil {
		if err := aggregate.ChangeQuantity(*patch.Quantity); err != nil {
			return err
		}
	}

	if patch.CustomerAddress != nil {
		recipient, err := uow.CustomerRepository().Get(ctx, aggregate.CustomerID())
		if err != nil {
			return err
		}
		address, err := recipient.ChooseAddress(*patch.CustomerAddress)
		if err != nil {
			return err
		}
		if err := aggregate.ChangeCustomerAddress(address); err != nil {
			return err
		}
	}

	if patch.Notes != nil {
		aggregate.ChangeNotes(*patch.Notes)
	}

	if patch.Driver != nil {
		// An already-assigned driver is not re-validated; only a change of
		// driver goes through the availability check.
		if patch.Driver.DriverID != nil && !sameDriver(aggregate.DriverID(), patch.Driver.DriverID) {
			assignee, err := uow.DriverRepository().Get(ctx, *patch.Driver.DriverID)
			if err != nil {
				return err
			}
			if err := assignee.ValidateAssignable(); err != nil {
				return err
			}
		}
		if err := aggregate.ChangeDriver(patch.Driver.DriverID, time.Now().UTC()); err != nil {
			return err
		}
	}

	if err := uow.ShipmentRepository().Update(ctx, aggregate); err != nil {
		return err
	}

	newAssignment := aggregate.Assignment()
	if err := applyStockOps(ctx, uow.ProductRepository(), h.planner.Plan(&oldAssignment, &newAssignment)); err != nil {
		return err
	}

	if err := uow.Commit(ctx); err != nil {
		return err
	}

	_ = h.cache.Invalidate(ctx, ports.CacheKeyShipmentList, ports.CacheKeyLowStock)
	return nil
}

func sameDriver(current, next *kernel.UUID) bool {
	if current == nil || next == nil {
		return current == nil && next == nil
	}
	return current.IsEqual(*next)
}
