package commands

import (
	"context"
	"time"

	"routex/internal/core/domain/model/shipment"
	"routex/internal/core/domain/services"
	"routex/internal/core/ports"
	"routex/internal/pkg/errs"
)

// CreateShipmentCommandHandler handles the business logic for shipment creation.
//
// Creation is manager-only. The handler validates every referenced aggregate,
// resolves the delivery address against the customer's saved addresses, and
// when a driver is named reserves stock in the same transaction as the
// shipment row insert.
type CreateShipmentCommandHandler struct {
	uowFactory ShipmentUoWFactory
	planner    services.ReservationPlanner
	cache      ports.ProjectionCache
}

// NewCreateShipmentCommandHandler creates a handler for shipment creation.
func NewCreateShipmentCommandHandler(
	uowFactory ShipmentUoWFactory,
	cache ports.ProjectionCache,
) CreateShipmentCommandHandler {
	return CreateShipmentCommandHandler{
		uowFactory: uowFactory,
		planner:    services.NewReservationPlanner(),
		cache:      cache,
	}
}

// Handle processes the shipment creation command.
func (h *CreateShipmentCommandHandler) Handle(ctx context.Context, cmd CreateShipmentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if !cmd.Actor().IsManager() {
		return errs.NewPermissionDeniedError("create shipment")
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if _, err := uow.WarehouseRepository().Get(ctx, cmd.WarehouseID()); err != nil {
		return err
	}

	if _, err := uow.ProductRepository().Get(ctx, cmd.ProductID()); err != nil {
		return err
	}

	recipient, err := uow.CustomerRepository().Get(ctx, cmd.CustomerID())
	if err != nil {
		return err
	}

	address, err := recipient.ChooseAddress(cmd.CustomerAddress())
	if err != nil {
		return err
	}

	if cmd.DriverID() != nil {
		assignee, err := uow.DriverRepository().Get(ctx, *cmd.DriverID())
		if err != nil {
			return err
		}
		if err := assignee.ValidateAssignable(); err != nil {
			return err
		}
	}

	aggregate, err := shipment.NewShipment(
		cmd.ShipmentID(),
		cmd.ProductID(),
		cmd.WarehouseID(),
		cmd.CustomerID(),
		cmd.DriverID(),
		address,
		cmd.Quantity(),
		cmd.Notes(),
		time.Now().UTC(),
	)
	if err != nil {
		return err
	}

	if err := uow.ShipmentRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	newAssignment := aggregate.Assignment()
	if err := applyStockOps(ctx, uow.ProductRepository(), h.planner.Plan(nil, &newAssignment)); err != nil {
		return err
	}

	if err := uow.Commit(ctx); err != nil {
		return err
	}

	_ = h.cache.Invalidate(ctx, ports.CacheKeyShipmentList, ports.CacheKeyLowStock)
	return nil
}
