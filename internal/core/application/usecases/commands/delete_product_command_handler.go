package commands

import (
	"context"

	"routex/internal/core/domain/model/product"
	"routex/internal/core/ports"
	"routex/internal/pkg/errs"
)

// DeleteProductCommandHandler handles catalog removals. Manager-only.
//
// A product referenced by shipments cannot be deleted; the handler fails with
// product.ProductInUseError carrying the reference count.
type DeleteProductCommandHandler struct {
	uowFactory ProductUoWFactory
	cache      ports.ProjectionCache
}

// NewDeleteProductCommandHandler creates a handler for product deletion.
func NewDeleteProductCommandHandler(
	uowFactory ProductUoWFactory,
	cache ports.ProjectionCache,
) DeleteProductCommandHandler {
	return DeleteProductCommandHandler{
		uowFactory: uowFactory,
		cache:      cache,
	}
}

// Handle processes the product deletion command.
func (h *DeleteProductCommandHandler) Handle(ctx context.Context, cmd DeleteProductCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if !cmd.Actor().IsManager() {
		return errs.NewPermissionDeniedError("delete product")
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if _, err := uow.ProductRepository().Get(ctx, cmd.ProductID()); err != nil {
		return err
	}

	references, err := uow.ShipmentRepository().CountByProduct(ctx, cmd.ProductID())
	if err != nil {
		return err
	}
	if references > 0 {
		return &product.ProductInUseError{ProductID: cmd.ProductID(), ShipmentCount: references}
	}

	if err := uow.ProductRepository().Delete(ctx, cmd.ProductID()); err != nil {
		return err
	}

	if err := uow.Commit(ctx); err != nil {
		return err
	}

	_ = h.cache.Invalidate(ctx, ports.CacheKeyLowStock)
	return nil
}
