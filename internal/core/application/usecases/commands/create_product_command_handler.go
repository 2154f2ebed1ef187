package commands

import (
	"context"

	"routex/internal/core/domain/model/product"
	"routex/internal/core/ports"
	"routex/internal/pkg/errs"
)

// CreateProductCommandHandler handles catalog additions. Manager-only.
type CreateProductCommandHandler struct {
	uowFactory ProductUoWFactory
	cache      ports.ProjectionCache
}

// NewCreateProductCommandHandler creates a handler for product creation.
func NewCreateProductCommandHandler(
	uowFactory ProductUoWFactory,
	cache ports.ProjectionCache,
) CreateProductCommandHandler {
	return CreateProductCommandHandler{
		uowFactory: uowFactory,
		cache:      cache,
	}
}

// Handle processes the product creation command.
func (h *CreateProductCommandHandler) Handle(ctx context.Context, cmd CreateProductCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if !cmd.Actor().IsManager() {
		return errs.NewPermissionDeniedError("create product")
	}

	unit := cmd.Unit()
	if unit == "" {
		unit = product.DefaultUnit
	}

	aggregate, err := product.NewProduct(cmd.ProductID(), cmd.Name(), cmd.Price(), unit, cmd.StockQty())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.ProductRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	if err := uow.Commit(ctx); err != nil {
		return err
	}

	_ = h.cache.Invalidate(ctx, ports.CacheKeyLowStock)
	return nil
}
