package commands_test

import (
	"testing"

	"routex/internal/core/application/usecases/commands"
	"routex/internal/core/domain/model/kernel"
	"routex/internal/core/domain/model/product"
	"routex/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestDeleteProductCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	productID := kernel.NewUUID()

	cmd, err := commands.NewDeleteProductCommand(managerActor(t), productID)
	require.NoError(t, err)

	productRepo := new(MockProductRepository)
	productRepo.On("Get", ctx, productID).Return(makeProduct(t, productID, 10), nil).Once()
	productRepo.On("Delete", ctx, productID).Return(nil).Once()

	shipmentRepo := new(MockShipmentRepository)
	shipmentRepo.On("CountByProduct", ctx, productID).Return(int64(0), nil).Once()

	uow := new(MockProductUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("ProductRepository").Return(productRepo).Twice()
	uow.On("ShipmentRepository").Return(shipmentRepo).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockProductUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewDeleteProductCommandHandler(factory, NoopCache{})
	require.NoError(t, h.Handle(ctx, cmd))

	productRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestDeleteProductCommandHandler_Handle_ReferencedProductIsProtected(t *testing.T) {
	ctx := t.Context()
	productID := kernel.NewUUID()

	cmd, err := commands.NewDeleteProductCommand(managerActor(t), productID)
	require.NoError(t, err)

	productRepo := new(MockProductRepository)
	productRepo.On("Get", ctx, productID).Return(makeProduct(t, productID, 10), nil).Once()

	shipmentRepo := new(MockShipmentRepository)
	shipmentRepo.On("CountByProduct", ctx, productID).Return(int64(4), nil).Once()

	uow := new(MockProductUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("ProductRepository").Return(productRepo).Once()
	uow.On("ShipmentRepository").Return(shipmentRepo).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockProductUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewDeleteProductCommandHandler(factory, NoopCache{})
	err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, product.ErrProductInUse)
	var inUseErr *product.ProductInUseError
	require.ErrorAs(t, err, &inUseErr)
	require.Equal(t, int64(4), inUseErr.ShipmentCount)
	productRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestDeleteProductCommandHandler_Handle_DriverActorForbidden(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewDeleteProductCommand(driverActor(t, kernel.NewUUID()), kernel.NewUUID())
	require.NoError(t, err)

	factory := new(MockProductUoWFactory)
	h := commands.NewDeleteProductCommandHandler(factory, NoopCache{})

	require.ErrorIs(t, h.Handle(ctx, cmd), errs.ErrPermissionDenied)
	factory.AssertNotCalled(t, "Create")
}
