package commands_test

import (
	"testing"

	"routex/internal/core/application/usecases/commands"
	"routex/internal/core/domain/model/driver"
	"routex/internal/core/domain/model/kernel"
	"routex/internal/core/domain/model/product"
	"routex/internal/core/domain/model/shipment"
	"routex/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateShipmentCommandHandler_Handle_ReservesStockForAssignedDriver(t *testing.T) {
	ctx := t.Context()
	productID := kernel.NewUUID()
	warehouseID := kernel.NewUUID()
	customerID := kernel.NewUUID()
	driverID := kernel.NewUUID()

	cmd, err := commands.NewCreateShipmentCommand(
		managerActor(t), kernel.NewUUID(), productID, warehouseID, customerID,
		&driverID, "Dock 4", 5, "")
	require.NoError(t, err)

	warehouseRepo := new(MockWarehouseRepository)
	warehouseRepo.On("Get", ctx, warehouseID).Return(makeWarehouse(t, warehouseID), nil).Once()

	productRepo := new(MockProductRepository)
	productRepo.On("Get", ctx, productID).Return(makeProduct(t, productID, 50), nil).Once()
	productRepo.On("Reserve", ctx, productID, 5).Return(nil).Once()

	customerRepo := new(MockCustomerRepository)
	customerRepo.On("Get", ctx, customerID).Return(makeCustomer(t, customerID, "Dock 4"), nil).Once()

	driverRepo := new(MockDriverRepository)
	driverRepo.On("Get", ctx, driverID).Return(makeDriver(t, driverID, true), nil).Once()

	shipmentRepo := new(MockShipmentRepository)
	shipmentRepo.On("Add", ctx, mock.AnythingOfType("*shipment.Shipment")).Return(nil).Once()

	uow := new(MockShipmentUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("WarehouseRepository").Return(warehouseRepo).Once()
	uow.On("ProductRepository").Return(productRepo).Twice()
	uow.On("CustomerRepository").Return(customerRepo).Once()
	uow.On("DriverRepository").Return(driverRepo).Once()
	uow.On("ShipmentRepository").Return(shipmentRepo).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockShipmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateShipmentCommandHandler(factory, NoopCache{})
	require.NoError(t, h.Handle(ctx, cmd))

	productRepo.AssertExpectations(t)
	shipmentRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestCreateShipmentCommandHandler_Handle_NoDriverNoReservation(t *testing.T) {
	ctx := t.Context()
	productID := kernel.NewUUID()
	warehouseID := kernel.NewUUID()
	customerID := kernel.NewUUID()

	cmd, err := commands.NewCreateShipmentCommand(
		managerActor(t), kernel.NewUUID(), productID, warehouseID, customerID,
		nil, "", 0, "")
	require.NoError(t, err)
	require.Equal(t, shipment.DefaultQuantity, cmd.Quantity())

	warehouseRepo := new(MockWarehouseRepository)
	warehouseRepo.On("Get", ctx, warehouseID).Return(makeWarehouse(t, warehouseID), nil).Once()

	productRepo := new(MockProductRepository)
	productRepo.On("Get", ctx, productID).Return(makeProduct(t, productID, 50), nil).Once()

	// Single saved address plus an empty request resolves to that address.
	customerRepo := new(MockCustomerRepository)
	customerRepo.On("Get", ctx, customerID).Return(makeCustomer(t, customerID, "Dock 4"), nil).Once()

	shipmentRepo := new(MockShipmentRepository)
	shipmentRepo.On("Add", ctx, mock.AnythingOfType("*shipment.Shipment")).Return(nil).Once()

	uow := new(MockShipmentUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("WarehouseRepository").Return(warehouseRepo).Once()
	uow.On("ProductRepository").Return(productRepo).Twice()
	uow.On("CustomerRepository").Return(customerRepo).Once()
	uow.On("ShipmentRepository").Return(shipmentRepo).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockShipmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateShipmentCommandHandler(factory, NoopCache{})
	require.NoError(t, h.Handle(ctx, cmd))

	productRepo.AssertNotCalled(t, "Reserve", mock.Anything, mock.Anything, mock.Anything)
	uow.AssertExpectations(t)
}

func TestCreateShipmentCommandHandler_Handle_DriverActorForbidden(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewCreateShipmentCommand(
		driverActor(t, kernel.NewUUID()), kernel.NewUUID(), kernel.NewUUID(),
		kernel.NewUUID(), kernel.NewUUID(), nil, "Dock 4", 1, "")
	require.NoError(t, err)

	factory := new(MockShipmentUoWFactory)
	h := commands.NewCreateShipmentCommandHandler(factory, NoopCache{})

	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrPermissionDenied)
	factory.AssertNotCalled(t, "Create")
}

func TestCreateShipmentCommandHandler_Handle_InsufficientStock(t *testing.T) {
	ctx := t.Context()
	productID := kernel.NewUUID()
	warehouseID := kernel.NewUUID()
	customerID := kernel.NewUUID()
	driverID := kernel.NewUUID()

	cmd, err := commands.NewCreateShipmentCommand(
		managerActor(t), kernel.NewUUID(), productID, warehouseID, customerID,
		&driverID, "Dock 4", 100, "")
	require.NoError(t, err)

	warehouseRepo := new(MockWarehouseRepository)
	warehouseRepo.On("Get", ctx, warehouseID).Return(makeWarehouse(t, warehouseID), nil).Once()

	productRepo := new(MockProductRepository)
	productRepo.On("Get", ctx, productID).Return(makeProduct(t, productID, 3), nil).Once()
	productRepo.On("Reserve", ctx, productID, 100).
		Return(&product.InsufficientStockError{ProductID: productID, Requested: 100, Available: 3}).Once()

	customerRepo := new(MockCustomerRepository)
	customerRepo.On("Get", ctx, customerID).Return(makeCustomer(t, customerID, "Dock 4"), nil).Once()

	driverRepo := new(MockDriverRepository)
	driverRepo.On("Get", ctx, driverID).Return(makeDriver(t, driverID, true), nil).Once()

	shipmentRepo := new(MockShipmentRepository)
	shipmentRepo.On("Add", ctx, mock.AnythingOfType("*shipment.Shipment")).Return(nil).Once()

	uow := new(MockShipmentUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("WarehouseRepository").Return(warehouseRepo).Once()
	uow.On("ProductRepository").Return(productRepo).Twice()
	uow.On("CustomerRepository").Return(customerRepo).Once()
	uow.On("DriverRepository").Return(driverRepo).Once()
	uow.On("ShipmentRepository").Return(shipmentRepo).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockShipmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateShipmentCommandHandler(factory, NoopCache{})
	err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, product.ErrInsufficientStock)
	var stockErr *product.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	require.Equal(t, 3, stockErr.Available)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestCreateShipmentCommandHandler_Handle_InactiveDriver(t *testing.T) {
	ctx := t.Context()
	productID := kernel.NewUUID()
	warehouseID := kernel.NewUUID()
	customerID := kernel.NewUUID()
	driverID := kernel.NewUUID()

	cmd, err := commands.NewCreateShipmentCommand(
		managerActor(t), kernel.NewUUID(), productID, warehouseID, customerID,
		&driverID, "Dock 4", 1, "")
	require.NoError(t, err)

	warehouseRepo := new(MockWarehouseRepository)
	warehouseRepo.On("Get", ctx, warehouseID).Return(makeWarehouse(t, warehouseID), nil).Once()

	productRepo := new(MockProductRepository)
	productRepo.On("Get", ctx, productID).Return(makeProduct(t, productID, 50), nil).Once()

	customerRepo := new(MockCustomerRepository)
	customerRepo.On("Get", ctx, customerID).Return(makeCustomer(t, customerID, "Dock 4"), nil).Once()

	driverRepo := new(MockDriverRepository)
	driverRepo.On("Get", ctx, driverID).Return(makeDriver(t, driverID, false), nil).Once()

	uow := new(MockShipmentUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("WarehouseRepository").Return(warehouseRepo).Once()
	uow.On("ProductRepository").Return(productRepo).Once()
	uow.On("CustomerRepository").Return(customerRepo).Once()
	uow.On("DriverRepository").Return(driverRepo).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockShipmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateShipmentCommandHandler(factory, NoopCache{})
	require.ErrorIs(t, h.Handle(ctx, cmd), driver.ErrDriverUnavailable)
}
