package commands_test

import (
	"context"
	"time"

	"routex/internal/core/application/usecases/commands"
	"routex/internal/core/domain/model/customer"
	"routex/internal/core/domain/model/driver"
	"routex/internal/core/domain/model/kernel"
	"routex/internal/core/domain/model/product"
	"routex/internal/core/domain/model/shipment"
	"routex/internal/core/domain/model/warehouse"
	"routex/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockProductRepository struct{ mock.Mock }

func (m *MockProductRepository) Add(ctx context.Context, p *product.Product) error {
	return m.Called(ctx, p).Error(0)
}
func (m *MockProductRepository) Update(ctx context.Context, p *product.Product) error {
	return m.Called(ctx, p).Error(0)
}
func (m *MockProductRepository) Get(ctx context.Context, id kernel.UUID) (*product.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}
func (m *MockProductRepository) GetAll(ctx context.Context) ([]*product.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*product.Product), args.Error(1)
}
func (m *MockProductRepository) GetBelowStock(ctx context.Context, threshold int) ([]*product.Product, error) {
	args := m.Called(ctx, threshold)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*product.Product), args.Error(1)
}
func (m *MockProductRepository) Delete(ctx context.Context, id kernel.UUID) error {
	return m.Called(ctx, id).Error(0)
}
func (m *MockProductRepository) Reserve(ctx context.Context, id kernel.UUID, quantity int) error {
	return m.Called(ctx, id, quantity).Error(0)
}
func (m *MockProductRepository) Release(ctx context.Context, id kernel.UUID, quantity int) error {
	return m.Called(ctx, id, quantity).Error(0)
}

type MockShipmentRepository struct{ mock.Mock }

func (m *MockShipmentRepository) Add(ctx context.Context, s *shipment.Shipment) error {
	return m.Called(ctx, s).Error(0)
}
func (m *MockShipmentRepository) Update(ctx context.Context, s *shipment.Shipment) error {
	return m.Called(ctx, s).Error(0)
}
func (m *MockShipmentRepository) Get(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shipment.Shipment), args.Error(1)
}
func (m *MockShipmentRepository) GetAll(ctx context.Context, updatedSince time.Time, limit int) ([]*shipment.Shipment, error) {
	args := m.Called(ctx, updatedSince, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*shipment.Shipment), args.Error(1)
}
func (m *MockShipmentRepository) GetByDriver(ctx context.Context, driverID kernel.UUID) ([]*shipment.Shipment, error) {
	args := m.Called(ctx, driverID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*shipment.Shipment), args.Error(1)
}
func (m *MockShipmentRepository) GetActiveByDriver(ctx context.Context, driverID kernel.UUID) ([]*shipment.Shipment, error) {
	args := m.Called(ctx, driverID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*shipment.Shipment), args.Error(1)
}
func (m *MockShipmentRepository) Delete(ctx context.Context, id kernel.UUID) error {
	return m.Called(ctx, id).Error(0)
}
func (m *MockShipmentRepository) SyncStatus(ctx context.Context, id kernel.UUID, status shipment.Status) error {
	return m.Called(ctx, id, status).Error(0)
}
func (m *MockShipmentRepository) CountByProduct(ctx context.Context, productID kernel.UUID) (int64, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).(int64), args.Error(1)
}

type MockStatusUpdateRepository struct{ mock.Mock }

func (m *MockStatusUpdateRepository) Add(ctx context.Context, entry *shipment.StatusUpdate) error {
	return m.Called(ctx, entry).Error(0)
}
func (m *MockStatusUpdateRepository) Get(ctx context.Context, id kernel.UUID) (*shipment.StatusUpdate, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shipment.StatusUpdate), args.Error(1)
}
func (m *MockStatusUpdateRepository) GetForShipment(ctx context.Context, shipmentID kernel.UUID) ([]*shipment.StatusUpdate, error) {
	args := m.Called(ctx, shipmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*shipment.StatusUpdate), args.Error(1)
}
func (m *MockStatusUpdateRepository) GetLatestForShipment(ctx context.Context, shipmentID kernel.UUID) (*shipment.StatusUpdate, error) {
	args := m.Called(ctx, shipmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shipment.StatusUpdate), args.Error(1)
}
func (m *MockStatusUpdateRepository) Delete(ctx context.Context, id kernel.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type MockDriverRepository struct{ mock.Mock }

func (m *MockDriverRepository) Add(ctx context.Context, d *driver.Driver) error {
	return m.Called(ctx, d).Error(0)
}
func (m *MockDriverRepository) Update(ctx context.Context, d *driver.Driver) error {
	return m.Called(ctx, d).Error(0)
}
func (m *MockDriverRepository) Get(ctx context.Context, id kernel.UUID) (*driver.Driver, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*driver.Driver), args.Error(1)
}
func (m *MockDriverRepository) GetAll(ctx context.Context) ([]*driver.Driver, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*driver.Driver), args.Error(1)
}

type MockCustomerRepository struct{ mock.Mock }

func (m *MockCustomerRepository) Add(ctx context.Context, c *customer.Customer) error {
	return m.Called(ctx, c).Error(0)
}
func (m *MockCustomerRepository) Get(ctx context.Context, id kernel.UUID) (*customer.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customer.Customer), args.Error(1)
}

type MockWarehouseRepository struct{ mock.Mock }

func (m *MockWarehouseRepository) Add(ctx context.Context, w *warehouse.Warehouse) error {
	return m.Called(ctx, w).Error(0)
}
func (m *MockWarehouseRepository) Get(ctx context.Context, id kernel.UUID) (*warehouse.Warehouse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*warehouse.Warehouse), args.Error(1)
}

type MockShipmentUoW struct{ mock.Mock }

func (m *MockShipmentUoW) Begin(ctx context.Context) error    { return m.Called(ctx).Error(0) }
func (m *MockShipmentUoW) Commit(ctx context.Context) error   { return m.Called(ctx).Error(0) }
func (m *MockShipmentUoW) Rollback(ctx context.Context) error { return m.Called(ctx).Error(0) }
func (m *MockShipmentUoW) ShipmentRepository() ports.ShipmentRepository {
	return m.Called().Get(0).(ports.ShipmentRepository)
}
func (m *MockShipmentUoW) ProductRepository() ports.ProductRepository {
	return m.Called().Get(0).(ports.ProductRepository)
}
func (m *MockShipmentUoW) DriverRepository() ports.DriverRepository {
	return m.Called().Get(0).(ports.DriverRepository)
}
func (m *MockShipmentUoW) CustomerRepository() ports.CustomerRepository {
	return m.Called().Get(0).(ports.CustomerRepository)
}
func (m *MockShipmentUoW) WarehouseRepository() ports.WarehouseRepository {
	return m.Called().Get(0).(ports.WarehouseRepository)
}

type MockShipmentUoWFactory struct{ mock.Mock }

func (m *MockShipmentUoWFactory) Create() commands.ShipmentUoW {
	return m.Called().Get(0).(commands.ShipmentUoW)
}

type MockStatusUoW struct{ mock.Mock }

func (m *MockStatusUoW) Begin(ctx context.Context) error    { return m.Called(ctx).Error(0) }
func (m *MockStatusUoW) Commit(ctx context.Context) error   { return m.Called(ctx).Error(0) }
func (m *MockStatusUoW) Rollback(ctx context.Context) error { return m.Called(ctx).Error(0) }
func (m *MockStatusUoW) ShipmentRepository() ports.ShipmentRepository {
	return m.Called().Get(0).(ports.ShipmentRepository)
}
func (m *MockStatusUoW) StatusUpdateRepository() ports.StatusUpdateRepository {
	return m.Called().Get(0).(ports.StatusUpdateRepository)
}

type MockStatusUoWFactory struct{ mock.Mock }

func (m *MockStatusUoWFactory) Create() commands.StatusUoW {
	return m.Called().Get(0).(commands.StatusUoW)
}

type MockProductUoW struct{ mock.Mock }

func (m *MockProductUoW) Begin(ctx context.Context) error    { return m.Called(ctx).Error(0) }
func (m *MockProductUoW) Commit(ctx context.Context) error   { return m.Called(ctx).Error(0) }
func (m *MockProductUoW) Rollback(ctx context.Context) error { return m.Called(ctx).Error(0) }
func (m *MockProductUoW) ProductRepository() ports.ProductRepository {
	return m.Called().Get(0).(ports.ProductRepository)
}
func (m *MockProductUoW) ShipmentRepository() ports.ShipmentRepository {
	return m.Called().Get(0).(ports.ShipmentRepository)
}

type MockProductUoWFactory struct{ mock.Mock }

func (m *MockProductUoWFactory) Create() commands.ProductUoW {
	return m.Called().Get(0).(commands.ProductUoW)
}

// NoopCache satisfies ports.ProjectionCache for handlers under test; cache
// interaction is best effort and not asserted in command tests.
type NoopCache struct{}

func (NoopCache) Get(_ context.Context, _ string) ([]byte, error) { return nil, ports.ErrCacheMiss }
func (NoopCache) Set(_ context.Context, _ string, _ []byte, _ time.Duration) error {
	return nil
}
func (NoopCache) Invalidate(_ context.Context, _ ...string) error { return nil }

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) PublishShipmentStatusChanged(ctx context.Context, event ports.ShipmentStatusChangedEvent) error {
	return m.Called(ctx, event).Error(0)
}
func (m *MockEventPublisher) Close() error { return m.Called().Error(0) }

// NoopPublisher satisfies ports.EventPublisher where the event stream is not
// under test.
type NoopPublisher struct{}

func (NoopPublisher) PublishShipmentStatusChanged(_ context.Context, _ ports.ShipmentStatusChangedEvent) error {
	return nil
}
func (NoopPublisher) Close() error { return nil }
