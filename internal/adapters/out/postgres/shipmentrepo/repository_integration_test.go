package shipmentrepo_test

import (
	"context"
	"testing"
	"time"

	"routex/internal/adapters/out/postgres/shipmentrepo"
	"routex/internal/adapters/out/postgres/statusupdaterepo"
	"routex/internal/core/domain/model/kernel"
	"routex/internal/core/domain/model/shipment"
	"routex/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

// ShipmentRepositoryIntegrationTestSuite provides integration tests for
// ShipmentRepository using PostgreSQL containers.
type ShipmentRepositoryIntegrationTestSuite struct {
	suite.Suite
	container   *postgres.PostgresContainer
	db          *gorm.DB
	repository  *shipmentrepo.GormShipmentRepository
	historyRepo *statusupdaterepo.GormStatusUpdateRepository
	tracker     *MockAggregateTracker
}

func (suite *ShipmentRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(
		&shipmentrepo.ShipmentDTO{},
		&statusupdaterepo.StatusUpdateDTO{},
	))
}

func (suite *ShipmentRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE shipments, status_updates").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.repository = shipmentrepo.NewGormShipmentRepository(suite.db, suite.tracker)
	suite.historyRepo = statusupdaterepo.NewGormStatusUpdateRepository(suite.db)
}

func (suite *ShipmentRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *ShipmentRepositoryIntegrationTestSuite) TestAdd_Get_Roundtrip() {
	ctx := context.Background()

	driverID := kernel.NewUUID()
	testShipment := suite.createTestShipment(&driverID, 4)
	suite.tracker.On("TrackAggregate", testShipment.ID(), testShipment).Once()

	err := suite.repository.Add(ctx, testShipment)
	suite.Require().NoError(err)

	retrieved, err := suite.repository.Get(ctx, testShipment.ID())
	suite.Require().NoError(err)
	suite.Equal(testShipment.ID(), retrieved.ID())
	suite.Equal(testShipment.ProductID(), retrieved.ProductID())
	suite.Require().NotNil(retrieved.DriverID())
	suite.True(driverID.IsEqual(*retrieved.DriverID()))
	suite.Equal(4, retrieved.Quantity())
	suite.Equal(shipment.StatusNew, retrieved.Status())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *ShipmentRepositoryIntegrationTestSuite) TestUpdate_UnassignDriver_ClearsColumn() {
	ctx := context.Background()

	driverID := kernel.NewUUID()
	testShipment := suite.createTestShipment(&driverID, 2)
	suite.tracker.On("TrackAggregate", testShipment.ID(), testShipment).Twice()

	suite.Require().NoError(suite.repository.Add(ctx, testShipment))

	err := testShipment.ChangeDriver(nil, time.Now().UTC())
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Update(ctx, testShipment))

	retrieved, err := suite.repository.Get(ctx, testShipment.ID())
	suite.Require().NoError(err)
	suite.Nil(retrieved.DriverID())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *ShipmentRepositoryIntegrationTestSuite) TestUpdate_DoesNotTouchStatus() {
	ctx := context.Background()

	testShipment := suite.createTestShipment(nil, 1)
	suite.tracker.On("TrackAggregate", testShipment.ID(), mock.Anything).Twice()

	suite.Require().NoError(suite.repository.Add(ctx, testShipment))
	suite.Require().NoError(suite.repository.SyncStatus(ctx, testShipment.ID(), shipment.StatusInTransit))

	// A stale aggregate still carries NEW; Update must not roll the column back.
	testShipment.ChangeNotes("fragile")
	suite.Require().NoError(suite.repository.Update(ctx, testShipment))

	retrieved, err := suite.repository.Get(ctx, testShipment.ID())
	suite.Require().NoError(err)
	suite.Equal(shipment.StatusInTransit, retrieved.Status())
	suite.Equal("fragile", retrieved.Notes())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *ShipmentRepositoryIntegrationTestSuite) TestSyncStatus_NonExistentShipment_ReturnsNotFoundError() {
	ctx := context.Background()

	err := suite.repository.SyncStatus(ctx, kernel.NewUUID(), shipment.StatusDelivered)
	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
}

func (suite *ShipmentRepositoryIntegrationTestSuite) TestDelete_RemovesShipmentAndHistory() {
	ctx := context.Background()

	testShipment := suite.createTestShipment(nil, 1)
	suite.tracker.On("TrackAggregate", testShipment.ID(), testShipment).Once()
	suite.Require().NoError(suite.repository.Add(ctx, testShipment))

	entry, err := shipment.NewStatusUpdate(
		kernel.NewUUID(), testShipment.ID(), shipment.StatusAssigned,
		time.Now().UTC(), "", "", nil, nil)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.historyRepo.Add(ctx, entry))

	suite.Require().NoError(suite.repository.Delete(ctx, testShipment.ID()))

	_, err = suite.repository.Get(ctx, testShipment.ID())
	suite.Require().Error(err)

	var count int64
	suite.Require().NoError(suite.db.Model(&statusupdaterepo.StatusUpdateDTO{}).
		Where("shipment_id = ?", testShipment.ID().Bytes()).Count(&count).Error)
	suite.Zero(count)
}

func (suite *ShipmentRepositoryIntegrationTestSuite) TestGetAll_FiltersAndCaps() {
	ctx := context.Background()

	suite.tracker.On("TrackAggregate", mock.AnythingOfType("kernel.UUID"), mock.Anything).Times(3)

	older := suite.addShipment(nil)
	middle := suite.addShipment(nil)
	newest := suite.addShipment(nil)

	// Spread the update timestamps so the ordering is deterministic.
	base := time.Now().UTC().Add(-time.Hour)
	suite.setUpdatedAt(older.ID(), base)
	suite.setUpdatedAt(middle.ID(), base.Add(20*time.Minute))
	suite.setUpdatedAt(newest.ID(), base.Add(40*time.Minute))

	all, err := suite.repository.GetAll(ctx, time.Time{}, 500)
	suite.Require().NoError(err)
	suite.Require().Len(all, 3)
	suite.Equal(newest.ID(), all[0].ID())
	suite.Equal(older.ID(), all[2].ID())

	recent, err := suite.repository.GetAll(ctx, base.Add(10*time.Minute), 500)
	suite.Require().NoError(err)
	suite.Require().Len(recent, 2)

	capped, err := suite.repository.GetAll(ctx, time.Time{}, 2)
	suite.Require().NoError(err)
	suite.Len(capped, 2)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *ShipmentRepositoryIntegrationTestSuite) TestGetActiveByDriver_FiltersTerminalStatuses() {
	ctx := context.Background()

	driverID := kernel.NewUUID()
	suite.tracker.On("TrackAggregate", mock.AnythingOfType("kernel.UUID"), mock.Anything).Times(3)

	active := suite.addShipment(&driverID)
	delivered := suite.addShipment(&driverID)
	suite.addShipment(nil)

	suite.Require().NoError(suite.repository.SyncStatus(ctx, active.ID(), shipment.StatusInTransit))
	suite.Require().NoError(suite.repository.SyncStatus(ctx, delivered.ID(), shipment.StatusDelivered))

	shipments, err := suite.repository.GetActiveByDriver(ctx, driverID)
	suite.Require().NoError(err)
	suite.Require().Len(shipments, 1)
	suite.Equal(active.ID(), shipments[0].ID())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *ShipmentRepositoryIntegrationTestSuite) TestCountByProduct() {
	ctx := context.Background()

	suite.tracker.On("TrackAggregate", mock.AnythingOfType("kernel.UUID"), mock.Anything).Times(2)

	first := suite.addShipment(nil)
	suite.addShipment(nil)

	count, err := suite.repository.CountByProduct(ctx, first.ProductID())
	suite.Require().NoError(err)
	suite.Equal(int64(1), count)

	count, err = suite.repository.CountByProduct(ctx, kernel.NewUUID())
	suite.Require().NoError(err)
	suite.Zero(count)
}

// createTestShipment creates a basic NEW shipment.
func (suite *ShipmentRepositoryIntegrationTestSuite) createTestShipment(
	driverID *kernel.UUID, quantity int,
) *shipment.Shipment {
	testShipment, err := shipment.NewShipment(
		kernel.NewUUID(),
		kernel.NewUUID(),
		kernel.NewUUID(),
		kernel.NewUUID(),
		driverID,
		"12 Harbor Street",
		quantity,
		"",
		time.Now().UTC(),
	)
	suite.Require().NoError(err)
	return testShipment
}

// addShipment creates and persists a NEW shipment.
func (suite *ShipmentRepositoryIntegrationTestSuite) addShipment(driverID *kernel.UUID) *shipment.Shipment {
	testShipment := suite.createTestShipment(driverID, 1)
	suite.Require().NoError(suite.repository.Add(context.Background(), testShipment))
	return testShipment
}

// setUpdatedAt pins a shipment's updated_at for ordering assertions.
func (suite *ShipmentRepositoryIntegrationTestSuite) setUpdatedAt(id kernel.UUID, at time.Time) {
	err := suite.db.Model(&shipmentrepo.ShipmentDTO{}).
		Where("id = ?", id.Bytes()).
		UpdateColumn("updated_at", at).Error
	suite.Require().NoError(err)
}

func TestShipmentRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(ShipmentRepositoryIntegrationTestSuite))
}
