package productrepo_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"routex/internal/adapters/out/postgres/productrepo"
	"routex/internal/core/domain/model/kernel"
	"routex/internal/core/domain/model/product"
	"routex/internal/pkg/errs"

	"github.com/shopspring/decimal"
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

// ProductRepositoryIntegrationTestSuite provides integration tests for
// ProductRepository using PostgreSQL containers, with emphasis on the
// stock ledger operations.
type ProductRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *productrepo.GormProductRepository
	tracker    *MockAggregateTracker
}

func (suite *ProductRepositoryIntegrationTestSuite) SetupSuite() {
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

	suite.Require().NoError(db.AutoMigrate(&productrepo.ProductDTO{}))
}

func (suite *ProductRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE products").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.repository = productrepo.NewGormProductRepository(suite.db, suite.tracker)
}

func (suite *ProductRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *ProductRepositoryIntegrationTestSuite) TestAdd_ValidProduct_Success() {
	ctx := context.Background()

	testProduct := suite.createTestProduct(100)
	suite.tracker.On("TrackAggregate", testProduct.ID(), testProduct).Once()

	err := suite.repository.Add(ctx, testProduct)
	suite.Require().NoError(err)

	retrieved, err := suite.repository.Get(ctx, testProduct.ID())
	suite.Require().NoError(err)
	suite.Equal(testProduct.ID(), retrieved.ID())
	suite.Equal("Basmati Rice", retrieved.Name())
	suite.True(retrieved.Price().Equal(decimal.NewFromInt(25)))
	suite.Equal(100, retrieved.StockQty())
	suite.True(retrieved.IsActive())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *ProductRepositoryIntegrationTestSuite) TestGet_NonExistentProduct_ReturnsNotFoundError() {
	ctx := context.Background()

	retrieved, err := suite.repository.Get(ctx, kernel.NewUUID())

	suite.Nil(retrieved)
	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
}

func (suite *ProductRepositoryIntegrationTestSuite) TestUpdate_DoesNotTouchStockLedger() {
	ctx := context.Background()

	testProduct := suite.createTestProduct(40)
	suite.tracker.On("TrackAggregate", testProduct.ID(), mock.Anything).Twice()

	err := suite.repository.Add(ctx, testProduct)
	suite.Require().NoError(err)

	// Reserve moves the ledger behind the aggregate's back.
	err = suite.repository.Reserve(ctx, testProduct.ID(), 15)
	suite.Require().NoError(err)

	// Updating with the stale aggregate must not restore the old stock.
	stale, err := product.RestoreProduct(
		testProduct.ID(), "Jasmine Rice", decimal.NewFromInt(30), "KG", 40, true)
	suite.Require().NoError(err)

	err = suite.repository.Update(ctx, stale)
	suite.Require().NoError(err)

	retrieved, err := suite.repository.Get(ctx, testProduct.ID())
	suite.Require().NoError(err)
	suite.Equal("Jasmine Rice", retrieved.Name())
	suite.Equal(25, retrieved.StockQty())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *ProductRepositoryIntegrationTestSuite) TestReserve_SufficientStock_DecrementsCounter() {
	ctx := context.Background()

	testProduct := suite.createTestProduct(10)
	suite.tracker.On("TrackAggregate", testProduct.ID(), testProduct).Once()
	suite.Require().NoError(suite.repository.Add(ctx, testProduct))

	err := suite.repository.Reserve(ctx, testProduct.ID(), 7)
	suite.Require().NoError(err)

	retrieved, err := suite.repository.Get(ctx, testProduct.ID())
	suite.Require().NoError(err)
	suite.Equal(3, retrieved.StockQty())
}

func (suite *ProductRepositoryIntegrationTestSuite) TestReserve_InsufficientStock_ReturnsAvailable() {
	ctx := context.Background()

	testProduct := suite.createTestProduct(3)
	suite.tracker.On("TrackAggregate", testProduct.ID(), testProduct).Once()
	suite.Require().NoError(suite.repository.Add(ctx, testProduct))

	err := suite.repository.Reserve(ctx, testProduct.ID(), 5)
	suite.Require().Error(err)

	var stockErr *product.InsufficientStockError
	suite.Require().ErrorAs(err, &stockErr)
	suite.Equal(testProduct.ID(), stockErr.ProductID)
	suite.Equal(5, stockErr.Requested)
	suite.Equal(3, stockErr.Available)

	// The failed reservation must not have moved the counter.
	retrieved, err := suite.repository.Get(ctx, testProduct.ID())
	suite.Require().NoError(err)
	suite.Equal(3, retrieved.StockQty())
}

func (suite *ProductRepositoryIntegrationTestSuite) TestReserve_NonExistentProduct_ReturnsNotFoundError() {
	ctx := context.Background()

	err := suite.repository.Reserve(ctx, kernel.NewUUID(), 1)
	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
}

func (suite *ProductRepositoryIntegrationTestSuite) TestReserve_ConcurrentReservations_NeverOverdraws() {
	ctx := context.Background()

	testProduct := suite.createTestProduct(10)
	suite.tracker.On("TrackAggregate", testProduct.ID(), testProduct).Once()
	suite.Require().NoError(suite.repository.Add(ctx, testProduct))

	// 20 goroutines compete for 10 units, one unit each.
	const workers = 20
	var wg sync.WaitGroup
	results := make(chan error, workers)

	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- suite.repository.Reserve(ctx, testProduct.ID(), 1)
		}()
	}
	wg.Wait()
	close(results)

	succeeded := 0
	for err := range results {
		if err == nil {
			succeeded++
			continue
		}
		var stockErr *product.InsufficientStockError
		suite.Require().ErrorAs(err, &stockErr)
	}
	suite.Equal(10, succeeded)

	retrieved, err := suite.repository.Get(ctx, testProduct.ID())
	suite.Require().NoError(err)
	suite.Equal(0, retrieved.StockQty())
}

func (suite *ProductRepositoryIntegrationTestSuite) TestRelease_ReturnsStock() {
	ctx := context.Background()

	testProduct := suite.createTestProduct(5)
	suite.tracker.On("TrackAggregate", testProduct.ID(), testProduct).Once()
	suite.Require().NoError(suite.repository.Add(ctx, testProduct))

	suite.Require().NoError(suite.repository.Reserve(ctx, testProduct.ID(), 5))
	suite.Require().NoError(suite.repository.Release(ctx, testProduct.ID(), 3))

	retrieved, err := suite.repository.Get(ctx, testProduct.ID())
	suite.Require().NoError(err)
	suite.Equal(3, retrieved.StockQty())
}

func (suite *ProductRepositoryIntegrationTestSuite) TestRelease_NonPositiveQuantity_NoOp() {
	ctx := context.Background()

	testProduct := suite.createTestProduct(5)
	suite.tracker.On("TrackAggregate", testProduct.ID(), testProduct).Once()
	suite.Require().NoError(suite.repository.Add(ctx, testProduct))

	suite.Require().NoError(suite.repository.Release(ctx, testProduct.ID(), 0))
	suite.Require().NoError(suite.repository.Release(ctx, testProduct.ID(), -4))

	retrieved, err := suite.repository.Get(ctx, testProduct.ID())
	suite.Require().NoError(err)
	suite.Equal(5, retrieved.StockQty())
}

func (suite *ProductRepositoryIntegrationTestSuite) TestGetBelowStock_FiltersAndOrders() {
	ctx := context.Background()

	suite.tracker.On("TrackAggregate", mock.AnythingOfType("kernel.UUID"), mock.Anything).Times(4)

	low1 := suite.addProduct("Saffron", 2)
	low2 := suite.addProduct("Cardamom", 8)
	suite.addProduct("Flour", 50)
	inactive, err := product.RestoreProduct(
		kernel.NewUUID(), "Retired Item", decimal.NewFromInt(5), "KG", 1, false)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(ctx, inactive))

	products, err := suite.repository.GetBelowStock(ctx, 10)
	suite.Require().NoError(err)
	suite.Require().Len(products, 2)

	// Lowest stock first, inactive products excluded.
	suite.Equal(low1.ID(), products[0].ID())
	suite.Equal(low2.ID(), products[1].ID())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *ProductRepositoryIntegrationTestSuite) TestDelete_RemovesProduct() {
	ctx := context.Background()

	testProduct := suite.createTestProduct(5)
	suite.tracker.On("TrackAggregate", testProduct.ID(), testProduct).Once()
	suite.Require().NoError(suite.repository.Add(ctx, testProduct))

	suite.Require().NoError(suite.repository.Delete(ctx, testProduct.ID()))

	_, err := suite.repository.Get(ctx, testProduct.ID())
	suite.Require().Error(err)

	err = suite.repository.Delete(ctx, testProduct.ID())
	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
}

// createTestProduct creates a basic test product with the given stock.
func (suite *ProductRepositoryIntegrationTestSuite) createTestProduct(stockQty int) *product.Product {
	testProduct, err := product.NewProduct(
		kernel.NewUUID(), "Basmati Rice", decimal.NewFromInt(25), "KG", stockQty)
	suite.Require().NoError(err)
	return testProduct
}

// addProduct creates and persists a product with the given name and stock.
func (suite *ProductRepositoryIntegrationTestSuite) addProduct(name string, stockQty int) *product.Product {
	testProduct, err := product.NewProduct(
		kernel.NewUUID(), name, decimal.NewFromInt(12), "KG", stockQty)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(context.Background(), testProduct))
	return testProduct
}

func TestProductRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(ProductRepositoryIntegrationTestSuite))
}
