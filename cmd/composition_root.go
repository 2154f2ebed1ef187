package cmd

import (
	"context"
	"log/slog"
	"strings"

	"routex/internal/adapters/out/kafka"
	"routex/internal/adapters/out/postgres"
	redisadapter "routex/internal/adapters/out/redis"
	"routex/internal/core/application/usecases/commands"
	"routex/internal/core/application/usecases/queries"
	"routex/internal/core/ports"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	cache      ports.ProjectionCache
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	root := &CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		logger:     logger,
	}

	root.cache = redisadapter.NewProjectionCache(redis.NewClient(&redis.Options{
		Addr:     config.RedisAddr,
		Password: config.RedisPassword,
	}))

	if config.KafkaBrokers != "" {
		publisher, err := kafka.NewPublisher(
			strings.Split(config.KafkaBrokers, ","),
			config.KafkaStatusTopic,
			logger,
		)
		if err != nil {
			return nil, err
		}
		root.publisher = publisher
	} else {
		logger.Warn("No Kafka brokers configured, status change events will not be published")
		root.publisher = noopEventPublisher{}
	}

	return root, nil
}

// Close releases the outbound adapters. Safe to call once on shutdown.
func (c *CompositionRoot) Close() error {
	return c.publisher.Close()
}

func (c *CompositionRoot) CreateCreateShipmentCommandHandler() commands.CreateShipmentCommandHandler {
	var f commands.ShipmentUoWFactory = FuncShipmentUoWFactory(func() commands.ShipmentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateShipmentCommandHandler(f, c.cache)
}

func (c *CompositionRoot) CreateUpdateShipmentCommandHandler() commands.UpdateShipmentCommandHandler {
	var f commands.ShipmentUoWFactory = FuncShipmentUoWFactory(func() commands.ShipmentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateShipmentCommandHandler(f, c.cache)
}

func (c *CompositionRoot) CreateDeleteShipmentCommandHandler() commands.DeleteShipmentCommandHandler {
	var f commands.ShipmentUoWFactory = FuncShipmentUoWFactory(func() commands.ShipmentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewDeleteShipmentCommandHandler(f, c.cache)
}

func (c *CompositionRoot) CreateReportShipmentStatusCommandHandler() commands.ReportShipmentStatusCommandHandler {
	var f commands.StatusUoWFactory = FuncStatusUoWFactory(func() commands.StatusUoW {
		return c.uowFactory.Create()
	})
	return commands.NewReportShipmentStatusCommandHandler(f, c.config.MaxGpsAccuracyM, c.publisher, c.cache)
}

func (c *CompositionRoot) CreateRemoveStatusUpdateCommandHandler() commands.RemoveStatusUpdateCommandHandler {
	var f commands.StatusUoWFactory = FuncStatusUoWFactory(func() commands.StatusUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRemoveStatusUpdateCommandHandler(f, c.publisher, c.cache)
}

func (c *CompositionRoot) CreateCreateProductCommandHandler() commands.CreateProductCommandHandler {
	var f commands.ProductUoWFactory = FuncProductUoWFactory(func() commands.ProductUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateProductCommandHandler(f, c.cache)
}

func (c *CompositionRoot) CreateDeleteProductCommandHandler() commands.DeleteProductCommandHandler {
	var f commands.ProductUoWFactory = FuncProductUoWFactory(func() commands.ProductUoW {
		return c.uowFactory.Create()
	})
	return commands.NewDeleteProductCommandHandler(f, c.cache)
}

func (c *CompositionRoot) CreateGetShipmentsQueryHandler() queries.GetShipmentsQueryHandler {
	return queries.NewGetShipmentsQueryHandler(c.gormDB, c.cache)
}

func (c *CompositionRoot) CreateGetDriverShipmentsQueryHandler() queries.GetDriverShipmentsQueryHandler {
	return queries.NewGetDriverShipmentsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetDriverStatusesQueryHandler() queries.GetDriverStatusesQueryHandler {
	return queries.NewGetDriverStatusesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetLowStockProductsQueryHandler() queries.GetLowStockProductsQueryHandler {
	return queries.NewGetLowStockProductsQueryHandler(c.gormDB)
}

type FuncShipmentUoWFactory func() commands.ShipmentUoW

func (f FuncShipmentUoWFactory) Create() commands.ShipmentUoW {
	return f()
}

type FuncStatusUoWFactory func() commands.StatusUoW

func (f FuncStatusUoWFactory) Create() commands.StatusUoW {
	return f()
}

type FuncProductUoWFactory func() commands.ProductUoW

func (f FuncProductUoWFactory) Create() commands.ProductUoW {
	return f()
}

// noopEventPublisher drops events when no message bus is configured.
type noopEventPublisher struct{}

func (noopEventPublisher) PublishShipmentStatusChanged(context.Context, ports.ShipmentStatusChangedEvent) error {
	return nil
}

func (noopEventPublisher) Close() error {
	return nil
}
