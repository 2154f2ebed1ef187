package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"routex/cmd"
	httpadapter "routex/internal/adapters/in/http"
	"routex/internal/adapters/out/postgres/customerrepo"
	"routex/internal/adapters/out/postgres/driverrepo"
	"routex/internal/adapters/out/postgres/productrepo"
	"routex/internal/adapters/out/postgres/shipmentrepo"
	"routex/internal/adapters/out/postgres/statusupdaterepo"
	"routex/internal/adapters/out/postgres/warehouserepo"
	"routex/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	config := getConfigs(logger)

	db, err := openDatabase(config)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	root, err := cmd.NewCompositionRoot(config, db, logger)
	if err != nil {
		log.Fatalf("Failed to build composition root: %v", err)
	}
	defer func() {
		if err := root.Close(); err != nil {
			logger.Error("Failed to close outbound adapters", "error", err)
		}
	}()

	jobManager := jobs.NewJobManager(
		root.CreateGetLowStockProductsQueryHandler(),
		config.LowStockThreshold,
		logger,
	)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start background jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(root, config.HTTPPort, logger)
}

func getConfigs(logger *slog.Logger) cmd.Config {
	if err := godotenv.Load(".env"); err != nil {
		logger.Warn("No .env file found, relying on process environment")
	}

	return cmd.Config{
		HTTPPort:          envOrDefault("HTTP_PORT", "8080"),
		DBHost:            envOrDefault("DB_HOST", "localhost"),
		DBPort:            envOrDefault("DB_PORT", "5432"),
		DBUser:            os.Getenv("DB_USER"),
		DBPassword:        os.Getenv("DB_PASSWORD"),
		DBName:            os.Getenv("DB_NAME"),
		DBSslMode:         envOrDefault("DB_SSLMODE", "disable"),
		RedisAddr:         envOrDefault("REDIS_ADDR", "localhost:6379"),
		RedisPassword:     os.Getenv("REDIS_PASSWORD"),
		KafkaBrokers:      os.Getenv("KAFKA_BROKERS"),
		KafkaStatusTopic:  envOrDefault("KAFKA_STATUS_TOPIC", "shipment-status-changed"),
		MaxGpsAccuracyM:   envInt(logger, "MAX_GPS_ACCURACY_M", 0),
		LowStockThreshold: envInt(logger, "LOW_STOCK_THRESHOLD", 0),
	}
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func envInt(logger *slog.Logger, key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		logger.Warn("Ignoring non-numeric environment variable", "key", key, "value", raw)
		return fallback
	}
	return value
}

func openDatabase(config cmd.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		config.DBHost, config.DBPort, config.DBUser, config.DBPassword, config.DBName, config.DBSslMode)
	return gorm.Open(gormpostgres.Open(dsn), &gorm.Config{})
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&productrepo.ProductDTO{},
		&driverrepo.DriverDTO{},
		&customerrepo.CustomerDTO{},
		&warehouserepo.WarehouseDTO{},
		&shipmentrepo.ShipmentDTO{},
		&statusupdaterepo.StatusUpdateDTO{},
	)
}

func startWebServer(root *cmd.CompositionRoot, port string, logger *slog.Logger) {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())

	server := httpadapter.NewServer(
		root.CreateCreateShipmentCommandHandler(),
		root.CreateUpdateShipmentCommandHandler(),
		root.CreateDeleteShipmentCommandHandler(),
		root.CreateReportShipmentStatusCommandHandler(),
		root.CreateRemoveStatusUpdateCommandHandler(),
		root.CreateCreateProductCommandHandler(),
		root.CreateDeleteProductCommandHandler(),
		root.CreateGetShipmentsQueryHandler(),
		root.CreateGetDriverShipmentsQueryHandler(),
		root.CreateGetDriverStatusesQueryHandler(),
		root.CreateGetLowStockProductsQueryHandler(),
	)
	server.RegisterRoutes(e)

	go func() {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); err != nil {
			logger.Info("HTTP server stopped", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Failed to shut down HTTP server gracefully", "error", err)
	}
}
