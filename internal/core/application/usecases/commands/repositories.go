// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"routex/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// ProductRepoFactory provides access to the product repository within a transaction.
	ProductRepoFactory interface {
		ProductRepository() ports.ProductRepository
	}

	// ShipmentRepoFactory provides access to the shipment repository within a transaction.
	ShipmentRepoFactory interface {
		ShipmentRepository() ports.ShipmentRepository
	}

	// StatusUpdateRepoFactory provides access to the status history repository within a transaction.
	StatusUpdateRepoFactory interface {
		StatusUpdateRepository() ports.StatusUpdateRepository
	}

	// DriverRepoFactory provides access to the driver repository within a transaction.
	DriverRepoFactory interface {
		DriverRepository() ports.DriverRepository
	}

	// CustomerRepoFactory provides access to the customer repository within a transaction.
	CustomerRepoFactory interface {
		CustomerRepository() ports.CustomerRepository
	}

	// WarehouseRepoFactory provides access to the warehouse repository within a transaction.
	WarehouseRepoFactory interface {
		WarehouseRepository() ports.WarehouseRepository
	}

	// ShipmentUoW manages transactions for shipment writes. The shipment row,
	// the referenced aggregates and the stock ledger are touched in one
	// transaction, so the UoW spans all of them.
	ShipmentUoW interface {
		TxManager
		ShipmentRepoFactory
		ProductRepoFactory
		DriverRepoFactory
		CustomerRepoFactory
		WarehouseRepoFactory
	}

	// ShipmentUoWFactory creates new shipment unit of work instances.
	ShipmentUoWFactory interface {
		Create() ShipmentUoW
	}

	// StatusUoW manages transactions for status history writes and the status
	// sync that follows them.
	StatusUoW interface {
		TxManager
		ShipmentRepoFactory
		StatusUpdateRepoFactory
	}

	// StatusUoWFactory creates new status unit of work instances.
	StatusUoWFactory interface {
		Create() StatusUoW
	}

	// ProductUoW manages transactions for product writes. Deletion needs the
	// shipment repository to enforce the reference protection rule.
	ProductUoW interface {
		TxManager
		ProductRepoFactory
		ShipmentRepoFactory
	}

	// ProductUoWFactory creates new product unit of work instances.
	ProductUoWFactory interface {
		Create() ProductUoW
	}
)
