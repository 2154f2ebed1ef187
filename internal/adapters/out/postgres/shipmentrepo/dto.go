// Package shipmentrepo provides data transfer objects and mapping functions
// for shipment persistence. The status column is denormalized from the status
// history and only moves through SyncStatus.
package shipmentrepo

import (
	"time"

	"routex/internal/core/domain/model/kernel"
	"routex/internal/core/domain/model/shipment"

	"github.com/google/uuid"
)

// ShipmentDTO represents the database structure for persisting shipment
// aggregates. Referenced aggregates are stored by identifier; the updated_at
// index serves the incremental list query.
type ShipmentDTO struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey"`
	ProductID       uuid.UUID  `gorm:"type:uuid;not null;index"`
	WarehouseID     uuid.UUID  `gorm:"type:uuid;not null"`
	CustomerID      uuid.UUID  `gorm:"type:uuid;not null"`
	DriverID        *uuid.UUID `gorm:"type:uuid;index"`
	CustomerAddress string     `gorm:"size:512;not null"`
	Quantity        int        `gorm:"not null"`
	Notes           string
	Status          string `gorm:"size:16;not null;index"`
	AssignedAt      time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time `gorm:"index"`
}

// TableName specifies the database table name for shipment entities.
func (ShipmentDTO) TableName() string {
	return "shipments"
}

func fromDomain(aggregate *shipment.Shipment) ShipmentDTO {
	var driverID *uuid.UUID
	if id := aggregate.DriverID(); id != nil {
		raw := id.Bytes()
		driverID = &raw
	}

	return ShipmentDTO{
		ID:              aggregate.ID().Bytes(),
		ProductID:       aggregate.ProductID().Bytes(),
		WarehouseID:     aggregate.WarehouseID().Bytes(),
		CustomerID:      aggregate.CustomerID().Bytes(),
		DriverID:        driverID,
		CustomerAddress: aggregate.CustomerAddress(),
		Quantity:        aggregate.Quantity(),
		Notes:           aggregate.Notes(),
		Status:          aggregate.Status().String(),
		AssignedAt:      aggregate.AssignedAt(),
	}
}

func toDomain(dto ShipmentDTO) (*shipment.Shipment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	productID, err := kernel.UUIDFromBytes(dto.ProductID[:])
	if err != nil {
		return nil, err
	}
	warehouseID, err := kernel.UUIDFromBytes(dto.WarehouseID[:])
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	var driverID *kernel.UUID
	if dto.DriverID != nil {
		value, driverErr := kernel.UUIDFromBytes((*dto.DriverID)[:])
		if driverErr != nil {
			return nil, driverErr
		}
		driverID = &value
	}

	return shipment.RestoreShipment(
		id,
		productID,
		warehouseID,
		customerID,
		driverID,
		dto.CustomerAddress,
		dto.Quantity,
		dto.Notes,
		shipment.Status(dto.Status),
		dto.AssignedAt,
	)
}

func toDomainSlice(dtos []ShipmentDTO) ([]*shipment.Shipment, error) {
	shipments := make([]*shipment.Shipment, 0, len(dtos))
	for _, dto := range dtos {
		s, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		shipments = append(shipments, s)
	}
	return shipments, nil
}
