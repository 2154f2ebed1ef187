// Package warehouserepo provides data transfer objects and mapping functions
// for warehouse persistence.
package warehouserepo

import (
	"time"

	"routex/internal/core/domain/model/kernel"
	"routex/internal/core/domain/model/warehouse"

	"github.com/google/uuid"
)

// WarehouseDTO represents the database structure for persisting warehouse
// aggregates.
type WarehouseDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"size:255;not null"`
	Location  string    `gorm:"size:512;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the database table name for warehouse entities.
func (WarehouseDTO) TableName() string {
	return "warehouses"
}

func fromDomain(aggregate *warehouse.Warehouse) WarehouseDTO {
	return WarehouseDTO{
		ID:       aggregate.ID().Bytes(),
		Name:     aggregate.Name(),
		Location: aggregate.Location(),
	}
}

func toDomain(dto WarehouseDTO) (*warehouse.Warehouse, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return warehouse.RestoreWarehouse(id, dto.Name, dto.Location)
}
