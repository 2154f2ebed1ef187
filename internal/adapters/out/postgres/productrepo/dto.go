// Package productrepo provides data transfer objects and mapping functions
// for product persistence, including the stock ledger operations.
package productrepo

import (
	"time"

	"routex/internal/core/domain/model/kernel"
	"routex/internal/core/domain/model/product"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductDTO represents the database structure for persisting product
// aggregates. The stock_qty column carries a non-negative check so the ledger
// invariant holds even against writes that bypass the repository.
type ProductDTO struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name      string          `gorm:"size:255;not null"`
	Price     decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Unit      string          `gorm:"size:32;not null"`
	StockQty  int             `gorm:"not null;check:stock_qty >= 0"`
	IsActive  bool            `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the database table name for product entities.
func (ProductDTO) TableName() string {
	return "products"
}

func fromDomain(aggregate *product.Product) ProductDTO {
	return ProductDTO{
		ID:       aggregate.ID().Bytes(),
		Name:     aggregate.Name(),
		Price:    aggregate.Price(),
		Unit:     aggregate.Unit(),
		StockQty: aggregate.StockQty(),
		IsActive: aggregate.IsActive(),
	}
}

func toDomain(dto ProductDTO) (*product.Product, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return product.RestoreProduct(id, dto.Name, dto.Price, dto.Unit, dto.StockQty, dto.IsActive)
}
