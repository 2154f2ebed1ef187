package queries

import (
	"context"

	"routex/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetLowStockProductsQueryHandler retrieves products running low on stock,
// lowest stock first.
type GetLowStockProductsQueryHandler struct {
	db *gorm.DB
}

// NewGetLowStockProductsQueryHandler creates a handler for low stock queries.
func NewGetLowStockProductsQueryHandler(db *gorm.DB) GetLowStockProductsQueryHandler {
	return GetLowStockProductsQueryHandler{db: db}
}

// Handle executes the low stock query.
func (h GetLowStockProductsQueryHandler) Handle(
	ctx context.Context,
	query GetLowStockProductsQuery,
) ([]LowStockProductResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	products := make([]LowStockProductResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			name,
			unit,
			price,
			stock_qty
		FROM products
		WHERE is_active AND stock_qty < ?
		ORDER BY stock_qty, name
	`, query.Threshold()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var response LowStockProductResponse
		var id uuid.UUID
		var price decimal.Decimal

		err = rows.Scan(
			&id,
			&response.Name,
			&response.Unit,
			&price,
			&response.StockQty,
		)
		if err != nil {
			return nil, err
		}

		if response.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		response.Price = price

		products = append(products, response)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return products, nil
}
