package queries

import (
	"errors"

	"routex/internal/core/domain/model/kernel"
	"routex/internal/pkg/errs"
	"routex/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// DefaultLowStockThreshold is the stock level below which a product is
// flagged for replenishment.
const DefaultLowStockThreshold = 10

var ErrGetLowStockProductsQueryIsNotConstructed = errors.New(
	"GetLowStockProductsQuery must be created via NewGetLowStockProductsQuery constructor",
)

// GetLowStockProductsQuery retrieves products whose available stock fell
// below a threshold. The replenishment job runs it periodically; it carries
// no actor because it serves both the job and the manager dashboard, and the
// HTTP layer gates the latter.
type GetLowStockProductsQuery struct {
	threshold int

	guard guard.ConstructorGuard
}

// NewGetLowStockProductsQuery creates a low stock query.
// A zero threshold defaults to DefaultLowStockThreshold.
func NewGetLowStockProductsQuery(threshold int) (GetLowStockProductsQuery, error) {
	if threshold == 0 {
		threshold = DefaultLowStockThreshold
	}
	if threshold < 0 {
		return GetLowStockProductsQuery{}, errs.NewValueIsInvalidError("threshold")
	}
	return GetLowStockProductsQuery{
		threshold: threshold,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetLowStockProductsQuery) Validate() error {
	return q.guard.Validate(ErrGetLowStockProductsQueryIsNotConstructed)
}

// Threshold returns the stock level below which products are reported.
func (q GetLowStockProductsQuery) Threshold() int {
	return q.threshold
}

// LowStockProductResponse is one row of the low stock read model.
type LowStockProductResponse struct {
	ID       kernel.UUID     `json:"id"`
	Name     string          `json:"name"`
	Unit     string          `json:"unit"`
	Price    decimal.Decimal `json:"price"`
	StockQty int             `json:"stock_qty"`
}
