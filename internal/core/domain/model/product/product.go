package product

import (
	"errors"
	"fmt"

	"routex/internal/core/domain/model/kernel"
	"routex/internal/pkg/errs"
	"routex/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// DefaultUnit is the measurement unit assumed when none is supplied.
const DefaultUnit = "KG"

var (
	// ErrProductIsNotConstructed is returned when a Product instance was not
	// created through the NewProduct or RestoreProduct constructors.
	ErrProductIsNotConstructed = errors.New("Product must be created via NewProduct constructor")

	// ErrInvalidQuantity indicates a stock operation with a non-positive quantity.
	ErrInvalidQuantity = errors.New("quantity must be greater than zero")

	// ErrInsufficientStock indicates a reservation that would drive the stock
	// counter negative. Use errors.As with *InsufficientStockError to read the
	// quantity that is still available.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrProductInUse indicates a deletion attempt while shipments still
	// reference the product.
	ErrProductInUse = errors.New("product is referenced by shipments")
)

// InsufficientStockError reports a failed stock reservation, naming the
// quantity that was requested and the quantity currently available so the
// caller can correct the request.
type InsufficientStockError struct {
	ProductID kernel.UUID
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("%s: product %s has %d available, %d requested",
		ErrInsufficientStock, e.ProductID, e.Available, e.Requested)
}

func (e *InsufficientStockError) Unwrap() error {
	return ErrInsufficientStock
}

// ProductInUseError reports a blocked product deletion and how many shipments
// still reference the product.
type ProductInUseError struct {
	ProductID     kernel.UUID
	ShipmentCount int64
}

func (e *ProductInUseError) Error() string {
	return fmt.Sprintf("%s: product %s is referenced by %d shipments",
		ErrProductInUse, e.ProductID, e.ShipmentCount)
}

func (e *ProductInUseError) Unwrap() error {
	return ErrProductInUse
}

// Product is the aggregate root for a sellable item and its stock counter.
//
// Product maintains these invariants:
//   - price is strictly positive
//   - stock quantity is never negative
//   - the stock counter is only ever mutated through the inventory ledger's
//     atomic reserve/release primitives, never assigned directly
//
// The aggregate itself carries the last observed counter value; the
// authoritative value lives in storage and is updated with a conditional
// update so concurrent reservations cannot oversell.
type Product struct {
	id       kernel.UUID
	name     string
	price    decimal.Decimal
	unit     string
	stockQty int
	isActive bool

	guard guard.ConstructorGuard
}

// NewProduct creates an active Product with an initial stock quantity.
// An empty unit defaults to DefaultUnit.
func NewProduct(id kernel.UUID, name string, price decimal.Decimal, unit string, stockQty int) (*Product, error) {
	p := &Product{
		isActive: true,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		p.setID(id),
		p.setName(name),
		p.setPrice(price),
		p.setUnit(unit),
		p.setStockQty(stockQty),
	); err != nil {
		return nil, err
	}

	return p, nil
}

// RestoreProduct reconstructs a Product from persistent storage, including
// its active flag.
func RestoreProduct(
	id kernel.UUID,
	name string,
	price decimal.Decimal,
	unit string,
	stockQty int,
	isActive bool,
) (*Product, error) {
	p := &Product{
		isActive: isActive,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		p.setID(id),
		p.setName(name),
		p.setPrice(price),
		p.setUnit(unit),
		p.setStockQty(stockQty),
	); err != nil {
		return nil, err
	}

	return p, nil
}

// Validate ensures the Product was created through a constructor.
func (p *Product) Validate() error {
	if p == nil {
		return ErrProductIsNotConstructed
	}
	return p.guard.Validate(ErrProductIsNotConstructed)
}

// IsEqual compares two products by identifier.
func (p *Product) IsEqual(other *Product) bool {
	return other != nil && p.id.IsEqual(other.id)
}

// ID returns the product's unique identifier.
func (p *Product) ID() kernel.UUID {
	return p.id
}

// Name returns the product name.
func (p *Product) Name() string {
	return p.name
}

// Price returns the unit price.
func (p *Product) Price() decimal.Decimal {
	return p.price
}

// Unit returns the measurement unit.
func (p *Product) Unit() string {
	return p.unit
}

// StockQty returns the last observed stock quantity.
func (p *Product) StockQty() int {
	return p.stockQty
}

// IsActive reports whether the product is available for new shipments.
func (p *Product) IsActive() bool {
	return p.isActive
}

// Deactivate hides the product from new shipments without touching stock.
func (p *Product) Deactivate() {
	p.isActive = false
}

func (p *Product) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Product) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	p.name = name
	return nil
}

func (p *Product) setPrice(price decimal.Decimal) error {
	if price.LessThanOrEqual(decimal.Zero) {
		return errs.NewValueIsInvalidErrorWithCause("price",
			fmt.Errorf("%s is not greater than 0", price))
	}
	p.price = price
	return nil
}

func (p *Product) setUnit(unit string) error {
	if unit == "" {
		unit = DefaultUnit
	}
	p.unit = unit
	return nil
}

func (p *Product) setStockQty(stockQty int) error {
	if stockQty < 0 {
		return errs.NewValueIsInvalidErrorWithCause("stockQty",
			fmt.Errorf("%d is negative", stockQty))
	}
	p.stockQty = stockQty
	return nil
}
