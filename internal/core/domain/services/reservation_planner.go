package services

import (
	"routex/internal/core/domain/model/kernel"
	"routex/internal/core/domain/model/shipment"
)

// StockOpKind distinguishes the two ledger operations a plan can contain.
type StockOpKind string

const (
	// StockOpReserve subtracts quantity from a product's available stock.
	StockOpReserve StockOpKind = "RESERVE"

	// StockOpRelease returns quantity to a product's available stock.
	StockOpRelease StockOpKind = "RELEASE"
)

// StockOp is one ledger operation against a product's stock counter.
type StockOp struct {
	Kind      StockOpKind
	ProductID kernel.UUID
	Quantity  int
}

// ReservationPlanner derives the stock ledger operations implied by a change
// to a shipment's (driver, product, quantity) assignment.
//
// Stock is reserved only while a shipment has a driver. The planner compares
// the assignment before and after a write and emits the operations that keep
// the ledger consistent with that rule:
//   - gaining a driver reserves the new quantity
//   - losing a driver releases the old quantity
//   - changing the product while assigned releases against the old product
//     and reserves against the new one
//   - changing only the quantity while assigned reserves or releases the
//     difference
//
// An unchanged assignment yields no operations, so replaying the same write
// never double-counts.
type ReservationPlanner struct{}

// NewReservationPlanner creates a ReservationPlanner.
func NewReservationPlanner() ReservationPlanner {
	return ReservationPlanner{}
}

// Plan returns the ledger operations for moving from old to new.
// A nil old means the shipment is being created; a nil new means it is being
// deleted. Release operations always precede reserve operations so that a
// product swap frees the old reservation before taking the new one.
func (p ReservationPlanner) Plan(old, new *shipment.Assignment) []StockOp {
	oldReserves := old != nil && old.ReservesStock()
	newReserves := new != nil && new.ReservesStock()

	switch {
	case !oldReserves && !newReserves:
		return nil

	case !oldReserves && newReserves:
		return []StockOp{reserve(new.ProductID, new.Quantity)}

	case oldReserves && !newReserves:
		return []StockOp{release(old.ProductID, old.Quantity)}
	}

	// Both hold a reservation.
	if !old.ProductID.IsEqual(new.ProductID) {
		return []StockOp{
			release(old.ProductID, old.Quantity),
			reserve(new.ProductID, new.Quantity),
		}
	}

	switch delta := new.Quantity - old.Quantity; {
	case delta > 0:
		return []StockOp{reserve(new.ProductID, delta)}
	case delta < 0:
		return []StockOp{release(old.ProductID, -delta)}
	default:
		return nil
	}
}

func reserve(productID kernel.UUID, quantity int) StockOp {
	return StockOp{Kind: StockOpReserve, ProductID: productID, Quantity: quantity}
}

func release(productID kernel.UUID, quantity int) StockOp {
	return StockOp{Kind: StockOpRelease, ProductID: productID, Quantity: quantity}
}
