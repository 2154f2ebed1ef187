package shipment

import "routex/internal/core/domain/model/kernel"

// Assignment is the (driver, product, quantity) triple of a shipment at one
// point in time. The reservation delta engine compares the triple before and
// after a write to decide which ledger calls the write implies.
type Assignment struct {
	DriverID  *kernel.UUID
	ProductID kernel.UUID
	Quantity  int
}

// HasDriver reports whether a driver is assigned.
func (a Assignment) HasDriver() bool {
	return a.DriverID != nil
}

// ReservesStock reports whether this assignment holds a stock reservation.
// Stock is reserved only while a shipment has both a driver and a product;
// the product reference is mandatory, so the driver decides.
func (a Assignment) ReservesStock() bool {
	return a.HasDriver()
}

// SameDriver reports whether both assignments name the same driver
// (including both naming none).
func (a Assignment) SameDriver(other Assignment) bool {
	if a.DriverID == nil || other.DriverID == nil {
		return a.DriverID == nil && other.DriverID == nil
	}
	return a.DriverID.IsEqual(*other.DriverID)
}

// IsEqual reports whether the two triples are identical.
func (a Assignment) IsEqual(other Assignment) bool {
	return a.SameDriver(other) &&
		a.ProductID.IsEqual(other.ProductID) &&
		a.Quantity == other.Quantity
}
