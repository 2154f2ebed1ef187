package shipment

import (
	"errors"
	"fmt"
	"time"

	"routex/internal/core/domain/model/kernel"
	"routex/internal/pkg/errs"
	"routex/internal/pkg/guard"
)

// DefaultQuantity is assumed when a shipment is created without an explicit
// quantity.
const DefaultQuantity = 1

// ErrShipmentIsNotConstructed is returned when a Shipment instance was not
// created through the NewShipment or RestoreShipment constructors.
var ErrShipmentIsNotConstructed = errors.New("Shipment must be created via NewShipment constructor")

// Shipment is the aggregate root for one delivery.
//
// Shipment maintains these invariants:
//   - product, warehouse and customer references are always present
//   - quantity is strictly positive
//   - the delivery address is one of the customer's saved addresses
//     (resolved by the customer aggregate before construction)
//   - currentStatus only changes through SyncStatus, driven by the status
//     history; it is never client-editable
//
// The driver reference is optional: an unassigned shipment holds no stock
// reservation.
type Shipment struct {
	id              kernel.UUID
	productID       kernel.UUID
	warehouseID     kernel.UUID
	customerID      kernel.UUID
	driverID        *kernel.UUID
	customerAddress string
	quantity        int
	notes           string
	currentStatus   Status
	assignedAt      time.Time

	guard guard.ConstructorGuard
}

// NewShipment creates a Shipment in the NEW status.
// The driver is optional; quantity must be at least 1 (callers default it to
// DefaultQuantity when the request omits it).
func NewShipment(
	id kernel.UUID,
	productID kernel.UUID,
	warehouseID kernel.UUID,
	customerID kernel.UUID,
	driverID *kernel.UUID,
	customerAddress string,
	quantity int,
	notes string,
	now time.Time,
) (*Shipment, error) {
	s := &Shipment{
		currentStatus: StatusNew,
		notes:         notes,
		assignedAt:    now,
		guard:         guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		s.setID(id),
		s.setProductID(productID),
		s.setWarehouseID(warehouseID),
		s.setCustomerID(customerID),
		s.setDriverID(driverID),
		s.setCustomerAddress(customerAddress),
		s.setQuantity(quantity),
	); err != nil {
		return nil, err
	}

	return s, nil
}

// RestoreShipment reconstructs a Shipment from persistent storage, including
// its denormalized status and assignment time.
func RestoreShipment(
	id kernel.UUID,
	productID kernel.UUID,
	warehouseID kernel.UUID,
	customerID kernel.UUID,
	driverID *kernel.UUID,
	customerAddress string,
	quantity int,
	notes string,
	currentStatus Status,
	assignedAt time.Time,
) (*Shipment, error) {
	s := &Shipment{
		notes:      notes,
		assignedAt: assignedAt,
		guard:      guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		s.setID(id),
		s.setProductID(productID),
		s.setWarehouseID(warehouseID),
		s.setCustomerID(customerID),
		s.setDriverID(driverID),
		s.setCustomerAddress(customerAddress),
		s.setQuantity(quantity),
		s.setCurrentStatus(currentStatus),
	); err != nil {
		return nil, err
	}

	return s, nil
}

// Validate ensures the Shipment was created through a constructor.
func (s *Shipment) Validate() error {
	if s == nil {
		return ErrShipmentIsNotConstructed
	}
	return s.guard.Validate(ErrShipmentIsNotConstructed)
}

// IsEqual compares two shipments by identifier.
func (s *Shipment) IsEqual(other *Shipment) bool {
	return other != nil && s.id.IsEqual(other.id)
}

// ID returns the shipment's unique identifier.
func (s *Shipment) ID() kernel.UUID {
	return s.id
}

// ProductID returns the shipped product's identifier.
func (s *Shipment) ProductID() kernel.UUID {
	return s.productID
}

// WarehouseID returns the dispatching warehouse's identifier.
func (s *Shipment) WarehouseID() kernel.UUID {
	return s.warehouseID
}

// CustomerID returns the recipient customer's identifier.
func (s *Shipment) CustomerID() kernel.UUID {
	return s.customerID
}

// DriverID returns the assigned driver's identifier, or nil when unassigned.
func (s *Shipment) DriverID() *kernel.UUID {
	return s.driverID
}

// CustomerAddress returns the chosen delivery address.
func (s *Shipment) CustomerAddress() string {
	return s.customerAddress
}

// Quantity returns the number of product units this shipment carries.
func (s *Shipment) Quantity() int {
	return s.quantity
}

// Notes returns the free-text notes.
func (s *Shipment) Notes() string {
	return s.notes
}

// Status returns the denormalized current status.
func (s *Shipment) Status() Status {
	return s.currentStatus
}

// AssignedAt returns when the current driver assignment was made.
func (s *Shipment) AssignedAt() time.Time {
	return s.assignedAt
}

// Assignment returns the (driver, product, quantity) triple for the
// reservation delta engine.
func (s *Shipment) Assignment() Assignment {
	var driverID *kernel.UUID
	if s.driverID != nil {
		id := *s.driverID
		driverID = &id
	}
	return Assignment{
		DriverID:  driverID,
		ProductID: s.productID,
		Quantity:  s.quantity,
	}
}

// ChangeDriver reassigns or unassigns the driver and stamps the assignment
// time when the driver actually changes.
func (s *Shipment) ChangeDriver(driverID *kernel.UUID, now time.Time) error {
	before := s.Assignment()
	if err := s.setDriverID(driverID); err != nil {
		return err
	}
	if !before.SameDriver(s.Assignment()) {
		s.assignedAt = now
	}
	return nil
}

// ChangeProduct repoints the shipment at a different product.
func (s *Shipment) ChangeProduct(productID kernel.UUID) error {
	return s.setProductID(productID)
}

// ChangeQuantity updates the carried quantity.
func (s *Shipment) ChangeQuantity(quantity int) error {
	return s.setQuantity(quantity)
}

// ChangeCustomerAddress replaces the delivery address. The caller resolves
// the address against the customer's saved addresses first.
func (s *Shipment) ChangeCustomerAddress(address string) error {
	return s.setCustomerAddress(address)
}

// ChangeNotes replaces the free-text notes.
func (s *Shipment) ChangeNotes(notes string) {
	s.notes = notes
}

// SyncStatus sets the denormalized status to the value recomputed from the
// status history. It is the only status mutator on the aggregate.
func (s *Shipment) SyncStatus(status Status) error {
	return s.setCurrentStatus(status)
}

func (s *Shipment) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.id = id
	return nil
}

func (s *Shipment) setProductID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("productID", err)
	}
	s.productID = id
	return nil
}

func (s *Shipment) setWarehouseID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("warehouseID", err)
	}
	s.warehouseID = id
	return nil
}

func (s *Shipment) setCustomerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("customerID", err)
	}
	s.customerID = id
	return nil
}

func (s *Shipment) setDriverID(id *kernel.UUID) error {
	if id == nil {
		s.driverID = nil
		return nil
	}
	if err := id.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("driverID", err)
	}
	value := *id
	s.driverID = &value
	return nil
}

func (s *Shipment) setCustomerAddress(address string) error {
	if address == "" {
		return errs.NewValueIsRequiredError("customerAddress")
	}
	s.customerAddress = address
	return nil
}

func (s *Shipment) setQuantity(quantity int) error {
	if quantity < 1 {
		return errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}
	s.quantity = quantity
	return nil
}

func (s *Shipment) setCurrentStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	s.currentStatus = status
	return nil
}
