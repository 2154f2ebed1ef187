package commands

import (
	"errors"

	"routex/internal/core/domain/model/account"
	"routex/internal/core/domain/model/kernel"
	"routex/internal/core/domain/model/shipment"
	"routex/internal/pkg/errs"
	"routex/internal/pkg/guard"
)

// ErrCreateShipmentCommandIsNotConstructed is returned when the command was
// not created through its constructor.
var ErrCreateShipmentCommandIsNotConstructed = errors.New(
	"CreateShipmentCommand must be created via NewCreateShipmentCommand constructor",
)

// CreateShipmentCommand represents a request to register a new shipment.
//
// The driver is optional; when one is named, creating the shipment also
// reserves stock for it. The delivery address may be empty when the customer
// has exactly one saved address, in which case that address is used.
type CreateShipmentCommand struct { //nolint:recvcheck //using for validation
	actor           account.Actor
	shipmentID      kernel.UUID
	productID       kernel.UUID
	warehouseID     kernel.UUID
	customerID      kernel.UUID
	driverID        *kernel.UUID
	customerAddress string
	quantity        int
	notes           string

	guard guard.ConstructorGuard
}

// NewCreateShipmentCommand creates a command to register a new shipment.
// A zero quantity defaults to shipment.DefaultQuantity; negative quantities
// are rejected.
func NewCreateShipmentCommand(
	actor account.Actor,
	shipmentID kernel.UUID,
	productID kernel.UUID,
	warehouseID kernel.UUID,
	customerID kernel.UUID,
	driverID *kernel.UUID,
	customerAddress string,
	quantity int,
	notes string,
) (CreateShipmentCommand, error) {
	cmd := CreateShipmentCommand{
		driverID:        driverID,
		customerAddress: customerAddress,
		notes:           notes,
		guard:           guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setActor(actor),
		cmd.setShipmentID(shipmentID),
		cmd.setProductID(productID),
		cmd.setWarehouseID(warehouseID),
		cmd.setCustomerID(customerID),
		cmd.setQuantity(quantity),
	); err != nil {
		return CreateShipmentCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateShipmentCommand) Validate() error {
	return c.guard.Validate(ErrCreateShipmentCommandIsNotConstructed)
}

// Actor returns the authenticated caller.
func (c CreateShipmentCommand) Actor() account.Actor {
	return c.actor
}

// ShipmentID returns the identifier for the new shipment.
func (c CreateShipmentCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

// ProductID returns the shipped product's identifier.
func (c CreateShipmentCommand) ProductID() kernel.UUID {
	return c.productID
}

// WarehouseID returns the dispatching warehouse's identifier.
func (c CreateShipmentCommand) WarehouseID() kernel.UUID {
	return c.warehouseID
}

// CustomerID returns the recipient customer's identifier.
func (c CreateShipmentCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// DriverID returns the optional driver to assign, or nil.
func (c CreateShipmentCommand) DriverID() *kernel.UUID {
	return c.driverID
}

// CustomerAddress returns the requested delivery address, possibly empty.
func (c CreateShipmentCommand) CustomerAddress() string {
	return c.customerAddress
}

// Quantity returns the number of product units to ship.
func (c CreateShipmentCommand) Quantity() int {
	return c.quantity
}

// Notes returns the free-text notes.
func (c CreateShipmentCommand) Notes() string {
	return c.notes
}

func (c *CreateShipmentCommand) setActor(actor account.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	c.actor = actor
	return nil
}

func (c *CreateShipmentCommand) setShipmentID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.shipmentID = id
	return nil
}

func (c *CreateShipmentCommand) setProductID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("productID", err)
	}
	c.productID = id
	return nil
}

func (c *CreateShipmentCommand) setWarehouseID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("warehouseID", err)
	}
	c.warehouseID = id
	return nil
}

func (c *CreateShipmentCommand) setCustomerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("customerID", err)
	}
	c.customerID = id
	return nil
}

func (c *CreateShipmentCommand) setQuantity(quantity int) error {
	if quantity == 0 {
		quantity = shipment.DefaultQuantity
	}
	if quantity < 1 {
		return errs.NewValueIsInvalidError("quantity")
	}
	c.quantity = quantity
	return nil
}
