package commands

import (
	"errors"

	"routex/internal/core/domain/model/account"
	"routex/internal/core/domain/model/kernel"
	"routex/internal/pkg/errs"
	"routex/internal/pkg/guard"
)

// ErrUpdateShipmentCommandIsNotConstructed is returned when the command was
// not created through its constructor.
var ErrUpdateShipmentCommandIsNotConstructed = errors.New(
	"UpdateShipmentCommand must be created via NewUpdateShipmentCommand constructor",
)

// DriverPatch expresses a change to a shipment's driver assignment.
// A nil DriverID unassigns the current driver.
type DriverPatch struct {
	DriverID *kernel.UUID
}

// ShipmentPatch holds the partial changes of an update request.
// Nil fields are left untouched.
type ShipmentPatch struct {
	ProductID       *kernel.UUID
	Driver          *DriverPatch
	Quantity        *int
	CustomerAddress *string
	Notes           *string
}

// IsEmpty reports whether the patch changes nothing.
func (p ShipmentPatch) IsEmpty() bool {
	return p.ProductID == nil &&
		p.Driver == nil &&
		p.Quantity == nil &&
		p.CustomerAddress == nil &&
		p.Notes == nil
}

// UpdateShipmentCommand represents a partial update of an existing shipment.
// Assignment-relevant changes (driver, product, quantity) flow through the
// reservation planner so the stock ledger follows the edit.
type UpdateShipmentCommand struct { //nolint:recvcheck //using for validation
	actor      account.Actor
	shipmentID kernel.UUID
	patch      ShipmentPatch

	guard guard.ConstructorGuard
}

// NewUpdateShipmentCommand creates a command to partially update a shipment.
func NewUpdateShipmentCommand(
	actor account.Actor,
	shipmentID kernel.UUID,
	patch ShipmentPatch,
) (UpdateShipmentCommand, error) {
	cmd := UpdateShipmentCommand{
		patch: patch,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setActor(actor),
		cmd.setShipmentID(shipmentID),
		cmd.validatePatch(patch),
	); err != nil {
		return UpdateShipmentCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateShipmentCommand) Validate() error {
	return c.guard.Validate(ErrUpdateShipmentCommandIsNotConstructed)
}

// Actor returns the authenticated caller.
func (c UpdateShipmentCommand) Actor() account.Actor {
	return c.actor
}

// ShipmentID returns the identifier of the shipment to update.
func (c UpdateShipmentCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

// Patch returns the partial changes to apply.
func (c UpdateShipmentCommand) Patch() ShipmentPatch {
	return c.patch
}

func (c *UpdateShipmentCommand) setActor(actor account.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	c.actor = actor
	return nil
}

func (c *UpdateShipmentCommand) setShipmentID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.shipmentID = id
	return nil
}

func (c *UpdateShipmentCommand) validatePatch(patch ShipmentPatch) error {
	if patch.ProductID != nil {
		if err := patch.ProductID.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause("productID", err)
		}
	}
	if patch.Driver != nil && patch.Driver.DriverID != nil {
		if err := patch.Driver.DriverID.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause("driverID", err)
		}
	}
	if patch.Quantity != nil && *patch.Quantity < 1 {
		return errs.NewValueIsInvalidError("quantity")
	}
	return nil
}
