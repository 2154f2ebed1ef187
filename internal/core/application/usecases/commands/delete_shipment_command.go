package commands

import (
	"errors"

	"routex/internal/core/domain/model/account"
	"routex/internal/core/domain/model/kernel"
	"routex/internal/pkg/guard"
)

// ErrDeleteShipmentCommandIsNotConstructed is returned when the command was
// not created through its constructor.
var ErrDeleteShipmentCommandIsNotConstructed = errors.New(
	"DeleteShipmentCommand must be created via NewDeleteShipmentCommand constructor",
)

// DeleteShipmentCommand represents a request to remove a shipment together
// with its status history. Deleting an assigned shipment releases its stock
// reservation.
type DeleteShipmentCommand struct { //nolint:recvcheck //using for validation
	actor      account.Actor
	shipmentID kernel.UUID

	guard guard.ConstructorGuard
}

// NewDeleteShipmentCommand creates a command to delete a shipment.
func NewDeleteShipmentCommand(actor account.Actor, shipmentID kernel.UUID) (DeleteShipmentCommand, error) {
	cmd := DeleteShipmentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setActor(actor),
		cmd.setShipmentID(shipmentID),
	); err != nil {
		return DeleteShipmentCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c DeleteShipmentCommand) Validate() error {
	return c.guard.Validate(ErrDeleteShipmentCommandIsNotConstructed)
}

// Actor returns the authenticated caller.
func (c DeleteShipmentCommand) Actor() account.Actor {
	return c.actor
}

// ShipmentID returns the identifier of the shipment to delete.
func (c DeleteShipmentCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

func (c *DeleteShipmentCommand) setActor(actor account.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	c.actor = actor
	return nil
}

func (c *DeleteShipmentCommand) setShipmentID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.shipmentID = id
	return nil
}
