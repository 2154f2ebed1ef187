package commands

import (
	"errors"

	"routex/internal/core/domain/model/account"
	"routex/internal/core/domain/model/kernel"
	"routex/internal/pkg/guard"
)

// ErrDeleteProductCommandIsNotConstructed is returned when the command was
// not created through its constructor.
var ErrDeleteProductCommandIsNotConstructed = errors.New(
	"DeleteProductCommand must be created via NewDeleteProductCommand constructor",
)

// DeleteProductCommand represents a request to remove a product from the
// catalog. Products referenced by any shipment are protected from deletion.
type DeleteProductCommand struct { //nolint:recvcheck //using for validation
	actor     account.Actor
	productID kernel.UUID

	guard guard.ConstructorGuard
}

// NewDeleteProductCommand creates a command to delete a product.
func NewDeleteProductCommand(actor account.Actor, productID kernel.UUID) (DeleteProductCommand, error) {
	cmd := DeleteProductCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setActor(actor),
		cmd.setProductID(productID),
	); err != nil {
		return DeleteProductCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c DeleteProductCommand) Validate() error {
	return c.guard.Validate(ErrDeleteProductCommandIsNotConstructed)
}

// Actor returns the authenticated caller.
func (c DeleteProductCommand) Actor() account.Actor {
	return c.actor
}

// ProductID returns the identifier of the product to delete.
func (c DeleteProductCommand) ProductID() kernel.UUID {
	return c.productID
}

func (c *DeleteProductCommand) setActor(actor account.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	c.actor = actor
	return nil
}

func (c *DeleteProductCommand) setProductID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.productID = id
	return nil
}
