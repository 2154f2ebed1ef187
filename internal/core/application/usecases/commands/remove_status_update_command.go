package commands

import (
	"errors"

	"routex/internal/core/domain/model/account"
	"routex/internal/core/domain/model/kernel"
	"routex/internal/pkg/guard"
)

// ErrRemoveStatusUpdateCommandIsNotConstructed is returned when the command
// was not created through its constructor.
var ErrRemoveStatusUpdateCommandIsNotConstructed = errors.New(
	"RemoveStatusUpdateCommand must be created via NewRemoveStatusUpdateCommand constructor",
)

// RemoveStatusUpdateCommand represents a manager deleting an erroneous history
// entry. Removing the latest entry rolls the shipment's status back to
// whatever the remaining history says, or to NEW when nothing remains.
type RemoveStatusUpdateCommand struct { //nolint:recvcheck //using for validation
	actor    account.Actor
	updateID kernel.UUID

	guard guard.ConstructorGuard
}

// NewRemoveStatusUpdateCommand creates a command to delete a history entry.
func NewRemoveStatusUpdateCommand(actor account.Actor, updateID kernel.UUID) (RemoveStatusUpdateCommand, error) {
	cmd := RemoveStatusUpdateCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setActor(actor),
		cmd.setUpdateID(updateID),
	); err != nil {
		return RemoveStatusUpdateCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RemoveStatusUpdateCommand) Validate() error {
	return c.guard.Validate(ErrRemoveStatusUpdateCommandIsNotConstructed)
}

// Actor returns the authenticated caller.
func (c RemoveStatusUpdateCommand) Actor() account.Actor {
	return c.actor
}

// UpdateID returns the identifier of the history entry to delete.
func (c RemoveStatusUpdateCommand) UpdateID() kernel.UUID {
	return c.updateID
}

func (c *RemoveStatusUpdateCommand) setActor(actor account.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	c.actor = actor
	return nil
}

func (c *RemoveStatusUpdateCommand) setUpdateID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.updateID = id
	return nil
}
