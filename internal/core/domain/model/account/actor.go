// Package account models the caller identity the surrounding service layer
// resolves at authentication time. The core never re-queries who a user is;
// it receives a typed Actor claim and checks the role it carries.
package account

import (
	"errors"
	"fmt"

	"routex/internal/core/domain/model/kernel"
	"routex/internal/pkg/errs"
	"routex/internal/pkg/guard"
)

// ErrActorIsNotConstructed is returned when an Actor was not created through
// the NewActor constructor.
var ErrActorIsNotConstructed = errors.New("Actor must be created via NewActor constructor")

// Role identifies the capability set of a caller.
type Role string

const (
	// RoleManager is a warehouse manager: may create, edit and delete
	// shipments and products, and remove erroneous status updates.
	RoleManager Role = "MANAGER"

	// RoleDriver is a delivery driver: may report status updates for
	// shipments assigned to them and read their own shipments.
	RoleDriver Role = "DRIVER"
)

// ParseRole converts an external role string into a Role.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleManager:
		return RoleManager, nil
	case RoleDriver:
		return RoleDriver, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("role",
			fmt.Errorf("%q is not a known role", s))
	}
}

// Validate checks that the role is one of the known values.
func (r Role) Validate() error {
	if r != RoleManager && r != RoleDriver {
		return errs.NewValueIsInvalidErrorWithCause("role",
			fmt.Errorf("%q is not a known role", string(r)))
	}
	return nil
}

// Actor is the authenticated caller of a use case. For drivers, ID is the
// driver aggregate identifier; for managers it identifies the manager account.
type Actor struct { //nolint:recvcheck //using for validation
	id    kernel.UUID
	role  Role
	guard guard.ConstructorGuard
}

// NewActor creates an Actor claim from a resolved identity and role.
func NewActor(id kernel.UUID, role Role) (Actor, error) {
	actor := Actor{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		actor.setID(id),
		actor.setRole(role),
	); err != nil {
		return Actor{}, err
	}

	return actor, nil
}

// Validate ensures the actor was created through the constructor.
func (a Actor) Validate() error {
	return a.guard.Validate(ErrActorIsNotConstructed)
}

// ID returns the caller's identifier.
func (a Actor) ID() kernel.UUID {
	return a.id
}

// Role returns the caller's role.
func (a Actor) Role() Role {
	return a.role
}

// IsManager reports whether the actor is a warehouse manager.
func (a Actor) IsManager() bool {
	return a.role == RoleManager
}

// IsDriver reports whether the actor is a driver.
func (a Actor) IsDriver() bool {
	return a.role == RoleDriver
}

func (a *Actor) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	a.id = id
	return nil
}

func (a *Actor) setRole(role Role) error {
	if err := role.Validate(); err != nil {
		return err
	}
	a.role = role
	return nil
}
