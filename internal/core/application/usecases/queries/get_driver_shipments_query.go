package queries

import (
	"errors"

	"routex/internal/core/domain/model/account"
	"routex/internal/pkg/guard"
)

var ErrGetDriverShipmentsQueryIsNotConstructed = errors.New(
	"GetDriverShipmentsQuery must be created via NewGetDriverShipmentsQuery constructor",
)

// GetDriverShipmentsQuery retrieves the calling driver's own shipments,
// most recently assigned first.
type GetDriverShipmentsQuery struct {
	actor account.Actor

	guard guard.ConstructorGuard
}

// NewGetDriverShipmentsQuery creates a query for a driver's shipment list.
func NewGetDriverShipmentsQuery(actor account.Actor) (GetDriverShipmentsQuery, error) {
	if err := actor.Validate(); err != nil {
		return GetDriverShipmentsQuery{}, err
	}
	return GetDriverShipmentsQuery{
		actor: actor,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetDriverShipmentsQuery) Validate() error {
	return q.guard.Validate(ErrGetDriverShipmentsQueryIsNotConstructed)
}

// Actor returns the authenticated caller.
func (q GetDriverShipmentsQuery) Actor() account.Actor {
	return q.actor
}
