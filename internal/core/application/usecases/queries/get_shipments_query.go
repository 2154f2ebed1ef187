// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return optimized read models for specific use cases.
package queries

import (
	"errors"
	"time"

	"routex/internal/core/domain/model/account"
	"routex/internal/core/domain/model/kernel"
	"routex/internal/pkg/guard"
)

// MaxShipmentRows caps every shipment listing. Clients page by narrowing
// updated_since instead of asking for more rows.
const MaxShipmentRows = 500

var ErrGetShipmentsQueryIsNotConstructed = errors.New(
	"GetShipmentsQuery must be created via NewGetShipmentsQuery constructor",
)

// GetShipmentsQuery retrieves the manager's shipment list, newest first.
// A non-zero UpdatedSince narrows the result to shipments touched at or after
// that instant, which is how polling clients fetch increments.
type GetShipmentsQuery struct {
	actor        account.Actor
	updatedSince time.Time

	guard guard.ConstructorGuard
}

// NewGetShipmentsQuery creates a query for the shipment list.
// A zero updatedSince returns the unfiltered (capped) list.
func NewGetShipmentsQuery(actor account.Actor, updatedSince time.Time) (GetShipmentsQuery, error) {
	if err := actor.Validate(); err != nil {
		return GetShipmentsQuery{}, err
	}
	return GetShipmentsQuery{
		actor:        actor,
		updatedSince: updatedSince,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetShipmentsQuery) Validate() error {
	return q.guard.Validate(ErrGetShipmentsQueryIsNotConstructed)
}

// Actor returns the authenticated caller.
func (q GetShipmentsQuery) Actor() account.Actor {
	return q.actor
}

// UpdatedSince returns the incremental filter, zero when unfiltered.
func (q GetShipmentsQuery) UpdatedSince() time.Time {
	return q.updatedSince
}

// ShipmentResponse is one row of the shipment list read model.
type ShipmentResponse struct {
	ID              kernel.UUID  `json:"id"`
	ProductID       kernel.UUID  `json:"product_id"`
	ProductName     string       `json:"product_name"`
	WarehouseID     kernel.UUID  `json:"warehouse_id"`
	CustomerID      kernel.UUID  `json:"customer_id"`
	DriverID        *kernel.UUID `json:"driver_id,omitempty"`
	CustomerAddress string       `json:"customer_address"`
	Quantity        int          `json:"quantity"`
	Notes           string       `json:"notes,omitempty"`
	Status          string       `json:"status"`
	AssignedAt      time.Time    `json:"assigned_at"`
	UpdatedAt       time.Time    `json:"updated_at"`
}
