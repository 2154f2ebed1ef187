package queries

import (
	"errors"
	"time"

	"routex/internal/core/domain/model/account"
	"routex/internal/core/domain/model/kernel"
	"routex/internal/pkg/guard"
)

var ErrGetDriverStatusesQueryIsNotConstructed = errors.New(
	"GetDriverStatusesQuery must be created via NewGetDriverStatusesQuery constructor",
)

// DriverAvailability is the dashboard classification of a driver.
type DriverAvailability string

const (
	// DriverBusy means the driver has at least one shipment in an active status.
	DriverBusy DriverAvailability = "BUSY"

	// DriverAvailable means the driver is active and has no active shipment.
	DriverAvailable DriverAvailability = "AVAILABLE"

	// DriverUnavailable means the driver turned their availability off.
	DriverUnavailable DriverAvailability = "UNAVAILABLE"
)

// GetDriverStatusesQuery retrieves the dispatch dashboard: every driver with
// their availability classification and the time of their last status report.
type GetDriverStatusesQuery struct {
	actor account.Actor

	guard guard.ConstructorGuard
}

// NewGetDriverStatusesQuery creates a query for the driver dashboard.
func NewGetDriverStatusesQuery(actor account.Actor) (GetDriverStatusesQuery, error) {
	if err := actor.Validate(); err != nil {
		return GetDriverStatusesQuery{}, err
	}
	return GetDriverStatusesQuery{
		actor: actor,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetDriverStatusesQuery) Validate() error {
	return q.guard.Validate(ErrGetDriverStatusesQueryIsNotConstructed)
}

// Actor returns the authenticated caller.
func (q GetDriverStatusesQuery) Actor() account.Actor {
	return q.actor
}

// DriverStatusResponse is one row of the driver dashboard read model.
type DriverStatusResponse struct {
	ID              kernel.UUID        `json:"id"`
	Name            string             `json:"name"`
	Availability    DriverAvailability `json:"availability"`
	ActiveShipments int                `json:"active_shipments"`
	LastSeenAt      *time.Time         `json:"last_seen_at,omitempty"`
}
