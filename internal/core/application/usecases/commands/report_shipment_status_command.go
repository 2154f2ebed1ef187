package commands

import (
	"errors"

	"routex/internal/core/domain/model/account"
	"routex/internal/core/domain/model/kernel"
	"routex/internal/core/domain/model/shipment"
	"routex/internal/pkg/errs"
	"routex/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// ErrReportShipmentStatusCommandIsNotConstructed is returned when the command
// was not created through its constructor.
var ErrReportShipmentStatusCommandIsNotConstructed = errors.New(
	"ReportShipmentStatusCommand must be created via NewReportShipmentStatusCommand constructor",
)

// ReportShipmentStatusCommand represents a driver reporting a new status for
// a shipment, optionally with a note, a proof photo reference and a GPS fix.
//
// Latitude and longitude travel together: supplying only one of them is
// rejected with kernel.ErrIncompleteLocation.
type ReportShipmentStatusCommand struct { //nolint:recvcheck //using for validation
	actor      account.Actor
	updateID   kernel.UUID
	shipmentID kernel.UUID
	status     shipment.Status
	note       string
	photoURL   string
	location   *kernel.GeoPoint
	accuracyM  *int

	guard guard.ConstructorGuard
}

// NewReportShipmentStatusCommand creates a command to append a status update
// to a shipment's history.
func NewReportShipmentStatusCommand(
	actor account.Actor,
	updateID kernel.UUID,
	shipmentID kernel.UUID,
	status shipment.Status,
	note string,
	photoURL string,
	latitude *decimal.Decimal,
	longitude *decimal.Decimal,
	accuracyM *int,
) (ReportShipmentStatusCommand, error) {
	cmd := ReportShipmentStatusCommand{
		note:     note,
		photoURL: photoURL,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setActor(actor),
		cmd.setUpdateID(updateID),
		cmd.setShipmentID(shipmentID),
		cmd.setStatus(status),
		cmd.setLocation(latitude, longitude),
		cmd.setAccuracy(accuracyM),
	); err != nil {
		return ReportShipmentStatusCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ReportShipmentStatusCommand) Validate() error {
	return c.guard.Validate(ErrReportShipmentStatusCommandIsNotConstructed)
}

// Actor returns the authenticated caller.
func (c ReportShipmentStatusCommand) Actor() account.Actor {
	return c.actor
}

// UpdateID returns the identifier for the new history entry.
func (c ReportShipmentStatusCommand) UpdateID() kernel.UUID {
	return c.updateID
}

// ShipmentID returns the shipment the report is for.
func (c ReportShipmentStatusCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

// Status returns the reported status.
func (c ReportShipmentStatusCommand) Status() shipment.Status {
	return c.status
}

// Note returns the optional free-text note.
func (c ReportShipmentStatusCommand) Note() string {
	return c.note
}

// PhotoURL returns the optional proof-of-delivery photo reference.
func (c ReportShipmentStatusCommand) PhotoURL() string {
	return c.photoURL
}

// Location returns the optional GPS fix, or nil.
func (c ReportShipmentStatusCommand) Location() *kernel.GeoPoint {
	return c.location
}

// AccuracyM returns the optional GPS accuracy in meters, or nil.
func (c ReportShipmentStatusCommand) AccuracyM() *int {
	return c.accuracyM
}

func (c *ReportShipmentStatusCommand) setActor(actor account.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	c.actor = actor
	return nil
}

func (c *ReportShipmentStatusCommand) setUpdateID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.updateID = id
	return nil
}

func (c *ReportShipmentStatusCommand) setShipmentID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("shipmentID", err)
	}
	c.shipmentID = id
	return nil
}

func (c *ReportShipmentStatusCommand) setStatus(status shipment.Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	c.status = status
	return nil
}

func (c *ReportShipmentStatusCommand) setLocation(latitude, longitude *decimal.Decimal) error {
	if latitude == nil && longitude == nil {
		return nil
	}
	if latitude == nil || longitude == nil {
		return kernel.ErrIncompleteLocation
	}

	point, err := kernel.NewGeoPoint(*latitude, *longitude)
	if err != nil {
		return err
	}

	c.location = &point
	return nil
}

func (c *ReportShipmentStatusCommand) setAccuracy(accuracyM *int) error {
	if accuracyM == nil {
		return nil
	}
	if *accuracyM < 0 {
		return errs.NewValueIsInvalidError("accuracy")
	}
	value := *accuracyM
	c.accuracyM = &value
	return nil
}
