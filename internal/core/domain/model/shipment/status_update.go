package shipment

import (
	"errors"
	"fmt"
	"time"

	"routex/internal/core/domain/model/kernel"
	"routex/internal/pkg/errs"
	"routex/internal/pkg/guard"
)

// DefaultMaxGpsAccuracyM is the default threshold, in meters, above which a
// reported GPS fix is considered too imprecise to accept.
const DefaultMaxGpsAccuracyM = 30

var (
	// ErrStatusUpdateIsNotConstructed is returned when a StatusUpdate was not
	// created through the NewStatusUpdate or RestoreStatusUpdate constructors.
	ErrStatusUpdateIsNotConstructed = errors.New(
		"StatusUpdate must be created via NewStatusUpdate constructor")

	// ErrGpsAccuracyTooLow indicates a GPS fix whose accuracy radius exceeds
	// the configured threshold.
	ErrGpsAccuracyTooLow = errors.New("gps accuracy is too low")
)

// GpsAccuracyError reports a rejected GPS fix with the accuracy that was
// reported and the maximum the system accepts.
type GpsAccuracyError struct {
	AccuracyM int
	MaxM      int
}

func (e *GpsAccuracyError) Error() string {
	return fmt.Sprintf("%s: %dm reported, at most %dm accepted", ErrGpsAccuracyTooLow, e.AccuracyM, e.MaxM)
}

func (e *GpsAccuracyError) Unwrap() error {
	return ErrGpsAccuracyTooLow
}

// StatusUpdate is one immutable entry of a shipment's status history.
// The timestamp is assigned by the server at creation; ordering by
// (timestamp, id) descending defines which entry is "latest" and therefore
// which status the shipment currently shows.
type StatusUpdate struct {
	id         kernel.UUID
	shipmentID kernel.UUID
	status     Status
	timestamp  time.Time
	note       string
	photoURL   string
	location   *kernel.GeoPoint
	accuracyM  *int

	guard guard.ConstructorGuard
}

// NewStatusUpdate creates a history entry for a shipment.
//
// The location and accuracy are optional: location must be a constructed
// GeoPoint when present, and accuracy must be non-negative. The accuracy
// threshold is deployment policy and is enforced by the caller before
// construction.
func NewStatusUpdate(
	id kernel.UUID,
	shipmentID kernel.UUID,
	status Status,
	timestamp time.Time,
	note string,
	photoURL string,
	location *kernel.GeoPoint,
	accuracyM *int,
) (*StatusUpdate, error) {
	su := &StatusUpdate{
		note:     note,
		photoURL: photoURL,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		su.setID(id),
		su.setShipmentID(shipmentID),
		su.setStatus(status),
		su.setTimestamp(timestamp),
		su.setLocation(location),
		su.setAccuracy(accuracyM),
	); err != nil {
		return nil, err
	}

	return su, nil
}

// RestoreStatusUpdate reconstructs a history entry from persistent storage.
func RestoreStatusUpdate(
	id kernel.UUID,
	shipmentID kernel.UUID,
	status Status,
	timestamp time.Time,
	note string,
	photoURL string,
	location *kernel.GeoPoint,
	accuracyM *int,
) (*StatusUpdate, error) {
	return NewStatusUpdate(id, shipmentID, status, timestamp, note, photoURL, location, accuracyM)
}

// Validate ensures the entry was created through a constructor.
func (su *StatusUpdate) Validate() error {
	if su == nil {
		return ErrStatusUpdateIsNotConstructed
	}
	return su.guard.Validate(ErrStatusUpdateIsNotConstructed)
}

// ID returns the entry's unique identifier.
func (su *StatusUpdate) ID() kernel.UUID {
	return su.id
}

// ShipmentID returns the owning shipment's identifier.
func (su *StatusUpdate) ShipmentID() kernel.UUID {
	return su.shipmentID
}

// Status returns the status this entry records.
func (su *StatusUpdate) Status() Status {
	return su.status
}

// Timestamp returns the server-assigned creation time.
func (su *StatusUpdate) Timestamp() time.Time {
	return su.timestamp
}

// Note returns the optional free-text note.
func (su *StatusUpdate) Note() string {
	return su.note
}

// PhotoURL returns the optional proof-of-delivery photo reference.
func (su *StatusUpdate) PhotoURL() string {
	return su.photoURL
}

// Location returns the optional GPS fix, or nil.
func (su *StatusUpdate) Location() *kernel.GeoPoint {
	return su.location
}

// AccuracyM returns the optional GPS accuracy in meters, or nil.
func (su *StatusUpdate) AccuracyM() *int {
	return su.accuracyM
}

func (su *StatusUpdate) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	su.id = id
	return nil
}

func (su *StatusUpdate) setShipmentID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("shipmentID", err)
	}
	su.shipmentID = id
	return nil
}

func (su *StatusUpdate) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	su.status = status
	return nil
}

func (su *StatusUpdate) setTimestamp(timestamp time.Time) error {
	if timestamp.IsZero() {
		return errs.NewValueIsRequiredError("timestamp")
	}
	su.timestamp = timestamp
	return nil
}

func (su *StatusUpdate) setLocation(location *kernel.GeoPoint) error {
	if location == nil {
		return nil
	}
	if err := location.Validate(); err != nil {
		return err
	}
	su.location = location
	return nil
}

func (su *StatusUpdate) setAccuracy(accuracyM *int) error {
	if accuracyM == nil {
		return nil
	}
	if *accuracyM < 0 {
		return errs.NewValueIsInvalidErrorWithCause("accuracy",
			fmt.Errorf("%d is negative", *accuracyM))
	}
	value := *accuracyM
	su.accuracyM = &value
	return nil
}
