// Package driver provides the Driver aggregate. A driver toggles their own
// availability flag; shipments hold weak references to drivers, so the
// aggregate carries no shipment state of its own.
package driver

import (
	"errors"
	"fmt"

	"routex/internal/core/domain/model/kernel"
	"routex/internal/pkg/errs"
	"routex/internal/pkg/guard"
)

var (
	// ErrDriverIsNotConstructed is returned when a Driver instance was not
	// created through the NewDriver or RestoreDriver constructors.
	ErrDriverIsNotConstructed = errors.New("Driver must be created via NewDriver constructor")

	// ErrDriverUnavailable indicates an attempt to assign a driver whose
	// availability flag is off. Reassigning a shipment's already-assigned
	// driver does not hit this check.
	ErrDriverUnavailable = errors.New("driver is unavailable")
)

// DriverUnavailableError reports a rejected assignment naming the driver.
type DriverUnavailableError struct {
	DriverID kernel.UUID
}

func (e *DriverUnavailableError) Error() string {
	return fmt.Sprintf("%s: driver %s is not active", ErrDriverUnavailable, e.DriverID)
}

func (e *DriverUnavailableError) Unwrap() error {
	return ErrDriverUnavailable
}

// Driver is the aggregate root for a delivery driver.
type Driver struct {
	id       kernel.UUID
	name     string
	isActive bool

	guard guard.ConstructorGuard
}

// NewDriver creates an available Driver.
func NewDriver(id kernel.UUID, name string) (*Driver, error) {
	return RestoreDriver(id, name, true)
}

// RestoreDriver reconstructs a Driver from persistent storage.
func RestoreDriver(id kernel.UUID, name string, isActive bool) (*Driver, error) {
	d := &Driver{
		isActive: isActive,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		d.setID(id),
		d.setName(name),
	); err != nil {
		return nil, err
	}

	return d, nil
}

// Validate ensures the Driver was created through a constructor.
func (d *Driver) Validate() error {
	if d == nil {
		return ErrDriverIsNotConstructed
	}
	return d.guard.Validate(ErrDriverIsNotConstructed)
}

// IsEqual compares two drivers by identifier.
func (d *Driver) IsEqual(other *Driver) bool {
	return other != nil && d.id.IsEqual(other.id)
}

// ID returns the driver's unique identifier.
func (d *Driver) ID() kernel.UUID {
	return d.id
}

// Name returns the driver's display name.
func (d *Driver) Name() string {
	return d.name
}

// IsActive reports whether the driver accepts new assignments.
func (d *Driver) IsActive() bool {
	return d.isActive
}

// SetAvailability flips the driver-controlled availability flag.
func (d *Driver) SetAvailability(isActive bool) {
	d.isActive = isActive
}

// ValidateAssignable returns DriverUnavailableError when the driver cannot
// accept a new shipment assignment.
func (d *Driver) ValidateAssignable() error {
	if !d.isActive {
		return &DriverUnavailableError{DriverID: d.id}
	}
	return nil
}

func (d *Driver) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.id = id
	return nil
}

func (d *Driver) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	d.name = name
	return nil
}
