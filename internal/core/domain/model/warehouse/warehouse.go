// Package warehouse provides the Warehouse aggregate. Warehouses are plain
// reference data: shipments name the warehouse they leave from, nothing more.
package warehouse

import (
	"errors"

	"routex/internal/core/domain/model/kernel"
	"routex/internal/pkg/errs"
	"routex/internal/pkg/guard"
)

// ErrWarehouseIsNotConstructed is returned when a Warehouse instance was not
// created through the NewWarehouse constructor.
var ErrWarehouseIsNotConstructed = errors.New("Warehouse must be created via NewWarehouse constructor")

// Warehouse is a named dispatch location.
type Warehouse struct {
	id       kernel.UUID
	name     string
	location string

	guard guard.ConstructorGuard
}

// NewWarehouse creates a Warehouse with a name and a street location.
func NewWarehouse(id kernel.UUID, name, location string) (*Warehouse, error) {
	w := &Warehouse{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		w.setID(id),
		w.setName(name),
		w.setLocation(location),
	); err != nil {
		return nil, err
	}

	return w, nil
}

// RestoreWarehouse reconstructs a Warehouse from persistent storage.
func RestoreWarehouse(id kernel.UUID, name, location string) (*Warehouse, error) {
	return NewWarehouse(id, name, location)
}

// Validate ensures the Warehouse was created through a constructor.
func (w *Warehouse) Validate() error {
	if w == nil {
		return ErrWarehouseIsNotConstructed
	}
	return w.guard.Validate(ErrWarehouseIsNotConstructed)
}

// ID returns the warehouse's unique identifier.
func (w *Warehouse) ID() kernel.UUID {
	return w.id
}

// Name returns the warehouse name.
func (w *Warehouse) Name() string {
	return w.name
}

// Location returns the warehouse street location.
func (w *Warehouse) Location() string {
	return w.location
}

func (w *Warehouse) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	w.id = id
	return nil
}

func (w *Warehouse) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	w.name = name
	return nil
}

func (w *Warehouse) setLocation(location string) error {
	if location == "" {
		return errs.NewValueIsRequiredError("location")
	}
	w.location = location
	return nil
}
