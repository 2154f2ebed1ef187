// Package customer provides the Customer aggregate and the saved-address
// selection rules used when a shipment chooses its delivery address.
package customer

import (
	"errors"
	"fmt"
	"strings"

	"routex/internal/core/domain/model/kernel"
	"routex/internal/pkg/errs"
	"routex/internal/pkg/guard"
)

// MaxSavedAddresses is the cap on addresses a customer can keep on file.
const MaxSavedAddresses = 3

var (
	// ErrCustomerIsNotConstructed is returned when a Customer instance was not
	// created through the NewCustomer or RestoreCustomer constructors.
	ErrCustomerIsNotConstructed = errors.New("Customer must be created via NewCustomer constructor")

	// ErrInvalidAddress indicates a shipment address that is not one of the
	// customer's saved addresses. Use errors.As with *InvalidAddressError to
	// read the allowed addresses.
	ErrInvalidAddress = errors.New("address is not one of the customer's saved addresses")
)

// InvalidAddressError reports a rejected address choice together with the
// addresses the customer has on file, so the caller can correct the request.
type InvalidAddressError struct {
	CustomerID kernel.UUID
	Requested  string
	Allowed    []string
}

func (e *InvalidAddressError) Error() string {
	return fmt.Sprintf("%s: %q is not among %v", ErrInvalidAddress, e.Requested, e.Allowed)
}

func (e *InvalidAddressError) Unwrap() error {
	return ErrInvalidAddress
}

// Customer is the aggregate root for a shipment recipient. A customer keeps
// up to MaxSavedAddresses delivery addresses; a shipment must use one of them.
type Customer struct {
	id        kernel.UUID
	name      string
	phone     string
	addresses []string

	guard guard.ConstructorGuard
}

// NewCustomer creates a Customer with at least one saved address.
// Blank entries in addresses are discarded; the remainder is capped at
// MaxSavedAddresses.
func NewCustomer(id kernel.UUID, name, phone string, addresses []string) (*Customer, error) {
	c := &Customer{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		c.setID(id),
		c.setName(name),
		c.setPhone(phone),
		c.setAddresses(addresses),
	); err != nil {
		return nil, err
	}

	return c, nil
}

// RestoreCustomer reconstructs a Customer from persistent storage.
func RestoreCustomer(id kernel.UUID, name, phone string, addresses []string) (*Customer, error) {
	return NewCustomer(id, name, phone, addresses)
}

// Validate ensures the Customer was created through a constructor.
func (c *Customer) Validate() error {
	if c == nil {
		return ErrCustomerIsNotConstructed
	}
	return c.guard.Validate(ErrCustomerIsNotConstructed)
}

// IsEqual compares two customers by identifier.
func (c *Customer) IsEqual(other *Customer) bool {
	return other != nil && c.id.IsEqual(other.id)
}

// ID returns the customer's unique identifier.
func (c *Customer) ID() kernel.UUID {
	return c.id
}

// Name returns the customer name.
func (c *Customer) Name() string {
	return c.name
}

// Phone returns the customer's phone number.
func (c *Customer) Phone() string {
	return c.phone
}

// Addresses returns the customer's saved addresses in stable order.
func (c *Customer) Addresses() []string {
	out := make([]string, len(c.addresses))
	copy(out, c.addresses)
	return out
}

// ChooseAddress resolves the delivery address for a shipment.
//
// A non-empty requested address must exactly match one of the saved addresses
// (surrounding whitespace ignored). When no address is requested and the
// customer has exactly one on file, that address is selected automatically;
// with several on file the choice is ambiguous and rejected.
func (c *Customer) ChooseAddress(requested string) (string, error) {
	requested = strings.TrimSpace(requested)

	if requested == "" {
		if len(c.addresses) == 1 {
			return c.addresses[0], nil
		}
		return "", &InvalidAddressError{
			CustomerID: c.id,
			Requested:  requested,
			Allowed:    c.Addresses(),
		}
	}

	for _, addr := range c.addresses {
		if addr == requested {
			return addr, nil
		}
	}

	return "", &InvalidAddressError{
		CustomerID: c.id,
		Requested:  requested,
		Allowed:    c.Addresses(),
	}
}

func (c *Customer) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Customer) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	c.name = name
	return nil
}

func (c *Customer) setPhone(phone string) error {
	if phone == "" {
		return errs.NewValueIsRequiredError("phone")
	}
	c.phone = phone
	return nil
}

func (c *Customer) setAddresses(addresses []string) error {
	kept := make([]string, 0, MaxSavedAddresses)
	for _, addr := range addresses {
		addr = strings.TrimSpace(addr)
		if addr == "" {
			continue
		}
		kept = append(kept, addr)
	}

	if len(kept) == 0 {
		return errs.NewValueIsRequiredError("addresses")
	}
	if len(kept) > MaxSavedAddresses {
		return errs.NewValueIsOutOfRangeError("addresses", len(kept), 1, MaxSavedAddresses)
	}

	c.addresses = kept
	return nil
}
