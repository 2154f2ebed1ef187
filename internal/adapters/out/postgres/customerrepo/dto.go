// Package customerrepo provides data transfer objects and mapping functions
// for customer persistence. The saved-address cap maps to three fixed columns.
package customerrepo

import (
	"time"

	"routex/internal/core/domain/model/customer"
	"routex/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// CustomerDTO represents the database structure for persisting customer
// aggregates.
type CustomerDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"size:255;not null"`
	Phone     string    `gorm:"size:32;not null"`
	Address   string    `gorm:"size:512;not null"`
	Address2  string    `gorm:"size:512"`
	Address3  string    `gorm:"size:512"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the database table name for customer entities.
func (CustomerDTO) TableName() string {
	return "customers"
}

func fromDomain(aggregate *customer.Customer) CustomerDTO {
	dto := CustomerDTO{
		ID:    aggregate.ID().Bytes(),
		Name:  aggregate.Name(),
		Phone: aggregate.Phone(),
	}

	addresses := aggregate.Addresses()
	slots := []*string{&dto.Address, &dto.Address2, &dto.Address3}
	for i, addr := range addresses {
		if i >= len(slots) {
			break
		}
		*slots[i] = addr
	}

	return dto
}

func toDomain(dto CustomerDTO) (*customer.Customer, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	addresses := make([]string, 0, customer.MaxSavedAddresses)
	for _, addr := range []string{dto.Address, dto.Address2, dto.Address3} {
		if addr != "" {
			addresses = append(addresses, addr)
		}
	}

	return customer.RestoreCustomer(id, dto.Name, dto.Phone, addresses)
}
