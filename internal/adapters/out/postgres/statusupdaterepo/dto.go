// Package statusupdaterepo persists the append-only status history of
// shipments. Entries are immutable; the only mutation is removal by a manager.
package statusupdaterepo

import (
	"time"

	"routex/internal/core/domain/model/kernel"
	"routex/internal/core/domain/model/shipment"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StatusUpdateDTO represents the database structure for persisting status
// history entries. Latitude and longitude are stored as nullable decimals so
// the coordinate pair round-trips without float drift.
type StatusUpdateDTO struct {
	ID         uuid.UUID           `gorm:"type:uuid;primaryKey"`
	ShipmentID uuid.UUID           `gorm:"type:uuid;not null;index"`
	Status     string              `gorm:"size:16;not null"`
	Timestamp  time.Time           `gorm:"not null;index"`
	Note       string              `gorm:"size:1024"`
	PhotoURL   string              `gorm:"size:512"`
	Latitude   decimal.NullDecimal `gorm:"type:numeric(9,6)"`
	Longitude  decimal.NullDecimal `gorm:"type:numeric(9,6)"`
	AccuracyM  *int
	CreatedAt  time.Time
}

// TableName specifies the database table name for status history entries.
func (StatusUpdateDTO) TableName() string {
	return "status_updates"
}

func fromDomain(entry *shipment.StatusUpdate) StatusUpdateDTO {
	dto := StatusUpdateDTO{
		ID:         entry.ID().Bytes(),
		ShipmentID: entry.ShipmentID().Bytes(),
		Status:     entry.Status().String(),
		Timestamp:  entry.Timestamp(),
		Note:       entry.Note(),
		PhotoURL:   entry.PhotoURL(),
		AccuracyM:  entry.AccuracyM(),
	}

	if location := entry.Location(); location != nil {
		dto.Latitude = decimal.NullDecimal{Decimal: location.Latitude(), Valid: true}
		dto.Longitude = decimal.NullDecimal{Decimal: location.Longitude(), Valid: true}
	}

	return dto
}

func toDomain(dto StatusUpdateDTO) (*shipment.StatusUpdate, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	shipmentID, err := kernel.UUIDFromBytes(dto.ShipmentID[:])
	if err != nil {
		return nil, err
	}

	var location *kernel.GeoPoint
	if dto.Latitude.Valid && dto.Longitude.Valid {
		point, geoErr := kernel.NewGeoPoint(dto.Latitude.Decimal, dto.Longitude.Decimal)
		if geoErr != nil {
			return nil, geoErr
		}
		location = &point
	}

	return shipment.RestoreStatusUpdate(
		id,
		shipmentID,
		shipment.Status(dto.Status),
		dto.Timestamp,
		dto.Note,
		dto.PhotoURL,
		location,
		dto.AccuracyM,
	)
}

func toDomainSlice(dtos []StatusUpdateDTO) ([]*shipment.StatusUpdate, error) {
	entries := make([]*shipment.StatusUpdate, 0, len(dtos))
	for _, dto := range dtos {
		entry, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
