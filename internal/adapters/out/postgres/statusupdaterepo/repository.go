package statusupdaterepo

import (
	"context"
	"errors"

	"routex/internal/core/domain/model/kernel"
	"routex/internal/core/domain/model/shipment"
	"routex/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormStatusUpdateRepository implements StatusUpdateRepository using GORM.
type GormStatusUpdateRepository struct {
	db *gorm.DB
}

// NewGormStatusUpdateRepository creates a new GORM status history repository.
func NewGormStatusUpdateRepository(db *gorm.DB) *GormStatusUpdateRepository {
	return &GormStatusUpdateRepository{db: db}
}

// Add appends a new entry to a shipment's status history.
func (r *GormStatusUpdateRepository) Add(ctx context.Context, entry *shipment.StatusUpdate) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	dto := fromDomain(entry)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Get retrieves a history entry by ID.
func (r *GormStatusUpdateRepository) Get(ctx context.Context, id kernel.UUID) (*shipment.StatusUpdate, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto StatusUpdateDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("status update", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetForShipment retrieves a shipment's full history, newest first.
// Ties on timestamp break on id so the order is total.
func (r *GormStatusUpdateRepository) GetForShipment(ctx context.Context, shipmentID kernel.UUID) ([]*shipment.StatusUpdate, error) {
	if err := shipmentID.Validate(); err != nil {
		return nil, err
	}

	var dtos []StatusUpdateDTO
	err := r.db.WithContext(ctx).
		Where("shipment_id = ?", shipmentID.Bytes()).
		Order("timestamp DESC, id DESC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// GetLatestForShipment retrieves the newest history entry for a shipment.
// Returns (nil, nil) when the shipment has no history.
func (r *GormStatusUpdateRepository) GetLatestForShipment(ctx context.Context, shipmentID kernel.UUID) (*shipment.StatusUpdate, error) {
	if err := shipmentID.Validate(); err != nil {
		return nil, err
	}

	var dto StatusUpdateDTO
	err := r.db.WithContext(ctx).
		Where("shipment_id = ?", shipmentID.Bytes()).
		Order("timestamp DESC, id DESC").
		First(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return toDomain(dto)
}

// Delete removes a history entry by ID.
func (r *GormStatusUpdateRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&StatusUpdateDTO{}, "id = ?", id.Bytes())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("status update", id.String())
	}

	return nil
}
