package shipmentrepo

import (
	"context"
	"errors"
	"time"

	"routex/internal/core/domain/model/kernel"
	"routex/internal/core/domain/model/shipment"
	"routex/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormShipmentRepository implements ShipmentRepository using GORM.
type GormShipmentRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormShipmentRepository creates a new GORM shipment repository.
func NewGormShipmentRepository(db *gorm.DB, tracker aggregateTracker) *GormShipmentRepository {
	return &GormShipmentRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new shipment to the database.
func (r *GormShipmentRepository) Add(ctx context.Context, aggregate *shipment.Shipment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves the client-editable fields of an existing shipment.
// The status column is excluded: it is denormalized from the history and
// only moves through SyncStatus. Fields are written explicitly so that
// unassigning the driver clears the column.
func (r *GormShipmentRepository) Update(ctx context.Context, aggregate *shipment.Shipment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&ShipmentDTO{}).
		Where("id = ?", dto.ID).
		Select("product_id", "warehouse_id", "customer_id", "driver_id",
			"customer_address", "quantity", "notes", "assigned_at", "updated_at").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("shipment", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a shipment by ID.
func (r *GormShipmentRepository) Get(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ShipmentDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("shipment", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAll retrieves shipments ordered by most recently updated first.
// A non-zero updatedSince narrows the result; limit caps the row count.
func (r *GormShipmentRepository) GetAll(ctx context.Context, updatedSince time.Time, limit int) ([]*shipment.Shipment, error) {
	query := r.db.WithContext(ctx).Order("updated_at DESC")
	if !updatedSince.IsZero() {
		query = query.Where("updated_at >= ?", updatedSince)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	var dtos []ShipmentDTO
	if err := query.Find(&dtos).Error; err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// GetByDriver retrieves all shipments assigned to the given driver.
func (r *GormShipmentRepository) GetByDriver(ctx context.Context, driverID kernel.UUID) ([]*shipment.Shipment, error) {
	if err := driverID.Validate(); err != nil {
		return nil, err
	}

	var dtos []ShipmentDTO
	err := r.db.WithContext(ctx).
		Where("driver_id = ?", driverID.Bytes()).
		Order("updated_at DESC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// GetActiveByDriver retrieves the driver's shipments in an active status.
func (r *GormShipmentRepository) GetActiveByDriver(ctx context.Context, driverID kernel.UUID) ([]*shipment.Shipment, error) {
	if err := driverID.Validate(); err != nil {
		return nil, err
	}

	statuses := make([]string, 0, len(shipment.ActiveStatuses))
	for _, status := range shipment.ActiveStatuses {
		statuses = append(statuses, status.String())
	}

	var dtos []ShipmentDTO
	err := r.db.WithContext(ctx).
		Where("driver_id = ? AND status IN ?", driverID.Bytes(), statuses).
		Order("updated_at DESC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// Delete removes a shipment and its status history.
func (r *GormShipmentRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	// History rows cascade with the shipment.
	if err := r.db.WithContext(ctx).
		Exec("DELETE FROM status_updates WHERE shipment_id = ?", id.Bytes()).Error; err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&ShipmentDTO{}, "id = ?", id.Bytes())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("shipment", id.String())
	}

	return nil
}

// SyncStatus writes only the denormalized status column and the update
// timestamp, leaving every client-editable field untouched.
func (r *GormShipmentRepository) SyncStatus(ctx context.Context, id kernel.UUID, status shipment.Status) error {
	if err := id.Validate(); err != nil {
		return err
	}
	if err := status.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&ShipmentDTO{}).
		Where("id = ?", id.Bytes()).
		UpdateColumns(map[string]any{
			"status":     status.String(),
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("shipment", id.String())
	}

	return nil
}

// CountByProduct returns how many shipments reference the given product.
func (r *GormShipmentRepository) CountByProduct(ctx context.Context, productID kernel.UUID) (int64, error) {
	if err := productID.Validate(); err != nil {
		return 0, err
	}

	var count int64
	err := r.db.WithContext(ctx).
		Model(&ShipmentDTO{}).
		Where("product_id = ?", productID.Bytes()).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}
