package queries

import (
	"context"
	"database/sql"

	"routex/internal/core/domain/model/kernel"
	"routex/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetDriverStatusesQueryHandler retrieves the driver dashboard read model.
// A driver is busy while any of their shipments is in an active status;
// last seen is the newest status report across their shipments.
type GetDriverStatusesQueryHandler struct {
	db *gorm.DB
}

// NewGetDriverStatusesQueryHandler creates a handler for driver dashboard queries.
func NewGetDriverStatusesQueryHandler(db *gorm.DB) GetDriverStatusesQueryHandler {
	return GetDriverStatusesQueryHandler{db: db}
}

// Handle executes the driver dashboard query. Manager-only.
func (h GetDriverStatusesQueryHandler) Handle(
	ctx context.Context,
	query GetDriverStatusesQuery,
) ([]DriverStatusResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	if !query.Actor().IsManager() {
		return nil, errs.NewPermissionDeniedError("list driver statuses")
	}

	drivers := make([]DriverStatusResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			d.id,
			d.name,
			d.is_active,
			COUNT(s.id) FILTER (WHERE s.status IN ('ASSIGNED', 'IN_TRANSIT')) AS active_shipments,
			MAX(su.timestamp) AS last_seen_at
		FROM drivers d
		LEFT JOIN shipments s ON s.driver_id = d.id
		LEFT JOIN status_updates su ON su.shipment_id = s.id
		GROUP BY d.id, d.name, d.is_active
		ORDER BY d.name
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var response DriverStatusResponse
		var id uuid.UUID
		var isActive bool
		var lastSeenAt sql.NullTime

		err = rows.Scan(
			&id,
			&response.Name,
			&isActive,
			&response.ActiveShipments,
			&lastSeenAt,
		)
		if err != nil {
			return nil, err
		}

		if response.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if lastSeenAt.Valid {
			value := lastSeenAt.Time
			response.LastSeenAt = &value
		}

		switch {
		case response.ActiveShipments > 0:
			response.Availability = DriverBusy
		case isActive:
			response.Availability = DriverAvailable
		default:
			response.Availability = DriverUnavailable
		}

		drivers = append(drivers, response)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return drivers, nil
}
