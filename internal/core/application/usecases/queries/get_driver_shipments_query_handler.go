package queries

import (
	"context"

	"routex/internal/core/domain/model/kernel"
	"routex/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetDriverShipmentsQueryHandler retrieves a driver's assigned shipments.
type GetDriverShipmentsQueryHandler struct {
	db *gorm.DB
}

// NewGetDriverShipmentsQueryHandler creates a handler for driver shipment queries.
func NewGetDriverShipmentsQueryHandler(db *gorm.DB) GetDriverShipmentsQueryHandler {
	return GetDriverShipmentsQueryHandler{db: db}
}

// Handle executes the query. Driver-only; the list is always scoped to the
// caller, a driver can never read another driver's assignments.
func (h GetDriverShipmentsQueryHandler) Handle(
	ctx context.Context,
	query GetDriverShipmentsQuery,
) ([]ShipmentResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	if !query.Actor().IsDriver() {
		return nil, errs.NewPermissionDeniedError("list driver shipments")
	}

	shipments := make([]ShipmentResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			s.id,
			s.product_id,
			p.name,
			s.warehouse_id,
			s.customer_id,
			s.driver_id,
			s.customer_address,
			s.quantity,
			s.notes,
			s.status,
			s.assigned_at,
			s.updated_at
		FROM shipments s
		JOIN products p ON p.id = s.product_id
		WHERE s.driver_id = ?
		ORDER BY s.assigned_at DESC
		LIMIT ?
	`, query.Actor().ID().Bytes(), MaxShipmentRows).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var response ShipmentResponse
		var id, productID, warehouseID, customerID uuid.UUID
		var driverID uuid.NullUUID

		err = rows.Scan(
			&id,
			&productID,
			&response.ProductName,
			&warehouseID,
			&customerID,
			&driverID,
			&response.CustomerAddress,
			&response.Quantity,
			&response.Notes,
			&response.Status,
			&response.AssignedAt,
			&response.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}

		if response.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if response.ProductID, err = kernel.UUIDFromBytes(productID[:]); err != nil {
			return nil, err
		}
		if response.WarehouseID, err = kernel.UUIDFromBytes(warehouseID[:]); err != nil {
			return nil, err
		}
		if response.CustomerID, err = kernel.UUIDFromBytes(customerID[:]); err != nil {
			return nil, err
		}
		if driverID.Valid {
			value, idErr := kernel.UUIDFromBytes(driverID.UUID[:])
			if idErr != nil {
				return nil, idErr
			}
			response.DriverID = &value
		}

		shipments = append(shipments, response)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return shipments, nil
}
