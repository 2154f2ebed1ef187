package queries

import (
	"context"
	"encoding/json"
	"time"

	"routex/internal/core/domain/model/kernel"
	"routex/internal/core/ports"
	"routex/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// shipmentListCacheTTL bounds staleness of the cached list between the
// command-side invalidations.
const shipmentListCacheTTL = 30 * time.Second

// GetShipmentsQueryHandler retrieves the shipment list read model.
// The unfiltered list is served through the projection cache; cache failures
// fall through to the database.
type GetShipmentsQueryHandler struct {
	db    *gorm.DB
	cache ports.ProjectionCache
}

// NewGetShipmentsQueryHandler creates a handler for shipment list queries.
func NewGetShipmentsQueryHandler(db *gorm.DB, cache ports.ProjectionCache) GetShipmentsQueryHandler {
	return GetShipmentsQueryHandler{db: db, cache: cache}
}

// Handle executes the shipment list query. Manager-only.
func (h GetShipmentsQueryHandler) Handle(
	ctx context.Context,
	query GetShipmentsQuery,
) ([]ShipmentResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	if !query.Actor().IsManager() {
		return nil, errs.NewPermissionDeniedError("list shipments")
	}

	cacheable := query.UpdatedSince().IsZero()
	if cacheable {
		if payload, err := h.cache.Get(ctx, ports.CacheKeyShipmentList); err == nil {
			var cached []ShipmentResponse
			if err := json.Unmarshal(payload, &cached); err == nil {
				return cached, nil
			}
		}
	}

	shipments, err := h.fetch(ctx, query.UpdatedSince())
	if err != nil {
		return nil, err
	}

	if cacheable {
		if payload, err := json.Marshal(shipments); err == nil {
			_ = h.cache.Set(ctx, ports.CacheKeyShipmentList, payload, shipmentListCacheTTL)
		}
	}

	return shipments, nil
}

func (h GetShipmentsQueryHandler) fetch(ctx context.Context, updatedSince time.Time) ([]ShipmentResponse, error) {
	shipments := make([]ShipmentResponse, 0)

	sql := `
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
	`
	args := make([]any, 0, 2)
	if !updatedSince.IsZero() {
		sql += " WHERE s.updated_at >= ?"
		args = append(args, updatedSince)
	}
	sql += " ORDER BY s.updated_at DESC LIMIT ?"
	args = append(args, MaxShipmentRows)

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
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
