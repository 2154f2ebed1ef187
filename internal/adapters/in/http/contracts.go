package http

import (
	"errors"
	"net/http"

	"routex/internal/core/domain/model/customer"
	"routex/internal/core/domain/model/driver"
	"routex/internal/core/domain/model/kernel"
	"routex/internal/core/domain/model/product"
	"routex/internal/core/domain/model/shipment"
	"routex/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// CreateShipmentRequest is the body of POST /api/v1/shipments.
type CreateShipmentRequest struct {
	ProductID       string  `json:"product_id"`
	WarehouseID     string  `json:"warehouse_id"`
	CustomerID      string  `json:"customer_id"`
	DriverID        *string `json:"driver_id,omitempty"`
	CustomerAddress string  `json:"customer_address,omitempty"`
	Quantity        int     `json:"quantity,omitempty"`
	Notes           string  `json:"notes,omitempty"`
}

// DriverPatchRequest distinguishes "unassign the driver" (present with null
// driver_id) from "leave the driver untouched" (absent).
type DriverPatchRequest struct {
	DriverID *string `json:"driver_id"`
}

// UpdateShipmentRequest is the body of PATCH /api/v1/shipments/:id.
// Absent fields are left untouched.
type UpdateShipmentRequest struct {
	ProductID       *string             `json:"product_id,omitempty"`
	Driver          *DriverPatchRequest `json:"driver,omitempty"`
	Quantity        *int                `json:"quantity,omitempty"`
	CustomerAddress *string             `json:"customer_address,omitempty"`
	Notes           *string             `json:"notes,omitempty"`
}

// ReportStatusRequest is the body of POST /api/v1/shipments/:id/status-updates.
type ReportStatusRequest struct {
	Status    string           `json:"status"`
	Note      string           `json:"note,omitempty"`
	PhotoURL  string           `json:"photo_url,omitempty"`
	Latitude  *decimal.Decimal `json:"latitude,omitempty"`
	Longitude *decimal.Decimal `json:"longitude,omitempty"`
	AccuracyM *int             `json:"accuracy_m,omitempty"`
}

// CreateProductRequest is the body of POST /api/v1/products.
type CreateProductRequest struct {
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Unit     string          `json:"unit,omitempty"`
	StockQty int             `json:"stock_qty"`
}

// IDResponse returns the identifier of a newly created resource.
type IDResponse struct {
	ID kernel.UUID `json:"id"`
}

// ErrorResponse is the uniform error body. The optional fields carry the
// recovery hints domain errors expose: how much stock is left, which
// addresses are on file, which transitions are legal.
type ErrorResponse struct {
	Code             int      `json:"code"`
	Message          string   `json:"message"`
	Available        *int     `json:"available,omitempty"`
	AllowedAddresses []string `json:"allowed_addresses,omitempty"`
	AllowedStatuses  []string `json:"allowed_statuses,omitempty"`
}

// writeDomainError maps a use case error onto an HTTP response.
func writeDomainError(ctx echo.Context, err error) error {
	var stockErr *product.InsufficientStockError
	if errors.As(err, &stockErr) {
		available := stockErr.Available
		return ctx.JSON(http.StatusConflict, ErrorResponse{
			Code:      http.StatusConflict,
			Message:   err.Error(),
			Available: &available,
		})
	}

	var addressErr *customer.InvalidAddressError
	if errors.As(err, &addressErr) {
		return ctx.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Code:             http.StatusUnprocessableEntity,
			Message:          err.Error(),
			AllowedAddresses: addressErr.Allowed,
		})
	}

	var transitionErr *shipment.InvalidTransitionError
	if errors.As(err, &transitionErr) {
		allowed := make([]string, 0, len(transitionErr.Allowed))
		for _, status := range transitionErr.Allowed {
			allowed = append(allowed, status.String())
		}
		return ctx.JSON(http.StatusConflict, ErrorResponse{
			Code:            http.StatusConflict,
			Message:         err.Error(),
			AllowedStatuses: allowed,
		})
	}

	switch {
	case errors.Is(err, errs.ErrPermissionDenied):
		return errorJSON(ctx, http.StatusForbidden, err)
	case errors.Is(err, errs.ErrObjectNotFound):
		return errorJSON(ctx, http.StatusNotFound, err)
	case errors.Is(err, product.ErrProductInUse),
		errors.Is(err, driver.ErrDriverUnavailable):
		return errorJSON(ctx, http.StatusConflict, err)
	case errors.Is(err, shipment.ErrGpsAccuracyTooLow),
		errors.Is(err, kernel.ErrIncompleteLocation):
		return errorJSON(ctx, http.StatusUnprocessableEntity, err)
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, product.ErrInvalidQuantity):
		return errorJSON(ctx, http.StatusBadRequest, err)
	default:
		return errorJSON(ctx, http.StatusInternalServerError, err)
	}
}

func errorJSON(ctx echo.Context, code int, err error) error {
	return ctx.JSON(code, ErrorResponse{
		Code:    code,
		Message: err.Error(),
	})
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}
