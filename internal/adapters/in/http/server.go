// Package http exposes the use cases over an Echo HTTP API.
// Authentication happens upstream; the gateway forwards the resolved identity
// in headers and ActorMiddleware turns it into a typed Actor claim.
package http

import (
	"net/http"
	"strconv"
	"time"

	"routex/internal/core/application/usecases/commands"
	"routex/internal/core/application/usecases/queries"
	"routex/internal/core/domain/model/kernel"
	"routex/internal/core/domain/model/shipment"
	"routex/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createShipmentHandler     commands.CreateShipmentCommandHandler
	updateShipmentHandler     commands.UpdateShipmentCommandHandler
	deleteShipmentHandler     commands.DeleteShipmentCommandHandler
	reportStatusHandler       commands.ReportShipmentStatusCommandHandler
	removeStatusUpdateHandler commands.RemoveStatusUpdateCommandHandler
	createProductHandler      commands.CreateProductCommandHandler
	deleteProductHandler      commands.DeleteProductCommandHandler

	// Query handlers
	getShipmentsHandler       queries.GetShipmentsQueryHandler
	getDriverShipmentsHandler queries.GetDriverShipmentsQueryHandler
	getDriverStatusesHandler  queries.GetDriverStatusesQueryHandler
	getLowStockHandler        queries.GetLowStockProductsQueryHandler
}

// NewServer creates an HTTP server with the required command and query handlers.
func NewServer(
	createShipmentHandler commands.CreateShipmentCommandHandler,
	updateShipmentHandler commands.UpdateShipmentCommandHandler,
	deleteShipmentHandler commands.DeleteShipmentCommandHandler,
	reportStatusHandler commands.ReportShipmentStatusCommandHandler,
	removeStatusUpdateHandler commands.RemoveStatusUpdateCommandHandler,
	createProductHandler commands.CreateProductCommandHandler,
	deleteProductHandler commands.DeleteProductCommandHandler,
	getShipmentsHandler queries.GetShipmentsQueryHandler,
	getDriverShipmentsHandler queries.GetDriverShipmentsQueryHandler,
	getDriverStatusesHandler queries.GetDriverStatusesQueryHandler,
	getLowStockHandler queries.GetLowStockProductsQueryHandler,
) *Server {
	return &Server{
		createShipmentHandler:     createShipmentHandler,
		updateShipmentHandler:     updateShipmentHandler,
		deleteShipmentHandler:     deleteShipmentHandler,
		reportStatusHandler:       reportStatusHandler,
		removeStatusUpdateHandler: removeStatusUpdateHandler,
		createProductHandler:      createProductHandler,
		deleteProductHandler:      deleteProductHandler,
		getShipmentsHandler:       getShipmentsHandler,
		getDriverShipmentsHandler: getDriverShipmentsHandler,
		getDriverStatusesHandler:  getDriverStatusesHandler,
		getLowStockHandler:        getLowStockHandler,
	}
}

// RegisterRoutes mounts all API routes on the given Echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	api := e.Group("/api/v1", ActorMiddleware())

	api.POST("/shipments", s.CreateShipment)
	api.GET("/shipments", s.GetShipments)
	api.PATCH("/shipments/:id", s.UpdateShipment)
	api.DELETE("/shipments/:id", s.DeleteShipment)
	api.POST("/shipments/:id/status-updates", s.ReportStatus)
	api.DELETE("/status-updates/:id", s.RemoveStatusUpdate)

	api.GET("/driver/shipments", s.GetDriverShipments)
	api.GET("/drivers/statuses", s.GetDriverStatuses)

	api.POST("/products", s.CreateProduct)
	api.DELETE("/products/:id", s.DeleteProduct)
	api.GET("/products/low-stock", s.GetLowStockProducts)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// CreateShipment handles POST /api/v1/shipments.
func (s *Server) CreateShipment(ctx echo.Context) error {
	actor, ok := actorFrom(ctx)
	if !ok {
		return ctx.NoContent(http.StatusUnauthorized)
	}

	var request CreateShipmentRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	productID, err := kernel.UUIDFromString(request.ProductID)
	if err != nil {
		return badRequest(ctx, "malformed product_id")
	}
	warehouseID, err := kernel.UUIDFromString(request.WarehouseID)
	if err != nil {
		return badRequest(ctx, "malformed warehouse_id")
	}
	customerID, err := kernel.UUIDFromString(request.CustomerID)
	if err != nil {
		return badRequest(ctx, "malformed customer_id")
	}

	var driverID *kernel.UUID
	if request.DriverID != nil {
		id, idErr := kernel.UUIDFromString(*request.DriverID)
		if idErr != nil {
			return badRequest(ctx, "malformed driver_id")
		}
		driverID = &id
	}

	shipmentID := kernel.NewUUID()
	cmd, err := commands.NewCreateShipmentCommand(
		actor,
		shipmentID,
		productID,
		warehouseID,
		customerID,
		driverID,
		request.CustomerAddress,
		request.Quantity,
		request.Notes,
	)
	if err != nil {
		return writeDomainError(ctx, err)
	}

	if err := s.createShipmentHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeDomainError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, IDResponse{ID: shipmentID})
}

// UpdateShipment handles PATCH /api/v1/shipments/:id.
func (s *Server) UpdateShipment(ctx echo.Context) error {
	actor, ok := actorFrom(ctx)
	if !ok {
		return ctx.NoContent(http.StatusUnauthorized)
	}

	shipmentID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "malformed shipment id")
	}

	var request UpdateShipmentRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	patch := commands.ShipmentPatch{
		Quantity:        request.Quantity,
		CustomerAddress: request.CustomerAddress,
		Notes:           request.Notes,
	}

	if request.ProductID != nil {
		id, idErr := kernel.UUIDFromString(*request.ProductID)
		if idErr != nil {
			return badRequest(ctx, "malformed product_id")
		}
		patch.ProductID = &id
	}

	if request.Driver != nil {
		driverPatch := &commands.DriverPatch{}
		if request.Driver.DriverID != nil {
			id, idErr := kernel.UUIDFromString(*request.Driver.DriverID)
			if idErr != nil {
				return badRequest(ctx, "malformed driver_id")
			}
			driverPatch.DriverID = &id
		}
		patch.Driver = driverPatch
	}

	cmd, err := commands.NewUpdateShipmentCommand(actor, shipmentID, patch)
	if err != nil {
		return writeDomainError(ctx, err)
	}

	if err := s.updateShipmentHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeDomainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// DeleteShipment handles DELETE /api/v1/shipments/:id.
func (s *Server) DeleteShipment(ctx echo.Context) error {
	actor, ok := actorFrom(ctx)
	if !ok {
		return ctx.NoContent(http.StatusUnauthorized)
	}

	shipmentID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "malformed shipment id")
	}

	cmd, err := commands.NewDeleteShipmentCommand(actor, shipmentID)
	if err != nil {
		return writeDomainError(ctx, err)
	}

	if err := s.deleteShipmentHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeDomainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ReportStatus handles POST /api/v1/shipments/:id/status-updates.
func (s *Server) ReportStatus(ctx echo.Context) error {
	actor, ok := actorFrom(ctx)
	if !ok {
		return ctx.NoContent(http.StatusUnauthorized)
	}

	shipmentID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "malformed shipment id")
	}

	var request ReportStatusRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	status, err := shipment.ParseStatus(request.Status)
	if err != nil {
		return writeDomainError(ctx, err)
	}

	updateID := kernel.NewUUID()
	cmd, err := commands.NewReportShipmentStatusCommand(
		actor,
		updateID,
		shipmentID,
		status,
		request.Note,
		request.PhotoURL,
		request.Latitude,
		request.Longitude,
		request.AccuracyM,
	)
	if err != nil {
		return writeDomainError(ctx, err)
	}

	if err := s.reportStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeDomainError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, IDResponse{ID: updateID})
}

// RemoveStatusUpdate handles DELETE /api/v1/status-updates/:id.
func (s *Server) RemoveStatusUpdate(ctx echo.Context) error {
	actor, ok := actorFrom(ctx)
	if !ok {
		return ctx.NoContent(http.StatusUnauthorized)
	}

	updateID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "malformed status update id")
	}

	cmd, err := commands.NewRemoveStatusUpdateCommand(actor, updateID)
	if err != nil {
		return writeDomainError(ctx, err)
	}

	if err := s.removeStatusUpdateHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeDomainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetShipments handles GET /api/v1/shipments.
// An optional updated_since query parameter (RFC 3339) narrows the list to
// shipments touched at or after that instant.
func (s *Server) GetShipments(ctx echo.Context) error {
	actor, ok := actorFrom(ctx)
	if !ok {
		return ctx.NoContent(http.StatusUnauthorized)
	}

	var updatedSince time.Time
	if raw := ctx.QueryParam("updated_since"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return badRequest(ctx, "updated_since must be an RFC 3339 timestamp")
		}
		updatedSince = parsed
	}

	query, err := queries.NewGetShipmentsQuery(actor, updatedSince)
	if err != nil {
		return writeDomainError(ctx, err)
	}

	shipments, err := s.getShipmentsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeDomainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, shipments)
}

// GetDriverShipments handles GET /api/v1/driver/shipments.
func (s *Server) GetDriverShipments(ctx echo.Context) error {
	actor, ok := actorFrom(ctx)
	if !ok {
		return ctx.NoContent(http.StatusUnauthorized)
	}

	query, err := queries.NewGetDriverShipmentsQuery(actor)
	if err != nil {
		return writeDomainError(ctx, err)
	}

	shipments, err := s.getDriverShipmentsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeDomainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, shipments)
}

// GetDriverStatuses handles GET /api/v1/drivers/statuses.
func (s *Server) GetDriverStatuses(ctx echo.Context) error {
	actor, ok := actorFrom(ctx)
	if !ok {
		return ctx.NoContent(http.StatusUnauthorized)
	}

	query, err := queries.NewGetDriverStatusesQuery(actor)
	if err != nil {
		return writeDomainError(ctx, err)
	}

	drivers, err := s.getDriverStatusesHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeDomainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, drivers)
}

// CreateProduct handles POST /api/v1/products.
func (s *Server) CreateProduct(ctx echo.Context) error {
	actor, ok := actorFrom(ctx)
	if !ok {
		return ctx.NoContent(http.StatusUnauthorized)
	}

	var request CreateProductRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	productID := kernel.NewUUID()
	cmd, err := commands.NewCreateProductCommand(
		actor,
		productID,
		request.Name,
		request.Price,
		request.Unit,
		request.StockQty,
	)
	if err != nil {
		return writeDomainError(ctx, err)
	}

	if err := s.createProductHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeDomainError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, IDResponse{ID: productID})
}

// DeleteProduct handles DELETE /api/v1/products/:id.
func (s *Server) DeleteProduct(ctx echo.Context) error {
	actor, ok := actorFrom(ctx)
	if !ok {
		return ctx.NoContent(http.StatusUnauthorized)
	}

	productID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "malformed product id")
	}

	cmd, err := commands.NewDeleteProductCommand(actor, productID)
	if err != nil {
		return writeDomainError(ctx, err)
	}

	if err := s.deleteProductHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeDomainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetLowStockProducts handles GET /api/v1/products/low-stock.
// The query itself carries no actor because the replenishment job shares it,
// so the manager gate lives here.
func (s *Server) GetLowStockProducts(ctx echo.Context) error {
	actor, ok := actorFrom(ctx)
	if !ok {
		return ctx.NoContent(http.StatusUnauthorized)
	}
	if !actor.IsManager() {
		return writeDomainError(ctx, errs.NewPermissionDeniedError("list low stock products"))
	}

	threshold := 0
	if raw := ctx.QueryParam("threshold"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return badRequest(ctx, "threshold must be an integer")
		}
		threshold = parsed
	}

	query, err := queries.NewGetLowStockProductsQuery(threshold)
	if err != nil {
		return writeDomainError(ctx, err)
	}

	products, err := s.getLowStockHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeDomainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, products)
}
