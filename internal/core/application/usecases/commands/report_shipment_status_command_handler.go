package commands

import (
	"context"
	"time"

	"routex/internal/core/domain/model/shipment"
	"routex/internal/core/ports"
	"routex/internal/pkg/errs"
)

// ReportShipmentStatusCommandHandler handles status reports from drivers.
//
// Only the assigned driver may report; the reported status must be a legal
// transition from the shipment's denormalized current status; a GPS fix whose
// accuracy radius exceeds the configured threshold is rejected. The history
// entry gets a server-assigned timestamp, and the shipment's status is synced
// from the history in the same transaction.
type ReportShipmentStatusCommandHandler struct {
	uowFactory      StatusUoWFactory
	maxGpsAccuracyM int
	publisher       ports.EventPublisher
	cache           ports.ProjectionCache
}

// NewReportShipmentStatusCommandHandler creates a handler for status reports.
// A non-positive maxGpsAccuracyM falls back to shipment.DefaultMaxGpsAccuracyM.
func NewReportShipmentStatusCommandHandler(
	uowFactory StatusUoWFactory,
	maxGpsAccuracyM int,
	publisher ports.EventPublisher,
	cache ports.ProjectionCache,
) ReportShipmentStatusCommandHandler {
	if maxGpsAccuracyM <= 0 {
		maxGpsAccuracyM = shipment.DefaultMaxGpsAccuracyM
	}
	return ReportShipmentStatusCommandHandler{
		uowFactory:      uowFactory,
		maxGpsAccuracyM: maxGpsAccuracyM,
		publisher:       publisher,
		cache:           cache,
	}
}

// Handle processes the status report command.
func (h *ReportShipmentStatusCommandHandler) Handle(ctx context.Context, cmd ReportShipmentStatusCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if !cmd.Actor().IsDriver() {
		return errs.NewPermissionDeniedError("report shipment status")
	}

	if cmd.AccuracyM() != nil && *cmd.AccuracyM() > h.maxGpsAccuracyM {
		return &shipment.GpsAccuracyError{AccuracyM: *cmd.AccuracyM(), MaxM: h.maxGpsAccuracyM}
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.ShipmentRepository().Get(ctx, cmd.ShipmentID())
	if err != nil {
		return err
	}

	if aggregate.DriverID() == nil || !aggregate.DriverID().IsEqual(cmd.Actor().ID()) {
		return errs.NewPermissionDeniedError("report status for another driver's shipment")
	}

	if err := shipment.ValidateTransition(aggregate.Status(), cmd.Status()); err != nil {
		return err
	}

	entry, err := shipment.NewStatusUpdate(
		cmd.UpdateID(),
		cmd.ShipmentID(),
		cmd.Status(),
		time.Now().UTC(),
		cmd.Note(),
		cmd.PhotoURL(),
		cmd.Location(),
		cmd.AccuracyM(),
	)
	if err != nil {
		return err
	}

	if err := uow.StatusUpdateRepository().Add(ctx, entry); err != nil {
		return err
	}

	oldStatus, newStatus, err := syncShipmentStatus(
		ctx, uow.ShipmentRepository(), uow.StatusUpdateRepository(), cmd.ShipmentID())
	if err != nil {
		return err
	}

	if err := uow.Commit(ctx); err != nil {
		return err
	}

	if oldStatus != newStatus {
		_ = h.publisher.PublishShipmentStatusChanged(ctx, ports.ShipmentStatusChangedEvent{
			ShipmentID: aggregate.ID(),
			DriverID:   aggregate.DriverID(),
			OldStatus:  oldStatus,
			NewStatus:  newStatus,
			OccurredAt: entry.Timestamp(),
		})
	}
	_ = h.cache.Invalidate(ctx, ports.CacheKeyShipmentList)

	return nil
}
