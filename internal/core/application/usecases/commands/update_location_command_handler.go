package commands

import (
	"context"
	"time"

	"dispatch/internal/core/ports"
)

// UpdateLocationCommandHandler persists a courier position report and
// broadcasts location_updated to the order's room. A stale report (older
// than the stored one) is rejected before anything is written, so racing
// couriers cannot roll the position back.
type UpdateLocationCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.TrackingPublisher
}

// NewUpdateLocationCommandHandler creates a handler for location reports.
func NewUpdateLocationCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.TrackingPublisher,
) UpdateLocationCommandHandler {
	return UpdateLocationCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle validates the order exists, persists the coordinates, and after
// commit fans the update out. A failed update never reaches the room.
func (h *UpdateLocationCommandHandler) Handle(ctx context.Context, cmd UpdateLocationCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	target, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = target.MoveTo(cmd.Position(), cmd.ReportedAt(), time.Now()); err != nil {
		return err
	}

	if err = uow.OrderRepository().Update(ctx, target); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publisher.PublishLocationUpdated(ports.LocationUpdatedEvent{
		OrderID:   target.ID(),
		Latitude:  cmd.Position().Latitude(),
		Longitude: cmd.Position().Longitude(),
		Status:    target.Status().String(),
		Timestamp: cmd.ReportedAt(),
	})

	return nil
}
