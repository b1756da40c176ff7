package commands

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// UpdateOrderStatusCommandHandler is the only sanctioned status write path:
// it validates the transition, persists it, and broadcasts status_changed to
// the order's room. Raw status writes bypass both the edge set and the
// notification and must not be used.
type UpdateOrderStatusCommandHandler struct {
	uowFactory OrderPaymentUoWFactory
	publisher  ports.TrackingPublisher
}

// NewUpdateOrderStatusCommandHandler creates a handler for order status changes.
func NewUpdateOrderStatusCommandHandler(
	uowFactory OrderPaymentUoWFactory,
	publisher ports.TrackingPublisher,
) UpdateOrderStatusCommandHandler {
	return UpdateOrderStatusCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle applies the status change and, after commit, broadcasts it.
// CONFIRMED is additionally gated on the order's payment: a terminally failed
// payment blocks confirmation even for administrative overrides.
func (h *UpdateOrderStatusCommandHandler) Handle(ctx context.Context, cmd UpdateOrderStatusCommand) error {
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

	if cmd.Status() == order.StatusConfirmed {
		latest, payErr := uow.PaymentRepository().GetLatestByOrder(ctx, cmd.OrderID())
		if payErr != nil {
			return payErr
		}
		if latest != nil && latest.Status().IsTerminallyFailed() {
			return errs.NewInvalidTransitionError("order",
				target.Status().String(), order.StatusConfirmed.String())
		}
	}

	now := time.Now()
	if cmd.Force() {
		err = target.OverrideStatus(cmd.Status(), now)
	} else {
		err = target.ChangeStatus(cmd.Status(), now)
	}
	if err != nil {
		return err
	}

	if err = uow.OrderRepository().Update(ctx, target); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publisher.PublishStatusChanged(ports.StatusChangedEvent{
		OrderID:   target.ID(),
		Status:    target.Status().String(),
		Timestamp: target.UpdatedAt(),
	})

	return nil
}
