package commands

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/order"
)

// CreateOrderCommandHandler handles order registration. A referenced courier
// must exist; the route reference is stored opaquely because route management
// lives outside this service.
type CreateOrderCommandHandler struct {
	uowFactory UoWFactory
}

// NewCreateOrderCommandHandler creates a handler for order registration.
func NewCreateOrderCommandHandler(uowFactory UoWFactory) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{uowFactory: uowFactory}
}

// Handle persists a new order at PENDING, resolving the courier reference
// first so a dangling id fails with not-found and creates no row.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
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

	if courierID := cmd.CourierID(); courierID != nil {
		if _, err := uow.CourierRepository().Get(ctx, *courierID); err != nil {
			return err
		}
	}

	newOrder, err := order.NewOrder(
		cmd.OrderID(),
		cmd.Description(),
		cmd.Origin(),
		cmd.Destination(),
		cmd.Amount(),
		cmd.CourierID(),
		cmd.RouteID(),
		time.Now(),
	)
	if err != nil {
		return err
	}

	if err = uow.OrderRepository().Add(ctx, newOrder); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
