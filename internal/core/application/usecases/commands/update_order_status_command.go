package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/guard"
)

var ErrUpdateOrderStatusCommandIsNotConstructed = errors.New(
	"UpdateOrderStatusCommand must be created via NewUpdateOrderStatusCommand constructor",
)

// UpdateOrderStatusCommand represents a request to move an order along its
// lifecycle. With force set, the transition becomes an administrative
// override that skips edge validation.
type UpdateOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	status  order.Status
	force   bool

	guard guard.ConstructorGuard
}

// NewUpdateOrderStatusCommand creates a validated status change command.
func NewUpdateOrderStatusCommand(orderID kernel.UUID, status order.Status, force bool) (UpdateOrderStatusCommand, error) {
	cmd := UpdateOrderStatusCommand{
		force: force,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderID.Validate(),
		status.Validate(),
	); err != nil {
		return UpdateOrderStatusCommand{}, err
	}

	cmd.orderID = orderID
	cmd.status = status
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderStatusCommandIsNotConstructed)
}

// OrderID returns the target order identifier.
func (c UpdateOrderStatusCommand) OrderID() kernel.UUID { return c.orderID }

// Status returns the requested lifecycle status.
func (c UpdateOrderStatusCommand) Status() order.Status { return c.status }

// Force reports whether the change is an administrative override.
func (c UpdateOrderStatusCommand) Force() bool { return c.force }
