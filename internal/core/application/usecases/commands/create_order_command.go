package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
)

// CreateOrderCommand represents a request to register a new delivery order.
// Courier and route references are optional; a set courier reference must
// resolve against the courier store or the handler fails with not-found.
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	description string
	origin      string
	destination string
	amount      kernel.Money
	courierID   *kernel.UUID
	routeID     *kernel.UUID

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a validated command to register an order.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	description string,
	origin string,
	destination string,
	amount kernel.Money,
	courierID *kernel.UUID,
	routeID *kernel.UUID,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setDescription(description),
		cmd.setAddresses(origin, destination),
		cmd.setAmount(amount),
		cmd.setCourierID(courierID),
		cmd.setRouteID(routeID),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the identifier for the new order.
func (c CreateOrderCommand) OrderID() kernel.UUID { return c.orderID }

// Description returns the shipment summary.
func (c CreateOrderCommand) Description() string { return c.description }

// Origin returns the pickup address.
func (c CreateOrderCommand) Origin() string { return c.origin }

// Destination returns the delivery address.
func (c CreateOrderCommand) Destination() string { return c.destination }

// Amount returns the order value.
func (c CreateOrderCommand) Amount() kernel.Money { return c.amount }

// CourierID returns the optional courier reference.
func (c CreateOrderCommand) CourierID() *kernel.UUID { return c.courierID }

// RouteID returns the optional opaque route reference.
func (c CreateOrderCommand) RouteID() *kernel.UUID { return c.routeID }

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setDescription(description string) error {
	if description == "" {
		return errs.NewValueIsRequiredError("description")
	}
	c.description = description
	return nil
}

func (c *CreateOrderCommand) setAddresses(origin, destination string) error {
	if origin == "" {
		return errs.NewValueIsRequiredError("origin")
	}
	if destination == "" {
		return errs.NewValueIsRequiredError("destination")
	}
	c.origin = origin
	c.destination = destination
	return nil
}

func (c *CreateOrderCommand) setAmount(amount kernel.Money) error {
	if err := amount.Validate(); err != nil {
		return err
	}
	c.amount = amount
	return nil
}

func (c *CreateOrderCommand) setCourierID(courierID *kernel.UUID) error {
	if courierID == nil {
		return nil
	}
	if err := courierID.Validate(); err != nil {
		return err
	}
	id := *courierID
	c.courierID = &id
	return nil
}

func (c *CreateOrderCommand) setRouteID(routeID *kernel.UUID) error {
	if routeID == nil {
		return nil
	}
	if err := routeID.Validate(); err != nil {
		return err
	}
	id := *routeID
	c.routeID = &id
	return nil
}
