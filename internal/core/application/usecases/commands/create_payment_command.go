package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/payment"
	"dispatch/internal/pkg/guard"
)

var ErrCreatePaymentCommandIsNotConstructed = errors.New(
	"CreatePaymentCommand must be created via NewCreatePaymentCommand constructor",
)

// CreatePaymentCommand represents a request to open a payment attempt
// for an order.
type CreatePaymentCommand struct { //nolint:recvcheck //using for validation
	paymentID kernel.UUID
	orderID   kernel.UUID
	amount    kernel.Money
	method    payment.Method

	guard guard.ConstructorGuard
}

// NewCreatePaymentCommand creates a validated payment creation command.
func NewCreatePaymentCommand(
	paymentID kernel.UUID,
	orderID kernel.UUID,
	amount kernel.Money,
	method payment.Method,
) (CreatePaymentCommand, error) {
	cmd := CreatePaymentCommand{guard: guard.NewConstructorGuard()}

	if err := cmd.setPaymentID(paymentID); err != nil {
		return CreatePaymentCommand{}, err
	}

	if err := cmd.setOrderID(orderID); err != nil {
		return CreatePaymentCommand{}, err
	}

	if err := cmd.setAmount(amount); err != nil {
		return CreatePaymentCommand{}, err
	}

	if err := cmd.setMethod(method); err != nil {
		return CreatePaymentCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreatePaymentCommand) Validate() error {
	return c.guard.Validate(ErrCreatePaymentCommandIsNotConstructed)
}

// PaymentID returns the identifier of the payment being created.
func (c CreatePaymentCommand) PaymentID() kernel.UUID { return c.paymentID }

// OrderID returns the order the payment belongs to.
func (c CreatePaymentCommand) OrderID() kernel.UUID { return c.orderID }

// Amount returns the payment amount.
func (c CreatePaymentCommand) Amount() kernel.Money { return c.amount }

// Method returns the selected payment method.
func (c CreatePaymentCommand) Method() payment.Method { return c.method }

func (c *CreatePaymentCommand) setPaymentID(paymentID kernel.UUID) error {
	if err := paymentID.Validate(); err != nil {
		return err
	}

	c.paymentID = paymentID

	return nil
}

func (c *CreatePaymentCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID

	return nil
}

func (c *CreatePaymentCommand) setAmount(amount kernel.Money) error {
	if err := amount.Validate(); err != nil {
		return err
	}

	c.amount = amount

	return nil
}

func (c *CreatePaymentCommand) setMethod(method payment.Method) error {
	if err := method.Validate(); err != nil {
		return err
	}

	c.method = method

	return nil
}
