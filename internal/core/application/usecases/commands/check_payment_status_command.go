package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrCheckPaymentStatusCommandIsNotConstructed = errors.New(
	"CheckPaymentStatusCommand must be created via NewCheckPaymentStatusCommand constructor",
)

// CheckPaymentStatusCommand represents a request to reconcile a payment
// against the gateway's view of its charge.
type CheckPaymentStatusCommand struct { //nolint:recvcheck //using for validation
	paymentID kernel.UUID

	guard guard.ConstructorGuard
}

// NewCheckPaymentStatusCommand creates a validated reconciliation command.
func NewCheckPaymentStatusCommand(paymentID kernel.UUID) (CheckPaymentStatusCommand, error) {
	if err := paymentID.Validate(); err != nil {
		return CheckPaymentStatusCommand{}, err
	}

	return CheckPaymentStatusCommand{
		paymentID: paymentID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CheckPaymentStatusCommand) Validate() error {
	return c.guard.Validate(ErrCheckPaymentStatusCommandIsNotConstructed)
}

// PaymentID returns the payment to reconcile.
func (c CheckPaymentStatusCommand) PaymentID() kernel.UUID { return c.paymentID }
