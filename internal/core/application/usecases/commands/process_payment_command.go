package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrProcessPaymentCommandIsNotConstructed = errors.New(
	"ProcessPaymentCommand must be created via NewProcessPaymentCommand constructor",
)

// ProcessPaymentCommand represents a request to run a payment through the
// gateway (PIX) or the delayed settlement path (card, boleto).
type ProcessPaymentCommand struct { //nolint:recvcheck //using for validation
	paymentID  kernel.UUID
	payerEmail string

	guard guard.ConstructorGuard
}

// NewProcessPaymentCommand creates a validated processing command. The payer
// email is optional and only forwarded to the gateway on PIX charges.
func NewProcessPaymentCommand(paymentID kernel.UUID, payerEmail string) (ProcessPaymentCommand, error) {
	if err := paymentID.Validate(); err != nil {
		return ProcessPaymentCommand{}, err
	}

	return ProcessPaymentCommand{
		paymentID:  paymentID,
		payerEmail: payerEmail,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ProcessPaymentCommand) Validate() error {
	return c.guard.Validate(ErrProcessPaymentCommandIsNotConstructed)
}

// PaymentID returns the payment to process.
func (c ProcessPaymentCommand) PaymentID() kernel.UUID { return c.paymentID }

// PayerEmail returns the optional payer contact for the gateway.
func (c ProcessPaymentCommand) PayerEmail() string { return c.payerEmail }
