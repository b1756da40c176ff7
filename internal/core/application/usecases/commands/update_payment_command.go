package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/payment"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrUpdatePaymentCommandIsNotConstructed = errors.New(
	"UpdatePaymentCommand must be created via NewUpdatePaymentCommand constructor",
)

// UpdatePaymentCommand represents a direct patch to a payment. Every field
// except the id is optional; only the set fields are applied. A status patch
// bypasses the transition edges, which is the administrative repair path.
type UpdatePaymentCommand struct { //nolint:recvcheck //using for validation
	paymentID     kernel.UUID
	amount        *kernel.Money
	method        *payment.Method
	status        *payment.Status
	transactionID *string

	guard guard.ConstructorGuard
}

// NewUpdatePaymentCommand creates a validated patch command. At least one
// field must be set.
func NewUpdatePaymentCommand(
	paymentID kernel.UUID,
	amount *kernel.Money,
	method *payment.Method,
	status *payment.Status,
	transactionID *string,
) (UpdatePaymentCommand, error) {
	if err := paymentID.Validate(); err != nil {
		return UpdatePaymentCommand{}, err
	}

	if amount == nil && method == nil && status == nil && transactionID == nil {
		return UpdatePaymentCommand{}, errs.NewValueIsRequiredError("patch fields")
	}

	cmd := UpdatePaymentCommand{
		paymentID: paymentID,
		guard:     guard.NewConstructorGuard(),
	}

	if amount != nil {
		if err := amount.Validate(); err != nil {
			return UpdatePaymentCommand{}, err
		}
		value := *amount
		cmd.amount = &value
	}

	if method != nil {
		if err := method.Validate(); err != nil {
			return UpdatePaymentCommand{}, err
		}
		value := *method
		cmd.method = &value
	}

	if status != nil {
		if err := status.Validate(); err != nil {
			return UpdatePaymentCommand{}, err
		}
		value := *status
		cmd.status = &value
	}

	if transactionID != nil {
		if *transactionID == "" {
			return UpdatePaymentCommand{}, errs.NewValueIsRequiredError("transactionID")
		}
		value := *transactionID
		cmd.transactionID = &value
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdatePaymentCommand) Validate() error {
	return c.guard.Validate(ErrUpdatePaymentCommandIsNotConstructed)
}

// PaymentID returns the payment to patch.
func (c UpdatePaymentCommand) PaymentID() kernel.UUID { return c.paymentID }

// Amount returns the new amount, nil when unchanged.
func (c UpdatePaymentCommand) Amount() *kernel.Money { return c.amount }

// Method returns the new method, nil when unchanged.
func (c UpdatePaymentCommand) Method() *payment.Method { return c.method }

// Status returns the new status, nil when unchanged.
func (c UpdatePaymentCommand) Status() *payment.Status { return c.status }

// TransactionID returns the new external transaction id, nil when unchanged.
func (c UpdatePaymentCommand) TransactionID() *string { return c.transactionID }
