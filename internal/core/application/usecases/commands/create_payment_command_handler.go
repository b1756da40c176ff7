package commands

import (
	"context"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/payment"
	"dispatch/internal/pkg/errs"
)

// CreatePaymentCommandHandler opens a payment attempt for an order. At most
// one unresolved payment may exist per order, so a second attempt is
// rejected until the first reaches a resolved status.
type CreatePaymentCommandHandler struct {
	uowFactory OrderPaymentUoWFactory
}

// NewCreatePaymentCommandHandler creates a handler for payment creation.
func NewCreatePaymentCommandHandler(uowFactory OrderPaymentUoWFactory) CreatePaymentCommandHandler {
	return CreatePaymentCommandHandler{uowFactory: uowFactory}
}

// Handle verifies the order exists, the amount matches the order amount,
// and no unresolved payment is already open, then persists the new payment
// in PENDING.
func (h *CreatePaymentCommandHandler) Handle(ctx context.Context, cmd CreatePaymentCommand) (*payment.Payment, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	target, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	if !target.Amount().IsEqual(cmd.Amount()) {
		return nil, errs.NewValueIsInvalidError("amount")
	}

	open, err := uow.PaymentRepository().GetUnresolvedByOrder(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	if open != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("orderID",
			fmt.Errorf("order already has an unresolved payment %s in status %s",
				open.ID(), open.Status()))
	}

	attempt, err := payment.NewPayment(cmd.PaymentID(), cmd.OrderID(), cmd.Amount(), cmd.Method(), time.Now())
	if err != nil {
		return nil, err
	}

	if err = uow.PaymentRepository().Add(ctx, attempt); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return attempt, nil
}
