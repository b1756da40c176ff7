package commands

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/payment"
	"dispatch/internal/core/ports"
)

// UpdatePaymentCommandHandler applies a direct patch to a payment. A status
// patch drops any pending settlement timer first, so an armed card
// settlement can never overwrite the patched status afterwards.
type UpdatePaymentCommandHandler struct {
	uowFactory PaymentUoWFactory
	scheduler  ports.SettlementScheduler
}

// NewUpdatePaymentCommandHandler creates a payment patch handler.
func NewUpdatePaymentCommandHandler(
	uowFactory PaymentUoWFactory,
	scheduler ports.SettlementScheduler,
) UpdatePaymentCommandHandler {
	return UpdatePaymentCommandHandler{
		uowFactory: uowFactory,
		scheduler:  scheduler,
	}
}

// Handle loads the payment, applies the set fields, and persists. Patching
// the status to APPROVED stamps the processing time when absent.
func (h *UpdatePaymentCommandHandler) Handle(
	ctx context.Context,
	cmd UpdatePaymentCommand,
) (*payment.Payment, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	if cmd.Status() != nil {
		h.scheduler.Cancel(cmd.PaymentID())
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	target, err := uow.PaymentRepository().Get(ctx, cmd.PaymentID())
	if err != nil {
		return nil, err
	}

	now := time.Now()

	if cmd.Amount() != nil {
		if err = target.SetAmount(*cmd.Amount(), now); err != nil {
			return nil, err
		}
	}

	if cmd.Method() != nil {
		if err = target.SetMethod(*cmd.Method(), now); err != nil {
			return nil, err
		}
	}

	if cmd.TransactionID() != nil {
		if err = target.SetTransactionID(*cmd.TransactionID(), now); err != nil {
			return nil, err
		}
	}

	if cmd.Status() != nil {
		if err = target.ForceStatus(*cmd.Status(), now); err != nil {
			return nil, err
		}
	}

	if err = uow.PaymentRepository().Update(ctx, target); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return target, nil
}
