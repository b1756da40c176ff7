package commands

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/payment"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// CheckPaymentStatusCommandHandler polls the gateway for a payment's charge
// and applies the verdict. A payment that never reached the gateway has no
// transaction id and is returned unchanged without a poll.
type CheckPaymentStatusCommandHandler struct {
	uowFactory PaymentUoWFactory
	gateway    ports.PaymentGateway
	scheduler  ports.SettlementScheduler
}

// NewCheckPaymentStatusCommandHandler creates a reconciliation handler.
func NewCheckPaymentStatusCommandHandler(
	uowFactory PaymentUoWFactory,
	gateway ports.PaymentGateway,
	scheduler ports.SettlementScheduler,
) CheckPaymentStatusCommandHandler {
	return CheckPaymentStatusCommandHandler{
		uowFactory: uowFactory,
		gateway:    gateway,
		scheduler:  scheduler,
	}
}

// Handle polls the gateway and persists the verdict. The gateway is
// authoritative for its own charge: an approved verdict settles the payment
// even straight from PENDING. A verdict that resolves the payment also drops
// any pending settlement timer.
func (h *CheckPaymentStatusCommandHandler) Handle(
	ctx context.Context,
	cmd CheckPaymentStatusCommand,
) (*payment.Payment, error) {
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

	target, err := uow.PaymentRepository().Get(ctx, cmd.PaymentID())
	if err != nil {
		return nil, err
	}

	transactionID := target.TransactionID()
	if transactionID == nil {
		return target, nil
	}

	status, err := h.gateway.GetPaymentStatus(ctx, *transactionID)
	if err != nil {
		return nil, err
	}

	verdict, err := mapGatewayVerdict(status.Status)
	if err != nil {
		return nil, err
	}

	if err = target.ApplyConfirmation(verdict, time.Now()); err != nil {
		return nil, err
	}

	if err = uow.PaymentRepository().Update(ctx, target); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	if target.IsResolved() {
		h.scheduler.Cancel(target.ID())
	}

	return target, nil
}

func mapGatewayVerdict(status string) (payment.Status, error) {
	switch status {
	case ports.GatewayStatusApproved:
		return payment.StatusApproved, nil
	case ports.GatewayStatusRejected:
		return payment.StatusRefused, nil
	case ports.GatewayStatusPending:
		return payment.StatusPending, nil
	default:
		return payment.StatusUnknown, errs.NewValueIsInvalidError("gatewayStatus")
	}
}
