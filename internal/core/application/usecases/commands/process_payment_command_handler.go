package commands

import (
	"context"
	"log/slog"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/payment"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// ProcessPaymentCommandHandler runs a payment attempt. PIX payments go to
// the gateway for a charge; card and boleto payments settle through a
// delayed timer that approves them unless something changed the payment
// first. Processing an already APPROVED payment is an idempotent no-op that
// never reaches the gateway.
type ProcessPaymentCommandHandler struct {
	uowFactory      OrderPaymentUoWFactory
	gateway         ports.PaymentGateway
	scheduler       ports.SettlementScheduler
	settlementDelay time.Duration
	retryPolicy     RetryPolicy
	logger          *slog.Logger
}

// NewProcessPaymentCommandHandler creates a payment processing handler.
func NewProcessPaymentCommandHandler(
	uowFactory OrderPaymentUoWFactory,
	gateway ports.PaymentGateway,
	scheduler ports.SettlementScheduler,
	settlementDelay time.Duration,
	retryPolicy RetryPolicy,
	logger *slog.Logger,
) ProcessPaymentCommandHandler {
	return ProcessPaymentCommandHandler{
		uowFactory:      uowFactory,
		gateway:         gateway,
		scheduler:       scheduler,
		settlementDelay: settlementDelay,
		retryPolicy:     retryPolicy,
		logger:          logger,
	}
}

// Handle moves the payment into PROCESSING under a compare-and-set guard,
// then runs the method-specific settlement path. Two racing process calls
// cannot both advance the same payment: the loser fails the status guard.
func (h *ProcessPaymentCommandHandler) Handle(
	ctx context.Context,
	cmd ProcessPaymentCommand,
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

	if target.Status() == payment.StatusApproved {
		return target, nil
	}

	stored := target.Status()
	if stored == payment.StatusRefused {
		if h.retryPolicy == RetryPolicyReject {
			return nil, errs.NewInvalidTransitionError("payment",
				payment.StatusRefused.String(), payment.StatusProcessing.String())
		}
		if err = target.ForceStatus(payment.StatusPending, time.Now()); err != nil {
			return nil, err
		}
	}

	var shipment *order.Order
	shipment, err = uow.OrderRepository().Get(ctx, target.OrderID())
	if err != nil {
		return nil, err
	}

	if err = target.MarkProcessing(time.Now()); err != nil {
		return nil, err
	}

	if err = uow.PaymentRepository().UpdateIfStatus(ctx, target, stored); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	if target.Method().IsPix() {
		return h.settlePix(ctx, cmd, target, shipment)
	}

	h.scheduleSettlement(target.ID())

	return target, nil
}

// settlePix asks the gateway for a charge. The call happens outside any
// transaction, so a slow gateway never holds database locks; the outcome is
// persisted in a fresh unit of work. A gateway failure refuses the payment
// and still surfaces the gateway error to the caller.
func (h *ProcessPaymentCommandHandler) settlePix(
	ctx context.Context,
	cmd ProcessPaymentCommand,
	target *payment.Payment,
	shipment *order.Order,
) (*payment.Payment, error) {
	charge, gwErr := h.gateway.CreatePixCharge(ctx, ports.PixChargeRequest{
		Amount:      target.Amount(),
		Description: shipment.Description(),
		PayerEmail:  cmd.PayerEmail(),
	})
	if gwErr != nil {
		if err := h.persistOutcome(ctx, target.ID(), func(p *payment.Payment) error {
			return p.Refuse(time.Now())
		}); err != nil {
			h.logger.Error("failed to persist refusal after gateway error",
				"paymentID", target.ID().String(), "error", err)
		}
		return nil, gwErr
	}

	var updated *payment.Payment
	err := h.persistOutcome(ctx, target.ID(), func(p *payment.Payment) error {
		if err := p.AttachPixCharge(
			charge.ExternalID,
			charge.QRPayload,
			charge.QRImageBase64,
			charge.TicketURL,
			time.Now(),
		); err != nil {
			return err
		}
		updated = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// scheduleSettlement arms the delayed approval for a card or boleto payment.
// The timer fires with a background context because the request context is
// long gone by then; it approves only while the payment is still PROCESSING,
// so any explicit status change in between wins.
func (h *ProcessPaymentCommandHandler) scheduleSettlement(paymentID kernel.UUID) {
	h.scheduler.Schedule(paymentID, h.settlementDelay, func() {
		ctx := context.Background()
		err := h.persistOutcomeIfStatus(ctx, paymentID, payment.StatusProcessing, func(p *payment.Payment) error {
			if p.Status() != payment.StatusProcessing {
				return nil
			}
			return p.Approve(time.Now())
		})
		if err != nil {
			h.logger.Error("delayed settlement failed",
				"paymentID", paymentID.String(), "error", err)
			return
		}
		h.logger.Info("payment settled", "paymentID", paymentID.String())
	})
}

// persistOutcome loads the payment in a fresh unit of work, applies mutate,
// and commits.
func (h *ProcessPaymentCommandHandler) persistOutcome(
	ctx context.Context,
	paymentID kernel.UUID,
	mutate func(*payment.Payment) error,
) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	target, err := uow.PaymentRepository().Get(ctx, paymentID)
	if err != nil {
		return err
	}

	if err = mutate(target); err != nil {
		return err
	}

	if err = uow.PaymentRepository().Update(ctx, target); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// persistOutcomeIfStatus is persistOutcome under a compare-and-set guard on
// the stored status.
func (h *ProcessPaymentCommandHandler) persistOutcomeIfStatus(
	ctx context.Context,
	paymentID kernel.UUID,
	expected payment.Status,
	mutate func(*payment.Payment) error,
) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	target, err := uow.PaymentRepository().Get(ctx, paymentID)
	if err != nil {
		return err
	}

	if target.Status() != expected {
		return nil
	}

	if err = mutate(target); err != nil {
		return err
	}

	if err = uow.PaymentRepository().UpdateIfStatus(ctx, target, expected); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
