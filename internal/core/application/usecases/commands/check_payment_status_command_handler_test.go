package commands_test

import (
	"testing"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/payment"
	"dispatch/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newPixPaymentWithCharge(t *testing.T) *payment.Payment {
	t.Helper()
	p := newProcessingPayment(t, payment.MethodPix)
	require.NoError(t, p.AttachPixCharge("txn-123", "00020126330014br.gov.bcb.pix", "aW1hZ2U=", "", time.Now()))
	return p
}

func TestCheckPaymentStatusCommandHandler_Handle_NoTransactionIDIsNoop(t *testing.T) {
	ctx := t.Context()
	target := newTestPayment(t, payment.MethodPix) // never reached the gateway

	cmd, err := commands.NewCheckPaymentStatusCommand(target.ID())
	require.NoError(t, err)

	payments := new(MockPaymentRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("PaymentRepository").Return(payments).Once(),
		payments.On("Get", mock.Anything, target.ID()).Return(target, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockPaymentUoWFactory)
	factory.On("Create").Return(uow).Once()

	gateway := new(MockPaymentGateway)
	scheduler := new(MockSettlementScheduler)

	h := commands.NewCheckPaymentStatusCommandHandler(factory, gateway, scheduler)
	result, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.Equal(t, payment.StatusPending, result.Status())
	gateway.AssertNotCalled(t, "GetPaymentStatus", mock.Anything, mock.Anything)
}

func TestCheckPaymentStatusCommandHandler_Handle_ApprovedVerdictSettles(t *testing.T) {
	ctx := t.Context()
	target := newPixPaymentWithCharge(t) // PENDING with txn-123

	cmd, err := commands.NewCheckPaymentStatusCommand(target.ID())
	require.NoError(t, err)

	payments := new(MockPaymentRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("PaymentRepository").Return(payments).Once(),
		payments.On("Get", mock.Anything, target.ID()).Return(target, nil).Once(),
		uow.On("PaymentRepository").Return(payments).Once(),
		payments.On("Update", mock.Anything, target).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockPaymentUoWFactory)
	factory.On("Create").Return(uow).Once()

	gateway := new(MockPaymentGateway)
	gateway.On("GetPaymentStatus", mock.Anything, "txn-123").
		Return(ports.GatewayPaymentStatus{ExternalID: "txn-123", Status: ports.GatewayStatusApproved}, nil).Once()

	scheduler := new(MockSettlementScheduler)
	scheduler.On("Cancel", target.ID()).Return(false).Once()

	h := commands.NewCheckPaymentStatusCommandHandler(factory, gateway, scheduler)
	result, err := h.Handle(ctx, cmd)
	require.NoError(t, err)

	// PIX settles straight from PENDING on the gateway's word
	require.Equal(t, payment.StatusApproved, result.Status())
	require.NotNil(t, result.ProcessedAt())
	gateway.AssertExpectations(t)
	scheduler.AssertExpectations(t)
}

func TestCheckPaymentStatusCommandHandler_Handle_RejectedVerdictRefuses(t *testing.T) {
	ctx := t.Context()
	target := newPixPaymentWithCharge(t)

	cmd, err := commands.NewCheckPaymentStatusCommand(target.ID())
	require.NoError(t, err)

	payments := new(MockPaymentRepository)
	uow := new(MockUoW)
	uow.On("Begin", mock.Anything).Return(nil)
	uow.On("Commit", mock.Anything).Return(nil)
	uow.On("Rollback", mock.Anything).Return(nil)
	uow.On("PaymentRepository").Return(payments)
	payments.On("Get", mock.Anything, target.ID()).Return(target, nil)
	payments.On("Update", mock.Anything, target).Return(nil).Once()

	factory := new(MockPaymentUoWFactory)
	factory.On("Create").Return(uow).Once()

	gateway := new(MockPaymentGateway)
	gateway.On("GetPaymentStatus", mock.Anything, "txn-123").
		Return(ports.GatewayPaymentStatus{ExternalID: "txn-123", Status: ports.GatewayStatusRejected}, nil).Once()

	scheduler := new(MockSettlementScheduler)
	scheduler.On("Cancel", target.ID()).Return(false).Once()

	h := commands.NewCheckPaymentStatusCommandHandler(factory, gateway, scheduler)
	result, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.Equal(t, payment.StatusRefused, result.Status())
	require.Nil(t, result.ProcessedAt())
}

func TestCheckPaymentStatusCommandHandler_Handle_PendingVerdictKeepsTimer(t *testing.T) {
	ctx := t.Context()
	target := newPixPaymentWithCharge(t)

	cmd, err := commands.NewCheckPaymentStatusCommand(target.ID())
	require.NoError(t, err)

	payments := new(MockPaymentRepository)
	uow := new(MockUoW)
	uow.On("Begin", mock.Anything).Return(nil)
	uow.On("Commit", mock.Anything).Return(nil)
	uow.On("Rollback", mock.Anything).Return(nil)
	uow.On("PaymentRepository").Return(payments)
	payments.On("Get", mock.Anything, target.ID()).Return(target, nil)
	payments.On("Update", mock.Anything, target).Return(nil).Once()

	factory := new(MockPaymentUoWFactory)
	factory.On("Create").Return(uow).Once()

	gateway := new(MockPaymentGateway)
	gateway.On("GetPaymentStatus", mock.Anything, "txn-123").
		Return(ports.GatewayPaymentStatus{ExternalID: "txn-123", Status: ports.GatewayStatusPending}, nil).Once()

	scheduler := new(MockSettlementScheduler)

	h := commands.NewCheckPaymentStatusCommandHandler(factory, gateway, scheduler)
	result, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.Equal(t, payment.StatusPending, result.Status())
	scheduler.AssertNotCalled(t, "Cancel", mock.Anything)
}
