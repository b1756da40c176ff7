package commands_test

import (
	"testing"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/payment"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUpdatePaymentCommandHandler_Handle_PatchesAmountAndMethod(t *testing.T) {
	ctx := t.Context()
	target := newTestPayment(t, payment.MethodCardCredit)

	amount := testMoney(t, "99.90")
	method := payment.MethodBoleto
	cmd, err := commands.NewUpdatePaymentCommand(target.ID(), &amount, &method, nil, nil)
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

	scheduler := new(MockSettlementScheduler)

	h := commands.NewUpdatePaymentCommandHandler(factory, scheduler)
	result, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.True(t, result.Amount().IsEqual(amount))
	require.Equal(t, payment.MethodBoleto, result.Method())
	scheduler.AssertNotCalled(t, "Cancel", mock.Anything)
}

func TestUpdatePaymentCommandHandler_Handle_StatusPatchCancelsTimerAndStamps(t *testing.T) {
	ctx := t.Context()
	target := newProcessingPayment(t, payment.MethodCardCredit)

	status := payment.StatusApproved
	cmd, err := commands.NewUpdatePaymentCommand(target.ID(), nil, nil, &status, nil)
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

	scheduler := new(MockSettlementScheduler)
	scheduler.On("Cancel", target.ID()).Return(true).Once()

	h := commands.NewUpdatePaymentCommandHandler(factory, scheduler)
	result, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.Equal(t, payment.StatusApproved, result.Status())
	require.NotNil(t, result.ProcessedAt())
	scheduler.AssertExpectations(t)
}

func TestUpdatePaymentCommand_RequiresAtLeastOneField(t *testing.T) {
	_, err := commands.NewUpdatePaymentCommand(kernel.NewUUID(), nil, nil, nil, nil)
	require.Error(t, err)
}
