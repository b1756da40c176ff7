package commands_test

import (
	"testing"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/payment"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreatePaymentCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	target := newTestOrder(t)

	cmd, err := commands.NewCreatePaymentCommand(
		kernel.NewUUID(), target.ID(), target.Amount(), payment.MethodPix,
	)
	require.NoError(t, err)

	orders := new(MockOrderRepository)
	payments := new(MockPaymentRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orders).Once(),
		orders.On("Get", mock.Anything, target.ID()).Return(target, nil).Once(),
		uow.On("PaymentRepository").Return(payments).Once(),
		payments.On("GetUnresolvedByOrder", mock.Anything, target.ID()).Return(nil, nil).Once(),
		uow.On("PaymentRepository").Return(payments).Once(),
		payments.On("Add", mock.Anything, mock.AnythingOfType("*payment.Payment")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderPaymentUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreatePaymentCommandHandler(factory)
	created, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.Equal(t, payment.StatusPending, created.Status())
	require.True(t, created.OrderID().IsEqual(target.ID()))
	payments.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestCreatePaymentCommandHandler_Handle_OrderNotFound(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()

	cmd, err := commands.NewCreatePaymentCommand(
		kernel.NewUUID(), orderID, testMoney(t, "10.00"), payment.MethodBoleto,
	)
	require.NoError(t, err)

	orders := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orders).Once(),
		orders.On("Get", mock.Anything, orderID).
			Return(nil, errs.NewObjectNotFoundError("orderID", orderID)).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderPaymentUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreatePaymentCommandHandler(factory)
	_, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestCreatePaymentCommandHandler_Handle_AmountMismatch(t *testing.T) {
	ctx := t.Context()
	target := newTestOrder(t) // amount 42.50

	cmd, err := commands.NewCreatePaymentCommand(
		kernel.NewUUID(), target.ID(), testMoney(t, "10.00"), payment.MethodPix,
	)
	require.NoError(t, err)

	orders := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orders).Once(),
		orders.On("Get", mock.Anything, target.ID()).Return(target, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderPaymentUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreatePaymentCommandHandler(factory)
	_, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestCreatePaymentCommandHandler_Handle_UnresolvedPaymentExists(t *testing.T) {
	ctx := t.Context()
	target := newTestOrder(t)
	open := newTestPayment(t, payment.MethodPix) // PENDING, unresolved

	cmd, err := commands.NewCreatePaymentCommand(
		kernel.NewUUID(), target.ID(), target.Amount(), payment.MethodCardDebit,
	)
	require.NoError(t, err)

	orders := new(MockOrderRepository)
	payments := new(MockPaymentRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orders).Once(),
		orders.On("Get", mock.Anything, target.ID()).Return(target, nil).Once(),
		uow.On("PaymentRepository").Return(payments).Once(),
		payments.On("GetUnresolvedByOrder", mock.Anything, target.ID()).Return(open, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderPaymentUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreatePaymentCommandHandler(factory)
	_, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	payments.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
}
