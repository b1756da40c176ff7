package commands_test

import (
	"testing"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/payment"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUpdateOrderStatusCommandHandler_Handle_PublishesAfterCommit(t *testing.T) {
	ctx := t.Context()
	target := newTestOrder(t)
	require.NoError(t, target.ChangeStatus(order.StatusConfirmed, time.Now()))

	cmd, err := commands.NewUpdateOrderStatusCommand(target.ID(), order.StatusPreparing, false)
	require.NoError(t, err)

	orders := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orders).Once(),
		orders.On("Get", mock.Anything, target.ID()).Return(target, nil).Once(),
		uow.On("OrderRepository").Return(orders).Once(),
		orders.On("Update", mock.Anything, target).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderPaymentUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockTrackingPublisher)
	publisher.On("PublishStatusChanged", mock.MatchedBy(func(e ports.StatusChangedEvent) bool {
		return e.OrderID.IsEqual(target.ID()) && e.Status == "PREPARING"
	})).Once()

	h := commands.NewUpdateOrderStatusCommandHandler(factory, publisher)
	require.NoError(t, h.Handle(ctx, cmd))
	require.Equal(t, order.StatusPreparing, target.Status())
	orders.AssertExpectations(t)
	uow.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestUpdateOrderStatusCommandHandler_Handle_InvalidTransition(t *testing.T) {
	ctx := t.Context()
	target := newTestOrder(t) // PENDING

	cmd, err := commands.NewUpdateOrderStatusCommand(target.ID(), order.StatusDelivered, false)
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

	publisher := new(MockTrackingPublisher)

	h := commands.NewUpdateOrderStatusCommandHandler(factory, publisher)
	err = h.Handle(ctx, cmd)
	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrInvalidTransition)
	require.Equal(t, order.StatusPending, target.Status())
	publisher.AssertNotCalled(t, "PublishStatusChanged", mock.Anything)
}

func TestUpdateOrderStatusCommandHandler_Handle_ForceSkipsEdges(t *testing.T) {
	ctx := t.Context()
	target := newTestOrder(t) // PENDING

	cmd, err := commands.NewUpdateOrderStatusCommand(target.ID(), order.StatusDelivered, true)
	require.NoError(t, err)

	orders := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orders).Once(),
		orders.On("Get", mock.Anything, target.ID()).Return(target, nil).Once(),
		uow.On("OrderRepository").Return(orders).Once(),
		orders.On("Update", mock.Anything, target).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderPaymentUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockTrackingPublisher)
	publisher.On("PublishStatusChanged", mock.Anything).Once()

	h := commands.NewUpdateOrderStatusCommandHandler(factory, publisher)
	require.NoError(t, h.Handle(ctx, cmd))
	require.Equal(t, order.StatusDelivered, target.Status())
	publisher.AssertExpectations(t)
}

func TestUpdateOrderStatusCommandHandler_Handle_RefusedPaymentBlocksConfirm(t *testing.T) {
	ctx := t.Context()
	target := newTestOrder(t) // PENDING
	refused := newRefusedPayment(t, payment.MethodCardCredit)

	cmd, err := commands.NewUpdateOrderStatusCommand(target.ID(), order.StatusConfirmed, false)
	require.NoError(t, err)

	orders := new(MockOrderRepository)
	payments := new(MockPaymentRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orders).Once(),
		orders.On("Get", mock.Anything, target.ID()).Return(target, nil).Once(),
		uow.On("PaymentRepository").Return(payments).Once(),
		payments.On("GetLatestByOrder", mock.Anything, target.ID()).Return(refused, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderPaymentUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockTrackingPublisher)

	h := commands.NewUpdateOrderStatusCommandHandler(factory, publisher)
	err = h.Handle(ctx, cmd)
	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrInvalidTransition)
	require.Equal(t, order.StatusPending, target.Status())
	payments.AssertExpectations(t)
	publisher.AssertNotCalled(t, "PublishStatusChanged", mock.Anything)
}
