package commands_test

import (
	"errors"
	"testing"

	"parcelgo/internal/core/application/usecases/commands"
	"parcelgo/internal/core/domain/model/order"
	"parcelgo/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestConfirmOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	o := fixtureQuotedOrder(t, order.ModeOnDemand)
	cmd, err := commands.NewConfirmOrderCommand(o.ID())
	require.NoError(t, err)

	payments := new(MockPaymentGateway)
	payments.On("CreateIntent", mock.Anything, o.Quote().Price()).Return("pi_abc", nil).Once()

	repo := new(MockOrderRepository)
	repo.On("Get", mock.Anything, o.ID()).Return(o, nil).Once()
	repo.On("Update", mock.Anything, o).Return(nil).Once()

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier := new(MockStatusNotifier)
	notifier.On("NotifyStatusChanged", o.ID(), order.Confirmed, (*order.Assignment)(nil)).Once()

	h := commands.NewConfirmOrderCommandHandler(factory, payments, notifier)
	err = h.Handle(ctx, cmd)

	require.NoError(t, err)
	require.Equal(t, order.Confirmed, o.Status())
	require.Equal(t, "pi_abc", o.PaymentIntentID())
	payments.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestConfirmOrderCommandHandler_Handle_IdempotentRetry(t *testing.T) {
	ctx := t.Context()
	o := fixtureConfirmedOrder(t, order.ModeOnDemand)
	cmd, err := commands.NewConfirmOrderCommand(o.ID())
	require.NoError(t, err)

	payments := new(MockPaymentGateway)

	repo := new(MockOrderRepository)
	repo.On("Get", mock.Anything, o.ID()).Return(o, nil).Once()

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewConfirmOrderCommandHandler(factory, payments, new(MockStatusNotifier))
	err = h.Handle(ctx, cmd)

	require.NoError(t, err)
	require.Equal(t, "pi_123", o.PaymentIntentID())
	// Retried confirmation must not create a second payment intent.
	payments.AssertNotCalled(t, "CreateIntent", mock.Anything, mock.Anything)
}

func TestConfirmOrderCommandHandler_Handle_UnquotedOrder(t *testing.T) {
	ctx := t.Context()
	o := fixtureOrder(t, order.ModeOnDemand)
	cmd, err := commands.NewConfirmOrderCommand(o.ID())
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	repo.On("Get", mock.Anything, o.ID()).Return(o, nil).Once()

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewConfirmOrderCommandHandler(factory, new(MockPaymentGateway), new(MockStatusNotifier))
	err = h.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestConfirmOrderCommandHandler_Handle_PaymentGatewayError(t *testing.T) {
	ctx := t.Context()
	o := fixtureQuotedOrder(t, order.ModeOnDemand)
	cmd, err := commands.NewConfirmOrderCommand(o.ID())
	require.NoError(t, err)

	payments := new(MockPaymentGateway)
	payments.On("CreateIntent", mock.Anything, mock.Anything).
		Return("", errors.New("gateway timeout")).Once()

	repo := new(MockOrderRepository)
	repo.On("Get", mock.Anything, o.ID()).Return(o, nil).Once()

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewConfirmOrderCommandHandler(factory, payments, new(MockStatusNotifier))
	err = h.Handle(ctx, cmd)

	require.Error(t, err)
	require.Equal(t, order.Quoted, o.Status())
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}
