package commands

import (
	"context"
	"time"

	"parcelgo/internal/core/domain/model/order"
	"parcelgo/internal/core/ports"
	"parcelgo/internal/pkg/errs"
)

// ConfirmOrderCommandHandler handles quote acceptance. It creates a payment
// intent for the quoted amount and moves the order to Confirmed.
//
// Confirmation is idempotent: a retried confirmation against an already
// confirmed order returns success without creating a second payment intent.
type ConfirmOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	payments   ports.PaymentGateway
	notifier   ports.StatusNotifier
}

// NewConfirmOrderCommandHandler creates a handler for order confirmation.
func NewConfirmOrderCommandHandler(
	uowFactory OrderUoWFactory,
	payments ports.PaymentGateway,
	notifier ports.StatusNotifier,
) ConfirmOrderCommandHandler {
	return ConfirmOrderCommandHandler{
		uowFactory: uowFactory,
		payments:   payments,
		notifier:   notifier,
	}
}

// Handle processes the confirmation command.
func (h *ConfirmOrderCommandHandler) Handle(ctx context.Context, cmd ConfirmOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	// Retried confirmation: the intent already exists, nothing to redo.
	if o.Status() == order.Confirmed && o.PaymentIntentID() != "" {
		return nil
	}

	if o.Quote() == nil {
		return errs.NewValueIsRequiredError("quote")
	}

	intentID, err := h.payments.CreateIntent(ctx, o.Quote().Price())
	if err != nil {
		return err
	}

	if err = o.Confirm(intentID, time.Now()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.notifier.NotifyStatusChanged(o.ID(), o.Status(), nil)
	return nil
}
