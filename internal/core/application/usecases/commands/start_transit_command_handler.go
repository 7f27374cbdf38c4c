package commands

import (
	"context"
	"time"

	"parcelgo/internal/core/ports"
)

// StartTransitCommandHandler moves an assigned or scheduled order to
// InTransit once the courier confirms pickup.
type StartTransitCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.StatusNotifier
}

// NewStartTransitCommandHandler creates a handler for pickup confirmations.
func NewStartTransitCommandHandler(uowFactory OrderUoWFactory, notifier ports.StatusNotifier) StartTransitCommandHandler {
	return StartTransitCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the pickup confirmation.
func (h *StartTransitCommandHandler) Handle(ctx context.Context, cmd StartTransitCommand) error {
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

	if err = o.StartTransit(time.Now()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.notifier.NotifyStatusChanged(o.ID(), o.Status(), o.Assignment())
	return nil
}
