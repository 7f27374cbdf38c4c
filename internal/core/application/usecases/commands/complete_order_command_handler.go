package commands

import (
	"context"
	"time"

	"parcelgo/internal/core/domain/model/kernel"
	"parcelgo/internal/core/ports"
	"parcelgo/internal/pkg/errs"
)

// CompleteOrderCommandHandler settles an in-transit order and frees its
// courier for the next assignment.
type CompleteOrderCommandHandler struct {
	uowFactory UoWFactory
	notifier   ports.StatusNotifier
}

// NewCompleteOrderCommandHandler creates a handler for delivery completion.
func NewCompleteOrderCommandHandler(uowFactory UoWFactory, notifier ports.StatusNotifier) CompleteOrderCommandHandler {
	return CompleteOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the completion command.
func (h *CompleteOrderCommandHandler) Handle(ctx context.Context, cmd CompleteOrderCommand) error {
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

	var finalAmount kernel.Money
	switch {
	case cmd.FinalAmount() != nil:
		finalAmount = *cmd.FinalAmount()
	case o.Quote() != nil:
		finalAmount = o.Quote().Price()
	default:
		return errs.NewValueIsRequiredError("finalAmount")
	}

	assignment := o.Assignment()

	if err = o.Complete(finalAmount, time.Now()); err != nil {
		return err
	}

	if assignment != nil {
		courierRepo := uow.CourierRepository()
		freed, courierErr := courierRepo.Get(ctx, assignment.CourierID())
		if courierErr != nil {
			return courierErr
		}
		freed.MarkAvailable()

		if err = courierRepo.Update(ctx, freed); err != nil {
			return err
		}
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
