package commands

import (
	"context"
	"time"

	"parcelgo/internal/core/ports"
)

// CancelOrderCommandHandler abandons an order before delivery.
//
// Cancellation, slot capacity release, and courier availability all share one
// transaction. The aggregate rejects a second cancel as an invalid
// transition, which guarantees the released slot capacity is returned exactly
// once even under client retries.
type CancelOrderCommandHandler struct {
	uowFactory UoWFactory
	notifier   ports.StatusNotifier
}

// NewCancelOrderCommandHandler creates a handler for order cancellation.
func NewCancelOrderCommandHandler(uowFactory UoWFactory, notifier ports.StatusNotifier) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the cancellation command.
func (h *CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
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

	released, err := o.Cancel(cmd.Reason(), time.Now())
	if err != nil {
		return err
	}

	if released != nil {
		if released.SlotID() != nil {
			if err = uow.SlotRepository().Release(ctx, *released.SlotID()); err != nil {
				return err
			}
		}

		courierRepo := uow.CourierRepository()
		freed, courierErr := courierRepo.Get(ctx, released.CourierID())
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

	h.notifier.NotifyStatusChanged(o.ID(), o.Status(), nil)
	return nil
}
