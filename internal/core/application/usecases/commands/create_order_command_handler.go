package commands

import (
	"context"
	"errors"
	"time"

	"parcelgo/internal/core/domain/model/order"
	"parcelgo/internal/core/ports"
	"parcelgo/internal/pkg/errs"
)

// CreateOrderCommandHandler handles the business logic for order placement.
// Enriches addresses with geocoded coordinates when they are missing and
// persists the new order in Created status.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	geocoder   ports.Geocoder
	notifier   ports.StatusNotifier
}

// NewCreateOrderCommandHandler creates a handler for order placement.
func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	geocoder ports.Geocoder,
	notifier ports.StatusNotifier,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		geocoder:   geocoder,
		notifier:   notifier,
	}
}

// Handle processes the order placement command. Addresses without coordinates
// are geocoded best-effort; an unresolvable address leaves the coordinates
// unset, which later blocks quoting and assignment rather than failing the
// placement itself.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	pickup, err := h.resolvePoint(ctx, cmd.Pickup())
	if err != nil {
		return err
	}

	dropoff, err := h.resolvePoint(ctx, cmd.Dropoff())
	if err != nil {
		return err
	}

	newOrder, err := order.NewOrder(
		cmd.OrderID(),
		cmd.UserID(),
		cmd.Mode(),
		cmd.ScheduledAt(),
		pickup,
		dropoff,
		cmd.Package(),
		cmd.PaymentMethod(),
		cmd.PromoCode(),
		time.Now(),
	)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, newOrder); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.notifier.NotifyStatusChanged(newOrder.ID(), newOrder.Status(), nil)
	return nil
}

// resolvePoint geocodes an address lacking coordinates. An unresolvable
// address is tolerated; any other geocoder failure aborts the command.
func (h *CreateOrderCommandHandler) resolvePoint(ctx context.Context, addr order.Address) (order.Address, error) {
	if addr.HasPoint() {
		return addr, nil
	}

	point, err := h.geocoder.Resolve(ctx, addr)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return addr, nil
		}
		return order.Address{}, err
	}

	return addr.WithPoint(point)
}
