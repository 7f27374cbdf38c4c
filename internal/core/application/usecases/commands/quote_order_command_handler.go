package commands

import (
	"context"
	"time"

	"parcelgo/internal/core/domain/services"
	"parcelgo/internal/core/ports"
	"parcelgo/internal/pkg/errs"
)

// QuoteOrderCommandHandler prices an order from the great-circle distance
// between its geocoded addresses and the parcel weight, then attaches the
// resulting quote.
//
// Quoting requires both addresses to carry coordinates and the parcel to
// carry a weight; missing inputs fail with a validation error rather than
// being defaulted, so a quote can never silently price a zero distance.
type QuoteOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	pricing    services.PricingEngine
	notifier   ports.StatusNotifier
}

// NewQuoteOrderCommandHandler creates a handler for order pricing.
func NewQuoteOrderCommandHandler(
	uowFactory OrderUoWFactory,
	pricing services.PricingEngine,
	notifier ports.StatusNotifier,
) QuoteOrderCommandHandler {
	return QuoteOrderCommandHandler{
		uowFactory: uowFactory,
		pricing:    pricing,
		notifier:   notifier,
	}
}

// Handle processes the pricing command.
func (h *QuoteOrderCommandHandler) Handle(ctx context.Context, cmd QuoteOrderCommand) error {
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

	if !o.Pickup().HasPoint() || !o.Dropoff().HasPoint() {
		return errs.NewValueIsRequiredError("pickup and dropoff coordinates")
	}
	if !o.Package().HasWeight() {
		return errs.NewValueIsRequiredError("package weight")
	}

	distanceKm, err := o.Pickup().Point().DistanceKm(*o.Dropoff().Point())
	if err != nil {
		return err
	}

	quote, err := h.pricing.Quote(distanceKm, o.Package().WeightKg(), o.PromoCode())
	if err != nil {
		return err
	}

	if err = o.AttachQuote(quote, time.Now()); err != nil {
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
