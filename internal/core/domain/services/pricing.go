package services

import (
	"fmt"
	"math"

	"parcelgo/internal/core/domain/model/kernel"
	"parcelgo/internal/core/domain/model/order"
	"parcelgo/internal/pkg/errs"
)

// PromoKind discriminates how a promo discount is applied.
type PromoKind string

const (
	// PromoFlat subtracts a fixed amount from the quote.
	PromoFlat PromoKind = "flat"
	// PromoPercent subtracts a percentage of the quote.
	PromoPercent PromoKind = "percent"
)

// Promo describes a configured discount. Value is an absolute amount for
// PromoFlat and a percentage in [0, 100] for PromoPercent.
type Promo struct {
	Kind  PromoKind
	Value float64
}

// PricingEngine is a domain service that prices deliveries from distance and
// weight using configured rates.
//
// Formula: amount = base + distanceKm*perKmRate + weightKg*perKgRate, then a
// recognized promo code is applied. Unrecognized promo codes are ignored
// rather than rejected; promo validity is a business concern, not a
// structural one. The discounted amount is floored at zero.
type PricingEngine struct {
	base      float64
	perKmRate float64
	perKgRate float64
	currency  string
	promos    map[string]Promo
}

// NewPricingEngine creates a PricingEngine with the given rates. Rates must
// not be negative and the currency must be a 3-letter code. The promo table
// may be nil.
func NewPricingEngine(base, perKmRate, perKgRate float64, currency string, promos map[string]Promo) (PricingEngine, error) {
	if base < 0 {
		return PricingEngine{}, errs.NewValueIsInvalidErrorWithCause(
			"base", fmt.Errorf("%f is negative", base))
	}
	if perKmRate < 0 {
		return PricingEngine{}, errs.NewValueIsInvalidErrorWithCause(
			"perKmRate", fmt.Errorf("%f is negative", perKmRate))
	}
	if perKgRate < 0 {
		return PricingEngine{}, errs.NewValueIsInvalidErrorWithCause(
			"perKgRate", fmt.Errorf("%f is negative", perKgRate))
	}
	if len(currency) != 3 {
		return PricingEngine{}, errs.NewValueIsInvalidErrorWithCause(
			"currency", fmt.Errorf("%q is not a 3-letter code", currency))
	}

	for code, promo := range promos {
		if promo.Kind != PromoFlat && promo.Kind != PromoPercent {
			return PricingEngine{}, errs.NewValueIsInvalidErrorWithCause(
				"promos", fmt.Errorf("promo %q has unknown kind %q", code, promo.Kind))
		}
		if promo.Value < 0 {
			return PricingEngine{}, errs.NewValueIsInvalidErrorWithCause(
				"promos", fmt.Errorf("promo %q has negative value %f", code, promo.Value))
		}
	}

	return PricingEngine{
		base:      base,
		perKmRate: perKmRate,
		perKgRate: perKgRate,
		currency:  currency,
		promos:    promos,
	}, nil
}

// Quote prices a delivery. Distance and weight must be non-negative; the
// promo code may be empty or unrecognized.
func (p PricingEngine) Quote(distanceKm, weightKg float64, promoCode string) (order.Quote, error) {
	if distanceKm < 0 {
		return order.Quote{}, errs.NewValueIsInvalidErrorWithCause(
			"distanceKm", fmt.Errorf("%f is negative", distanceKm))
	}
	if weightKg < 0 {
		return order.Quote{}, errs.NewValueIsInvalidErrorWithCause(
			"weightKg", fmt.Errorf("%f is negative", weightKg))
	}

	amount := p.base + distanceKm*p.perKmRate + weightKg*p.perKgRate
	amount = p.applyPromo(amount, promoCode)

	price, err := kernel.NewMoney(amount, p.currency)
	if err != nil {
		return order.Quote{}, err
	}

	return order.NewQuote(price, distanceKm, weightKg)
}

// applyPromo applies a configured discount and floors the result at zero.
func (p PricingEngine) applyPromo(amount float64, promoCode string) float64 {
	promo, ok := p.promos[promoCode]
	if !ok {
		return roundToPaise(amount)
	}

	switch promo.Kind {
	case PromoFlat:
		amount -= promo.Value
	case PromoPercent:
		amount -= amount * promo.Value / 100
	}

	return roundToPaise(math.Max(amount, 0))
}

// roundToPaise rounds to two decimal places.
func roundToPaise(amount float64) float64 {
	return math.Round(amount*100) / 100
}
