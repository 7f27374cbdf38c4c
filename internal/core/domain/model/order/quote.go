package order

import (
	"errors"
	"fmt"

	"parcelgo/internal/core/domain/model/kernel"
	"parcelgo/internal/pkg/errs"
	"parcelgo/internal/pkg/guard"
)

// ErrQuoteIsNotConstructed is returned when attempting to use an improperly
// initialized Quote. Quotes must be created via NewQuote.
var ErrQuoteIsNotConstructed = errs.NewValueIsRequiredError(
	"quote must be created via NewQuote constructor")

// Quote is an immutable priced estimate for a delivery. Besides the monetary
// amount it records the distance and weight it was computed from, so a quote
// can always be audited against its inputs. A new quote supersedes the old
// one wholesale; quotes are never mutated in place.
type Quote struct { //nolint:recvcheck //using for validation
	price      kernel.Money
	distanceKm float64
	weightKg   float64

	guard guard.ConstructorGuard
}

// NewQuote creates a Quote from a priced amount and the inputs that produced
// it. Distance and weight must be non-negative.
func NewQuote(price kernel.Money, distanceKm float64, weightKg float64) (Quote, error) {
	q := Quote{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		q.setPrice(price),
		q.setDistanceKm(distanceKm),
		q.setWeightKg(weightKg),
	); err != nil {
		return Quote{}, err
	}

	return q, nil
}

// Validate checks that the Quote was created through NewQuote.
func (q Quote) Validate() error {
	return q.guard.Validate(ErrQuoteIsNotConstructed)
}

// Price returns the quoted amount and currency.
func (q Quote) Price() kernel.Money { return q.price }

// DistanceKm returns the distance the quote was computed from.
func (q Quote) DistanceKm() float64 { return q.distanceKm }

// WeightKg returns the weight the quote was computed from.
func (q Quote) WeightKg() float64 { return q.weightKg }

func (q *Quote) setPrice(price kernel.Money) error {
	if err := price.Validate(); err != nil {
		return err
	}

	q.price = price
	return nil
}

func (q *Quote) setDistanceKm(distanceKm float64) error {
	if distanceKm < 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"distanceKm", fmt.Errorf("%f is negative", distanceKm))
	}

	q.distanceKm = distanceKm
	return nil
}

func (q *Quote) setWeightKg(weightKg float64) error {
	if weightKg < 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"weightKg", fmt.Errorf("%f is negative", weightKg))
	}

	q.weightKg = weightKg
	return nil
}
