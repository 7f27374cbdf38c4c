package kernel

import (
	"errors"
	"fmt"

	"parcelgo/internal/pkg/errs"
	"parcelgo/internal/pkg/guard"
)

// ErrMoneyIsNotConstructed is returned when attempting to use an improperly
// initialized Money value. Money must be created via NewMoney.
var ErrMoneyIsNotConstructed = errs.NewValueIsRequiredError(
	"money must be created via NewMoney constructor")

// Money is an immutable monetary amount with its ISO 4217 currency code.
// Amounts are never negative; quotes and settlement amounts both use it.
type Money struct { //nolint:recvcheck //using for validation
	amount   float64
	currency string
	guard    guard.ConstructorGuard
}

// NewMoney creates a Money value. The amount must be non-negative and the
// currency code must be a three-letter code such as "INR".
func NewMoney(amount float64, currency string) (Money, error) {
	m := Money{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(m.setAmount(amount), m.setCurrency(currency)); err != nil {
		return Money{}, err
	}

	return m, nil
}

// Validate checks that the Money value was created through NewMoney.
func (m Money) Validate() error {
	return m.guard.Validate(ErrMoneyIsNotConstructed)
}

// Amount returns the monetary amount.
func (m Money) Amount() float64 {
	return m.amount
}

// Currency returns the ISO 4217 currency code.
func (m Money) Currency() string {
	return m.currency
}

// String implements fmt.Stringer, e.g. "140.00 INR".
func (m Money) String() string {
	return fmt.Sprintf("%.2f %s", m.amount, m.currency)
}

// IsEqual compares two Money values by amount and currency. Both values must
// be properly constructed.
func (m Money) IsEqual(other Money) (bool, error) {
	if err := errors.Join(m.Validate(), other.Validate()); err != nil {
		return false, err
	}

	return m.amount == other.amount && m.currency == other.currency, nil
}

func (m *Money) setAmount(amount float64) error {
	if amount < 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"amount", fmt.Errorf("%f is negative", amount))
	}

	m.amount = amount
	return nil
}

func (m *Money) setCurrency(currency string) error {
	if len(currency) != 3 {
		return errs.NewValueIsInvalidErrorWithCause(
			"currency", fmt.Errorf("%q is not a three-letter currency code", currency))
	}

	m.currency = currency
	return nil
}
