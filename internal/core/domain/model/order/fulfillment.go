package order

import (
	"fmt"

	"parcelgo/internal/pkg/errs"
)

// FulfillmentMode describes how a delivery is dispatched: immediately
// (ModeOnDemand) or booked into a future time window (ModeScheduled).
type FulfillmentMode int

const (
	// ModeUnknown represents an invalid or undefined fulfillment mode.
	ModeUnknown FulfillmentMode = iota

	// ModeOnDemand dispatches the delivery immediately after confirmation.
	ModeOnDemand

	// ModeScheduled books the delivery into a capacity-bounded time slot.
	ModeScheduled
)

func getModeStrings() map[FulfillmentMode]string {
	return map[FulfillmentMode]string{
		ModeOnDemand:  "ON_DEMAND",
		ModeScheduled: "SCHEDULED",
	}
}

// ModeFromString parses the wire representation of a fulfillment mode.
func ModeFromString(s string) (FulfillmentMode, error) {
	for mode, str := range getModeStrings() {
		if str == s {
			return mode, nil
		}
	}
	return ModeUnknown, errs.NewValueIsInvalidErrorWithCause(
		"fulfillmentMode", fmt.Errorf("%q is not a valid fulfillment mode", s))
}

// Validate checks if the mode is one of the defined values.
func (m FulfillmentMode) Validate() error {
	if _, ok := getModeStrings()[m]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"fulfillmentMode", fmt.Errorf("%d is not a valid fulfillment mode", m))
	}
	return nil
}

// String implements fmt.Stringer.
func (m FulfillmentMode) String() string {
	if str, ok := getModeStrings()[m]; ok {
		return str
	}
	return "UNKNOWN"
}

// PaymentMethod is the settlement method chosen at order creation.
type PaymentMethod string

const (
	// PaymentCOD settles in cash on delivery.
	PaymentCOD PaymentMethod = "cod"
	// PaymentWallet settles from the user's wallet balance.
	PaymentWallet PaymentMethod = "wallet"
	// PaymentCard settles through a card payment intent.
	PaymentCard PaymentMethod = "card"
)

// Validate checks if the payment method is one of the supported values.
func (p PaymentMethod) Validate() error {
	switch p {
	case PaymentCOD, PaymentWallet, PaymentCard:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause(
			"paymentMethod", fmt.Errorf("%q is not a supported payment method", string(p)))
	}
}
