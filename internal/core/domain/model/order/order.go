package order

import (
	"errors"
	"fmt"
	"time"

	"parcelgo/internal/core/domain/model/kernel"
	"parcelgo/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through the NewOrder or RestoreOrder factory functions.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")
)

// Order represents a delivery order in the marketplace. It is the aggregate
// root that manages the order lifecycle from creation through quoting,
// confirmation and assignment to completion.
//
// Order maintains these invariants:
//   - scheduledAt is set if and only if the fulfillment mode is ModeScheduled
//   - an assignment exists only in the Assigned, Scheduled, InTransit, or Delivered statuses
//   - the quote, once attached, is only ever replaced wholesale, never mutated
//   - status moves only along the transitions defined by Status
//   - orders are never deleted; they end in a terminal status
//
// The struct uses private fields to ensure encapsulation and guards its
// invariants through validated methods.
type Order struct {
	id     kernel.UUID
	userID kernel.UUID

	mode        FulfillmentMode
	scheduledAt *time.Time

	pickup  Address
	dropoff Address
	pkg     Package

	paymentMethod PaymentMethod
	promoCode     string

	status          Status
	quote           *Quote
	paymentIntentID string
	assignment      *Assignment
	finalAmount     *kernel.Money
	cancelReason    string

	createdAt time.Time
	updatedAt time.Time

	isConstructed bool
}

// NewOrder creates a new Order in the Created status. This is the only way to
// place an order, ensuring every business invariant holds from the start.
//
// Validation rules:
//   - id and userID must be valid UUIDs
//   - mode must be a defined fulfillment mode
//   - scheduledAt is required for ModeScheduled, must lie in the future, and
//     is forbidden for ModeOnDemand
//   - pickup and dropoff must be constructed addresses (addr1 present)
//   - pkg must be a constructed package
//   - paymentMethod must be one of the supported methods
func NewOrder(
	id kernel.UUID,
	userID kernel.UUID,
	mode FulfillmentMode,
	scheduledAt *time.Time,
	pickup Address,
	dropoff Address,
	pkg Package,
	paymentMethod PaymentMethod,
	promoCode string,
	now time.Time,
) (*Order, error) {
	o := &Order{
		promoCode:     promoCode,
		status:        Created,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setUserID(userID),
		o.setMode(mode),
		o.setScheduledAt(mode, scheduledAt, now),
		o.setPickup(pickup),
		o.setDropoff(dropoff),
		o.setPackage(pkg),
		o.setPaymentMethod(paymentMethod),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrderParams carries the persisted state needed to reconstruct an
// Order aggregate from storage.
type RestoreOrderParams struct {
	ID              kernel.UUID
	UserID          kernel.UUID
	Mode            FulfillmentMode
	ScheduledAt     *time.Time
	Pickup          Address
	Dropoff         Address
	Package         Package
	PaymentMethod   PaymentMethod
	PromoCode       string
	Status          Status
	Quote           *Quote
	PaymentIntentID string
	Assignment      *Assignment
	FinalAmount     *kernel.Money
	CancelReason    string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// RestoreOrder reconstructs an Order from persistence, re-validating its
// structural invariants. Unlike NewOrder it does not require scheduledAt to
// still lie in the future, since restored orders may legitimately reference
// past windows.
func RestoreOrder(p RestoreOrderParams) (*Order, error) {
	o := &Order{
		promoCode:       p.PromoCode,
		paymentIntentID: p.PaymentIntentID,
		cancelReason:    p.CancelReason,
		createdAt:       p.CreatedAt,
		updatedAt:       p.UpdatedAt,
		isConstructed:   true,
	}

	if err := errors.Join(
		o.setID(p.ID),
		o.setUserID(p.UserID),
		o.setMode(p.Mode),
		o.setPickup(p.Pickup),
		o.setDropoff(p.Dropoff),
		o.setPackage(p.Package),
		o.setPaymentMethod(p.PaymentMethod),
		p.Status.Validate(),
		p.Status.ValidateCanHaveAssignment(p.Assignment != nil),
	); err != nil {
		return nil, err
	}

	if (p.Mode == ModeScheduled) != (p.ScheduledAt != nil) {
		return nil, errs.NewValueIsInvalidErrorWithCause("scheduledAt",
			fmt.Errorf("scheduledAt presence does not match mode %s", p.Mode))
	}
	if p.ScheduledAt != nil {
		t := *p.ScheduledAt
		o.scheduledAt = &t
	}

	o.status = p.Status

	if p.Quote != nil {
		if err := p.Quote.Validate(); err != nil {
			return nil, err
		}
		q := *p.Quote
		o.quote = &q
	}

	if p.Assignment != nil {
		if err := p.Assignment.Validate(); err != nil {
			return nil, err
		}
		a := *p.Assignment
		o.assignment = &a
	}

	if p.FinalAmount != nil {
		if err := p.FinalAmount.Validate(); err != nil {
			return nil, err
		}
		m := *p.FinalAmount
		o.finalAmount = &m
	}

	return o, nil
}

// Validate ensures the Order instance was properly constructed through a
// factory function, preventing use of directly instantiated structs.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID { return o.id }

// UserID returns the owning user's identifier.
func (o *Order) UserID() kernel.UUID { return o.userID }

// Mode returns the fulfillment mode.
func (o *Order) Mode() FulfillmentMode { return o.mode }

// ScheduledAt returns the requested delivery time for scheduled orders,
// nil for on-demand orders.
func (o *Order) ScheduledAt() *time.Time { return o.scheduledAt }

// Pickup returns the pickup address.
func (o *Order) Pickup() Address { return o.pickup }

// Dropoff returns the dropoff address.
func (o *Order) Dropoff() Address { return o.dropoff }

// Package returns the parcel attributes.
func (o *Order) Package() Package { return o.pkg }

// PaymentMethod returns the chosen settlement method.
func (o *Order) PaymentMethod() PaymentMethod { return o.paymentMethod }

// PromoCode returns the promo code supplied at creation; may be empty.
func (o *Order) PromoCode() string { return o.promoCode }

// Status returns the current lifecycle status.
func (o *Order) Status() Status { return o.status }

// Quote returns the latest attached quote, nil before quoting.
func (o *Order) Quote() *Quote { return o.quote }

// PaymentIntentID returns the payment intent recorded at confirmation;
// empty before confirmation.
func (o *Order) PaymentIntentID() string { return o.paymentIntentID }

// Assignment returns the current assignment, nil when planning has not
// succeeded or the order was cancelled.
func (o *Order) Assignment() *Assignment { return o.assignment }

// FinalAmount returns the settled amount, nil before delivery.
func (o *Order) FinalAmount() *kernel.Money { return o.finalAmount }

// CancelReason returns the reason recorded at cancellation; empty otherwise.
func (o *Order) CancelReason() string { return o.cancelReason }

// CreatedAt returns the creation timestamp.
func (o *Order) CreatedAt() time.Time { return o.createdAt }

// UpdatedAt returns the last mutation timestamp.
func (o *Order) UpdatedAt() time.Time { return o.updatedAt }

// AttachQuote attaches a priced estimate and transitions the order to Quoted.
// Legal only from Created; any other state yields an InvalidStateError and
// leaves the order untouched.
func (o *Order) AttachQuote(quote Quote, now time.Time) error {
	if err := quote.Validate(); err != nil {
		return err
	}

	newStatus, err := o.status.AttachQuote()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.quote = &quote
	o.touch(now)
	return nil
}

// Confirm records the payment intent and transitions the order to Confirmed.
// Legal only from Quoted. Repeated confirmation with the same intent id is a
// no-op so client retries are tolerated; a different intent id against an
// already confirmed order is rejected as an invalid transition.
func (o *Order) Confirm(paymentIntentID string, now time.Time) error {
	if paymentIntentID == "" {
		return errs.NewValueIsRequiredError("paymentIntentID")
	}

	if o.status == Confirmed && o.paymentIntentID == paymentIntentID {
		return nil
	}

	newStatus, err := o.status.Confirm()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.paymentIntentID = paymentIntentID
	o.touch(now)
	return nil
}

// AssignTo binds a planned assignment to the order and transitions it to
// Assigned (on-demand) or Scheduled (slot-booked) according to the
// fulfillment mode. Legal only from Confirmed. Scheduled orders require the
// assignment to reference a reserved slot; on-demand assignments must not.
func (o *Order) AssignTo(assignment Assignment, now time.Time) error {
	if err := assignment.Validate(); err != nil {
		return err
	}

	if o.mode == ModeScheduled && assignment.SlotID() == nil {
		return errs.NewValueIsRequiredError("slotID")
	}
	if o.mode == ModeOnDemand && assignment.SlotID() != nil {
		return errs.NewValueIsInvalidErrorWithCause("slotID",
			errors.New("on-demand assignment must not reference a slot"))
	}

	newStatus, err := o.status.Assign(o.mode)
	if err != nil {
		return err
	}

	o.status = newStatus
	o.assignment = &assignment
	o.touch(now)
	return nil
}

// StartTransit marks the courier pickup confirmation and transitions the
// order to InTransit. Legal only from Assigned or Scheduled.
func (o *Order) StartTransit(now time.Time) error {
	newStatus, err := o.status.StartTransit()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.touch(now)
	return nil
}

// Complete settles the order with its final amount and transitions it to
// Delivered. Legal only from InTransit. The final amount may differ from the
// quote.
func (o *Order) Complete(finalAmount kernel.Money, now time.Time) error {
	if err := finalAmount.Validate(); err != nil {
		return err
	}

	newStatus, err := o.status.Complete()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.finalAmount = &finalAmount
	o.touch(now)
	return nil
}

// Cancel transitions the order to Cancelled and detaches any assignment,
// returning the detached assignment so the caller can release reserved slot
// capacity. Legal from every non-terminal state; returns InvalidStateError
// from Delivered or Cancelled, which guarantees a retried cancellation can
// never release capacity twice.
func (o *Order) Cancel(reason string, now time.Time) (*Assignment, error) {
	newStatus, err := o.status.Cancel()
	if err != nil {
		return nil, err
	}

	released := o.assignment
	o.status = newStatus
	o.assignment = nil
	o.cancelReason = reason
	o.touch(now)
	return released, nil
}

func (o *Order) touch(now time.Time) {
	o.updatedAt = now
}

// setID validates and sets the order's unique identifier.
// This is a private method used only during construction.
func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("userID", err)
	}
	o.userID = userID
	return nil
}

func (o *Order) setMode(mode FulfillmentMode) error {
	if err := mode.Validate(); err != nil {
		return err
	}
	o.mode = mode
	return nil
}

// setScheduledAt enforces the scheduledAt/mode pairing invariant at creation
// time: required and in the future for scheduled orders, forbidden otherwise.
func (o *Order) setScheduledAt(mode FulfillmentMode, scheduledAt *time.Time, now time.Time) error {
	if mode == ModeScheduled {
		if scheduledAt == nil {
			return errs.NewValueIsRequiredError("scheduledAt")
		}
		if !scheduledAt.After(now) {
			return errs.NewValueIsInvalidErrorWithCause("scheduledAt",
				fmt.Errorf("%s is not in the future", scheduledAt.Format(time.RFC3339)))
		}
		t := *scheduledAt
		o.scheduledAt = &t
		return nil
	}

	if scheduledAt != nil {
		return errs.NewValueIsInvalidErrorWithCause("scheduledAt",
			errors.New("on-demand orders must not carry a scheduled time"))
	}
	return nil
}

func (o *Order) setPickup(pickup Address) error {
	if err := pickup.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("pickup", err)
	}
	o.pickup = pickup
	return nil
}

func (o *Order) setDropoff(dropoff Address) error {
	if err := dropoff.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("dropoff", err)
	}
	o.dropoff = dropoff
	return nil
}

func (o *Order) setPackage(pkg Package) error {
	if err := pkg.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("package", err)
	}
	o.pkg = pkg
	return nil
}

func (o *Order) setPaymentMethod(paymentMethod PaymentMethod) error {
	if err := paymentMethod.Validate(); err != nil {
		return err
	}
	o.paymentMethod = paymentMethod
	return nil
}
