package order

import (
	"fmt"

	"parcelgo/internal/pkg/errs"
)

// Status represents the lifecycle state of an order. It implements a closed
// state machine with an explicit transition table so orders can only move
// along the defined business workflow.
//
// State transitions:
//
//	Created ──> Quoted ──> Confirmed ──┬──> Assigned ───┬──> InTransit ──> Delivered
//	                                   └──> Scheduled ──┘
//
// Cancelled is reachable from every non-terminal state. Assigned applies to
// on-demand orders, Scheduled to slot-booked orders; both proceed to
// InTransit once the courier confirms pickup.
//
// Status is a value object that validates state transitions and provides
// string representations for persistence and display.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Created is the initial status when an order is first placed.
	Created

	// Quoted indicates a priced estimate has been attached.
	Quoted

	// Confirmed indicates the user accepted the quote and a payment intent
	// was recorded. Orders in this status are waiting for planning.
	Confirmed

	// Assigned indicates an on-demand order has a courier bound to it.
	Assigned

	// Scheduled indicates a scheduled order has a courier and a reserved
	// time slot bound to it.
	Scheduled

	// InTransit indicates the courier confirmed pickup and the parcel is on
	// its way.
	InTransit

	// Delivered indicates the order was completed. Terminal.
	Delivered

	// Cancelled indicates the order was abandoned before delivery. Terminal.
	Cancelled
)

// getStatusStrings returns the wire representation for every Status value.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "UNKNOWN",
		Created:   "CREATED",
		Quoted:    "QUOTED",
		Confirmed: "CONFIRMED",
		Assigned:  "ASSIGNED",
		Scheduled: "SCHEDULED",
		InTransit: "IN_TRANSIT",
		Delivered: "DELIVERED",
		Cancelled: "CANCELLED",
	}
}

// getValidStatusStrings returns only valid Status values to support
// validation.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Created:   "CREATED",
		Quoted:    "QUOTED",
		Confirmed: "CONFIRMED",
		Assigned:  "ASSIGNED",
		Scheduled: "SCHEDULED",
		InTransit: "IN_TRANSIT",
		Delivered: "DELIVERED",
		Cancelled: "CANCELLED",
	}
}

// StatusFromString parses the wire representation of a status.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"status", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is one of the defined states.
// Unknown (0) and any other values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire name of the status, "UNKNOWN" for invalid values.
// Implements fmt.Stringer and is safe on any Status value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsTerminal reports whether the status permits no further transitions.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// ValidateCanHaveAssignment validates consistency between the status and the
// presence of an assignment. An assignment may exist only once planning
// succeeded, i.e. in Assigned, Scheduled, InTransit, or Delivered.
func (s Status) ValidateCanHaveAssignment(hasAssignment bool) error {
	assignable := s == Assigned || s == Scheduled || s == InTransit || s == Delivered

	if hasAssignment && !assignable {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to have an assignment", s.String()),
		)
	}

	if !hasAssignment && (s == Assigned || s == Scheduled || s == InTransit) {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to have no assignment", s.String()),
		)
	}

	return nil
}

// AttachQuote transitions the status to Quoted.
//
// Valid transitions:
//   - Created -> Quoted
//
// Returns (0, InvalidStateError) for every other starting state.
func (s Status) AttachQuote() (Status, error) {
	if s != Created {
		return 0, errs.NewInvalidStateError("attach quote", s.String())
	}

	return Quoted, nil
}

// Confirm transitions the status to Confirmed.
//
// Valid transitions:
//   - Quoted -> Confirmed
//
// Returns (0, InvalidStateError) for every other starting state. Idempotent
// handling of repeated confirmations lives on the aggregate, which knows the
// payment intent involved.
func (s Status) Confirm() (Status, error) {
	if s != Quoted {
		return 0, errs.NewInvalidStateError("confirm", s.String())
	}

	return Confirmed, nil
}

// Assign transitions the status out of Confirmed according to the order's
// fulfillment mode: Assigned for on-demand orders, Scheduled for slot-booked
// ones.
//
// Returns (0, InvalidStateError) when the order is not Confirmed, or a
// validation error for an invalid mode.
func (s Status) Assign(mode FulfillmentMode) (Status, error) {
	if err := mode.Validate(); err != nil {
		return 0, err
	}

	if s != Confirmed {
		return 0, errs.NewInvalidStateError("assign", s.String())
	}

	if mode == ModeScheduled {
		return Scheduled, nil
	}
	return Assigned, nil
}

// StartTransit transitions the status to InTransit once the courier confirms
// pickup.
//
// Valid transitions:
//   - Assigned -> InTransit
//   - Scheduled -> InTransit
//
// Returns (0, InvalidStateError) for every other starting state.
func (s Status) StartTransit() (Status, error) {
	if s != Assigned && s != Scheduled {
		return 0, errs.NewInvalidStateError("start transit", s.String())
	}

	return InTransit, nil
}

// Complete transitions the status to Delivered.
//
// Valid transitions:
//   - InTransit -> Delivered
//
// Returns (0, InvalidStateError) for every other starting state. Delivered is
// terminal.
func (s Status) Complete() (Status, error) {
	if s != InTransit {
		return 0, errs.NewInvalidStateError("complete", s.String())
	}

	return Delivered, nil
}

// Cancel transitions the status to Cancelled. Legal from every valid
// non-terminal state; Delivered and Cancelled orders cannot be cancelled.
//
// Returns (0, InvalidStateError) for terminal or invalid starting states.
func (s Status) Cancel() (Status, error) {
	if err := s.Validate(); err != nil {
		return 0, errs.NewInvalidStateErrorWithCause("cancel", s.String(), err)
	}

	if s.IsTerminal() {
		return 0, errs.NewInvalidStateError("cancel", s.String())
	}

	return Cancelled, nil
}
