package order

import (
	"errors"
	"fmt"

	"parcelgo/internal/core/domain/model/kernel"
	"parcelgo/internal/pkg/errs"
	"parcelgo/internal/pkg/guard"
)

// ErrAssignmentIsNotConstructed is returned when attempting to use an
// improperly initialized Assignment. Assignments must be created via
// NewAssignment.
var ErrAssignmentIsNotConstructed = errs.NewValueIsRequiredError(
	"assignment must be created via NewAssignment constructor")

// Assignment is an immutable value object binding a courier (and, for
// scheduled orders, a reserved slot) to an order together with the computed
// ETA. Re-assignment replaces the whole value; it is never partially mutated.
type Assignment struct { //nolint:recvcheck //using for validation
	courierID    kernel.UUID
	vehiclePlate string
	etaMinutes   int
	slotID       *kernel.UUID

	guard guard.ConstructorGuard
}

// NewAssignment creates an Assignment. The courier id must be valid, the ETA
// must not be negative, and slotID is required exactly for scheduled orders
// (the aggregate enforces mode consistency when the assignment is attached).
func NewAssignment(
	courierID kernel.UUID,
	vehiclePlate string,
	etaMinutes int,
	slotID *kernel.UUID,
) (Assignment, error) {
	a := Assignment{
		vehiclePlate: vehiclePlate,
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		a.setCourierID(courierID),
		a.setEtaMinutes(etaMinutes),
		a.setSlotID(slotID),
	); err != nil {
		return Assignment{}, err
	}

	return a, nil
}

// Validate checks that the Assignment was created through NewAssignment.
func (a Assignment) Validate() error {
	return a.guard.Validate(ErrAssignmentIsNotConstructed)
}

// CourierID returns the assigned courier's identifier.
func (a Assignment) CourierID() kernel.UUID { return a.courierID }

// VehiclePlate returns the courier's vehicle identifier; may be empty.
func (a Assignment) VehiclePlate() string { return a.vehiclePlate }

// EtaMinutes returns the estimated time of arrival in whole minutes.
func (a Assignment) EtaMinutes() int { return a.etaMinutes }

// SlotID returns the reserved slot's identifier, or nil for on-demand
// assignments.
func (a Assignment) SlotID() *kernel.UUID { return a.slotID }

func (a *Assignment) setCourierID(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}

	a.courierID = courierID
	return nil
}

func (a *Assignment) setEtaMinutes(etaMinutes int) error {
	if etaMinutes < 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"etaMinutes", fmt.Errorf("%d is negative", etaMinutes))
	}

	a.etaMinutes = etaMinutes
	return nil
}

func (a *Assignment) setSlotID(slotID *kernel.UUID) error {
	if slotID != nil {
		if err := slotID.Validate(); err != nil {
			return err
		}
		id := *slotID
		a.slotID = &id
	}
	return nil
}
