package slot

import (
	"errors"
	"fmt"
	"time"

	"parcelgo/internal/core/domain/model/kernel"
	"parcelgo/internal/pkg/errs"
	"parcelgo/internal/pkg/guard"
)

// ErrSlotIsNotConstructed indicates that the Slot was not properly
// initialized through the NewSlot or RestoreSlot constructor functions.
var ErrSlotIsNotConstructed = errors.New("Slot must be created via NewSlot or RestoreSlot")

// Slot represents a bookable delivery window with finite capacity. It is a
// domain entity that tracks how many scheduled orders currently occupy the
// window.
//
// Key business rules:
//   - The window end must lie strictly after its start
//   - Capacity is fixed at creation and must be positive
//   - used never exceeds capacity and never drops below zero
//   - Reserving a full slot fails with SlotFullError
//
// Slot guards its in-memory invariants; under concurrent reservations the
// persistence layer must additionally enforce the capacity bound with a
// conditional update.
type Slot struct {
	id kernel.UUID

	startAt time.Time
	endAt   time.Time

	capacity int
	used     int

	guard guard.ConstructorGuard
}

// NewSlot creates an empty Slot for the given window.
//
// Validation rules:
//   - id must be a valid UUID
//   - endAt must be strictly after startAt
//   - capacity must be greater than 0
func NewSlot(id kernel.UUID, startAt, endAt time.Time, capacity int) (*Slot, error) {
	s := &Slot{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		s.setID(id),
		s.setWindow(startAt, endAt),
		s.setCapacity(capacity),
	); err != nil {
		return nil, err
	}

	return s, nil
}

// RestoreSlot reconstructs a Slot from persistent storage, including its
// current occupancy.
func RestoreSlot(id kernel.UUID, startAt, endAt time.Time, capacity, used int) (*Slot, error) {
	s, err := NewSlot(id, startAt, endAt, capacity)
	if err != nil {
		return nil, err
	}

	if used < 0 || used > capacity {
		return nil, errs.NewValueIsOutOfRangeError("used", used, 0, capacity)
	}
	s.used = used

	return s, nil
}

// Validate ensures the Slot instance was properly constructed through a
// factory function.
func (s *Slot) Validate() error {
	if s == nil {
		return ErrSlotIsNotConstructed
	}
	return s.guard.Validate(ErrSlotIsNotConstructed)
}

// IsEqual compares two slots by their unique identifiers.
func (s *Slot) IsEqual(other *Slot) bool {
	return other != nil && s.id.IsEqual(other.id)
}

// ID returns the slot's unique identifier.
func (s *Slot) ID() kernel.UUID { return s.id }

// StartAt returns the window start.
func (s *Slot) StartAt() time.Time { return s.startAt }

// EndAt returns the window end.
func (s *Slot) EndAt() time.Time { return s.endAt }

// Capacity returns the maximum number of concurrent reservations.
func (s *Slot) Capacity() int { return s.capacity }

// Used returns the current number of reservations.
func (s *Slot) Used() int { return s.used }

// HasCapacity reports whether at least one more reservation fits.
func (s *Slot) HasCapacity() bool {
	return s.used < s.capacity
}

// Contains reports whether the given time falls inside the window,
// inclusive of the start and exclusive of the end.
func (s *Slot) Contains(at time.Time) bool {
	return !at.Before(s.startAt) && at.Before(s.endAt)
}

// Reserve occupies one unit of capacity. Returns SlotFullError when the slot
// is already at capacity; the slot is left unchanged in that case.
func (s *Slot) Reserve() error {
	if !s.HasCapacity() {
		return errs.NewSlotFullError(s.id.String(), s.capacity, s.used)
	}

	s.used++
	return nil
}

// Release frees one unit of capacity. Releasing an empty slot is a no-op so
// repeated releases for the same cancellation stay harmless.
func (s *Slot) Release() {
	if s.used > 0 {
		s.used--
	}
}

func (s *Slot) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.id = id
	return nil
}

func (s *Slot) setWindow(startAt, endAt time.Time) error {
	if startAt.IsZero() {
		return errs.NewValueIsRequiredError("startAt")
	}
	if !endAt.After(startAt) {
		return errs.NewValueIsInvalidErrorWithCause("endAt",
			fmt.Errorf("%s is not after %s",
				endAt.Format(time.RFC3339), startAt.Format(time.RFC3339)))
	}

	s.startAt = startAt
	s.endAt = endAt
	return nil
}

func (s *Slot) setCapacity(capacity int) error {
	if capacity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"capacity", fmt.Errorf("%d is not greater than 0", capacity))
	}

	s.capacity = capacity
	return nil
}
