package commands

import (
	"errors"
	"fmt"
	"time"

	"parcelgo/internal/core/domain/model/kernel"
	"parcelgo/internal/pkg/errs"
	"parcelgo/internal/pkg/guard"
)

var ErrCreateSlotCommandIsNotConstructed = errors.New(
	"CreateSlotCommand must be created via NewCreateSlotCommand constructor",
)

// CreateSlotCommand represents a request to open a bookable delivery window.
type CreateSlotCommand struct { //nolint:recvcheck //using for validation
	slotID   kernel.UUID
	startAt  time.Time
	endAt    time.Time
	capacity int

	guard guard.ConstructorGuard
}

// NewCreateSlotCommand creates a command to open a delivery window. The end
// must lie strictly after the start and the capacity must be positive.
func NewCreateSlotCommand(slotID kernel.UUID, startAt, endAt time.Time, capacity int) (CreateSlotCommand, error) {
	cmd := CreateSlotCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setSlotID(slotID),
		cmd.setWindow(startAt, endAt),
		cmd.setCapacity(capacity),
	); err != nil {
		return CreateSlotCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateSlotCommand) Validate() error {
	return c.guard.Validate(ErrCreateSlotCommandIsNotConstructed)
}

// SlotID returns the identifier for the new slot.
func (c CreateSlotCommand) SlotID() kernel.UUID { return c.slotID }

// StartAt returns the window start.
func (c CreateSlotCommand) StartAt() time.Time { return c.startAt }

// EndAt returns the window end.
func (c CreateSlotCommand) EndAt() time.Time { return c.endAt }

// Capacity returns the maximum concurrent reservations.
func (c CreateSlotCommand) Capacity() int { return c.capacity }

func (c *CreateSlotCommand) setSlotID(slotID kernel.UUID) error {
	if err := slotID.Validate(); err != nil {
		return err
	}
	c.slotID = slotID
	return nil
}

func (c *CreateSlotCommand) setWindow(startAt, endAt time.Time) error {
	if startAt.IsZero() {
		return errs.NewValueIsRequiredError("startAt")
	}
	if !endAt.After(startAt) {
		return errs.NewValueIsInvalidErrorWithCause("endAt",
			fmt.Errorf("%s is not after %s",
				endAt.Format(time.RFC3339), startAt.Format(time.RFC3339)))
	}

	c.startAt = startAt
	c.endAt = endAt
	return nil
}

func (c *CreateSlotCommand) setCapacity(capacity int) error {
	if capacity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"capacity", fmt.Errorf("%d is not greater than 0", capacity))
	}

	c.capacity = capacity
	return nil
}
