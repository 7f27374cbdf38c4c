package commands

import (
	"errors"

	"parcelgo/internal/core/domain/model/kernel"
	"parcelgo/internal/pkg/guard"
)

var ErrAssignOrderCommandIsNotConstructed = errors.New(
	"AssignOrderCommand must be created via NewAssignOrderCommand constructor",
)

// AssignOrderCommand represents a request to plan a courier assignment for a
// confirmed order. Scheduled orders must name the slot to reserve; on-demand
// orders must not.
type AssignOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	slotID  *kernel.UUID

	guard guard.ConstructorGuard
}

// NewAssignOrderCommand creates a command to assign a courier to an order.
// slotID is required for scheduled orders and must be nil for on-demand ones;
// the handler enforces the pairing against the order's fulfillment mode.
func NewAssignOrderCommand(orderID kernel.UUID, slotID *kernel.UUID) (AssignOrderCommand, error) {
	cmd := AssignOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setSlotID(slotID),
	); err != nil {
		return AssignOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AssignOrderCommand) Validate() error {
	return c.guard.Validate(ErrAssignOrderCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to assign.
func (c AssignOrderCommand) OrderID() kernel.UUID { return c.orderID }

// SlotID returns the requested slot for scheduled orders, nil otherwise.
func (c AssignOrderCommand) SlotID() *kernel.UUID { return c.slotID }

func (c *AssignOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *AssignOrderCommand) setSlotID(slotID *kernel.UUID) error {
	if slotID != nil {
		if err := slotID.Validate(); err != nil {
			return err
		}
		id := *slotID
		c.slotID = &id
	}
	return nil
}
