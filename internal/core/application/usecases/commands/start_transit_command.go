package commands

import (
	"errors"

	"parcelgo/internal/core/domain/model/kernel"
	"parcelgo/internal/pkg/guard"
)

var ErrStartTransitCommandIsNotConstructed = errors.New(
	"StartTransitCommand must be created via NewStartTransitCommand constructor",
)

// StartTransitCommand represents a courier pickup confirmation, consumed from
// the tracking collaborator.
type StartTransitCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewStartTransitCommand creates a command to mark an order as picked up.
func NewStartTransitCommand(orderID kernel.UUID) (StartTransitCommand, error) {
	cmd := StartTransitCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setOrderID(orderID); err != nil {
		return StartTransitCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c StartTransitCommand) Validate() error {
	return c.guard.Validate(ErrStartTransitCommandIsNotConstructed)
}

// OrderID returns the identifier of the picked-up order.
func (c StartTransitCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c *StartTransitCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}
