package commands

import (
	"errors"

	"parcelgo/internal/core/domain/model/kernel"
	"parcelgo/internal/pkg/guard"
)

var ErrCompleteOrderCommandIsNotConstructed = errors.New(
	"CompleteOrderCommand must be created via NewCompleteOrderCommand constructor",
)

// CompleteOrderCommand represents a delivery completion. The final amount may
// differ from the quote (surcharges, cash rounding); when absent the quoted
// price is settled.
type CompleteOrderCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	finalAmount *kernel.Money

	guard guard.ConstructorGuard
}

// NewCompleteOrderCommand creates a command to settle and complete an order.
func NewCompleteOrderCommand(orderID kernel.UUID, finalAmount *kernel.Money) (CompleteOrderCommand, error) {
	cmd := CompleteOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setFinalAmount(finalAmount),
	); err != nil {
		return CompleteOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CompleteOrderCommand) Validate() error {
	return c.guard.Validate(ErrCompleteOrderCommandIsNotConstructed)
}

// OrderID returns the identifier of the delivered order.
func (c CompleteOrderCommand) OrderID() kernel.UUID { return c.orderID }

// FinalAmount returns the settled amount, nil to settle the quoted price.
func (c CompleteOrderCommand) FinalAmount() *kernel.Money { return c.finalAmount }

func (c *CompleteOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *CompleteOrderCommand) setFinalAmount(finalAmount *kernel.Money) error {
	if finalAmount != nil {
		if err := finalAmount.Validate(); err != nil {
			return err
		}
		m := *finalAmount
		c.finalAmount = &m
	}
	return nil
}
