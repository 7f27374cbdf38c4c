package commands

import (
	"errors"

	"parcelgo/internal/core/domain/model/kernel"
	"parcelgo/internal/pkg/guard"
)

var ErrQuoteOrderCommandIsNotConstructed = errors.New(
	"QuoteOrderCommand must be created via NewQuoteOrderCommand constructor",
)

// QuoteOrderCommand represents a request to price an order in Created status.
type QuoteOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewQuoteOrderCommand creates a command to price an existing order.
func NewQuoteOrderCommand(orderID kernel.UUID) (QuoteOrderCommand, error) {
	cmd := QuoteOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setOrderID(orderID); err != nil {
		return QuoteOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c QuoteOrderCommand) Validate() error {
	return c.guard.Validate(ErrQuoteOrderCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to price.
func (c QuoteOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c *QuoteOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}
