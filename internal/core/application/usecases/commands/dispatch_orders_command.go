package commands

import (
	"errors"

	"parcelgo/internal/pkg/guard"
)

var ErrDispatchOrdersCommandIsNotConstructed = errors.New(
	"DispatchOrdersCommand must be created via NewDispatchOrdersCommand constructor",
)

// DispatchOrdersCommand triggers assignment of the oldest confirmed on-demand
// order still waiting for a courier. This is a parameterless batch command,
// run periodically by the background dispatcher.
type DispatchOrdersCommand struct {
	guard guard.ConstructorGuard
}

// NewDispatchOrdersCommand creates a command to dispatch the pending backlog.
func NewDispatchOrdersCommand() DispatchOrdersCommand {
	return DispatchOrdersCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c *DispatchOrdersCommand) Validate() error {
	return c.guard.Validate(ErrDispatchOrdersCommandIsNotConstructed)
}
