package commands

import (
	"context"

	"parcelgo/internal/core/domain/model/slot"
)

// CreateSlotCommandHandler opens new delivery windows for scheduled orders.
type CreateSlotCommandHandler struct {
	uowFactory SlotUoWFactory
}

// NewCreateSlotCommandHandler creates a handler for slot creation.
func NewCreateSlotCommandHandler(uowFactory SlotUoWFactory) CreateSlotCommandHandler {
	return CreateSlotCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the slot creation command.
func (h *CreateSlotCommandHandler) Handle(ctx context.Context, cmd CreateSlotCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	newSlot, err := slot.NewSlot(cmd.SlotID(), cmd.StartAt(), cmd.EndAt(), cmd.Capacity())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.SlotRepository().Add(ctx, newSlot); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
