package commands

import (
	"context"
	"time"

	"parcelgo/internal/core/domain/model/courier"
	"parcelgo/internal/core/domain/model/kernel"
	"parcelgo/internal/core/domain/model/order"
	"parcelgo/internal/core/domain/services"
	"parcelgo/internal/core/ports"
	"parcelgo/internal/pkg/errs"
)

// AssignOrderCommandHandler plans a courier assignment for a confirmed order.
//
// For on-demand orders the planner picks the nearest available courier. For
// scheduled orders the handler first reserves the requested slot; the
// reservation, courier binding, and order transition all share one
// transaction, so a failure at any step rolls the reserved capacity back and
// leaves the order in Confirmed.
type AssignOrderCommandHandler struct {
	uowFactory UoWFactory
	planner    services.AssignmentPlanner
	notifier   ports.StatusNotifier
}

// NewAssignOrderCommandHandler creates a handler for assignment planning.
func NewAssignOrderCommandHandler(
	uowFactory UoWFactory,
	planner services.AssignmentPlanner,
	notifier ports.StatusNotifier,
) AssignOrderCommandHandler {
	return AssignOrderCommandHandler{
		uowFactory: uowFactory,
		planner:    planner,
		notifier:   notifier,
	}
}

// Handle processes the assignment command.
func (h *AssignOrderCommandHandler) Handle(ctx context.Context, cmd AssignOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	courierRepo := uow.CourierRepository()
	candidates, err := courierRepo.GetAllAvailable(ctx)
	if err != nil {
		return err
	}

	var assignment order.Assignment
	switch o.Mode() {
	case order.ModeScheduled:
		assignment, err = h.planScheduled(ctx, uow, o, cmd.SlotID(), candidates)
	default:
		if cmd.SlotID() != nil {
			return errs.NewValueIsInvalidError("slotID")
		}
		assignment, err = h.planner.PlanOnDemand(o, candidates)
	}
	if err != nil {
		return err
	}

	if err = o.AssignTo(assignment, time.Now()); err != nil {
		return err
	}

	assigned, err := courierRepo.Get(ctx, assignment.CourierID())
	if err != nil {
		return err
	}
	assigned.MarkBusy()

	if err = courierRepo.Update(ctx, assigned); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.notifier.NotifyStatusChanged(o.ID(), o.Status(), o.Assignment())
	return nil
}

// planScheduled reserves the requested slot and plans against it. The
// reservation happens inside the surrounding transaction; a SlotFullError
// propagates unchanged so the caller can offer the next available slot.
func (h *AssignOrderCommandHandler) planScheduled(
	ctx context.Context,
	uow UoW,
	o *order.Order,
	slotID *kernel.UUID,
	candidates []*courier.Courier,
) (order.Assignment, error) {
	if slotID == nil {
		return order.Assignment{}, errs.NewValueIsRequiredError("slotID")
	}

	slotRepo := uow.SlotRepository()
	if err := slotRepo.Reserve(ctx, *slotID); err != nil {
		return order.Assignment{}, err
	}

	reserved, err := slotRepo.Get(ctx, *slotID)
	if err != nil {
		return order.Assignment{}, err
	}

	return h.planner.PlanScheduled(o, reserved, candidates)
}
