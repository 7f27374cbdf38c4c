package commands

import (
	"context"
	"errors"
	"time"

	"parcelgo/internal/core/domain/services"
	"parcelgo/internal/core/ports"
	"parcelgo/internal/pkg/errs"
)

// DispatchOrdersCommandHandler assigns the oldest confirmed on-demand order
// to the nearest available courier. An empty backlog and an empty courier
// pool are both normal outcomes, not failures; the next run retries.
type DispatchOrdersCommandHandler struct {
	uowFactory UoWFactory
	planner    services.AssignmentPlanner
	notifier   ports.StatusNotifier
}

// NewDispatchOrdersCommandHandler creates a handler for backlog dispatch.
func NewDispatchOrdersCommandHandler(
	uowFactory UoWFactory,
	planner services.AssignmentPlanner,
	notifier ports.StatusNotifier,
) DispatchOrdersCommandHandler {
	return DispatchOrdersCommandHandler{
		uowFactory: uowFactory,
		planner:    planner,
		notifier:   notifier,
	}
}

// Handle processes one dispatch round.
func (h *DispatchOrdersCommandHandler) Handle(ctx context.Context, cmd DispatchOrdersCommand) error {
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
	o, err := orderRepo.GetFirstConfirmedOnDemand(ctx)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return nil
		}
		return err
	}

	courierRepo := uow.CourierRepository()
	candidates, err := courierRepo.GetAllAvailable(ctx)
	if err != nil {
		return err
	}

	assignment, err := h.planner.PlanOnDemand(o, candidates)
	if err != nil {
		if errors.Is(err, services.ErrNoCourierAvailable) {
			return nil
		}
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
