package services

import (
	"errors"
	"fmt"
	"math"
	"time"

	"parcelgo/internal/core/domain/model/courier"
	"parcelgo/internal/core/domain/model/kernel"
	"parcelgo/internal/core/domain/model/order"
	"parcelgo/internal/core/domain/model/slot"
	"parcelgo/internal/pkg/errs"
)

// ErrNoCourierAvailable is returned when planning finds no usable candidate.
// This occurs when the candidate set is empty or no candidate has a known
// position. It is a retryable-later condition, not a validation failure.
var ErrNoCourierAvailable = errors.New("no courier available")

// AssignmentPlanner is a domain service that binds couriers to confirmed
// orders.
//
// Selection rule: the available candidate minimizing great-circle distance
// from the pickup point wins; ties are broken by lowest courier id so
// planning is deterministic and reproducible. Candidates without a reported
// position are skipped.
//
// ETA rules:
//   - On-demand: distance / configured average speed, in whole minutes.
//   - Scheduled: the interval from the order's requested time to the end of
//     the reserved slot, in whole minutes.
type AssignmentPlanner struct {
	avgSpeedKmh float64
}

// NewAssignmentPlanner creates an AssignmentPlanner with the configured
// average courier speed.
func NewAssignmentPlanner(avgSpeedKmh float64) (AssignmentPlanner, error) {
	if avgSpeedKmh <= 0 {
		return AssignmentPlanner{}, errs.NewValueIsInvalidErrorWithCause(
			"avgSpeedKmh", fmt.Errorf("%f is not greater than 0", avgSpeedKmh))
	}

	return AssignmentPlanner{avgSpeedKmh: avgSpeedKmh}, nil
}

// PlanOnDemand produces an assignment for an on-demand order by picking the
// nearest available candidate to the pickup point.
//
// Fails with ErrNoCourierAvailable when no candidate qualifies, or with a
// validation error when the order's pickup has no coordinates.
func (p AssignmentPlanner) PlanOnDemand(o *order.Order, candidates []*courier.Courier) (order.Assignment, error) {
	pickup, err := p.pickupPoint(o)
	if err != nil {
		return order.Assignment{}, err
	}

	best, distanceKm, err := p.findNearest(pickup, candidates)
	if err != nil {
		return order.Assignment{}, err
	}

	eta, err := kernel.EtaMinutes(distanceKm, p.avgSpeedKmh)
	if err != nil {
		return order.Assignment{}, err
	}

	return order.NewAssignment(best.ID(), best.VehiclePlate(), int(math.Round(eta)), nil)
}

// PlanScheduled produces an assignment for a scheduled order against an
// already reserved slot. Courier selection follows the same nearest-candidate
// rule as on-demand planning; the ETA is the interval from the order's
// requested time to the slot's end.
//
// Fails with ErrNoCourierAvailable when no candidate qualifies, or with a
// validation error when the requested time lies past the slot's end.
func (p AssignmentPlanner) PlanScheduled(o *order.Order, reserved *slot.Slot, candidates []*courier.Courier) (order.Assignment, error) {
	if err := reserved.Validate(); err != nil {
		return order.Assignment{}, err
	}

	pickup, err := p.pickupPoint(o)
	if err != nil {
		return order.Assignment{}, err
	}

	scheduledAt := o.ScheduledAt()
	if scheduledAt == nil {
		return order.Assignment{}, errs.NewValueIsRequiredError("scheduledAt")
	}

	eta := int(math.Round(reserved.EndAt().Sub(*scheduledAt).Minutes()))
	if eta < 0 {
		return order.Assignment{}, errs.NewValueIsInvalidErrorWithCause(
			"scheduledAt", fmt.Errorf("%s lies past the slot end %s",
				scheduledAt.Format(time.RFC3339),
				reserved.EndAt().Format(time.RFC3339)))
	}

	best, _, err := p.findNearest(pickup, candidates)
	if err != nil {
		return order.Assignment{}, err
	}

	slotID := reserved.ID()
	return order.NewAssignment(best.ID(), best.VehiclePlate(), eta, &slotID)
}

func (p AssignmentPlanner) pickupPoint(o *order.Order) (kernel.GeoPoint, error) {
	if err := o.Validate(); err != nil {
		return kernel.GeoPoint{}, err
	}

	if !o.Pickup().HasPoint() {
		return kernel.GeoPoint{}, errs.NewValueIsRequiredError("pickup coordinates")
	}

	return *o.Pickup().Point(), nil
}

// findNearest selects the available candidate minimizing distance from the
// pickup point, tie-broken by lowest courier id.
func (p AssignmentPlanner) findNearest(pickup kernel.GeoPoint, candidates []*courier.Courier) (*courier.Courier, float64, error) {
	var (
		best         *courier.Courier
		bestDistance = math.MaxFloat64
	)

	for _, c := range candidates {
		if err := c.Validate(); err != nil {
			return nil, 0, err
		}
		if !c.IsAvailable() || !c.HasLocation() {
			continue
		}

		distance, err := c.Location().DistanceKm(pickup)
		if err != nil {
			return nil, 0, err
		}

		if distance < bestDistance ||
			(distance == bestDistance && best != nil && c.ID().Less(best.ID())) {
			best = c
			bestDistance = distance
		}
	}

	if best == nil {
		return nil, 0, ErrNoCourierAvailable
	}

	return best, bestDistance, nil
}
