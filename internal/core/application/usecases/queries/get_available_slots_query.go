package queries

import (
	"errors"
	"time"

	"parcelgo/internal/core/domain/model/kernel"
	"parcelgo/internal/pkg/errs"
	"parcelgo/internal/pkg/guard"
)

var ErrGetAvailableSlotsQueryIsNotConstructed = errors.New(
	"GetAvailableSlotsQuery must be created via NewGetAvailableSlotsQuery constructor",
)

// GetAvailableSlotsQuery retrieves delivery windows that still have free
// capacity and start at or after a given instant. Used to offer bookable
// windows when a customer schedules a delivery.
type GetAvailableSlotsQuery struct { //nolint:recvcheck //using for validation
	after time.Time

	guard guard.ConstructorGuard
}

// NewGetAvailableSlotsQuery creates a query for bookable windows starting at
// or after the given instant.
func NewGetAvailableSlotsQuery(after time.Time) (GetAvailableSlotsQuery, error) {
	if after.IsZero() {
		return GetAvailableSlotsQuery{}, errs.NewValueIsRequiredError("after")
	}

	return GetAvailableSlotsQuery{
		after: after,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetAvailableSlotsQuery) Validate() error {
	return q.guard.Validate(ErrGetAvailableSlotsQueryIsNotConstructed)
}

// After returns the earliest acceptable window start.
func (q GetAvailableSlotsQuery) After() time.Time { return q.after }

// GetAvailableSlotsQueryResponse represents one bookable window in the read
// model. Remaining is the capacity still open for booking.
type GetAvailableSlotsQueryResponse struct {
	ID        kernel.UUID
	StartAt   time.Time
	EndAt     time.Time
	Capacity  int
	Used      int
	Remaining int
}
