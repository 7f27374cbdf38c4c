package queries

import (
	"errors"

	"parcelgo/internal/core/domain/model/kernel"
	"parcelgo/internal/pkg/guard"
)

var ErrGetUncompletedOrdersQueryIsNotConstructed = errors.New(
	"GetUncompletedOrdersQuery must be created via NewGetUncompletedOrdersQuery constructor",
)

// GetUncompletedOrdersQuery retrieves orders that have not reached a terminal
// status. Provides active workload visibility for dashboards and dispatching.
type GetUncompletedOrdersQuery struct {
	guard guard.ConstructorGuard
}

// NewGetUncompletedOrdersQuery creates a query to retrieve all orders still
// in flight.
func NewGetUncompletedOrdersQuery() GetUncompletedOrdersQuery {
	return GetUncompletedOrdersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetUncompletedOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetUncompletedOrdersQueryIsNotConstructed)
}

// GetUncompletedOrdersQueryResponse represents one in-flight order in the
// read model. CourierID and EtaMinutes are nil until an assignment exists.
type GetUncompletedOrdersQueryResponse struct {
	ID         kernel.UUID
	Status     string
	Mode       string
	City       string
	CourierID  *kernel.UUID
	EtaMinutes *int
}
