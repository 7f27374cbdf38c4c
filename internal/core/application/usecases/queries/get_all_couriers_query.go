// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries bypass the domain model and read optimized projections directly.
package queries

import (
	"errors"

	"parcelgo/internal/core/domain/model/kernel"
	"parcelgo/internal/pkg/guard"
)

var ErrGetAllCouriersQueryIsNotConstructed = errors.New(
	"GetAllCouriersQuery must be created via NewGetAllCouriersQuery constructor",
)

// GetAllCouriersQuery retrieves information about all couriers in the fleet.
// Returns courier identities, last known positions, and availability for
// monitoring and dispatching.
type GetAllCouriersQuery struct {
	guard guard.ConstructorGuard
}

// NewGetAllCouriersQuery creates a query to retrieve all couriers.
// This is a parameterless query that fetches the complete fleet.
func NewGetAllCouriersQuery() GetAllCouriersQuery {
	return GetAllCouriersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetAllCouriersQuery) Validate() error {
	return q.guard.Validate(ErrGetAllCouriersQueryIsNotConstructed)
}

// GetAllCouriersQueryResponse represents one courier in the read model.
// Location is nil when the courier has never reported a position.
type GetAllCouriersQueryResponse struct {
	ID           kernel.UUID
	Name         string
	VehiclePlate string
	Location     *kernel.GeoPoint
	Available    bool
}
