// Package ports defines repository and collaborator interfaces for the
// delivery marketplace core. These interfaces establish contracts between the
// domain layer and infrastructure, enabling dependency inversion and
// testability.
package ports

import (
	"context"

	"parcelgo/internal/core/domain/model/courier"
	"parcelgo/internal/core/domain/model/kernel"
)

// CourierRepository defines the persistence contract for courier aggregates.
type CourierRepository interface {
	// Add persists a new courier aggregate to storage.
	// The courier must be valid and not already exist in the repository.
	Add(ctx context.Context, courier *courier.Courier) error

	// Update persists changes to an existing courier aggregate.
	// The courier must exist in the repository and be valid.
	Update(ctx context.Context, courier *courier.Courier) error

	// Get retrieves a courier aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*courier.Courier, error)

	// GetAllAvailable retrieves every courier currently free to take an
	// order. The returned set is the candidate pool for assignment planning;
	// its population policy (shift, zone, fleet) lives outside the core.
	GetAllAvailable(ctx context.Context) ([]*courier.Courier, error)
}
