package ports

import (
	"context"

	"parcelgo/internal/core/domain/model/kernel"
	"parcelgo/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	// The order must exist in the repository and be valid.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetFirstConfirmedOnDemand retrieves the oldest confirmed on-demand
	// order still waiting for a courier, or an ObjectNotFound error when the
	// backlog is empty. Used by the background dispatcher.
	GetFirstConfirmedOnDemand(ctx context.Context) (*order.Order, error)
}
