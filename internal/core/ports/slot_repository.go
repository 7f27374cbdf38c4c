package ports

import (
	"context"

	"parcelgo/internal/core/domain/model/kernel"
	"parcelgo/internal/core/domain/model/slot"
)

// SlotRepository defines the persistence contract for delivery slot
// aggregates. Reserve and Release mutate the durable occupancy counter and
// must stay capacity-safe under concurrent callers.
type SlotRepository interface {
	// Add persists a new slot aggregate to storage.
	Add(ctx context.Context, aggregate *slot.Slot) error

	// Get retrieves a slot aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*slot.Slot, error)

	// Reserve atomically consumes one unit of capacity. The check against
	// the capacity bound and the increment must be a single atomic unit so
	// two concurrent reservations never both succeed on the last unit.
	// Returns a SlotFullError without mutation when the slot is full, or an
	// ObjectNotFound error when the slot does not exist.
	Reserve(ctx context.Context, id kernel.UUID) error

	// Release returns one unit of capacity, floored at zero occupancy.
	// Returns an ObjectNotFound error when the slot does not exist.
	Release(ctx context.Context, id kernel.UUID) error
}
