package slotrepo

import (
	"context"
	"errors"

	"parcelgo/internal/core/domain/model/kernel"
	"parcelgo/internal/core/domain/model/slot"
	"parcelgo/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormSlotRepository implements SlotRepository using GORM.
type GormSlotRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormSlotRepository creates a new GORM slot repository.
func NewGormSlotRepository(db *gorm.DB, tracker aggregateTracker) *GormSlotRepository {
	return &GormSlotRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new slot to the database.
func (r *GormSlotRepository) Add(ctx context.Context, aggregate *slot.Slot) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a slot by ID.
func (r *GormSlotRepository) Get(ctx context.Context, id kernel.UUID) (*slot.Slot, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto SlotDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("slot", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// Reserve atomically consumes one unit of slot capacity. The used < capacity
// guard sits in the UPDATE itself, so two concurrent bookings of the last
// unit can never both succeed regardless of transaction interleaving.
func (r *GormSlotRepository) Reserve(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Exec(`
		UPDATE slots
		SET used = used + 1
		WHERE id = ? AND used < capacity
	`, id.Bytes())
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return r.reserveFailure(ctx, id)
	}

	return nil
}

// reserveFailure distinguishes a full slot from a missing one after a
// conditional reserve matched no rows.
func (r *GormSlotRepository) reserveFailure(ctx context.Context, id kernel.UUID) error {
	var dto SlotDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.NewObjectNotFoundError("slot", id.String())
		}
		return err
	}

	return errs.NewSlotFullError(id.String(), dto.Capacity, dto.Used)
}

// Release returns one unit of slot capacity, flooring at zero. Releasing an
// already empty slot is a no-op rather than an error, so a cancellation that
// races a manual correction cannot drive used negative.
func (r *GormSlotRepository) Release(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Exec(`
		UPDATE slots
		SET used = used - 1
		WHERE id = ? AND used > 0
	`, id.Bytes())
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&SlotDTO{}).
			Where("id = ?", id.Bytes()).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return errs.NewObjectNotFoundError("slot", id.String())
		}
	}

	return nil
}
