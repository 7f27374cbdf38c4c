// Package slotrepo provides data transfer objects and mapping functions for
// delivery slot persistence. Reservation and release run as conditional SQL
// updates so capacity stays correct under concurrent bookings.
package slotrepo

import (
	"time"

	"parcelgo/internal/core/domain/model/kernel"
	"parcelgo/internal/core/domain/model/slot"

	"github.com/google/uuid"
)

// SlotDTO represents the database structure for persisting delivery slots.
type SlotDTO struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	StartAt  time.Time `gorm:"type:timestamptz;not null;index"`
	EndAt    time.Time `gorm:"type:timestamptz;not null"`
	Capacity int       `gorm:"type:int;not null"`
	Used     int       `gorm:"type:int;not null"`
}

// TableName specifies the database table name for slot entities.
func (SlotDTO) TableName() string {
	return "slots"
}

// fromDomain converts a slot domain aggregate to its database representation.
func fromDomain(s *slot.Slot) SlotDTO {
	return SlotDTO{
		ID:       s.ID().Bytes(),
		StartAt:  s.StartAt(),
		EndAt:    s.EndAt(),
		Capacity: s.Capacity(),
		Used:     s.Used(),
	}
}

// toDomain converts a database DTO to a slot domain aggregate.
func toDomain(dto SlotDTO) (*slot.Slot, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return slot.RestoreSlot(id, dto.StartAt, dto.EndAt, dto.Capacity, dto.Used)
}
