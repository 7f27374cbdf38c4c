// Package courierrepo provides data transfer objects and mapping functions
// for courier persistence. It handles the conversion between the courier
// domain aggregate and its database representation.
package courierrepo

import (
	"parcelgo/internal/core/domain/model/courier"
	"parcelgo/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// CourierDTO represents the database structure for persisting courier
// aggregates. Lat and Lng are null until the courier reports a position.
type CourierDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name         string    `gorm:"type:varchar(255);not null"`
	VehiclePlate string    `gorm:"type:varchar(32);not null"`
	Lat          *float64  `gorm:"type:double precision"`
	Lng          *float64  `gorm:"type:double precision"`
	Available    bool      `gorm:"not null;index"`
}

// TableName specifies the database table name for courier entities.
func (CourierDTO) TableName() string {
	return "couriers"
}

// fromDomain converts a courier domain aggregate to its database
// representation.
func fromDomain(c *courier.Courier) CourierDTO {
	dto := CourierDTO{
		ID:           c.ID().Bytes(),
		Name:         c.Name(),
		VehiclePlate: c.VehiclePlate(),
		Available:    c.IsAvailable(),
	}

	if c.HasLocation() {
		lat := c.Location().Lat()
		lng := c.Location().Lng()
		dto.Lat = &lat
		dto.Lng = &lng
	}

	return dto
}

// toDomain converts a database DTO to a courier domain aggregate.
func toDomain(dto CourierDTO) (*courier.Courier, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var location *kernel.GeoPoint
	if dto.Lat != nil && dto.Lng != nil {
		point, pointErr := kernel.NewGeoPoint(*dto.Lat, *dto.Lng)
		if pointErr != nil {
			return nil, pointErr
		}
		location = &point
	}

	return courier.RestoreCourier(id, dto.Name, dto.VehiclePlate, location, dto.Available)
}
