// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. The order aggregate flattens into a single row: address,
// package, quote, and assignment fields live in prefixed columns rather than
// joined tables, keeping reads and the unit of work simple.
package orderrepo

import (
	"time"

	"parcelgo/internal/core/domain/model/kernel"
	"parcelgo/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Status is stored as its wire string, and the composite index on status and
// mode serves the dispatch backlog scan.
type OrderDTO struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey"`
	UserID          uuid.UUID  `gorm:"type:uuid;not null;index"`
	Mode            string     `gorm:"type:varchar(16);not null;index:idx_orders_status_mode,priority:2"`
	ScheduledAt     *time.Time `gorm:"type:timestamptz"`
	Pickup          AddressDTO `gorm:"embedded;embeddedPrefix:pickup_"`
	Dropoff         AddressDTO `gorm:"embedded;embeddedPrefix:dropoff_"`
	Package         PackageDTO `gorm:"embedded;embeddedPrefix:package_"`
	PaymentMethod   string     `gorm:"type:varchar(16);not null"`
	PromoCode       string     `gorm:"type:varchar(64)"`
	Status          string     `gorm:"type:varchar(16);not null;index:idx_orders_status_mode,priority:1"`
	PaymentIntentID string     `gorm:"type:varchar(128)"`
	CancelReason    string     `gorm:"type:varchar(255)"`
	CreatedAt       time.Time  `gorm:"type:timestamptz;not null"`
	UpdatedAt       time.Time  `gorm:"type:timestamptz;not null"`

	QuoteAmount     *float64 `gorm:"type:double precision"`
	QuoteCurrency   *string  `gorm:"type:varchar(3)"`
	QuoteDistanceKm *float64 `gorm:"type:double precision"`
	QuoteWeightKg   *float64 `gorm:"type:double precision"`

	AssignmentCourierID  *uuid.UUID `gorm:"type:uuid;index"`
	AssignmentPlate      *string    `gorm:"type:varchar(32)"`
	AssignmentEtaMinutes *int       `gorm:"type:int"`
	AssignmentSlotID     *uuid.UUID `gorm:"type:uuid;index"`

	FinalAmount   *float64 `gorm:"type:double precision"`
	FinalCurrency *string  `gorm:"type:varchar(3)"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// AddressDTO represents the embedded pickup or dropoff address columns.
// Lat and Lng are null until the address has been geocoded.
type AddressDTO struct {
	Name   string   `gorm:"type:varchar(255)"`
	Phone  string   `gorm:"type:varchar(32)"`
	Addr1  string   `gorm:"type:varchar(255);not null"`
	Addr2  string   `gorm:"type:varchar(255)"`
	City   string   `gorm:"type:varchar(128)"`
	State  string   `gorm:"type:varchar(128)"`
	Postal string   `gorm:"type:varchar(16)"`
	Lat    *float64 `gorm:"type:double precision"`
	Lng    *float64 `gorm:"type:double precision"`
}

// PackageDTO represents the embedded parcel columns.
type PackageDTO struct {
	Description   string   `gorm:"type:varchar(255)"`
	WeightKg      float64  `gorm:"type:double precision;not null"`
	LengthCm      *float64 `gorm:"type:double precision"`
	WidthCm       *float64 `gorm:"type:double precision"`
	HeightCm      *float64 `gorm:"type:double precision"`
	DeclaredValue *float64 `gorm:"type:double precision"`
}

// fromDomain converts an order domain aggregate to its database
// representation.
func fromDomain(o *order.Order) OrderDTO {
	dto := OrderDTO{
		ID:              o.ID().Bytes(),
		UserID:          o.UserID().Bytes(),
		Mode:            o.Mode().String(),
		Pickup:          addressFromDomain(o.Pickup()),
		Dropoff:         addressFromDomain(o.Dropoff()),
		Package:         packageFromDomain(o.Package()),
		PaymentMethod:   string(o.PaymentMethod()),
		PromoCode:       o.PromoCode(),
		Status:          o.Status().String(),
		PaymentIntentID: o.PaymentIntentID(),
		CancelReason:    o.CancelReason(),
		CreatedAt:       o.CreatedAt(),
		UpdatedAt:       o.UpdatedAt(),
	}

	if o.ScheduledAt() != nil {
		scheduledAt := *o.ScheduledAt()
		dto.ScheduledAt = &scheduledAt
	}

	if quote := o.Quote(); quote != nil {
		amount := quote.Price().Amount()
		currency := quote.Price().Currency()
		distanceKm := quote.DistanceKm()
		weightKg := quote.WeightKg()
		dto.QuoteAmount = &amount
		dto.QuoteCurrency = &currency
		dto.QuoteDistanceKm = &distanceKm
		dto.QuoteWeightKg = &weightKg
	}

	if assignment := o.Assignment(); assignment != nil {
		courierID := assignment.CourierID().Bytes()
		plate := assignment.VehiclePlate()
		etaMinutes := assignment.EtaMinutes()
		dto.AssignmentCourierID = &courierID
		dto.AssignmentPlate = &plate
		dto.AssignmentEtaMinutes = &etaMinutes

		if assignment.SlotID() != nil {
			slotID := assignment.SlotID().Bytes()
			dto.AssignmentSlotID = &slotID
		}
	}

	if final := o.FinalAmount(); final != nil {
		amount := final.Amount()
		currency := final.Currency()
		dto.FinalAmount = &amount
		dto.FinalCurrency = &currency
	}

	return dto
}

// toDomain converts a database DTO to an order domain aggregate using
// RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return nil, err
	}

	mode, err := order.ModeFromString(dto.Mode)
	if err != nil {
		return nil, err
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	pickup, err := addressToDomain(dto.Pickup)
	if err != nil {
		return nil, err
	}

	dropoff, err := addressToDomain(dto.Dropoff)
	if err != nil {
		return nil, err
	}

	pkg, err := packageToDomain(dto.Package)
	if err != nil {
		return nil, err
	}

	params := order.RestoreOrderParams{
		ID:              id,
		UserID:          userID,
		Mode:            mode,
		ScheduledAt:     dto.ScheduledAt,
		Pickup:          pickup,
		Dropoff:         dropoff,
		Package:         pkg,
		PaymentMethod:   order.PaymentMethod(dto.PaymentMethod),
		PromoCode:       dto.PromoCode,
		Status:          status,
		PaymentIntentID: dto.PaymentIntentID,
		CancelReason:    dto.CancelReason,
		CreatedAt:       dto.CreatedAt,
		UpdatedAt:       dto.UpdatedAt,
	}

	if dto.QuoteAmount != nil {
		price, priceErr := kernel.NewMoney(*dto.QuoteAmount, stringValue(dto.QuoteCurrency))
		if priceErr != nil {
			return nil, priceErr
		}

		quote, quoteErr := order.NewQuote(price,
			floatValue(dto.QuoteDistanceKm), floatValue(dto.QuoteWeightKg))
		if quoteErr != nil {
			return nil, quoteErr
		}
		params.Quote = &quote
	}

	if dto.AssignmentCourierID != nil {
		assignment, assignmentErr := assignmentToDomain(dto)
		if assignmentErr != nil {
			return nil, assignmentErr
		}
		params.Assignment = assignment
	}

	if dto.FinalAmount != nil {
		finalAmount, finalErr := kernel.NewMoney(*dto.FinalAmount, stringValue(dto.FinalCurrency))
		if finalErr != nil {
			return nil, finalErr
		}
		params.FinalAmount = &finalAmount
	}

	return order.RestoreOrder(params)
}

func addressFromDomain(a order.Address) AddressDTO {
	dto := AddressDTO{
		Name:   a.Name(),
		Phone:  a.Phone(),
		Addr1:  a.Addr1(),
		Addr2:  a.Addr2(),
		City:   a.City(),
		State:  a.State(),
		Postal: a.Postal(),
	}

	if a.HasPoint() {
		lat := a.Point().Lat()
		lng := a.Point().Lng()
		dto.Lat = &lat
		dto.Lng = &lng
	}

	return dto
}

func addressToDomain(dto AddressDTO) (order.Address, error) {
	var point *kernel.GeoPoint
	if dto.Lat != nil && dto.Lng != nil {
		p, err := kernel.NewGeoPoint(*dto.Lat, *dto.Lng)
		if err != nil {
			return order.Address{}, err
		}
		point = &p
	}

	return order.NewAddress(
		dto.Name, dto.Phone, dto.Addr1, dto.Addr2,
		dto.City, dto.State, dto.Postal, point)
}

func packageFromDomain(p order.Package) PackageDTO {
	dto := PackageDTO{
		Description:   p.Description(),
		WeightKg:      p.WeightKg(),
		DeclaredValue: p.DeclaredValue(),
	}

	if d := p.Dimensions(); d != nil {
		lengthCm, widthCm, heightCm := d.LengthCm, d.WidthCm, d.HeightCm
		dto.LengthCm = &lengthCm
		dto.WidthCm = &widthCm
		dto.HeightCm = &heightCm
	}

	return dto
}

func packageToDomain(dto PackageDTO) (order.Package, error) {
	var dimensions *order.Dimensions
	if dto.LengthCm != nil && dto.WidthCm != nil && dto.HeightCm != nil {
		dimensions = &order.Dimensions{
			LengthCm: *dto.LengthCm,
			WidthCm:  *dto.WidthCm,
			HeightCm: *dto.HeightCm,
		}
	}

	return order.NewPackage(dto.Description, dto.WeightKg, dimensions, dto.DeclaredValue)
}

func assignmentToDomain(dto OrderDTO) (*order.Assignment, error) {
	courierID, err := kernel.UUIDFromBytes((*dto.AssignmentCourierID)[:])
	if err != nil {
		return nil, err
	}

	var slotID *kernel.UUID
	if dto.AssignmentSlotID != nil {
		sID, slotErr := kernel.UUIDFromBytes((*dto.AssignmentSlotID)[:])
		if slotErr != nil {
			return nil, slotErr
		}
		slotID = &sID
	}

	assignment, err := order.NewAssignment(
		courierID, stringValue(dto.AssignmentPlate),
		intValue(dto.AssignmentEtaMinutes), slotID)
	if err != nil {
		return nil, err
	}

	return &assignment, nil
}

func stringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func floatValue(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}

func intValue(i *int) int {
	if i == nil {
		return 0
	}
	return *i
}
