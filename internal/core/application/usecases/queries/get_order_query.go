package queries

import (
	"errors"
	"time"

	"parcelgo/internal/core/domain/model/kernel"
	"parcelgo/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery retrieves the full read model of a single order, including
// its quote and assignment when present.
type GetOrderQuery struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a query to retrieve one order by id.
func NewGetOrderQuery(orderID kernel.UUID) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}

	return GetOrderQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// OrderID returns the identifier of the order to retrieve.
func (q GetOrderQuery) OrderID() kernel.UUID { return q.orderID }

// AddressView is the read-model projection of a pickup or dropoff address.
// Lat and Lng are nil when the address has not been geocoded.
type AddressView struct {
	Name   string
	Phone  string
	Addr1  string
	Addr2  string
	City   string
	State  string
	Postal string
	Lat    *float64
	Lng    *float64
}

// QuoteView is the read-model projection of a priced estimate.
type QuoteView struct {
	Amount     float64
	Currency   string
	DistanceKm float64
	WeightKg   float64
}

// AssignmentView is the read-model projection of a courier assignment. SlotID
// is nil for on-demand deliveries.
type AssignmentView struct {
	CourierID    kernel.UUID
	VehiclePlate string
	EtaMinutes   int
	SlotID       *kernel.UUID
}

// GetOrderQueryResponse represents the full order read model. Quote,
// Assignment, and FinalAmount are nil until the corresponding lifecycle step
// has happened.
type GetOrderQueryResponse struct {
	ID              kernel.UUID
	UserID          kernel.UUID
	Mode            string
	ScheduledAt     *time.Time
	Pickup          AddressView
	Dropoff         AddressView
	WeightKg        float64
	PaymentMethod   string
	PromoCode       string
	Status          string
	Quote           *QuoteView
	PaymentIntentID string
	Assignment      *AssignmentView
	FinalAmount     *float64
	FinalCurrency   string
	CancelReason    string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
