package http

import (
	"time"

	"parcelgo/internal/core/application/usecases/queries"
	"parcelgo/internal/core/domain/model/kernel"
	"parcelgo/internal/core/domain/model/order"
)

// ErrorResponse is the body returned for every failed request.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// AddressPayload carries a pickup or dropoff address on the wire. Lat and Lng
// are optional; an address without them is geocoded during quoting.
type AddressPayload struct {
	Name   string   `json:"name"`
	Phone  string   `json:"phone"`
	Addr1  string   `json:"addr1"`
	Addr2  string   `json:"addr2,omitempty"`
	City   string   `json:"city"`
	State  string   `json:"state"`
	Postal string   `json:"postal"`
	Lat    *float64 `json:"lat,omitempty"`
	Lng    *float64 `json:"lng,omitempty"`
}

// DimensionsPayload carries optional package dimensions in centimeters.
type DimensionsPayload struct {
	LengthCm float64 `json:"length_cm"`
	WidthCm  float64 `json:"width_cm"`
	HeightCm float64 `json:"height_cm"`
}

// PackagePayload carries the parcel description on the wire.
type PackagePayload struct {
	Description   string             `json:"description"`
	WeightKg      float64            `json:"weight_kg"`
	Dimensions    *DimensionsPayload `json:"dimensions,omitempty"`
	DeclaredValue *float64           `json:"declared_value,omitempty"`
}

// MoneyPayload carries a monetary amount on the wire.
type MoneyPayload struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

// QuotePayload is the wire form of a priced estimate.
type QuotePayload struct {
	Amount     float64 `json:"amount"`
	Currency   string  `json:"currency"`
	DistanceKm float64 `json:"distance_km"`
	WeightKg   float64 `json:"weight_kg"`
}

// AssignmentPayload is the wire form of a courier assignment.
type AssignmentPayload struct {
	CourierID    string  `json:"courier_id"`
	VehiclePlate string  `json:"vehicle_plate"`
	EtaMinutes   int     `json:"eta_minutes"`
	SlotID       *string `json:"slot_id,omitempty"`
}

// CreateOrderRequest is the body of POST /api/v1/orders.
type CreateOrderRequest struct {
	UserID        string         `json:"user_id"`
	Mode          string         `json:"mode"`
	ScheduledAt   *time.Time     `json:"scheduled_at,omitempty"`
	Pickup        AddressPayload `json:"pickup"`
	Dropoff       AddressPayload `json:"dropoff"`
	Package       PackagePayload `json:"package"`
	PaymentMethod string         `json:"payment_method"`
	PromoCode     string         `json:"promo_code,omitempty"`
}

// AssignOrderRequest is the body of POST /api/v1/orders/:id/assign. SlotID is
// required for scheduled orders and must be absent for on-demand ones.
type AssignOrderRequest struct {
	SlotID *string `json:"slot_id,omitempty"`
}

// CancelOrderRequest is the body of POST /api/v1/orders/:id/cancel.
type CancelOrderRequest struct {
	Reason string `json:"reason"`
}

// CompleteOrderRequest is the body of POST /api/v1/orders/:id/deliver. When
// FinalAmount is absent the quoted price is charged.
type CompleteOrderRequest struct {
	FinalAmount *MoneyPayload `json:"final_amount,omitempty"`
}

// CreateSlotRequest is the body of POST /api/v1/slots.
type CreateSlotRequest struct {
	StartAt  time.Time `json:"start_at"`
	EndAt    time.Time `json:"end_at"`
	Capacity int       `json:"capacity"`
}

// CreateCourierRequest is the body of POST /api/v1/couriers.
type CreateCourierRequest struct {
	Name         string   `json:"name"`
	VehiclePlate string   `json:"vehicle_plate"`
	Lat          *float64 `json:"lat,omitempty"`
	Lng          *float64 `json:"lng,omitempty"`
}

// CreatedResponse acknowledges a created resource.
type CreatedResponse struct {
	ID string `json:"id"`
}

// OrderResponse is the full order read model returned by GET
// /api/v1/orders/:id and by lifecycle transition endpoints.
type OrderResponse struct {
	ID              string             `json:"id"`
	UserID          string             `json:"user_id"`
	Mode            string             `json:"mode"`
	ScheduledAt     *time.Time         `json:"scheduled_at,omitempty"`
	Pickup          AddressPayload     `json:"pickup"`
	Dropoff         AddressPayload     `json:"dropoff"`
	WeightKg        float64            `json:"weight_kg"`
	PaymentMethod   string             `json:"payment_method"`
	PromoCode       string             `json:"promo_code,omitempty"`
	Status          string             `json:"status"`
	Quote           *QuotePayload      `json:"quote,omitempty"`
	PaymentIntentID string             `json:"payment_intent_id,omitempty"`
	Assignment      *AssignmentPayload `json:"assignment,omitempty"`
	FinalAmount     *MoneyPayload      `json:"final_amount,omitempty"`
	CancelReason    string             `json:"cancel_reason,omitempty"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
}

// OrderSummaryResponse is one row of GET /api/v1/orders/active.
type OrderSummaryResponse struct {
	ID         string  `json:"id"`
	Status     string  `json:"status"`
	Mode       string  `json:"mode"`
	City       string  `json:"city"`
	CourierID  *string `json:"courier_id,omitempty"`
	EtaMinutes *int    `json:"eta_minutes,omitempty"`
}

// SlotResponse is one row of GET /api/v1/slots.
type SlotResponse struct {
	ID        string    `json:"id"`
	StartAt   time.Time `json:"start_at"`
	EndAt     time.Time `json:"end_at"`
	Capacity  int       `json:"capacity"`
	Used      int       `json:"used"`
	Remaining int       `json:"remaining"`
}

// CourierResponse is one row of GET /api/v1/couriers.
type CourierResponse struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	VehiclePlate string   `json:"vehicle_plate"`
	Lat          *float64 `json:"lat,omitempty"`
	Lng          *float64 `json:"lng,omitempty"`
	Available    bool     `json:"available"`
}

func addressFromPayload(p AddressPayload) (order.Address, error) {
	var point *kernel.GeoPoint
	if p.Lat != nil && p.Lng != nil {
		gp, err := kernel.NewGeoPoint(*p.Lat, *p.Lng)
		if err != nil {
			return order.Address{}, err
		}
		point = &gp
	}

	return order.NewAddress(p.Name, p.Phone, p.Addr1, p.Addr2, p.City, p.State, p.Postal, point)
}

func packageFromPayload(p PackagePayload) (order.Package, error) {
	var dims *order.Dimensions
	if p.Dimensions != nil {
		dims = &order.Dimensions{
			LengthCm: p.Dimensions.LengthCm,
			WidthCm:  p.Dimensions.WidthCm,
			HeightCm: p.Dimensions.HeightCm,
		}
	}

	return order.NewPackage(p.Description, p.WeightKg, dims, p.DeclaredValue)
}

func addressToPayload(v queries.AddressView) AddressPayload {
	return AddressPayload{
		Name:   v.Name,
		Phone:  v.Phone,
		Addr1:  v.Addr1,
		Addr2:  v.Addr2,
		City:   v.City,
		State:  v.State,
		Postal: v.Postal,
		Lat:    v.Lat,
		Lng:    v.Lng,
	}
}

func orderToResponse(r queries.GetOrderQueryResponse) OrderResponse {
	resp := OrderResponse{
		ID:              r.ID.String(),
		UserID:          r.UserID.String(),
		Mode:            r.Mode,
		ScheduledAt:     r.ScheduledAt,
		Pickup:          addressToPayload(r.Pickup),
		Dropoff:         addressToPayload(r.Dropoff),
		WeightKg:        r.WeightKg,
		PaymentMethod:   r.PaymentMethod,
		PromoCode:       r.PromoCode,
		Status:          r.Status,
		PaymentIntentID: r.PaymentIntentID,
		CancelReason:    r.CancelReason,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}

	if r.Quote != nil {
		resp.Quote = &QuotePayload{
			Amount:     r.Quote.Amount,
			Currency:   r.Quote.Currency,
			DistanceKm: r.Quote.DistanceKm,
			WeightKg:   r.Quote.WeightKg,
		}
	}

	if r.Assignment != nil {
		assignment := &AssignmentPayload{
			CourierID:    r.Assignment.CourierID.String(),
			VehiclePlate: r.Assignment.VehiclePlate,
			EtaMinutes:   r.Assignment.EtaMinutes,
		}
		if r.Assignment.SlotID != nil {
			slotID := r.Assignment.SlotID.String()
			assignment.SlotID = &slotID
		}
		resp.Assignment = assignment
	}

	if r.FinalAmount != nil {
		resp.FinalAmount = &MoneyPayload{Amount: *r.FinalAmount, Currency: r.FinalCurrency}
	}

	return resp
}
