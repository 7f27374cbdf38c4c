package queries

import (
	"context"
	"database/sql"
	"time"

	"parcelgo/internal/core/domain/model/kernel"
	"parcelgo/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderQueryHandler retrieves a single order projection from the database.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for single-order queries.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// orderRow mirrors the orders table for read-model scanning.
type orderRow struct {
	ID                    uuid.UUID
	UserID                uuid.UUID
	Mode                  string
	ScheduledAt           sql.NullTime
	PickupName            string
	PickupPhone           string
	PickupAddr1           string
	PickupAddr2           string
	PickupCity            string
	PickupState           string
	PickupPostal          string
	PickupLat             sql.NullFloat64
	PickupLng             sql.NullFloat64
	DropoffName           string
	DropoffPhone          string
	DropoffAddr1          string
	DropoffAddr2          string
	DropoffCity           string
	DropoffState          string
	DropoffPostal         string
	DropoffLat            sql.NullFloat64
	DropoffLng            sql.NullFloat64
	PackageWeightKg       float64
	PaymentMethod         string
	PromoCode             string
	Status                string
	QuoteAmount           sql.NullFloat64
	QuoteCurrency         sql.NullString
	QuoteDistanceKm       sql.NullFloat64
	QuoteWeightKg         sql.NullFloat64
	PaymentIntentID       string
	AssignmentCourierID   uuid.NullUUID
	AssignmentPlate       sql.NullString
	AssignmentEtaMinutes  sql.NullInt64
	AssignmentSlotID      uuid.NullUUID
	FinalAmount           sql.NullFloat64
	FinalCurrency         sql.NullString
	CancelReason          string
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// Handle executes the query to retrieve one order. Returns an
// ObjectNotFoundError when no order with the given id exists.
func (h GetOrderQueryHandler) Handle(
	ctx context.Context,
	query GetOrderQuery,
) (*GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var row orderRow
	result := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			user_id,
			mode,
			scheduled_at,
			pickup_name, pickup_phone, pickup_addr1, pickup_addr2,
			pickup_city, pickup_state, pickup_postal, pickup_lat, pickup_lng,
			dropoff_name, dropoff_phone, dropoff_addr1, dropoff_addr2,
			dropoff_city, dropoff_state, dropoff_postal, dropoff_lat, dropoff_lng,
			package_weight_kg,
			payment_method,
			promo_code,
			status,
			quote_amount, quote_currency, quote_distance_km, quote_weight_kg,
			payment_intent_id,
			assignment_courier_id, assignment_plate,
			assignment_eta_minutes, assignment_slot_id,
			final_amount, final_currency,
			cancel_reason,
			created_at,
			updated_at
		FROM orders
		WHERE id = ?
	`, query.OrderID().Bytes()).Scan(&row)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, errs.NewObjectNotFoundError("order", query.OrderID())
	}

	return rowToResponse(row)
}

func rowToResponse(row orderRow) (*GetOrderQueryResponse, error) {
	orderID, err := kernel.UUIDFromBytes(row.ID[:])
	if err != nil {
		return nil, err
	}
	userID, err := kernel.UUIDFromBytes(row.UserID[:])
	if err != nil {
		return nil, err
	}

	resp := GetOrderQueryResponse{
		ID:     orderID,
		UserID: userID,
		Mode:   row.Mode,
		Pickup: addressView(
			row.PickupName, row.PickupPhone, row.PickupAddr1, row.PickupAddr2,
			row.PickupCity, row.PickupState, row.PickupPostal,
			row.PickupLat, row.PickupLng),
		Dropoff: addressView(
			row.DropoffName, row.DropoffPhone, row.DropoffAddr1, row.DropoffAddr2,
			row.DropoffCity, row.DropoffState, row.DropoffPostal,
			row.DropoffLat, row.DropoffLng),
		WeightKg:        row.PackageWeightKg,
		PaymentMethod:   row.PaymentMethod,
		PromoCode:       row.PromoCode,
		Status:          row.Status,
		PaymentIntentID: row.PaymentIntentID,
		FinalCurrency:   row.FinalCurrency.String,
		CancelReason:    row.CancelReason,
		CreatedAt:       row.CreatedAt,
		UpdatedAt:       row.UpdatedAt,
	}

	if row.ScheduledAt.Valid {
		scheduledAt := row.ScheduledAt.Time
		resp.ScheduledAt = &scheduledAt
	}

	if row.QuoteAmount.Valid {
		resp.Quote = &QuoteView{
			Amount:     row.QuoteAmount.Float64,
			Currency:   row.QuoteCurrency.String,
			DistanceKm: row.QuoteDistanceKm.Float64,
			WeightKg:   row.QuoteWeightKg.Float64,
		}
	}

	if row.AssignmentCourierID.Valid {
		courierID, idErr := kernel.UUIDFromBytes(row.AssignmentCourierID.UUID[:])
		if idErr != nil {
			return nil, idErr
		}

		assignment := AssignmentView{
			CourierID:    courierID,
			VehiclePlate: row.AssignmentPlate.String,
			EtaMinutes:   int(row.AssignmentEtaMinutes.Int64),
		}
		if row.AssignmentSlotID.Valid {
			slotID, slotErr := kernel.UUIDFromBytes(row.AssignmentSlotID.UUID[:])
			if slotErr != nil {
				return nil, slotErr
			}
			assignment.SlotID = &slotID
		}
		resp.Assignment = &assignment
	}

	if row.FinalAmount.Valid {
		amount := row.FinalAmount.Float64
		resp.FinalAmount = &amount
	}

	return &resp, nil
}

func addressView(
	name, phone, addr1, addr2, city, state, postal string,
	lat, lng sql.NullFloat64,
) AddressView {
	view := AddressView{
		Name:   name,
		Phone:  phone,
		Addr1:  addr1,
		Addr2:  addr2,
		City:   city,
		State:  state,
		Postal: postal,
	}

	if lat.Valid && lng.Valid {
		latVal, lngVal := lat.Float64, lng.Float64
		view.Lat = &latVal
		view.Lng = &lngVal
	}

	return view
}
