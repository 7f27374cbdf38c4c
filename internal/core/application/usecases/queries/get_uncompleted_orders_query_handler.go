package queries

import (
	"context"
	"database/sql"

	"parcelgo/internal/core/domain/model/kernel"
	"parcelgo/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetUncompletedOrdersQueryHandler retrieves orders pending delivery from the
// database. Terminal orders (delivered or cancelled) are filtered out.
type GetUncompletedOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetUncompletedOrdersQueryHandler creates a handler for in-flight order
// queries.
func NewGetUncompletedOrdersQueryHandler(db *gorm.DB) GetUncompletedOrdersQueryHandler {
	return GetUncompletedOrdersQueryHandler{db: db}
}

// Handle executes the query to retrieve all non-terminal orders, oldest
// first.
func (h GetUncompletedOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetUncompletedOrdersQuery,
) ([]GetUncompletedOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetUncompletedOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			status,
			mode,
			dropoff_city,
			assignment_courier_id,
			assignment_eta_minutes
		FROM orders
		WHERE status NOT IN (?, ?)
		ORDER BY created_at, id
	`, order.Delivered.String(), order.Cancelled.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetUncompletedOrdersQueryResponse
		var id uuid.UUID
		var courierID uuid.NullUUID
		var etaMinutes sql.NullInt64

		err = rows.Scan(
			&id,
			&resp.Status,
			&resp.Mode,
			&resp.City,
			&courierID,
			&etaMinutes,
		)
		if err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = orderID

		if courierID.Valid {
			cID, cErr := kernel.UUIDFromBytes(courierID.UUID[:])
			if cErr != nil {
				return nil, cErr
			}
			resp.CourierID = &cID
		}

		if etaMinutes.Valid {
			eta := int(etaMinutes.Int64)
			resp.EtaMinutes = &eta
		}

		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
