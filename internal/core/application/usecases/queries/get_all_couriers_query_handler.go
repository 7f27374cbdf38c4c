package queries

import (
	"context"
	"database/sql"

	"parcelgo/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetAllCouriersQueryHandler retrieves the courier fleet from the database.
// Uses direct SQL for read performance; the domain model is not rehydrated.
type GetAllCouriersQueryHandler struct {
	db *gorm.DB
}

// NewGetAllCouriersQueryHandler creates a handler for courier retrieval
// queries.
func NewGetAllCouriersQueryHandler(db *gorm.DB) GetAllCouriersQueryHandler {
	return GetAllCouriersQueryHandler{db: db}
}

// Handle executes the query to retrieve all couriers, sorted by name.
func (h GetAllCouriersQueryHandler) Handle(
	ctx context.Context,
	query GetAllCouriersQuery,
) ([]GetAllCouriersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	couriers := make([]GetAllCouriersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			name,
			vehicle_plate,
			lat,
			lng,
			available
		FROM couriers
		ORDER BY name, id
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetAllCouriersQueryResponse
		var id uuid.UUID
		var lat, lng sql.NullFloat64

		err = rows.Scan(
			&id,
			&resp.Name,
			&resp.VehiclePlate,
			&lat,
			&lng,
			&resp.Available,
		)
		if err != nil {
			return nil, err
		}

		courierID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = courierID

		if lat.Valid && lng.Valid {
			point, pointErr := kernel.NewGeoPoint(lat.Float64, lng.Float64)
			if pointErr != nil {
				return nil, pointErr
			}
			resp.Location = &point
		}

		couriers = append(couriers, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return couriers, nil
}
