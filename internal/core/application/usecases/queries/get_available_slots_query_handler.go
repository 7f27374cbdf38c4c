package queries

import (
	"context"

	"parcelgo/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetAvailableSlotsQueryHandler retrieves bookable delivery windows from the
// database. The used < capacity filter runs in SQL so a window that filled up
// a moment ago never appears in the offer list.
type GetAvailableSlotsQueryHandler struct {
	db *gorm.DB
}

// NewGetAvailableSlotsQueryHandler creates a handler for bookable window
// queries.
func NewGetAvailableSlotsQueryHandler(db *gorm.DB) GetAvailableSlotsQueryHandler {
	return GetAvailableSlotsQueryHandler{db: db}
}

// Handle executes the query to retrieve windows with free capacity starting
// at or after the query's instant, earliest first.
func (h GetAvailableSlotsQueryHandler) Handle(
	ctx context.Context,
	query GetAvailableSlotsQuery,
) ([]GetAvailableSlotsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	slots := make([]GetAvailableSlotsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			start_at,
			end_at,
			capacity,
			used
		FROM slots
		WHERE used < capacity
		  AND start_at >= ?
		ORDER BY start_at, id
	`, query.After()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetAvailableSlotsQueryResponse
		var id uuid.UUID

		err = rows.Scan(
			&id,
			&resp.StartAt,
			&resp.EndAt,
			&resp.Capacity,
			&resp.Used,
		)
		if err != nil {
			return nil, err
		}

		slotID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = slotID
		resp.Remaining = resp.Capacity - resp.Used

		slots = append(slots, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return slots, nil
}
