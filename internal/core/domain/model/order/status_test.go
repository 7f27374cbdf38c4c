package order_test

import (
	"fmt"
	"testing"

	"parcelgo/internal/core/domain/model/order"
	"parcelgo/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Constants(t *testing.T) {
	t.Run("should have correct enum values", func(t *testing.T) {
		assert.Equal(t, 0, int(order.Unknown))
		assert.Equal(t, 1, int(order.Created))
		assert.Equal(t, 2, int(order.Quoted))
		assert.Equal(t, 3, int(order.Confirmed))
		assert.Equal(t, 4, int(order.Assigned))
		assert.Equal(t, 5, int(order.Scheduled))
		assert.Equal(t, 6, int(order.InTransit))
		assert.Equal(t, 7, int(order.Delivered))
		assert.Equal(t, 8, int(order.Cancelled))
	})
}

func TestStatus_Validate(t *testing.T) {
	t.Run("should validate valid statuses", func(t *testing.T) {
		validStatuses := []order.Status{
			order.Created,
			order.Quoted,
			order.Confirmed,
			order.Assigned,
			order.Scheduled,
			order.InTransit,
			order.Delivered,
			order.Cancelled,
		}

		for _, status := range validStatuses {
			t.Run(fmt.Sprintf("should validate %s status", status.String()), func(t *testing.T) {
				err := status.Validate()
				require.NoError(t, err)
			})
		}
	})

	t.Run("should reject Unknown status", func(t *testing.T) {
		err := order.Unknown.Validate()

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject out of range status", func(t *testing.T) {
		err := order.Status(99).Validate()

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestStatus_String(t *testing.T) {
	t.Run("should return wire names", func(t *testing.T) {
		assert.Equal(t, "CREATED", order.Created.String())
		assert.Equal(t, "QUOTED", order.Quoted.String())
		assert.Equal(t, "CONFIRMED", order.Confirmed.String())
		assert.Equal(t, "ASSIGNED", order.Assigned.String())
		assert.Equal(t, "SCHEDULED", order.Scheduled.String())
		assert.Equal(t, "IN_TRANSIT", order.InTransit.String())
		assert.Equal(t, "DELIVERED", order.Delivered.String())
		assert.Equal(t, "CANCELLED", order.Cancelled.String())
	})

	t.Run("should return UNKNOWN for invalid statuses", func(t *testing.T) {
		assert.Equal(t, "UNKNOWN", order.Unknown.String())
		assert.Equal(t, "UNKNOWN", order.Status(42).String())
	})
}

func TestStatusFromString(t *testing.T) {
	t.Run("should parse valid wire names", func(t *testing.T) {
		for status, str := range map[order.Status]string{
			order.Created:   "CREATED",
			order.Quoted:    "QUOTED",
			order.Confirmed: "CONFIRMED",
			order.Assigned:  "ASSIGNED",
			order.Scheduled: "SCHEDULED",
			order.InTransit: "IN_TRANSIT",
			order.Delivered: "DELIVERED",
			order.Cancelled: "CANCELLED",
		} {
			parsed, err := order.StatusFromString(str)

			require.NoError(t, err)
			assert.Equal(t, status, parsed)
		}
	})

	t.Run("should fail on unknown string", func(t *testing.T) {
		parsed, err := order.StatusFromString("SHIPPED")

		require.Error(t, err)
		assert.Equal(t, order.Unknown, parsed)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestStatus_IsTerminal(t *testing.T) {
	t.Run("should report Delivered and Cancelled as terminal", func(t *testing.T) {
		assert.True(t, order.Delivered.IsTerminal())
		assert.True(t, order.Cancelled.IsTerminal())
	})

	t.Run("should report working statuses as non-terminal", func(t *testing.T) {
		for _, status := range []order.Status{
			order.Created, order.Quoted, order.Confirmed,
			order.Assigned, order.Scheduled, order.InTransit,
		} {
			assert.False(t, status.IsTerminal(), "%s should not be terminal", status)
		}
	})
}

func TestStatus_AttachQuote(t *testing.T) {
	t.Run("should transition from Created to Quoted", func(t *testing.T) {
		newStatus, err := order.Created.AttachQuote()

		require.NoError(t, err)
		assert.Equal(t, order.Quoted, newStatus)
	})

	t.Run("should fail from any other status", func(t *testing.T) {
		for _, status := range []order.Status{
			order.Quoted, order.Confirmed, order.Assigned,
			order.Scheduled, order.InTransit, order.Delivered, order.Cancelled,
		} {
			_, err := status.AttachQuote()

			require.Error(t, err)
			assert.ErrorIs(t, err, errs.ErrInvalidState)
			assert.Contains(t, err.Error(), status.String())
		}
	})
}

func TestStatus_Confirm(t *testing.T) {
	t.Run("should transition from Quoted to Confirmed", func(t *testing.T) {
		newStatus, err := order.Quoted.Confirm()

		require.NoError(t, err)
		assert.Equal(t, order.Confirmed, newStatus)
	})

	t.Run("should fail from Created", func(t *testing.T) {
		_, err := order.Created.Confirm()

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrInvalidState)
	})
}

func TestStatus_Assign(t *testing.T) {
	t.Run("should transition Confirmed to Assigned for on-demand orders", func(t *testing.T) {
		newStatus, err := order.Confirmed.Assign(order.ModeOnDemand)

		require.NoError(t, err)
		assert.Equal(t, order.Assigned, newStatus)
	})

	t.Run("should transition Confirmed to Scheduled for scheduled orders", func(t *testing.T) {
		newStatus, err := order.Confirmed.Assign(order.ModeScheduled)

		require.NoError(t, err)
		assert.Equal(t, order.Scheduled, newStatus)
	})

	t.Run("should fail from Quoted", func(t *testing.T) {
		_, err := order.Quoted.Assign(order.ModeOnDemand)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrInvalidState)
	})

	t.Run("should fail with invalid mode", func(t *testing.T) {
		_, err := order.Confirmed.Assign(order.ModeUnknown)

		require.Error(t, err)
	})
}

func TestStatus_StartTransit(t *testing.T) {
	t.Run("should transition from Assigned to InTransit", func(t *testing.T) {
		newStatus, err := order.Assigned.StartTransit()

		require.NoError(t, err)
		assert.Equal(t, order.InTransit, newStatus)
	})

	t.Run("should transition from Scheduled to InTransit", func(t *testing.T) {
		newStatus, err := order.Scheduled.StartTransit()

		require.NoError(t, err)
		assert.Equal(t, order.InTransit, newStatus)
	})

	t.Run("should fail from Confirmed", func(t *testing.T) {
		_, err := order.Confirmed.StartTransit()

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrInvalidState)
	})
}

func TestStatus_Complete(t *testing.T) {
	t.Run("should transition from InTransit to Delivered", func(t *testing.T) {
		newStatus, err := order.InTransit.Complete()

		require.NoError(t, err)
		assert.Equal(t, order.Delivered, newStatus)
	})

	t.Run("should fail from Assigned", func(t *testing.T) {
		_, err := order.Assigned.Complete()

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrInvalidState)
	})
}

func TestStatus_Cancel(t *testing.T) {
	t.Run("should transition from every non-terminal status", func(t *testing.T) {
		for _, status := range []order.Status{
			order.Created, order.Quoted, order.Confirmed,
			order.Assigned, order.Scheduled, order.InTransit,
		} {
			newStatus, err := status.Cancel()

			require.NoError(t, err, "cancel from %s should succeed", status)
			assert.Equal(t, order.Cancelled, newStatus)
		}
	})

	t.Run("should fail from Delivered", func(t *testing.T) {
		_, err := order.Delivered.Cancel()

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrInvalidState)
	})

	t.Run("should fail from Cancelled", func(t *testing.T) {
		_, err := order.Cancelled.Cancel()

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrInvalidState)
	})
}

func TestStatus_ValidateCanHaveAssignment(t *testing.T) {
	t.Run("should require assignment when Assigned, Scheduled or InTransit", func(t *testing.T) {
		for _, status := range []order.Status{order.Assigned, order.Scheduled, order.InTransit} {
			require.NoError(t, status.ValidateCanHaveAssignment(true))
			require.Error(t, status.ValidateCanHaveAssignment(false))
		}
	})

	t.Run("should forbid assignment before planning", func(t *testing.T) {
		for _, status := range []order.Status{order.Created, order.Quoted, order.Confirmed, order.Cancelled} {
			require.NoError(t, status.ValidateCanHaveAssignment(false))
			require.Error(t, status.ValidateCanHaveAssignment(true))
		}
	})

	t.Run("should allow delivered orders with or without assignment", func(t *testing.T) {
		require.NoError(t, order.Delivered.ValidateCanHaveAssignment(true))
		require.NoError(t, order.Delivered.ValidateCanHaveAssignment(false))
	})
}
