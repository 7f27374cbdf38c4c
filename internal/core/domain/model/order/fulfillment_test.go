package order_test

import (
	"testing"

	"parcelgo/internal/core/domain/model/order"
	"parcelgo/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFulfillmentMode(t *testing.T) {
	t.Run("should validate defined modes", func(t *testing.T) {
		require.NoError(t, order.ModeOnDemand.Validate())
		require.NoError(t, order.ModeScheduled.Validate())
	})

	t.Run("should reject unknown mode", func(t *testing.T) {
		err := order.ModeUnknown.Validate()

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should round-trip wire names", func(t *testing.T) {
		assert.Equal(t, "ON_DEMAND", order.ModeOnDemand.String())
		assert.Equal(t, "SCHEDULED", order.ModeScheduled.String())

		mode, err := order.ModeFromString("ON_DEMAND")
		require.NoError(t, err)
		assert.Equal(t, order.ModeOnDemand, mode)

		mode, err = order.ModeFromString("SCHEDULED")
		require.NoError(t, err)
		assert.Equal(t, order.ModeScheduled, mode)
	})

	t.Run("should fail parsing unknown string", func(t *testing.T) {
		mode, err := order.ModeFromString("EXPRESS")

		require.Error(t, err)
		assert.Equal(t, order.ModeUnknown, mode)
	})
}

func TestPaymentMethod_Validate(t *testing.T) {
	t.Run("should accept supported methods", func(t *testing.T) {
		for _, method := range []order.PaymentMethod{
			order.PaymentCOD, order.PaymentWallet, order.PaymentCard,
		} {
			require.NoError(t, method.Validate())
		}
	})

	t.Run("should reject unsupported method", func(t *testing.T) {
		err := order.PaymentMethod("crypto").Validate()

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}
