package order_test

import (
	"testing"

	"parcelgo/internal/core/domain/model/kernel"
	"parcelgo/internal/core/domain/model/order"
	"parcelgo/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAddress(t *testing.T) {
	point, err := kernel.NewGeoPoint(12.97, 77.59)
	require.NoError(t, err)

	t.Run("should create address with all fields", func(t *testing.T) {
		addr, err := order.NewAddress(
			"Asha Rao", "+919812345678",
			"14 MG Road", "Flat 3B", "Bengaluru", "KA", "560001",
			&point,
		)

		require.NoError(t, err)
		require.NoError(t, addr.Validate())
		assert.Equal(t, "Asha Rao", addr.Name())
		assert.Equal(t, "14 MG Road", addr.Addr1())
		assert.Equal(t, "Flat 3B", addr.Addr2())
		assert.Equal(t, "Bengaluru", addr.City())
		assert.True(t, addr.HasPoint())
		assert.Equal(t, point, *addr.Point())
	})

	t.Run("should create address without coordinates", func(t *testing.T) {
		addr, err := order.NewAddress(
			"Asha Rao", "", "14 MG Road", "", "Bengaluru", "KA", "560001", nil)

		require.NoError(t, err)
		assert.False(t, addr.HasPoint())
		assert.Nil(t, addr.Point())
	})

	t.Run("should fail without first address line", func(t *testing.T) {
		_, err := order.NewAddress(
			"Asha Rao", "", "", "", "Bengaluru", "KA", "560001", nil)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Contains(t, err.Error(), "addr1")
	})

	t.Run("should fail with unconstructed geo point", func(t *testing.T) {
		var invalidPoint kernel.GeoPoint

		_, err := order.NewAddress(
			"Asha Rao", "", "14 MG Road", "", "Bengaluru", "KA", "560001", &invalidPoint)

		require.Error(t, err)
	})
}

func TestAddress_Validate(t *testing.T) {
	t.Run("should fail for directly created struct", func(t *testing.T) {
		var addr order.Address

		err := addr.Validate()

		require.Error(t, err)
		assert.ErrorIs(t, err, order.ErrAddressIsNotConstructed)
	})
}
