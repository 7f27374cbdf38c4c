package order_test

import (
	"testing"

	"parcelgo/internal/core/domain/model/order"
	"parcelgo/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPackage(t *testing.T) {
	t.Run("should create package with all attributes", func(t *testing.T) {
		dims := &order.Dimensions{LengthCm: 30, WidthCm: 20, HeightCm: 10}
		declared := 1500.0

		pkg, err := order.NewPackage("books", 2.5, dims, &declared)

		require.NoError(t, err)
		require.NoError(t, pkg.Validate())
		assert.Equal(t, "books", pkg.Description())
		assert.Equal(t, 2.5, pkg.WeightKg())
		assert.True(t, pkg.HasWeight())
		require.NotNil(t, pkg.Dimensions())
		assert.Equal(t, *dims, *pkg.Dimensions())
		require.NotNil(t, pkg.DeclaredValue())
		assert.Equal(t, declared, *pkg.DeclaredValue())
	})

	t.Run("should create package with zero weight as unspecified", func(t *testing.T) {
		pkg, err := order.NewPackage("", 0, nil, nil)

		require.NoError(t, err)
		assert.False(t, pkg.HasWeight())
		assert.Nil(t, pkg.Dimensions())
		assert.Nil(t, pkg.DeclaredValue())
	})

	t.Run("should fail with negative weight", func(t *testing.T) {
		_, err := order.NewPackage("books", -1, nil, nil)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "weightKg")
	})

	t.Run("should fail with non-positive dimensions", func(t *testing.T) {
		dims := &order.Dimensions{LengthCm: 30, WidthCm: 0, HeightCm: 10}

		_, err := order.NewPackage("books", 2.5, dims, nil)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "dimensions")
	})

	t.Run("should fail with negative declared value", func(t *testing.T) {
		declared := -10.0

		_, err := order.NewPackage("books", 2.5, nil, &declared)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "declaredValue")
	})
}

func TestPackage_Validate(t *testing.T) {
	t.Run("should fail for directly created struct", func(t *testing.T) {
		var pkg order.Package

		err := pkg.Validate()

		require.Error(t, err)
		assert.ErrorIs(t, err, order.ErrPackageIsNotConstructed)
	})
}
