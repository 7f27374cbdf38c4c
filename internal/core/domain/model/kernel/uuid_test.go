package kernel_test

import (
	"sort"
	"testing"

	"parcelgo/internal/core/domain/model/kernel"
	"parcelgo/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const knownUUID = "550e8400-e29b-41d4-a716-446655440000"

func TestNewUUID(t *testing.T) {
	t.Run("should create a valid non-nil UUID", func(t *testing.T) {
		id := kernel.NewUUID()

		assert.NoError(t, id.Validate())
		assert.NotEqual(t, uuid.Nil.String(), id.String())
	})

	t.Run("should create distinct UUIDs on each call", func(t *testing.T) {
		first := kernel.NewUUID()
		second := kernel.NewUUID()

		assert.False(t, first.IsEqual(second))
	})
}

func TestUUIDFromString(t *testing.T) {
	t.Run("should parse the canonical hyphenated form", func(t *testing.T) {
		id, err := kernel.UUIDFromString(knownUUID)

		require.NoError(t, err)
		assert.Equal(t, knownUUID, id.String())
		assert.NoError(t, id.Validate())
	})

	t.Run("should accept the alternate forms google/uuid understands", func(t *testing.T) {
		variants := []string{
			"{550e8400-e29b-41d4-a716-446655440000}",
			"urn:uuid:550e8400-e29b-41d4-a716-446655440000",
			"550e8400e29b41d4a716446655440000",
		}

		for _, variant := range variants {
			id, err := kernel.UUIDFromString(variant)
			require.NoError(t, err, "input: %s", variant)
			assert.Equal(t, knownUUID, id.String())
		}
	})

	t.Run("should reject malformed input as a validation error", func(t *testing.T) {
		malformed := []string{
			"",
			"not-a-uuid",
			"550e8400-e29b-41d4-a716",
			"550e8400-e29b-41d4-a716-446655440000-extra",
			"zzze8400-e29b-41d4-a716-446655440000",
		}

		for _, input := range malformed {
			_, err := kernel.UUIDFromString(input)
			require.Error(t, err, "input: %s", input)
			assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
			assert.Contains(t, err.Error(), "invalid UUID format")
		}
	})
}

func TestUUIDFromBytes(t *testing.T) {
	t.Run("should round trip through the 16-byte form", func(t *testing.T) {
		source, err := kernel.UUIDFromString(knownUUID)
		require.NoError(t, err)

		raw := source.Bytes()
		restored, err := kernel.UUIDFromBytes(raw[:])

		require.NoError(t, err)
		assert.True(t, restored.IsEqual(source))
	})

	t.Run("should reject a slice of the wrong length", func(t *testing.T) {
		_, err := kernel.UUIDFromBytes([]byte{0x55, 0x0e, 0x84})

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject sixteen zero bytes as unconstructed", func(t *testing.T) {
		_, err := kernel.UUIDFromBytes(make([]byte, 16))

		require.Error(t, err)
		assert.Equal(t, kernel.ErrUUIDIsNotConstructed, err)
	})
}

func TestUUID_Less(t *testing.T) {
	t.Run("should agree with lexicographic string order", func(t *testing.T) {
		lower, err := kernel.UUIDFromString("00000000-0000-4000-8000-000000000001")
		require.NoError(t, err)
		higher, err := kernel.UUIDFromString("ffffffff-ffff-4fff-bfff-fffffffffffe")
		require.NoError(t, err)

		assert.True(t, lower.Less(higher))
		assert.Equal(t, lower.String() < higher.String(), lower.Less(higher))
	})

	t.Run("should be asymmetric", func(t *testing.T) {
		a := kernel.NewUUID()
		b := kernel.NewUUID()

		assert.NotEqual(t, a.Less(b), b.Less(a))
	})

	t.Run("should be irreflexive", func(t *testing.T) {
		id := kernel.NewUUID()

		assert.False(t, id.Less(id))
	})

	t.Run("should give a deterministic order when sorting", func(t *testing.T) {
		ids := []kernel.UUID{kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID()}

		sort.Slice(ids, func(i, j int) bool { return ids[i].Less(ids[j]) })

		for i := 1; i < len(ids); i++ {
			assert.True(t, ids[i-1].Less(ids[i]))
			assert.True(t, ids[i-1].String() < ids[i].String())
		}
	})
}

func TestUUID_IsEqual(t *testing.T) {
	t.Run("should treat two parses of the same string as equal", func(t *testing.T) {
		first, err := kernel.UUIDFromString(knownUUID)
		require.NoError(t, err)
		second, err := kernel.UUIDFromString(knownUUID)
		require.NoError(t, err)

		assert.True(t, first.IsEqual(second))
		assert.True(t, second.IsEqual(first))
	})

	t.Run("should treat distinct UUIDs as unequal", func(t *testing.T) {
		assert.False(t, kernel.NewUUID().IsEqual(kernel.NewUUID()))
	})

	t.Run("should compare zero values equal to each other only", func(t *testing.T) {
		var zeroA, zeroB kernel.UUID

		assert.True(t, zeroA.IsEqual(zeroB))
		assert.False(t, zeroA.IsEqual(kernel.NewUUID()))
	})
}

func TestUUID_Validate(t *testing.T) {
	t.Run("should accept a constructed UUID", func(t *testing.T) {
		assert.NoError(t, kernel.NewUUID().Validate())
	})

	t.Run("should reject the zero value", func(t *testing.T) {
		var id kernel.UUID

		assert.Equal(t, kernel.ErrUUIDIsNotConstructed, id.Validate())
	})

	t.Run("should reject the nil UUID even when parsed", func(t *testing.T) {
		id, err := kernel.UUIDFromString(uuid.Nil.String())
		require.NoError(t, err)

		assert.Equal(t, kernel.ErrUUIDIsNotConstructed, id.Validate())
	})
}

func TestUUID_Immutability(t *testing.T) {
	t.Run("should not be affected by mutation of the Bytes copy", func(t *testing.T) {
		original := kernel.NewUUID()
		before := original.String()

		raw := original.Bytes()
		for i := range raw {
			raw[i] = 0xFF
		}

		assert.Equal(t, before, original.String())
		assert.NoError(t, original.Validate())
	})
}
