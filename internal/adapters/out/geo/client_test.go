package geo_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"parcelgo/internal/adapters/out/geo"
	"parcelgo/internal/core/domain/model/order"
	"parcelgo/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAddress(t *testing.T) order.Address {
	t.Helper()

	addr, err := order.NewAddress(
		"Asha", "+919900112233", "14 MG Road", "",
		"Bengaluru", "KA", "560001", nil)
	require.NoError(t, err)
	return addr
}

func TestClient_Resolve(t *testing.T) {
	t.Run("should return coordinates on success", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v1/geocode", r.URL.Path)
			assert.Equal(t, "14 MG Road, Bengaluru, KA, 560001", r.URL.Query().Get("address"))

			_, _ = w.Write([]byte(`{"lat":12.9716,"lng":77.5946}`))
		}))
		defer server.Close()

		client := geo.NewClient(server.URL)

		point, err := client.Resolve(t.Context(), testAddress(t))

		require.NoError(t, err)
		assert.InDelta(t, 12.9716, point.Lat(), 1e-9)
		assert.InDelta(t, 77.5946, point.Lng(), 1e-9)
	})

	t.Run("should map 404 to object not found", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		client := geo.NewClient(server.URL)

		_, err := client.Resolve(t.Context(), testAddress(t))

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("should fail on service error status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		client := geo.NewClient(server.URL)

		_, err := client.Resolve(t.Context(), testAddress(t))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "status 500")
	})

	t.Run("should fail on out of range coordinates", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"lat":123.0,"lng":77.5946}`))
		}))
		defer server.Close()

		client := geo.NewClient(server.URL)

		_, err := client.Resolve(t.Context(), testAddress(t))

		require.Error(t, err)
	})

	t.Run("should reject unconstructed address", func(t *testing.T) {
		client := geo.NewClient("http://localhost:1")

		_, err := client.Resolve(t.Context(), order.Address{})

		require.Error(t, err)
	})
}
