package commands_test

import (
	"testing"
	"time"

	"parcelgo/internal/core/domain/model/courier"
	"parcelgo/internal/core/domain/model/kernel"
	"parcelgo/internal/core/domain/model/order"

	"github.com/stretchr/testify/require"
)

func fixtureAddress(t *testing.T, lat, lng float64) order.Address {
	t.Helper()

	point, err := kernel.NewGeoPoint(lat, lng)
	require.NoError(t, err)

	addr, err := order.NewAddress("Asha Rao", "+919812345678",
		"14 MG Road", "", "Bengaluru", "KA", "560001", &point)
	require.NoError(t, err)
	return addr
}

func fixtureAddressWithoutPoint(t *testing.T) order.Address {
	t.Helper()

	addr, err := order.NewAddress("Asha Rao", "",
		"14 MG Road", "", "Bengaluru", "KA", "560001", nil)
	require.NoError(t, err)
	return addr
}

func fixturePackage(t *testing.T) order.Package {
	t.Helper()

	pkg, err := order.NewPackage("books", 2.0, nil, nil)
	require.NoError(t, err)
	return pkg
}

func fixtureOrder(t *testing.T, mode order.FulfillmentMode) *order.Order {
	t.Helper()

	now := time.Now()
	var scheduledAt *time.Time
	if mode == order.ModeScheduled {
		at := now.Add(4 * time.Hour)
		scheduledAt = &at
	}

	o, err := order.NewOrder(
		kernel.NewUUID(), kernel.NewUUID(),
		mode, scheduledAt,
		fixtureAddress(t, 12.97, 77.59), fixtureAddress(t, 12.93, 77.62),
		fixturePackage(t),
		order.PaymentCOD, "",
		now,
	)
	require.NoError(t, err)
	return o
}

func fixtureQuotedOrder(t *testing.T, mode order.FulfillmentMode) *order.Order {
	t.Helper()

	o := fixtureOrder(t, mode)
	price, err := kernel.NewMoney(140, "INR")
	require.NoError(t, err)
	quote, err := order.NewQuote(price, 10, 2)
	require.NoError(t, err)
	require.NoError(t, o.AttachQuote(quote, time.Now()))
	return o
}

func fixtureConfirmedOrder(t *testing.T, mode order.FulfillmentMode) *order.Order {
	t.Helper()

	o := fixtureQuotedOrder(t, mode)
	require.NoError(t, o.Confirm("pi_123", time.Now()))
	return o
}

func fixtureCourier(t *testing.T) *courier.Courier {
	t.Helper()

	location, err := kernel.NewGeoPoint(12.975, 77.595)
	require.NoError(t, err)

	c, err := courier.NewCourier(kernel.NewUUID(), "Ravi", "KA01AB1234", &location)
	require.NoError(t, err)
	return c
}
