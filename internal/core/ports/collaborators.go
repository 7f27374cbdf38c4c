package ports

import (
	"context"

	"parcelgo/internal/core/domain/model/kernel"
	"parcelgo/internal/core/domain/model/order"
)

// PaymentGateway creates payment intents for order confirmation. The core
// stores only the returned intent id, never payment detail.
type PaymentGateway interface {
	CreateIntent(ctx context.Context, amount kernel.Money) (string, error)
}

// Geocoder resolves a postal address into coordinates. Returns an
// ObjectNotFound error when the address cannot be resolved; callers tolerate
// that by leaving the coordinates unset, which later blocks any operation
// needing distance.
type Geocoder interface {
	Resolve(ctx context.Context, address order.Address) (kernel.GeoPoint, error)
}

// StatusNotifier publishes order status changes to tracking sinks. Calls are
// fire-and-forget: implementations must not block the transition and the
// core never retries or awaits them.
type StatusNotifier interface {
	NotifyStatusChanged(orderID kernel.UUID, status order.Status, assignment *order.Assignment)
}
