// Package notify provides the status notification adapter. The tracking sink
// is a structured log stream; a push channel can replace it behind the same
// port without touching the core.
package notify

import (
	"parcelgo/internal/core/domain/model/kernel"
	"parcelgo/internal/core/domain/model/order"

	"github.com/labstack/gommon/log"
)

// LogNotifier implements the StatusNotifier port by writing structured log
// entries. Calls never fail and never block the calling transition.
type LogNotifier struct {
	logger *log.Logger
}

// NewLogNotifier creates a notifier writing to the given logger.
func NewLogNotifier(logger *log.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// NotifyStatusChanged records an order status change. Assignment detail is
// included when present.
func (n *LogNotifier) NotifyStatusChanged(orderID kernel.UUID, status order.Status, assignment *order.Assignment) {
	fields := log.JSON{
		"order_id": orderID.String(),
		"status":   status.String(),
	}

	if assignment != nil {
		fields["courier_id"] = assignment.CourierID().String()
		fields["eta_minutes"] = assignment.EtaMinutes()
		if assignment.SlotID() != nil {
			fields["slot_id"] = assignment.SlotID().String()
		}
	}

	n.logger.Infoj(fields)
}
