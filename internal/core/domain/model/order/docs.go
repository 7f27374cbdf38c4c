// Package order provides domain entities and business logic for order management
// in the delivery marketplace. It implements the Order aggregate root with
// lifecycle management and state transitions.
//
// The package includes:
//   - Order: The aggregate root that manages order identity, fulfillment mode, and lifecycle
//   - Status: A state machine that enforces valid order status transitions
//   - Address, Package, Quote, Assignment: Value objects owned by the aggregate
//
// Key business rules:
//   - Orders follow the workflow Created -> Quoted -> Confirmed -> Assigned/Scheduled -> InTransit -> Delivered
//   - Cancellation is allowed from every non-terminal status
//   - Scheduled orders carry a future delivery time and a reserved slot; on-demand orders carry neither
//   - An assignment exists only after successful planning and is detached on cancellation
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
