// Package slot provides the Slot aggregate for scheduled delivery windows.
//
// A slot is a time window with a fixed capacity of concurrent scheduled
// orders. Reserving a slot consumes one unit of capacity and releasing
// returns it; a full slot rejects further reservations. The aggregate
// enforces the window and capacity invariants in memory, while the
// persistence layer guards the capacity bound against concurrent
// reservations with a conditional update.
package slot
