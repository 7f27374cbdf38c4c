// Package courier provides the Courier aggregate for the delivery fleet.
//
// A courier carries an identity, a vehicle plate, an availability flag, and
// an optional last reported position. Couriers without a position are
// excluded from assignment planning; busy couriers are excluded from the
// available pool until their order completes or is cancelled.
package courier
