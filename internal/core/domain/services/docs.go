// Package services provides domain services that orchestrate business operations
// across multiple domain entities in the delivery marketplace. It implements
// business logic that doesn't naturally belong to a single aggregate root.
//
// The package includes:
//   - PricingEngine: prices deliveries from distance, weight, and promo codes
//   - AssignmentPlanner: binds the nearest available courier to a confirmed order
//
// Domain services coordinate between aggregates, implementing business logic that
// spans multiple bounded contexts following Domain-Driven Design principles.
package services
