// Package services provides domain services that orchestrate business
// operations across multiple domain entities in the fulfillment system. It
// implements logic that doesn't naturally belong to a single aggregate root.
//
// The package includes:
//   - LoadEstimator: derives an order's volume/weight/package requirements
//   - VehicleSelector: filters and ranks the vehicle catalog against requirements
//   - TrackingReconciler: converges a tracking record to the order's status
//
// Domain services coordinate between aggregates, implementing business logic
// that spans multiple bounded contexts following Domain-Driven Design principles.
package services
