// Package order provides domain entities and business logic for order management
// in the fulfillment system. It implements the Order aggregate root with lifecycle
// management, per-item handling marks and state transitions.
//
// The package includes:
//   - Order: The aggregate root carrying the authoritative lifecycle status
//   - Status: The 22-value lifecycle enumeration with guarded transitions
//   - Item: An order line with independent packing/storage/loading marks and complaints
//   - AssignmentDetails: The vehicle/driver binding recorded at allocation time
//
// Key business rules:
//   - Order.Status is the single source of truth for order progress
//   - Item marks move false→true only, through the verification operations
//   - Completing the last item of a step advances the lifecycle status
//   - A vehicle is allocated at most once, after the storage check passes
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
